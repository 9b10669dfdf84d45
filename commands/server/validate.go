package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/store"
)

// ValidateGenesis loads the app_state of every given genesis file
// into a throwaway store, failing on the first one the initializer
// rejects.
func ValidateGenesis(ini swapd.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini swapd.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read genesis file: %s", err)
	}

	var genesis struct {
		State swapd.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot JSON deserialize genesis: %s", err)
	}
	if len(genesis.State) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state")
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
