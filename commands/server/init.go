package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/swapd/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagIgnoreFiles = "i"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd adds the app_state produced by gen to the genesis file
// under home. The file is created by `tendermint init`. An
// existing app_state is only replaced when -i is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var ignore bool
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.BoolVar(&ignore, flagIgnoreFiles, false, "ignore previous app_state and overwrite it")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	genFile := filepath.Join(home, "config", "genesis.json")
	if !fileExists(genFile) {
		return errors.Wrapf(errors.ErrNotFound, "genesis file %s, run tendermint init first", genFile)
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options, ignore); err != nil {
		return err
	}
	logger.Info("App initialized", "genesis", genFile)
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, overwrite bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}

	if state := doc["app_state"]; len(state) > 0 && string(state) != "null" && !overwrite {
		return errors.Wrap(errors.ErrDuplicate, fmt.Sprintf("%s already has an app_state, use -%s to overwrite it", filename, flagIgnoreFiles))
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
