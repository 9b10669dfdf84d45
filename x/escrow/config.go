package escrow

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/gconf"
)

// ConfigName is the gconf key of the escrow configuration
const ConfigName = "escrow"

// Config is the escrow configuration, loaded from genesis
type Config struct {
	// ProgramID keys the derivation of every escrow address
	ProgramID swapd.Address `json:"program_id"`
}

// Validate requires a program id
func (c *Config) Validate() error {
	if err := c.ProgramID.Validate(); err != nil {
		return errors.Wrap(err, "program id")
	}
	return nil
}

// LoadConfig returns the escrow configuration stored in the db
func LoadConfig(db gconf.ReadStore) (Config, error) {
	var conf Config
	if err := gconf.Load(db, ConfigName, &conf); err != nil {
		return Config{}, errors.Wrap(err, "escrow configuration")
	}
	return conf, nil
}
