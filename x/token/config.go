package token

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/gconf"
)

const (
	// ConfigName is the gconf key of the ledger configuration
	ConfigName = "token"

	// DefaultAccountDeposit is the storage deposit of a token account
	DefaultAccountDeposit uint64 = 2039280
	// DefaultRecordDeposit is the storage deposit of a custody record
	DefaultRecordDeposit uint64 = 1461600
)

// Config is the ledger configuration, loaded from genesis
type Config struct {
	// ProgramID keys the derivation of every token account address
	ProgramID swapd.Address `json:"program_id"`
	// AccountDeposit is charged to the payer of a new token account
	AccountDeposit uint64 `json:"account_deposit"`
	// RecordDeposit is charged by other extensions for their records
	RecordDeposit uint64 `json:"record_deposit"`
}

// Validate requires a program id. Zero deposits fall back to defaults.
func (c *Config) Validate() error {
	if err := c.ProgramID.Validate(); err != nil {
		return errors.Wrap(err, "program id")
	}
	return nil
}

// withDefaults fills unset deposits
func (c Config) withDefaults() Config {
	if c.AccountDeposit == 0 {
		c.AccountDeposit = DefaultAccountDeposit
	}
	if c.RecordDeposit == 0 {
		c.RecordDeposit = DefaultRecordDeposit
	}
	return c
}

// LoadConfig returns the ledger configuration stored in the db
func LoadConfig(db gconf.ReadStore) (Config, error) {
	var conf Config
	if err := gconf.Load(db, ConfigName, &conf); err != nil {
		return Config{}, errors.Wrap(err, "token configuration")
	}
	return conf, nil
}
