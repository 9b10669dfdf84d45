package escrow

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

var _ swapd.Initializer = Initializer{}

// FromGenesis stores the escrow configuration found under conf.escrow.
// Offers cannot be declared in genesis, they need locked tokens.
func (Initializer) FromGenesis(opts swapd.Options, db swapd.KVStore) error {
	var conf Config
	return gconf.InitConfig(db, opts, ConfigName, &conf)
}
