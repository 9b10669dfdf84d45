package token

import (
	"math"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/gconf"
)

const optKey = "token"

// Genesis is the "token" section of the genesis file
type Genesis struct {
	Mints    []GenesisMint    `json:"mints"`
	Accounts []GenesisAccount `json:"accounts"`
	Wallets  []GenesisWallet  `json:"wallets"`
}

// GenesisMint declares an asset. Its supply is the sum of the genesis
// accounts holding it.
type GenesisMint struct {
	Asset     swapd.Address `json:"asset"`
	Decimals  uint8         `json:"decimals"`
	Authority swapd.Address `json:"authority"`
}

// GenesisAccount declares the initial balance of owner for asset
type GenesisAccount struct {
	Owner  swapd.Address `json:"owner"`
	Asset  swapd.Address `json:"asset"`
	Amount uint64        `json:"amount"`
}

// GenesisWallet declares the initial native balance of an address
type GenesisWallet struct {
	Address  swapd.Address `json:"address"`
	Lamports uint64        `json:"lamports"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ swapd.Initializer = Initializer{}

// FromGenesis stores the ledger configuration found under
// conf.token, then the mints, accounts and wallets found under token.
// Genesis accounts hold their deposit without charging anyone.
func (Initializer) FromGenesis(opts swapd.Options, db swapd.KVStore) error {
	var confOpts swapd.Options
	if err := opts.ReadOptions("conf", &confOpts); err != nil {
		return err
	}
	var conf Config
	if err := confOpts.ReadOptions(ConfigName, &conf); err != nil {
		return err
	}
	conf = conf.withDefaults()
	if err := gconf.Save(db, ConfigName, &conf); err != nil {
		return errors.Wrap(err, "token configuration")
	}

	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}

	mints := NewMintBucket()
	supply := make(map[string]uint64)
	for _, m := range gen.Mints {
		mint := Mint{Asset: m.Asset, Decimals: m.Decimals, Authority: m.Authority}
		if err := mint.Validate(); err != nil {
			return errors.Wrapf(err, "mint %s", m.Asset)
		}
		if _, ok := supply[string(m.Asset)]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "mint %s", m.Asset)
		}
		supply[string(m.Asset)] = 0
	}

	accounts := NewAccountBucket()
	for _, a := range gen.Accounts {
		total, ok := supply[string(a.Asset)]
		if !ok {
			return errors.Wrapf(errors.ErrNotFound, "genesis account of unknown asset %s", a.Asset)
		}
		if total > math.MaxUint64-a.Amount {
			return errors.Wrapf(errors.ErrOverflow, "supply of %s", a.Asset)
		}
		supply[string(a.Asset)] = total + a.Amount

		addr, err := AccountAddress(conf.ProgramID, a.Owner, a.Asset)
		if err != nil {
			return err
		}
		if exists, err := accounts.Has(db, addr); err != nil {
			return err
		} else if exists {
			return errors.Wrapf(errors.ErrDuplicate, "account of %s for %s", a.Owner, a.Asset)
		}
		acct := &Account{
			Owner:   a.Owner,
			Asset:   a.Asset,
			Amount:  a.Amount,
			Deposit: conf.AccountDeposit,
		}
		if err := accounts.Put(db, addr, acct); err != nil {
			return errors.Wrapf(err, "account of %s for %s", a.Owner, a.Asset)
		}
	}

	for _, m := range gen.Mints {
		mint := &Mint{
			Asset:     m.Asset,
			Decimals:  m.Decimals,
			Authority: m.Authority,
			Supply:    supply[string(m.Asset)],
		}
		if err := mints.Put(db, m.Asset, mint); err != nil {
			return err
		}
	}

	wallets := NewWalletBucket()
	for _, w := range gen.Wallets {
		if err := w.Address.Validate(); err != nil {
			return errors.Wrap(err, "wallet")
		}
		if err := wallets.Put(db, w.Address, &Wallet{Lamports: w.Lamports}); err != nil {
			return err
		}
	}
	return nil
}
