package token

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/orm"
)

const (
	// MaxDecimals is the greatest precision a mint may declare
	MaxDecimals = 18

	accountLabel = "account"
)

// Mint defines an asset
type Mint struct {
	Asset     swapd.Address `json:"asset"`
	Decimals  uint8         `json:"decimals"`
	Authority swapd.Address `json:"authority"`
	Supply    uint64        `json:"supply" binary:"fixed64"`
}

var _ orm.Model = (*Mint)(nil)

// Validate ensures the mint is well formed
func (m *Mint) Validate() error {
	if err := m.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if m.Decimals > MaxDecimals {
		return errors.Wrapf(errors.ErrInput, "decimals %d, max %d", m.Decimals, MaxDecimals)
	}
	return nil
}

// Account holds the balance of one asset for one owner
type Account struct {
	Owner   swapd.Address `json:"owner"`
	Asset   swapd.Address `json:"asset"`
	Amount  uint64        `json:"amount" binary:"fixed64"`
	Deposit uint64        `json:"deposit" binary:"fixed64"`
}

var _ orm.Model = (*Account)(nil)

// Validate ensures the account is well formed
func (a *Account) Validate() error {
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := a.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	return nil
}

// Wallet holds the native balance that pays storage deposits
type Wallet struct {
	Lamports uint64 `json:"lamports" binary:"fixed64"`
}

var _ orm.Model = (*Wallet)(nil)

// Validate always succeeds, any balance is valid
func (w *Wallet) Validate() error {
	return nil
}

// NewMintBucket stores mints by asset address
func NewMintBucket() orm.Bucket {
	return orm.NewBucket("mint", &Mint{})
}

// NewAccountBucket stores token accounts by account address,
// indexed by owner
func NewAccountBucket() orm.Bucket {
	return orm.NewBucket("account", &Account{}).WithIndex("owner", accountOwner)
}

// NewWalletBucket stores wallets by address
func NewWalletBucket() orm.Bucket {
	return orm.NewBucket("wallet", &Wallet{})
}

func accountOwner(m orm.Model) ([]byte, error) {
	a, ok := m.(*Account)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, m)
	}
	return a.Owner, nil
}

// AccountAddress returns the address of the account holding asset for
// owner, derived under the ledger program.
func AccountAddress(program, owner, asset swapd.Address) (swapd.Address, error) {
	addr, _, err := swapd.Derive(program, accountLabel, owner, asset)
	return addr, err
}

// RegisterQuery registers the buckets as "/mints", "/accounts" and
// "/wallets". Accounts by owner are served at "/accounts/owner".
func RegisterQuery(qr swapd.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewAccountBucket().Register("accounts", qr)
	NewWalletBucket().Register("wallets", qr)
}
