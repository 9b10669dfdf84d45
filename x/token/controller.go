package token

import (
	"math"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/orm"
	"github.com/iov-one/swapd/x"
)

// Ledger is the token service other extensions build on. Every call
// either applies all of its changes to db or returns an error; callers
// that chain several calls rely on the enclosing savepoint to undo the
// earlier ones.
type Ledger interface {
	// Move transfers amount of asset between two accounts. authority
	// must resolve to the owner of from.
	Move(ctx swapd.Context, db swapd.KVStore, from, to, asset swapd.Address, amount uint64, decimals uint8, authority Authority) error
	// Close removes an empty account and credits its deposit to
	// the refundTo wallet. authority must resolve to the owner.
	Close(ctx swapd.Context, db swapd.KVStore, account, refundTo swapd.Address, authority Authority) error
	// CreateAccount creates the account of owner for asset, paid by payer.
	CreateAccount(db swapd.KVStore, payer, owner, asset swapd.Address) (swapd.Address, error)
	// EnsureAccount returns the account of owner for asset, creating it
	// paid by payer if it does not exist yet.
	EnsureAccount(db swapd.KVStore, payer, owner, asset swapd.Address) (swapd.Address, error)
	// AccountAddress returns where the account of owner for asset lives.
	AccountAddress(db swapd.ReadOnlyKVStore, owner, asset swapd.Address) (swapd.Address, error)
	// GetAccount loads an account, ErrUninitialized if it does not exist.
	GetAccount(db swapd.ReadOnlyKVStore, account swapd.Address) (*Account, error)
	// Balance returns the amount held by an account.
	Balance(db swapd.ReadOnlyKVStore, account swapd.Address) (uint64, error)
	// GetMint loads a mint, ErrNotFound if the asset is unknown.
	GetMint(db swapd.ReadOnlyKVStore, asset swapd.Address) (*Mint, error)
	// ChargeDeposit takes amount native units from the payer's wallet.
	ChargeDeposit(db swapd.KVStore, payer swapd.Address, amount uint64) error
	// RefundDeposit credits amount native units to a wallet.
	RefundDeposit(db swapd.KVStore, to swapd.Address, amount uint64) error
	// RecordDeposit is the deposit other extensions charge per record.
	RecordDeposit(db swapd.ReadOnlyKVStore) (uint64, error)
}

// Controller is the Ledger backed by the token buckets
type Controller struct {
	auth     x.Authenticator
	mints    orm.Bucket
	accounts orm.Bucket
	wallets  orm.Bucket
}

var _ Ledger = (*Controller)(nil)

// NewController returns a Ledger that authenticates signer authorities
// with auth.
func NewController(auth x.Authenticator) *Controller {
	return &Controller{
		auth:     auth,
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
		wallets:  NewWalletBucket(),
	}
}

func (c *Controller) Move(ctx swapd.Context, db swapd.KVStore, from, to, asset swapd.Address, amount uint64, decimals uint8, authority Authority) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "move of zero")
	}
	src, err := c.GetAccount(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dst, err := c.GetAccount(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !src.Asset.Equals(asset) {
		return errors.Wrapf(errors.ErrInput, "source holds %s, not %s", src.Asset, asset)
	}
	if !dst.Asset.Equals(asset) {
		return errors.Wrapf(errors.ErrInput, "destination holds %s, not %s", dst.Asset, asset)
	}
	mint, err := c.GetMint(db, asset)
	if err != nil {
		return err
	}
	if mint.Decimals != decimals {
		return errors.Wrapf(errors.ErrInput, "decimals %d, mint has %d", decimals, mint.Decimals)
	}
	if err := c.authorize(ctx, authority, src.Owner); err != nil {
		return err
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, need %d", src.Amount, amount)
	}
	if from.Equals(to) {
		return nil
	}
	if dst.Amount > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := c.accounts.Put(db, from, src); err != nil {
		return err
	}
	return c.accounts.Put(db, to, dst)
}

func (c *Controller) Close(ctx swapd.Context, db swapd.KVStore, account, refundTo swapd.Address, authority Authority) error {
	acct, err := c.GetAccount(db, account)
	if err != nil {
		return err
	}
	if err := c.authorize(ctx, authority, acct.Owner); err != nil {
		return err
	}
	if acct.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "cannot close account holding %d", acct.Amount)
	}
	if err := c.accounts.Delete(db, account); err != nil {
		return err
	}
	return c.RefundDeposit(db, refundTo, acct.Deposit)
}

func (c *Controller) CreateAccount(db swapd.KVStore, payer, owner, asset swapd.Address) (swapd.Address, error) {
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	addr, err := AccountAddress(conf.ProgramID, owner, asset)
	if err != nil {
		return nil, err
	}
	switch exists, err := c.accounts.Has(db, addr); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrapf(errors.ErrInitialized, "account %s", addr)
	}
	if _, err := c.GetMint(db, asset); err != nil {
		return nil, err
	}
	if err := c.ChargeDeposit(db, payer, conf.AccountDeposit); err != nil {
		return nil, errors.Wrap(err, "account deposit")
	}
	acct := &Account{
		Owner:   owner,
		Asset:   asset,
		Deposit: conf.AccountDeposit,
	}
	if err := c.accounts.Put(db, addr, acct); err != nil {
		return nil, err
	}
	return addr, nil
}

func (c *Controller) EnsureAccount(db swapd.KVStore, payer, owner, asset swapd.Address) (swapd.Address, error) {
	addr, err := c.AccountAddress(db, owner, asset)
	if err != nil {
		return nil, err
	}
	switch exists, err := c.accounts.Has(db, addr); {
	case err != nil:
		return nil, err
	case exists:
		return addr, nil
	}
	return c.CreateAccount(db, payer, owner, asset)
}

func (c *Controller) AccountAddress(db swapd.ReadOnlyKVStore, owner, asset swapd.Address) (swapd.Address, error) {
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	return AccountAddress(conf.ProgramID, owner, asset)
}

func (c *Controller) GetAccount(db swapd.ReadOnlyKVStore, account swapd.Address) (*Account, error) {
	if err := account.Validate(); err != nil {
		return nil, errors.Wrap(err, "account")
	}
	var acct Account
	switch err := c.accounts.One(db, account, &acct); {
	case err == nil:
		return &acct, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrUninitialized, "account %s", account)
	default:
		return nil, err
	}
}

func (c *Controller) Balance(db swapd.ReadOnlyKVStore, account swapd.Address) (uint64, error) {
	acct, err := c.GetAccount(db, account)
	if err != nil {
		return 0, err
	}
	return acct.Amount, nil
}

func (c *Controller) GetMint(db swapd.ReadOnlyKVStore, asset swapd.Address) (*Mint, error) {
	if err := asset.Validate(); err != nil {
		return nil, errors.Wrap(err, "asset")
	}
	var mint Mint
	if err := c.mints.One(db, asset, &mint); err != nil {
		return nil, errors.Wrapf(err, "mint %s", asset)
	}
	return &mint, nil
}

func (c *Controller) ChargeDeposit(db swapd.KVStore, payer swapd.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	var w Wallet
	switch err := c.wallets.One(db, payer, &w); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has no wallet", payer)
	default:
		return err
	}
	if w.Lamports < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "wallet holds %d, deposit is %d", w.Lamports, amount)
	}
	w.Lamports -= amount
	return c.wallets.Put(db, payer, &w)
}

func (c *Controller) RefundDeposit(db swapd.KVStore, to swapd.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "refund to")
	}
	var w Wallet
	switch err := c.wallets.One(db, to, &w); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return err
	}
	if w.Lamports > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "wallet balance")
	}
	w.Lamports += amount
	return c.wallets.Put(db, to, &w)
}

func (c *Controller) RecordDeposit(db swapd.ReadOnlyKVStore) (uint64, error) {
	conf, err := LoadConfig(db)
	if err != nil {
		return 0, err
	}
	return conf.RecordDeposit, nil
}

// CreateMint registers a new asset. Fails with ErrInitialized if the
// asset already exists.
func (c *Controller) CreateMint(db swapd.KVStore, asset, authority swapd.Address, decimals uint8) error {
	switch exists, err := c.mints.Has(db, asset); {
	case err != nil:
		return err
	case exists:
		return errors.Wrapf(errors.ErrInitialized, "mint %s", asset)
	}
	mint := &Mint{
		Asset:     asset,
		Authority: authority,
		Decimals:  decimals,
	}
	return c.mints.Put(db, asset, mint)
}

// MintTo issues amount new units of asset into an account of that
// asset. authority must resolve to the mint authority.
func (c *Controller) MintTo(ctx swapd.Context, db swapd.KVStore, asset, account swapd.Address, amount uint64, authority Authority) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "mint of zero")
	}
	mint, err := c.GetMint(db, asset)
	if err != nil {
		return err
	}
	if err := c.authorize(ctx, authority, mint.Authority); err != nil {
		return err
	}
	acct, err := c.GetAccount(db, account)
	if err != nil {
		return err
	}
	if !acct.Asset.Equals(asset) {
		return errors.Wrapf(errors.ErrInput, "account holds %s, not %s", acct.Asset, asset)
	}
	if mint.Supply > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	mint.Supply += amount
	acct.Amount += amount
	if err := c.mints.Put(db, asset, mint); err != nil {
		return err
	}
	return c.accounts.Put(db, account, acct)
}

// authorize requires authority to resolve to owner
func (c *Controller) authorize(ctx swapd.Context, authority Authority, owner swapd.Address) error {
	if authority == nil {
		return errors.Wrap(errors.ErrInvalidAuthority, "no authority")
	}
	addr, err := authority.Resolve(ctx, c.auth)
	if err != nil {
		return err
	}
	if !addr.Equals(owner) {
		return errors.Wrapf(errors.ErrInvalidAuthority, "%s is not %s", addr, owner)
	}
	return nil
}
