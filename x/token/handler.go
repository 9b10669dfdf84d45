package token

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/x"
)

const (
	createMintCost    int64 = 300
	mintToCost        int64 = 200
	transferCost      int64 = 100
	createAccountCost int64 = 200
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r swapd.Registry, auth x.Authenticator, control *Controller) {
	r.Handle(pathCreateMint, CreateMintHandler{auth: auth, control: control})
	r.Handle(pathMintTo, MintToHandler{auth: auth, control: control})
	r.Handle(pathTransfer, TransferHandler{auth: auth, control: control})
	r.Handle(pathCreateAccount, CreateAccountHandler{auth: auth, control: control})
}

// CreateMintHandler registers new assets
type CreateMintHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ swapd.Handler = CreateMintHandler{}

func (h CreateMintHandler) Check(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapd.CheckResult{GasAllocated: createMintCost}, nil
}

func (h CreateMintHandler) Deliver(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.CreateMint(db, msg.Asset, msg.Authority, msg.Decimals); err != nil {
		return nil, err
	}
	return &swapd.DeliverResult{Data: msg.Asset}, nil
}

func (h CreateMintHandler) validate(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*CreateMintMsg, error) {
	m, err := swapd.LoadMsg(tx)
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	msg, ok := m.(*CreateMintMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Authority, "mint authority"); err != nil {
		return nil, err
	}
	return msg, nil
}

// MintToHandler issues new units of an asset
type MintToHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ swapd.Handler = MintToHandler{}

func (h MintToHandler) Check(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapd.CheckResult{GasAllocated: mintToCost}, nil
}

func (h MintToHandler) Deliver(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	account, err := h.control.EnsureAccount(db, msg.Authority, msg.Recipient, msg.Asset)
	if err != nil {
		return nil, err
	}
	authority := SignerAuthority{Signer: msg.Authority}
	if err := h.control.MintTo(ctx, db, msg.Asset, account, msg.Amount, authority); err != nil {
		return nil, err
	}
	return &swapd.DeliverResult{Data: account}, nil
}

func (h MintToHandler) validate(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*MintToMsg, error) {
	m, err := swapd.LoadMsg(tx)
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	msg, ok := m.(*MintToMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Authority, "mint authority"); err != nil {
		return nil, err
	}
	return msg, nil
}

// TransferHandler moves tokens between the accounts of two owners
type TransferHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ swapd.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapd.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	from, err := h.control.AccountAddress(db, msg.Owner, msg.Asset)
	if err != nil {
		return nil, err
	}
	to, err := h.control.EnsureAccount(db, msg.Owner, msg.Recipient, msg.Asset)
	if err != nil {
		return nil, err
	}
	authority := SignerAuthority{Signer: msg.Owner}
	if err := h.control.Move(ctx, db, from, to, msg.Asset, msg.Amount, msg.Decimals, authority); err != nil {
		return nil, err
	}
	return &swapd.DeliverResult{Data: to}, nil
}

func (h TransferHandler) validate(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*TransferMsg, error) {
	m, err := swapd.LoadMsg(tx)
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	msg, ok := m.(*TransferMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Owner, "owner"); err != nil {
		return nil, err
	}
	return msg, nil
}

// CreateAccountHandler creates empty token accounts
type CreateAccountHandler struct {
	auth    x.Authenticator
	control *Controller
}

var _ swapd.Handler = CreateAccountHandler{}

func (h CreateAccountHandler) Check(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapd.CheckResult{GasAllocated: createAccountCost}, nil
}

func (h CreateAccountHandler) Deliver(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.control.CreateAccount(db, msg.Payer, msg.Owner, msg.Asset)
	if err != nil {
		return nil, err
	}
	return &swapd.DeliverResult{Data: addr}, nil
}

func (h CreateAccountHandler) validate(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*CreateAccountMsg, error) {
	m, err := swapd.LoadMsg(tx)
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	msg, ok := m.(*CreateAccountMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Payer, "payer"); err != nil {
		return nil, err
	}
	return msg, nil
}
