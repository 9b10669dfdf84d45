/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain sequences for replay protection.
*/
package sigs

import (
	"context"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/x"
)

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr swapd.QueryRouter) {
	NewBucket().Register("auth", qr)
}

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx swapd.Context, signers []swapd.Address) swapd.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate exposes the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetSigners returns who signed the current Context.
// May be empty
func (a Authenticate) GetSigners(ctx swapd.Context) []swapd.Address {
	val, _ := ctx.Value(contextKeySigners).([]swapd.Address)
	return val
}

// HasAddress returns true if the address signed the current Context.
func (a Authenticate) HasAddress(ctx swapd.Context, addr swapd.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// Decorator verifies the signatures and adds them to the context
type Decorator struct {
	allowMissingSigs bool
}

var _ swapd.Decorator = Decorator{}

// NewDecorator returns a default authentication decorator,
// which appends the chainID before checking the signature,
// and requires at least one signature to be present
func NewDecorator() Decorator {
	return Decorator{
		allowMissingSigs: false,
	}
}

// AllowMissingSigs allows us to pass along items with no signatures
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// Check verifies signatures before calling down the stack.
func (d Decorator) Check(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx, next swapd.Checker) (*swapd.CheckResult, error) {
	ctx, err := d.withVerified(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

// Deliver verifies signatures before calling down the stack.
func (d Decorator) Deliver(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx, next swapd.Deliverer) (*swapd.DeliverResult, error) {
	ctx, err := d.withVerified(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) withVerified(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx) (swapd.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signers, err := VerifyTxSignatures(store, stx, swapd.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
