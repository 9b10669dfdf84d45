package x

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
)

// Authenticator tells handlers who signed the current transaction.
// Handlers receive it in their constructor instead of reading x/sigs
// directly, so tests can plug in fixed signers.
type Authenticator interface {
	// GetSigners reveals all identities that authenticated the
	// current transaction.
	GetSigners(swapd.Context) []swapd.Address
	// HasAddress checks if this address authenticated the current
	// transaction.
	HasAddress(swapd.Context, swapd.Address) bool
}

// MultiAuth accepts a signer if any of its Authenticators does
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetSigners lists the signers of every Authenticator, in order
func (m MultiAuth) GetSigners(ctx swapd.Context) []swapd.Address {
	var res []swapd.Address
	for _, impl := range m {
		res = append(res, impl.GetSigners(ctx)...)
	}
	return res
}

// HasAddress is true if any Authenticator knows addr
func (m MultiAuth) HasAddress(ctx swapd.Context, addr swapd.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// RequireSigner fails with ErrMissingSignature unless addr signed the
// current transaction. role names the party in the error, like
// "maker" or "taker".
func RequireSigner(ctx swapd.Context, auth Authenticator, addr swapd.Address, role string) error {
	if len(addr) == 0 {
		return errors.Wrapf(errors.ErrMissingSignature, "%s not given", role)
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrMissingSignature, "%s %s", role, addr)
	}
	return nil
}
