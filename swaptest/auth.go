/*
Package swaptest provides mocks and fixtures shared by the tests of
all extensions.
*/
package swaptest

import (
	"context"
	"fmt"

	"github.com/iov-one/swapd"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses. You can use
// either Signer or Signers (or both) attributes, all of them are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer swapd.Address

	// Signers represents an authentication of multiple signers.
	Signers []swapd.Address
}

func (a *Auth) GetSigners(swapd.Context) []swapd.Address {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx swapd.Context, addr swapd.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetSigners(ctx swapd.Context, signers ...swapd.Address) swapd.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetSigners(ctx swapd.Context) []swapd.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	signers, ok := val.([]swapd.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []swapd.Address got %T", val))
	}
	return signers
}

func (a *CtxAuth) HasAddress(ctx swapd.Context, addr swapd.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
