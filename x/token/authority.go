package token

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/x"
)

// Authority proves control over an address for one ledger call.
// Resolve returns the proven address, or an error if the proof does
// not hold in the current context.
type Authority interface {
	Resolve(ctx swapd.Context, auth x.Authenticator) (swapd.Address, error)
}

// SignerAuthority is a person that must have signed the transaction.
type SignerAuthority struct {
	Signer swapd.Address
}

var _ Authority = SignerAuthority{}

// Resolve succeeds only if the signer authenticated the transaction
func (s SignerAuthority) Resolve(ctx swapd.Context, auth x.Authenticator) (swapd.Address, error) {
	if err := s.Signer.Validate(); err != nil {
		return nil, errors.Wrap(err, "signer")
	}
	if err := x.RequireSigner(ctx, auth, s.Signer, "signer"); err != nil {
		return nil, err
	}
	return s.Signer, nil
}

// DerivedAuthority is an address without a private key. It is proven
// by the seeds and bump that derive it under Program. Only extensions
// running in-process can present one: no message decodes into it.
type DerivedAuthority struct {
	Program swapd.Address
	Seeds   [][]byte
	Bump    uint8
}

var _ Authority = DerivedAuthority{}

// Resolve recomputes the derived address
func (d DerivedAuthority) Resolve(ctx swapd.Context, auth x.Authenticator) (swapd.Address, error) {
	return swapd.CreateDerivedAddress(d.Program, d.Seeds, d.Bump)
}
