/*
Package crypto holds the ed25519 keys used to authenticate makers and
takers. A public key is also the identity of its owner: the address of
a person is the raw 32 byte key.
*/
package crypto

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"golang.org/x/crypto/ed25519"
)

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Address() swapd.Address
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key
type PublicKey struct {
	Ed25519 []byte
}

// Signature is an ed25519 signature
type Signature struct {
	Ed25519 []byte
}

// PrivateKey is an ed25519 private key, the seed followed by the
// public key.
type PrivateKey struct {
	Ed25519 []byte
}

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	if sig == nil || len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Address returns the identity this key signs for.
// Returns nil for an empty key.
func (p *PublicKey) Address() swapd.Address {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return swapd.Address(p.Ed25519).Clone()
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if p == nil || len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
