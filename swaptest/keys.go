package swaptest

import (
	"crypto/sha256"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/crypto"
)

// NewKey returns a random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewAddress returns the identity of a fresh random key.
func NewAddress() swapd.Address {
	return NewKey().PublicKey().Address()
}

// SeqAddress returns a deterministic address for a label, useful for
// asset identities and program ids in tests. The result is a plain
// sha256 digest and is not checked against the curve.
func SeqAddress(label string) swapd.Address {
	sum := sha256.Sum256([]byte(label))
	return swapd.Address(sum[:])
}
