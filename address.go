package swapd

import (
	"bytes"
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"
	"github.com/iov-one/swapd/errors"
)

// AddressLength is the length of all addresses. Person identities are raw
// ed25519 public keys, derived addresses are off-curve sha256 digests, both
// are 32 bytes long.
const AddressLength = 32

// Address identifies an identity, an asset or a stored record.
type Address []byte

// ParseAddress decodes a base58 encoded address.
func ParseAddress(encoded string) (Address, error) {
	if encoded == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "address")
	}
	raw := base58.Decode(encoded)
	if len(raw) == 0 {
		return nil, errors.Wrapf(errors.ErrInput, "not a base58 address: %q", encoded)
	}
	addr := Address(raw)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy that does not share the underlying array.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// String returns a human readable base58 string.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return base58.Encode(a)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// MarshalJSON provides a base58 representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(base58.Encode(a))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	// No value zero the address.
	if enc == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
