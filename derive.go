package swapd

import (
	"crypto/sha256"

	"github.com/agl/ed25519/edwards25519"
	"github.com/iov-one/swapd/errors"
)

const (
	// MaxSeeds is the maximum number of seeds accepted by the derivation.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length in bytes of a single seed.
	MaxSeedLength = 32
)

// derivedMarker separates derived addresses from any other sha256 usage.
var derivedMarker = []byte("ProgramDerivedAddress")

// Seeds builds a seed tuple from a label and any number of addresses. It is
// the shape used by every derivation in this module:
//
//	Seeds("escrow", maker, sellAsset)
func Seeds(label string, parts ...Address) [][]byte {
	seeds := make([][]byte, 0, len(parts)+1)
	seeds = append(seeds, []byte(label))
	for _, p := range parts {
		seeds = append(seeds, p)
	}
	return seeds
}

// CreateDerivedAddress computes the address designated by the given seeds
// and bump for the program. The program identity keys the hash, so the same
// seeds produce unrelated addresses for different programs.
//
// An address that lies on the ed25519 curve could have a private key and is
// rejected with ErrInvalidSeeds.
func CreateDerivedAddress(program Address, seeds [][]byte, bump uint8) (Address, error) {
	if err := program.Validate(); err != nil {
		return nil, errors.Wrap(err, "program")
	}
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}

	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write([]byte{bump})
	h.Write(program)
	h.Write(derivedMarker)
	sum := h.Sum(nil)

	if IsOnCurve(sum) {
		return nil, errors.Wrap(errors.ErrInvalidSeeds, "derived address is on curve")
	}
	return Address(sum), nil
}

// FindDerivedAddress searches for the canonical bump, the first value
// starting at 255 and counting down that yields an off-curve address.
func FindDerivedAddress(program Address, seeds [][]byte) (Address, uint8, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, 0, err
	}
	for bump := 255; bump >= 0; bump-- {
		addr, err := CreateDerivedAddress(program, seeds, uint8(bump))
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.ErrInvalidSeeds.Is(err) {
			return nil, 0, err
		}
	}
	return nil, 0, errors.Wrap(errors.ErrInvalidSeeds, "no viable bump")
}

// Derive is FindDerivedAddress over Seeds(label, parts...).
func Derive(program Address, label string, parts ...Address) (Address, uint8, error) {
	return FindDerivedAddress(program, Seeds(label, parts...))
}

// VerifyDerivedAddress recomputes the derivation and checks that both the
// supplied address and the supplied bump match the canonical result.
func VerifyDerivedAddress(program Address, seeds [][]byte, addr Address, bump uint8) error {
	want, wantBump, err := FindDerivedAddress(program, seeds)
	if err != nil {
		return err
	}
	if !want.Equals(addr) {
		return errors.Wrapf(errors.ErrInvalidSeeds, "address %s, derived %s", addr, want)
	}
	if wantBump != bump {
		return errors.Wrapf(errors.ErrInvalidSeeds, "bump %d, derived %d", bump, wantBump)
	}
	return nil
}

// IsOnCurve returns true if the 32 bytes decode to a valid ed25519 point,
// that is, if they could be a public key.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	var buf [32]byte
	copy(buf[:], b)
	var p edwards25519.ExtendedGroupElement
	return p.FromBytes(&buf)
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return errors.Wrapf(errors.ErrInvalidSeeds, "%d seeds, max %d", len(seeds), MaxSeeds)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.Wrapf(errors.ErrInvalidSeeds, "seed %d is %d bytes, max %d", i, len(s), MaxSeedLength)
		}
	}
	return nil
}
