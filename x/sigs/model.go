package sigs

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/crypto"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is the greatest sequence a client can represent,
// Number.MAX_SAFE_INTEGER in javascript.
const maxSequenceValue = (1 << 53) - 1

// UserData holds the public key of a signer and the sequence its next
// signature must carry.
type UserData struct {
	Pubkey   *crypto.PublicKey
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

// Validate ensures the sequence is consistent with the key
func (u *UserData) Validate() error {
	if seq := u.Sequence; seq < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	} else if seq > 0 && u.Pubkey == nil {
		return errors.Wrap(ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// SetPubkey will try to set the Pubkey or panic on an illegal operation.
// It is illegal to reset an already set key
func (u *UserData) SetPubkey(pubkey *crypto.PublicKey) {
	if u.Pubkey != nil {
		panic("Cannot change pubkey for a user")
	}
	u.Pubkey = pubkey
}

// Bucket extends orm.Bucket with GetOrCreate
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, &UserData{}),
	}
}

// GetOrCreate loads the signer stored for the public key, or a fresh
// one at sequence zero if this key never signed before.
func (b Bucket) GetOrCreate(db swapd.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	addr := pubkey.Address()
	var user UserData
	switch err := b.One(db, addr, &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, err
	}
}

// Save stores the signer under its address
func (b Bucket) Save(db swapd.KVStore, user *UserData) error {
	if user.Pubkey == nil {
		return errors.Wrap(errors.ErrEmpty, "pubkey")
	}
	return b.Put(db, user.Pubkey.Address(), user)
}
