package orm

import (
	"github.com/iov-one/swapd/errors"
	amino "github.com/tendermint/go-amino"
)

// cdc encodes every model kept in a bucket. Models are concrete structs
// and need no registration.
var cdc = amino.NewCodec()

// Marshal serializes a model in its binary storage form.
func Marshal(m Model) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	return bz, nil
}

// Unmarshal loads raw storage bytes into the given model pointer.
func Unmarshal(raw []byte, dest Model) error {
	if err := cdc.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}
