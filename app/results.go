package app

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/orm"
	amino "github.com/tendermint/go-amino"
)

var resultCodec = amino.NewCodec()

// ResultSet is the wire format of the keys or the values returned
// by a query. Both always have the same length.
type ResultSet struct {
	Results [][]byte
}

// Marshal serializes the set for an abci response
func (r *ResultSet) Marshal() ([]byte, error) {
	if len(r.Results) == 0 {
		return nil, nil
	}
	bz, err := resultCodec.MarshalBinaryBare(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Unmarshal loads a serialized set. Empty input is an empty set.
func (r *ResultSet) Unmarshal(bz []byte) error {
	if len(bz) == 0 {
		r.Results = nil
		return nil
	}
	if err := resultCodec.UnmarshalBinaryBare(bz, r); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []swapd.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []swapd.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]swapd.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys for %d values", len(kref), len(vref))
	}
	mods := make([]swapd.Model, len(kref))
	for i := range mods {
		mods[i] = swapd.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o orm.Model) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	// no results, do nothing
	if len(res.Results) == 0 {
		return nil
	}
	return orm.Unmarshal(res.Results[0], o)
}
