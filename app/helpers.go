package app

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore exposes the abci.Query interface as a ReadOnlyKVStore.
// It reads the raw store through the "/" query path, so it can be
// wrapped by a bucket to reuse its key and parsing logic.
type ABCIStore struct {
	app abci.Application
}

var _ swapd.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore reads the state of the given application
func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(query.Code, query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(err, "unmarshal result set")
	}
	switch len(value.Results) {
	case 0:
		return nil, nil
	case 1:
		return value.Results[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "%d results for one key", len(value.Results))
	}
}

// Has returns true if the given key in in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	val, err := a.Get(key)
	return len(val) > 0, err
}

// Iterator supports a prefix scan only: end must be nil or
// the smallest key greater than every key starting with start.
func (a *ABCIStore) Iterator(start, end []byte) (swapd.Iterator, error) {
	models, err := a.prefix(start)
	if err != nil {
		return nil, err
	}
	models = clip(models, end)
	return store.NewSliceIterator(models), nil
}

// ReverseIterator is an Iterator played backwards.
func (a *ABCIStore) ReverseIterator(start, end []byte) (swapd.Iterator, error) {
	models, err := a.prefix(start)
	if err != nil {
		return nil, err
	}
	models = clip(models, end)
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) prefix(start []byte) ([]swapd.Model, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: "/?" + swapd.PrefixQueryMod,
		Data: start,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(query.Code, query.Log)
	}
	return toModels(query.Key, query.Value)
}

// clip drops every model at or after end. A nil end keeps all.
func clip(models []swapd.Model, end []byte) []swapd.Model {
	if end == nil {
		return models
	}
	for i, m := range models {
		if string(m.Key) >= string(end) {
			return models[:i]
		}
	}
	return models
}

func toModels(keys, values []byte) ([]swapd.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}
