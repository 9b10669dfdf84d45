package app

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
)

// CommitStore handles loading from a KVCommitStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
type CommitStore struct {
	committed swapd.CommitKVStore
	deliver   swapd.KVCacheWrap
	check     swapd.KVCacheWrap
}

// NewCommitStore loads the CommitKVStore from disk and sets up the
// deliver and check caches.
func NewCommitStore(store swapd.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (swapd.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates new deliver/check caches.
// Callers serialize access, see BaseApp.
func (cs *CommitStore) Commit() (swapd.CommitID, error) {
	// flush deliver to store and discard check
	if err := cs.deliver.Write(); err != nil {
		return swapd.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()

	// write the store to disk
	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	// set up new caches
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() swapd.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() swapd.CacheableKVStore {
	return cs.deliver
}

// Snapshot returns a read-only view of the last committed state.
func (cs *CommitStore) Snapshot() swapd.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

//------- storing chainID ---------

// _sd: is a prefix for internal data
const chainIDKey = "_sd:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv swapd.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv swapd.KVStore, chainID string) error {
	if !swapd.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
