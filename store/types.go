package store

import "github.com/iov-one/swapd"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = swapd.ReadOnlyKVStore
	SetDeleter       = swapd.SetDeleter
	KVStore          = swapd.KVStore
	Batch            = swapd.Batch
	Iterator         = swapd.Iterator
	CacheableKVStore = swapd.CacheableKVStore
	KVCacheWrap      = swapd.KVCacheWrap
	CommitKVStore    = swapd.CommitKVStore
	CommitID         = swapd.CommitID
	Model            = swapd.Model
)

// Pair constructs a model from a key-value pair
var Pair = swapd.Pair
