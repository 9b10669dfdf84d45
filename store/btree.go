package store

import (
	"bytes"

	"github.com/google/btree"
)

const (
	// DefaultFreeListSize is the size we hold for free node in btree
	DefaultFreeListSize = btree.DefaultFreeListSize

	// btreeDegree keeps nodes small, a tx touches only a few keys
	btreeDegree = 2
)

// BTreeCacheable adds a btree cache wrap to any KVStore. Writes
// reach the store through its own batch on Write.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap opens a savepoint over the store
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.KVStore.NewBatch(), nil)
}

// MemStore returns an in-memory store without persistence,
// used for tests and genesis dry runs.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap records every write of a savepoint in a btree,
// shadowing the store below, and mirrors them into a batch that
// Write flushes at once. Deletes are kept as tombstones so they
// hide the backing value until written.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap caches writes over kv, sending them to batch.
// free may be nil; nested wraps share the parent's list.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(btreeDegree, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap nests a savepoint inside this one. Its writes land
// here on Write, never below.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a batch writing into this cache
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes the batch below and releases the cache
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops every cached write, returning nodes to the free list
func (b BTreeCacheWrap) Discard() {
	b.bt.Clear(true)
}

// Set caches the value and queues it for Write
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(cacheItem{key: key, value: value})
	return b.batch.Set(key, value)
}

// Delete caches a tombstone and queues the delete for Write
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(cacheItem{key: key, deleted: true})
	return b.batch.Delete(key)
}

// Get prefers the cache, a tombstone reads as missing
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if item, ok := b.cached(key); ok {
		if item.deleted {
			return nil, nil
		}
		return item.value, nil
	}
	return b.back.Get(key)
}

// Has prefers the cache, a tombstone reads as missing
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if item, ok := b.cached(key); ok {
		return !item.deleted, nil
	}
	return b.back.Has(key)
}

// Iterator merges cached and backing keys in ascending order
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	return b.iterate(start, end, true)
}

// ReverseIterator merges cached and backing keys in descending order
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	return b.iterate(start, end, false)
}

func (b BTreeCacheWrap) iterate(start, end []byte, ascending bool) (Iterator, error) {
	var (
		parent Iterator
		err    error
	)
	if ascending {
		parent, err = b.back.Iterator(start, end)
	} else {
		parent, err = b.back.ReverseIterator(start, end)
	}
	if err != nil {
		return nil, err
	}
	return newMergeIterator(collectBtree(b.bt, start, end, ascending), parent, ascending), nil
}

func (b BTreeCacheWrap) cached(key []byte) (cacheItem, bool) {
	res := b.bt.Get(cacheItem{key: key})
	if res == nil {
		return cacheItem{}, false
	}
	return res.(cacheItem), true
}

// cacheItem is the only value stored in the btree: a written value
// or a tombstone.
type cacheItem struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = cacheItem{}

// Less orders items by key
func (c cacheItem) Less(item btree.Item) bool {
	return bytes.Compare(c.key, item.(cacheItem).key) < 0
}
