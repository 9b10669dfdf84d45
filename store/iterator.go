package store

import (
	"bytes"

	"github.com/google/btree"
)

// collectBtree reads all cached items within [start, end) in the
// requested order. Deleted markers are kept so they can hide the
// matching entries of the parent store.
func collectBtree(bt *btree.BTree, start, end []byte, ascending bool) []cacheItem {
	var items []cacheItem
	add := func(item btree.Item) bool {
		items = append(items, item.(cacheItem))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(add)
	case start == nil:
		bt.AscendLessThan(cacheItem{key: end}, add)
	case end == nil:
		bt.AscendGreaterOrEqual(cacheItem{key: start}, add)
	default:
		bt.AscendRange(cacheItem{key: start}, cacheItem{key: end}, add)
	}

	if !ascending {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// mergeIterator combines the cached items with those of the
// parent store, taking into consideration overwrites and deletes.
type mergeIterator struct {
	items     []cacheItem
	idx       int
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []cacheItem, parent Iterator, ascending bool) *mergeIterator {
	iter := &mergeIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	iter.skipAllDeleted()
	return iter
}

// Valid implements Iterator and returns true iff it can be read
func (i *mergeIterator) Valid() bool {
	return i.firstKey() != none
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *mergeIterator) Next() {
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		i.parent.Next()
	case parent:
		i.parent.Next()
	default:
		panic("Advanced past the end!")
	}
	i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *mergeIterator) Key() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].key
	case parent:
		return i.parent.Key()
	default:
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *mergeIterator) Value() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].value
	case parent:
		return i.parent.Value()
	default:
		panic("Advanced past the end!")
	}
}

// Close releases the Iterator.
func (i *mergeIterator) Close() {
	i.parent.Close()
	i.items = nil
}

// skipAllDeleted jumps over deleted markers, together with the
// parent entry they hide.
func (i *mergeIterator) skipAllDeleted() {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return
		}
		if !i.items[i.idx].deleted {
			return
		}
		i.idx++
		if src == both {
			i.parent.Next()
		}
	}
}

// firstKey selects the source holding the next key in iteration order
func (i *mergeIterator) firstKey() source {
	usValid := i.idx < len(i.items)
	parValid := i.parent != nil && i.parent.Valid()
	switch {
	case !usValid && !parValid:
		return none
	case !parValid:
		return us
	case !usValid:
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.items[i.idx].key)
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}
