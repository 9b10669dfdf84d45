package orm

import (
	"bytes"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
)

// IndexFunc computes the secondary key of a model. All values
// produced by one IndexFunc must have the same length, so that a
// prefix scan over one value never matches another.
type IndexFunc func(Model) ([]byte, error)

// Index maps a secondary key to any number of primary keys. Every
// entry is stored under <prefix><index value><primary key> with the
// primary key as value.
type Index struct {
	name   string
	prefix []byte
	fn     IndexFunc
}

func newIndex(bucket, name string, fn IndexFunc) *Index {
	return &Index{
		name:   name,
		prefix: []byte("_i." + bucket + "_" + name + ":"),
		fn:     fn,
	}
}

func (i *Index) entryKey(value, pk []byte) []byte {
	out := make([]byte, 0, len(i.prefix)+len(value)+len(pk))
	out = append(out, i.prefix...)
	out = append(out, value...)
	return append(out, pk...)
}

func (i *Index) update(db swapd.KVStore, pk []byte, prev, next Model) error {
	var prevVal, nextVal []byte
	var err error
	if prev != nil {
		if prevVal, err = i.fn(prev); err != nil {
			return err
		}
	}
	if next != nil {
		if nextVal, err = i.fn(next); err != nil {
			return err
		}
	}
	if prev != nil && next != nil && bytes.Equal(prevVal, nextVal) {
		return nil
	}
	if prev != nil {
		if err := db.Delete(i.entryKey(prevVal, pk)); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	if next != nil {
		if err := db.Set(i.entryKey(nextVal, pk), pk); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}

// Keys returns the primary keys of all models with the given index value.
func (i *Index) Keys(db swapd.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	refs, err := queryPrefix(db, i.entryKey(value, nil))
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, len(refs))
	for n, r := range refs {
		keys[n] = r.Value
	}
	return keys, nil
}

// Index returns the secondary index registered under that name.
func (b Bucket) Index(name string) (*Index, error) {
	for _, idx := range b.indexes {
		if idx.name == name {
			return idx, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrInput, "no index %s in bucket %s", name, b.name)
}

// indexQuery resolves index lookups into the stored models.
type indexQuery struct {
	bucket Bucket
	index  *Index
}

var _ swapd.QueryHandler = indexQuery{}

// Query returns all models whose index value equals data. Key and
// prefix mods behave the same.
func (q indexQuery) Query(db swapd.ReadOnlyKVStore, mod string, data []byte) ([]swapd.Model, error) {
	if mod != swapd.KeyQueryMod && mod != swapd.PrefixQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	keys, err := q.index.Keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]swapd.Model, 0, len(keys))
	for _, k := range keys {
		dbkey := q.bucket.DBKey(k)
		value, err := db.Get(dbkey)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, errors.Wrapf(errors.ErrState, "index %s points to missing %X", q.index.name, k)
		}
		res = append(res, swapd.Pair(dbkey, value))
	}
	return res, nil
}
