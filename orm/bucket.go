/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are stored under a primary key, amino encoded.
* A bucket may possess secondary indexes, updated on every write.
* Buckets and their indexes register themselves for queries.
*/
package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Model is implemented by any entity that can be stored in a Bucket.
type Model interface {
	// Validate returns error if the model is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
}

// Bucket is a prefixed subspace of the DB holding models of a single
// type. The proto model is used to allocate destinations when a
// stored value must be decoded internally (index maintenance).
type Bucket struct {
	name    string
	prefix  []byte
	proto   reflect.Type
	indexes []*Index
}

var _ swapd.QueryHandler = Bucket{}

// NewBucket creates a bucket to store models of the proto's type.
// proto must be a pointer to a struct.
func NewBucket(name string, proto Model) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	t := reflect.TypeOf(proto)
	if t == nil || t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("Bucket %s: proto must be a pointer, got %T", name, proto))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  t.Elem(),
	}
}

// WithIndex returns a copy of this bucket with a secondary index.
// Panics if an index with that name already exists.
func (b Bucket) WithIndex(name string, fn IndexFunc) Bucket {
	for _, idx := range b.indexes {
		if idx.name == name {
			panic(fmt.Sprintf("Bucket %s: index %s registered twice", b.name, name))
		}
	}
	idx := newIndex(b.name, name, fn)
	indexes := make([]*Index, len(b.indexes), len(b.indexes)+1)
	copy(indexes, b.indexes)
	b.indexes = append(indexes, idx)
	return b
}

// Name is the name of the bucket
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
// A new slice is allocated so consecutive calls never share memory.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One loads the model stored under key into dest.
// Returns ErrNotFound if nothing is stored under that key.
func (b Bucket) One(db swapd.ReadOnlyKVStore, key []byte, dest Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if reflect.TypeOf(dest) != reflect.PtrTo(b.proto) {
		return errors.Wrapf(errors.ErrType, "%s holds %s, got %T", b.name, b.proto, dest)
	}
	return Unmarshal(raw, dest)
}

// Has returns true if a model is stored under key.
func (b Bucket) Has(db swapd.ReadOnlyKVStore, key []byte) (bool, error) {
	if len(key) == 0 {
		return false, errors.Wrap(errors.ErrEmpty, "key")
	}
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Put validates and saves the model under key, overwriting any
// previous value and updating all indexes.
func (b Bucket) Put(db swapd.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(m) != reflect.PtrTo(b.proto) {
		return errors.Wrapf(errors.ErrType, "%s holds %s, got %T", b.name, b.proto, m)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	prev, err := b.load(db, key)
	if err != nil {
		return err
	}
	raw, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return b.updateIndexes(db, key, prev, m)
}

// Delete removes the model stored under key and its index entries.
// Returns ErrNotFound if nothing is stored under that key.
func (b Bucket) Delete(db swapd.KVStore, key []byte) error {
	prev, err := b.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return b.updateIndexes(db, key, prev, nil)
}

// load returns the stored model or nil if there is none.
func (b Bucket) load(db swapd.ReadOnlyKVStore, key []byte) (Model, error) {
	m := reflect.New(b.proto).Interface().(Model)
	switch err := b.One(db, key, m); {
	case err == nil:
		return m, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

func (b Bucket) updateIndexes(db swapd.KVStore, key []byte, prev, next Model) error {
	for _, idx := range b.indexes {
		if err := idx.update(db, key, prev, next); err != nil {
			return errors.Wrapf(err, "index %s", idx.name)
		}
	}
	return nil
}

// Register registers this Bucket and all indexes.
// You can define a name here for queries, which is
// different than the bucket name used to prefix the data
func (b Bucket) Register(name string, r swapd.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for _, idx := range b.indexes {
		r.Register(root+"/"+idx.name, indexQuery{bucket: b, index: idx})
	}
}

// Query handles queries from the QueryRouter
func (b Bucket) Query(db swapd.ReadOnlyKVStore, mod string, data []byte) ([]swapd.Model, error) {
	switch mod {
	case swapd.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []swapd.Model{swapd.Pair(key, value)}, nil
	case swapd.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
