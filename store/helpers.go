package store

// SliceIterator walks a slice of models already in iteration order.
// Stores that materialize their range up front (iavl, ABCI queries)
// hand it out.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator iterates over data as given, without sorting it
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

// Valid is true until the last model was passed
func (s *SliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

// Next advances, panicking once past the end
func (s *SliceIterator) Next() {
	s.current()
	s.idx++
}

// Key of the current model
func (s *SliceIterator) Key() (key []byte) {
	return s.current().Key
}

// Value of the current model
func (s *SliceIterator) Value() (value []byte) {
	return s.current().Value
}

// Close drops the slice
func (s *SliceIterator) Close() {
	s.data = nil
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("Passed end of slice")
	}
	return s.data[s.idx]
}

// EmptyKVStore holds nothing and drops writes. It is the bottom layer
// of MemStore, where the cache wrap holds all the data.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error { return nil }
func (EmptyKVStore) Delete(key []byte) error { return nil }
func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// Op is a queued write: a set, or a delete when del is true
type Op struct {
	key   []byte
	value []byte
	del   bool
}

// SetOp queues setting key to value
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp queues deleting key
func DelOp(key []byte) Op {
	return Op{key: key, del: true}
}

// Apply performs the operation on out
func (o Op) Apply(out SetDeleter) error {
	if o.del {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch queues writes and replays them in order on Write.
// A failing op stops the replay with the earlier ops applied, so it
// only backs in-memory layers: cache wraps and the iavl working tree,
// which is not persisted before Commit.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch writing to out
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

// Set queues a set
func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

// Delete queues a delete
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write replays the queue on the store and empties it
func (b *NonAtomicBatch) Write() error {
	ops := b.ops
	b.ops = nil
	for _, op := range ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	return nil
}

// ShowOps returns the queued operations, for tests
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
