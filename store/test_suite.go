package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSuite runs the same storage checks against any CacheableKVStore
// implementation. Only the constructor differs between the in-memory
// btree and the iavl backed stores.
type TestSuite struct {
	makeBase TestStoreConstructor
}

type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet checks that cached writes are only visible after Write and
// dropped on Discard.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("french"), []byte("fry")
	s.AssertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	s.AssertGetHas(t, base, k3, nil, false)

	// and commit a delete
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// CacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	parent, cleanup := s.makeBase()
	defer cleanup()

	for _, op := range []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])} {
		require.NoError(t, op.Apply(parent))
	}
	child := parent.CacheWrap()
	for _, op := range []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])} {
		require.NoError(t, op.Apply(child))
	}

	s.AssertGetHas(t, parent, ks[1], vs[1], true)
	s.AssertGetHas(t, parent, ks[2], vs[2], true)
	s.AssertGetHas(t, parent, ks[3], nil, false)

	s.AssertGetHas(t, child, ks[1], vs[11], true)
	s.AssertGetHas(t, child, ks[2], nil, false)
	s.AssertGetHas(t, child, ks[3], vs[7], true)

	require.NoError(t, child.Write())
	s.AssertGetHas(t, parent, ks[1], vs[11], true)
	s.AssertGetHas(t, parent, ks[2], nil, false)
	s.AssertGetHas(t, parent, ks[3], vs[7], true)
}

// IteratorWithConflicts covers iteration over a cache that overwrites
// and deletes entries of its parent.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	ms := randModels(6, 20, 100)
	a, a2, b, b2, c, d := ms[0], ms[1], ms[2], ms[3], ms[4], ms[5]
	// a2, b2 have same keys, different values
	a2.Key = a.Key
	b2.Key = b.Key

	expect0 := sortModels([]Model{a, b, c})
	expect1 := sortModels([]Model{a2, b2, c, d})

	cases := map[string]iterCase{
		"iterate in child only": {
			child: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, expect0},
				{expect0[1].Key, expect0[2].Key, false, expect0[1:2]},
				{nil, nil, true, reverse(expect0)},
			},
		},
		"iterate over parent only": {
			pre: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, expect0},
				{expect0[1].Key, nil, false, expect0[1:]},
				{nil, nil, true, reverse(expect0)},
			},
		},
		"simple combination": {
			pre:   makeSetOps(a, b),
			child: makeSetOps(c),
			queries: []rangeQuery{
				{nil, nil, false, expect0},
				{nil, expect0[2].Key, true, reverse(expect0[:2])},
			},
		},
		"overwrite data should show child data": {
			pre:   makeSetOps(a, b, c),
			child: makeSetOps(a2, b2, d),
			queries: []rangeQuery{
				{nil, nil, false, expect1},
				{expect1[1].Key, expect1[3].Key, false, expect1[1:3]},
				{nil, nil, true, reverse(expect1)},
			},
		},
		"deleted entries are skipped": {
			pre:   makeSetOps(a, c, d),
			child: makeDelOps(a, b, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, nil, true, []Model{c}},
				{nil, c.Key, false, nil},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.NoError(t, err)
	assert.Equal(t, has, exists)
}

//nolint
func randBytes(length int) []byte {
	res := make([]byte, length)
	rand.Read(res)
	return res
}

// randKeys returns a slice of count keys, all of a given size
func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(size)
	}
	return res
}

// randModels produces a random set of models
func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := 0; i < count; i++ {
		models[i].Key = randBytes(keySize)
		models[i].Value = randBytes(valueSize)
	}
	return models
}

// iterCase is a test case for iteration
type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

func (i iterCase) verify(t testing.TB, base CacheableKVStore) {
	for _, op := range i.pre {
		require.NoError(t, op.Apply(base))
	}

	child := base.CacheWrap()
	for _, op := range i.child {
		require.NoError(t, op.Apply(child))
	}

	for _, q := range i.queries {
		var iter Iterator
		var err error
		if q.reverse {
			iter, err = child.ReverseIterator(q.start, q.end)
		} else {
			iter, err = child.Iterator(q.start, q.end)
		}
		require.NoError(t, err)

		var got []Model
		for ; iter.Valid(); iter.Next() {
			got = append(got, Pair(iter.Key(), iter.Value()))
		}
		iter.Close()

		require.Equal(t, len(q.expected), len(got))
		for n := range q.expected {
			if !bytes.Equal(q.expected[n].Key, got[n].Key) {
				t.Fatalf("Expected key: %X\nGot key %d = %X", q.expected[n].Key, n, got[n].Key)
			}
			assert.Equal(t, q.expected[n].Value, got[n].Value)
		}
	}
}

// range query checks the results of iteration
type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

// sortModels returns a copy of the models sorted by key
func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
