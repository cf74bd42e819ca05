package store

import (
	"testing"

	"github.com/iov-one/paychan/weavetest/assert"
)

// TestSuite runs the same set of checks against any CacheableKVStore
// implementation. It removes duplication between the btree and the iavl
// tests.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store together with a function
// releasing its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite testing stores created by given constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet does basic sanity checks on the cache layering.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("channel"), []byte("open")
	AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	AssertGetHas(t, base, k, v, true)

	// writes in a cache are only visible in that cache
	cache := base.CacheWrap()
	AssertGetHas(t, cache, k, v, true)
	k2, v2 := []byte("escrow"), []byte("funded")
	assert.Nil(t, cache.Set(k2, v2))
	AssertGetHas(t, cache, k2, v2, true)
	AssertGetHas(t, base, k2, nil, false)

	assert.Nil(t, cache.Write())
	AssertGetHas(t, base, k2, v2, true)

	// discarded changes are lost
	k3 := []byte("settled")
	c2 := base.CacheWrap()
	assert.Nil(t, c2.Set(k3, v))
	c2.Discard()
	AssertGetHas(t, base, k3, nil, false)

	// deletes are propagated
	c3 := base.CacheWrap()
	assert.Nil(t, c3.Delete(k))
	AssertGetHas(t, c3, k, nil, false)
	AssertGetHas(t, base, k, v, true)
	assert.Nil(t, c3.Write())
	AssertGetHas(t, base, k, nil, false)
	AssertGetHas(t, base, k2, v2, true)
}

// Iterate checks that range queries merge cached and persisted data in both
// directions.
func (s *TestSuite) Iterate(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	for _, k := range []string{"a", "b", "c", "d"} {
		assert.Nil(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("b"), []byte("cache-b")))
	assert.Nil(t, cache.Delete([]byte("c")))
	assert.Nil(t, cache.Set([]byte("e"), []byte("cache-e")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"all ascending": {
			want: []Model{
				Pair([]byte("a"), []byte("base-a")),
				Pair([]byte("b"), []byte("cache-b")),
				Pair([]byte("d"), []byte("base-d")),
				Pair([]byte("e"), []byte("cache-e")),
			},
		},
		"all descending": {
			reverse: true,
			want: []Model{
				Pair([]byte("e"), []byte("cache-e")),
				Pair([]byte("d"), []byte("base-d")),
				Pair([]byte("b"), []byte("cache-b")),
				Pair([]byte("a"), []byte("base-a")),
			},
		},
		"bounded range": {
			start: []byte("b"),
			end:   []byte("e"),
			want: []Model{
				Pair([]byte("b"), []byte("cache-b")),
				Pair([]byte("d"), []byte("base-d")),
			},
		},
		"bounded range descending": {
			start:   []byte("b"),
			end:     []byte("e"),
			reverse: true,
			want: []Model{
				Pair([]byte("d"), []byte("base-d")),
				Pair([]byte("b"), []byte("cache-b")),
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			assert.Nil(t, err)
			got, err := ReadAll(it)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// AssertGetHas makes sure that Get and Has return expected results.
func AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, want []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}
