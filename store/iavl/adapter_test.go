package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/paychan/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeBase commits nothing. All cache writes land in the working tree.
func makeBase() (store.CacheableKVStore, func()) {
	commit := MockCommitStore()
	return store.BTreeCacheable{KVStore: adapter{tree: commit.tree}}, commit.Close
}

func TestIavlStoreGetSet(t *testing.T) {
	store.NewTestSuite(makeBase).GetSet(t)
}

func TestIavlStoreIterate(t *testing.T) {
	store.NewTestSuite(makeBase).Iterate(t)
}

func TestCommitStorePersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "paychan-iavl")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	require.NoError(t, db.LoadLatestVersion())

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("channel"), []byte("open")))
	require.NoError(t, cache.Write())

	// not committed yet
	got, err := db.Get([]byte("channel"))
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := db.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = db.Get([]byte("channel"))
	require.NoError(t, err)
	assert.Equal(t, []byte("open"), got)
	db.Close()

	// reopen and make sure the committed state was loaded
	db, err = NewCommitStore(dir, "state")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.LoadLatestVersion())
	latest, err := db.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)

	got, err = db.Get([]byte("channel"))
	require.NoError(t, err)
	assert.Equal(t, []byte("open"), got)
}
