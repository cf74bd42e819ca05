package app

import (
	"testing"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts paychan.Options, kv paychan.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(opts paychan.Options, kv paychan.KVStore) error {
	c.called++
	return nil
}

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		file         string
		wantParseErr *errors.Error
		wantInitErr  *errors.Error
		wantChain    string
		wantCalled   int
		wantValue    []byte
	}{
		"no such file": {
			file:         "testdata/no_such_file.json",
			wantParseErr: errors.ErrInput,
		},
		"invalid chain id": {
			file:         "testdata/bad_chain_id.json",
			wantParseErr: errors.ErrInput,
		},
		"proper parse": {
			file:       "testdata/genesis.json",
			wantChain:  "test-chain-67",
			wantCalled: 1,
			wantValue:  []byte("secret"),
		},
		"bad init": {
			file:        "testdata/bad_genesis.json",
			wantChain:   "super-chain-22",
			wantInitErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			gen, err := LoadGenesis(tc.file)
			require.True(t, tc.wantParseErr.Is(err), "unexpected error: %+v", err)
			if tc.wantParseErr != nil {
				return
			}
			assert.Equal(t, tc.wantChain, gen.ChainID)

			c := new(countInit)
			a, err := NewStoreApp("genesis-test", iavl.MockCommitStore(), NewRouter())
			require.NoError(t, err)
			a.WithInit(ChainInitializers(dummyInit{}, c))
			assert.Equal(t, "", a.GetChainID())

			err = a.InitChain(gen)
			require.True(t, tc.wantInitErr.Is(err), "unexpected error: %+v", err)
			assert.Equal(t, tc.wantCalled, c.called)

			var val []byte
			require.NoError(t, a.View(func(db paychan.ReadOnlyKVStore) error {
				val, err = db.Get([]byte(dummyKey))
				return err
			}))
			assert.Equal(t, tc.wantValue, val)

			if tc.wantInitErr != nil {
				// A failed genesis leaves no trace.
				assert.Equal(t, "", a.GetChainID())
				return
			}
			assert.Equal(t, tc.wantChain, a.GetChainID())

			// Genesis can be loaded only once.
			err = a.InitChain(gen)
			assert.True(t, errors.ErrState.Is(err))
		})
	}
}

func TestChainIDIsPersisted(t *testing.T) {
	db := iavl.MockCommitStore()
	a, err := NewStoreApp("persist-test", db, NewRouter())
	require.NoError(t, err)
	require.NoError(t, a.InitChain(Genesis{ChainID: "persisted-chain"}))
	_, err = a.Commit()
	require.NoError(t, err)

	again, err := NewStoreApp("persist-test", db, NewRouter())
	require.NoError(t, err)
	assert.Equal(t, "persisted-chain", again.GetChainID())
}
