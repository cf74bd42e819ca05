package cash

import (
	"math/big"
	"testing"

	"github.com/iov-one/paychan/coin"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store"
	"github.com/iov-one/paychan/weavetest"
	"github.com/iov-one/paychan/weavetest/assert"
)

func TestMoveCoins(t *testing.T) {
	alice := weavetest.RandomAddr(t)
	bob := weavetest.RandomAddr(t)

	cases := map[string]struct {
		issue       int64
		move        *big.Int
		src         []byte
		wantErr     *errors.Error
		wantAlice   int64
		wantBob     int64
		sameAccount bool
	}{
		"all funds": {
			issue:     100,
			move:      big.NewInt(100),
			wantAlice: 0,
			wantBob:   100,
		},
		"part of funds": {
			issue:     100,
			move:      big.NewInt(40),
			wantAlice: 60,
			wantBob:   40,
		},
		"insufficient funds": {
			issue:     10,
			move:      big.NewInt(11),
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 10,
		},
		"empty wallet": {
			move:    big.NewInt(1),
			wantErr: errors.ErrInsufficientAmount,
		},
		"zero amount": {
			issue:     10,
			move:      big.NewInt(0),
			wantErr:   errors.ErrInvalidAmount,
			wantAlice: 10,
		},
		"negative amount": {
			issue:     10,
			move:      big.NewInt(-3),
			wantErr:   errors.ErrInvalidAmount,
			wantAlice: 10,
		},
		"overflow": {
			issue:     10,
			move:      new(big.Int).Add(coin.MaxAmount, big.NewInt(1)),
			wantErr:   errors.ErrOverflow,
			wantAlice: 10,
		},
		"invalid source": {
			issue:     10,
			src:       []byte("short"),
			move:      big.NewInt(1),
			wantErr:   errors.ErrInput,
			wantAlice: 10,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			if tc.issue > 0 {
				assert.Nil(t, ctrl.IssueCoins(db, alice, big.NewInt(tc.issue)))
			}

			src := alice
			if tc.src != nil {
				src = tc.src
			}
			err := ctrl.MoveCoins(db, src, bob, tc.move)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			assertBalance(t, ctrl, db, alice, tc.wantAlice)
			assertBalance(t, ctrl, db, bob, tc.wantBob)
		})
	}
}

func TestMoveCoinsToSelf(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	alice := weavetest.RandomAddr(t)
	assert.Nil(t, ctrl.IssueCoins(db, alice, big.NewInt(5)))

	assert.Nil(t, ctrl.MoveCoins(db, alice, alice, big.NewInt(5)))
	assertBalance(t, ctrl, db, alice, 5)
	assert.IsErr(t, errors.ErrInsufficientAmount, ctrl.MoveCoins(db, alice, alice, big.NewInt(6)))
}

func TestIssueCoinsOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	alice := weavetest.RandomAddr(t)
	assert.Nil(t, ctrl.IssueCoins(db, alice, coin.MaxAmount))
	assert.IsErr(t, errors.ErrOverflow, ctrl.IssueCoins(db, alice, big.NewInt(1)))
}

func assertBalance(t testing.TB, ctrl Controller, db store.ReadOnlyKVStore, addr []byte, want int64) {
	t.Helper()
	got, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	if got.Cmp(big.NewInt(want)) != 0 {
		t.Fatalf("want balance %d, got %s", want, got)
	}
}
