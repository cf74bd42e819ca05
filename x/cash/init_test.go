package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store"
)

func TestGenesisInitializer(t *testing.T) {
	addr := paychan.MustParseAddress("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")

	cases := map[string]struct {
		opts        paychan.Options
		wantErr     *errors.Error
		wantBalance int64
	}{
		"no cash section": {
			opts: paychan.Options{"foo": json.RawMessage(`"bar"`)},
		},
		"one account": {
			opts: paychan.Options{
				"cash": json.RawMessage(`[{"address": "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf", "balance": "1000000000000000000"}]`),
			},
			wantBalance: 1000000000000000000,
		},
		"the same account twice is summed": {
			opts: paychan.Options{
				"cash": json.RawMessage(`[
					{"address": "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf", "balance": "1"},
					{"address": "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf", "balance": "2"}
				]`),
			},
			wantBalance: 3,
		},
		"missing address": {
			opts: paychan.Options{
				"cash": json.RawMessage(`[{"balance": "1"}]`),
			},
			wantErr: errors.ErrEmpty,
		},
		"invalid balance": {
			opts: paychan.Options{
				"cash": json.RawMessage(`[{"address": "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf", "balance": "-1"}]`),
			},
			wantErr: errors.ErrInvalidAmount,
		},
		"not a list": {
			opts: paychan.Options{
				"cash": json.RawMessage(`{"address": 1}`),
			},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Initializer{}.FromGenesis(tc.opts, db)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assertBalance(t, NewController(NewBucket()), db, addr, tc.wantBalance)
		})
	}
}
