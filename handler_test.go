package paychan

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/paychan/weavetest/assert"
)

func TestReadOptions(t *testing.T) {
	type account struct {
		Key int `json:"key"`
	}

	cases := map[string]struct {
		json    string
		want    []account
		wantErr bool
	}{
		"happy path": {
			json: `{"list": [{"key": 1}, {"key": 2}]}`,
			want: []account{{Key: 1}, {Key: 2}},
		},
		"missing key is not an error": {
			json: `{}`,
		},
		"null value is not an error": {
			json: `{"list": null}`,
		},
		"wrong value": {
			json:    `{"list": [{"key": "dasdasas"}]}`,
			wantErr: true,
		},
		"wrong body": {
			json:    `{"list": "adasda"}`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o Options
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))

			var got []account
			err := o.ReadOptions("list", &got)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHandlerFunc(t *testing.T) {
	var called int
	h := HandlerFunc(func(ctx Context, db KVStore, msg Msg) (*DeliverResult, error) {
		called++
		return &DeliverResult{Log: "handled"}, nil
	})
	res, err := h.Deliver(context.Background(), nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, "handled", res.Log)
	assert.Equal(t, 1, called)
}
