package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store"
	"github.com/iov-one/paychan/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	cases := map[string]struct {
		handler  *weavetest.Handler
		wantErr  *errors.Error
		wantLogs []string
	}{
		"success is logged with the result": {
			handler: &weavetest.Handler{
				DeliverResult: paychan.DeliverResult{Log: "all good"},
			},
			wantLogs: []string{"I[", "all good", "duration="},
		},
		"failure is logged as an error": {
			handler:  &weavetest.Handler{DeliverErr: errors.ErrNotFound},
			wantErr:  errors.ErrNotFound,
			wantLogs: []string{"E[", "err=\"not found\""},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := paychan.WithLogger(context.Background(), log.NewTMLogger(&buf))
			msg := &weavetest.Msg{RoutePath: "test/log"}

			_, err := NewLogging().Deliver(ctx, store.MemStore(), msg, tc.handler)
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)

			out := buf.String()
			for _, want := range tc.wantLogs {
				assert.True(t, strings.Contains(out, want), "%q not in %q", want, out)
			}
		})
	}
}
