package paychan

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextLogger(t *testing.T) {
	bg := context.Background()

	newLogger := log.NewTMLogger(os.Stdout)
	ctx := WithLogger(bg, newLogger)
	assert.Equal(t, DefaultLogger, GetLogger(bg))
	assert.Equal(t, newLogger, GetLogger(ctx))

	ctx2 := WithLogInfo(ctx, "channel", "0xabc")
	assert.NotEqual(t, GetLogger(ctx), GetLogger(ctx2))

	assert.Equal(t, "", GetChainID(ctx))
	assert.Equal(t, "ledger", GetChainID(WithChainID(ctx, "ledger")))
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2019, time.April, 4, 11, 35, 40, 0, time.UTC)
	ctx := WithBlockTime(context.Background(), now.Add(300*time.Millisecond))

	got, ok := BlockTime(ctx)
	assert.True(t, ok)
	assert.Equal(t, now, got, "time is truncated to seconds")

	cases := map[string]struct {
		at      UnixTime
		expired bool
	}{
		"past":    {at: AsUnixTime(now.Add(-time.Second)), expired: true},
		"now":     {at: AsUnixTime(now), expired: true},
		"future":  {at: AsUnixTime(now.Add(time.Second)), expired: false},
		"zero":    {at: 0, expired: true},
		"far off": {at: AsUnixTime(now.Add(24 * time.Hour)), expired: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.expired, IsExpired(ctx, tc.at))
			assert.Equal(t, !tc.expired, InTheFuture(ctx, tc.at))
		})
	}

	assert.Panics(t, func() { IsExpired(context.Background(), 1) })
}
