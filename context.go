package paychan

import (
	"context"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to the paychan module

const (
	contextKeyLogger contextKey = iota
	contextKeyBlockTime
	contextKeyChainID
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

// WithLogger sets the logger for this context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithBlockTime sets the time the current message is executed at. All
// time dependent decisions (channel expiry) are made against this value.
//
// Time is truncated to seconds precision.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyBlockTime, t.Truncate(time.Second))
}

// BlockTime returns the execution time as set in the context. If the time
// was not set, ok is false.
func BlockTime(ctx Context) (time.Time, bool) {
	t, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	return t, ok
}

// WithChainID sets the ledger name for this context. It is used for
// logging only.
func WithChainID(ctx Context, chainID string) Context {
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the ledger name, or an empty string.
func GetChainID(ctx Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}

// IsExpired returns true if given time is in the past as compared to the "now"
// as declared in the context. Expiration is inclusive, meaning that if current
// time is equal to the expiration time than this function returns true.
//
// This function panics if the block time is not provided in the context. This
// must never happen. The panic is here to prevent from broken setup to be
// processing data incorrectly.
func IsExpired(ctx Context, t UnixTime) bool {
	now, ok := BlockTime(ctx)
	if !ok {
		panic("block time is not present")
	}
	return t <= AsUnixTime(now)
}

// InTheFuture returns true if given time is in the future compared to the
// current time as declared in the context. It is not inclusive of the
// current time.
//
// This function panics if the block time is not provided in the context.
func InTheFuture(ctx Context, t UnixTime) bool {
	return !IsExpired(ctx, t)
}
