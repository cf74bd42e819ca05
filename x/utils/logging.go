package utils

import (
	"time"

	"github.com/iov-one/paychan"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ paychan.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx paychan.Context, store paychan.KVStore, msg paychan.Msg, next paychan.Handler) (*paychan.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, msg)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx paychan.Context, start time.Time, msg string, err error) {
	delta := time.Since(start)
	logger := paychan.GetLogger(ctx).With("duration", delta/time.Microsecond)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	if err != nil {
		logger.With("err", err).Error(msg)
	} else {
		logger.Info(msg)
	}
}
