package utils

import (
	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
)

// Recovery is a decorator to recover from panics in handlers,
// so we can log them as errors.
//
// StoreApp recovers at the application boundary too. Place Recovery below
// Logging so that a panic is reported by Logging and unwinds through the
// Savepoint decorator as a regular error.
type Recovery struct{}

var _ paychan.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx paychan.Context, store paychan.KVStore, msg paychan.Msg, next paychan.Handler) (_ *paychan.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, msg)
}
