package utils

import (
	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct{}

var _ paychan.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// Deliver writes all changes of the wrapped handler only if it succeeds.
// Stores that cannot be cache wrapped are passed through.
func (s Savepoint) Deliver(ctx paychan.Context, store paychan.KVStore, msg paychan.Msg, next paychan.Handler) (*paychan.DeliverResult, error) {
	cstore, ok := store.(paychan.CacheableKVStore)
	if !ok {
		return next.Deliver(ctx, store, msg)
	}

	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, msg)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
