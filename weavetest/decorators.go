package weavetest

import "github.com/iov-one/paychan"

// Decorator is a mock implementation of the paychan.Decorator interface.
//
// Set DeliverErr to force error response. If not set then wrapped handler
// is called and its result returned. Each call is counted, regardless of the
// result.
type Decorator struct {
	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ paychan.Decorator = (*Decorator)(nil)

// Deliver calls the next handler unless DeliverErr is set.
func (d *Decorator) Deliver(ctx paychan.Context, db paychan.KVStore, msg paychan.Msg, next paychan.Handler) (*paychan.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, msg)
}

// DeliverCallCount returns the number of Deliver calls.
func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

// Decorate returns a handler that is calling given decorator first.
func Decorate(h paychan.Handler, d paychan.Decorator) paychan.Handler {
	return paychan.HandlerFunc(func(ctx paychan.Context, db paychan.KVStore, msg paychan.Msg) (*paychan.DeliverResult, error) {
		return d.Deliver(ctx, db, msg, h)
	})
}
