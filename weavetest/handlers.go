package weavetest

import "github.com/iov-one/paychan"

// Handler is a mock implementation of the paychan.Handler interface.
// It returns configured result and counts calls.
type Handler struct {
	deliverCall   int
	DeliverResult paychan.DeliverResult
	DeliverErr    error
	// Write if set is applied to the store on every call.
	Write *KV
}

// KV is a key value pair to be written.
type KV struct {
	Key, Value []byte
}

var _ paychan.Handler = (*Handler)(nil)

// Deliver writes the configured pair, if any, and returns the configured
// result.
func (h *Handler) Deliver(ctx paychan.Context, db paychan.KVStore, msg paychan.Msg) (*paychan.DeliverResult, error) {
	h.deliverCall++
	if h.Write != nil {
		if err := db.Set(h.Write.Key, h.Write.Value); err != nil {
			return nil, err
		}
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

// DeliverCallCount returns the number of Deliver calls.
func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// Msg is a mock implementation of the paychan.Msg interface.
type Msg struct {
	RoutePath   string
	ValidateErr error
}

var _ paychan.Msg = (*Msg)(nil)

// Path returns the configured path.
func (m *Msg) Path() string {
	return m.RoutePath
}

// Validate returns the configured error.
func (m *Msg) Validate() error {
	return m.ValidateErr
}
