package app

import (
	"context"
	"testing"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store"
	"github.com/iov-one/paychan/weavetest"
	"github.com/stretchr/testify/assert"
)

// orderDecorator appends its name to the shared list before calling next.
type orderDecorator struct {
	name  string
	calls *[]string
}

func (d orderDecorator) Deliver(ctx paychan.Context, db paychan.KVStore, msg paychan.Msg, next paychan.Handler) (*paychan.DeliverResult, error) {
	*d.calls = append(*d.calls, d.name)
	return next.Deliver(ctx, db, msg)
}

func TestChainOrder(t *testing.T) {
	var calls []string
	h := ChainDecorators(
		orderDecorator{name: "first", calls: &calls},
		nil,
		orderDecorator{name: "second", calls: &calls},
	).Chain(
		(*weavetest.Decorator)(nil),
		orderDecorator{name: "third", calls: &calls},
	).WithHandler(&weavetest.Handler{})

	_, err := h.Deliver(context.Background(), store.MemStore(), &weavetest.Msg{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestChainShortCircuit(t *testing.T) {
	var (
		outer   = &weavetest.Decorator{}
		failing = &weavetest.Decorator{DeliverErr: errors.ErrUnauthorized}
		inner   = &weavetest.Decorator{}
		handler = &weavetest.Handler{}
	)
	h := ChainDecorators(outer, failing, inner).WithHandler(handler)

	_, err := h.Deliver(context.Background(), store.MemStore(), &weavetest.Msg{})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	assert.Equal(t, 1, outer.DeliverCallCount())
	assert.Equal(t, 1, failing.DeliverCallCount())
	assert.Equal(t, 0, inner.DeliverCallCount())
	assert.Equal(t, 0, handler.DeliverCallCount())
}

func TestChainDoesNotShareBacking(t *testing.T) {
	var calls []string
	base := ChainDecorators(orderDecorator{name: "base", calls: &calls})
	a := base.Chain(orderDecorator{name: "a", calls: &calls}).WithHandler(&weavetest.Handler{})
	b := base.Chain(orderDecorator{name: "b", calls: &calls}).WithHandler(&weavetest.Handler{})

	db := store.MemStore()
	_, _ = a.Deliver(context.Background(), db, &weavetest.Msg{})
	_, _ = b.Deliver(context.Background(), db, &weavetest.Msg{})
	assert.Equal(t, []string{"base", "a", "base", "b"}, calls)
}
