package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]paychan.Handler
}

var _ paychan.Registry = (*Router)(nil)
var _ paychan.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]paychan.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h paychan.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is
// found, returns a noSuchPath Handler. Always returns a non-nil Handler.
func (r *Router) handler(path string) paychan.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler(path)
}

// Deliver dispatches the message to the handler registered for its path.
func (r *Router) Deliver(ctx paychan.Context, store paychan.KVStore, msg paychan.Msg) (*paychan.DeliverResult, error) {
	path := msg.Path()
	ctx = paychan.WithLogInfo(ctx, "path", path)
	return r.handler(path).Deliver(ctx, store, msg)
}

func noSuchPathHandler(path string) paychan.Handler {
	return paychan.HandlerFunc(func(paychan.Context, paychan.KVStore, paychan.Msg) (*paychan.DeliverResult, error) {
		return nil, errors.Wrapf(ErrNoSuchPath, "path %q", path)
	})
}
