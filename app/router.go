package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]swapd.Handler
}

var _ swapd.Registry = (*Router)(nil)
var _ swapd.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]swapd.Handler, 10),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered or the path is malformed.
func (r *Router) Handle(path string, h swapd.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is found,
// returns a noSuchPath Handler. Always returns a non-nil Handler.
func (r *Router) handler(m swapd.Msg) swapd.Handler {
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx) (*swapd.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "tx has no msg")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx) (*swapd.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "tx has no msg")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the arguments.
type notFoundHandler string

func (path notFoundHandler) Check(swapd.Context, swapd.KVStore, swapd.Tx) (*swapd.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
}

func (path notFoundHandler) Deliver(swapd.Context, swapd.KVStore, swapd.Tx) (*swapd.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
}
