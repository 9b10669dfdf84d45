package app

import (
	"reflect"

	"github.com/iov-one/swapd"
)

// Decorators is an ordered stack of decorators waiting for the
// Handler they wrap. The first one added runs first.
type Decorators struct {
	chain []swapd.Decorator
}

/*
ChainDecorators starts a stack. Adding the final Handler, usually
the Router, returns a Handler running the whole stack, as the node
does:

	app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(router)

Nil decorators are skipped, so optional ones can be passed as is.
*/
func ChainDecorators(chain ...swapd.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with the decorators appended. The
// receiver is left untouched.
func (d Decorators) Chain(chain ...swapd.Decorator) Decorators {
	next := make([]swapd.Decorator, len(d.chain), len(d.chain)+len(chain))
	copy(next, d.chain)
	return Decorators{chain: append(next, cutoffNil(chain)...)}
}

// cutoffNil returns the decorators that are neither nil nor a nil
// pointer.
func cutoffNil(ds []swapd.Decorator) []swapd.Decorator {
	kept := make([]swapd.Decorator, 0, len(ds))
	for _, d := range ds {
		if isNil(d) {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

func isNil(d swapd.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack around h. Wrapping goes from the
// last decorator outwards, so the first decorator sees the tx first.
func (d Decorators) WithHandler(h swapd.Handler) swapd.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = layer{decorator: d.chain[i], inner: h}
	}
	return h
}

// layer is one decorator bound to the Handler below it
type layer struct {
	decorator swapd.Decorator
	inner     swapd.Handler
}

var _ swapd.Handler = layer{}

func (l layer) Check(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx) (*swapd.CheckResult, error) {
	return l.decorator.Check(ctx, store, tx, l.inner)
}

func (l layer) Deliver(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx) (*swapd.DeliverResult, error) {
	return l.decorator.Deliver(ctx, store, tx, l.inner)
}
