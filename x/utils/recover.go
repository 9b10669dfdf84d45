package utils

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
)

// Recovery turns a panicking handler into an ErrPanic tagged with
// the message path, so the app reports which route failed.
type Recovery struct{}

var _ swapd.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx, next swapd.Checker) (_ *swapd.CheckResult, err error) {
	defer recoverPanic(tx, &err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx, next swapd.Deliverer) (_ *swapd.DeliverResult, err error) {
	defer recoverPanic(tx, &err)
	return next.Deliver(ctx, store, tx)
}

// recoverPanic must be deferred directly to stop the panic
func recoverPanic(tx swapd.Tx, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%s: %v", txPath(tx), r)
	}
}

// txPath is swapd.GetPath that survives a nil or broken tx
func txPath(tx swapd.Tx) (path string) {
	defer func() {
		if recover() != nil {
			path = "(missing)"
		}
	}()
	if tx == nil {
		return "(missing)"
	}
	return swapd.GetPath(tx)
}
