package utils

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
)

// Savepoint runs the rest of the stack inside a cache wrap. The
// writes of a handler that fails are discarded together, so a settle
// that cannot collect the payment never releases the custody.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ swapd.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check runs next in a savepoint if enabled for CheckTx
func (s Savepoint) Check(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx, next swapd.Checker) (*swapd.CheckResult, error) {
	var res *swapd.CheckResult
	err := savepoint(ctx, store, tx, s.onCheck, func(db swapd.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver runs next in a savepoint if enabled for DeliverTx
func (s Savepoint) Deliver(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx, next swapd.Deliverer) (*swapd.DeliverResult, error) {
	var res *swapd.DeliverResult
	err := savepoint(ctx, store, tx, s.onDeliver, func(db swapd.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// savepoint calls run over a cache of store, writing it on success.
// Stores that cannot be cache wrapped are passed through.
func savepoint(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx, enabled bool, run func(swapd.KVStore) error) error {
	if !enabled {
		return run(store)
	}
	cstore, ok := store.(swapd.CacheableKVStore)
	if !ok {
		return run(store)
	}

	cache := cstore.CacheWrap()
	if err := run(cache); err != nil {
		cache.Discard()
		swapd.GetLogger(ctx).Debug("savepoint discarded",
			"path", txPath(tx),
			"err", err)
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrapf(err, "writing savepoint of %s", txPath(tx))
	}
	return nil
}
