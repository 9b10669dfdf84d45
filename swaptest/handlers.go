package swaptest

import (
	"github.com/iov-one/swapd"
)

// Handler is a mock implementation of the swapd.Handler interface.
//
// Before returning, it writes Key/Value into the store when Key is set,
// so tests can observe what a savepoint keeps or drops. Panic, when
// set, is raised instead of returning.
type Handler struct {
	checkCall     int
	CheckResult   swapd.CheckResult
	CheckErr      error
	deliverCall   int
	DeliverResult swapd.DeliverResult
	DeliverErr    error

	Key   []byte
	Value []byte
	Panic interface{}
}

var _ swapd.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.CheckResult, error) {
	h.checkCall++
	if err := h.touch(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.DeliverResult, error) {
	h.deliverCall++
	if err := h.touch(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) touch(db swapd.KVStore) error {
	if h.Key != nil {
		if err := db.Set(h.Key, h.Value); err != nil {
			return err
		}
	}
	if h.Panic != nil {
		panic(h.Panic)
	}
	return nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
