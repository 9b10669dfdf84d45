package utils

import (
	"time"

	"github.com/iov-one/swapd"
)

// Logging writes one line per transaction: the path and duration,
// then either the error or the result log. Delivered transactions
// also carry their tags, so an escrow can be followed from open to
// settle in the node log.
type Logging struct{}

var _ swapd.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs failures as errors and success at debug level
func (Logging) Check(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx, next swapd.Checker) (*swapd.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	entry := txEntry{tx: tx, start: start, err: err, check: true}
	if err == nil {
		entry.msg = res.Log
	}
	entry.write(ctx)
	return res, err
}

// Deliver logs failures as errors and success at info level
func (Logging) Deliver(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx, next swapd.Deliverer) (*swapd.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	entry := txEntry{tx: tx, start: start, err: err}
	if err == nil {
		entry.msg, entry.tags = res.Log, res.Tags
	}
	entry.write(ctx)
	return res, err
}

// txEntry is what gets logged about one processed transaction
type txEntry struct {
	tx    swapd.Tx
	start time.Time
	msg   string
	tags  []swapd.Tag
	err   error
	check bool
}

func (e txEntry) write(ctx swapd.Context) {
	keyvals := []interface{}{
		"path", txPath(e.tx),
		"duration", time.Since(e.start) / time.Microsecond,
	}
	for _, t := range e.tags {
		keyvals = append(keyvals, t.Key, t.Value)
	}
	logger := swapd.GetLogger(ctx).With(keyvals...)

	// An empty message is still logged, the key/values are the point.
	switch {
	case e.err != nil:
		logger.Error(e.msg, "err", e.err)
	case e.check:
		logger.Debug(e.msg)
	default:
		logger.Info(e.msg)
	}
}
