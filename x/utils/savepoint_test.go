package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/store"
	"github.com/iov-one/swapd/swaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		save    Savepoint
		err     *errors.Error
		check   bool // whether to call Check or Deliver
		written [][]byte
		missing [][]byte
	}{
		"savepoint disabled keeps partial writes": {
			save:    NewSavepoint(),
			err:     errors.ErrAmountNotEqual,
			check:   true,
			written: [][]byte{ok, nk},
		},
		"check savepoint drops writes on error": {
			save:    NewSavepoint().OnCheck(),
			err:     errors.ErrAmountNotEqual,
			check:   true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint drops writes on error": {
			save:    NewSavepoint().OnDeliver(),
			err:     errors.ErrInvalidSeeds,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			err:     errors.ErrInvalidSeeds,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			err:     errors.ErrInvalidSeeds,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			written: [][]byte{ok, nk},
		},
		"panic drops writes": {
			save:    NewSavepoint().OnDeliver(),
			err:     errors.ErrPanic,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := &swaptest.Handler{Key: nk, Value: nv}
			switch tc.err {
			case nil:
			case errors.ErrPanic:
				h.Panic = "handler failure"
			default:
				h.CheckErr = tc.err
				h.DeliverErr = tc.err
			}
			// recovery sits above the savepoint, as in the app stack
			stack := swaptest.Decorate(swaptest.Decorate(h, tc.save), NewRecovery())

			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = stack.Check(ctx, kv, &swaptest.Tx{})
			} else {
				_, err = stack.Deliver(ctx, kv, &swaptest.Tx{})
			}
			if tc.err != nil {
				assert.True(t, tc.err.Is(err), "got %v", err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "missing %X", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "unexpected %X", k)
			}
		})
	}
}

func TestSavepointLogsDiscardedTx(t *testing.T) {
	var buf bytes.Buffer
	ctx := swapd.WithLogger(context.Background(), log.NewTMLogger(&buf))
	kv := store.MemStore()
	save := NewSavepoint().OnDeliver()

	ok := &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "escrow/open"}}
	_, err := save.Deliver(ctx, kv, ok, &swaptest.Handler{Key: []byte("k"), Value: []byte("v")})
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	failed := &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "escrow/settle"}}
	h := &swaptest.Handler{Key: []byte("k2"), Value: []byte("v"), DeliverErr: errors.ErrAmountNotEqual.New("taker pays 49")}
	_, err = save.Deliver(ctx, kv, failed, h)
	assert.True(t, errors.ErrAmountNotEqual.Is(err))

	out := buf.String()
	assert.Contains(t, out, "savepoint discarded")
	assert.Contains(t, out, "path=escrow/settle")
	assert.Contains(t, out, "taker pays 49")
	assert.NotContains(t, out, "escrow/open")

	has, err := kv.Has([]byte("k2"))
	require.NoError(t, err)
	assert.False(t, has)
}
