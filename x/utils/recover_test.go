package utils

import (
	"context"
	"testing"

	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/store"
	"github.com/iov-one/swapd/swaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	h := &swaptest.Handler{Panic: "boom"}
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()
	tx := &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "escrow/settle"}}

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { h.Check(ctx, s, tx) })
	assert.Panics(t, func() { h.Deliver(ctx, s, tx) })

	// Recovery wrapped handler returns an error naming the route.
	_, err := r.Check(ctx, s, tx, h)
	require.Error(t, err)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "escrow/settle: boom")

	_, err = r.Deliver(ctx, s, tx, h)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "escrow/settle: boom")

	// Passes through results.
	ok := &swaptest.Handler{}
	_, err = r.Deliver(ctx, s, tx, ok)
	assert.NoError(t, err)
}

func TestTxPath(t *testing.T) {
	cases := map[string]struct {
		tx   *swaptest.Tx
		want string
	}{
		"routed msg": {
			tx:   &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "token/transfer"}},
			want: "token/transfer",
		},
		"no msg": {
			tx:   &swaptest.Tx{},
			want: "(missing)",
		},
		"undecodable msg": {
			tx:   &swaptest.Tx{Err: errors.ErrInput.New("garbage")},
			want: "(missing)",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, txPath(tc.tx))
		})
	}
	assert.Equal(t, "(missing)", txPath(nil))
}
