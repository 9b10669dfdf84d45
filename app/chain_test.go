package app

import (
	"context"
	"testing"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/store"
	"github.com/iov-one/swapd/swaptest"
	"github.com/iov-one/swapd/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	var (
		d1 = &swaptest.Decorator{}
		d2 = &swaptest.Decorator{}
		h  = &swaptest.Handler{}
	)
	stack := ChainDecorators(
		d1,
		utils.NewLogging(),
		utils.NewRecovery(),
		nil,
		d2,
	).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(ctx, db, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	require.NoError(t, err)

	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// an error short-circuits everything below it
	d2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 3, d1.CallCount())
	assert.Equal(t, 3, d2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanics(t *testing.T) {
	h := &swaptest.Handler{Panic: "boom"}
	stack := ChainDecorators(utils.NewRecovery()).WithHandler(h)

	_, err := stack.Deliver(context.Background(), store.MemStore(), &swaptest.Tx{})
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestChainSavepoint(t *testing.T) {
	cases := map[string]struct {
		handler *swaptest.Handler
		wantErr *errors.Error
		kept    bool
	}{
		"success is written": {
			handler: &swaptest.Handler{Key: []byte("k"), Value: []byte("v")},
			kept:    true,
		},
		"failure is dropped": {
			handler: &swaptest.Handler{
				Key:        []byte("k"),
				Value:      []byte("v"),
				DeliverErr: errors.ErrAmountNotEqual,
			},
			wantErr: errors.ErrAmountNotEqual,
		},
		"panic is dropped": {
			handler: &swaptest.Handler{
				Key:   []byte("k"),
				Value: []byte("v"),
				Panic: "boom",
			},
			wantErr: errors.ErrPanic,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			stack := ChainDecorators(
				utils.NewRecovery(),
				utils.NewSavepoint().OnDeliver(),
			).WithHandler(tc.handler)

			db := store.MemStore()
			_, err := stack.Deliver(context.Background(), db, &swaptest.Tx{})
			require.True(t, tc.wantErr.Is(err), "%+v", err)

			has, err := db.Has([]byte("k"))
			require.NoError(t, err)
			assert.Equal(t, tc.kept, has)
		})
	}
}

func TestCutoffNil(t *testing.T) {
	var nilDecorator *swaptest.Decorator
	d := &swaptest.Decorator{}
	got := cutoffNil([]swapd.Decorator{nil, d, nilDecorator, d, nil})
	assert.Len(t, got, 2)
}

func TestChainLeavesReceiverUntouched(t *testing.T) {
	a, b, c := &swaptest.Decorator{}, &swaptest.Decorator{}, &swaptest.Decorator{}
	base := ChainDecorators(a).Chain(b)
	left := base.Chain(c)
	right := base.Chain(nil, a)

	assert.Equal(t, []swapd.Decorator{a, b}, base.chain)
	assert.Equal(t, []swapd.Decorator{a, b, c}, left.chain)
	assert.Equal(t, []swapd.Decorator{a, b, a}, right.chain)
}
