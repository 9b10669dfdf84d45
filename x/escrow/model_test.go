package escrow

import (
	"context"
	"testing"

	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/orm"
	"github.com/iov-one/swapd/swaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEscrow() *Escrow {
	return &Escrow{
		Initialized: true,
		Maker:       swaptest.SeqAddress("maker"),
		SellAsset:   swaptest.SeqAddress("x"),
		BuyAsset:    swaptest.SeqAddress("y"),
		SellAmount:  100,
		BuyAmount:   50,
		Payout:      swaptest.SeqAddress("payout"),
		Bump:        254,
		Deposit:     7,
	}
}

func TestEscrowValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(e *Escrow)
		wantErr *errors.Error
	}{
		"valid": {
			mutate: func(e *Escrow) {},
		},
		"not initialized": {
			mutate:  func(e *Escrow) { e.Initialized = false },
			wantErr: errors.ErrUninitialized,
		},
		"no maker": {
			mutate:  func(e *Escrow) { e.Maker = nil },
			wantErr: errors.ErrEmpty,
		},
		"short buy asset": {
			mutate:  func(e *Escrow) { e.BuyAsset = e.BuyAsset[:20] },
			wantErr: errors.ErrInput,
		},
		"zero sell amount": {
			mutate:  func(e *Escrow) { e.SellAmount = 0 },
			wantErr: errors.ErrAmount,
		},
		"zero buy amount": {
			mutate:  func(e *Escrow) { e.BuyAmount = 0 },
			wantErr: errors.ErrAmount,
		},
		"no payout": {
			mutate:  func(e *Escrow) { e.Payout = nil },
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := validEscrow()
			tc.mutate(e)
			err := e.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %v", err)
		})
	}
}

// Addresses are fixed size, so amounts and bump must be as well for
// every record to take the same space.
func TestEscrowFixedSize(t *testing.T) {
	small, err := orm.Marshal(validEscrow())
	require.NoError(t, err)

	big := validEscrow()
	big.SellAmount = 1<<64 - 1
	big.BuyAmount = 1<<64 - 1
	big.Deposit = 1<<64 - 1
	raw, err := orm.Marshal(big)
	require.NoError(t, err)
	assert.Equal(t, len(small), len(raw))

	var back Escrow
	require.NoError(t, orm.Unmarshal(raw, &back))
	assert.Equal(t, big, &back)
}

func TestEscrowAuthority(t *testing.T) {
	program := swaptest.SeqAddress("escrow program")
	maker := swaptest.NewAddress()
	asset := swaptest.SeqAddress("x")

	addr, bump, err := Address(program, maker, asset)
	require.NoError(t, err)

	e := validEscrow()
	e.Maker, e.SellAsset, e.Bump = maker, asset, bump
	got, err := e.Authority(program).Resolve(context.Background(), &swaptest.Auth{})
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	// the same seeds under another program never designate the escrow
	other, err := e.Authority(swaptest.SeqAddress("other")).Resolve(context.Background(), &swaptest.Auth{})
	if err == nil {
		assert.NotEqual(t, addr, other)
	}
}
