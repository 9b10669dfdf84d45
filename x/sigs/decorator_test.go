package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/crypto"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(SigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := swapd.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	addrs := []swapd.Address{priv.PublicKey().Address()}

	tx := NewStdTx([]byte("art"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec swapd.Decorator, my swapd.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec swapd.Decorator, my swapd.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(swapd.Decorator, swapd.Tx) error{check, deliver} {
		// test with no sigs
		tx.Signatures = nil
		err := fn(d, tx)
		assert.True(t, errors.ErrUnauthorized.Is(err), "%d", i)

		// test with one
		tx.Signatures = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, addrs, signers.Signers)

		// test with replay
		err = fn(d, tx)
		assert.True(t, ErrInvalidSequence.Is(err), "%d", i)

		// test allowing none
		ad := d.AllowMissingSigs()
		tx.Signatures = nil
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, []swapd.Address{}, signers.Signers)

		// test allowing, with next sequence
		tx.Signatures = []*StdSignature{sig1}
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, addrs, signers.Signers)
	}

	seq, err := NextSequence(kv, addrs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)
}

func TestDecoratorRejectsForgery(t *testing.T) {
	kv := store.MemStore()
	ctx := swapd.WithChainID(context.Background(), "forge-chain")
	priv := crypto.GenPrivKeyEd25519()

	tx := NewStdTx([]byte("settle 100"))
	sig, err := SignTx(priv, tx, "forge-chain", 0)
	require.NoError(t, err)

	// payload changed after signing
	tx.Payload = []byte("settle 1000")
	tx.Signatures = []*StdSignature{sig}
	_, err = NewDecorator().Deliver(ctx, kv, tx, new(SigCheckHandler))
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// signed for another chain
	tx.Payload = []byte("settle 100")
	other, err := SignTx(priv, tx, "other-chain", 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{other}
	_, err = NewDecorator().Deliver(ctx, kv, tx, new(SigCheckHandler))
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// nothing was stored for failed verifications
	seq, err := NextSequence(kv, priv.PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)
}
