package swapd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestHeightIsSetOnce(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)

	ctx = WithHeight(ctx, 42)
	height, ok := GetHeight(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(42), height)

	assert.Panics(t, func() { WithHeight(ctx, 43) })
}

func TestChainIDIsSetOnce(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetChainID(ctx))

	ctx = WithChainID(ctx, "swapd-local")
	assert.Equal(t, "swapd-local", GetChainID(ctx))

	assert.Panics(t, func() { WithChainID(ctx, "swapd-local") })
	assert.Panics(t, func() { WithChainID(context.Background(), "bad;id") })
}

func TestLoggerKeepsOtherValues(t *testing.T) {
	assert.Equal(t, DefaultLogger, GetLogger(context.Background()))

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), log.NewTMLogger(&buf))
	ctx = WithHeight(ctx, 5)
	ctx = WithLogInfo(ctx, "escrow", "EscrowA")

	GetLogger(ctx).Info("settled")
	assert.Contains(t, buf.String(), "escrow=EscrowA")

	height, _ := GetHeight(ctx)
	assert.Equal(t, int64(5), height)
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                          false,
		"swap":                      false,
		"swapd-local":               true,
		"swapd_TEST_01":             true,
		"swapd;local":               false,
		"swapd-chain-name-too-long": false,
	}

	for chainID, want := range cases {
		t.Run(chainID, func(t *testing.T) {
			assert.Equal(t, want, IsValidChainID(chainID))
		})
	}
}
