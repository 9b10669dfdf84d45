package app

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/app"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/x/escrow"
	"github.com/iov-one/swapd/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestGenInitOptions(t *testing.T) {
	operator := newAccount()

	raw, err := GenInitOptions([]string{operator.address().String()})
	require.NoError(t, err)

	var gen Genesis
	require.NoError(t, json.Unmarshal(raw, &gen))
	assert.Equal(t, ProgramID("token"), gen.Conf.Token.ProgramID)
	assert.Equal(t, ProgramID("escrow"), gen.Conf.Escrow.ProgramID)
	require.Len(t, gen.Token.Wallets, 1)
	assert.Equal(t, operator.address(), gen.Token.Wallets[0].Address)

	abciApp, err := GenerateApp("", log.NewNopLogger(), false)
	require.NoError(t, err)
	a := abciApp.(*app.BaseApp)
	a.InitChain(abci.RequestInitChain{AppStateBytes: raw, ChainId: chainID})
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	a.EndBlock(abci.RequestEndBlock{Height: 1})
	a.Commit()

	kv := app.NewABCIStore(a)
	var w token.Wallet
	require.NoError(t, token.NewWalletBucket().One(kv, operator.address(), &w))
	assert.Equal(t, DefaultOperatorLamports, w.Lamports)

	conf, err := escrow.LoadConfig(kv)
	require.NoError(t, err)
	assert.Equal(t, ProgramID("escrow"), conf.ProgramID)
}

func TestGenInitOptionsRejectsBadOperator(t *testing.T) {
	_, err := GenInitOptions([]string{"not-base58-0OIl"})
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
}

func TestProgramID(t *testing.T) {
	assert.Len(t, ProgramID("escrow"), swapd.AddressLength)
	assert.Equal(t, ProgramID("escrow"), ProgramID("escrow"))
	assert.NotEqual(t, ProgramID("escrow"), ProgramID("token"))
}
