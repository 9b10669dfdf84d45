package token

import (
	amino "github.com/tendermint/go-amino"
)

// RegisterCodec registers the messages of this extension. The app
// codec must have registered the swapd.Msg interface first.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&CreateMintMsg{}, pathCreateMint, nil)
	cdc.RegisterConcrete(&MintToMsg{}, pathMintTo, nil)
	cdc.RegisterConcrete(&TransferMsg{}, pathTransfer, nil)
	cdc.RegisterConcrete(&CreateAccountMsg{}, pathCreateAccount, nil)
}
