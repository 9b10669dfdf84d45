package escrow

import (
	amino "github.com/tendermint/go-amino"
)

// RegisterCodec registers the messages of this extension. The app
// codec must have registered the swapd.Msg interface first.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&OpenMsg{}, pathOpen, nil)
	cdc.RegisterConcrete(&SettleMsg{}, pathSettle, nil)
}
