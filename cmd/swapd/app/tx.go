package app

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/x/escrow"
	"github.com/iov-one/swapd/x/sigs"
	"github.com/iov-one/swapd/x/token"
	amino "github.com/tendermint/go-amino"
)

// Tx is the transaction format of the node: one message together
// with the signatures authorizing it.
type Tx struct {
	Msg        swapd.Msg            `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

// make sure tx fulfills all interfaces
var _ swapd.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// cdc encodes transactions. Every message of every extension is
// registered under its route path.
var cdc = MakeCodec()

// MakeCodec returns a codec that knows all messages of the node
func MakeCodec() *amino.Codec {
	c := amino.NewCodec()
	c.RegisterInterface((*swapd.Msg)(nil), nil)
	token.RegisterCodec(c)
	escrow.RegisterCodec(c)
	c.Seal()
	return c
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (swapd.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// Marshal serializes the tx in its wire format
func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "tx has no msg")
	}
	bz, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Unmarshal loads a tx from its wire format
func (tx *Tx) Unmarshal(bz []byte) error {
	if len(bz) == 0 {
		return errors.Wrap(errors.ErrInput, "empty tx")
	}
	if err := cdc.UnmarshalBinaryBare(bz, tx); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// GetMsg returns the single message of the tx
func (tx *Tx) GetMsg() (swapd.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "tx has no msg")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures on the tx
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign: the tx without
// any signature.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}
