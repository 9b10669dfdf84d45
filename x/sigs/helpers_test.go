package sigs

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/swaptest"
)

// StdTx is a minimal signed transaction for tests
type StdTx struct {
	swapd.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{
		Tx:      &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: "test/sigs"}},
		Payload: payload,
	}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []swapd.Address
}

var _ swapd.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx) (*swapd.CheckResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &swapd.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx swapd.Context, store swapd.KVStore, tx swapd.Tx) (*swapd.DeliverResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &swapd.DeliverResult{}, nil
}
