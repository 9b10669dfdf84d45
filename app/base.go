package app

import (
	"sync"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx, CheckTx, and BeginBlock
// handlers to the storage and query functionality of StoreApp.
//
// Every ABCI call holds one lock, so transactions are processed
// strictly one after another even when the app is shared between
// goroutines. A handler never observes another handler half way.
type BaseApp struct {
	*StoreApp

	mu      sync.Mutex
	decoder swapd.TxDecoder
	handler swapd.Handler
	debug   bool
}

var _ abci.Application = (*BaseApp)(nil)

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder swapd.TxDecoder,
	handler swapd.Handler,
	debug bool,
) *BaseApp {
	return &BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b *BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.loadTx(txBytes)
	if err != nil {
		return swapd.DeliverTxError(err, b.debug)
	}

	ctx := swapd.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", swapd.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return swapd.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b *BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.loadTx(txBytes)
	if err != nil {
		return swapd.CheckTxError(err, b.debug)
	}

	ctx := swapd.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", swapd.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return swapd.CheckOrError(res, err, b.debug)
}

// Info - ABCI
func (b *BaseApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.StoreApp.Info(req)
}

// Query - ABCI
func (b *BaseApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.StoreApp.Query(req)
}

// InitChain - ABCI
func (b *BaseApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.StoreApp.InitChain(req)
}

// BeginBlock - ABCI
func (b *BaseApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.StoreApp.BeginBlock(req)
}

// EndBlock - ABCI
func (b *BaseApp) EndBlock(req abci.RequestEndBlock) abci.ResponseEndBlock {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.StoreApp.EndBlock(req)
}

// Commit - ABCI
func (b *BaseApp) Commit() abci.ResponseCommit {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.StoreApp.Commit()
}

// loadTx calls the decoder, and capture any panics
func (b *BaseApp) loadTx(txBytes []byte) (tx swapd.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
