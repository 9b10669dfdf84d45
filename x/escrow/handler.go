package escrow

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/orm"
	"github.com/iov-one/swapd/x"
	"github.com/iov-one/swapd/x/token"
)

const (
	openCost   int64 = 300
	settleCost int64 = 400
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r swapd.Registry, auth x.Authenticator, ledger token.Ledger) {
	bucket := NewBucket()
	r.Handle(pathOpen, OpenHandler{auth: auth, bucket: bucket, ledger: ledger})
	r.Handle(pathSettle, SettleHandler{auth: auth, bucket: bucket, ledger: ledger})
}

// OpenHandler creates escrows and locks the maker's tokens
type OpenHandler struct {
	auth   x.Authenticator
	bucket orm.Bucket
	ledger token.Ledger
}

var _ swapd.Handler = OpenHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h OpenHandler) Check(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapd.CheckResult{GasAllocated: openCost}, nil
}

// Deliver stores the escrow and moves the sell amount from the maker
// into a new custody account owned by the escrow.
func (h OpenHandler) Deliver(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.DeliverResult, error) {
	op, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	msg := op.msg

	payout, err := h.ledger.EnsureAccount(db, msg.Maker, msg.Maker, msg.BuyAsset)
	if err != nil {
		return nil, errors.Wrap(err, "payout account")
	}

	deposit, err := h.ledger.RecordDeposit(db)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.ChargeDeposit(db, msg.Maker, deposit); err != nil {
		return nil, errors.Wrap(err, "escrow deposit")
	}
	esc := &Escrow{
		Initialized: true,
		Maker:       msg.Maker,
		SellAsset:   msg.SellAsset,
		BuyAsset:    msg.BuyAsset,
		SellAmount:  msg.SellAmount,
		BuyAmount:   msg.BuyAmount,
		Payout:      payout,
		Bump:        msg.Bump,
		Deposit:     deposit,
	}
	if err := h.bucket.Put(db, msg.Escrow, esc); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	custody, err := h.ledger.CreateAccount(db, msg.Maker, msg.Escrow, msg.SellAsset)
	if err != nil {
		return nil, errors.Wrap(err, "custody account")
	}
	authority := token.SignerAuthority{Signer: msg.Maker}
	if err := h.ledger.Move(ctx, db, op.source, custody, msg.SellAsset, msg.SellAmount, op.decimals, authority); err != nil {
		return nil, errors.Wrap(err, "lock sell amount")
	}

	swapd.GetLogger(ctx).Info("escrow opened",
		"escrow", msg.Escrow,
		"maker", msg.Maker,
		"sell", msg.SellAmount,
		"buy", msg.BuyAmount)
	res := &swapd.DeliverResult{
		Data: msg.Escrow,
		Tags: []swapd.Tag{
			{Key: "action", Value: pathOpen},
			{Key: "escrow", Value: msg.Escrow.String()},
			{Key: "maker", Value: msg.Maker.String()},
			{Key: "asset", Value: msg.SellAsset.String()},
		},
	}
	return res, nil
}

// openOp is what Deliver needs from a validated OpenMsg
type openOp struct {
	msg *OpenMsg
	// source is the maker's account of the sell asset
	source   swapd.Address
	decimals uint8
}

// validate runs every precondition of an open, in order, without
// touching the store.
func (h OpenHandler) validate(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*openOp, error) {
	m, err := swapd.LoadMsg(tx)
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	msg, ok := m.(*OpenMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}

	if err := x.RequireSigner(ctx, h.auth, msg.Maker, "maker"); err != nil {
		return nil, err
	}

	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	if err := swapd.VerifyDerivedAddress(conf.ProgramID, Seeds(msg.Maker, msg.SellAsset), msg.Escrow, msg.Bump); err != nil {
		return nil, errors.Wrap(err, "escrow")
	}

	switch exists, err := h.bucket.Has(db, msg.Escrow); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrapf(errors.ErrInitialized, "escrow %s", msg.Escrow)
	}

	sellMint, err := h.ledger.GetMint(db, msg.SellAsset)
	if err != nil {
		return nil, errors.Wrap(err, "sell asset")
	}
	if _, err := h.ledger.GetMint(db, msg.BuyAsset); err != nil {
		return nil, errors.Wrap(err, "buy asset")
	}
	payout, err := h.ledger.AccountAddress(db, msg.Maker, msg.BuyAsset)
	if err != nil {
		return nil, err
	}
	if msg.Payout != nil && !msg.Payout.Equals(payout) {
		return nil, errors.Wrapf(errors.ErrInvalidAuthority, "payout %s is not the maker account %s", msg.Payout, payout)
	}

	source, err := h.ledger.AccountAddress(db, msg.Maker, msg.SellAsset)
	if err != nil {
		return nil, err
	}
	balance, err := h.ledger.Balance(db, source)
	if err != nil {
		return nil, errors.Wrap(err, "maker account")
	}
	if balance < msg.SellAmount {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, sell amount %d", balance, msg.SellAmount)
	}

	return &openOp{msg: msg, source: source, decimals: sellMint.Decimals}, nil
}

// SettleHandler fills an escrow: the taker receives the locked tokens
// and pays the maker in one step. The payment is always taken in the
// escrow's buy asset, so a request naming another TakerSellAsset is
// rejected with ErrInput before any effect.
type SettleHandler struct {
	auth   x.Authenticator
	bucket orm.Bucket
	ledger token.Ledger
}

var _ swapd.Handler = SettleHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h SettleHandler) Check(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapd.CheckResult{GasAllocated: settleCost}, nil
}

// Deliver releases the custody to the taker, closes the custody
// account, collects the taker's payment and removes the escrow. Any
// failure leaves the escrow untouched once the savepoint is discarded.
func (h SettleHandler) Deliver(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.DeliverResult, error) {
	op, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	msg, esc := op.msg, op.escrow
	authority := esc.Authority(op.program)

	received, err := h.ledger.EnsureAccount(db, msg.Taker, msg.Taker, esc.SellAsset)
	if err != nil {
		return nil, errors.Wrap(err, "taker account")
	}
	sellMint, err := h.ledger.GetMint(db, esc.SellAsset)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Move(ctx, db, op.custody, received, esc.SellAsset, esc.SellAmount, sellMint.Decimals, authority); err != nil {
		return nil, errors.Wrap(err, "release custody")
	}
	if err := h.ledger.Close(ctx, db, op.custody, esc.Maker, authority); err != nil {
		return nil, errors.Wrap(err, "close custody")
	}

	buyMint, err := h.ledger.GetMint(db, esc.BuyAsset)
	if err != nil {
		return nil, err
	}
	payer, err := h.ledger.AccountAddress(db, msg.Taker, esc.BuyAsset)
	if err != nil {
		return nil, err
	}
	taker := token.SignerAuthority{Signer: msg.Taker}
	if err := h.ledger.Move(ctx, db, payer, esc.Payout, esc.BuyAsset, esc.BuyAmount, buyMint.Decimals, taker); err != nil {
		return nil, errors.Wrap(err, "payment")
	}

	if err := h.bucket.Delete(db, msg.Escrow); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}
	if err := h.ledger.RefundDeposit(db, esc.Maker, esc.Deposit); err != nil {
		return nil, errors.Wrap(err, "escrow deposit")
	}

	swapd.GetLogger(ctx).Info("escrow settled",
		"escrow", msg.Escrow,
		"maker", esc.Maker,
		"taker", msg.Taker)
	res := &swapd.DeliverResult{
		Data: msg.Escrow,
		Tags: []swapd.Tag{
			{Key: "action", Value: pathSettle},
			{Key: "escrow", Value: msg.Escrow.String()},
			{Key: "maker", Value: esc.Maker.String()},
			{Key: "taker", Value: msg.Taker.String()},
		},
	}
	return res, nil
}

// settleOp is what Deliver needs from a validated SettleMsg
type settleOp struct {
	msg     *SettleMsg
	escrow  *Escrow
	program swapd.Address
	custody swapd.Address
}

// validate runs every precondition of a settlement, in order, without
// touching the store.
func (h SettleHandler) validate(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*settleOp, error) {
	m, err := swapd.LoadMsg(tx)
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	msg, ok := m.(*SettleMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, m)
	}

	if err := x.RequireSigner(ctx, h.auth, msg.Taker, "taker"); err != nil {
		return nil, err
	}

	conf, err := LoadConfig(db)
	if err != nil {
		return nil, err
	}
	addr, bump, err := Address(conf.ProgramID, msg.Maker, msg.TakerBuyAsset)
	if err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	if !addr.Equals(msg.Escrow) {
		return nil, errors.Wrapf(errors.ErrInvalidSeeds, "escrow %s, derived %s", msg.Escrow, addr)
	}
	var esc Escrow
	switch err := h.bucket.One(db, msg.Escrow, &esc); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrUninitialized, "escrow %s", msg.Escrow)
	default:
		return nil, err
	}
	if !esc.Initialized {
		return nil, errors.Wrapf(errors.ErrUninitialized, "escrow %s", msg.Escrow)
	}
	if esc.Bump != bump {
		return nil, errors.Wrapf(errors.ErrInvalidSeeds, "stored bump %d, derived %d", esc.Bump, bump)
	}
	if !esc.BuyAsset.Equals(msg.TakerSellAsset) {
		return nil, errors.Wrapf(errors.ErrInput, "escrow wants %s, taker sells %s", esc.BuyAsset, msg.TakerSellAsset)
	}

	if msg.BuyAmount != esc.SellAmount {
		return nil, errors.Wrapf(errors.ErrAmountNotEqual, "taker expects %d, escrow sells %d", msg.BuyAmount, esc.SellAmount)
	}
	custody, err := h.ledger.AccountAddress(db, msg.Escrow, esc.SellAsset)
	if err != nil {
		return nil, err
	}
	held, err := h.ledger.Balance(db, custody)
	if err != nil {
		return nil, errors.Wrap(err, "custody account")
	}
	if held != esc.SellAmount {
		return nil, errors.Wrapf(errors.ErrAmountNotEqual, "custody holds %d, escrow sells %d", held, esc.SellAmount)
	}
	if msg.SellAmount != esc.BuyAmount {
		return nil, errors.Wrapf(errors.ErrAmountNotEqual, "taker pays %d, escrow wants %d", msg.SellAmount, esc.BuyAmount)
	}

	return &settleOp{msg: msg, escrow: &esc, program: conf.ProgramID, custody: custody}, nil
}
