package escrow

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/orm"
	"github.com/iov-one/swapd/x/token"
)

const escrowLabel = "escrow"

// Escrow is an open offer. It exists from Open until Settle and is
// stored at the address derived from its maker and sell asset.
type Escrow struct {
	Initialized bool          `json:"initialized"`
	Maker       swapd.Address `json:"maker"`
	SellAsset   swapd.Address `json:"sell_asset"`
	BuyAsset    swapd.Address `json:"buy_asset"`
	SellAmount  uint64        `json:"sell_amount" binary:"fixed64"`
	BuyAmount   uint64        `json:"buy_amount" binary:"fixed64"`
	// Payout is the token account of the maker receiving BuyAsset
	Payout swapd.Address `json:"payout"`
	Bump   uint8         `json:"bump"`
	// Deposit is the storage deposit paid by the maker
	Deposit uint64 `json:"deposit" binary:"fixed64"`
}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is valid
func (e *Escrow) Validate() error {
	if !e.Initialized {
		return errors.Wrap(errors.ErrUninitialized, "escrow")
	}
	if err := e.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := e.SellAsset.Validate(); err != nil {
		return errors.Wrap(err, "sell asset")
	}
	if err := e.BuyAsset.Validate(); err != nil {
		return errors.Wrap(err, "buy asset")
	}
	if err := e.Payout.Validate(); err != nil {
		return errors.Wrap(err, "payout")
	}
	if e.SellAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "sell amount")
	}
	if e.BuyAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "buy amount")
	}
	return nil
}

// Authority lets the escrow sign for its custody account
func (e *Escrow) Authority(program swapd.Address) token.DerivedAuthority {
	return token.DerivedAuthority{
		Program: program,
		Seeds:   Seeds(e.Maker, e.SellAsset),
		Bump:    e.Bump,
	}
}

// Seeds returns the seed tuple designating the offer of maker for
// sellAsset.
func Seeds(maker, sellAsset swapd.Address) [][]byte {
	return swapd.Seeds(escrowLabel, maker, sellAsset)
}

// Address returns the escrow address and its canonical bump for the
// offer of maker for sellAsset.
func Address(program, maker, sellAsset swapd.Address) (swapd.Address, uint8, error) {
	return swapd.FindDerivedAddress(program, Seeds(maker, sellAsset))
}

// NewBucket stores escrows by escrow address, indexed by maker
func NewBucket() orm.Bucket {
	return orm.NewBucket("escrow", &Escrow{}).WithIndex("maker", idxMaker)
}

func idxMaker(m orm.Model) ([]byte, error) {
	esc, ok := m.(*Escrow)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Escrow")
	}
	return esc.Maker, nil
}

// RegisterQuery will register this bucket as "/escrows", and the
// maker index as "/escrows/maker"
func RegisterQuery(qr swapd.QueryRouter) {
	NewBucket().Register("escrows", qr)
}
