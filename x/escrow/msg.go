package escrow

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
)

const (
	pathOpen   = "escrow/open"
	pathSettle = "escrow/settle"
)

var (
	_ swapd.Msg = (*OpenMsg)(nil)
	_ swapd.Msg = (*SettleMsg)(nil)
)

// OpenMsg locks SellAmount of SellAsset from the maker's account in a
// new escrow, asking BuyAmount of BuyAsset in exchange.
//
// Escrow and Bump must be the derivation of (maker, sell asset). Payout
// defaults to the maker's account of BuyAsset.
type OpenMsg struct {
	Maker      swapd.Address `json:"maker"`
	SellAsset  swapd.Address `json:"sell_asset"`
	BuyAsset   swapd.Address `json:"buy_asset"`
	SellAmount uint64        `json:"sell_amount"`
	BuyAmount  uint64        `json:"buy_amount"`
	Payout     swapd.Address `json:"payout,omitempty"`
	Escrow     swapd.Address `json:"escrow"`
	Bump       uint8         `json:"bump"`
}

func (OpenMsg) Path() string {
	return pathOpen
}

func (m *OpenMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := m.SellAsset.Validate(); err != nil {
		return errors.Wrap(err, "sell asset")
	}
	if err := m.BuyAsset.Validate(); err != nil {
		return errors.Wrap(err, "buy asset")
	}
	if m.SellAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "sell amount")
	}
	if m.BuyAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "buy amount")
	}
	if m.Payout != nil {
		if err := m.Payout.Validate(); err != nil {
			return errors.Wrap(err, "payout")
		}
	}
	if err := m.Escrow.Validate(); err != nil {
		return errors.Wrap(err, "escrow")
	}
	return nil
}

// SettleMsg fills the offer of Maker. The taker pays SellAmount of
// TakerSellAsset and receives BuyAmount of TakerBuyAsset, the asset the
// maker sells. Both amounts must match the offer exactly.
type SettleMsg struct {
	Taker          swapd.Address `json:"taker"`
	Maker          swapd.Address `json:"maker"`
	TakerSellAsset swapd.Address `json:"taker_sell_asset"`
	TakerBuyAsset  swapd.Address `json:"taker_buy_asset"`
	SellAmount     uint64        `json:"sell_amount"`
	BuyAmount      uint64        `json:"buy_amount"`
	Escrow         swapd.Address `json:"escrow"`
}

func (SettleMsg) Path() string {
	return pathSettle
}

func (m *SettleMsg) Validate() error {
	if err := m.Taker.Validate(); err != nil {
		return errors.Wrap(err, "taker")
	}
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := m.TakerSellAsset.Validate(); err != nil {
		return errors.Wrap(err, "taker sell asset")
	}
	if err := m.TakerBuyAsset.Validate(); err != nil {
		return errors.Wrap(err, "taker buy asset")
	}
	if err := m.Escrow.Validate(); err != nil {
		return errors.Wrap(err, "escrow")
	}
	return nil
}
