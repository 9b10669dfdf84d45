package token

import (
	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
)

const (
	pathCreateMint    = "token/create_mint"
	pathMintTo        = "token/mint_to"
	pathTransfer      = "token/transfer"
	pathCreateAccount = "token/create_account"
)

var (
	_ swapd.Msg = (*CreateMintMsg)(nil)
	_ swapd.Msg = (*MintToMsg)(nil)
	_ swapd.Msg = (*TransferMsg)(nil)
	_ swapd.Msg = (*CreateAccountMsg)(nil)
)

// CreateMintMsg registers a new asset, issued by Authority
type CreateMintMsg struct {
	Authority swapd.Address `json:"authority"`
	Asset     swapd.Address `json:"asset"`
	Decimals  uint8         `json:"decimals"`
}

func (CreateMintMsg) Path() string {
	return pathCreateMint
}

func (m *CreateMintMsg) Validate() error {
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if err := m.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if m.Decimals > MaxDecimals {
		return errors.Wrapf(errors.ErrInput, "decimals %d, max %d", m.Decimals, MaxDecimals)
	}
	return nil
}

// MintToMsg issues new units into the account of Recipient. The mint
// authority pays for the account if it does not exist.
type MintToMsg struct {
	Authority swapd.Address `json:"authority"`
	Asset     swapd.Address `json:"asset"`
	Recipient swapd.Address `json:"recipient"`
	Amount    uint64        `json:"amount"`
}

func (MintToMsg) Path() string {
	return pathMintTo
}

func (m *MintToMsg) Validate() error {
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if err := m.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// TransferMsg moves Amount of Asset from the account of Owner to the
// account of Recipient. Owner pays for the recipient account if it
// does not exist.
type TransferMsg struct {
	Owner     swapd.Address `json:"owner"`
	Recipient swapd.Address `json:"recipient"`
	Asset     swapd.Address `json:"asset"`
	Amount    uint64        `json:"amount"`
	Decimals  uint8         `json:"decimals"`
}

func (TransferMsg) Path() string {
	return pathTransfer
}

func (m *TransferMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := m.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// CreateAccountMsg creates the account of Owner for Asset, paid by Payer
type CreateAccountMsg struct {
	Payer swapd.Address `json:"payer"`
	Owner swapd.Address `json:"owner"`
	Asset swapd.Address `json:"asset"`
}

func (CreateAccountMsg) Path() string {
	return pathCreateAccount
}

func (m *CreateAccountMsg) Validate() error {
	if err := m.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	return nil
}
