package escrow

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/store"
	"github.com/iov-one/swapd/swaptest"
	"github.com/iov-one/swapd/x/token"
	"github.com/iov-one/swapd/x/utils"
	"github.com/stretchr/testify/require"
)

const lamports = 100 * token.DefaultAccountDeposit

// fixture is a ledger where the maker holds asset x and two takers
// hold asset y, with the escrow extension configured.
type fixture struct {
	db           swapd.CacheableKVStore
	program      swapd.Address
	tokenProgram swapd.Address
	x, y         swapd.Address
	maker        swapd.Address
	taker        swapd.Address
	rival        swapd.Address
	auth         *swaptest.CtxAuth
	ledger       *token.Controller
	handlers     map[string]swapd.Handler
}

type router map[string]swapd.Handler

func (r router) Handle(path string, h swapd.Handler) {
	r[path] = h
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		db:           store.MemStore(),
		program:      swaptest.SeqAddress("escrow program"),
		tokenProgram: swaptest.SeqAddress("token program"),
		x:            swaptest.SeqAddress("asset x"),
		y:            swaptest.SeqAddress("asset y"),
		maker:        swaptest.NewAddress(),
		taker:        swaptest.NewAddress(),
		rival:        swaptest.NewAddress(),
		auth:         &swaptest.CtxAuth{Key: "signers"},
	}
	raw, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{
			token.ConfigName: token.Config{ProgramID: f.tokenProgram},
			ConfigName:       Config{ProgramID: f.program},
		},
		"token": token.Genesis{
			Mints: []token.GenesisMint{
				{Asset: f.x, Decimals: 6, Authority: f.maker},
				{Asset: f.y, Decimals: 9, Authority: f.taker},
			},
			Accounts: []token.GenesisAccount{
				{Owner: f.maker, Asset: f.x, Amount: 1000},
				{Owner: f.taker, Asset: f.y, Amount: 500},
				{Owner: f.rival, Asset: f.y, Amount: 500},
			},
			Wallets: []token.GenesisWallet{
				{Address: f.maker, Lamports: lamports},
				{Address: f.taker, Lamports: lamports},
				{Address: f.rival, Lamports: lamports},
			},
		},
	})
	require.NoError(t, err)
	var opts swapd.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	require.NoError(t, swapd.ChainInitializers{token.Initializer{}, Initializer{}}.FromGenesis(opts, f.db))

	f.ledger = token.NewController(f.auth)
	r := make(router)
	token.RegisterRoutes(r, f.auth, f.ledger)
	RegisterRoutes(r, f.auth, f.ledger)
	f.handlers = r
	return f
}

// deliver runs msg signed by signer within a savepoint, the way the
// application does.
func (f *fixture) deliver(t testing.TB, signer swapd.Address, msg swapd.Msg) (*swapd.DeliverResult, error) {
	t.Helper()
	h, ok := f.handlers[msg.Path()]
	require.True(t, ok, "no handler for %s", msg.Path())
	ctx := f.auth.SetSigners(context.Background(), signer)
	tx := &swaptest.Tx{Msg: msg}
	if _, err := utils.NewSavepoint().OnCheck().Check(ctx, f.db, tx, h); err != nil {
		return nil, err
	}
	return utils.NewSavepoint().OnDeliver().Deliver(ctx, f.db, tx, h)
}

// check runs only the Check phase, discarding any write
func (f *fixture) check(t testing.TB, signer swapd.Address, msg swapd.Msg) error {
	t.Helper()
	h, ok := f.handlers[msg.Path()]
	require.True(t, ok, "no handler for %s", msg.Path())
	ctx := f.auth.SetSigners(context.Background(), signer)
	cache := f.db.CacheWrap()
	defer cache.Discard()
	_, err := h.Check(ctx, cache, &swaptest.Tx{Msg: msg})
	return err
}

func (f *fixture) escrowAddress(t testing.TB, maker, sellAsset swapd.Address) (swapd.Address, uint8) {
	t.Helper()
	addr, bump, err := Address(f.program, maker, sellAsset)
	require.NoError(t, err)
	return addr, bump
}

// openMsg offers 100 x for 50 y
func (f *fixture) openMsg(t testing.TB) *OpenMsg {
	addr, bump := f.escrowAddress(t, f.maker, f.x)
	return &OpenMsg{
		Maker:      f.maker,
		SellAsset:  f.x,
		BuyAsset:   f.y,
		SellAmount: 100,
		BuyAmount:  50,
		Escrow:     addr,
		Bump:       bump,
	}
}

// settleMsg fills the offer of openMsg
func (f *fixture) settleMsg(t testing.TB, taker swapd.Address) *SettleMsg {
	addr, _ := f.escrowAddress(t, f.maker, f.x)
	return &SettleMsg{
		Taker:          taker,
		Maker:          f.maker,
		TakerSellAsset: f.y,
		TakerBuyAsset:  f.x,
		SellAmount:     50,
		BuyAmount:      100,
		Escrow:         addr,
	}
}

// balance of the associated account of owner for asset, zero if the
// account does not exist
func (f *fixture) balance(t testing.TB, owner, asset swapd.Address) uint64 {
	t.Helper()
	addr, err := f.ledger.AccountAddress(f.db, owner, asset)
	require.NoError(t, err)
	acct, err := f.ledger.GetAccount(f.db, addr)
	if err != nil {
		return 0
	}
	return acct.Amount
}

func (f *fixture) hasAccount(t testing.TB, owner, asset swapd.Address) bool {
	t.Helper()
	addr, err := f.ledger.AccountAddress(f.db, owner, asset)
	require.NoError(t, err)
	_, err = f.ledger.GetAccount(f.db, addr)
	return err == nil
}

func (f *fixture) lamports(t testing.TB, addr swapd.Address) uint64 {
	t.Helper()
	var w token.Wallet
	if err := token.NewWalletBucket().One(f.db, addr, &w); err != nil {
		return 0
	}
	return w.Lamports
}

// snapshot copies every key and value of the store
func snapshot(t testing.TB, db swapd.ReadOnlyKVStore) map[string]string {
	t.Helper()
	itr, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	defer itr.Close()
	res := make(map[string]string)
	for ; itr.Valid(); itr.Next() {
		res[string(itr.Key())] = string(itr.Value())
	}
	return res
}
