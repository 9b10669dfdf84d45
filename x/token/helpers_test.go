package token

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/swaptest"
	"github.com/stretchr/testify/require"
)

// fixture is a ledger with two assets and two funded persons
type fixture struct {
	program    swapd.Address
	x, y       swapd.Address
	alice, bob swapd.Address
	db         swapd.CacheableKVStore
}

func loadGenesis(t testing.TB, db swapd.KVStore, conf Config, gen Genesis) {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"conf":  map[string]interface{}{ConfigName: conf},
		"token": gen,
	})
	require.NoError(t, err)
	var opts swapd.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	require.NoError(t, Initializer{}.FromGenesis(opts, db))
}

func newFixture(t testing.TB, db swapd.CacheableKVStore) *fixture {
	f := &fixture{
		program: swaptest.SeqAddress("token program"),
		x:       swaptest.SeqAddress("asset x"),
		y:       swaptest.SeqAddress("asset y"),
		alice:   swaptest.NewAddress(),
		bob:     swaptest.NewAddress(),
		db:      db,
	}
	loadGenesis(t, db, Config{ProgramID: f.program}, Genesis{
		Mints: []GenesisMint{
			{Asset: f.x, Decimals: 6, Authority: f.alice},
			{Asset: f.y, Decimals: 2, Authority: f.bob},
		},
		Accounts: []GenesisAccount{
			{Owner: f.alice, Asset: f.x, Amount: 1000},
			{Owner: f.bob, Asset: f.y, Amount: 500},
		},
		Wallets: []GenesisWallet{
			{Address: f.alice, Lamports: 10 * DefaultAccountDeposit},
			{Address: f.bob, Lamports: 10 * DefaultAccountDeposit},
		},
	})
	return f
}

func (f *fixture) account(t testing.TB, owner, asset swapd.Address) swapd.Address {
	t.Helper()
	addr, err := AccountAddress(f.program, owner, asset)
	require.NoError(t, err)
	return addr
}

func (f *fixture) lamports(t testing.TB, addr swapd.Address) uint64 {
	t.Helper()
	var w Wallet
	err := NewWalletBucket().One(f.db, addr, &w)
	if err != nil {
		return 0
	}
	return w.Lamports
}
