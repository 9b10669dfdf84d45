package app

import (
	"context"
	"encoding/binary"
	"sync"
	"testing"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/orm"
	"github.com/iov-one/swapd/store/iavl"
	"github.com/iov-one/swapd/swaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// counter increments a big endian number stored under key, reading
// it first. Without serialized execution concurrent calls lose updates.
type counter struct {
	key []byte
}

func (c counter) Check(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.CheckResult, error) {
	return &swapd.CheckResult{}, nil
}

func (c counter) Deliver(ctx swapd.Context, db swapd.KVStore, tx swapd.Tx) (*swapd.DeliverResult, error) {
	raw, err := db.Get(c.key)
	if err != nil {
		return nil, err
	}
	var n uint64
	if raw != nil {
		n = binary.BigEndian.Uint64(raw)
	}
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, n+1)
	if err := db.Set(c.key, out); err != nil {
		return nil, err
	}
	return &swapd.DeliverResult{Data: out}, nil
}

// pathDecoder turns the tx bytes into a message routed by that path.
func pathDecoder(bz []byte) (swapd.Tx, error) {
	if len(bz) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty tx")
	}
	return &swaptest.Tx{Msg: &swaptest.Msg{RoutePath: string(bz)}}, nil
}

type initFunc func(swapd.Options, swapd.KVStore) error

func (f initFunc) FromGenesis(opts swapd.Options, db swapd.KVStore) error {
	return f(opts, db)
}

func newTestApp(t *testing.T, r *Router) *BaseApp {
	t.Helper()

	qr := swapd.NewQueryRouter()
	orm.RegisterQuery(qr)
	sa, err := NewStoreApp("test", iavl.MemCommitStore(), qr, context.Background())
	require.NoError(t, err)
	sa.WithInit(initFunc(func(opts swapd.Options, db swapd.KVStore) error {
		var greeting string
		if err := opts.ReadOptions("greeting", &greeting); err != nil {
			return err
		}
		if greeting == "" {
			return nil
		}
		return db.Set([]byte("greeting"), []byte(greeting))
	}))
	return NewBaseApp(sa, pathDecoder, r, false)
}

func TestAppLifecycle(t *testing.T) {
	r := NewRouter()
	r.Handle("count", counter{key: []byte("count")})
	app := newTestApp(t, r)

	app.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain",
		AppStateBytes: []byte(`{"greeting": "hello"}`),
	})
	assert.Equal(t, "test-chain", app.GetChainID())
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{
			ChainId:       "other-chain",
			AppStateBytes: []byte(`{}`),
		})
	})

	app.BeginBlock(abci.RequestBeginBlock{})
	res := app.DeliverTx([]byte("count"))
	require.Equal(t, uint32(errors.SuccessABCICode), res.Code, res.Log)

	unknown := app.DeliverTx([]byte("unknown"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), unknown.Code)
	empty := app.CheckTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), empty.Code)

	app.EndBlock(abci.RequestEndBlock{})
	commit := app.Commit()
	assert.NotEmpty(t, commit.Data)

	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	kv := NewABCIStore(app)
	greeting, err := kv.Get([]byte("greeting"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(greeting))
	missing, err := kv.Has([]byte("nothing here"))
	require.NoError(t, err)
	assert.False(t, missing)

	itr, err := kv.Iterator(nil, nil)
	require.NoError(t, err)
	models := orm.ConsumeIterator(itr)
	keys := make([]string, 0, len(models))
	for _, m := range models {
		keys = append(keys, string(m.Key))
	}
	assert.Contains(t, keys, "count")
	assert.Contains(t, keys, "greeting")

	bad := app.Query(abci.RequestQuery{Path: "/nope"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), bad.Code)
}

func TestAppSerializesTransactions(t *testing.T) {
	r := NewRouter()
	r.Handle("count", counter{key: []byte("count")})
	app := newTestApp(t, r)
	app.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain",
		AppStateBytes: []byte(`{}`),
	})
	app.BeginBlock(abci.RequestBeginBlock{})

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := app.DeliverTx([]byte("count"))
			assert.Equal(t, uint32(errors.SuccessABCICode), res.Code, res.Log)
		}()
	}
	wg.Wait()
	app.Commit()

	raw, err := NewABCIStore(app).Get([]byte("count"))
	require.NoError(t, err)
	assert.Equal(t, uint64(workers), binary.BigEndian.Uint64(raw))
}

func TestResultSet(t *testing.T) {
	models := []swapd.Model{
		swapd.Pair([]byte("a"), []byte("1")),
		swapd.Pair([]byte("b"), []byte("2")),
	}
	keys, err := ResultsFromKeys(models).Marshal()
	require.NoError(t, err)
	values, err := ResultsFromValues(models).Marshal()
	require.NoError(t, err)

	got, err := toModels(keys, values)
	require.NoError(t, err)
	assert.Equal(t, models, got)

	empty, err := toModels(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = JoinResults(&ResultSet{Results: [][]byte{[]byte("a")}}, &ResultSet{})
	assert.True(t, errors.ErrInput.Is(err))
}
