/*
Package app links together all the various components
to construct the swapd node.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/app"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/orm"
	"github.com/iov-one/swapd/store/iavl"
	"github.com/iov-one/swapd/x"
	"github.com/iov-one/swapd/x/escrow"
	"github.com/iov-one/swapd/x/sigs"
	"github.com/iov-one/swapd/x/token"
	"github.com/iov-one/swapd/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a default router, dispatching to the ledger
// and the escrow messages
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ledger := token.NewController(authFn)
	token.RegisterRoutes(r, authFn, ledger)
	escrow.RegisterRoutes(r, authFn, ledger)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/mints", "/accounts", "/wallets",
// "/escrows", "/auth" and "/"
func QueryRouter() swapd.QueryRouter {
	r := swapd.NewQueryRouter()
	r.RegisterAll(
		token.RegisterQuery,
		escrow.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() swapd.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Initializers loads the genesis state of every extension
func Initializers() swapd.Initializer {
	return swapd.ChainInitializers{
		token.Initializer{},
		escrow.Initializer{},
	}
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h swapd.Handler,
	tx swapd.TxDecoder, dbPath string, debug bool) (*app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create database instance")
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load state")
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (swapd.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", path)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name, iavl.DefaultCacheSize)
}
