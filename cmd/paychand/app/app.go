/*
Package app links together all the various components
to construct the paychand application.
*/
package app

import (
	"fmt"
	"math/big"
	"path/filepath"
	"strings"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/app"
	"github.com/iov-one/paychan/store/iavl"
	"github.com/iov-one/paychan/x/cash"
	"github.com/iov-one/paychan/x/channel"
	"github.com/iov-one/paychan/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Chain returns a chain of decorators, to handle logging, recovery and
// rollback of failed messages.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint(),
	)
}

// Router returns a default router, dispatching to the channel handlers.
func Router(ctrl cash.Controller) *app.Router {
	r := app.NewRouter()
	channel.RegisterRoutes(r, ctrl)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into a StoreApp.
func Stack(ctrl cash.Controller) paychan.Handler {
	return Chain().WithHandler(Router(ctrl))
}

// Initializers returns all extensions that read the genesis file.
func Initializers() paychan.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		channel.Initializer{},
	)
}

// Application constructs the application persisting its state under dbPath.
// An empty dbPath means in memory state.
func Application(name string, dbPath string, logger log.Logger, debug bool) (*app.StoreApp, CommitStore, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, nil, err
	}
	ctrl := cash.NewController(cash.NewBucket())
	a, err := app.NewStoreApp(name, kv, Stack(ctrl))
	if err != nil {
		kv.Close()
		return nil, nil, err
	}
	a.WithLogger(logger).
		WithInit(Initializers()).
		WithDebug(debug)
	return a, kv, nil
}

// CommitStore is the persistent store backing an application. It must be
// closed once the application is no longer used.
type CommitStore interface {
	paychan.CommitKVStore
	Close()
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (CommitStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("invalid database name: %s", path)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	kv, err := iavl.NewCommitStore(dir, name)
	if err != nil {
		return nil, err
	}
	return kv, nil
}

// Balance returns the amount held by given address in the current state.
func Balance(a *app.StoreApp, addr paychan.Address) (amount *big.Int, err error) {
	ctrl := cash.NewController(cash.NewBucket())
	err = a.View(func(db paychan.ReadOnlyKVStore) error {
		amount, err = ctrl.Balance(db, addr)
		return err
	})
	return amount, err
}

// Channel returns the channel stored under given id.
func Channel(a *app.StoreApp, id paychan.Address) (ch *channel.Channel, err error) {
	bucket := channel.NewBucket()
	err = a.View(func(db paychan.ReadOnlyKVStore) error {
		ch, err = bucket.GetChannel(db, id)
		return err
	})
	return ch, err
}
