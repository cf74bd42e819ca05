package channel

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/app"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store/iavl"
	"github.com/iov-one/paychan/weavetest"
	"github.com/iov-one/paychan/x/cash"
	"github.com/iov-one/paychan/x/utils"
)

// now is the block time all tests start at.
var now = time.Unix(1546300800, 0)

type fixture struct {
	app    *app.StoreApp
	clock  *weavetest.Clock
	bucket Bucket
	cash   cash.Controller
}

type funds struct {
	addr   paychan.Address
	amount int64
}

// newFixture returns an application running the channel extension. Given
// accounts are funded at genesis.
func newFixture(t testing.TB, conf *Configuration, accounts ...funds) *fixture {
	t.Helper()

	ctrl := cash.NewController(cash.NewBucket())
	rt := app.NewRouter()
	RegisterRoutes(rt, ctrl)
	handler := app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint(),
	).WithHandler(rt)

	clock := weavetest.NewClock(now)
	a, err := app.NewStoreApp("channel-test", iavl.MockCommitStore(), handler)
	if err != nil {
		t.Fatalf("cannot create application: %s", err)
	}
	a.WithClock(clock).WithInit(app.ChainInitializers(cash.Initializer{}, Initializer{}))

	var genAccounts []cash.GenesisAccount
	for _, acc := range accounts {
		genAccounts = append(genAccounts, cash.GenesisAccount{
			Address: acc.addr,
			Balance: big.NewInt(acc.amount).String(),
		})
	}
	opts := paychan.Options{"cash": mustJSON(t, genAccounts)}
	if conf != nil {
		opts["conf"] = mustJSON(t, map[string]*Configuration{confPkg: conf})
	}
	if err := a.InitChain(app.Genesis{ChainID: "test-chain", AppState: opts}); err != nil {
		t.Fatalf("cannot initialize chain: %+v", err)
	}

	return &fixture{
		app:    a,
		clock:  clock,
		bucket: NewBucket(),
		cash:   ctrl,
	}
}

func mustJSON(t testing.TB, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("cannot serialize: %s", err)
	}
	return raw
}

func (f *fixture) deliver(msg paychan.Msg) (app.Receipt, error) {
	return f.app.Deliver(context.Background(), msg)
}

// open delivers an open message that is expected to succeed and returns
// the channel id.
func (f *fixture) open(t testing.TB, msg *OpenMsg) paychan.Address {
	t.Helper()
	r, err := f.deliver(msg)
	if err != nil {
		t.Fatalf("cannot open channel: %+v", err)
	}
	return paychan.Address(r.Data)
}

// channel returns the stored state of a channel, or nil if it does not
// exist.
func (f *fixture) channel(t testing.TB, id paychan.Address) *Channel {
	t.Helper()
	var ch *Channel
	err := f.app.View(func(db paychan.ReadOnlyKVStore) error {
		var c Channel
		switch err := f.bucket.One(db, id, &c); {
		case err == nil:
			ch = &c
			return nil
		case isNotFound(err):
			return nil
		default:
			return err
		}
	})
	if err != nil {
		t.Fatalf("cannot load channel: %+v", err)
	}
	return ch
}

func (f *fixture) assertBalance(t testing.TB, addr paychan.Address, want int64) {
	t.Helper()
	var got *big.Int
	err := f.app.View(func(db paychan.ReadOnlyKVStore) error {
		var err error
		got, err = f.cash.Balance(db, addr)
		return err
	})
	if err != nil {
		t.Fatalf("cannot load balance: %+v", err)
	}
	if got.Cmp(big.NewInt(want)) != 0 {
		t.Fatalf("want %s balance %d, got %s", addr, want, got)
	}
}

func assertAmount(t testing.TB, name string, want int64, got *big.Int) {
	t.Helper()
	if got.Cmp(big.NewInt(want)) != 0 {
		t.Fatalf("want %s %d, got %s", name, want, got)
	}
}

func unix(t time.Time) paychan.UnixTime {
	return paychan.AsUnixTime(t)
}

func isNotFound(err error) bool {
	return errors.ErrNotFound.Is(err)
}
