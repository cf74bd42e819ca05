package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/errors"
	"github.com/iov-one/paychan/store"
	"github.com/tendermint/tendermint/libs/log"
)

// Clock provides the time messages are executed at.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// StoreApp executes messages against a committed store.
//
// Messages are executed one at a time. Each message runs in its own cache
// wrap that is written only if the handler succeeds, so a failed message
// never leaves a trace in the state.
//
// Uncommitted state is kept in a stack of cache layers. The bottom layer
// collects all changes since the last commit, each snapshot pushes a new
// layer on top.
type StoreApp struct {
	mu sync.Mutex

	logger log.Logger
	name   string
	debug  bool
	clock  Clock

	// chainID is loaded from db in initialization
	// saved once in InitChain
	chainID string

	committed paychan.CommitKVStore
	layers    []paychan.KVCacheWrap

	handler     paychan.Handler
	initializer paychan.Initializer
}

// NewStoreApp initializes this app into a ready state with some defaults.
// The latest version of the committed store is loaded.
func NewStoreApp(name string, committed paychan.CommitKVStore, handler paychan.Handler) (*StoreApp, error) {
	if err := committed.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	s := &StoreApp{
		logger:    log.NewNopLogger(),
		name:      name,
		clock:     systemClock{},
		committed: committed,
		layers:    []paychan.KVCacheWrap{committed.CacheWrap()},
		handler:   handler,
	}
	chainID, err := loadChainID(s.top())
	if err != nil {
		return nil, err
	}
	s.chainID = chainID
	return s, nil
}

// WithLogger sets the logger on the StoreApp and returns it,
// to make it easy to chain in initialization
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger.With("app", s.name)
	return s
}

// WithInit is used to set the init function we call
func (s *StoreApp) WithInit(init paychan.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithClock sets the source of the block time.
func (s *StoreApp) WithClock(c Clock) *StoreApp {
	s.clock = c
	return s
}

// WithDebug controls whether internal error details are exposed in
// receipts.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// Logger returns the application base logger
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// GetChainID returns the current chainID
func (s *StoreApp) GetChainID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chainID
}

func (s *StoreApp) top() paychan.KVCacheWrap {
	return s.layers[len(s.layers)-1]
}

// InitChain stores the chain id and initializes the extensions from the
// genesis. It can be called only once in the lifetime of a store.
func (s *StoreApp) InitChain(gen Genesis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis previously loaded for chain %s", s.chainID)
	}
	tx := s.top().CacheWrap()
	if err := saveChainID(tx, gen.ChainID); err != nil {
		tx.Discard()
		return err
	}
	if s.initializer != nil {
		if err := s.initializer.FromGenesis(gen.AppState, tx); err != nil {
			tx.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := tx.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	s.chainID = gen.ChainID
	s.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// Deliver executes a single message. Returned receipt describes the
// outcome. If the message failed the error is returned as well.
func (s *StoreApp) Deliver(ctx paychan.Context, msg paychan.Msg) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = paychan.WithLogger(ctx, s.logger)
	ctx = paychan.WithBlockTime(ctx, s.clock.Now())
	if s.chainID != "" {
		ctx = paychan.WithChainID(ctx, s.chainID)
	}

	tx := s.top().CacheWrap()
	rec := store.NewRecordingStore(tx)
	res, err := s.deliver(ctx, rec, msg)
	if err != nil {
		tx.Discard()
		return failureReceipt(err, s.debug), err
	}
	if err := tx.Write(); err != nil {
		err = errors.Wrap(err, "write")
		return failureReceipt(err, s.debug), err
	}
	return successReceipt(res, rec.Changes()), nil
}

// deliver never panics, even when the handler is not wrapped with a
// recovering decorator.
func (s *StoreApp) deliver(ctx paychan.Context, db paychan.KVStore, msg paychan.Msg) (res *paychan.DeliverResult, err error) {
	defer errors.Recover(&err)
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "nil message")
	}
	return s.handler.Deliver(ctx, db, msg)
}

// View calls fn with the current, uncommitted state. The state must not be
// modified.
func (s *StoreApp) View(fn func(db paychan.ReadOnlyKVStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.top())
}

// Snapshot records the current state and returns its identifier, to be
// used with RevertTo.
func (s *StoreApp) Snapshot() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers = append(s.layers, s.top().CacheWrap())
	return len(s.layers) - 1
}

// RevertTo drops all changes made since the snapshot was taken. The
// snapshot and all taken after it are released.
func (s *StoreApp) RevertTo(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 1 || id >= len(s.layers) {
		return errors.Wrapf(errors.ErrInput, "unknown snapshot %d", id)
	}
	for i := len(s.layers) - 1; i >= id; i-- {
		s.layers[i].Discard()
	}
	s.layers = s.layers[:id]
	return nil
}

// Commit persists all changes as a new version of the committed store.
// Commit is not allowed while snapshots are held.
func (s *StoreApp) Commit() (paychan.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.layers) > 1 {
		return paychan.CommitID{}, errors.Wrapf(errors.ErrState, "%d snapshots held", len(s.layers)-1)
	}
	if err := s.layers[0].Write(); err != nil {
		return paychan.CommitID{}, errors.Wrap(err, "flush")
	}
	id, err := s.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	s.layers[0] = s.committed.CacheWrap()

	s.logger.Debug("commit synced",
		"version", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}

// LatestVersion returns the version and the hash of the last commit.
func (s *StoreApp) LatestVersion() (paychan.CommitID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed.LatestVersion()
}
