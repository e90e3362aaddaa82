package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
)

var ErrStoreClosed = errors.New("memory store is closed")

var (
	_ player.Opener = (*Database)(nil)
	_ player.Store  = (*Store)(nil)
	_ player.Tx     = (*view)(nil)
)

// Database is an in-process stand-in for the players schema. Each Open returns
// a Store handle; transactions work on a copy that replaces the shared state
// only on success.
type Database struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   state
	now  func() time.Time

	faultMu sync.RWMutex
	faults  map[string]error

	opened atomic.Int64
	closed atomic.Int64
}

type state struct {
	nextID     int64
	players    map[int64]player.Player
	byUsername map[string]int64
	// holdings[kind][playerID][assetType] = count
	holdings map[player.AssetKind]map[int64]map[int64]int64
}

type Option func(*Database)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Database) {
		if now != nil {
			d.now = now
		}
	}
}

func NewDatabase(opts ...Option) *Database {
	d := &Database{
		st:     newState(),
		now:    time.Now,
		faults: make(map[string]error),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func newState() state {
	holdings := make(map[player.AssetKind]map[int64]map[int64]int64, len(player.AssetKinds))
	for _, kind := range player.AssetKinds {
		holdings[kind] = make(map[int64]map[int64]int64)
	}
	return state{
		nextID:     1,
		players:    make(map[int64]player.Player),
		byUsername: make(map[string]int64),
		holdings:   holdings,
	}
}

func (s state) clone() state {
	return state{
		nextID:     s.nextID,
		players:    lo.Assign(s.players),
		byUsername: lo.Assign(s.byUsername),
		holdings: lo.MapValues(s.holdings, func(byPlayer map[int64]map[int64]int64, _ player.AssetKind) map[int64]map[int64]int64 {
			return lo.MapValues(byPlayer, func(counts map[int64]int64, _ int64) map[int64]int64 {
				return lo.Assign(counts)
			})
		}),
	}
}

// InjectFault makes the named operation (e.g. "UpsertHolding") fail with err.
// A nil err clears the fault.
func (d *Database) InjectFault(op string, err error) {
	d.faultMu.Lock()
	defer d.faultMu.Unlock()
	if err == nil {
		delete(d.faults, op)
		return
	}
	d.faults[op] = err
}

func (d *Database) fault(op string) error {
	d.faultMu.RLock()
	defer d.faultMu.RUnlock()
	return d.faults[op]
}

// OpenCount and CloseCount report how many handles were acquired and released.
func (d *Database) OpenCount() int64  { return d.opened.Load() }
func (d *Database) CloseCount() int64 { return d.closed.Load() }

func (d *Database) Open(_ context.Context) (player.Store, error) {
	if err := d.fault("Open"); err != nil {
		return nil, err
	}
	d.opened.Add(1)
	return &Store{db: d}, nil
}

// Store is one opened handle on a Database.
type Store struct {
	db     *Database
	closed atomic.Bool
}

func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrStoreClosed
	}
	s.db.closed.Add(1)
	return nil
}

func (s *Store) view() (*view, func(), error) {
	if s.closed.Load() {
		return nil, nil, ErrStoreClosed
	}
	s.db.mu.RLock()
	return &view{db: s.db, st: &s.db.st}, s.db.mu.RUnlock, nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (player.Player, bool, error) {
	v, release, err := s.view()
	if err != nil {
		return player.Player{}, false, err
	}
	defer release()
	return v.FindByUsername(ctx, username)
}

func (s *Store) FindByID(ctx context.Context, id int64) (player.Player, bool, error) {
	v, release, err := s.view()
	if err != nil {
		return player.Player{}, false, err
	}
	defer release()
	return v.FindByID(ctx, id)
}

func (s *Store) TopByBalance(ctx context.Context, limit int) ([]player.Ranked, error) {
	v, release, err := s.view()
	if err != nil {
		return nil, err
	}
	defer release()
	return v.TopByBalance(ctx, limit)
}

func (s *Store) ListHoldings(ctx context.Context, kind player.AssetKind, playerID int64) ([]player.Holding, error) {
	v, release, err := s.view()
	if err != nil {
		return nil, err
	}
	defer release()
	return v.ListHoldings(ctx, kind, playerID)
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx player.Tx) error) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	s.db.txMu.Lock()
	defer s.db.txMu.Unlock()

	s.db.mu.RLock()
	working := s.db.st.clone()
	s.db.mu.RUnlock()

	if err := fn(ctx, &view{db: s.db, st: &working}); err != nil {
		return err
	}
	if err := s.db.fault("Commit"); err != nil {
		return err
	}

	s.db.mu.Lock()
	s.db.st = working
	s.db.mu.Unlock()
	return nil
}
