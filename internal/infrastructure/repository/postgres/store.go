package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
)

var (
	_ player.Opener = (*Connector)(nil)
	_ player.Store  = (*Store)(nil)
	_ player.Tx     = playerQueries{}
)

// Store is a player.Store over a single database handle.
type Store struct {
	playerQueries
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		playerQueries: playerQueries{ext: db},
		db:            db,
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx player.Tx) error) error {
	ctx, span := startSpan(ctx, "postgres.Store.WithinTx")
	defer span.End()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, playerQueries{ext: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit tx")
	}
	return nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return crerr.Wrap(err, "close database")
	}
	return nil
}
