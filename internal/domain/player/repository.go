package player

import "context"

// Reader describes the player queries use cases run.
type Reader interface {
	FindByUsername(ctx context.Context, username string) (Player, bool, error)
	FindByID(ctx context.Context, id int64) (Player, bool, error)
	TopByBalance(ctx context.Context, limit int) ([]Ranked, error)
	ListHoldings(ctx context.Context, kind AssetKind, playerID int64) ([]Holding, error)
}

// Writer describes the player mutations use cases run inside a transaction.
type Writer interface {
	RecordVisit(ctx context.Context, playerID int64) error
	// CreateIfAbsent inserts a player unless the username exists. created is
	// false when the existing row is returned instead.
	CreateIfAbsent(ctx context.Context, username string) (p Player, created bool, err error)
	UpdateScalars(ctx context.Context, playerID int64, fields []ScalarField) error
	UpsertHolding(ctx context.Context, kind AssetKind, playerID int64, h Holding) error
	DeleteHolding(ctx context.Context, kind AssetKind, playerID int64, assetType int64) error
}

// Tx is a unit of work. Its writes become visible only when the surrounding
// WithinTx callback returns nil.
type Tx interface {
	Reader
	Writer
}

// Store is storage scoped to a single invocation. Callers must Close it.
type Store interface {
	Reader
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}

// Opener acquires a Store for one invocation.
type Opener interface {
	Open(ctx context.Context) (Store, error)
}
