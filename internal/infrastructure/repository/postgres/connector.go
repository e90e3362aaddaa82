package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
	"github.com/riskibarqy/tycoon-player-api/internal/platform/logging"
)

// DSNFunc resolves the connection string for one invocation.
type DSNFunc func() (string, error)

// OpenFunc opens a database handle for dsn.
type OpenFunc func(dsn string) (*sqlx.DB, error)

// Connector opens one single-connection Store per invocation.
type Connector struct {
	dsn    DSNFunc
	open   OpenFunc
	logger *logging.Logger
}

type ConnectorOption func(*Connector)

// WithOpenFunc replaces the traced lib/pq opener, e.g. with a sqlmock handle.
func WithOpenFunc(fn OpenFunc) ConnectorOption {
	return func(c *Connector) {
		if fn != nil {
			c.open = fn
		}
	}
}

func NewConnector(dsn DSNFunc, logger *logging.Logger, opts ...ConnectorOption) *Connector {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Connector{
		dsn:    dsn,
		open:   openTraced,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Connector) Open(ctx context.Context) (player.Store, error) {
	ctx, span := startSpan(ctx, "postgres.Connector.Open")
	defer span.End()

	dsn, err := c.dsn()
	if err != nil {
		return nil, crerr.Wrap(err, "resolve database url")
	}

	db, err := c.open(dsn)
	if err != nil {
		return nil, crerr.Wrap(err, "open database")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrapf(err, "connect to database %q", dbNameFromURL(dsn))
	}

	c.logger.DebugContext(ctx, "database connection opened", "db_name", dbNameFromURL(dsn))
	return NewStore(db), nil
}

func openTraced(dsn string) (*sqlx.DB, error) {
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	}
	if name := dbNameFromURL(dsn); name != "" {
		opts = append(opts,
			otelsql.WithDBName(name),
			otelsql.WithAttributes(attribute.String("db.namespace", name)),
		)
	}
	return otelsqlx.Open("postgres", dsn, opts...)
}
