package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
	qb "github.com/riskibarqy/tycoon-player-api/internal/platform/querybuilder"
)

func (q playerQueries) ListHoldings(ctx context.Context, kind player.AssetKind, playerID int64) ([]player.Holding, error) {
	ctx, span := startSpan(ctx, "postgres.HoldingRepository.ListHoldings")
	defer span.End()

	if err := kind.Validate(); err != nil {
		return nil, err
	}

	query, args, err := qb.Select(kind.TypeColumn()+" AS type", "count").From(kind.Table()).
		Where(qb.Eq("player_id", playerID)).
		OrderBy(kind.TypeColumn()).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrapf(err, "build select %s query", kind.Table())
	}

	var rows []holdingTableModel
	if err := sqlx.SelectContext(ctx, q.ext, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "select %s for player %d", kind.Table(), playerID)
	}

	out := make([]player.Holding, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Holding{Type: row.Type, Count: row.Count})
	}
	return out, nil
}

func (q playerQueries) UpsertHolding(ctx context.Context, kind player.AssetKind, playerID int64, h player.Holding) error {
	ctx, span := startSpan(ctx, "postgres.HoldingRepository.UpsertHolding")
	defer span.End()

	if err := kind.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertInto(kind.Table()).
		Columns("player_id", kind.TypeColumn(), "count").
		Values(playerID, h.Type, h.Count).
		Suffix(holdingConflictClause(kind)).
		ToSQL()
	if err != nil {
		return crerr.Wrapf(err, "build upsert %s query", kind.Table())
	}

	if _, err := q.ext.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "upsert %s type=%d for player %d", kind.Table(), h.Type, playerID)
	}
	return nil
}

func (q playerQueries) DeleteHolding(ctx context.Context, kind player.AssetKind, playerID int64, assetType int64) error {
	ctx, span := startSpan(ctx, "postgres.HoldingRepository.DeleteHolding")
	defer span.End()

	if err := kind.Validate(); err != nil {
		return err
	}

	query, args, err := qb.DeleteFrom(kind.Table()).
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq(kind.TypeColumn(), assetType),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrapf(err, "build delete %s query", kind.Table())
	}

	if _, err := q.ext.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "delete %s type=%d for player %d", kind.Table(), assetType, playerID)
	}
	return nil
}
