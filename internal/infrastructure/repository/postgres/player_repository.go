package postgres

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
	qb "github.com/riskibarqy/tycoon-player-api/internal/platform/querybuilder"
)

// playerQueries runs player statements against either the database handle or
// an open transaction.
type playerQueries struct {
	ext sqlx.ExtContext
}

func (q playerQueries) FindByUsername(ctx context.Context, username string) (player.Player, bool, error) {
	ctx, span := startSpan(ctx, "postgres.PlayerRepository.FindByUsername")
	defer span.End()

	query, args, err := qb.Select(playerColumns...).From("players").
		Where(qb.Eq("username", username)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, crerr.Wrap(err, "build select player by username query")
	}
	return q.getPlayer(ctx, query, args, "select player by username")
}

func (q playerQueries) FindByID(ctx context.Context, id int64) (player.Player, bool, error) {
	ctx, span := startSpan(ctx, "postgres.PlayerRepository.FindByID")
	defer span.End()

	query, args, err := qb.Select(playerColumns...).From("players").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, crerr.Wrap(err, "build select player by id query")
	}
	return q.getPlayer(ctx, query, args, "select player by id")
}

func (q playerQueries) getPlayer(ctx context.Context, query string, args []any, op string) (player.Player, bool, error) {
	var row playerTableModel
	if err := sqlx.GetContext(ctx, q.ext, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, crerr.Wrap(err, op)
	}
	return row.toDomain(), true, nil
}

func (q playerQueries) TopByBalance(ctx context.Context, limit int) ([]player.Ranked, error) {
	ctx, span := startSpan(ctx, "postgres.PlayerRepository.TopByBalance")
	defer span.End()

	query, args, err := qb.Select(rankedColumns...).From("players").
		OrderBy("balance DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build leaderboard query")
	}

	var rows []rankedTableModel
	if err := sqlx.SelectContext(ctx, q.ext, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select leaderboard")
	}

	out := make([]player.Ranked, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Ranked{
			ID:       row.ID,
			Username: row.Username,
			Balance:  row.Balance,
			Status:   row.Status,
			IsAdmin:  row.IsAdmin,
		})
	}
	return out, nil
}

func (q playerQueries) RecordVisit(ctx context.Context, playerID int64) error {
	ctx, span := startSpan(ctx, "postgres.PlayerRepository.RecordVisit")
	defer span.End()

	query, args, err := qb.Update("players").
		SetExpr("total_visits", "total_visits + 1").
		SetExpr("last_visit", "CURRENT_TIMESTAMP").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build record visit query")
	}

	if _, err := q.ext.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "record visit for player %d", playerID)
	}
	return nil
}

func (q playerQueries) CreateIfAbsent(ctx context.Context, username string) (player.Player, bool, error) {
	ctx, span := startSpan(ctx, "postgres.PlayerRepository.CreateIfAbsent")
	defer span.End()

	query, args, err := qb.InsertInto("players").
		Columns("username").
		Values(username).
		Suffix("ON CONFLICT (username) DO NOTHING RETURNING " + strings.Join(playerColumns, ", ")).
		ToSQL()
	if err != nil {
		return player.Player{}, false, crerr.Wrap(err, "build insert player query")
	}

	var row playerTableModel
	err = sqlx.GetContext(ctx, q.ext, &row, query, args...)
	if err == nil {
		return row.toDomain(), true, nil
	}
	if !isNotFound(err) {
		return player.Player{}, false, crerr.Wrap(err, "insert player")
	}

	// DO NOTHING returns no row when the username is taken.
	existing, ok, err := q.FindByUsername(ctx, username)
	if err != nil {
		return player.Player{}, false, err
	}
	if !ok {
		return player.Player{}, false, crerr.Newf("player %q neither inserted nor found", username)
	}
	return existing, false, nil
}

func (q playerQueries) UpdateScalars(ctx context.Context, playerID int64, fields []player.ScalarField) error {
	ctx, span := startSpan(ctx, "postgres.PlayerRepository.UpdateScalars")
	defer span.End()

	builder := qb.Update("players")
	for _, f := range fields {
		if !f.Present {
			continue
		}
		if _, ok := scalarColumns[f.Column]; !ok {
			return crerr.Newf("column %q is not updatable", f.Column)
		}
		builder.Set(f.Column, f.Value)
	}
	if !builder.HasSets() {
		return nil
	}

	query, args, err := builder.
		SetExpr("updated_at", "CURRENT_TIMESTAMP").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build update player query")
	}

	if _, err := q.ext.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "update player %d", playerID)
	}
	return nil
}

func holdingConflictClause(kind player.AssetKind) string {
	return fmt.Sprintf("ON CONFLICT (player_id, %s) DO UPDATE SET count = EXCLUDED.count", kind.TypeColumn())
}
