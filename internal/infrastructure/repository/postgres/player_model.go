package postgres

import (
	"database/sql"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
)

var playerColumns = []string{
	"id",
	"username",
	"balance",
	"donat_balance",
	"status",
	"is_admin",
	"total_clicks",
	"total_visits",
	"created_at",
	"updated_at",
	"last_visit",
}

var rankedColumns = []string{"id", "username", "balance", "status", "is_admin"}

// scalarColumns are the only players columns an update may assign.
var scalarColumns = map[string]struct{}{
	player.ColumnBalance:      {},
	player.ColumnDonatBalance: {},
	player.ColumnStatus:       {},
	player.ColumnIsAdmin:      {},
	player.ColumnTotalClicks:  {},
}

type playerTableModel struct {
	ID           int64        `db:"id"`
	Username     string       `db:"username"`
	Balance      int64        `db:"balance"`
	DonatBalance int64        `db:"donat_balance"`
	Status       string       `db:"status"`
	IsAdmin      bool         `db:"is_admin"`
	TotalClicks  int64        `db:"total_clicks"`
	TotalVisits  int64        `db:"total_visits"`
	CreatedAt    sql.NullTime `db:"created_at"`
	UpdatedAt    sql.NullTime `db:"updated_at"`
	LastVisit    sql.NullTime `db:"last_visit"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:           m.ID,
		Username:     m.Username,
		Balance:      m.Balance,
		DonatBalance: m.DonatBalance,
		Status:       m.Status,
		IsAdmin:      m.IsAdmin,
		TotalClicks:  m.TotalClicks,
		TotalVisits:  m.TotalVisits,
		CreatedAt:    nullTimePtr(m.CreatedAt),
		UpdatedAt:    nullTimePtr(m.UpdatedAt),
		LastVisit:    nullTimePtr(m.LastVisit),
	}
}

type rankedTableModel struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Balance  int64  `db:"balance"`
	Status   string `db:"status"`
	IsAdmin  bool   `db:"is_admin"`
}

type holdingTableModel struct {
	Type  int64 `db:"type"`
	Count int64 `db:"count"`
}
