package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
)

// view reads and writes one state snapshot. Locking is the caller's job.
type view struct {
	db *Database
	st *state
}

func (v *view) FindByUsername(_ context.Context, username string) (player.Player, bool, error) {
	if err := v.db.fault("FindByUsername"); err != nil {
		return player.Player{}, false, err
	}
	id, ok := v.st.byUsername[username]
	if !ok {
		return player.Player{}, false, nil
	}
	return v.st.players[id], true, nil
}

func (v *view) FindByID(_ context.Context, id int64) (player.Player, bool, error) {
	if err := v.db.fault("FindByID"); err != nil {
		return player.Player{}, false, err
	}
	p, ok := v.st.players[id]
	return p, ok, nil
}

func (v *view) TopByBalance(_ context.Context, limit int) ([]player.Ranked, error) {
	if err := v.db.fault("TopByBalance"); err != nil {
		return nil, err
	}

	players := lo.Values(v.st.players)
	sort.Slice(players, func(i, j int) bool {
		if players[i].Balance != players[j].Balance {
			return players[i].Balance > players[j].Balance
		}
		return players[i].ID < players[j].ID
	})
	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}

	return lo.Map(players, func(p player.Player, _ int) player.Ranked {
		return player.Ranked{
			ID:       p.ID,
			Username: p.Username,
			Balance:  p.Balance,
			Status:   p.Status,
			IsAdmin:  p.IsAdmin,
		}
	}), nil
}

func (v *view) RecordVisit(_ context.Context, playerID int64) error {
	if err := v.db.fault("RecordVisit"); err != nil {
		return err
	}
	p, ok := v.st.players[playerID]
	if !ok {
		return nil
	}
	now := v.db.now().UTC()
	p.TotalVisits++
	p.LastVisit = &now
	v.st.players[playerID] = p
	return nil
}

func (v *view) CreateIfAbsent(ctx context.Context, username string) (player.Player, bool, error) {
	if err := v.db.fault("CreateIfAbsent"); err != nil {
		return player.Player{}, false, err
	}
	if existing, ok, _ := v.FindByUsername(ctx, username); ok {
		return existing, false, nil
	}

	now := v.db.now().UTC()
	p := player.Player{
		ID:        v.st.nextID,
		Username:  username,
		Status:    player.DefaultStatus,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
	v.st.nextID++
	v.st.players[p.ID] = p
	v.st.byUsername[username] = p.ID
	return p, true, nil
}

func (v *view) UpdateScalars(_ context.Context, playerID int64, fields []player.ScalarField) error {
	if err := v.db.fault("UpdateScalars"); err != nil {
		return err
	}
	p, ok := v.st.players[playerID]
	if !ok {
		return nil
	}

	changed := false
	for _, f := range fields {
		if !f.Present {
			continue
		}
		if err := assignScalar(&p, f); err != nil {
			return err
		}
		changed = true
	}
	if !changed {
		return nil
	}

	now := v.db.now().UTC()
	p.UpdatedAt = &now
	v.st.players[playerID] = p
	return nil
}

func assignScalar(p *player.Player, f player.ScalarField) error {
	var ok bool
	switch f.Column {
	case player.ColumnBalance:
		p.Balance, ok = f.Value.(int64)
	case player.ColumnDonatBalance:
		p.DonatBalance, ok = f.Value.(int64)
	case player.ColumnStatus:
		p.Status, ok = f.Value.(string)
	case player.ColumnIsAdmin:
		p.IsAdmin, ok = f.Value.(bool)
	case player.ColumnTotalClicks:
		p.TotalClicks, ok = f.Value.(int64)
	default:
		return fmt.Errorf("column %q is not updatable", f.Column)
	}
	if !ok {
		return fmt.Errorf("column %q: unexpected value type %T", f.Column, f.Value)
	}
	return nil
}
