package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
)

func (v *view) ListHoldings(_ context.Context, kind player.AssetKind, playerID int64) ([]player.Holding, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := v.db.fault("ListHoldings"); err != nil {
		return nil, err
	}

	counts := v.st.holdings[kind][playerID]
	types := lo.Keys(counts)
	slices.Sort(types)

	return lo.Map(types, func(t int64, _ int) player.Holding {
		return player.Holding{Type: t, Count: counts[t]}
	}), nil
}

func (v *view) UpsertHolding(_ context.Context, kind player.AssetKind, playerID int64, h player.Holding) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if err := v.db.fault("UpsertHolding"); err != nil {
		return err
	}
	// Mirrors the foreign key on player_id.
	if _, ok := v.st.players[playerID]; !ok {
		return fmt.Errorf("insert into %s: player %d does not exist", kind.Table(), playerID)
	}

	byPlayer := v.st.holdings[kind]
	if byPlayer[playerID] == nil {
		byPlayer[playerID] = make(map[int64]int64)
	}
	byPlayer[playerID][h.Type] = h.Count
	return nil
}

func (v *view) DeleteHolding(_ context.Context, kind player.AssetKind, playerID int64, assetType int64) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if err := v.db.fault("DeleteHolding"); err != nil {
		return err
	}

	counts := v.st.holdings[kind][playerID]
	delete(counts, assetType)
	if len(counts) == 0 {
		delete(v.st.holdings[kind], playerID)
	}
	return nil
}
