package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
	"github.com/riskibarqy/tycoon-player-api/internal/platform/logging"
)

// LeaderboardLimit caps the number of ranked players returned.
const LeaderboardLimit = 100

type PlayerService struct {
	opener player.Opener
	logger *logging.Logger
}

func NewPlayerService(opener player.Opener, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		opener: opener,
		logger: logger,
	}
}

// withStore opens one store for the duration of fn and always releases it.
func (s *PlayerService) withStore(ctx context.Context, fn func(store player.Store) error) error {
	store, err := s.opener.Open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			s.logger.WarnContext(ctx, "close store failed", "error", closeErr)
		}
	}()
	return fn(store)
}

// GetProfile returns the player with all holdings and records the visit. The
// returned player reflects the row as read, before the visit counter moved.
func (s *PlayerService) GetProfile(ctx context.Context, username string) (player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetProfile")
	defer span.End()

	if username == "" {
		return player.Profile{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	var profile player.Profile
	err := s.withStore(ctx, func(store player.Store) error {
		return store.WithinTx(ctx, func(ctx context.Context, tx player.Tx) error {
			p, ok, err := tx.FindByUsername(ctx, username)
			if err != nil {
				return fmt.Errorf("find player: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: player=%s", ErrNotFound, username)
			}

			profile = player.Profile{Player: p}
			for _, kind := range player.AssetKinds {
				items, err := tx.ListHoldings(ctx, kind, p.ID)
				if err != nil {
					return fmt.Errorf("list %s holdings: %w", kind, err)
				}
				profile = profile.WithHoldings(kind, items)
			}

			if err := tx.RecordVisit(ctx, p.ID); err != nil {
				return fmt.Errorf("record visit: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return player.Profile{}, err
	}
	return profile, nil
}

func (s *PlayerService) Leaderboard(ctx context.Context) ([]player.Ranked, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Leaderboard")
	defer span.End()

	var out []player.Ranked
	err := s.withStore(ctx, func(store player.Store) error {
		items, err := store.TopByBalance(ctx, LeaderboardLimit)
		if err != nil {
			return fmt.Errorf("top players by balance: %w", err)
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Register creates the player unless the username is already taken, in which
// case the existing player is returned unchanged.
func (s *PlayerService) Register(ctx context.Context, username string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Register")
	defer span.End()

	if username == "" {
		return player.Player{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	var (
		out     player.Player
		created bool
	)
	err := s.withStore(ctx, func(store player.Store) error {
		return store.WithinTx(ctx, func(ctx context.Context, tx player.Tx) error {
			p, isNew, err := tx.CreateIfAbsent(ctx, username)
			if err != nil {
				return fmt.Errorf("create player: %w", err)
			}
			out, created = p, isNew
			return nil
		})
	})
	if err != nil {
		return player.Player{}, err
	}

	s.logger.InfoContext(ctx, "player registered",
		"player_id", out.ID,
		"username", out.Username,
		"created", created,
	)
	return out, nil
}

// Update applies a partial change atomically and returns the player as
// stored after commit.
func (s *PlayerService) Update(ctx context.Context, username string, upd player.Update) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	var out player.Player
	err := s.withStore(ctx, func(store player.Store) error {
		var playerID int64
		err := store.WithinTx(ctx, func(ctx context.Context, tx player.Tx) error {
			p, ok, err := tx.FindByUsername(ctx, username)
			if err != nil {
				return fmt.Errorf("find player: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: player=%s", ErrNotFound, username)
			}
			playerID = p.ID

			if err := tx.UpdateScalars(ctx, p.ID, upd.PresentScalarFields()); err != nil {
				return fmt.Errorf("update player fields: %w", err)
			}
			return applyAssetChanges(ctx, tx, p.ID, upd)
		})
		if err != nil {
			return err
		}

		p, ok, err := store.FindByID(ctx, playerID)
		if err != nil {
			return fmt.Errorf("reload player: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: player id=%d", ErrNotFound, playerID)
		}
		out = p
		return nil
	})
	if err != nil {
		return player.Player{}, err
	}
	return out, nil
}

func applyAssetChanges(ctx context.Context, tx player.Tx, playerID int64, upd player.Update) error {
	for _, kind := range player.AssetKinds {
		for _, change := range upd.AssetChanges(kind) {
			if change.Keep() {
				if err := tx.UpsertHolding(ctx, kind, playerID, change.Holding()); err != nil {
					return fmt.Errorf("upsert %s %d: %w", kind, change.Type, err)
				}
				continue
			}
			if err := tx.DeleteHolding(ctx, kind, playerID, change.Type); err != nil {
				return fmt.Errorf("delete %s %d: %w", kind, change.Type, err)
			}
		}
	}
	return nil
}
