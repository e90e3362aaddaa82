package httpapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
)

const timestampLayout = "2006-01-02T15:04:05"

type playerDTO struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	Balance      int64   `json:"balance"`
	DonatBalance int64   `json:"donat_balance"`
	Status       string  `json:"status"`
	IsAdmin      bool    `json:"is_admin"`
	TotalClicks  int64   `json:"total_clicks"`
	TotalVisits  int64   `json:"total_visits"`
	CreatedAt    *string `json:"created_at"`
	UpdatedAt    *string `json:"updated_at"`
	LastVisit    *string `json:"last_visit"`
}

type rankedDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
	Status   string `json:"status"`
	IsAdmin  bool   `json:"is_admin"`
}

// holdingDTO renders as {"<kind>_type": n, "count": m}.
type holdingDTO struct {
	kind  player.AssetKind
	Type  int64
	Count int64
}

func (h holdingDTO) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, 48)
	out = append(out, '{')
	out = strconv.AppendQuote(out, h.kind.TypeColumn())
	out = append(out, ':')
	out = strconv.AppendInt(out, h.Type, 10)
	out = append(out, `,"count":`...)
	out = strconv.AppendInt(out, h.Count, 10)
	out = append(out, '}')
	return out, nil
}

type profileResponse struct {
	Player     playerDTO    `json:"player"`
	Businesses []holdingDTO `json:"businesses"`
	Cars       []holdingDTO `json:"cars"`
	Houses     []holdingDTO `json:"houses"`
}

type leaderboardResponse struct {
	Players []rankedDTO `json:"players"`
}

type playerResponse struct {
	Player playerDTO `json:"player"`
}

func toPlayerDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:           p.ID,
		Username:     p.Username,
		Balance:      p.Balance,
		DonatBalance: p.DonatBalance,
		Status:       p.Status,
		IsAdmin:      p.IsAdmin,
		TotalClicks:  p.TotalClicks,
		TotalVisits:  p.TotalVisits,
		CreatedAt:    formatTimestamp(p.CreatedAt),
		UpdatedAt:    formatTimestamp(p.UpdatedAt),
		LastVisit:    formatTimestamp(p.LastVisit),
	}
}

func toRankedDTOs(items []player.Ranked) []rankedDTO {
	return lo.Map(items, func(r player.Ranked, _ int) rankedDTO {
		return rankedDTO{
			ID:       r.ID,
			Username: r.Username,
			Balance:  r.Balance,
			Status:   r.Status,
			IsAdmin:  r.IsAdmin,
		}
	})
}

func toHoldingDTOs(kind player.AssetKind, items []player.Holding) []holdingDTO {
	return lo.Map(items, func(h player.Holding, _ int) holdingDTO {
		return holdingDTO{kind: kind, Type: h.Type, Count: h.Count}
	})
}

func toProfileResponse(p player.Profile) profileResponse {
	return profileResponse{
		Player:     toPlayerDTO(p.Player),
		Businesses: toHoldingDTOs(player.AssetBusiness, p.Businesses),
		Cars:       toHoldingDTOs(player.AssetCar, p.Cars),
		Houses:     toHoldingDTOs(player.AssetHouse, p.Houses),
	}
}

// formatTimestamp renders ISO-8601 without zone, adding microseconds only
// when the instant has a fractional part.
func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	u := t.UTC()
	s := u.Format(timestampLayout)
	if micros := u.Nanosecond() / int(time.Microsecond); micros != 0 {
		s += fmt.Sprintf(".%06d", micros)
	}
	return &s
}
