package memory

import (
	"fmt"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
)

// Seed stores profiles as-is. A zero ID is assigned from the sequence.
func (d *Database) Seed(profiles ...player.Profile) error {
	d.txMu.Lock()
	defer d.txMu.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, profile := range profiles {
		p := profile.Player
		if p.Username == "" {
			return fmt.Errorf("seed player: username is required")
		}
		if _, exists := d.st.byUsername[p.Username]; exists {
			return fmt.Errorf("seed player %q: username already exists", p.Username)
		}
		if p.ID == 0 {
			p.ID = d.st.nextID
		}
		if p.ID >= d.st.nextID {
			d.st.nextID = p.ID + 1
		}
		if p.Status == "" {
			p.Status = player.DefaultStatus
		}

		d.st.players[p.ID] = p
		d.st.byUsername[p.Username] = p.ID

		for _, kind := range player.AssetKinds {
			items := profile.Holdings(kind)
			if len(items) == 0 {
				continue
			}
			counts := make(map[int64]int64, len(items))
			for _, h := range items {
				if h.Count > 0 {
					counts[h.Type] = h.Count
				}
			}
			d.st.holdings[kind][p.ID] = counts
		}
	}
	return nil
}

// DemoProfiles is a small fixture set for local runs without a database.
func DemoProfiles() []player.Profile {
	return []player.Profile{
		{
			Player:     player.Player{Username: "demo_tycoon", Balance: 2_500_000, DonatBalance: 150, Status: "Магнат", TotalClicks: 48_200, TotalVisits: 31},
			Businesses: []player.Holding{{Type: 1, Count: 4}, {Type: 3, Count: 1}},
			Cars:       []player.Holding{{Type: 2, Count: 1}},
			Houses:     []player.Holding{{Type: 1, Count: 1}},
		},
		{
			Player:     player.Player{Username: "demo_newbie", Balance: 1200, TotalClicks: 340, TotalVisits: 2},
			Businesses: []player.Holding{{Type: 1, Count: 1}},
		},
	}
}
