package player

import "time"

// DefaultStatus is the status column default for freshly registered players.
const DefaultStatus = "Бомж"

// Player is the full profile row of a tycoon player.
type Player struct {
	ID           int64
	Username     string
	Balance      int64
	DonatBalance int64
	Status       string
	IsAdmin      bool
	TotalClicks  int64
	TotalVisits  int64
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
	LastVisit    *time.Time
}

// Ranked is the reduced leaderboard projection of a player.
type Ranked struct {
	ID       int64
	Username string
	Balance  int64
	Status   string
	IsAdmin  bool
}

// Profile is a player together with every asset holding it owns.
type Profile struct {
	Player     Player
	Businesses []Holding
	Cars       []Holding
	Houses     []Holding
}

// Holdings returns the profile's holdings of the given kind.
func (p Profile) Holdings(kind AssetKind) []Holding {
	switch kind {
	case AssetBusiness:
		return p.Businesses
	case AssetCar:
		return p.Cars
	case AssetHouse:
		return p.Houses
	default:
		return nil
	}
}

func (p *Profile) setHoldings(kind AssetKind, items []Holding) {
	switch kind {
	case AssetBusiness:
		p.Businesses = items
	case AssetCar:
		p.Cars = items
	case AssetHouse:
		p.Houses = items
	}
}

// WithHoldings returns a copy of the profile with the holdings of kind replaced.
func (p Profile) WithHoldings(kind AssetKind, items []Holding) Profile {
	p.setHoldings(kind, items)
	return p
}
