package player

import "fmt"

// AssetKind identifies one of the three asset holding tables.
type AssetKind string

const (
	AssetBusiness AssetKind = "business"
	AssetCar      AssetKind = "car"
	AssetHouse    AssetKind = "house"
)

// AssetKinds lists every kind in the order responses and updates use.
var AssetKinds = []AssetKind{AssetBusiness, AssetCar, AssetHouse}

// Table is the holdings table backing the kind.
func (k AssetKind) Table() string {
	switch k {
	case AssetBusiness:
		return "businesses"
	case AssetCar:
		return "cars"
	case AssetHouse:
		return "houses"
	default:
		return ""
	}
}

// TypeColumn is the column holding the asset type id, also used as the JSON key.
func (k AssetKind) TypeColumn() string {
	if k.Table() == "" {
		return ""
	}
	return string(k) + "_type"
}

func (k AssetKind) Validate() error {
	if k.Table() == "" {
		return fmt.Errorf("unknown asset kind: %q", string(k))
	}
	return nil
}

// Holding is one stored (type, count) row owned by a player.
type Holding struct {
	Type  int64
	Count int64
}

// AssetChange is a requested count for one asset type.
type AssetChange struct {
	Type  int64
	Count int64
}

// Keep reports whether the change is stored as a row. Non-positive counts
// delete the row, so a missing row always means "owns none".
func (c AssetChange) Keep() bool {
	return c.Count > 0
}

// Holding converts a kept change into the row it upserts.
func (c AssetChange) Holding() Holding {
	return Holding{Type: c.Type, Count: c.Count}
}
