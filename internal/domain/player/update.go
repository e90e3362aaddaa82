package player

import "github.com/samber/mo"

const (
	ColumnBalance      = "balance"
	ColumnDonatBalance = "donat_balance"
	ColumnStatus       = "status"
	ColumnIsAdmin      = "is_admin"
	ColumnTotalClicks  = "total_clicks"
)

// Update is a partial change to a player. Absent options leave the stored
// value untouched.
type Update struct {
	Balance      mo.Option[int64]
	DonatBalance mo.Option[int64]
	Status       mo.Option[string]
	IsAdmin      mo.Option[bool]
	TotalClicks  mo.Option[int64]

	Businesses []AssetChange
	Cars       []AssetChange
	Houses     []AssetChange
}

// ScalarField pairs a players column with its optional new value.
type ScalarField struct {
	Column  string
	Value   any
	Present bool
}

// ScalarFields returns every updatable column in a fixed order.
func (u Update) ScalarFields() []ScalarField {
	return []ScalarField{
		scalarField(ColumnBalance, u.Balance),
		scalarField(ColumnDonatBalance, u.DonatBalance),
		scalarField(ColumnStatus, u.Status),
		scalarField(ColumnIsAdmin, u.IsAdmin),
		scalarField(ColumnTotalClicks, u.TotalClicks),
	}
}

// PresentScalarFields returns only the columns that carry a value.
func (u Update) PresentScalarFields() []ScalarField {
	all := u.ScalarFields()
	out := make([]ScalarField, 0, len(all))
	for _, f := range all {
		if f.Present {
			out = append(out, f)
		}
	}
	return out
}

// AssetChanges returns the requested changes for kind.
func (u Update) AssetChanges(kind AssetKind) []AssetChange {
	switch kind {
	case AssetBusiness:
		return u.Businesses
	case AssetCar:
		return u.Cars
	case AssetHouse:
		return u.Houses
	default:
		return nil
	}
}

func scalarField[T any](column string, value mo.Option[T]) ScalarField {
	v, ok := value.Get()
	if !ok {
		return ScalarField{Column: column}
	}
	return ScalarField{Column: column, Value: v, Present: true}
}
