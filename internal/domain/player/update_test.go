package player

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/samber/mo"
)

func TestUpdate_ScalarFieldsFixedOrder(t *testing.T) {
	got := Update{}.ScalarFields()
	want := []string{ColumnBalance, ColumnDonatBalance, ColumnStatus, ColumnIsAdmin, ColumnTotalClicks}
	if len(got) != len(want) {
		t.Fatalf("unexpected field count: got=%d want=%d", len(got), len(want))
	}
	for i, f := range got {
		if f.Column != want[i] {
			t.Fatalf("unexpected column at %d: got=%s want=%s", i, f.Column, want[i])
		}
		if f.Present {
			t.Fatalf("expected %s to be absent on empty update", f.Column)
		}
	}
}

func TestUpdate_PresentScalarFields(t *testing.T) {
	upd := Update{
		Balance: mo.Some(int64(500)),
		IsAdmin: mo.Some(false),
	}

	got := upd.PresentScalarFields()
	if len(got) != 2 {
		t.Fatalf("expected 2 present fields, got %d", len(got))
	}
	if got[0].Column != ColumnBalance || got[0].Value != int64(500) {
		t.Fatalf("unexpected first field: %+v", got[0])
	}
	if got[1].Column != ColumnIsAdmin || got[1].Value != false {
		t.Fatalf("unexpected second field: %+v", got[1])
	}
}

func TestUpdate_AssetChangesByKind(t *testing.T) {
	upd := Update{
		Businesses: []AssetChange{{Type: 2, Count: 3}},
		Houses:     []AssetChange{{Type: 1, Count: 0}},
	}

	if got := upd.AssetChanges(AssetBusiness); len(got) != 1 || got[0].Type != 2 {
		t.Fatalf("unexpected business changes: %+v", got)
	}
	if got := upd.AssetChanges(AssetCar); len(got) != 0 {
		t.Fatalf("expected no car changes, got %+v", got)
	}
	if got := upd.AssetChanges(AssetHouse); len(got) != 1 || got[0].Keep() {
		t.Fatalf("unexpected house changes: %+v", got)
	}
}

func TestAssetKind_Columns(t *testing.T) {
	cases := map[AssetKind][2]string{
		AssetBusiness: {"businesses", "business_type"},
		AssetCar:      {"cars", "car_type"},
		AssetHouse:    {"houses", "house_type"},
	}
	for kind, want := range cases {
		if kind.Table() != want[0] || kind.TypeColumn() != want[1] {
			t.Fatalf("unexpected columns for %s: %s/%s", kind, kind.Table(), kind.TypeColumn())
		}
		if err := kind.Validate(); err != nil {
			t.Fatalf("validate %s: %v", kind, err)
		}
	}

	if err := AssetKind("boat").Validate(); err == nil {
		t.Fatalf("expected error for unknown asset kind")
	}
	if AssetKind("boat").TypeColumn() != "" {
		t.Fatalf("expected empty type column for unknown kind")
	}
}

func TestAssetChange_KeepProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("only positive counts are kept", prop.ForAll(
		func(assetType, count int64) bool {
			change := AssetChange{Type: assetType, Count: count}
			return change.Keep() == (count > 0)
		},
		gen.Int64(),
		gen.Int64(),
	))

	properties.Property("kept change maps to identical holding", prop.ForAll(
		func(assetType, count int64) bool {
			h := AssetChange{Type: assetType, Count: count}.Holding()
			return h.Type == assetType && h.Count == count
		},
		gen.Int64(),
		gen.Int64Range(1, 1_000_000),
	))

	properties.TestingRun(t)
}

func TestProfile_WithHoldings(t *testing.T) {
	profile := Profile{Player: Player{ID: 1, Username: "alice"}}
	profile = profile.WithHoldings(AssetCar, []Holding{{Type: 4, Count: 1}})

	if got := profile.Holdings(AssetCar); len(got) != 1 || got[0].Type != 4 {
		t.Fatalf("unexpected car holdings: %+v", got)
	}
	if got := profile.Holdings(AssetBusiness); got != nil {
		t.Fatalf("expected nil business holdings, got %+v", got)
	}
}
