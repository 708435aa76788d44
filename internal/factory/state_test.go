package factory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FactorySim_Go/internal/catalog"
	"github.com/osse101/FactorySim_Go/internal/domain"
)

func TestStatusText(t *testing.T) {
	ctx := context.Background()
	f, err := NewDefault(ctx, WithClock(start))
	require.NoError(t, err)
	_, err = f.AssignWorkerToLine(ctx, "Worker A", 1)
	require.NoError(t, err)
	_, _, err = f.CreateOrder(ctx, catalog.WoodenChair, 3, 0)
	require.NoError(t, err)
	_, err = f.AdvanceTime(ctx, 1)
	require.NoError(t, err)

	text := f.StatusText()
	assert.True(t, strings.HasPrefix(text, "=== Efficient Factory Status (Day 1) ===\nBalance: ¥100\nTime: 2025-03-10 09:00\n"))
	for _, section := range []string{
		"--- Production Lines ---", "--- Crafting Stations ---", "--- Workers ---",
		"--- Material Inventory ---", "--- Product Inventory ---", "--- Orders ---",
	} {
		assert.Contains(t, text, "\n"+section+"\n")
	}
	assert.Contains(t, text, "  Production Line 1 (Status:Running, Product:None, Worker:Worker A, Progress:0%)\n")
	assert.Contains(t, text, "  Worker A (Skill:3, Salary:¥100/day, Status:Working)\n")
	assert.Contains(t, text, "  Worker B (Skill:2, Salary:¥80/day, Status:Idle)\n")
	assert.Contains(t, text, "  Wood: 300unit\n")
	assert.Contains(t, text, "  Screws: 700pcs\n")
	assert.Contains(t, text, "  Wooden Chair: 0 units\n")
	assert.Contains(t, text, "(Overdue!)\n")

	status := f.Status()
	require.Len(t, status.Workers, 4)
	assert.Equal(t, "Production Line 1", status.Workers[0].Assignment)
	assert.True(t, status.Orders[0].Overdue)
}

func TestSaveAndRestoreState(t *testing.T) {
	ctx := context.Background()
	f, err := NewDefault(ctx, WithClock(start))
	require.NoError(t, err)
	_, err = f.Purchase(ctx, catalog.Plastic, 10)
	require.NoError(t, err)
	saved := f.SaveState()

	_, err = f.Purchase(ctx, catalog.Wood, 50)
	require.NoError(t, err)
	_, err = f.NextDay(ctx)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds, "starter payroll exceeds what is left")

	msg, err := f.RestoreState(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, "Restored Efficient Factory (Day 1)", msg)
	assert.Equal(t, saved, f.SaveState())
	assert.Equal(t, start, f.Clock())
	assert.Equal(t, 300, f.MaterialQty(catalog.Wood))
	assert.Equal(t, 210, f.MaterialQty(catalog.Plastic))
}

func TestRestoreState_RejectsUnknownKeys(t *testing.T) {
	ctx := context.Background()
	f, err := NewDefault(ctx, WithClock(start))
	require.NoError(t, err)
	before := f.SaveState()

	bad := before
	bad.Materials = map[string]int{"Unobtainium": 1}
	_, err = f.RestoreState(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	bad = before
	bad.Products = map[string]int{catalog.WoodenChair: -1}
	_, err = f.RestoreState(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	bad = before
	bad.Day = 0
	_, err = f.RestoreState(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	assert.Equal(t, before, f.SaveState())
}

func testBundle() Bundle {
	return Bundle{
		Name:           "Bakery",
		Version:        "2.0",
		InitialBalance: 50,
		InitialMaterials: map[string]int{
			"Flour": 20,
		},
		Materials: []domain.Material{
			{Name: "Flour", Cost: 1, Unit: "kg"},
			{Name: "Dough", Cost: 2, Unit: "kg", MaterialsRequired: domain.Requirements{{Name: "Flour", Quantity: 2}}},
		},
		Products: []domain.Product{
			{Name: "Bread", ProductionTime: 30, SalePrice: 6, MaterialsRequired: domain.Requirements{{Name: "Dough", Quantity: 1}}},
		},
		InitialWorkers:   []domain.Worker{{Name: "Baker", Skill: 2, Salary: 40}},
		CraftingStations: []StationSpec{{Name: "Kneading Table", Capacity: 2}},
	}
}

func TestLoadBundle(t *testing.T) {
	ctx := context.Background()
	f, err := NewDefault(ctx, WithClock(start))
	require.NoError(t, err)
	_, err = f.AssignWorkerToLine(ctx, "Worker A", 1)
	require.NoError(t, err)
	_, _, err = f.CreateOrder(ctx, catalog.WoodenChair, 1, 1)
	require.NoError(t, err)
	_, err = f.AdvanceTime(ctx, 5)
	require.NoError(t, err)

	msg, err := f.LoadBundle(ctx, testBundle())
	require.NoError(t, err)
	assert.Equal(t, "Loaded mod Bakery (2 materials, 1 products, 1 workers, 1 stations)", msg)

	assert.Equal(t, DefaultName, f.Name(), "load keeps the facility name")
	assert.Equal(t, start.Add(5*time.Hour), f.Clock())
	assert.InDelta(t, 50.0, f.Balance(), 1e-9)
	assert.Equal(t, 20, f.MaterialQty("Flour"))
	assert.Equal(t, 0, f.MaterialQty("Dough"))
	assert.Equal(t, 0, f.MaterialQty(catalog.Wood))
	assert.Empty(t, f.Orders())

	lines := f.Lines()
	require.Len(t, lines, 2)
	assert.False(t, lines[0].Active)
	stations := f.Stations()
	require.Len(t, stations, 1)
	assert.Equal(t, "Kneading Table", stations[0].Name)
	assert.Equal(t, []domain.Worker{{Name: "Baker", Skill: 2, Salary: 40}}, f.Workers())

	_, err = f.AssignWorkerToStation(ctx, "Baker", 1)
	require.NoError(t, err)
	_, err = f.AssignRecipeToStation(ctx, domain.MaterialRecipe("Dough"), 1)
	require.NoError(t, err)
	assert.Equal(t, 18, f.MaterialQty("Flour"))
}

func TestLoadBundle_InvalidLeavesFacilityUntouched(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(b *Bundle)
		sentinel error
	}{
		{"dangling requirement", func(b *Bundle) {
			b.Products[0].MaterialsRequired = domain.Requirements{{Name: "Yeast", Quantity: 1}}
		}, domain.ErrDanglingReference},
		{"unknown initial stock", func(b *Bundle) { b.InitialMaterials["Salt"] = 3 }, domain.ErrMaterialNotFound},
		{"duplicate worker", func(b *Bundle) {
			b.InitialWorkers = append(b.InitialWorkers, b.InitialWorkers[0])
		}, domain.ErrDuplicateName},
		{"zero capacity station", func(b *Bundle) { b.CraftingStations[0].Capacity = 0 }, domain.ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewDefault(ctx, WithClock(start))
			require.NoError(t, err)
			before := f.SaveState()

			b := testBundle()
			tt.mutate(&b)
			_, err = f.LoadBundle(ctx, b)
			assert.ErrorIs(t, err, tt.sentinel)

			assert.Equal(t, before, f.SaveState())
			assert.Len(t, f.Workers(), 4)
			assert.Len(t, f.Stations(), 2)
		})
	}
}

func TestExportBundle_RoundTrips(t *testing.T) {
	ctx := context.Background()
	f, err := NewDefault(ctx, WithClock(start))
	require.NoError(t, err)

	b := f.ExportBundle()
	assert.Equal(t, DefaultBundleVersion, b.Version)
	assert.Len(t, b.CraftingStations, 2)

	g := New("Copy", 0, catalog.New(), WithClock(start))
	_, err = g.LoadBundle(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, f.Balance(), g.Balance())
	assert.Equal(t, f.MaterialQty(catalog.Screws), g.MaterialQty(catalog.Screws))
	assert.Equal(t, f.Workers(), g.Workers())
	assert.Equal(t, f.Catalog().ProductNames(), g.Catalog().ProductNames())
}

func TestNewFromBundle(t *testing.T) {
	ctx := context.Background()
	f, err := NewFromBundle(ctx, testBundle(), 3, WithClock(start), WithName("Corner Bakery"))
	require.NoError(t, err)

	assert.Equal(t, "Corner Bakery", f.Name())
	assert.Equal(t, start, f.Clock())
	assert.Len(t, f.Lines(), 3)
	assert.Len(t, f.Stations(), 1)
	assert.Equal(t, 20, f.MaterialQty("Flour"))

	bad := testBundle()
	bad.InitialMaterials["Sugar"] = 1
	_, err = NewFromBundle(ctx, bad, 1)
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}
