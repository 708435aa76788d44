package operator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FactorySim_Go/internal/catalog"
	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/workunit"
)

var start = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newDefaultFacility(t *testing.T) *factory.Facility {
	t.Helper()
	f, err := factory.NewDefault(context.Background(), factory.WithClock(start))
	require.NoError(t, err)
	return f
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"balanced", Balanced},
		{"AGGRESSIVE", Aggressive},
		{"  Conservative ", Conservative},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStrategy("reckless")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestStart_BalancedPassOnDefaultScenario(t *testing.T) {
	ctx := context.Background()
	f := newDefaultFacility(t)
	op := New(f, WithSeed(7))

	result := op.Start(ctx)
	require.NoError(t, result.Err)
	assert.True(t, op.Running())
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, start, result.At)

	for _, line := range f.Lines() {
		assert.Equal(t, workunit.StateRunning, line.State)
		assert.Equal(t, catalog.WoodenChair, line.Job)
	}
	for _, station := range f.Stations() {
		assert.Equal(t, workunit.StateRunning, station.State)
		assert.Equal(t, catalog.MetalPlate, station.Job)
	}
	assert.Equal(t, 290, f.MaterialQty(catalog.Wood))
	assert.Equal(t, 96, f.MaterialQty(catalog.Metal))
	assert.InDelta(t, 100.0, f.Balance(), 1e-9, "balance too low for any restock")

	orders := f.Orders()
	require.Len(t, orders, 1)
	assert.GreaterOrEqual(t, orders[0].Quantity, OrderMinQuantity)
	assert.LessOrEqual(t, orders[0].Quantity, OrderMaxQuantity)
	days := orders[0].Deadline.Sub(start) / (24 * time.Hour)
	assert.GreaterOrEqual(t, int(days), OrderMinDays)
	assert.LessOrEqual(t, int(days), OrderMaxDays)

	assert.Len(t, result.Actions, 9)
}

func TestPass_IsIdempotentAtTheSameInstant(t *testing.T) {
	ctx := context.Background()

	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			f, err := factory.NewDefault(ctx, factory.WithClock(start))
			require.NoError(t, err)
			op := New(f, WithStrategy(s), WithSeed(1))

			first := op.Step(ctx)
			require.NoError(t, first.Err)
			afterFirst := f.Status()

			second := op.Step(ctx)
			require.NoError(t, second.Err)
			assert.Empty(t, second.Actions)
			assert.Equal(t, afterFirst, f.Status())
		})
	}
}

func TestCheck_Cadence(t *testing.T) {
	ctx := context.Background()
	f := newDefaultFacility(t)
	op := New(f, WithSeed(3))

	_, ran := op.Check(ctx)
	assert.False(t, ran, "stopped operator never runs")

	op.Start(ctx)
	_, ran = op.Check(ctx)
	assert.False(t, ran, "no time has passed")

	_, err := f.AdvanceTime(ctx, 1)
	require.NoError(t, err)
	result, ran := op.Check(ctx)
	assert.True(t, ran)
	assert.Equal(t, start.Add(time.Hour), result.At)

	_, err = f.AdvanceTime(ctx, 5)
	require.NoError(t, err)
	_, ran = op.Check(ctx)
	assert.True(t, ran)
	_, ran = op.Check(ctx)
	assert.False(t, ran, "elapsed intervals are coalesced into one pass")

	op.Stop(ctx)
	_, err = f.AdvanceTime(ctx, 2)
	require.NoError(t, err)
	_, ran = op.Check(ctx)
	assert.False(t, ran)
}

func TestStep_DoesNotArm(t *testing.T) {
	op := New(newDefaultFacility(t), WithSeed(1))
	op.Step(context.Background())
	assert.False(t, op.Running())
}

func TestAggressive_Expands(t *testing.T) {
	ctx := context.Background()
	f := factory.New("Rich", 2000, catalog.Default(), factory.WithClock(start))
	_, err := f.AddProductionLine(ctx, 10)
	require.NoError(t, err)
	_, err = f.AddCraftingStation(ctx, "Bench", 5)
	require.NoError(t, err)
	_, err = f.HireWorker(ctx, "Solo", 2, 50)
	require.NoError(t, err)

	op := New(f, WithStrategy(Aggressive), WithSeed(1))
	result := op.Step(ctx)
	require.NoError(t, result.Err)

	workers := f.Workers()
	require.Len(t, workers, 2)
	assert.Equal(t, domain.Worker{Name: "AI Worker2", Skill: HireSkill, Salary: HireSalary}, workers[1])
	assert.Len(t, f.Lines(), 2)
	stations := f.Stations()
	require.Len(t, stations, 2)
	assert.Equal(t, StationName, stations[1].Name)
	assert.Contains(t, result.Actions, ActionLineAdded)
	assert.Contains(t, result.Actions, ActionStationAdded)
}

func TestConservative_RestocksCriticalOnly(t *testing.T) {
	ctx := context.Background()
	f := factory.New("Careful", 1000, catalog.Default(), factory.WithClock(start))
	_, err := f.Purchase(ctx, catalog.Wood, 10)
	require.NoError(t, err)

	op := New(f, WithStrategy(Conservative), WithSeed(1))
	result := op.Step(ctx)
	require.NoError(t, result.Err)

	assert.Equal(t, CriticalTarget, f.MaterialQty(catalog.Wood))
	assert.Equal(t, CriticalTarget, f.MaterialQty(catalog.Metal))
	assert.Equal(t, CriticalTarget, f.MaterialQty(catalog.Screws))
	assert.Equal(t, 0, f.MaterialQty(catalog.Plastic))
	assert.Empty(t, f.Orders(), "conservative never opens orders")
}

func TestSeed_MakesOrdersReproducible(t *testing.T) {
	ctx := context.Background()
	a, b := newDefaultFacility(t), newDefaultFacility(t)

	New(a, WithSeed(42)).Step(ctx)
	New(b, WithSeed(42)).Step(ctx)

	assert.Equal(t, a.Orders(), b.Orders())
}

// panickyFacility fails inside a query to exercise pass recovery
type panickyFacility struct {
	*factory.Facility
}

func (panickyFacility) Workers() []domain.Worker {
	panic("roster unavailable")
}

func TestPass_RecoversFromPanics(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	var passes []event.Event
	bus.Subscribe(event.OperatorPassDone, func(_ context.Context, e event.Event) error {
		passes = append(passes, e)
		return nil
	})

	op := New(panickyFacility{newDefaultFacility(t)}, WithSeed(1), WithEventBus(bus))
	result := op.Start(ctx)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "roster unavailable")
	assert.True(t, op.Running(), "a failed pass leaves the loop armed")

	require.Len(t, passes, 1)
	payload, ok := passes[0].Payload.(event.OperatorPassPayloadV1)
	require.True(t, ok)
	assert.Equal(t, result.ID, payload.PassID)
	assert.Contains(t, payload.Error, "roster unavailable")
}

func TestAnalyze(t *testing.T) {
	op := New(newDefaultFacility(t))
	r := op.Analyze()

	assert.Equal(t, FundsWarning, r.Finance)
	assert.Equal(t, 0, r.ActiveLines)
	assert.Equal(t, 2, r.TotalLines)
	assert.Equal(t, []string{catalog.MetalPlate}, r.LowStock)
	assert.Equal(t, []string{SuggestWorkers, SuggestRestock, SuggestOrders}, r.Suggestions)

	text := r.Text()
	assert.Contains(t, text, "Financial Status: ¥100\nWarning: Insufficient funds!\n")
	assert.Contains(t, text, "Production Lines: 0/2 running\n")
	assert.Contains(t, text, "Low stock materials: Metal Plate\n")
	assert.Contains(t, text, "Active orders: 0\nSuggestion: Create more orders\n")
}

func TestBalanced_StopsOpeningOrdersAtTheCap(t *testing.T) {
	ctx := context.Background()
	f := newDefaultFacility(t)
	op := New(f, WithSeed(3))
	op.Start(ctx)

	for hour := 0; hour < 10*24; hour++ {
		_, err := f.AdvanceTime(ctx, 1)
		require.NoError(t, err)
		op.Check(ctx)
	}

	assert.Equal(t, MaxOperatorOrders, f.OrderCount(), "completed orders still count toward the cap")
	assert.LessOrEqual(t, f.OpenOrderCount(), MaxOperatorOrders)
}
