package factory

import (
	"context"
	"fmt"

	"github.com/osse101/FactorySim_Go/internal/catalog"
)

type defaultHire struct {
	name   string
	skill  int
	salary float64
}

var (
	defaultStations = []StationSpec{
		{Name: "Basic Crafting Station", Capacity: 5},
		{Name: "Advanced Crafting Station", Capacity: 3},
	}

	defaultWorkers = []defaultHire{
		{"Worker A", 3, 100},
		{"Worker B", 2, 80},
		{"Worker C", 4, 120},
		{"Worker D", 3, 100},
	}

	// opening purchases, in order
	defaultPurchases = []struct {
		material string
		quantity int
	}{
		{catalog.Wood, 200},
		{catalog.Metal, 50},
		{catalog.Screws, 200},
	}
)

// NewDefault builds the starter scenario: default catalog and stock, two
// lines, two crafting stations, four idle workers and the opening purchases.
func NewDefault(ctx context.Context, opts ...Option) (*Facility, error) {
	f := New(DefaultName, DefaultBalance, catalog.Default(), opts...)
	for name, qty := range catalog.DefaultInitialStock() {
		f.ledger.AddMaterial(name, qty)
	}

	for i := 0; i < 2; i++ {
		if _, err := f.AddProductionLine(ctx, DefaultLineCapacity); err != nil {
			return nil, err
		}
	}
	for _, s := range defaultStations {
		if _, err := f.AddCraftingStation(ctx, s.Name, s.Capacity); err != nil {
			return nil, err
		}
	}
	for _, w := range defaultWorkers {
		if _, err := f.HireWorker(ctx, w.name, w.skill, w.salary); err != nil {
			return nil, err
		}
	}
	for _, p := range defaultPurchases {
		if _, err := f.Purchase(ctx, p.material, p.quantity); err != nil {
			return nil, fmt.Errorf("opening purchase of %s: %w", p.material, err)
		}
	}
	return f, nil
}
