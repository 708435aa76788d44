package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/ledger"
	"github.com/osse101/FactorySim_Go/internal/logger"
)

// State is the persisted part of a facility: identity, clock and ledger.
// Units, workers, orders and the catalog are not part of a save.
type State struct {
	Name        string         `json:"name"`
	Balance     float64        `json:"balance"`
	Day         int            `json:"day"`
	Clock       time.Time      `json:"current_time"`
	Materials   map[string]int `json:"material_inventory"`
	Products    map[string]int `json:"product_inventory"`
	DailyCost   float64        `json:"daily_costs"`
	DailyIncome float64        `json:"daily_income"`
}

// SaveState captures the current state
func (f *Facility) SaveState() State {
	snap := f.ledger.Snapshot()
	return State{
		Name:        f.name,
		Balance:     snap.Balance,
		Day:         f.day,
		Clock:       f.clock,
		Materials:   snap.Materials,
		Products:    snap.Products,
		DailyCost:   snap.DailyCost,
		DailyIncome: snap.DailyIncome,
	}
}

// RestoreState replaces name, clock, day and ledger from a save. Every
// inventory key must name a catalog entity; nothing changes on failure.
// Catalog entities missing from the save are tracked at zero.
func (f *Facility) RestoreState(ctx context.Context, s State) (string, error) {
	const command = "restore_state"

	if s.Day < 1 {
		return fail(ctx, command, domain.Fail(domain.ErrInvalidQuantity, MsgInvalidDayFmt, s.Day))
	}
	for name, qty := range s.Materials {
		if !f.catalog.HasMaterial(name) {
			return fail(ctx, command, domain.Fail(domain.ErrMaterialNotFound, MsgMaterialNotFoundFmt, name))
		}
		if qty < 0 {
			return fail(ctx, command, domain.Fail(domain.ErrInvalidQuantity, MsgInvalidQuantityFmt, qty))
		}
	}
	for name, qty := range s.Products {
		if !f.catalog.HasProduct(name) {
			return fail(ctx, command, domain.Fail(domain.ErrProductNotFound, MsgProductNotFoundFmt, name))
		}
		if qty < 0 {
			return fail(ctx, command, domain.Fail(domain.ErrInvalidQuantity, MsgInvalidQuantityFmt, qty))
		}
	}

	f.ledger.Restore(ledger.Snapshot{
		Balance:     s.Balance,
		Materials:   s.Materials,
		Products:    s.Products,
		DailyIncome: s.DailyIncome,
		DailyCost:   s.DailyCost,
	})
	for _, m := range f.catalog.MaterialNames() {
		f.ledger.TrackMaterial(m, 0)
	}
	for _, p := range f.catalog.ProductNames() {
		f.ledger.TrackProduct(p)
	}
	if s.Name != "" {
		f.name = s.Name
	}
	f.day = s.Day
	if !s.Clock.IsZero() {
		f.clock = s.Clock
	}

	logger.FromContext(ctx).Info(LogMsgStateRestored, "name", f.name, "day", f.day, "balance", s.Balance)
	return fmt.Sprintf(MsgStateRestoredFmt, f.name, f.day), nil
}
