// Package factory implements the Facility: the single owner of all mutable
// simulation state and the only component that mutates the ledger.
//
// Every command validates in the same order (named entities exist, structural
// preconditions hold, resources suffice) and commits nothing until all checks
// pass. Commands return a human readable message on success; on failure the
// error's text is the message and it wraps a domain sentinel.
package factory

import (
	"context"
	"time"

	"github.com/osse101/FactorySim_Go/internal/catalog"
	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/ledger"
	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/orderbook"
	"github.com/osse101/FactorySim_Go/internal/workunit"
)

// Facility is a manufacturing facility. It is not safe for concurrent use;
// hosts must admit one driver at a time.
type Facility struct {
	name     string
	catalog  *catalog.Catalog
	ledger   *ledger.Ledger
	lines    []*workunit.Unit
	stations []*workunit.Unit
	workers  []domain.Worker
	orders   *orderbook.Book
	clock    time.Time
	day      int
	bus      event.Bus
}

// Option configures a Facility
type Option func(*Facility)

// WithClock sets the starting simulated time
func WithClock(t time.Time) Option {
	return func(f *Facility) { f.clock = t }
}

// WithName overrides the facility name
func WithName(name string) Option {
	return func(f *Facility) { f.name = name }
}

// WithEventBus publishes facility events to bus
func WithEventBus(bus event.Bus) Option {
	return func(f *Facility) { f.bus = bus }
}

// New creates an empty facility (no units, no workers) over a catalog.
// Every catalog entity starts tracked with zero stock.
func New(name string, balance float64, cat *catalog.Catalog, opts ...Option) *Facility {
	if cat == nil {
		cat = catalog.New()
	}
	f := &Facility{
		name:    name,
		catalog: cat,
		ledger:  ledger.New(balance),
		orders:  orderbook.New(),
		clock:   time.Now().Truncate(time.Minute),
		day:     1,
	}
	for _, opt := range opts {
		opt(f)
	}
	for _, m := range cat.MaterialNames() {
		f.ledger.TrackMaterial(m, 0)
	}
	for _, p := range cat.ProductNames() {
		f.ledger.TrackProduct(p)
	}
	return f
}

// Name returns the facility name
func (f *Facility) Name() string { return f.name }

// Day returns the day counter (starts at 1)
func (f *Facility) Day() int { return f.day }

// Clock returns the simulated time
func (f *Facility) Clock() time.Time { return f.clock }

// Balance returns the cash balance
func (f *Facility) Balance() float64 { return f.ledger.Balance() }

// MaterialQty returns material stock
func (f *Facility) MaterialQty(name string) int { return f.ledger.MaterialQty(name) }

// ProductQty returns product stock
func (f *Facility) ProductQty(name string) int { return f.ledger.ProductQty(name) }

// Catalog returns a copy of the catalog
func (f *Facility) Catalog() *catalog.Catalog { return f.catalog.Clone() }

// Products returns the catalog's products in order
func (f *Facility) Products() []domain.Product { return f.catalog.Products() }

// Materials returns the catalog's materials in order
func (f *Facility) Materials() []domain.Material { return f.catalog.Materials() }

// Workers returns the roster in hiring order
func (f *Facility) Workers() []domain.Worker {
	out := make([]domain.Worker, len(f.workers))
	copy(out, f.workers)
	return out
}

// Orders returns every order in id order
func (f *Facility) Orders() []domain.Order { return f.orders.All() }

// OrderCount counts every order ever opened
func (f *Facility) OrderCount() int { return f.orders.Len() }

// OpenOrderCount counts orders not yet completed
func (f *Facility) OpenOrderCount() int { return f.orders.OpenCount() }

// Recipe resolves a recipe reference against the catalog
func (f *Facility) Recipe(ref domain.RecipeRef) (materials, products domain.Requirements, craftable bool, err error) {
	return f.catalog.Recipe(ref)
}

// CraftableRecipes lists craftable products, then craftable materials
func (f *Facility) CraftableRecipes() []domain.RecipeRef { return f.catalog.CraftableRecipes() }

// IsWorking reports whether the worker is assigned to any line or station
func (f *Facility) IsWorking(workerName string) bool {
	_, ok := f.assignmentOf(workerName)
	return ok
}

func (f *Facility) findWorker(name string) (domain.Worker, bool) {
	for _, w := range f.workers {
		if w.Name == name {
			return w, true
		}
	}
	return domain.Worker{}, false
}

func (f *Facility) findLine(id int) (*workunit.Unit, bool) {
	if id < 1 || id > len(f.lines) {
		return nil, false
	}
	return f.lines[id-1], true
}

func (f *Facility) findStation(id int) (*workunit.Unit, bool) {
	if id < 1 || id > len(f.stations) {
		return nil, false
	}
	return f.stations[id-1], true
}

// allUnits lists lines then stations
func (f *Facility) allUnits() []*workunit.Unit {
	units := make([]*workunit.Unit, 0, len(f.lines)+len(f.stations))
	units = append(units, f.lines...)
	return append(units, f.stations...)
}

func (f *Facility) assignmentOf(workerName string) (*workunit.Unit, bool) {
	for _, u := range f.allUnits() {
		if u.HasWorker(workerName) {
			return u, true
		}
	}
	return nil, false
}

// releaseWorker clears the worker from every unit across lines and stations
func (f *Facility) releaseWorker(workerName string) {
	for _, u := range f.allUnits() {
		if u.HasWorker(workerName) {
			u.Unassign()
		}
	}
}

func (f *Facility) publish(ctx context.Context, evt event.Event) {
	if f.bus == nil {
		return
	}
	if err := f.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	}
}

// fail logs a rejected command and returns its failure
func fail(ctx context.Context, command string, failure *domain.Failure) (string, error) {
	logger.FromContext(ctx).Info(LogMsgCommandFailed, "command", command, "reason", failure.Message)
	return "", failure
}
