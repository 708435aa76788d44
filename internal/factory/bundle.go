package factory

import (
	"context"
	"fmt"

	"github.com/osse101/FactorySim_Go/internal/catalog"
	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/ledger"
	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/workunit"
)

// DefaultBundleVersion is used when a bundle names no version
const DefaultBundleVersion = "1.0"

// StationSpec describes a crafting station in a bundle
type StationSpec struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Capacity int    `json:"capacity" yaml:"capacity" validate:"gt=0"`
}

// Bundle is a complete scenario definition (a "mod"): catalog, opening
// balance and stock, roster and crafting stations.
type Bundle struct {
	Name             string            `json:"name" yaml:"name" validate:"required"`
	Description      string            `json:"description" yaml:"description"`
	Author           string            `json:"author" yaml:"author"`
	Version          string            `json:"version" yaml:"version"`
	InitialBalance   float64           `json:"initial_balance" yaml:"initial_balance" validate:"gte=0"`
	InitialMaterials map[string]int    `json:"initial_materials" yaml:"initial_materials" validate:"dive,gte=0"`
	Products         []domain.Product  `json:"products" yaml:"products"`
	Materials        []domain.Material `json:"materials" yaml:"materials"`
	InitialWorkers   []domain.Worker   `json:"initial_workers" yaml:"initial_workers" validate:"dive"`
	CraftingStations []StationSpec     `json:"crafting_stations" yaml:"crafting_stations" validate:"dive"`
}

// Build checks the bundle's cross references and returns its catalog
func (b Bundle) Build() (*catalog.Catalog, error) {
	cat, err := catalog.Load(b.Materials, b.Products)
	if err != nil {
		return nil, err
	}
	for name, qty := range b.InitialMaterials {
		if !cat.HasMaterial(name) {
			return nil, domain.Fail(domain.ErrMaterialNotFound, MsgStockUnknownFmt, name)
		}
		if qty < 0 {
			return nil, domain.Fail(domain.ErrInvalidQuantity, MsgInvalidQuantityFmt, qty)
		}
	}
	seen := make(map[string]bool, len(b.InitialWorkers))
	for _, w := range b.InitialWorkers {
		if seen[w.Name] {
			return nil, domain.Fail(domain.ErrDuplicateName, MsgWorkerExistsFmt, w.Name)
		}
		seen[w.Name] = true
		if w.Skill < 1 {
			return nil, domain.Fail(domain.ErrInvalidQuantity, MsgInvalidSkillFmt, w.Name)
		}
	}
	for _, s := range b.CraftingStations {
		if s.Capacity <= 0 {
			return nil, domain.Fail(domain.ErrInvalidQuantity, MsgInvalidCapacityFmt, s.Capacity)
		}
	}
	return cat, nil
}

// LoadBundle replaces catalog, ledger, roster, stations and orders with the
// bundle's contents. Lines are kept but reset; name, clock and day are kept.
// The bundle is fully checked before anything changes.
func (f *Facility) LoadBundle(ctx context.Context, b Bundle) (string, error) {
	cat, err := b.Build()
	if err != nil {
		return fail(ctx, "load_bundle", asFailure(err))
	}

	f.catalog = cat
	f.ledger = ledger.New(b.InitialBalance)
	for _, m := range cat.MaterialNames() {
		f.ledger.TrackMaterial(m, b.InitialMaterials[m])
	}
	for _, p := range cat.ProductNames() {
		f.ledger.TrackProduct(p)
	}

	for _, line := range f.lines {
		line.Reset()
	}
	f.stations = nil
	for i, s := range b.CraftingStations {
		f.stations = append(f.stations, workunit.NewStation(i+1, s.Name, s.Capacity))
	}
	f.workers = make([]domain.Worker, len(b.InitialWorkers))
	copy(f.workers, b.InitialWorkers)
	f.orders.Clear()

	logger.FromContext(ctx).Info(LogMsgBundleLoaded,
		"bundle", b.Name,
		"version", b.Version,
		"materials", len(b.Materials),
		"products", len(b.Products),
		"workers", len(b.InitialWorkers),
		"stations", len(b.CraftingStations))
	return fmt.Sprintf(MsgBundleLoadedFmt, b.Name, len(b.Materials), len(b.Products),
		len(b.InitialWorkers), len(b.CraftingStations)), nil
}

// NewFromBundle builds a facility with lines production lines of the default
// capacity and loads the bundle into it
func NewFromBundle(ctx context.Context, b Bundle, lines int, opts ...Option) (*Facility, error) {
	f := New(b.Name, 0, nil, opts...)
	for i := 0; i < lines; i++ {
		if _, err := f.AddProductionLine(ctx, DefaultLineCapacity); err != nil {
			return nil, err
		}
	}
	if _, err := f.LoadBundle(ctx, b); err != nil {
		return nil, err
	}
	return f, nil
}

// ExportBundle describes the facility as a bundle. Current balance and
// material stock become the opening values.
func (f *Facility) ExportBundle() Bundle {
	b := Bundle{
		Name:             f.name,
		Version:          DefaultBundleVersion,
		InitialBalance:   f.ledger.Balance(),
		InitialMaterials: f.ledger.Snapshot().Materials,
		Products:         f.catalog.Products(),
		Materials:        f.catalog.Materials(),
		InitialWorkers:   f.Workers(),
	}
	for _, s := range f.stations {
		b.CraftingStations = append(b.CraftingStations, StationSpec{Name: s.Name(), Capacity: s.Capacity()})
	}
	return b
}
