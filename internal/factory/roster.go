package factory

import (
	"context"
	"fmt"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/workunit"
)

// DefaultStationName names stations added without one
const DefaultStationName = "Crafting Station"

// ==================== Capacity ====================

// HireWorker adds a worker to the roster. Names are unique.
func (f *Facility) HireWorker(ctx context.Context, name string, skill int, salary float64) (string, error) {
	const command = "hire_worker"

	if _, exists := f.findWorker(name); exists {
		return fail(ctx, command, domain.Fail(domain.ErrDuplicateName, MsgWorkerExistsFmt, name))
	}
	if skill < 1 {
		return fail(ctx, command, domain.Fail(domain.ErrInvalidQuantity, MsgInvalidSkillFmt, name))
	}

	f.workers = append(f.workers, domain.Worker{Name: name, Skill: skill, Salary: salary})
	logger.FromContext(ctx).Info(LogMsgRosterChanged, "action", "hire", "worker", name, "skill", skill, "salary", salary)
	return fmt.Sprintf(MsgWorkerHiredFmt, name, skill, domain.Money(salary)), nil
}

// AddProductionLine appends an unstaffed line
func (f *Facility) AddProductionLine(ctx context.Context, capacity int) (string, error) {
	if capacity <= 0 {
		return fail(ctx, "add_production_line", domain.Fail(domain.ErrInvalidQuantity, MsgInvalidCapacityFmt, capacity))
	}
	id := len(f.lines) + 1
	f.lines = append(f.lines, workunit.NewLine(id, capacity))
	logger.FromContext(ctx).Info(LogMsgRosterChanged, "action", "add_line", "line_id", id, "capacity", capacity)
	return fmt.Sprintf(MsgLineAddedFmt, id, capacity), nil
}

// AddCraftingStation appends an unstaffed station
func (f *Facility) AddCraftingStation(ctx context.Context, name string, capacity int) (string, error) {
	if capacity <= 0 {
		return fail(ctx, "add_crafting_station", domain.Fail(domain.ErrInvalidQuantity, MsgInvalidCapacityFmt, capacity))
	}
	if name == "" {
		name = DefaultStationName
	}
	id := len(f.stations) + 1
	f.stations = append(f.stations, workunit.NewStation(id, name, capacity))
	logger.FromContext(ctx).Info(LogMsgRosterChanged, "action", "add_station", "station_id", id, "name", name)
	return fmt.Sprintf(MsgStationAddedFmt, name, id, capacity), nil
}

// Lines returns a status view of every production line
func (f *Facility) Lines() []workunit.Status {
	out := make([]workunit.Status, len(f.lines))
	for i, l := range f.lines {
		out[i] = l.Status()
	}
	return out
}

// Stations returns a status view of every crafting station
func (f *Facility) Stations() []workunit.Status {
	out := make([]workunit.Status, len(f.stations))
	for i, s := range f.stations {
		out[i] = s.Status()
	}
	return out
}

// ==================== Catalog editing ====================

// AddProduct adds a product definition and starts tracking its stock at zero
func (f *Facility) AddProduct(ctx context.Context, p domain.Product) (string, error) {
	if err := f.catalog.AddProduct(p); err != nil {
		return fail(ctx, "add_product", asFailure(err))
	}
	f.ledger.TrackProduct(p.Name)
	logger.FromContext(ctx).Info(LogMsgCatalogChanged, "action", "add_product", "product", p.Name)
	return fmt.Sprintf(MsgProductAddedFmt, p.Name), nil
}

// AddMaterial adds a material definition with an opening stock
func (f *Facility) AddMaterial(ctx context.Context, m domain.Material, initialQty int) (string, error) {
	if initialQty < 0 {
		return fail(ctx, "add_material", domain.Fail(domain.ErrInvalidQuantity, MsgInvalidQuantityFmt, initialQty))
	}
	if err := f.catalog.AddMaterial(m); err != nil {
		return fail(ctx, "add_material", asFailure(err))
	}
	f.ledger.TrackMaterial(m.Name, initialQty)
	logger.FromContext(ctx).Info(LogMsgCatalogChanged, "action", "add_material", "material", m.Name, "quantity", initialQty)
	return fmt.Sprintf(MsgMaterialAddedFmt, m.Name), nil
}

// RemoveProduct deletes a product that no recipe, open order or running job uses
func (f *Facility) RemoveProduct(ctx context.Context, name string) (string, error) {
	const command = "remove_product"

	if f.catalog.HasProduct(name) {
		if f.orders.References(name) {
			return fail(ctx, command, domain.Fail(domain.ErrEntityReferenced, MsgProductInOrderFmt, name))
		}
		if unit, busy := f.unitWorkingOn(domain.ProductRecipe(name)); busy {
			return fail(ctx, command, domain.Fail(domain.ErrEntityReferenced, MsgUnitBusyFmt, name, unitLabel(unit)))
		}
	}
	if err := f.catalog.RemoveProduct(name); err != nil {
		return fail(ctx, command, asFailure(err))
	}
	f.ledger.ForgetProduct(name)
	logger.FromContext(ctx).Info(LogMsgCatalogChanged, "action", "remove_product", "product", name)
	return fmt.Sprintf(MsgProductRemovedFmt, name), nil
}

// RemoveMaterial deletes a material that no recipe or running job uses
func (f *Facility) RemoveMaterial(ctx context.Context, name string) (string, error) {
	const command = "remove_material"

	if unit, busy := f.unitWorkingOn(domain.MaterialRecipe(name)); busy {
		return fail(ctx, command, domain.Fail(domain.ErrEntityReferenced, MsgUnitBusyFmt, name, unitLabel(unit)))
	}
	if err := f.catalog.RemoveMaterial(name); err != nil {
		return fail(ctx, command, asFailure(err))
	}
	f.ledger.ForgetMaterial(name)
	logger.FromContext(ctx).Info(LogMsgCatalogChanged, "action", "remove_material", "material", name)
	return fmt.Sprintf(MsgMaterialRemovedFmt, name), nil
}

// SetRequirement adds or updates an ingredient of target's recipe
func (f *Facility) SetRequirement(ctx context.Context, target, ingredient domain.RecipeRef, quantity int) (string, error) {
	if err := f.catalog.SetRequirement(target, ingredient, quantity); err != nil {
		return fail(ctx, "set_requirement", asFailure(err))
	}
	logger.FromContext(ctx).Info(LogMsgCatalogChanged, "action", "set_requirement",
		"target", target.String(), "ingredient", ingredient.String(), "quantity", quantity)
	return fmt.Sprintf(MsgRequirementSetFmt, target.Name, ingredient.Name, quantity), nil
}

// RemoveRequirement drops an ingredient from target's recipe
func (f *Facility) RemoveRequirement(ctx context.Context, target, ingredient domain.RecipeRef) (string, error) {
	if err := f.catalog.RemoveRequirement(target, ingredient); err != nil {
		return fail(ctx, "remove_requirement", asFailure(err))
	}
	logger.FromContext(ctx).Info(LogMsgCatalogChanged, "action", "remove_requirement",
		"target", target.String(), "ingredient", ingredient.String())
	return fmt.Sprintf(MsgRequirementDropFmt, target.Name, ingredient.Name), nil
}

// unitWorkingOn finds a unit whose current job is ref
func (f *Facility) unitWorkingOn(ref domain.RecipeRef) (*workunit.Unit, bool) {
	for _, u := range f.allUnits() {
		if job, ok := u.Job(); ok && job == ref {
			return u, true
		}
	}
	return nil, false
}

func unitLabel(u *workunit.Unit) string {
	return fmt.Sprintf("%s %d", u.Name(), u.ID())
}
