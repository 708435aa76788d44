package operator

import (
	"context"
	"fmt"
	"slices"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/recipe"
	"github.com/osse101/FactorySim_Go/internal/workunit"
)

// passRun carries one pass's context and collects the actions it took
type passRun struct {
	op      *Operator
	ctx     context.Context
	oneShot bool
	actions []string
}

// balanced: staff and load lines, staff and load stations, restock, keep orders coming.
// Job assignment runs again after restocking so one pass reaches a fixed point.
func (p *passRun) balanced() {
	p.workersToLines()
	p.productsToLines()
	p.workersToStations()
	p.recipesToStations()
	if p.oneShot {
		p.restock()
		p.productsToLines()
		p.recipesToStations()
		if p.op.fac.OrderCount() < MaxOperatorOrders {
			p.randomOrder()
		}
	}
}

// aggressive expands capacity while cash allows, then plays balanced
func (p *passRun) aggressive() {
	if p.oneShot {
		p.expand()
	}
	p.balanced()
}

// conservative keeps lines running and only buys critical materials
func (p *passRun) conservative() {
	p.workersToLines()
	p.productsToLines()
	if p.oneShot {
		p.criticalRestock()
		p.productsToLines()
	}
}

func (p *passRun) record(msg string) {
	p.actions = append(p.actions, msg)
}

// ok logs a rejected command and reports whether it succeeded
func (p *passRun) ok(command string, err error) bool {
	if err != nil {
		logger.FromContext(p.ctx).Debug(LogMsgCommandRejected, "command", command, "reason", err.Error())
		return false
	}
	return true
}

func (p *passRun) idleWorkers() []string {
	var idle []string
	for _, w := range p.op.fac.Workers() {
		if !p.op.fac.IsWorking(w.Name) {
			idle = append(idle, w.Name)
		}
	}
	return idle
}

func unstaffed(units []workunit.Status) []int {
	var ids []int
	for _, u := range units {
		if !u.Active {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// waiting lists staffed units without a job
func waiting(units []workunit.Status) []int {
	var ids []int
	for _, u := range units {
		if u.State == workunit.StateStaffed {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

func (p *passRun) workersToLines() {
	workers, lines := p.idleWorkers(), unstaffed(p.op.fac.Lines())
	for i := 0; i < min(len(workers), len(lines)); i++ {
		if _, err := p.op.fac.AssignWorkerToLine(p.ctx, workers[i], lines[i]); p.ok("assign_worker_to_line", err) {
			p.record(fmt.Sprintf(ActionWorkerToLineFmt, workers[i], lines[i]))
		}
	}
}

func (p *passRun) workersToStations() {
	workers, stations := p.idleWorkers(), unstaffed(p.op.fac.Stations())
	for i := 0; i < min(len(workers), len(stations)); i++ {
		if _, err := p.op.fac.AssignWorkerToStation(p.ctx, workers[i], stations[i]); p.ok("assign_worker_to_station", err) {
			p.record(fmt.Sprintf(ActionWorkerToStationFmt, workers[i], stations[i]))
		}
	}
}

func (p *passRun) feasible(materials, products domain.Requirements) bool {
	return recipe.Check(materials, products, p.op.fac) == nil
}

// productsToLines starts the first feasible product, in catalog order, on each waiting line
func (p *passRun) productsToLines() {
	for _, lineID := range waiting(p.op.fac.Lines()) {
		for _, prod := range p.op.fac.Products() {
			if !p.feasible(prod.MaterialsRequired, prod.ProductsRequired) {
				continue
			}
			if _, err := p.op.fac.AssignProductToLine(p.ctx, prod.Name, lineID); p.ok("assign_product_to_line", err) {
				p.record(fmt.Sprintf(ActionProduceFmt, prod.Name, lineID))
				break
			}
		}
	}
}

// recipesToStations starts the first feasible craftable recipe on each waiting station
func (p *passRun) recipesToStations() {
	for _, stationID := range waiting(p.op.fac.Stations()) {
		for _, ref := range p.op.fac.CraftableRecipes() {
			materials, products, _, err := p.op.fac.Recipe(ref)
			if err != nil || !p.feasible(materials, products) {
				continue
			}
			if _, err := p.op.fac.AssignRecipeToStation(p.ctx, ref, stationID); p.ok("assign_recipe_to_station", err) {
				p.record(fmt.Sprintf(ActionCraftFmt, ref.Name, stationID))
				break
			}
		}
	}
}

// restock tops up every understocked material the balance comfortably covers
func (p *passRun) restock() {
	for _, m := range p.op.fac.Materials() {
		balance := p.op.fac.Balance()
		if p.op.fac.MaterialQty(m.Name) >= RestockBelow || balance <= m.Cost*RestockFundsFactor {
			continue
		}
		qty := RestockMaxQuantity
		if m.Cost > 0 {
			qty = min(RestockMaxQuantity, int(balance/m.Cost/2))
		}
		if qty <= 0 {
			continue
		}
		if _, err := p.op.fac.Purchase(p.ctx, m.Name, qty); p.ok("purchase", err) {
			p.record(fmt.Sprintf(ActionPurchaseFmt, qty, m.Name))
		}
	}
}

// criticalRestock brings critical materials back to their target, spending at most half the balance
func (p *passRun) criticalRestock() {
	for _, m := range p.op.fac.Materials() {
		if !slices.Contains(CriticalMaterials, m.Name) {
			continue
		}
		stock, balance := p.op.fac.MaterialQty(m.Name), p.op.fac.Balance()
		if stock >= CriticalBelow || balance <= CriticalMinBal {
			continue
		}
		qty := CriticalTarget - stock
		if m.Cost > 0 {
			qty = min(qty, int(balance/m.Cost/2))
		}
		if qty <= 0 {
			continue
		}
		if _, err := p.op.fac.Purchase(p.ctx, m.Name, qty); p.ok("purchase", err) {
			p.record(fmt.Sprintf(ActionPurchaseFmt, qty, m.Name))
		}
	}
}

// randomOrder opens one order for a random product
func (p *passRun) randomOrder() {
	products := p.op.fac.Products()
	if len(products) == 0 {
		return
	}
	rng := p.op.rng
	product := products[rng.Intn(len(products))].Name
	qty := OrderMinQuantity + rng.Intn(OrderMaxQuantity-OrderMinQuantity+1)
	days := OrderMinDays + rng.Intn(OrderMaxDays-OrderMinDays+1)

	if _, _, err := p.op.fac.CreateOrder(p.ctx, product, qty, days); p.ok("create_order", err) {
		p.record(fmt.Sprintf(ActionOrderFmt, product, qty, days))
	}
}

// expand hires, adds a line and adds a station, each when cash allows
func (p *passRun) expand() {
	fac := p.op.fac

	if n := len(fac.Workers()); n < HireMaxWorkers && fac.Balance() > HireMinBalance {
		name := fmt.Sprintf(HireNameFmt, n+1)
		if _, err := fac.HireWorker(p.ctx, name, HireSkill, HireSalary); p.ok("hire_worker", err) {
			p.record(fmt.Sprintf(ActionHireFmt, name))
		}
	}
	if len(fac.Lines()) < LineMaxCount && fac.Balance() > LineMinBalance {
		if _, err := fac.AddProductionLine(p.ctx, LineCapacity); p.ok("add_production_line", err) {
			p.record(ActionLineAdded)
		}
	}
	if len(fac.Stations()) < StationMaxCount && fac.Balance() > StationMinBal {
		if _, err := fac.AddCraftingStation(p.ctx, StationName, StationCapacity); p.ok("add_crafting_station", err) {
			p.record(ActionStationAdded)
		}
	}
}
