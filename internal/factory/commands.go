package factory

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/recipe"
	"github.com/osse101/FactorySim_Go/internal/workunit"
)

// Purchase buys quantity units of a material at its catalog cost
func (f *Facility) Purchase(ctx context.Context, materialName string, quantity int) (string, error) {
	const command = "purchase"

	material, ok := f.catalog.Material(materialName)
	if !ok {
		return fail(ctx, command, domain.Fail(domain.ErrMaterialNotFound, MsgMaterialNotFoundFmt, materialName))
	}
	if quantity <= 0 {
		return fail(ctx, command, domain.Fail(domain.ErrInvalidQuantity, MsgInvalidQuantityFmt, quantity))
	}
	if quantity > MaxTradeQuantity || f.ledger.MaterialQty(materialName) > math.MaxInt-quantity {
		return fail(ctx, command, domain.Fail(domain.ErrInvalidQuantity, MsgQuantityTooLargeFmt, MaxTradeQuantity, quantity))
	}

	cost := material.Cost * float64(quantity)
	if !f.ledger.CanAfford(cost) {
		return fail(ctx, command, domain.Fail(domain.ErrInsufficientFunds, MsgInsufficientFundsFmt,
			domain.Money(cost), domain.Money(f.ledger.Balance())))
	}

	f.ledger.Debit(cost)
	f.ledger.AddMaterial(materialName, quantity)

	logger.FromContext(ctx).Info(LogMsgMaterialPurchased, "material", materialName, "quantity", quantity, "cost", cost)
	f.publish(ctx, event.NewTradeEvent(event.MaterialPurchased, materialName, quantity, cost))
	return fmt.Sprintf(MsgPurchasedFmt, quantity, material.Unit, materialName, domain.Money(cost)), nil
}

// CreateOrder opens an order due daysUntilDeadline days from now.
// The product's current sale price is captured on the order.
func (f *Facility) CreateOrder(ctx context.Context, productName string, quantity, daysUntilDeadline int) (domain.Order, string, error) {
	const command = "create_order"

	product, ok := f.catalog.Product(productName)
	if !ok {
		_, err := fail(ctx, command, domain.Fail(domain.ErrProductNotFound, MsgProductNotFoundFmt, productName))
		return domain.Order{}, "", err
	}
	if quantity <= 0 {
		_, err := fail(ctx, command, domain.Fail(domain.ErrInvalidQuantity, MsgInvalidQuantityFmt, quantity))
		return domain.Order{}, "", err
	}
	if quantity > MaxTradeQuantity {
		_, err := fail(ctx, command, domain.Fail(domain.ErrInvalidQuantity, MsgQuantityTooLargeFmt, MaxTradeQuantity, quantity))
		return domain.Order{}, "", err
	}
	if daysUntilDeadline < 0 {
		_, err := fail(ctx, command, domain.Fail(domain.ErrInvalidQuantity, MsgInvalidDaysFmt, daysUntilDeadline))
		return domain.Order{}, "", err
	}
	if daysUntilDeadline > MaxDeadlineDays {
		_, err := fail(ctx, command, domain.Fail(domain.ErrInvalidQuantity, MsgDaysTooLargeFmt, MaxDeadlineDays, daysUntilDeadline))
		return domain.Order{}, "", err
	}

	deadline := f.clock.Add(time.Duration(daysUntilDeadline) * HoursPerDay)
	order, err := f.orders.Open(productName, quantity, product.SalePrice, deadline)
	if err != nil {
		return domain.Order{}, "", err
	}

	logger.FromContext(ctx).Info(LogMsgOrderCreated, "order_id", order.ID, "product", productName, "quantity", quantity)
	f.publish(ctx, event.NewOrderEvent(event.OrderCreated, order))
	return order, fmt.Sprintf(MsgOrderCreatedFmt, order), nil
}

// AssignWorkerToLine moves a worker onto a production line, releasing it from
// any other line or station first
func (f *Facility) AssignWorkerToLine(ctx context.Context, workerName string, lineID int) (string, error) {
	const command = "assign_worker_to_line"

	worker, ok := f.findWorker(workerName)
	if !ok {
		return fail(ctx, command, domain.Fail(domain.ErrWorkerNotFound, MsgWorkerNotFoundFmt, workerName))
	}
	line, ok := f.findLine(lineID)
	if !ok {
		return fail(ctx, command, domain.Fail(domain.ErrLineNotFound, MsgLineNotFoundFmt, lineID))
	}

	f.assignWorker(ctx, worker, line)
	return fmt.Sprintf(MsgWorkerToLineFmt, workerName, lineID), nil
}

// AssignWorkerToStation moves a worker onto a crafting station, releasing it
// from any other line or station first
func (f *Facility) AssignWorkerToStation(ctx context.Context, workerName string, stationID int) (string, error) {
	const command = "assign_worker_to_station"

	worker, ok := f.findWorker(workerName)
	if !ok {
		return fail(ctx, command, domain.Fail(domain.ErrWorkerNotFound, MsgWorkerNotFoundFmt, workerName))
	}
	station, ok := f.findStation(stationID)
	if !ok {
		return fail(ctx, command, domain.Fail(domain.ErrStationNotFound, MsgStationNotFoundFmt, stationID))
	}

	f.assignWorker(ctx, worker, station)
	return fmt.Sprintf(MsgWorkerToStationFmt, workerName, stationID), nil
}

func (f *Facility) assignWorker(ctx context.Context, worker domain.Worker, unit *workunit.Unit) {
	f.releaseWorker(worker.Name)
	unit.AssignWorker(worker)
	logger.FromContext(ctx).Info(LogMsgWorkerAssigned, "worker", worker.Name, "unit", unit.Kind().String(), "unit_id", unit.ID())
}

// AssignProductToLine consumes the product's full recipe and starts producing
// it on a staffed line. Nothing is consumed on failure.
func (f *Facility) AssignProductToLine(ctx context.Context, productName string, lineID int) (string, error) {
	const command = "assign_product_to_line"

	product, ok := f.catalog.Product(productName)
	if !ok {
		return fail(ctx, command, domain.Fail(domain.ErrProductNotFound, MsgProductNotFoundFmt, productName))
	}
	line, ok := f.findLine(lineID)
	if !ok {
		return fail(ctx, command, domain.Fail(domain.ErrLineNotFound, MsgLineNotFoundFmt, lineID))
	}
	if !line.Active() {
		return fail(ctx, command, domain.Fail(domain.ErrUnitUnstaffed, MsgLineUnstaffedFmt, lineID))
	}

	if err := f.startJob(ctx, line, domain.ProductRecipe(productName),
		product.MaterialsRequired, product.ProductsRequired, float64(product.ProductionTime)); err != nil {
		return fail(ctx, command, err)
	}
	return fmt.Sprintf(MsgLineStartedFmt, lineID, productName), nil
}

// AssignRecipeToStation consumes a craftable recipe and starts crafting it on
// a staffed station. The reference fixes whether a product or material is meant.
func (f *Facility) AssignRecipeToStation(ctx context.Context, ref domain.RecipeRef, stationID int) (string, error) {
	const command = "assign_recipe_to_station"

	station, ok := f.findStation(stationID)
	if !ok {
		return fail(ctx, command, domain.Fail(domain.ErrStationNotFound, MsgStationNotFoundFmt, stationID))
	}
	materials, products, craftable, err := f.catalog.Recipe(ref)
	if err != nil {
		return fail(ctx, command, asFailure(err))
	}
	if !station.Active() {
		return fail(ctx, command, domain.Fail(domain.ErrUnitUnstaffed, MsgStationUnstaffedFmt, stationID))
	}
	if !craftable {
		return fail(ctx, command, domain.Fail(domain.ErrNotCraftable, MsgNotCraftableFmt, ref.Name))
	}

	if err := f.startJob(ctx, station, ref, materials, products, domain.CraftingThreshold); err != nil {
		return fail(ctx, command, err)
	}
	return fmt.Sprintf(MsgStationStartedFmt, stationID, ref.Name), nil
}

// startJob runs the check-then-consume pair and binds the job
func (f *Facility) startJob(ctx context.Context, unit *workunit.Unit, ref domain.RecipeRef,
	materials, products domain.Requirements, threshold float64) *domain.Failure {
	if short := recipe.Check(materials, products, f.ledger); short != nil {
		return &domain.Failure{Message: short.Error(), Err: short}
	}
	if err := recipe.Consume(materials, products, f.ledger); err != nil {
		return &domain.Failure{Message: err.Error(), Err: err}
	}
	if err := unit.AssignJob(ref, threshold); err != nil {
		return &domain.Failure{Message: err.Error(), Err: err}
	}
	logger.FromContext(ctx).Info(LogMsgJobStarted, "unit", unit.Kind().String(), "unit_id", unit.ID(), "job", ref.String())
	return nil
}

// Sell sells finished products from stock at the catalog sale price
func (f *Facility) Sell(ctx context.Context, productName string, quantity int) (string, error) {
	const command = "sell"

	product, ok := f.catalog.Product(productName)
	if !ok {
		return fail(ctx, command, domain.Fail(domain.ErrProductNotFound, MsgProductNotFoundFmt, productName))
	}
	if quantity <= 0 {
		return fail(ctx, command, domain.Fail(domain.ErrInvalidQuantity, MsgInvalidQuantityFmt, quantity))
	}
	if have := f.ledger.ProductQty(productName); have < quantity {
		return fail(ctx, command, domain.Fail(domain.ErrInsufficientStock, MsgInsufficientStockFmt, productName, have))
	}

	income := product.SalePrice * float64(quantity)
	if err := f.ledger.TakeProduct(productName, quantity); err != nil {
		return fail(ctx, command, asFailure(err))
	}
	f.ledger.Credit(income)

	logger.FromContext(ctx).Info(LogMsgProductSold, "product", productName, "quantity", quantity, "income", income)
	f.publish(ctx, event.NewTradeEvent(event.ProductSold, productName, quantity, income))
	return fmt.Sprintf(MsgSoldFmt, quantity, productName, domain.Money(income)), nil
}

// asFailure keeps a Failure as is and wraps any other error so its text is shown verbatim
func asFailure(err error) *domain.Failure {
	if failure, ok := err.(*domain.Failure); ok {
		return failure
	}
	return &domain.Failure{Message: err.Error(), Err: err}
}
