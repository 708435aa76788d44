package metrics

import (
	"context"

	"github.com/osse101/FactorySim_Go/internal/event"
	"github.com/osse101/FactorySim_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every facility event
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.AllTypes() {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent updates metrics for one event. Undecodable payloads are
// counted as published and otherwise ignored.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.ProductionCompleted:
		var p event.ProductionCompletedPayloadV1
		if p, err = event.DecodePayload[event.ProductionCompletedPayloadV1](evt.Payload); err == nil {
			ProductsProduced.WithLabelValues(p.Product).Inc()
		}

	case event.CraftingCompleted:
		var p event.CraftingCompletedPayloadV1
		if p, err = event.DecodePayload[event.CraftingCompletedPayloadV1](evt.Payload); err == nil {
			RecipesCrafted.WithLabelValues(p.Recipe, p.Kind).Inc()
		}

	case event.OrderCreated, event.OrderCompleted:
		var p event.OrderPayloadV1
		if p, err = event.DecodePayload[event.OrderPayloadV1](evt.Payload); err == nil {
			if evt.Type == event.OrderCreated {
				OrdersCreated.WithLabelValues(p.Product).Inc()
			} else {
				OrdersCompleted.WithLabelValues(p.Product).Inc()
				OrderRevenue.Add(p.Payout)
			}
		}

	case event.MaterialPurchased:
		var p event.TradePayloadV1
		if p, err = event.DecodePayload[event.TradePayloadV1](evt.Payload); err == nil {
			MaterialsPurchased.WithLabelValues(p.Name).Add(float64(p.Quantity))
			MoneySpent.Add(p.Amount)
		}

	case event.ProductSold:
		var p event.TradePayloadV1
		if p, err = event.DecodePayload[event.TradePayloadV1](evt.Payload); err == nil {
			ProductsSold.WithLabelValues(p.Name).Add(float64(p.Quantity))
			MoneyEarned.Add(p.Amount)
		}

	case event.PayrollPaid:
		var p event.PayrollPayloadV1
		if p, err = event.DecodePayload[event.PayrollPayloadV1](evt.Payload); err == nil {
			PayrollPaid.Add(p.Amount)
			if p.Shortfall {
				PayrollShortfalls.Inc()
			}
		}

	case event.DayStarted:
		var p event.DayStartedPayloadV1
		if p, err = event.DecodePayload[event.DayStartedPayloadV1](evt.Payload); err == nil {
			Day.Set(float64(p.Day))
			Balance.Set(p.Balance)
			DailyProfit.Set(p.Profit)
		}

	case event.OperatorPassDone:
		var p event.OperatorPassPayloadV1
		if p, err = event.DecodePayload[event.OperatorPassPayloadV1](evt.Payload); err == nil {
			outcome := OutcomeOK
			if p.Error != "" {
				outcome = OutcomeError
			}
			OperatorPasses.WithLabelValues(p.Strategy, outcome).Inc()
			OperatorCommands.WithLabelValues(p.Strategy).Add(float64(p.Commands))
		}
	}

	if err != nil {
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}
	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// RecordHandlerFailure counts an event whose handlers failed
func RecordHandlerFailure(eventType event.Type) {
	EventHandlerErrors.WithLabelValues(string(eventType)).Inc()
}
