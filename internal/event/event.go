package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/FactorySim_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Facility event types
const (
	ProductionCompleted Type = "production.completed"
	CraftingCompleted   Type = "crafting.completed"
	OrderCreated        Type = "order.created"
	OrderCompleted      Type = "order.completed"
	MaterialPurchased   Type = "material.purchased"
	ProductSold         Type = "product.sold"
	PayrollPaid         Type = "payroll.paid"
	DayStarted          Type = "day.started"
	OperatorPassDone    Type = "operator.pass"
)

// Typed event payloads for type safety

// ProductionCompletedPayloadV1 is emitted when a production line finishes one unit
type ProductionCompletedPayloadV1 struct {
	LineID  int       `json:"line_id"`
	Product string    `json:"product"`
	OrderID int       `json:"order_id,omitempty"` // open order credited with the unit, if any
	At      time.Time `json:"at"`
}

// CraftingCompletedPayloadV1 is emitted when a crafting station finishes one item
type CraftingCompletedPayloadV1 struct {
	StationID int       `json:"station_id"`
	Recipe    string    `json:"recipe"`
	Kind      string    `json:"kind"`
	At        time.Time `json:"at"`
}

// OrderPayloadV1 describes an order at creation or completion
type OrderPayloadV1 struct {
	OrderID  int       `json:"order_id"`
	Product  string    `json:"product"`
	Quantity int       `json:"quantity"`
	Payout   float64   `json:"payout,omitempty"`
	Deadline time.Time `json:"deadline"`
}

// TradePayloadV1 covers purchases and sales
type TradePayloadV1 struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// PayrollPayloadV1 is emitted on every day rollover
type PayrollPayloadV1 struct {
	Day       int     `json:"day"`
	Amount    float64 `json:"amount"`
	Balance   float64 `json:"balance"`
	Shortfall bool    `json:"shortfall"`
}

// DayStartedPayloadV1 carries the closing figures of the previous day
type DayStartedPayloadV1 struct {
	Day     int       `json:"day"`
	Profit  float64   `json:"profit"`
	Balance float64   `json:"balance"`
	Clock   time.Time `json:"clock"`
}

// OperatorPassPayloadV1 is emitted after every operator pass
type OperatorPassPayloadV1 struct {
	PassID   string `json:"pass_id"`
	Strategy string `json:"strategy"`
	Commands int    `json:"commands"`
	Error    string `json:"error,omitempty"`
}

// Type-safe event constructors

// NewProductionCompletedEvent creates a production completion event
func NewProductionCompletedEvent(lineID int, product string, orderID int, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ProductionCompleted,
		Payload: ProductionCompletedPayloadV1{LineID: lineID, Product: product, OrderID: orderID, At: at},
	}
}

// NewCraftingCompletedEvent creates a crafting completion event
func NewCraftingCompletedEvent(stationID int, ref domain.RecipeRef, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CraftingCompleted,
		Payload: CraftingCompletedPayloadV1{StationID: stationID, Recipe: ref.Name, Kind: ref.Kind.String(), At: at},
	}
}

// NewOrderEvent creates an order created/completed event
func NewOrderEvent(eventType Type, order domain.Order) Event {
	payload := OrderPayloadV1{
		OrderID:  order.ID,
		Product:  order.Product,
		Quantity: order.Quantity,
		Deadline: order.Deadline,
	}
	if order.Completed {
		payload.Payout = order.Payout()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: payload,
	}
}

// NewTradeEvent creates a purchase or sale event
func NewTradeEvent(eventType Type, name string, quantity int, amount float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: TradePayloadV1{Name: name, Quantity: quantity, Amount: amount},
	}
}

// NewPayrollEvent creates a payroll event
func NewPayrollEvent(day int, amount, balance float64, shortfall bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PayrollPaid,
		Payload: PayrollPayloadV1{Day: day, Amount: amount, Balance: balance, Shortfall: shortfall},
	}
}

// NewDayStartedEvent creates a day rollover event
func NewDayStartedEvent(day int, profit, balance float64, clock time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DayStarted,
		Payload: DayStartedPayloadV1{Day: day, Profit: profit, Balance: balance, Clock: clock},
	}
}

// NewOperatorPassEvent creates an operator pass event
func NewOperatorPassEvent(passID, strategy string, commands int, passErr error) Event {
	payload := OperatorPassPayloadV1{PassID: passID, Strategy: strategy, Commands: commands}
	if passErr != nil {
		payload.Error = passErr.Error()
	}
	return Event{
		Version:  EventSchemaVersion,
		Type:     OperatorPassDone,
		Payload:  payload,
		Metadata: map[string]interface{}{"pass_id": passID},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously on the publishing goroutine.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes one handler to several event types
func (b *MemoryBus) SubscribeAll(handler Handler, eventTypes ...Type) {
	for _, t := range eventTypes {
		b.Subscribe(t, handler)
	}
}

// AllTypes lists every facility event type
func AllTypes() []Type {
	return []Type{
		ProductionCompleted, CraftingCompleted, OrderCreated, OrderCompleted,
		MaterialPurchased, ProductSold, PayrollPaid, DayStarted, OperatorPassDone,
	}
}
