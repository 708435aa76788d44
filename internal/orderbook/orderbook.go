// Package orderbook tracks customer orders and applies finished production to them.
package orderbook

import (
	"time"

	"github.com/osse101/FactorySim_Go/internal/domain"
)

// Book holds orders in creation order with sequential ids starting at 1
type Book struct {
	orders []domain.Order
}

// New returns an empty book
func New() *Book {
	return &Book{}
}

// Open adds an order and returns a copy of it
func (b *Book) Open(product string, quantity int, unitPrice float64, deadline time.Time) (domain.Order, error) {
	if quantity <= 0 {
		return domain.Order{}, domain.ErrInvalidQuantity
	}
	o := domain.Order{
		ID:        len(b.orders) + 1,
		Product:   product,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Deadline:  deadline,
	}
	b.orders = append(b.orders, o)
	return o, nil
}

// Fulfillment describes a unit of production applied to an order
type Fulfillment struct {
	Order        domain.Order
	CompletedNow bool
}

// RecordProduction credits one finished unit of product to the first open
// order for it, in id order. It reports false when no open order matches.
func (b *Book) RecordProduction(product string) (Fulfillment, bool) {
	for i := range b.orders {
		o := &b.orders[i]
		if o.Completed || o.Product != product {
			continue
		}
		o.CompletedQuantity++
		completedNow := false
		if o.CompletedQuantity >= o.Quantity {
			o.Completed = true
			completedNow = true
		}
		return Fulfillment{Order: *o, CompletedNow: completedNow}, true
	}
	return Fulfillment{}, false
}

// Get returns a copy of the order with id
func (b *Book) Get(id int) (domain.Order, bool) {
	if id < 1 || id > len(b.orders) {
		return domain.Order{}, false
	}
	return b.orders[id-1], true
}

// All returns copies of every order in id order
func (b *Book) All() []domain.Order {
	out := make([]domain.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// OpenCount returns the number of orders not yet completed
func (b *Book) OpenCount() int {
	n := 0
	for _, o := range b.orders {
		if !o.Completed {
			n++
		}
	}
	return n
}

// Overdue lists ids of open orders whose deadline is before now
func (b *Book) Overdue(now time.Time) []int {
	var ids []int
	for _, o := range b.orders {
		if o.IsOverdue(now) {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// References reports whether any open order names product
func (b *Book) References(product string) bool {
	for _, o := range b.orders {
		if !o.Completed && o.Product == product {
			return true
		}
	}
	return false
}

// Len returns the total number of orders
func (b *Book) Len() int { return len(b.orders) }

// Clear drops every order; ids start again at 1
func (b *Book) Clear() {
	b.orders = nil
}
