// Package ledger keeps the facility's cash, stock and daily accumulators.
//
// A Ledger is owned by exactly one facility and never handed out; other
// components only ever see a Snapshot.
package ledger

import (
	"fmt"
	"maps"

	"github.com/osse101/FactorySim_Go/internal/domain"
)

// Ledger is the mutable resource state of a facility
type Ledger struct {
	balance     float64
	materials   map[string]int
	products    map[string]int
	dailyIncome float64
	dailyCost   float64
}

// New creates a ledger with an opening balance and no stock
func New(balance float64) *Ledger {
	return &Ledger{
		balance:   balance,
		materials: make(map[string]int),
		products:  make(map[string]int),
	}
}

// Balance returns the current cash balance
func (l *Ledger) Balance() float64 { return l.balance }

// DailyIncome returns income accumulated since the last day close
func (l *Ledger) DailyIncome() float64 { return l.dailyIncome }

// DailyCost returns cost accumulated since the last day close
func (l *Ledger) DailyCost() float64 { return l.dailyCost }

// MaterialQty returns the stock of a material (0 when untracked)
func (l *Ledger) MaterialQty(name string) int { return l.materials[name] }

// ProductQty returns the stock of a product (0 when untracked)
func (l *Ledger) ProductQty(name string) int { return l.products[name] }

// CanAfford reports whether amount can be paid without going negative
func (l *Ledger) CanAfford(amount float64) bool {
	return amount <= l.balance
}

// Credit adds revenue to the balance and the daily income
func (l *Ledger) Credit(amount float64) {
	l.balance += amount
	l.dailyIncome += amount
}

// Debit removes an expense from the balance and adds it to the daily cost.
// It does not check funds: payroll is allowed to push the balance negative.
func (l *Ledger) Debit(amount float64) {
	l.balance -= amount
	l.dailyCost += amount
}

// TrackMaterial registers a material with an initial quantity if it is not tracked yet
func (l *Ledger) TrackMaterial(name string, qty int) {
	if _, ok := l.materials[name]; !ok {
		l.materials[name] = qty
	}
}

// TrackProduct registers a product with zero stock if it is not tracked yet
func (l *Ledger) TrackProduct(name string) {
	if _, ok := l.products[name]; !ok {
		l.products[name] = 0
	}
}

// ForgetMaterial stops tracking a material
func (l *Ledger) ForgetMaterial(name string) { delete(l.materials, name) }

// ForgetProduct stops tracking a product
func (l *Ledger) ForgetProduct(name string) { delete(l.products, name) }

// AddMaterial increases material stock
func (l *Ledger) AddMaterial(name string, qty int) { l.materials[name] += qty }

// AddProduct increases product stock
func (l *Ledger) AddProduct(name string, qty int) { l.products[name] += qty }

// TakeMaterial decreases material stock; it never lets stock go negative
func (l *Ledger) TakeMaterial(name string, qty int) error {
	return take(l.materials, name, qty)
}

// TakeProduct decreases product stock; it never lets stock go negative
func (l *Ledger) TakeProduct(name string, qty int) error {
	return take(l.products, name, qty)
}

func take(stock map[string]int, name string, qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, qty)
	}
	if stock[name] < qty {
		return fmt.Errorf("%w: %s has %d, need %d", domain.ErrInsufficientStock, name, stock[name], qty)
	}
	stock[name] -= qty
	return nil
}

// CloseDay returns income minus cost and zeroes both accumulators
func (l *Ledger) CloseDay() float64 {
	profit := l.dailyIncome - l.dailyCost
	l.dailyIncome = 0
	l.dailyCost = 0
	return profit
}

// Snapshot is a detached copy of the ledger
type Snapshot struct {
	Balance     float64        `json:"balance"`
	Materials   map[string]int `json:"material_inventory"`
	Products    map[string]int `json:"product_inventory"`
	DailyIncome float64        `json:"daily_income"`
	DailyCost   float64        `json:"daily_costs"`
}

// Snapshot copies the current state
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Balance:     l.balance,
		Materials:   maps.Clone(l.materials),
		Products:    maps.Clone(l.products),
		DailyIncome: l.dailyIncome,
		DailyCost:   l.dailyCost,
	}
}

// Restore replaces the whole state with a snapshot
func (l *Ledger) Restore(s Snapshot) {
	l.balance = s.Balance
	l.materials = maps.Clone(s.Materials)
	l.products = maps.Clone(s.Products)
	if l.materials == nil {
		l.materials = make(map[string]int)
	}
	if l.products == nil {
		l.products = make(map[string]int)
	}
	l.dailyIncome = s.DailyIncome
	l.dailyCost = s.DailyCost
}
