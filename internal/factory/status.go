package factory

import (
	"fmt"
	"strings"
	"time"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/workunit"
)

// ProductUnit is the unit label shown for finished products
const ProductUnit = "units"

// WorkerStatus is a roster entry with its derived assignment
type WorkerStatus struct {
	Name       string  `json:"name"`
	Skill      int     `json:"skill_level"`
	Salary     float64 `json:"salary"`
	Efficiency float64 `json:"efficiency"`
	Working    bool    `json:"is_working"`
	Assignment string  `json:"assignment,omitempty"`
	Summary    string  `json:"summary"`
}

// StockLine is one inventory row
type StockLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

// OrderStatus is an order with its derived overdue flag
type OrderStatus struct {
	domain.Order
	Overdue bool   `json:"overdue"`
	Summary string `json:"summary"`
}

// Status is a full read-only snapshot of the facility
type Status struct {
	Name        string            `json:"name"`
	Day         int               `json:"day"`
	Clock       time.Time         `json:"current_time"`
	Balance     float64           `json:"balance"`
	DailyIncome float64           `json:"daily_income"`
	DailyCost   float64           `json:"daily_costs"`
	Lines       []workunit.Status `json:"production_lines"`
	Stations    []workunit.Status `json:"crafting_stations"`
	Workers     []WorkerStatus    `json:"workers"`
	Materials   []StockLine       `json:"material_inventory"`
	Products    []StockLine       `json:"product_inventory"`
	Orders      []OrderStatus     `json:"orders"`
}

// Status snapshots the facility. Inventory follows catalog order.
func (f *Facility) Status() Status {
	s := Status{
		Name:        f.name,
		Day:         f.day,
		Clock:       f.clock,
		Balance:     f.ledger.Balance(),
		DailyIncome: f.ledger.DailyIncome(),
		DailyCost:   f.ledger.DailyCost(),
		Lines:       f.Lines(),
		Stations:    f.Stations(),
	}

	for _, w := range f.workers {
		ws := WorkerStatus{
			Name:       w.Name,
			Skill:      w.Skill,
			Salary:     w.Salary,
			Efficiency: w.Efficiency(),
		}
		if unit, ok := f.assignmentOf(w.Name); ok {
			ws.Working = true
			ws.Assignment = unitLabel(unit)
		}
		ws.Summary = w.Describe(ws.Working)
		s.Workers = append(s.Workers, ws)
	}

	for _, m := range f.catalog.Materials() {
		s.Materials = append(s.Materials, StockLine{Name: m.Name, Quantity: f.ledger.MaterialQty(m.Name), Unit: m.Unit})
	}
	for _, name := range f.catalog.ProductNames() {
		s.Products = append(s.Products, StockLine{Name: name, Quantity: f.ledger.ProductQty(name), Unit: ProductUnit})
	}

	for _, o := range f.orders.All() {
		s.Orders = append(s.Orders, OrderStatus{Order: o, Overdue: o.IsOverdue(f.clock), Summary: o.String()})
	}
	return s
}

// StatusText renders the status report
func (f *Facility) StatusText() string {
	return f.Status().Text()
}

// Text renders the snapshot as the plain-text status report
func (s Status) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s Status (Day %d) ===\n", s.Name, s.Day)
	fmt.Fprintf(&b, "Balance: %s\n", domain.Money(s.Balance))
	fmt.Fprintf(&b, "Time: %s\n", s.Clock.Format(domain.ClockLayout))

	b.WriteString("\n--- Production Lines ---\n")
	for _, l := range s.Lines {
		fmt.Fprintf(&b, "  %s\n", l.Summary)
	}

	b.WriteString("\n--- Crafting Stations ---\n")
	for _, st := range s.Stations {
		fmt.Fprintf(&b, "  %s\n", st.Summary)
	}

	b.WriteString("\n--- Workers ---\n")
	for _, w := range s.Workers {
		fmt.Fprintf(&b, "  %s\n", w.Summary)
	}

	b.WriteString("\n--- Material Inventory ---\n")
	for _, m := range s.Materials {
		fmt.Fprintf(&b, "  %s: %d%s\n", m.Name, m.Quantity, m.Unit)
	}

	b.WriteString("\n--- Product Inventory ---\n")
	for _, p := range s.Products {
		fmt.Fprintf(&b, "  %s: %d %s\n", p.Name, p.Quantity, p.Unit)
	}

	b.WriteString("\n--- Orders ---\n")
	for _, o := range s.Orders {
		overdue := ""
		if o.Overdue {
			overdue = " (Overdue!)"
		}
		fmt.Fprintf(&b, "  %s%s\n", o.Summary, overdue)
	}
	return b.String()
}
