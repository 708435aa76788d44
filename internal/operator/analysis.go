package operator

import (
	"fmt"
	"strings"

	"github.com/osse101/FactorySim_Go/internal/domain"
)

// Report is a read-only assessment of the facility
type Report struct {
	Balance      float64  `json:"balance"`
	Finance      string   `json:"finance"`
	ActiveLines  int      `json:"active_lines"`
	TotalLines   int      `json:"total_lines"`
	LowStock     []string `json:"low_stock"`
	ActiveOrders int      `json:"active_orders"`
	Suggestions  []string `json:"suggestions"`
}

// Analyze inspects finances, line staffing, stock levels and the order backlog
func (o *Operator) Analyze() Report {
	fac := o.fac
	r := Report{Balance: fac.Balance(), ActiveOrders: fac.OpenOrderCount()}

	switch {
	case r.Balance < LowFundsBelow:
		r.Finance = FundsWarning
	case r.Balance > GoodFundsAbove:
		r.Finance = FundsGood
	default:
		r.Finance = FundsNormal
	}

	lines := fac.Lines()
	r.TotalLines = len(lines)
	for _, l := range lines {
		if l.Active {
			r.ActiveLines++
		}
	}
	if r.ActiveLines < r.TotalLines {
		r.Suggestions = append(r.Suggestions, SuggestWorkers)
	}

	for _, m := range fac.Materials() {
		if fac.MaterialQty(m.Name) < LowStockBelow {
			r.LowStock = append(r.LowStock, m.Name)
		}
	}
	if len(r.LowStock) > 0 {
		r.Suggestions = append(r.Suggestions, SuggestRestock)
	}

	if r.ActiveOrders < TargetOpenOrders {
		r.Suggestions = append(r.Suggestions, SuggestOrders)
	}
	return r
}

// Text renders the report
func (r Report) Text() string {
	var b strings.Builder
	b.WriteString("=== AI Analysis Report ===\n\n")

	fmt.Fprintf(&b, "Financial Status: %s\n%s\n\n", domain.Money(r.Balance), r.Finance)

	fmt.Fprintf(&b, "Production Lines: %d/%d running\n", r.ActiveLines, r.TotalLines)
	if r.ActiveLines < r.TotalLines {
		b.WriteString(SuggestWorkers + "\n")
	}
	b.WriteString("\n")

	if len(r.LowStock) > 0 {
		fmt.Fprintf(&b, "Low stock materials: %s\n", strings.Join(r.LowStock, ", "))
		b.WriteString(SuggestRestock + "\n")
	} else {
		b.WriteString(StockSufficient + "\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Active orders: %d\n", r.ActiveOrders)
	if r.ActiveOrders < TargetOpenOrders {
		b.WriteString(SuggestOrders + "\n")
	}
	return b.String()
}
