package domain

import (
	"fmt"
	"time"
)

// Order is a customer request for a quantity of one product by a deadline
type Order struct {
	ID                int       `json:"id"`
	Product           string    `json:"product"`
	Quantity          int       `json:"quantity"`
	UnitPrice         float64   `json:"unit_price"` // sale price captured when the order was opened
	Deadline          time.Time `json:"deadline"`
	CompletedQuantity int       `json:"completed_quantity"`
	Completed         bool      `json:"completed"`
}

// IsOverdue reports whether now is past the deadline while the order is still open
func (o Order) IsOverdue(now time.Time) bool {
	return !o.Completed && now.After(o.Deadline)
}

// Payout is the lump sum credited when the order completes
func (o Order) Payout() float64 {
	return o.UnitPrice * float64(o.Quantity)
}

func (o Order) String() string {
	status := StatusInProgress
	if o.Completed {
		status = StatusCompleted
	}
	return fmt.Sprintf("Order #%d: %s x%d (Deadline:%s, Status:%s)",
		o.ID, o.Product, o.Quantity, o.Deadline.Format(ClockLayout), status)
}
