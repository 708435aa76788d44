// Package recipe decides whether a recipe can be paid for and pays for it.
//
// Check and Consume form a check-then-commit pair: callers run Check and,
// only if it reports no shortfall, run Consume against the same stock with no
// other consumption in between.
package recipe

import (
	"fmt"

	"github.com/osse101/FactorySim_Go/internal/domain"
)

// MsgInsufficientFmt is the user-facing shortfall message
const MsgInsufficientFmt = "Error: %s insufficient! Need %d, current stock %d"

// Stock is read access to material and product quantities
type Stock interface {
	MaterialQty(name string) int
	ProductQty(name string) int
}

// Store is a Stock that can also be drawn down
type Store interface {
	Stock
	TakeMaterial(name string, qty int) error
	TakeProduct(name string, qty int) error
}

// Shortfall identifies the first requirement the stock cannot cover
type Shortfall struct {
	Name      string
	Kind      domain.RecipeKind
	Required  int
	Available int
}

func (s *Shortfall) Error() string {
	return fmt.Sprintf(MsgInsufficientFmt, s.Name, s.Required, s.Available)
}

func (s *Shortfall) Unwrap() error {
	return domain.ErrInsufficientStock
}

// Check returns nil when every requirement is covered, otherwise the first
// uncovered entry. Materials are checked before products, each in recipe order.
func Check(materials, products domain.Requirements, stock Stock) *Shortfall {
	for _, req := range materials {
		if have := stock.MaterialQty(req.Name); have < req.Quantity {
			return &Shortfall{Name: req.Name, Kind: domain.RecipeMaterial, Required: req.Quantity, Available: have}
		}
	}
	for _, req := range products {
		if have := stock.ProductQty(req.Name); have < req.Quantity {
			return &Shortfall{Name: req.Name, Kind: domain.RecipeProduct, Required: req.Quantity, Available: have}
		}
	}
	return nil
}

// Consume subtracts every requirement in one pass.
// It must only follow a successful Check on the same store.
func Consume(materials, products domain.Requirements, store Store) error {
	for _, req := range materials {
		if err := store.TakeMaterial(req.Name, req.Quantity); err != nil {
			return fmt.Errorf("consume material %s: %w", req.Name, err)
		}
	}
	for _, req := range products {
		if err := store.TakeProduct(req.Name, req.Quantity); err != nil {
			return fmt.Errorf("consume product %s: %w", req.Name, err)
		}
	}
	return nil
}

// CheckAndConsume runs the pair and returns the shortfall as an error.
// Nothing is consumed when the check fails.
func CheckAndConsume(materials, products domain.Requirements, store Store) error {
	if short := Check(materials, products, store); short != nil {
		return short
	}
	return Consume(materials, products, store)
}
