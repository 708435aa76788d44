package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Product is a sellable good built on a production line or crafted at a station
type Product struct {
	Name              string       `json:"name" yaml:"name"`
	ProductionTime    int          `json:"production_time" yaml:"production_time"` // minutes; one tick advances one unit of this scale
	SalePrice         float64      `json:"sale_price" yaml:"sale_price"`
	MaterialsRequired Requirements `json:"materials_required" yaml:"materials_required"`
	ProductsRequired  Requirements `json:"products_required" yaml:"products_required"`
}

// Craftable reports whether the product can be assembled at a crafting station.
// Only sub-product requirements make a product craftable; materials alone do not.
func (p Product) Craftable() bool {
	return len(p.ProductsRequired) > 0
}

// plainProduct drops Product's marshalers so the wire forms can embed it
type plainProduct Product

// productWire adds the derived craftable flag to the encoded form. The flag
// is output only: decoding ignores is_craftable and derives it from
// ProductsRequired, so a stale flag in an imported bundle has no effect.
type productWire struct {
	plainProduct `yaml:",inline"`
	IsCraftable  bool `json:"is_craftable" yaml:"is_craftable"`
}

// MarshalJSON writes the product with its derived is_craftable flag
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productWire{plainProduct(p), p.Craftable()})
}

// MarshalYAML writes the product with its derived is_craftable flag
func (p Product) MarshalYAML() (interface{}, error) {
	return productWire{plainProduct(p), p.Craftable()}, nil
}

// Clone returns a deep copy
func (p Product) Clone() Product {
	p.MaterialsRequired = p.MaterialsRequired.Clone()
	p.ProductsRequired = p.ProductsRequired.Clone()
	return p
}

func (p Product) String() string {
	parts := []string{fmt.Sprintf("%s (Price:%s", p.Name, Money(p.SalePrice)),
		fmt.Sprintf("Production Time:%dmin", p.ProductionTime)}
	parts = append(parts, describeRequirements(p.MaterialsRequired, p.ProductsRequired)...)
	return strings.Join(parts, ", ") + ")"
}
