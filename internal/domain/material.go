package domain

import (
	"fmt"
	"strings"
)

// Material is a purchasable (and optionally craftable) input
type Material struct {
	Name              string       `json:"name" yaml:"name"`
	Cost              float64      `json:"cost" yaml:"cost"`
	Unit              string       `json:"unit" yaml:"unit"`
	Craftable         bool         `json:"is_craftable" yaml:"is_craftable"`
	MaterialsRequired Requirements `json:"materials_required" yaml:"materials_required"`
	ProductsRequired  Requirements `json:"products_required" yaml:"products_required"`
}

// Normalize marks the material craftable when it carries any requirement
func (m *Material) Normalize() {
	if len(m.MaterialsRequired) > 0 || len(m.ProductsRequired) > 0 {
		m.Craftable = true
	}
}

// Clone returns a deep copy
func (m Material) Clone() Material {
	m.MaterialsRequired = m.MaterialsRequired.Clone()
	m.ProductsRequired = m.ProductsRequired.Clone()
	return m
}

func (m Material) String() string {
	head := fmt.Sprintf("%s (%s/%s", m.Name, Money(m.Cost), m.Unit)
	if !m.Craftable {
		return head + ")"
	}
	parts := []string{head, "Craftable"}
	parts = append(parts, describeRequirements(m.MaterialsRequired, m.ProductsRequired)...)
	return strings.Join(parts, ", ") + ")"
}

// describeRequirements renders "Materials:Wood×5" / "Components:Chair×1" segments
func describeRequirements(materials, products Requirements) []string {
	var parts []string
	if len(materials) > 0 {
		parts = append(parts, "Materials:"+joinRequirements(materials))
	}
	if len(products) > 0 {
		parts = append(parts, "Components:"+joinRequirements(products))
	}
	return parts
}

func joinRequirements(reqs Requirements) string {
	items := make([]string, 0, len(reqs))
	for _, req := range reqs {
		items = append(items, fmt.Sprintf("%s×%d", req.Name, req.Quantity))
	}
	return strings.Join(items, ", ")
}
