package catalog

import "github.com/osse101/FactorySim_Go/internal/domain"

// Default material and product names
const (
	Wood          = "Wood"
	Metal         = "Metal"
	Plastic       = "Plastic"
	Screws        = "Screws"
	MetalPlate    = "Metal Plate"
	WoodenChair   = "Wooden Chair"
	WoodenTable   = "Wooden Table"
	WoodenCabinet = "Wooden Cabinet"
	PremiumChair  = "Premium Chair"
)

// DefaultMaterials returns the starter materials
func DefaultMaterials() []domain.Material {
	return []domain.Material{
		{Name: Wood, Cost: 1, Unit: "unit"},
		{Name: Metal, Cost: 2, Unit: "unit"},
		{Name: Plastic, Cost: 0.5, Unit: "unit"},
		{Name: Screws, Cost: 0.1, Unit: "pcs"},
		{
			Name: MetalPlate, Cost: 3, Unit: "sheet", Craftable: true,
			MaterialsRequired: domain.Requirements{{Name: Metal, Quantity: 2}},
		},
	}
}

// DefaultProducts returns the starter products
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			Name: WoodenChair, ProductionTime: 60, SalePrice: 20,
			MaterialsRequired: domain.Requirements{{Name: Wood, Quantity: 5}},
		},
		{
			Name: WoodenTable, ProductionTime: 120, SalePrice: 40,
			MaterialsRequired: domain.Requirements{{Name: Wood, Quantity: 10}},
		},
		{
			Name: WoodenCabinet, ProductionTime: 180, SalePrice: 60,
			MaterialsRequired: domain.Requirements{{Name: Wood, Quantity: 15}, {Name: Metal, Quantity: 2}},
		},
		{
			Name: PremiumChair, ProductionTime: 90, SalePrice: 50,
			MaterialsRequired: domain.Requirements{{Name: MetalPlate, Quantity: 1}, {Name: Screws, Quantity: 4}},
			ProductsRequired:  domain.Requirements{{Name: WoodenChair, Quantity: 1}},
		},
	}
}

// DefaultInitialStock is the opening stock per material before any purchase
func DefaultInitialStock() map[string]int {
	return map[string]int{
		Wood:    100,
		Metal:   50,
		Plastic: 200,
		Screws:  500,
	}
}

// Default returns the starter catalog
func Default() *Catalog {
	c, err := Load(DefaultMaterials(), DefaultProducts())
	if err != nil {
		panic("catalog: default definitions are invalid: " + err.Error())
	}
	return c
}
