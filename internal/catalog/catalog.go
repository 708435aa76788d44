// Package catalog holds the product and material definitions of a facility.
//
// Definitions are kept in insertion order and validated as a whole: every
// requirement must name an entity that exists, so recipes can never dangle.
package catalog

import (
	"fmt"

	"github.com/osse101/FactorySim_Go/internal/domain"
)

// Catalog is an ordered set of products and materials with referential integrity
type Catalog struct {
	products  []domain.Product
	materials []domain.Material
	pIndex    map[string]int
	mIndex    map[string]int
}

// New returns an empty catalog
func New() *Catalog {
	return &Catalog{
		pIndex: make(map[string]int),
		mIndex: make(map[string]int),
	}
}

// Load builds a catalog from definitions and rejects it if any rule is broken.
// Materials with requirements are marked craftable.
func Load(materials []domain.Material, products []domain.Product) (*Catalog, error) {
	c := New()
	for _, m := range materials {
		m = m.Clone()
		m.Normalize()
		if _, dup := c.mIndex[m.Name]; dup {
			return nil, domain.Fail(domain.ErrDuplicateName, MsgMaterialExistsFmt, m.Name)
		}
		c.mIndex[m.Name] = len(c.materials)
		c.materials = append(c.materials, m)
	}
	for _, p := range products {
		if _, dup := c.pIndex[p.Name]; dup {
			return nil, domain.Fail(domain.ErrDuplicateName, MsgProductExistsFmt, p.Name)
		}
		c.pIndex[p.Name] = len(c.products)
		c.products = append(c.products, p.Clone())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every definition and every requirement reference
func (c *Catalog) Validate() error {
	for _, m := range c.materials {
		if err := validateMaterial(m); err != nil {
			return err
		}
		if err := c.checkReferences(m.Name, m.MaterialsRequired, m.ProductsRequired); err != nil {
			return err
		}
	}
	for _, p := range c.products {
		if err := validateProduct(p); err != nil {
			return err
		}
		if err := c.checkReferences(p.Name, p.MaterialsRequired, p.ProductsRequired); err != nil {
			return err
		}
	}
	return nil
}

func validateMaterial(m domain.Material) error {
	if m.Name == "" {
		return domain.Fail(domain.ErrInvalidCatalog, MsgEmptyNameFmt, LabelMaterial)
	}
	if m.Cost < 0 {
		return domain.Fail(domain.ErrInvalidCatalog, MsgNegativeCostFmt, m.Name)
	}
	return validateQuantities(m.Name, m.MaterialsRequired, m.ProductsRequired)
}

func validateProduct(p domain.Product) error {
	if p.Name == "" {
		return domain.Fail(domain.ErrInvalidCatalog, MsgEmptyNameFmt, LabelProduct)
	}
	if p.ProductionTime <= 0 {
		return domain.Fail(domain.ErrInvalidCatalog, MsgBadProductionTimeFmt, p.Name)
	}
	if p.SalePrice < 0 {
		return domain.Fail(domain.ErrInvalidCatalog, MsgNegativePriceFmt, p.Name)
	}
	return validateQuantities(p.Name, p.MaterialsRequired, p.ProductsRequired)
}

func validateQuantities(owner string, sets ...domain.Requirements) error {
	for _, reqs := range sets {
		for _, req := range reqs {
			if req.Quantity <= 0 {
				return domain.Fail(domain.ErrInvalidCatalog, MsgBadRequirementQtyFmt, owner, req.Name, req.Quantity)
			}
		}
	}
	return nil
}

func (c *Catalog) checkReferences(owner string, materials, products domain.Requirements) error {
	for _, req := range materials {
		if _, ok := c.mIndex[req.Name]; !ok {
			return domain.Fail(domain.ErrDanglingReference, MsgDanglingFmt, owner, LabelMaterial, req.Name)
		}
	}
	for _, req := range products {
		if _, ok := c.pIndex[req.Name]; !ok {
			return domain.Fail(domain.ErrDanglingReference, MsgDanglingFmt, owner, LabelProduct, req.Name)
		}
	}
	return nil
}

// Product returns a copy of the named product
func (c *Catalog) Product(name string) (domain.Product, bool) {
	i, ok := c.pIndex[name]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i].Clone(), true
}

// Material returns a copy of the named material
func (c *Catalog) Material(name string) (domain.Material, bool) {
	i, ok := c.mIndex[name]
	if !ok {
		return domain.Material{}, false
	}
	return c.materials[i].Clone(), true
}

// HasProduct reports whether a product with this name exists
func (c *Catalog) HasProduct(name string) bool {
	_, ok := c.pIndex[name]
	return ok
}

// HasMaterial reports whether a material with this name exists
func (c *Catalog) HasMaterial(name string) bool {
	_, ok := c.mIndex[name]
	return ok
}

// Products returns copies of all products in insertion order
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p.Clone())
	}
	return out
}

// Materials returns copies of all materials in insertion order
func (c *Catalog) Materials() []domain.Material {
	out := make([]domain.Material, 0, len(c.materials))
	for _, m := range c.materials {
		out = append(out, m.Clone())
	}
	return out
}

// ProductNames returns product names in insertion order
func (c *Catalog) ProductNames() []string {
	out := make([]string, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p.Name)
	}
	return out
}

// MaterialNames returns material names in insertion order
func (c *Catalog) MaterialNames() []string {
	out := make([]string, 0, len(c.materials))
	for _, m := range c.materials {
		out = append(out, m.Name)
	}
	return out
}

// Recipe resolves a reference to its requirement pair and craftable flag
func (c *Catalog) Recipe(ref domain.RecipeRef) (materials, products domain.Requirements, craftable bool, err error) {
	switch ref.Kind {
	case domain.RecipeProduct:
		p, ok := c.Product(ref.Name)
		if !ok {
			return nil, nil, false, domain.Fail(domain.ErrProductNotFound, MsgProductNotFoundFmt, ref.Name)
		}
		return p.MaterialsRequired, p.ProductsRequired, p.Craftable(), nil
	case domain.RecipeMaterial:
		m, ok := c.Material(ref.Name)
		if !ok {
			return nil, nil, false, domain.Fail(domain.ErrMaterialNotFound, MsgMaterialNotFoundFmt, ref.Name)
		}
		return m.MaterialsRequired, m.ProductsRequired, m.Craftable, nil
	default:
		return nil, nil, false, domain.Fail(domain.ErrInvalidCatalog, MsgUnknownRecipeKindFmt, ref.Name)
	}
}

// CraftableRecipes lists every craftable product then every craftable material
func (c *Catalog) CraftableRecipes() []domain.RecipeRef {
	var out []domain.RecipeRef
	for _, p := range c.products {
		if p.Craftable() {
			out = append(out, domain.ProductRecipe(p.Name))
		}
	}
	for _, m := range c.materials {
		if m.Craftable {
			out = append(out, domain.MaterialRecipe(m.Name))
		}
	}
	return out
}

// TotalMaterialCost sums cost × quantity over the product's material requirements
func (c *Catalog) TotalMaterialCost(productName string) (float64, error) {
	p, ok := c.Product(productName)
	if !ok {
		return 0, domain.Fail(domain.ErrProductNotFound, MsgProductNotFoundFmt, productName)
	}
	total := 0.0
	for _, req := range p.MaterialsRequired {
		if m, ok := c.Material(req.Name); ok {
			total += m.Cost * float64(req.Quantity)
		}
	}
	return total, nil
}

// Clone returns an independent deep copy
func (c *Catalog) Clone() *Catalog {
	out := New()
	for _, m := range c.materials {
		out.mIndex[m.Name] = len(out.materials)
		out.materials = append(out.materials, m.Clone())
	}
	for _, p := range c.products {
		out.pIndex[p.Name] = len(out.products)
		out.products = append(out.products, p.Clone())
	}
	return out
}

// ==================== Editing ====================

// AddProduct appends a product whose requirements already exist in the catalog
func (c *Catalog) AddProduct(p domain.Product) error {
	if _, dup := c.pIndex[p.Name]; dup {
		return domain.Fail(domain.ErrDuplicateName, MsgProductExistsFmt, p.Name)
	}
	p = p.Clone()
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := c.checkReferences(p.Name, p.MaterialsRequired, p.ProductsRequired); err != nil {
		return err
	}
	c.pIndex[p.Name] = len(c.products)
	c.products = append(c.products, p)
	return nil
}

// AddMaterial appends a material whose requirements already exist in the catalog
func (c *Catalog) AddMaterial(m domain.Material) error {
	if _, dup := c.mIndex[m.Name]; dup {
		return domain.Fail(domain.ErrDuplicateName, MsgMaterialExistsFmt, m.Name)
	}
	m = m.Clone()
	m.Normalize()
	if err := validateMaterial(m); err != nil {
		return err
	}
	if err := c.checkReferences(m.Name, m.MaterialsRequired, m.ProductsRequired); err != nil {
		return err
	}
	c.mIndex[m.Name] = len(c.materials)
	c.materials = append(c.materials, m)
	return nil
}

// RemoveProduct deletes a product no other recipe requires
func (c *Catalog) RemoveProduct(name string) error {
	i, ok := c.pIndex[name]
	if !ok {
		return domain.Fail(domain.ErrProductNotFound, MsgProductNotFoundFmt, name)
	}
	if user, ok := c.requiredBy(domain.ProductRecipe(name)); ok {
		return domain.Fail(domain.ErrEntityReferenced, MsgReferencedFmt, name, user)
	}
	c.products = append(c.products[:i:i], c.products[i+1:]...)
	c.reindex()
	return nil
}

// RemoveMaterial deletes a material no recipe requires
func (c *Catalog) RemoveMaterial(name string) error {
	i, ok := c.mIndex[name]
	if !ok {
		return domain.Fail(domain.ErrMaterialNotFound, MsgMaterialNotFoundFmt, name)
	}
	if user, ok := c.requiredBy(domain.MaterialRecipe(name)); ok {
		return domain.Fail(domain.ErrEntityReferenced, MsgReferencedFmt, name, user)
	}
	c.materials = append(c.materials[:i:i], c.materials[i+1:]...)
	c.reindex()
	return nil
}

// SetRequirement adds or updates an ingredient on target's recipe.
// A material gaining any requirement becomes craftable; a product only through sub-products.
func (c *Catalog) SetRequirement(target, ingredient domain.RecipeRef, quantity int) error {
	if quantity <= 0 {
		return domain.Fail(domain.ErrInvalidQuantity, MsgBadRequirementQtyFmt, target.Name, ingredient.Name, quantity)
	}
	if err := c.mustExist(ingredient); err != nil {
		return err
	}
	return c.editRecipe(target, func(materials, products *domain.Requirements) {
		if ingredient.IsProduct() {
			products.Set(ingredient.Name, quantity)
		} else {
			materials.Set(ingredient.Name, quantity)
		}
	})
}

// RemoveRequirement drops an ingredient from target's recipe.
// Craftable flags are left as they are.
func (c *Catalog) RemoveRequirement(target, ingredient domain.RecipeRef) error {
	return c.editRecipe(target, func(materials, products *domain.Requirements) {
		if ingredient.IsProduct() {
			products.Remove(ingredient.Name)
		} else {
			materials.Remove(ingredient.Name)
		}
	})
}

func (c *Catalog) editRecipe(target domain.RecipeRef, edit func(materials, products *domain.Requirements)) error {
	if err := c.mustExist(target); err != nil {
		return err
	}
	if target.IsProduct() {
		p := &c.products[c.pIndex[target.Name]]
		edit(&p.MaterialsRequired, &p.ProductsRequired)
		return nil
	}
	m := &c.materials[c.mIndex[target.Name]]
	edit(&m.MaterialsRequired, &m.ProductsRequired)
	m.Normalize()
	return nil
}

func (c *Catalog) mustExist(ref domain.RecipeRef) error {
	if ref.IsProduct() {
		if !c.HasProduct(ref.Name) {
			return domain.Fail(domain.ErrProductNotFound, MsgProductNotFoundFmt, ref.Name)
		}
		return nil
	}
	if !c.HasMaterial(ref.Name) {
		return domain.Fail(domain.ErrMaterialNotFound, MsgMaterialNotFoundFmt, ref.Name)
	}
	return nil
}

// requiredBy returns the first entity whose recipe names ref
func (c *Catalog) requiredBy(ref domain.RecipeRef) (string, bool) {
	uses := func(materials, products domain.Requirements) bool {
		if ref.IsProduct() {
			return products.Has(ref.Name)
		}
		return materials.Has(ref.Name)
	}
	for _, p := range c.products {
		if uses(p.MaterialsRequired, p.ProductsRequired) {
			return p.Name, true
		}
	}
	for _, m := range c.materials {
		if uses(m.MaterialsRequired, m.ProductsRequired) {
			return m.Name, true
		}
	}
	return "", false
}

func (c *Catalog) reindex() {
	c.pIndex = make(map[string]int, len(c.products))
	for i, p := range c.products {
		c.pIndex[p.Name] = i
	}
	c.mIndex = make(map[string]int, len(c.materials))
	for i, m := range c.materials {
		c.mIndex[m.Name] = i
	}
}

func (c *Catalog) String() string {
	return fmt.Sprintf("catalog(%d products, %d materials)", len(c.products), len(c.materials))
}
