package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/naming"
)

// AddProductRequest defines a new product
type AddProductRequest struct {
	Product domain.Product `json:"product"`
}

// HandleAddProduct adds a product definition
func (h *FactoryHandler) HandleAddProduct(w http.ResponseWriter, r *http.Request) {
	var req AddProductRequest
	if !bindJSON(w, r, &req, "Add product") {
		return
	}
	h.command(w, r, "add_product", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.AddProduct(ctx, req.Product)
	})
}

// AddMaterialRequest defines a new material with its opening stock
type AddMaterialRequest struct {
	Material        domain.Material `json:"material"`
	InitialQuantity int             `json:"initial_quantity"`
}

// HandleAddMaterial adds a material definition
func (h *FactoryHandler) HandleAddMaterial(w http.ResponseWriter, r *http.Request) {
	var req AddMaterialRequest
	if !bindJSON(w, r, &req, "Add material") {
		return
	}
	h.command(w, r, "add_material", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.AddMaterial(ctx, req.Material, req.InitialQuantity)
	})
}

// HandleRemoveProduct deletes a product no recipe, order or job uses
func (h *FactoryHandler) HandleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	input := chi.URLParam(r, "name")
	name := h.resolve(naming.KindProduct, input)
	h.command(w, r, "remove_product", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.RemoveProduct(ctx, name)
	}, nameRef{naming.KindProduct, input})
}

// HandleRemoveMaterial deletes a material no recipe or job uses
func (h *FactoryHandler) HandleRemoveMaterial(w http.ResponseWriter, r *http.Request) {
	input := chi.URLParam(r, "name")
	name := h.resolve(naming.KindMaterial, input)
	h.command(w, r, "remove_material", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.RemoveMaterial(ctx, name)
	}, nameRef{naming.KindMaterial, input})
}

// RequirementRequest edits one ingredient of a recipe
type RequirementRequest struct {
	Target     RecipeTarget `json:"target"`
	Ingredient RecipeTarget `json:"ingredient"`
	Quantity   int          `json:"quantity"`
}

// HandleSetRequirement adds or updates an ingredient
func (h *FactoryHandler) HandleSetRequirement(w http.ResponseWriter, r *http.Request) {
	var req RequirementRequest
	if !bindJSON(w, r, &req, "Set requirement") {
		return
	}
	target := h.resolveRecipe(req.Target.Name, req.Target.IsProduct)
	ingredient := h.resolveRecipe(req.Ingredient.Name, req.Ingredient.IsProduct)
	h.command(w, r, "set_requirement", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.SetRequirement(ctx, target, ingredient, req.Quantity)
	}, req.Target.nameRef(), req.Ingredient.nameRef())
}

// HandleRemoveRequirement drops an ingredient; the quantity is ignored
func (h *FactoryHandler) HandleRemoveRequirement(w http.ResponseWriter, r *http.Request) {
	var req RequirementRequest
	if !bindJSON(w, r, &req, "Remove requirement") {
		return
	}
	target := h.resolveRecipe(req.Target.Name, req.Target.IsProduct)
	ingredient := h.resolveRecipe(req.Ingredient.Name, req.Ingredient.IsProduct)
	h.command(w, r, "remove_requirement", func(ctx context.Context, f *factory.Facility) (string, error) {
		return f.RemoveRequirement(ctx, target, ingredient)
	}, req.Target.nameRef(), req.Ingredient.nameRef())
}
