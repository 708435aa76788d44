package recipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/ledger"
)

func newStock(materials map[string]int, products map[string]int) *ledger.Ledger {
	l := ledger.New(0)
	for name, qty := range materials {
		l.TrackMaterial(name, qty)
	}
	for name, qty := range products {
		l.TrackProduct(name)
		l.AddProduct(name, qty)
	}
	return l
}

func TestCheckAndConsume_ChairScenario(t *testing.T) {
	store := newStock(map[string]int{"Wood": 5}, nil)
	chair := domain.Requirements{{Name: "Wood", Quantity: 5}}

	require.NoError(t, CheckAndConsume(chair, nil, store))
	assert.Equal(t, 0, store.MaterialQty("Wood"))

	err := CheckAndConsume(chair, nil, store)
	require.Error(t, err)
	assert.Equal(t, "Error: Wood insufficient! Need 5, current stock 0", err.Error())
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 0, store.MaterialQty("Wood"))
}

func TestCheck_ReportsFirstShortfallInOrder(t *testing.T) {
	stock := newStock(map[string]int{"Metal Plate": 0, "Screws": 0}, map[string]int{"Wooden Chair": 0})

	materials := domain.Requirements{{Name: "Metal Plate", Quantity: 1}, {Name: "Screws", Quantity: 4}}
	products := domain.Requirements{{Name: "Wooden Chair", Quantity: 1}}

	short := Check(materials, products, stock)
	require.NotNil(t, short)
	assert.Equal(t, "Metal Plate", short.Name)
	assert.Equal(t, domain.RecipeMaterial, short.Kind)
	assert.Equal(t, 1, short.Required)
	assert.Equal(t, 0, short.Available)
}

func TestCheck_ProductShortfall(t *testing.T) {
	stock := newStock(map[string]int{"Metal Plate": 1, "Screws": 10}, map[string]int{"Wooden Chair": 0})

	short := Check(
		domain.Requirements{{Name: "Metal Plate", Quantity: 1}, {Name: "Screws", Quantity: 4}},
		domain.Requirements{{Name: "Wooden Chair", Quantity: 1}},
		stock,
	)
	require.NotNil(t, short)
	assert.Equal(t, domain.RecipeProduct, short.Kind)
	assert.Equal(t, "Wooden Chair", short.Name)
}

func TestCheckAndConsume_AllOrNothing(t *testing.T) {
	store := newStock(map[string]int{"Wood": 20, "Metal": 1}, nil)
	before := store.Snapshot()

	err := CheckAndConsume(domain.Requirements{{Name: "Wood", Quantity: 15}, {Name: "Metal", Quantity: 2}}, nil, store)
	require.Error(t, err)

	assert.Equal(t, before, store.Snapshot(), "a failed attempt must leave stock untouched")
}

func TestConsume_SubtractsEveryEntry(t *testing.T) {
	store := newStock(map[string]int{"Metal Plate": 2, "Screws": 10}, map[string]int{"Wooden Chair": 3})

	err := CheckAndConsume(
		domain.Requirements{{Name: "Metal Plate", Quantity: 1}, {Name: "Screws", Quantity: 4}},
		domain.Requirements{{Name: "Wooden Chair", Quantity: 1}},
		store,
	)
	require.NoError(t, err)
	assert.Equal(t, 1, store.MaterialQty("Metal Plate"))
	assert.Equal(t, 6, store.MaterialQty("Screws"))
	assert.Equal(t, 2, store.ProductQty("Wooden Chair"))
}

func TestCheck_EmptyRecipeAlwaysAffordable(t *testing.T) {
	assert.Nil(t, Check(nil, nil, newStock(nil, nil)))
}
