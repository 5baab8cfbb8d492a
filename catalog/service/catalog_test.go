package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/storefront/catalog/pkg/request"
	inErrors "github.com/emberline/storefront/internal/errors"
)

func TestFindProducts(t *testing.T) {
	c := context.Background()
	svc, err := NewCatalogService(c)
	require.NoError(t, err)

	all := svc.FindProducts(c, request.FindProducts{})
	require.NotEmpty(t, all)

	minPrice := decimal.NewFromInt(50)
	maxPrice := decimal.NewFromInt(100)

	t.Run("no filter returns catalog in file order", func(t *testing.T) {
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].ID, all[i].ID)
		}
	})

	t.Run("search matches name case insensitively", func(t *testing.T) {
		found := svc.FindProducts(c, request.FindProducts{Search: "aurora"})
		require.Len(t, found, 1)
		assert.Equal(t, "Aurora Table Lamp", found[0].Name)
	})

	t.Run("search matches description", func(t *testing.T) {
		found := svc.FindProducts(c, request.FindProducts{Search: "merino"})
		require.Len(t, found, 1)
		assert.Equal(t, "Hearthstone Throw Blanket", found[0].Name)
	})

	t.Run("category filter is exact", func(t *testing.T) {
		found := svc.FindProducts(c, request.FindProducts{Category: "Lighting"})
		require.NotEmpty(t, found)
		for _, p := range found {
			assert.Equal(t, "Lighting", p.Category)
		}
		assert.Less(t, len(found), len(all))
	})

	t.Run("price range bounds are inclusive of matching products", func(t *testing.T) {
		found := svc.FindProducts(c, request.FindProducts{
			MinPrice: &minPrice,
			MaxPrice: &maxPrice,
		})
		require.NotEmpty(t, found)
		for _, p := range found {
			assert.True(t, p.Price.GreaterThanOrEqual(minPrice), "price=%s", p.Price)
			assert.True(t, p.Price.LessThanOrEqual(maxPrice), "price=%s", p.Price)
		}
	})

	t.Run("filters compose", func(t *testing.T) {
		found := svc.FindProducts(c, request.FindProducts{
			Search:   "lamp",
			Category: "Lighting",
			MaxPrice: &maxPrice,
		})
		require.Len(t, found, 1)
		assert.Equal(t, "Aurora Table Lamp", found[0].Name)
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		found := svc.FindProducts(c, request.FindProducts{Search: "no such product"})
		assert.Empty(t, found)
	})
}

func TestFindProductById(t *testing.T) {
	c := context.Background()
	svc, err := NewCatalogService(c)
	require.NoError(t, err)

	p, err := svc.FindProductById(c, 3)
	require.NoError(t, err)
	assert.Equal(t, "Driftwood Coffee Table", p.Name)
	assert.Equal(t, "Furniture", p.Category)

	_, err = svc.FindProductById(c, 9999)
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestCategories(t *testing.T) {
	c := context.Background()
	svc, err := NewCatalogService(c)
	require.NoError(t, err)

	categories := svc.Categories(c)
	require.NotEmpty(t, categories)

	assert.Equal(t, "Lighting", categories[0], "first seen category stays first")
	seen := map[string]bool{}
	for _, category := range categories {
		assert.False(t, seen[category], "category=%s listed twice", category)
		seen[category] = true
	}
}
