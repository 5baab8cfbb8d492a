package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/storefront/cart"
	"github.com/emberline/storefront/catalog/pkg/product"
	"github.com/emberline/storefront/checkout/pkg/request"
	inErrors "github.com/emberline/storefront/internal/errors"
	"github.com/emberline/storefront/internal/storage"
)

func checkoutForm() request.Checkout {
	return request.Checkout{
		FirstName:  "Maya",
		LastName:   "Lindqvist",
		Email:      "maya@example.com",
		Address:    "14 Harbour Row",
		City:       "Gothenburg",
		PostalCode: "41103",
	}
}

func newCartStore(t *testing.T) *cart.Store {
	t.Helper()
	c := context.Background()
	fileStorage, err := storage.NewFileStorage(c, t.TempDir())
	require.NoError(t, err)
	return cart.New(c, fileStorage, "cart:checkout-test")
}

func TestCheckoutEmptyCart(t *testing.T) {
	c := context.Background()
	svc := NewCheckoutService()
	store := newCartStore(t)

	_, err := svc.Checkout(c, checkoutForm(), store)
	assert.ErrorIs(t, err, inErrors.ErrEmptyCart)
}

func TestCheckoutClearsCartAndReturnsReceipt(t *testing.T) {
	c := context.Background()
	svc := NewCheckoutService()
	store := newCartStore(t)

	require.NoError(t, store.AddItem(c, product.Product{
		ID:       1,
		Name:     "Aurora Table Lamp",
		Price:    decimal.RequireFromString("89.99"),
		Category: "Lighting",
	}, 2))
	require.NoError(t, store.AddItem(c, product.Product{
		ID:       9,
		Name:     "Juniper Scented Candle",
		Price:    decimal.RequireFromString("24"),
		Category: "Decor",
	}, 1))

	order, err := svc.Checkout(c, checkoutForm(), store)
	require.NoError(t, err)

	assert.NotEqual(t, order.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, "maya@example.com", order.Email)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "203.98", order.Total.String())
	assert.Equal(t, 3, order.ItemCount)
	assert.False(t, order.PlacedAt.IsZero())

	assert.Empty(t, store.Snapshot(), "placing an order resets the cart")
	assert.Equal(t, 0, store.ItemCount())

	_, err = svc.Checkout(c, checkoutForm(), store)
	assert.ErrorIs(t, err, inErrors.ErrEmptyCart, "second checkout finds an empty cart")
}
