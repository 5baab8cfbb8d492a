package response

import (
	"github.com/shopspring/decimal"

	"github.com/emberline/storefront/cart"
)

// FromItems builds the response from one snapshot so items, total and count
// come from the same state.
func FromItems(items []cart.Item) Cart {
	cartItems := make([]CartItem, len(items))
	total := decimal.Zero
	count := 0
	for i, item := range items {
		cartItems[i] = CartItem{Product: item.Product, Quantity: item.Quantity}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}
	return Cart{
		Items:     cartItems,
		Total:     total,
		ItemCount: count,
	}
}
