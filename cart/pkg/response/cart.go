package response

import (
	"github.com/shopspring/decimal"

	"github.com/emberline/storefront/catalog/pkg/product"
)

type Cart struct {
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

type CartItem struct {
	product.Product
	Quantity int `json:"quantity"`
}
