package product

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. The catalog is read-only; products are never
// mutated at runtime.
type Product struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description,omitempty"`
	Price            decimal.Decimal `json:"price"`
	Image            string          `json:"image"`
	Category         string          `json:"category"`
}
