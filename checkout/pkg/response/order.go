package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartResponse "github.com/emberline/storefront/cart/pkg/response"
)

// Order is the receipt returned by the mocked checkout. It exists only in
// the response and the order-placed log event; nothing is persisted.
type Order struct {
	ID        uuid.UUID               `json:"id"`
	Email     string                  `json:"email"`
	Items     []cartResponse.CartItem `json:"items"`
	Total     decimal.Decimal         `json:"total"`
	ItemCount int                     `json:"item_count"`
	PlacedAt  time.Time               `json:"placed_at"`
}
