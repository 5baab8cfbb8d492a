package request

import (
	"github.com/shopspring/decimal"
)

type FindProducts struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}
