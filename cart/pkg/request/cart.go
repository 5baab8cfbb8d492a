package request

type AddItem struct {
	ProductId int64 `validate:"required"       json:"product_id"`
	Quantity  int   `validate:"required,gte=1" json:"quantity"`
}

type UpdateQuantity struct {
	// Zero or negative removes the item, so no lower bound is validated.
	Quantity int `json:"quantity"`
}
