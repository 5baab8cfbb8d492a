package request

type Checkout struct {
	FirstName  string `validate:"required"       json:"first_name"`
	LastName   string `validate:"required"       json:"last_name"`
	Email      string `validate:"required,email" json:"email"`
	Address    string `validate:"required"       json:"address"`
	City       string `validate:"required"       json:"city"`
	PostalCode string `validate:"required"       json:"postal_code"`
}
