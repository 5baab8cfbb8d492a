package constants

const (
	APP_STOREFRONT = "storefront"
)
