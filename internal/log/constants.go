package log

const (
	KeyAppName       = "app"
	KeyRequestID     = "requestId"
	KeySessionID     = "sessionId"
	KeyProcess       = "process"
	KeyTag           = "tag"
	KeyConfig        = "config"
	KeyRequest       = "request"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeyProductID     = "productId"
	KeyProduct       = "product"
	KeyCart          = "cart"
	KeyCartItems     = "cartItems"
	KeyCartItemCount = "cartItemCount"
	KeyCartTotal     = "cartTotal"
	KeyQuantity      = "quantity"
	KeyOrder         = "order"
	KeyOrderID       = "orderId"
	KeyStorageKey    = "storageKey"
	KeyStorageDriver = "storageDriver"
	KeyCategory      = "category"
)
