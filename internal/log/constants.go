package log

const (
	KeyAppName       = "app"
	KeyTag           = "tag"
	KeyProcess       = "process"
	KeyConfig        = "config"
	KeyIdentity      = "identity"
	KeySessionId     = "sessionId"
	KeyStorageKey    = "storageKey"
	KeyEndpoint      = "endpoint"
	KeyStatusCode    = "statusCode"
	KeyCartId        = "cartId"
	KeyCartItemId    = "cartItemId"
	KeyCartItems     = "cartItems"
	KeyProductId     = "productId"
	KeyVariantId     = "productVariantId"
	KeyQuantity      = "quantity"
	KeySubtotal      = "subtotal"
	KeyShippingFee   = "shippingFee"
	KeyTotalAmount   = "totalAmount"
	KeyWishlistCount = "wishlistCount"
)
