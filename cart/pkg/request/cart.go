package request

import (
	"github.com/google/uuid"
)

type AddCartItem struct {
	ProductId        uuid.UUID  `validate:"required"       json:"productId"`
	ProductVariantId *uuid.UUID `                          json:"productVariantId,omitempty"`
	Quantity         int32      `validate:"required,gte=1" json:"quantity"`
}

// UpdateCartItem intentionally carries no local quantity floor: callers
// disable decrement at 1, and the remote side rejects 0 or negative values.
type UpdateCartItem struct {
	CartItemId uuid.UUID `validate:"required" json:"cartItemId"`
	Quantity   int32     `                    json:"quantity"`
}
