package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productResponse "github.com/Alturino/storefront/product/pkg/response"
)

type Cart struct {
	ID          uuid.UUID       `json:"id"`
	CartItems   []CartItem      `json:"cartItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type CartItem struct {
	ID               uuid.UUID                       `json:"id"`
	ProductId        uuid.UUID                       `json:"productId"`
	ProductVariantId *uuid.UUID                      `json:"productVariantId,omitempty"`
	Quantity         int32                           `json:"quantity"`
	Price            decimal.Decimal                 `json:"price"`
	Product          productResponse.Product         `json:"product"`
	ProductVariant   *productResponse.ProductVariant `json:"productVariant,omitempty"`
}

// Subtotal is the sum of price*quantity over all items. Price is the unit
// price snapshotted at add time, not recomputed from the catalog.
func (c Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.CartItems {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return subtotal
}
