package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot carried inside cart items and wishlist
// entries so the view can render either without a second fetch.
type Product struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	ImageUrl        string          `json:"imageUrl"`
	Price           decimal.Decimal `json:"price"`
	HasSizeVariants bool            `json:"hasSizeVariants"`
}

type ProductVariant struct {
	ID            uuid.UUID       `json:"id"`
	Size          string          `json:"size"`
	Stock         int32           `json:"stock"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
}

type StockAvailability struct {
	IsAvailable bool `json:"isAvailable"`
}
