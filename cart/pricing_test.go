package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Alturino/storefront/internal/config"
)

func TestQuoteSubtotalFreeShippingThreshold(t *testing.T) {
	tests := []struct {
		name        string
		subtotal    string
		shippingFee string
		totalAmount string
	}{
		{
			name:        "given empty cart should still charge the flat fee",
			subtotal:    "0",
			shippingFee: "25",
			totalAmount: "25.00",
		},
		{
			name:        "given subtotal just under threshold should charge the flat fee",
			subtotal:    "1499.99",
			shippingFee: "25",
			totalAmount: "1524.99",
		},
		{
			name:        "given subtotal exactly at threshold should ship free",
			subtotal:    "1500",
			shippingFee: "0",
			totalAmount: "1500.00",
		},
		{
			name:        "given subtotal above threshold should ship free",
			subtotal:    "1500.01",
			shippingFee: "0",
			totalAmount: "1500.01",
		},
		{
			name:        "given two decimal subtotal should total without rounding drift",
			subtotal:    "99.90",
			shippingFee: "25",
			totalAmount: "124.90",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, err := decimal.NewFromString(tt.subtotal)
			if err != nil {
				t.Fatalf("failed parsing subtotal with error: %s", err)
			}
			expectedFee, err := decimal.NewFromString(tt.shippingFee)
			if err != nil {
				t.Fatalf("failed parsing shipping fee with error: %s", err)
			}

			quote := DefaultPricing().QuoteSubtotal(subtotal)

			assert.True(t, expectedFee.Equal(quote.ShippingFee), "shippingFee=%s", quote.ShippingFee)
			assert.Equal(t, tt.totalAmount, quote.TotalAmount.StringFixed(2))
		})
	}
}

func TestPricingFromConfigParsesExactDecimals(t *testing.T) {
	pricing, err := PricingFromConfig(config.Pricing{
		FreeShippingThreshold: "1500",
		ShippingFee:           "25",
	})
	assert.NoError(t, err)
	assert.Equal(t, "1500", pricing.FreeShippingThreshold.String())
	assert.Equal(t, "25", pricing.ShippingFee.String())

	_, err = PricingFromConfig(config.Pricing{FreeShippingThreshold: "not-a-number"})
	assert.Error(t, err)
}
