package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/internal/config"
)

// Pricing is the display-side shipping quote. Threshold and fee are exact
// decimals so repeated quoting never drifts at two decimal places.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(1500),
		ShippingFee:           decimal.NewFromInt(25),
	}
}

func PricingFromConfig(cfg config.Pricing) (Pricing, error) {
	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return Pricing{}, fmt.Errorf(
			"failed parsing free_shipping_threshold=%s with error=%w",
			cfg.FreeShippingThreshold,
			err,
		)
	}
	fee, err := decimal.NewFromString(cfg.ShippingFee)
	if err != nil {
		return Pricing{}, fmt.Errorf(
			"failed parsing shipping_fee=%s with error=%w",
			cfg.ShippingFee,
			err,
		)
	}
	return Pricing{FreeShippingThreshold: threshold, ShippingFee: fee}, nil
}

type Quote struct {
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	TotalAmount decimal.Decimal
}

// QuoteSubtotal applies the free-shipping rule: subtotal at or above the
// threshold ships free, anything below pays the flat fee.
func (p Pricing) QuoteSubtotal(subtotal decimal.Decimal) Quote {
	fee := p.ShippingFee
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		fee = decimal.Zero
	}
	return Quote{
		Subtotal:    subtotal,
		ShippingFee: fee,
		TotalAmount: subtotal.Add(fee),
	}
}
