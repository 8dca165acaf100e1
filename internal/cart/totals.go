package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
)

// PricingConfig names the flat policy constants: a single tax rate, a flat
// shipping fee, and the subtotal at which shipping is waived.
type PricingConfig struct {
	TaxRate               decimal.Decimal
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

func DefaultPricing() PricingConfig {
	return PricingConfig{
		TaxRate:               decimal.RequireFromString("0.08"),
		ShippingFee:           decimal.NewFromInt(10),
		FreeShippingThreshold: decimal.NewFromInt(50),
	}
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives the aggregate order figures from a line-item list.
// All outputs are plain base-currency amounts; display formatting belongs to
// the currency service. A subtotal meeting the threshold ships free.
func ComputeTotals(items []domain.LineItem, cfg PricingConfig) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tax := subtotal.Mul(cfg.TaxRate)

	shipping := decimal.Zero
	if subtotal.IsPositive() && subtotal.LessThan(cfg.FreeShippingThreshold) {
		shipping = cfg.ShippingFee
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

// Totals computes the aggregate figures for the cart's current contents.
func (c *Cart) Totals(cfg PricingConfig) Totals {
	return ComputeTotals(c.Items(), cfg)
}
