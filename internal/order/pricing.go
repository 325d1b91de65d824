package order

import "github.com/shopspring/decimal"

// Pricing holds the checkout money policy. All arithmetic runs on decimals so
// repeated float rounding can never skew a total.
type Pricing struct {
	// FreeShippingThreshold is the subtotal at or above which shipping is
	// free; below it the flat fee applies.
	FreeShippingThreshold float64
	FlatShippingFee       float64

	// TaxRate is applied to the subtotal, e.g. 0.14 for 14%.
	TaxRate float64
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: 50.00,
		FlatShippingFee:       9.99,
		TaxRate:               0.14,
	}
}

func (p Pricing) Shipping(subtotal float64) float64 {
	if subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.FlatShippingFee
}

// Tax returns the tax on subtotal, rounded to 2 decimal places.
func (p Pricing) Tax(subtotal float64) float64 {
	tax := decimal.NewFromFloat(subtotal).Mul(decimal.NewFromFloat(p.TaxRate))
	f, _ := tax.Round(2).Float64()
	return f
}

// Total computes subtotal + shipping + tax - discount on decimals.
func (p Pricing) Total(subtotal, shipping, tax, discount float64) float64 {
	total := decimal.NewFromFloat(subtotal).
		Add(decimal.NewFromFloat(shipping)).
		Add(decimal.NewFromFloat(tax)).
		Sub(decimal.NewFromFloat(discount))
	f, _ := total.Round(2).Float64()
	return f
}

func lineSubtotal(unitPrice float64, quantity int) float64 {
	sub := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
	f, _ := sub.Round(2).Float64()
	return f
}

func sum2(values []float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}
