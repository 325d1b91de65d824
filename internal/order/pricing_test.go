package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingFee(t *testing.T) {
	p := DefaultPricing()

	assert.Equal(t, 9.99, p.Shipping(49.99))
	assert.Equal(t, 0.0, p.Shipping(50.00))
	assert.Equal(t, 0.0, p.Shipping(599.97))
}

func TestTaxRoundsToCents(t *testing.T) {
	p := DefaultPricing()

	// 599.97 * 0.14 = 83.9958, rounds up to 84.00.
	assert.Equal(t, 84.00, p.Tax(599.97))
	assert.Equal(t, 7.00, p.Tax(50.00))
}

func TestTotal(t *testing.T) {
	p := DefaultPricing()

	assert.Equal(t, 683.97, p.Total(599.97, 0, 84.00, 0))
	assert.Equal(t, 673.97, p.Total(599.97, 0, 84.00, 10.00))
}

func TestLineSubtotalAvoidsFloatDrift(t *testing.T) {
	assert.Equal(t, 599.97, lineSubtotal(199.99, 3))
	assert.Equal(t, 0.3, lineSubtotal(0.1, 3))
}
