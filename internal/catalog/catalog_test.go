package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/mystore/internal/catalog"
)

func TestNormalizeID(t *testing.T) {
	cases := map[string]string{
		"101":   "101",
		" 101 ": "101",
		"0101":  "101",
		"":      "",
		"  ":    "",
		"0":     "",
		"SKU-7": "SKU-7",
	}
	for in, want := range cases {
		assert.Equal(t, want, catalog.NormalizeID(in), "input %q", in)
	}
}

func TestProductLookup(t *testing.T) {
	c := catalog.Default()

	p, ok := c.Product("101")
	require.True(t, ok)
	assert.Equal(t, "Wireless Headphones Pro", p.Name)
	assert.Equal(t, 199.99, p.Price)

	_, ok = c.Product("999")
	assert.False(t, ok)
}

func TestLookupsReturnCopies(t *testing.T) {
	c := catalog.Default()

	p, ok := c.Product("101")
	require.True(t, ok)
	p.Price = 1.00

	again, _ := c.Product("101")
	assert.Equal(t, 199.99, again.Price)

	products := c.Products()
	products[0].Name = "mutated"
	assert.NotEqual(t, "mutated", c.Products()[0].Name)
}

func TestProductsByCategory(t *testing.T) {
	c := catalog.Default()

	for _, p := range c.ProductsByCategory(1) {
		assert.Equal(t, 1, p.CategoryID)
	}
	assert.Empty(t, c.ProductsByCategory(99))
}

func TestStock(t *testing.T) {
	c := catalog.Default()

	stock, ok := c.Stock("101")
	require.True(t, ok)
	assert.Equal(t, 50, stock)

	stock, ok = c.Stock("103")
	require.True(t, ok)
	assert.Zero(t, stock)

	_, ok = c.Stock("999")
	assert.False(t, ok)
}
