// Package catalog exposes the fixed product and category reference data.
//
// The catalog is immutable once constructed: lookups return copies, so a
// caller mutating a returned Product can never affect the catalog or any
// order snapshot derived from it.
package catalog

import (
	"strconv"
	"strings"
)

// Product is the canonical product record. Identifiers are normalized to
// string form everywhere; the historical data mixed numeric and string ids.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	Image         string   `json:"image"`
	CategoryID    int      `json:"categoryId"`
	Stock         int      `json:"stock,omitempty"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	Discount      float64  `json:"discount,omitempty"`
	Reviews       int      `json:"reviews,omitempty"`
}

type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

// NormalizeID canonicalises a product identifier. It accepts the string form
// of a numeric id ("101") or an opaque string id, trims whitespace, and
// returns "" for missing or zero identifiers so callers can reject them.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if n, err := strconv.Atoi(id); err == nil {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}
	return id
}

type Catalog struct {
	products   []Product
	categories []Category
	byID       map[string]int
}

// New builds a catalog over the given reference data. Use Default() for the
// built-in sample catalog.
func New(categories []Category, products []Product) *Catalog {
	c := &Catalog{
		products:   make([]Product, len(products)),
		categories: make([]Category, len(categories)),
		byID:       make(map[string]int, len(products)),
	}
	copy(c.categories, categories)
	for i, p := range products {
		p.ID = NormalizeID(p.ID)
		c.products[i] = p
		c.byID[p.ID] = i
	}
	return c
}

func Default() *Catalog {
	return New(seedCategories, seedProducts)
}

func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.byID[NormalizeID(id)]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) ProductsByCategory(categoryID int) []Product {
	var out []Product
	for _, p := range c.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// Stock reports the available stock for a product. Unknown products report
// zero stock; the checkout stock check treats products absent from the
// catalog as unconstrained (historical orders may reference retired items).
func (c *Catalog) Stock(id string) (int, bool) {
	p, ok := c.Product(id)
	if !ok {
		return 0, false
	}
	return p.Stock, true
}
