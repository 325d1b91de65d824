package cart

import (
	"errors"
	"time"

	"github.com/jcmexdev/mystore/internal/catalog"
)

var (
	// ErrInvalidProduct marks an add with a missing product or a missing/zero
	// product identifier.
	ErrInvalidProduct = errors.New("cart: invalid product")

	// ErrInvalidQuantity marks an add with a non-positive quantity.
	ErrInvalidQuantity = errors.New("cart: invalid quantity")

	// ErrNotFound marks an operation referencing a product that has no line
	// in the cart.
	ErrNotFound = errors.New("cart: product not found in cart")
)

// Line is one product-quantity pairing in the cart. The product is a snapshot
// copy, not a live catalog reference.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	AddedAt  time.Time       `json:"addedAt"`
}

// Snapshot is the published view of the cart after every mutation. Observers
// (a navigation badge, the checkout page) consume it instead of recomputing
// aggregates themselves.
type Snapshot struct {
	Lines []Line  `json:"items"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// Result describes the outcome of a mutating cart operation.
type Result struct {
	// Message is the human-readable outcome, e.g. "Quantity updated to 3".
	Message string `json:"message"`

	// Quantity is the per-line quantity after the operation, zero after a
	// removal.
	Quantity int `json:"quantity,omitempty"`

	// Count and Total are the updated cart aggregates.
	Count int     `json:"count"`
	Total float64 `json:"total"`
}
