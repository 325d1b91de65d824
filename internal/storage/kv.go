// Package storage defines the port for the local persistent key-value store
// that backs every collection in the storefront.
//
// Each store (cart, orders, wishlist, ...) owns a single well-known key and
// persists its whole collection as one JSON document under it, the same way
// a browser profile keeps one localStorage entry per collection. Writers do a
// full read-modify-write; there is no cross-key transaction and concurrent
// writers are last-write-wins.
package storage

import "context"

// Well-known keys. Kept stable so an existing data file remains readable
// across versions.
const (
	KeyCart            = "cart"
	KeyOrders          = "user_orders"
	KeyWishlist        = "wishlist_items"
	KeyPaymentMethods  = "payment_methods"
	KeyTransactions    = "payment_transactions"
	KeyNotifications   = "user_notifications"
	KeyReviews         = "product_reviews"
	KeyAddresses       = "shipping_addresses"
	KeyCurrentUser     = "current_user"
	KeyAuthToken       = "auth_token"
	KeyReturnURL       = "returnUrl"
)

// KV is the port for the durable key-value store. The coordinator-style
// services depend on this abstraction, not on SQLite directly, so tests can
// swap in the in-memory implementation.
type KV interface {
	// Get returns the stored value for key. The second return value reports
	// whether the key exists; a missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}
