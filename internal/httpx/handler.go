// Package httpx exposes the storefront over HTTP. Every handler is a thin
// adapter: decode, call the store, encode. Domain rules live in the stores.
package httpx

import (
	"github.com/jcmexdev/mystore/internal/cart"
	"github.com/jcmexdev/mystore/internal/catalog"
	"github.com/jcmexdev/mystore/internal/checkout"
	"github.com/jcmexdev/mystore/internal/notification"
	"github.com/jcmexdev/mystore/internal/order"
	"github.com/jcmexdev/mystore/internal/payment"
	"github.com/jcmexdev/mystore/internal/pkg/cache"
	"github.com/jcmexdev/mystore/internal/review"
	"github.com/jcmexdev/mystore/internal/session"
	"github.com/jcmexdev/mystore/internal/shipping"
	"github.com/jcmexdev/mystore/internal/wishlist"
)

// Handler bundles the storefront services behind the HTTP surface.
type Handler struct {
	catalog       *catalog.Catalog
	cart          *cart.Service
	wishlist      *wishlist.Service
	orders        *order.Service
	payments      *payment.Service
	shipping      *shipping.Service
	notifications *notification.Service
	reviews       *review.Service
	session       *session.Store
	checkout      *checkout.Service

	// cache may be nil; invoice rendering then skips the read-through.
	cache cache.Cache
}

type Deps struct {
	Catalog       *catalog.Catalog
	Cart          *cart.Service
	Wishlist      *wishlist.Service
	Orders        *order.Service
	Payments      *payment.Service
	Shipping      *shipping.Service
	Notifications *notification.Service
	Reviews       *review.Service
	Session       *session.Store
	Checkout      *checkout.Service
	Cache         cache.Cache
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		catalog:       d.Catalog,
		cart:          d.Cart,
		wishlist:      d.Wishlist,
		orders:        d.Orders,
		payments:      d.Payments,
		shipping:      d.Shipping,
		notifications: d.Notifications,
		reviews:       d.Reviews,
		session:       d.Session,
		checkout:      d.Checkout,
		cache:         d.Cache,
	}
}
