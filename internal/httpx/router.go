package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.Get("/{id}/reviews", h.ListReviews)
		r.Post("/{id}/reviews", h.AddReview)
	})
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{id}/products", h.ListProductsByCategory)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddToCart)
		r.Put("/items/{productID}", h.UpdateCartQuantity)
		r.Delete("/items/{productID}", h.RemoveFromCart)
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", h.GetWishlist)
		r.Delete("/", h.ClearWishlist)
		r.Post("/toggle", h.ToggleWishlist)
		r.Post("/items", h.AddToWishlist)
		r.Delete("/items/{productID}", h.RemoveFromWishlist)
	})

	r.Post("/checkout", h.Checkout)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Get("/recent", h.RecentOrders)
		r.Get("/stats", h.OrderStats)
		r.Get("/number/{number}", h.GetOrderByNumber)
		r.Get("/{id}", h.GetOrder)
		r.Put("/{id}/status", h.UpdateOrderStatus)
		r.Post("/{id}/cancel", h.CancelOrder)
		r.Post("/{id}/reorder", h.Reorder)
		r.Get("/{id}/tracking", h.TrackOrder)
		r.Get("/{id}/invoice", h.OrderInvoice)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Get("/methods", h.ListPaymentMethods)
		r.Post("/methods", h.AddPaymentMethod)
		r.Delete("/methods/{id}", h.DeletePaymentMethod)
		r.Put("/methods/{id}/default", h.SetDefaultPaymentMethod)
		r.Get("/orders/{orderID}/status", h.PaymentStatus)
		r.Get("/transactions", h.ListTransactions)
	})

	r.Route("/shipping", func(r chi.Router) {
		r.Get("/options", h.ShippingOptions)
		r.Get("/quote", h.ShippingQuote)
		r.Get("/track/{trackingNumber}", h.TrackShipment)
	})

	r.Route("/addresses", func(r chi.Router) {
		r.Get("/", h.ListAddresses)
		r.Post("/", h.AddAddress)
		r.Put("/{id}", h.UpdateAddress)
		r.Delete("/{id}", h.DeleteAddress)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.ListNotifications)
		r.Post("/", h.AddNotification)
		r.Get("/unread-count", h.UnreadCount)
		r.Put("/read-all", h.MarkAllNotificationsRead)
		r.Put("/{id}/read", h.MarkNotificationRead)
		r.Delete("/{id}", h.DeleteNotification)
		r.Delete("/", h.ClearNotifications)
	})

	r.Route("/session", func(r chi.Router) {
		r.Get("/user", h.CurrentUser)
		r.Post("/user", h.SetCurrentUser)
		r.Delete("/user", h.Logout)
		r.Post("/return-url", h.SetReturnURL)
		r.Get("/return-url", h.GetReturnURL)
	})

	return r
}
