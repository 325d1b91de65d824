package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jcmexdev/mystore/internal/cart"
	"github.com/jcmexdev/mystore/internal/checkout"
	"github.com/jcmexdev/mystore/internal/notification"
	"github.com/jcmexdev/mystore/internal/order"
	"github.com/jcmexdev/mystore/internal/payment"
	"github.com/jcmexdev/mystore/internal/review"
	"github.com/jcmexdev/mystore/internal/shipping"
	"github.com/jcmexdev/mystore/internal/wishlist"
)

// ErrorResponse is the uniform failure envelope. Success responses carry the
// domain payload directly.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: msg})
}

// writeDomainError maps the store sentinel errors onto HTTP statuses.
// Anything unrecognised is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, cart.ErrNotFound),
		errors.Is(err, wishlist.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, notification.ErrNotFound),
		errors.Is(err, payment.ErrMethodNotFound),
		errors.Is(err, shipping.ErrAddressNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrInvalidProduct),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, wishlist.ErrInvalidProduct),
		errors.Is(err, wishlist.ErrAlreadyPresent),
		errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, review.ErrInvalidReview):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrTerminalStatus):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrDeclined):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
