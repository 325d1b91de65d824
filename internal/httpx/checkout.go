package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/jcmexdev/mystore/internal/checkout"
)

// Checkout runs the purchase flow synchronously: the caller needs the
// settlement outcome in the response, unlike a fire-and-forget pipeline.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.PaymentMethod == "" {
		writeError(w, http.StatusBadRequest, "paymentMethod is required")
		return
	}

	res, err := h.checkout.Checkout(r.Context(), checkout.Request{
		Customer:      req.Customer,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Discount:      req.Discount,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, CheckoutResponse{
			Success:       true,
			Message:       res.Settlement.Message,
			CheckoutID:    res.CheckoutID,
			Order:         res.Order,
			TransactionID: res.Settlement.TransactionID,
		})
	case checkout.Declined(err):
		// The order survives as pending; return it so the client can offer a
		// retry against the same order.
		writeJSON(w, http.StatusPaymentRequired, CheckoutResponse{
			Success:    false,
			Message:    res.Settlement.Message,
			CheckoutID: res.CheckoutID,
			Order:      res.Order,
		})
	default:
		writeDomainError(w, err)
	}
}
