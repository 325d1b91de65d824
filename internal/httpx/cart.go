package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/mystore/internal/cart"
)

// CartMutationResponse wraps a cart result in the success envelope.
type CartMutationResponse struct {
	Success bool `json:"success"`
	cart.Result
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.cart.Snapshot(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, ok := h.catalog.Product(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	res, err := h.cart.Add(r.Context(), product, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CartMutationResponse{Success: true, Result: res})
}

func (h *Handler) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := h.cart.UpdateQuantity(r.Context(), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CartMutationResponse{Success: true, Result: res})
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	res, err := h.cart.Remove(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CartMutationResponse{Success: true, Result: res})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CartMutationResponse{
		Success: true,
		Result:  cart.Result{Message: "Cart cleared"},
	})
}
