package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.wishlist.Items(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	var req WishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	product, ok := h.catalog.Product(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	action, err := h.wishlist.Toggle(r.Context(), product)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{Action: string(action)})
}

func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req WishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	product, ok := h.catalog.Product(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	entry, err := h.wishlist.Add(r.Context(), product)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlist.Remove(r.Context(), chi.URLParam(r, "productID")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Product removed from wishlist"})
}

func (h *Handler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	removed, err := h.wishlist.Clear(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "removed": removed})
}
