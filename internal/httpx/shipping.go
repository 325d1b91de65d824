package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/mystore/internal/shipping"
)

func (h *Handler) ShippingOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.shipping.Options())
}

func (h *Handler) ShippingQuote(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		writeError(w, http.StatusBadRequest, "country is required")
		return
	}
	writeJSON(w, http.StatusOK, h.shipping.Quote(country))
}

func (h *Handler) TrackShipment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.shipping.TrackShipment(chi.URLParam(r, "trackingNumber")))
}

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.shipping.Addresses(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, addrs)
}

func (h *Handler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var a shipping.Address
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if a.Street == "" || a.City == "" {
		writeError(w, http.StatusBadRequest, "street and city are required")
		return
	}

	saved, err := h.shipping.AddAddress(r.Context(), a)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var a shipping.Address
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.shipping.UpdateAddress(r.Context(), chi.URLParam(r, "id"), a); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Address updated"})
}

func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	if err := h.shipping.DeleteAddress(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Address removed"})
}
