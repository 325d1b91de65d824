package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/mystore/internal/order"
)

const invoiceCacheTTL = time.Hour

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.Orders(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	orders, err := h.orders.Recent(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Order(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) GetOrderByNumber(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.ByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), order.Status(req.Status))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	res, err := h.orders.Reorder(r.Context(), chi.URLParam(r, "id"))
	if err != nil && res.Added == 0 && res.Failed == 0 {
		writeDomainError(w, err)
		return
	}
	// Partial failures still report what made it into the cart.
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	info, err := h.orders.Track(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// OrderInvoice renders the plain-text invoice with a read-through cache. The
// rendered text embeds the payment state, so the cache key carries the payment
// status: a pending order settling never serves a stale invoice.
func (h *Handler) OrderInvoice(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	o, err := h.orders.Order(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var cacheKey string
	if h.cache != nil {
		cacheKey = h.cache.GenerateKey("invoice", orderID+":"+string(o.Payment.Status))
		if cached, err := h.cache.Get(r.Context(), cacheKey); err == nil && cached != "" {
			writeText(w, cached)
			return
		}
	}

	invoice, err := h.orders.Invoice(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), cacheKey, invoice, invoiceCacheTTL); err != nil {
			slog.WarnContext(r.Context(), "failed to cache invoice", "order_id", orderID, "error", err)
		}
	}
	writeText(w, invoice)
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
