package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/mystore/internal/review"
)

// ReviewListResponse bundles the reviews with the aggregate rating so the
// product page needs a single request.
type ReviewListResponse struct {
	Reviews []review.Review `json:"reviews"`
	Average float64         `json:"averageRating"`
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	reviews, err := h.reviews.ForProduct(r.Context(), productID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	avg, err := h.reviews.Average(r.Context(), productID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ReviewListResponse{Reviews: reviews, Average: avg})
}

func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	saved, err := h.reviews.Add(r.Context(), review.Review{
		ProductID: chi.URLParam(r, "id"),
		UserID:    req.UserID,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}
