package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/jcmexdev/mystore/internal/session"
)

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	u, ok, err := h.session.User(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "No active session")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) SetCurrentUser(w http.ResponseWriter, r *http.Request) {
	var u session.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if u.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.session.SetUser(r.Context(), u); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.ClearUser(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Signed out"})
}

func (h *Handler) SetReturnURL(w http.ResponseWriter, r *http.Request) {
	var req SetReturnURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.session.SetReturnURL(r.Context(), req.URL); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) GetReturnURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.session.ReturnURL(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
