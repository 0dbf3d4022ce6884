package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/isdelr/mindmate-be/internal/services"
)

// ProgressHandler handles the dashboard, challenges and shop pages.
type ProgressHandler struct {
	service services.ProgressServiceProvider
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(service services.ProgressServiceProvider) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// Dashboard returns the progress summary.
func (h *ProgressHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(sessionID(r))
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// ListChallenges returns the fixed challenge list.
func (h *ProgressHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Challenges)
}

// CompleteChallenge marks a challenge as done.
func (h *ProgressHandler) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CompleteChallenge(sessionID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, result.State.Page)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListShop returns the shop catalog.
func (h *ProgressHandler) ListShop(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ShopCatalog)
}

// Purchase buys a shop item.
func (h *ProgressHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Purchase(sessionID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, result.State.Page)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
