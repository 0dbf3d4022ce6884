package handlers

import (
	"net/http"

	"github.com/isdelr/mindmate-be/internal/monitoring"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	checker *monitoring.HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checker *monitoring.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Get returns the health report.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.checker.Report(r.Context()))
}
