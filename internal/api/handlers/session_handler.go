package handlers

import (
	"net/http"

	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/isdelr/mindmate-be/internal/services"
)

// SessionHandler exposes the session snapshot and page navigation.
type SessionHandler struct {
	service services.SessionServiceProvider
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service services.SessionServiceProvider) *SessionHandler {
	return &SessionHandler{service: service}
}

// NavigatePayload defines the structure for navigation requests.
type NavigatePayload struct {
	Page string `json:"page"`
}

// Get returns the current session state.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(sessionID(r))
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, session.State)
}

// Navigate moves the session to another page.
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var payload NavigatePayload
	if !decode(w, r, &payload) {
		return
	}

	page, err := models.ParsePage(payload.Page)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.service.Navigate(sessionID(r), page)
	if err != nil {
		writeError(w, err, state.Page)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
