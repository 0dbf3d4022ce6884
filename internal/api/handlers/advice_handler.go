package handlers

import (
	"net/http"

	"github.com/isdelr/mindmate-be/internal/services"
)

// AdviceHandler handles the AI therapist, playlist and book pages.
type AdviceHandler struct {
	service services.AdviceServiceProvider
}

// NewAdviceHandler creates a new AdviceHandler.
func NewAdviceHandler(service services.AdviceServiceProvider) *AdviceHandler {
	return &AdviceHandler{service: service}
}

// AdvicePayload defines the structure for AI requests.
type AdvicePayload struct {
	Input string `json:"input"`
}

func (h *AdviceHandler) ask(flow services.AdviceFlow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload AdvicePayload
		if !decode(w, r, &payload) {
			return
		}

		result, err := h.service.Ask(r.Context(), sessionID(r), flow, payload.Input)
		if err != nil {
			writeError(w, err, result.State.Page)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// Therapist answers free text with advice.
func (h *AdviceHandler) Therapist(w http.ResponseWriter, r *http.Request) {
	h.ask(services.TherapistFlow)(w, r)
}

// Playlist suggests a playlist for a mood.
func (h *AdviceHandler) Playlist(w http.ResponseWriter, r *http.Request) {
	h.ask(services.PlaylistFlow)(w, r)
}

// Books suggests a book for a mood.
func (h *AdviceHandler) Books(w http.ResponseWriter, r *http.Request) {
	h.ask(services.BookFlow)(w, r)
}
