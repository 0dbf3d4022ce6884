package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/mindmate-be/internal/ai"
	"github.com/isdelr/mindmate-be/internal/auth"
	"github.com/isdelr/mindmate-be/internal/game"
	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/isdelr/mindmate-be/internal/navigation"
	"github.com/isdelr/mindmate-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every failed request. Page is where the
// session is after the failure.
type ErrorResponse struct {
	Error string      `json:"error"`
	Page  models.Page `json:"page,omitempty"`
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{services.ErrDuplicateUsername, http.StatusConflict},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrMissingFields, http.StatusBadRequest},
	{services.ErrEmptyPassword, http.StatusBadRequest},
	{services.ErrEmptyInput, http.StatusBadRequest},
	{services.ErrFeatureLocked, http.StatusForbidden},
	{services.ErrSessionNotFound, http.StatusUnauthorized},
	{game.ErrInsufficientFunds, http.StatusPaymentRequired},
	{game.ErrUnknownItem, http.StatusNotFound},
	{game.ErrUnknownChallenge, http.StatusNotFound},
	{navigation.ErrNotAuthenticated, http.StatusUnauthorized},
	{navigation.ErrInvalidTransition, http.StatusConflict},
	{ai.ErrMissingCredential, http.StatusServiceUnavailable},
	{ai.ErrServiceError, http.StatusBadGateway},
}

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error, page models.Page) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Unhandled error")
		msg = "Internal server error"
	}
	writeJSON(w, status, ErrorResponse{Error: msg, Page: page})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

func sessionID(r *http.Request) string {
	id, _ := auth.SessionIDFromContext(r.Context())
	return id
}
