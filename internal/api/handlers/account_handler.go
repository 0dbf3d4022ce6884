package handlers

import (
	"net/http"

	"github.com/isdelr/mindmate-be/internal/services"
)

// AccountHandler handles signup, login and account settings.
type AccountHandler struct {
	service services.AuthServiceProvider
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service services.AuthServiceProvider) *AccountHandler {
	return &AccountHandler{service: service}
}

// CredentialsPayload defines the structure for signup and login requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PasswordPayload defines the structure for password change requests.
type PasswordPayload struct {
	NewPassword string `json:"newPassword"`
}

// SignUp handles new account registration.
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if !decode(w, r, &payload) {
		return
	}

	state, err := h.service.SignUp(sessionID(r), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err, state.Page)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

// LogIn handles authentication of the current session.
func (h *AccountHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if !decode(w, r, &payload) {
		return
	}

	state, err := h.service.LogIn(sessionID(r), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err, state.Page)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// LogOut ends the login of the current session.
func (h *AccountHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.LogOut(sessionID(r))
	if err != nil {
		writeError(w, err, state.Page)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// ChangePassword handles changing the logged-in user's password.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var payload PasswordPayload
	if !decode(w, r, &payload) {
		return
	}

	state, err := h.service.ChangePassword(sessionID(r), payload.NewPassword)
	if err != nil {
		writeError(w, err, state.Page)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Password updated successfully",
		"state":   state,
	})
}
