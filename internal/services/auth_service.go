package services

import (
	"errors"
	"strings"

	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/isdelr/mindmate-be/internal/navigation"
	"github.com/rs/zerolog/log"
)

// AuthServiceProvider defines the signup, login and settings flows.
type AuthServiceProvider interface {
	SignUp(sessionID, username, password string) (models.SessionState, error)
	LogIn(sessionID, username, password string) (models.SessionState, error)
	LogOut(sessionID string) (models.SessionState, error)
	ChangePassword(sessionID, newPassword string) (models.SessionState, error)
}

// AuthService ties the account directory to a browser session.
type AuthService struct {
	accounts AccountServiceProvider
	sessions SessionServiceProvider
	events   EventServiceProvider
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts AccountServiceProvider, sessions SessionServiceProvider, events EventServiceProvider) *AuthService {
	return &AuthService{accounts: accounts, sessions: sessions, events: events}
}

// SignUp creates an account from the signup page and moves on to login.
func (s *AuthService) SignUp(sessionID, username, password string) (models.SessionState, error) {
	state, err := s.sessions.Update(sessionID, func(st *models.SessionState) error {
		if err := navigation.Navigate(st, models.PageSignup); err != nil {
			return err
		}
		if strings.TrimSpace(username) == "" || password == "" {
			return ErrMissingFields
		}
		if err := s.accounts.CreateAccount(username, password); err != nil {
			return err
		}
		return navigation.Navigate(st, models.PageLogin)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			s.events.CreateEvent(sessionID, "account.signup", models.EventWarn, "⚠️ Username already exists. Try another one.")
		}
		return state, err
	}

	log.Info().Str("username", username).Msg("Account created")
	s.events.CreateEvent(sessionID, "account.signup", models.EventSuccess, "✅ Account created! Please log in.")
	return state, nil
}

// LogIn authenticates from the login page and opens the dashboard.
func (s *AuthService) LogIn(sessionID, username, password string) (models.SessionState, error) {
	state, err := s.sessions.Update(sessionID, func(st *models.SessionState) error {
		if err := navigation.Navigate(st, models.PageLogin); err != nil {
			return err
		}
		if err := s.accounts.Authenticate(username, password); err != nil {
			return err
		}
		st.LoggedIn = true
		st.Username = username
		return navigation.Navigate(st, models.PageDashboard)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Warn().Str("username", username).Msg("Failed authentication attempt")
			s.events.CreateEvent(sessionID, "account.login", models.EventError, "❌ Invalid credentials. Please try again.")
		}
		return state, err
	}

	s.events.CreateEvent(sessionID, "account.login", models.EventSuccess, "✅ Login successful! Redirecting...")
	return state, nil
}

// LogOut leaves through the settings page and returns to home. Progress stays
// with the browser session.
func (s *AuthService) LogOut(sessionID string) (models.SessionState, error) {
	state, err := s.sessions.Update(sessionID, func(st *models.SessionState) error {
		if err := navigation.EnsureDashboard(st, models.PageSettings); err != nil {
			return err
		}
		st.LoggedIn = false
		st.Username = ""
		return navigation.Navigate(st, models.PageHome)
	})
	if err != nil {
		return state, err
	}

	s.events.CreateEvent(sessionID, "account.logout", models.EventSuccess, "Logged Out. Redirecting...")
	return state, nil
}

// ChangePassword updates the logged-in user's password from the settings page.
func (s *AuthService) ChangePassword(sessionID, newPassword string) (models.SessionState, error) {
	state, err := s.sessions.Update(sessionID, func(st *models.SessionState) error {
		if err := navigation.EnsureDashboard(st, models.PageSettings); err != nil {
			return err
		}
		if newPassword == "" {
			return ErrEmptyPassword
		}
		return s.accounts.UpdatePassword(st.Username, newPassword)
	})
	if err != nil {
		return state, err
	}

	s.events.CreateEvent(sessionID, "account.password", models.EventSuccess, "🔒 Password updated!")
	return state, nil
}
