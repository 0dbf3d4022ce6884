// Package navigation is the page state machine. Pages form a closed set and
// every move is checked against an explicit transition table.
package navigation

import (
	"errors"
	"fmt"

	"github.com/isdelr/mindmate-be/internal/models"
)

var (
	// ErrInvalidTransition is returned for a move the table does not allow.
	ErrInvalidTransition = errors.New("page transition not allowed")
	// ErrNotAuthenticated is returned when a dashboard page is requested while logged out.
	ErrNotAuthenticated = errors.New("please log in first")
)

// transitions lists the pages reachable from each unauthenticated page.
// Every page may also stay where it is.
var transitions = map[models.Page][]models.Page{
	models.PageHome:   {models.PageSignup, models.PageLogin},
	models.PageSignup: {models.PageLogin},
	models.PageLogin:  {models.PageDashboard},
}

// Allowed reports whether the table permits moving from one page to another,
// ignoring the login guard.
func Allowed(from, to models.Page) bool {
	if from == to {
		return true
	}
	if from.IsDashboard() {
		// Sidebar siblings, plus home on logout from settings.
		return to.IsDashboard() || (from == models.PageSettings && to == models.PageHome)
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Navigate moves the session to page to. A dashboard page requested while
// logged out resets the session to home and fails with ErrNotAuthenticated.
func Navigate(s *models.SessionState, to models.Page) error {
	if to.IsDashboard() && !s.LoggedIn {
		s.Page = models.PageHome
		return ErrNotAuthenticated
	}
	if !Allowed(s.Page, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Page, to)
	}
	s.Page = to
	return nil
}

// EnsureDashboard checks the login guard and moves to the given sidebar page.
// It is used by actions that live on a dashboard view.
func EnsureDashboard(s *models.SessionState, page models.Page) error {
	if !page.IsDashboard() {
		return fmt.Errorf("%w: %s is not a dashboard page", ErrInvalidTransition, page)
	}
	return Navigate(s, page)
}
