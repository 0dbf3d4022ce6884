package navigation

import (
	"testing"

	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		from, to models.Page
		want     bool
	}{
		{models.PageHome, models.PageSignup, true},
		{models.PageHome, models.PageLogin, true},
		{models.PageHome, models.PageDashboard, false},
		{models.PageSignup, models.PageLogin, true},
		{models.PageSignup, models.PageHome, false},
		{models.PageLogin, models.PageDashboard, true},
		{models.PageLogin, models.PageLogin, true},
		{models.PageLogin, models.PageSignup, false},
		{models.PageDashboard, models.PageShop, true},
		{models.PageShop, models.PageChallenges, true},
		{models.PageDashboard, models.PageHome, false},
		{models.PageSettings, models.PageHome, true},
		{models.PageSettings, models.PageLogin, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.from, tt.to))
		})
	}
}

func TestNavigate_SidebarSiblings(t *testing.T) {
	s := models.NewSessionState()
	s.LoggedIn = true
	s.Page = models.PageDashboard

	for _, p := range models.DashboardPages {
		require.NoError(t, Navigate(&s, p))
		assert.Equal(t, p, s.Page)
	}
}

func TestNavigate_GuardRedirectsHome(t *testing.T) {
	for _, p := range models.DashboardPages {
		s := models.NewSessionState()
		s.Page = models.PageLogin

		err := Navigate(&s, p)

		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Equal(t, models.PageHome, s.Page)
	}
}

func TestNavigate_InvalidTransitionKeepsPage(t *testing.T) {
	s := models.NewSessionState()
	s.Page = models.PageSignup

	err := Navigate(&s, models.PageHome)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.PageSignup, s.Page)
}

func TestEnsureDashboard(t *testing.T) {
	s := models.NewSessionState()
	s.LoggedIn = true
	s.Page = models.PageShop

	require.NoError(t, EnsureDashboard(&s, models.PageChallenges))
	assert.Equal(t, models.PageChallenges, s.Page)

	assert.ErrorIs(t, EnsureDashboard(&s, models.PageLogin), ErrInvalidTransition)
	assert.Equal(t, models.PageChallenges, s.Page)
}

func TestParsePage(t *testing.T) {
	p, err := models.ParsePage("book_recommendations")
	require.NoError(t, err)
	assert.Equal(t, models.PageBookRecommendations, p)

	_, err = models.ParsePage("admin")
	assert.Error(t, err)
}
