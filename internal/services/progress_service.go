package services

import (
	"errors"
	"fmt"

	"github.com/isdelr/mindmate-be/internal/game"
	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/isdelr/mindmate-be/internal/navigation"
	"github.com/rs/zerolog/log"
)

// ProgressServiceProvider covers the dashboard, challenges and shop.
type ProgressServiceProvider interface {
	Dashboard(sessionID string) (models.Dashboard, error)
	CompleteChallenge(sessionID, challengeID string) (models.ActionResult, error)
	Purchase(sessionID, itemID string) (models.ActionResult, error)
}

// ProgressService applies the game rules to a session.
type ProgressService struct {
	sessions SessionServiceProvider
	events   EventServiceProvider
}

// NewProgressService creates a new ProgressService.
func NewProgressService(sessions SessionServiceProvider, events EventServiceProvider) *ProgressService {
	return &ProgressService{sessions: sessions, events: events}
}

// Dashboard opens the dashboard page and summarizes progress.
func (s *ProgressService) Dashboard(sessionID string) (models.Dashboard, error) {
	state, err := s.sessions.Update(sessionID, func(st *models.SessionState) error {
		return navigation.EnsureDashboard(st, models.PageDashboard)
	})
	if err != nil {
		return models.Dashboard{}, err
	}
	return BuildDashboard(state), nil
}

// BuildDashboard derives the dashboard numbers from a state.
func BuildDashboard(st models.SessionState) models.Dashboard {
	return models.Dashboard{
		Username:        st.Username,
		Level:           st.Level,
		XPPoints:        st.XPPoints,
		XPNeeded:        game.XPNeeded(st.Level),
		ProgressPercent: game.ProgressFraction(st) * 100,
		MindCoins:       st.MindCoins,
		Streak:          st.Streak,
	}
}

// CompleteChallenge rewards a finished challenge and stays on the challenge list.
func (s *ProgressService) CompleteChallenge(sessionID, challengeID string) (models.ActionResult, error) {
	challenge, err := game.FindChallenge(challengeID)
	if err != nil {
		return models.ActionResult{}, err
	}

	var leveledUp bool
	state, err := s.sessions.Update(sessionID, func(st *models.SessionState) error {
		if err := navigation.EnsureDashboard(st, models.PageChallenges); err != nil {
			return err
		}
		leveledUp = game.CompleteChallenge(st)
		return nil
	})
	if err != nil {
		return models.ActionResult{State: state}, err
	}

	msg := fmt.Sprintf("🎉 You completed the challenge: %s", challenge.Label)
	s.events.CreateEvent(sessionID, "challenge.complete", models.EventSuccess, msg)
	announceLevelUp(s.events, sessionID, state, leveledUp)

	return models.ActionResult{State: state, Message: msg, LeveledUp: leveledUp}, nil
}

// Purchase buys a shop item with MindCoins.
func (s *ProgressService) Purchase(sessionID, itemID string) (models.ActionResult, error) {
	item, err := game.FindItem(itemID)
	if err != nil {
		return models.ActionResult{}, err
	}

	state, err := s.sessions.Update(sessionID, func(st *models.SessionState) error {
		if err := navigation.EnsureDashboard(st, models.PageShop); err != nil {
			return err
		}
		return game.Purchase(st, item)
	})
	if err != nil {
		if errors.Is(err, game.ErrInsufficientFunds) {
			s.events.CreateEvent(sessionID, "shop.purchase", models.EventWarn, "❌ You don't have enough MindCoins.")
		}
		return models.ActionResult{State: state}, err
	}

	log.Info().Str("session_id", sessionID).Str("item_id", item.ID).Int("cost", item.Cost).Msg("Shop item purchased")
	msg := fmt.Sprintf("🎉 You bought: %s!", item.Label)
	s.events.CreateEvent(sessionID, "shop.purchase", models.EventSuccess, msg)
	return models.ActionResult{State: state, Message: msg}, nil
}

func announceLevelUp(events EventServiceProvider, sessionID string, state models.SessionState, leveledUp bool) {
	if !leveledUp {
		return
	}
	msg := fmt.Sprintf("🎉 Congratulations! You've reached Level %d!", state.Level)
	events.CreateEvent(sessionID, "progress.level_up", models.EventSuccess, msg)
}
