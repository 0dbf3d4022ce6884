package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/mindmate-be/internal/ai"
	"github.com/isdelr/mindmate-be/internal/game"
	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/isdelr/mindmate-be/internal/navigation"
	"github.com/rs/zerolog/log"
)

// AdviceFlow describes one AI-backed page.
type AdviceFlow struct {
	Name         string
	Page         models.Page
	PromptPrefix string
	Reward       *game.Reward // nil means no reward
	Locked       func(models.SessionState) bool
	LockedNotice string
}

var (
	TherapistFlow = AdviceFlow{
		Name:   "therapist",
		Page:   models.PageAITherapist,
		Reward: &game.AdviceReward,
	}
	PlaylistFlow = AdviceFlow{
		Name:         "playlist",
		Page:         models.PagePlaylist,
		PromptPrefix: "Generate a playlist for the following mood: ",
		Locked:       func(st models.SessionState) bool { return !st.HasPlaylistGenerator },
		LockedNotice: "🔒 This feature is locked. Please purchase the Playlist Generator in the Shop to unlock it.",
	}
	BookFlow = AdviceFlow{
		Name:         "books",
		Page:         models.PageBookRecommendations,
		PromptPrefix: "Suggest a book recommendation if this is my mood:",
		Reward:       &game.AdviceReward,
		Locked:       func(st models.SessionState) bool { return !st.HasBookRecommendation },
		LockedNotice: "🔒 This feature is locked. Please purchase the Book Recommendation in the Shop to unlock it.",
	}
)

// AdviceServiceProvider runs the AI-backed flows.
type AdviceServiceProvider interface {
	Ask(ctx context.Context, sessionID string, flow AdviceFlow, input string) (models.ActionResult, error)
	Enabled() bool
}

// AdviceService sends mood text to the generator and rewards the answer.
type AdviceService struct {
	sessions  SessionServiceProvider
	events    EventServiceProvider
	generator ai.Generator
}

// NewAdviceService creates a new AdviceService. A nil generator disables AI.
func NewAdviceService(sessions SessionServiceProvider, events EventServiceProvider, generator ai.Generator) *AdviceService {
	if generator == nil {
		generator = ai.Disabled{}
	}
	return &AdviceService{sessions: sessions, events: events, generator: generator}
}

// Enabled reports whether a generator is configured.
func (s *AdviceService) Enabled() bool {
	return s.generator.Enabled()
}

// Ask validates the input, calls the generator once and applies the flow's
// reward. Nothing changes unless the generator answers.
func (s *AdviceService) Ask(ctx context.Context, sessionID string, flow AdviceFlow, input string) (models.ActionResult, error) {
	var response string
	var leveledUp bool

	state, err := s.sessions.Update(sessionID, func(st *models.SessionState) error {
		if err := navigation.EnsureDashboard(st, flow.Page); err != nil {
			return err
		}
		if flow.Locked != nil && flow.Locked(*st) {
			return ErrFeatureLocked
		}
		if strings.TrimSpace(input) == "" {
			return ErrEmptyInput
		}

		text, err := s.generator.Generate(ctx, flow.PromptPrefix+input)
		if err != nil {
			if errors.Is(err, ai.ErrMissingCredential) || errors.Is(err, ai.ErrServiceError) {
				return err
			}
			return fmt.Errorf("%w: %v", ai.ErrServiceError, err)
		}
		response = text

		if flow.Reward != nil {
			leveledUp = game.Award(st, *flow.Reward)
		}
		return nil
	})
	if err != nil {
		s.recordFailure(sessionID, flow, err)
		return models.ActionResult{State: state}, err
	}

	s.events.CreateEvent(sessionID, "advice."+flow.Name, models.EventSuccess, "🤖 AI response received")
	announceLevelUp(s.events, sessionID, state, leveledUp)
	return models.ActionResult{State: state, Response: response, LeveledUp: leveledUp}, nil
}

func (s *AdviceService) recordFailure(sessionID string, flow AdviceFlow, err error) {
	eventType := "advice." + flow.Name
	switch {
	case errors.Is(err, ErrFeatureLocked):
		s.events.CreateEvent(sessionID, eventType, models.EventWarn, flow.LockedNotice)
	case errors.Is(err, ErrEmptyInput):
		s.events.CreateEvent(sessionID, eventType, models.EventWarn, "Enter your feelings to get advice.")
	case errors.Is(err, ai.ErrMissingCredential):
		s.events.CreateEvent(sessionID, eventType, models.EventError, "⚠️ API Key is missing. Please set the GEMINI_API_KEY environment variable.")
	case errors.Is(err, ai.ErrServiceError):
		log.Error().Err(err).Str("session_id", sessionID).Str("flow", flow.Name).Msg("AI request failed")
		s.events.CreateEvent(sessionID, eventType, models.EventError, "The AI service is unavailable right now. Please try again.")
	}
}
