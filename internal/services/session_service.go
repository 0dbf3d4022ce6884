package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/isdelr/mindmate-be/internal/navigation"
	"github.com/isdelr/mindmate-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// Broadcaster delivers a message to every live connection of one session.
type Broadcaster interface {
	BroadcastTo(sessionID string, message []byte)
}

// SessionServiceProvider defines the interface for session services.
type SessionServiceProvider interface {
	CreateSession() models.Session
	GetSession(id string) (models.Session, error)
	Update(id string, fn func(*models.SessionState) error) (models.SessionState, error)
	Navigate(id string, page models.Page) (models.SessionState, error)
	DeleteIdle(cutoff time.Time) []string
	Count() int
}

type sessionEntry struct {
	mu      sync.Mutex
	session models.Session
}

// SessionService keeps every browser session in memory. Each session has its
// own lock, so actions on one session run one at a time.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	notifier Broadcaster
	now      func() time.Time
}

// NewSessionService creates a new SessionService. notifier may be nil.
func NewSessionService(notifier Broadcaster) *SessionService {
	return &SessionService{
		sessions: make(map[string]*sessionEntry),
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateSession starts a fresh session on the home page.
func (s *SessionService) CreateSession() models.Session {
	now := s.now()
	session := models.Session{
		ID:         uuid.New().String(),
		State:      models.NewSessionState(),
		CreatedAt:  now,
		LastSeenAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	log.Debug().Str("session_id", session.ID).Msg("Session created")
	return session
}

// GetSession returns a copy of the session and marks it as seen.
func (s *SessionService) GetSession(id string) (models.Session, error) {
	e, err := s.entry(id)
	if err != nil {
		return models.Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.LastSeenAt = s.now()
	return e.session, nil
}

// Update runs fn against a copy of the session state and commits the copy only
// when fn succeeds, so a failed action never leaves a partial change behind.
// The login guard redirect is the one failure that is still committed.
func (s *SessionService) Update(id string, fn func(*models.SessionState) error) (models.SessionState, error) {
	e, err := s.entry(id)
	if err != nil {
		return models.SessionState{}, err
	}

	e.mu.Lock()
	state := e.session.State
	fnErr := fn(&state)
	committed := fnErr == nil || errors.Is(fnErr, navigation.ErrNotAuthenticated)
	if committed {
		e.session.State = state
	}
	e.session.LastSeenAt = s.now()
	result := e.session.State
	e.mu.Unlock()

	if committed {
		s.publish(id, result)
	}
	return result, fnErr
}

// Navigate moves the session through the page state machine.
func (s *SessionService) Navigate(id string, page models.Page) (models.SessionState, error) {
	return s.Update(id, func(state *models.SessionState) error {
		return navigation.Navigate(state, page)
	})
}

// DeleteIdle removes sessions not seen since cutoff and returns their ids.
func (s *SessionService) DeleteIdle(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for id, e := range s.sessions {
		// A locked entry is mid-action, so it is not idle.
		if !e.mu.TryLock() {
			continue
		}
		idle := e.session.LastSeenAt.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionService) entry(id string) (*sessionEntry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (s *SessionService) publish(id string, state models.SessionState) {
	if s.notifier == nil {
		return
	}
	s.notifier.BroadcastTo(id, websocket.NewStateMessage(state))
}
