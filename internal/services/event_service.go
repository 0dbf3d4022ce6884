package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/isdelr/mindmate-be/internal/websocket"
)

// maxEventsPerSession bounds the activity feed kept for one session.
const maxEventsPerSession = 100

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(sessionID, eventType, level, message string) models.Event
	GetRecentEvents(sessionID string, limit int) []models.Event
	DeleteSession(sessionID string)
}

// EventService keeps each session's recent activity in memory and pushes new
// events to that session's live connections.
type EventService struct {
	mu       sync.Mutex
	events   map[string][]models.Event
	notifier Broadcaster
}

// NewEventService creates a new EventService. notifier may be nil.
func NewEventService(notifier Broadcaster) *EventService {
	return &EventService{
		events:   make(map[string][]models.Event),
		notifier: notifier,
	}
}

// CreateEvent records a new event for a session.
func (s *EventService) CreateEvent(sessionID, eventType, level, message string) models.Event {
	event := models.Event{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Type:      eventType,
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	list := append(s.events[sessionID], event)
	if len(list) > maxEventsPerSession {
		list = list[len(list)-maxEventsPerSession:]
	}
	s.events[sessionID] = list
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.BroadcastTo(sessionID, websocket.NewEventMessage(event))
	}
	return event
}

// GetRecentEvents returns up to limit events, newest first.
func (s *EventService) GetRecentEvents(sessionID string, limit int) []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.events[sessionID]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	out := make([]models.Event, 0, limit)
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, list[i])
	}
	return out
}

// DeleteSession drops the feed of a removed session.
func (s *EventService) DeleteSession(sessionID string) {
	s.mu.Lock()
	delete(s.events, sessionID)
	s.mu.Unlock()
}
