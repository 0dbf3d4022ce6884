package models

import "time"

// Event represents a notice raised by a user action, shown in the activity feed.
type Event struct {
	ID        string    `json:"id"`
	SessionID string    `json:"-"`
	Type      string    `json:"type"`  // e.g., "challenge.complete", "progress.level_up"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event levels.
const (
	EventInfo    = "info"
	EventSuccess = "success"
	EventWarn    = "warn"
	EventError   = "error"
)
