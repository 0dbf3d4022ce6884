package models

import "time"

// SessionState is everything one browser session knows about its user.
// It holds no reference types so a plain assignment is a full copy.
type SessionState struct {
	XPPoints              int    `json:"xpPoints"`
	Level                 int    `json:"level"`
	MindCoins             int    `json:"mindcoins"`
	Streak                int    `json:"streak"`
	LoggedIn              bool   `json:"loggedIn"`
	Username              string `json:"username,omitempty"` // Empty when logged out
	HasPlaylistGenerator  bool   `json:"hasPlaylistGenerator"`
	HasBookRecommendation bool   `json:"hasBookRecommendation"`
	Page                  Page   `json:"page"`
}

// NewSessionState returns the state a fresh browser session starts with.
func NewSessionState() SessionState {
	return SessionState{
		Level: 1,
		Page:  PageHome,
	}
}

// Session pairs a state with its identity and bookkeeping times.
type Session struct {
	ID         string       `json:"id"`
	State      SessionState `json:"state"`
	CreatedAt  time.Time    `json:"createdAt"`
	LastSeenAt time.Time    `json:"lastSeenAt"`
}
