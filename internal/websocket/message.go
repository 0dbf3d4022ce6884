package websocket

import (
	"encoding/json"

	"github.com/isdelr/mindmate-be/internal/models"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

const (
	ActionState = "state"
	ActionEvent = "event"
	ActionError = "error"
)

func encode(action string, payload interface{}) []byte {
	b, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		b, _ = json.Marshal(Message{Action: ActionError, Payload: map[string]string{"message": err.Error()}})
	}
	return b
}

// NewStateMessage wraps a session snapshot.
func NewStateMessage(state models.SessionState) []byte {
	return encode(ActionState, state)
}

// NewEventMessage wraps an activity event.
func NewEventMessage(event models.Event) []byte {
	return encode(ActionEvent, event)
}

// NewErrorMessage wraps an error text.
func NewErrorMessage(message string) []byte {
	return encode(ActionError, map[string]string{"message": message})
}
