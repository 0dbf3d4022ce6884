// Package ai wraps the generative language model used for advice, playlists
// and book suggestions. It is a plain text-in, text-out service.
package ai

import (
	"context"
	"errors"
)

var (
	// ErrServiceError wraps any failure talking to the model.
	ErrServiceError = errors.New("AI service error")
	// ErrMissingCredential is returned when no API key was configured.
	ErrMissingCredential = errors.New("API key is missing. Please set the GEMINI_API_KEY environment variable")
)

// Generator produces text for a prompt. Calls are synchronous.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Enabled() bool
}

// Disabled is the Generator used when no credential is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrMissingCredential
}

func (Disabled) Enabled() bool { return false }
