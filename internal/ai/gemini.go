package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-1.5-flash"

// GeminiClient generates text with Google's Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client for the given key and model.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	if model == "" {
		model = DefaultModel
	}

	return newGeminiClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model)
}

func newGeminiClient(ctx context.Context, cfg *genai.ClientConfig, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Generate sends the prompt as a single user turn and returns the response text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		log.Error().Err(err).Str("model", c.model).Msg("Gemini generate failed")
		return "", fmt.Errorf("%w: %v", ErrServiceError, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", ErrServiceError)
	}
	return text, nil
}

func (c *GeminiClient) Enabled() bool { return true }

// Model returns the configured model name.
func (c *GeminiClient) Model() string { return c.model }

// New returns a Gemini client, or Disabled when apiKey is empty.
func New(ctx context.Context, apiKey, model string) (Generator, error) {
	if apiKey == "" {
		log.Warn().Msg("⚠️ API Key is missing. Please set the GEMINI_API_KEY environment variable. AI features are disabled.")
		return Disabled{}, nil
	}
	return NewGeminiClient(ctx, apiKey, model)
}
