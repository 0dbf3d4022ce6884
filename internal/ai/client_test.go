package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNew_WithoutKeyIsDisabled(t *testing.T) {
	gen, err := New(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, gen.Enabled())

	_, err = gen.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestNewGeminiClient_DefaultModel(t *testing.T) {
	c, err := NewGeminiClient(context.Background(), "test-key", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Model())
	assert.True(t, c.Enabled())
}

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := newGeminiClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	}, "gemini-1.5-flash")
	require.NoError(t, err)
	return c
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Take a deep breath."}]}}]}`))
	})

	text, err := c.Generate(context.Background(), "I feel anxious")

	require.NoError(t, err)
	assert.Equal(t, "Take a deep breath.", text)
	assert.True(t, strings.HasSuffix(gotPath, "models/gemini-1.5-flash:generateContent"), gotPath)
	assert.Contains(t, fmt.Sprint(gotBody["contents"]), "I feel anxious")
}

func TestGeminiClient_Generate_Failure(t *testing.T) {
	c := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := c.Generate(context.Background(), "hello")

	assert.ErrorIs(t, err, ErrServiceError)
}

func TestGeminiClient_Generate_EmptyResponse(t *testing.T) {
	c := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := c.Generate(context.Background(), "hello")

	assert.ErrorIs(t, err, ErrServiceError)
}
