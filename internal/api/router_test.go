package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/isdelr/mindmate-be/internal/auth"
	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/isdelr/mindmate-be/internal/monitoring"
	"github.com/isdelr/mindmate-be/internal/services"
	"github.com/isdelr/mindmate-be/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	mu      sync.Mutex
	prompts []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return "stub answer", nil
}

func (g *stubGenerator) Enabled() bool { return true }

type testServer struct {
	url      string
	client   *http.Client
	sessions *services.SessionService
	gen      *stubGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	gen := &stubGenerator{}
	sessions := services.NewSessionService(hub)
	events := services.NewEventService(hub)
	accounts := services.NewAccountService(services.PlainPasswords{})
	advice := services.NewAdviceService(sessions, events, gen)

	router := NewRouter(Dependencies{
		Hub:      hub,
		Tokens:   auth.NewTokenManager("test-secret", time.Hour),
		Sessions: sessions,
		Auth:     services.NewAuthService(accounts, sessions, events),
		Progress: services.NewProgressService(sessions, events),
		Advice:   advice,
		Events:   events,
		Health:   monitoring.NewHealthChecker(sessions, advice.Enabled),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testServer{
		url:      srv.URL + "/api/v1",
		client:   &http.Client{Jar: jar},
		sessions: sessions,
		gen:      gen,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, s.url+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		dec := json.NewDecoder(resp.Body)
		var raw interface{}
		require.NoError(t, dec.Decode(&raw))
		if m, ok := raw.(map[string]interface{}); ok {
			out = m
		} else {
			out = map[string]interface{}{"items": raw}
		}
	}
	return resp.StatusCode, out
}

// state digs the session state out of either a bare state or an action result.
func state(body map[string]interface{}) map[string]interface{} {
	if s, ok := body["state"].(map[string]interface{}); ok {
		return s
	}
	return body
}

func (s *testServer) signUpAndLogIn(t *testing.T) {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/signup", map[string]string{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "login", body["page"])

	status, body = s.do(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, body["loggedIn"])
	assert.Equal(t, "dashboard", body["page"])
}

func TestRouter_NewSessionStartsHome(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/session", nil)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "home", body["page"])
	assert.Equal(t, float64(1), body["level"])
	assert.Equal(t, false, body["loggedIn"])

	// The cookie keeps us on the same session.
	s.do(t, http.MethodGet, "/session", nil)
	assert.Equal(t, 1, s.sessions.Count())
}

func TestRouter_FullJourney(t *testing.T) {
	s := newTestServer(t)
	s.signUpAndLogIn(t)

	// Five challenges: 100 XP reaches level 2 with nothing carried over.
	var body map[string]interface{}
	for i := 0; i < 5; i++ {
		var status int
		status, body = s.do(t, http.MethodPost, "/challenges/journal/complete", nil)
		require.Equal(t, http.StatusOK, status, body)
	}
	st := state(body)
	assert.Equal(t, true, body["leveledUp"])
	assert.Equal(t, float64(2), st["level"])
	assert.Equal(t, float64(0), st["xpPoints"])
	assert.Equal(t, float64(25), st["mindcoins"])
	assert.Equal(t, float64(5), st["streak"])
	assert.Equal(t, "challenges", st["page"])

	// 25 coins is not enough for the 30 coin playlist generator.
	status, body := s.do(t, http.MethodPost, "/shop/playlist_generator/purchase", nil)
	assert.Equal(t, http.StatusPaymentRequired, status)
	assert.Equal(t, "challenges", body["page"])

	// Playlist is still locked.
	status, _ = s.do(t, http.MethodPost, "/playlist", map[string]string{"input": "calm"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodPost, "/challenges/walk/complete", nil)
	require.Equal(t, http.StatusOK, status)

	status, body = s.do(t, http.MethodPost, "/shop/playlist_generator/purchase", nil)
	require.Equal(t, http.StatusOK, status, body)
	st = state(body)
	assert.Equal(t, float64(0), st["mindcoins"])
	assert.Equal(t, true, st["hasPlaylistGenerator"])
	assert.Equal(t, "shop", st["page"])

	status, body = s.do(t, http.MethodPost, "/playlist", map[string]string{"input": "calm"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "stub answer", body["response"])
	assert.Equal(t, float64(20), state(body)["xpPoints"])

	status, _ = s.do(t, http.MethodPost, "/therapist", map[string]string{"input": "  "})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(t, http.MethodPost, "/therapist", map[string]string{"input": "I am tired"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(30), state(body)["xpPoints"])
	assert.Equal(t, float64(2), state(body)["mindcoins"])

	assert.Equal(t, []string{"Generate a playlist for the following mood: calm", "I am tired"}, s.gen.prompts)

	status, body = s.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, float64(200), body["xpNeeded"])
	assert.InDelta(t, 15, body["progressPercent"], 0.001)

	status, body = s.do(t, http.MethodGet, "/events?limit=1", nil)
	require.Equal(t, http.StatusOK, status)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "advice.therapist", items[0].(map[string]interface{})["type"])
}

func TestRouter_GuardAfterLogout(t *testing.T) {
	s := newTestServer(t)
	s.signUpAndLogIn(t)

	status, body := s.do(t, http.MethodPost, "/settings/logout", nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "home", body["page"])
	assert.Equal(t, false, body["loggedIn"])

	for _, path := range []string{"/dashboard", "/challenges", "/shop", "/help"} {
		status, body = s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "home", body["page"], path)
	}

	status, body = s.do(t, http.MethodPost, "/navigate", map[string]string{"page": "shop"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "home", body["page"])
}

func TestRouter_SignupAndLoginErrors(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodPost, "/signup", map[string]string{"username": "bob", "password": ""})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPost, "/signup", map[string]string{"username": "bob", "password": "pw"})
	require.Equal(t, http.StatusCreated, status)

	// A second browser tries to take the same name.
	other := newTestServerSharing(t, s)
	status, body := other.do(t, http.MethodPost, "/signup", map[string]string{"username": "bob", "password": "x"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "home", body["page"])

	status, body = s.do(t, http.MethodPost, "/login", map[string]string{"username": "bob", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "login", body["page"])

	status, body = s.do(t, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["loggedIn"])
}

func TestRouter_Navigate(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/navigate", map[string]string{"page": "signup"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "signup", body["page"])

	status, body = s.do(t, http.MethodPost, "/navigate", map[string]string{"page": "home"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "signup", body["page"])

	status, _ = s.do(t, http.MethodPost, "/navigate", map[string]string{"page": "attic"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRouter_HelpAndCatalog(t *testing.T) {
	s := newTestServer(t)
	s.signUpAndLogIn(t)

	status, body := s.do(t, http.MethodGet, "/help", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], len(models.FAQs))

	status, body = s.do(t, http.MethodGet, "/shop", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 4)

	status, body = s.do(t, http.MethodGet, "/challenges", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 6)

	status, _ = s.do(t, http.MethodPost, "/shop/unicorn/purchase", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["aiEnabled"])
}

// newTestServerSharing returns a second browser (own cookie jar) on the same server.
func newTestServerSharing(t *testing.T, s *testServer) *testServer {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testServer{url: s.url, client: &http.Client{Jar: jar}, sessions: s.sessions, gen: s.gen}
}
