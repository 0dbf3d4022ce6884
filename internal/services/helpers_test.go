package services

import (
	"context"
	"sync"
	"testing"

	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGenerator) Enabled() bool { return true }

func (f *fakeGenerator) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages map[string][][]byte
}

func (b *recordingBroadcaster) BroadcastTo(sessionID string, message []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.messages == nil {
		b.messages = make(map[string][][]byte)
	}
	b.messages[sessionID] = append(b.messages[sessionID], message)
}

func (b *recordingBroadcaster) count(sessionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.messages[sessionID])
}

type testEnv struct {
	sessions *SessionService
	events   *EventService
	accounts *AccountService
	auth     *AuthService
	progress *ProgressService
	advice   *AdviceService
	gen      *fakeGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gen := &fakeGenerator{reply: "generated text"}
	sessions := NewSessionService(nil)
	events := NewEventService(nil)
	accounts := NewAccountService(PlainPasswords{})
	return &testEnv{
		sessions: sessions,
		events:   events,
		accounts: accounts,
		auth:     NewAuthService(accounts, sessions, events),
		progress: NewProgressService(sessions, events),
		advice:   NewAdviceService(sessions, events, gen),
		gen:      gen,
	}
}

// loggedInSession returns a session that has signed up and logged in as "alice".
func (e *testEnv) loggedInSession(t *testing.T) string {
	t.Helper()
	id := e.sessions.CreateSession().ID
	_, err := e.auth.SignUp(id, "alice", "pw")
	require.NoError(t, err)
	_, err = e.auth.LogIn(id, "alice", "pw")
	require.NoError(t, err)
	return id
}

// setState overwrites the progression fields of a session.
func (e *testEnv) setState(t *testing.T, id string, fn func(*models.SessionState)) {
	t.Helper()
	_, err := e.sessions.Update(id, func(s *models.SessionState) error {
		fn(s)
		return nil
	})
	require.NoError(t, err)
}

func (e *testEnv) state(t *testing.T, id string) models.SessionState {
	t.Helper()
	s, err := e.sessions.GetSession(id)
	require.NoError(t, err)
	return s.State
}
