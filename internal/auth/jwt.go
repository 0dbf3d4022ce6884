package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/isdelr/mindmate-be/internal/models"
	"github.com/isdelr/mindmate-be/internal/navigation"
	"github.com/rs/zerolog/log"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// Claims defines the JWT claims structure. The token only names a session;
// everything else lives server side.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type contextKey string

// SessionIDKey is the context key for the current session id.
const SessionIDKey = contextKey("sessionID")

// SessionStore is the part of the session service the middleware needs.
type SessionStore interface {
	CreateSession() models.Session
	GetSession(id string) (models.Session, error)
	Update(id string, fn func(*models.SessionState) error) (models.SessionState, error)
}

// TokenManager signs and validates session tokens.
type TokenManager struct {
	key []byte
	ttl time.Duration
}

// NewTokenManager creates a TokenManager. An empty secret is replaced by a
// random one, which invalidates every token on restart.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if secret == "" {
		log.Warn().Msg("JWT_SECRET is not set, using a random secret for this process")
		secret = uuid.NewString() + uuid.NewString()
	}
	return &TokenManager{key: []byte(secret), ttl: ttl}
}

// Generate creates a new JWT for a given session.
func (m *TokenManager) Generate(sessionID string) (string, time.Time, error) {
	expirationTime := time.Now().Add(m.ttl)
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expirationTime, nil
}

// Validate parses and validates a JWT string.
func (m *TokenManager) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.SessionID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SessionIDFromContext returns the session id set by SessionMiddleware.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok && id != ""
}

// SessionMiddleware attaches a browser session to every request. A missing,
// invalid or expired token, or one naming a reaped session, gets a fresh
// session and a new cookie.
func (m *TokenManager) SessionMiddleware(sessions SessionStore, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			var claims *Claims

			if tokenStr := tokenFromRequest(r); tokenStr != "" {
				c, err := m.Validate(tokenStr)
				if err != nil {
					log.Debug().Err(err).Msg("Discarding invalid session token")
				} else if _, err := sessions.GetSession(c.SessionID); err == nil {
					sessionID = c.SessionID
					claims = c
				}
			}

			if sessionID == "" {
				sessionID = sessions.CreateSession().ID
				claims = nil
			}

			// Issue a cookie for new sessions and refresh it once half its lifetime is gone.
			if claims == nil || time.Until(claims.ExpiresAt.Time) < m.ttl/2 {
				if err := m.setCookie(w, sessionID, secure); err != nil {
					log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to generate session token")
					http.Error(w, "Failed to start session", http.StatusInternalServerError)
					return
				}
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin rejects requests from sessions that are not logged in and sends
// them back to the home page.
func RequireLogin(sessions SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := SessionIDFromContext(r.Context())
			if !ok {
				http.Error(w, "Missing session", http.StatusUnauthorized)
				return
			}
			session, err := sessions.GetSession(sessionID)
			if err != nil {
				http.Error(w, "Missing session", http.StatusUnauthorized)
				return
			}
			if !session.State.LoggedIn {
				sessions.Update(sessionID, func(s *models.SessionState) error {
					s.Page = models.PageHome
					return nil
				})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprintf(w, `{"error":%q,"page":%q}`, navigation.ErrNotAuthenticated.Error(), models.PageHome)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *TokenManager) setCookie(w http.ResponseWriter, sessionID string, secure bool) error {
	token, expires, err := m.Generate(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	return nil
}

func tokenFromRequest(r *http.Request) string {
	// 1. Try to get the token from the Authorization header
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if tokenStr, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return tokenStr
		}
	}
	// 2. If not in header, fall back to the cookie
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}
