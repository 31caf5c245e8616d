package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"
)

const (
	CookieName    = "bracketlab_session"
	SessionExpiry = 24 * time.Hour
)

type contextKey string

// userIDKey carries the authenticated user's id through the request context
const userIDKey contextKey = "user_id"

type session struct {
	userID string
	expiry time.Time
}

// Sessions tracks logged-in users by opaque token
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]session
}

// New creates a new session store
func New() *Sessions {
	return &Sessions{
		sessions: make(map[string]session),
	}
}

// Create issues a session token for a user
func (s *Sessions) Create(userID string) string {
	token := generateToken()
	s.mu.Lock()
	s.sessions[token] = session{
		userID: userID,
		expiry: time.Now().Add(SessionExpiry),
	}
	s.mu.Unlock()
	return token
}

// Destroy invalidates a session token
func (s *Sessions) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Validate returns the user id for a live session token
func (s *Sessions) Validate(token string) (string, bool) {
	s.mu.RLock()
	sess, exists := s.sessions[token]
	s.mu.RUnlock()

	if !exists {
		return "", false
	}

	if time.Now().After(sess.expiry) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return "", false
	}

	return sess.userID, true
}

// UserFromRequest extracts and validates the session from a request
func (s *Sessions) UserFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return s.Validate(cookie.Value)
}

// UserID returns the authenticated user id stored in a request context
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// RequireAuth middleware for pages (redirects to login)
func (s *Sessions) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := s.UserFromRequest(r); ok {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
			return
		}
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}

// RequireAuthAPI middleware for API endpoints (returns 401)
func (s *Sessions) RequireAuthAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := s.UserFromRequest(r); ok {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"UNAUTHORIZED","error":"Unauthorized - please log in"}`))
	})
}

// SetSessionCookie sets the session cookie on the response
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionExpiry.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateToken creates a random session token
func generateToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
