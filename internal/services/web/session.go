package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"
)

const sessionCookieName = "stockroom_session"

const defaultSessionTTL = 12 * time.Hour

// session holds data for an authenticated web session.
type session struct {
	userID    int64
	username  string
	csrfToken string
	expiresAt time.Time
}

// sessionStore is a thread-safe in-memory session store.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// newSessionStore creates an empty session store.
func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

// create stores a new session and returns its ID.
func (s *sessionStore) create(userID int64, username string, expiresAt time.Time) string {
	id := randomHex(16)
	s.mu.Lock()
	s.sessions[id] = &session{
		userID:    userID,
		username:  username,
		csrfToken: randomHex(16),
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
	return id
}

// get returns a session by ID, or nil if missing or expired.
func (s *sessionStore) get(id string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if time.Now().After(sess.expiresAt) {
		s.delete(id)
		return nil
	}
	return sess
}

// delete removes a session by ID.
func (s *sessionStore) delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// setSessionCookie writes the session cookie to the response.
func setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionFromRequest reads the session cookie and looks up the session.
func sessionFromRequest(r *http.Request, store *sessionStore) *session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	return store.get(cookie.Value)
}

// randomHex generates a cryptographically random hex string of n bytes.
func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
