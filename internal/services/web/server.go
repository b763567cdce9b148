// Package web hosts the HTTP surface: credential middleware, sessions,
// plugin settings, and the mount point for the protocol endpoint.
package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/stockroom/internal/services/web/storage"
	"golang.org/x/crypto/bcrypt"
)

const mcpMountPrefix = "/mcp/"

// Server is the host HTTP server. Requests pass through the credential
// middleware and the CSRF gate before reaching the mux.
type Server struct {
	store    storage.Store
	sessions *sessionStore
	auth     *Authenticator
	handler  http.Handler
}

func NewServer(store storage.Store, mcpHandler http.Handler, jwtSecret []byte) *Server {
	sessions := newSessionStore()
	s := &Server{
		store:    store,
		sessions: sessions,
		auth:     NewAuthenticator(store, store, sessions, jwtSecret),
	}

	mux := http.NewServeMux()
	mux.Handle(mcpMountPrefix, mcpHandler)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/auth/login", s.handleLogin)
	mux.HandleFunc("/auth/logout", s.handleLogout)

	s.handler = s.auth.Middleware(s.csrfGate(mux))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Settings returns the plugin settings reader backed by this server's
// store.
func (s *Server) Settings() *PluginSettings {
	return NewPluginSettings(s.store)
}

// csrfGate rejects unsafe cookie-authenticated requests that do not echo
// the session's CSRF token. Header-authenticated callers and the protocol
// mount are exempt; the protocol endpoint enforces its own auth
// requirement.
func (s *Server) csrfGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if safeMethod(r.Method) || exemptFromCSRF(r) {
			next.ServeHTTP(w, r)
			return
		}
		sess := sessionFromRequest(r, s.sessions)
		if sess == nil {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("X-CSRF-Token") != sess.csrfToken {
			http.Error(w, "CSRF token missing or invalid", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func exemptFromCSRF(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, mcpMountPrefix) {
		return true
	}
	return r.URL.Path == "/auth/login"
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleLogin verifies form credentials, opens a session, and returns a
// bearer token for header-based clients.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), username)
	if err != nil || !user.Active ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	sessionID := s.sessions.create(user.ID, user.Username, now.Add(defaultSessionTTL))
	setSessionCookie(w, sessionID)

	accessToken, err := s.auth.MintAccessToken(user.ID, now)
	if err != nil {
		log.Printf("Failed to mint access token: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sess := s.sessions.get(sessionID)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"token":      accessToken,
		"csrf_token": sess.csrfToken,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.sessions.delete(cookie.Value)
	}
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
