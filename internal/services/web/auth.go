package web

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/louisbranch/stockroom/internal/platform/requestctx"
	"github.com/louisbranch/stockroom/internal/services/web/storage"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = time.Hour

// Authenticator resolves request credentials into a principal. Resolution
// is best-effort: a request with no usable credential continues anonymous
// and enforcement stays with the handlers behind it.
type Authenticator struct {
	users    storage.UserStore
	tokens   storage.TokenStore
	sessions *sessionStore
	secret   []byte
}

func NewAuthenticator(users storage.UserStore, tokens storage.TokenStore, sessions *sessionStore, secret []byte) *Authenticator {
	return &Authenticator{users: users, tokens: tokens, sessions: sessions, secret: secret}
}

// Middleware attaches the resolved principal to the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := a.resolvePrincipal(r)
		if principal.Authenticated() {
			r = r.WithContext(requestctx.WithPrincipal(r.Context(), principal))
		}
		next.ServeHTTP(w, r)
	})
}

// resolvePrincipal tries each credential kind in a fixed order: API token
// header, bearer JWT, basic credentials, then the session cookie.
func (a *Authenticator) resolvePrincipal(r *http.Request) requestctx.Principal {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	switch {
	case strings.HasPrefix(header, "Token "):
		return a.principalFromToken(r, strings.TrimSpace(strings.TrimPrefix(header, "Token ")))
	case strings.HasPrefix(header, "Bearer "):
		return a.principalFromJWT(r, strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
	case strings.HasPrefix(header, "Basic "):
		return a.principalFromBasic(r)
	}
	return a.principalFromSession(r)
}

func (a *Authenticator) principalFromToken(r *http.Request, key string) requestctx.Principal {
	if key == "" {
		return requestctx.Principal{}
	}
	user, err := a.tokens.UserForTokenHash(r.Context(), hashTokenKey(key))
	if err != nil {
		return requestctx.Principal{}
	}
	return requestctx.Principal{UserID: user.ID, Username: user.Username, Method: "token"}
}

func (a *Authenticator) principalFromJWT(r *http.Request, raw string) requestctx.Principal {
	if raw == "" || len(a.secret) == 0 {
		return requestctx.Principal{}
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return requestctx.Principal{}
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return requestctx.Principal{}
	}
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return requestctx.Principal{}
	}
	user, err := a.users.GetUserByID(r.Context(), userID)
	if err != nil || !user.Active {
		return requestctx.Principal{}
	}
	return requestctx.Principal{UserID: user.ID, Username: user.Username, Method: "bearer"}
}

func (a *Authenticator) principalFromBasic(r *http.Request) requestctx.Principal {
	username, password, ok := r.BasicAuth()
	if !ok {
		return requestctx.Principal{}
	}
	user, err := a.users.GetUserByUsername(r.Context(), username)
	if err != nil || !user.Active {
		return requestctx.Principal{}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return requestctx.Principal{}
	}
	return requestctx.Principal{UserID: user.ID, Username: user.Username, Method: "basic"}
}

func (a *Authenticator) principalFromSession(r *http.Request) requestctx.Principal {
	sess := sessionFromRequest(r, a.sessions)
	if sess == nil {
		return requestctx.Principal{}
	}
	return requestctx.Principal{UserID: sess.userID, Username: sess.username, Method: "session"}
}

// MintAccessToken issues a short-lived HS256 token for the given user.
func (a *Authenticator) MintAccessToken(userID int64, now time.Time) (string, error) {
	if len(a.secret) == 0 {
		return "", fmt.Errorf("jwt secret is not configured")
	}
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// hashTokenKey digests an API key the way the token store keeps it.
func hashTokenKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// HashTokenKey exposes the token digest for provisioning code.
func HashTokenKey(key string) string {
	return hashTokenKey(key)
}

// HashPassword produces the bcrypt hash stored for a user password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
