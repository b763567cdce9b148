// Package storage defines the persistence contract for the web host:
// users, API tokens, and plugin settings.
package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// User is a host account that can hold sessions and API tokens.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Active       bool
}

type NewUser struct {
	Username     string
	PasswordHash string
	Active       bool
}

// APIToken authenticates header-based callers. Only the SHA-256 digest of
// the issued key is stored.
type APIToken struct {
	ID      int64
	UserID  int64
	KeyHash string
	Name    string
	Active  bool
}

type NewAPIToken struct {
	UserID  int64
	KeyHash string
	Name    string
	Active  bool
}

type UserStore interface {
	CreateUser(ctx context.Context, user NewUser) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
}

type TokenStore interface {
	CreateAPIToken(ctx context.Context, token NewAPIToken) (APIToken, error)
	// UserForTokenHash resolves the active user owning an active token
	// with the given key digest.
	UserForTokenHash(ctx context.Context, keyHash string) (User, error)
}

// SettingsStore persists per-plugin key/value settings.
type SettingsStore interface {
	GetPluginSetting(ctx context.Context, plugin, key string) (string, error)
	SetPluginSetting(ctx context.Context, plugin, key, value string) error
}

type Store interface {
	UserStore
	TokenStore
	SettingsStore
}
