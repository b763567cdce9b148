// Package sqlite provides a SQLite-backed web host store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sqlitemigrate "github.com/louisbranch/stockroom/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/stockroom/internal/services/web/storage"
	"github.com/louisbranch/stockroom/internal/services/web/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists users, tokens, and plugin settings in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the web store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := ensureForeignKeysEnabled(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func ensureForeignKeysEnabled(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("sqlite db is required")
	}
	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("check sqlite foreign key pragma: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("sqlite foreign keys are disabled")
	}
	return nil
}

func (s *Store) ready() error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed")
}

// CreateUser inserts a user record.
func (s *Store) CreateUser(ctx context.Context, user storage.NewUser) (storage.User, error) {
	if err := ctx.Err(); err != nil {
		return storage.User{}, err
	}
	if err := s.ready(); err != nil {
		return storage.User{}, err
	}
	username := strings.TrimSpace(user.Username)
	if username == "" {
		return storage.User{}, fmt.Errorf("username is required")
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, active) VALUES (?, ?, ?)`,
		username, user.PasswordHash, user.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.User{}, storage.ErrAlreadyExists
		}
		return storage.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.User{}, fmt.Errorf("user id: %w", err)
	}
	return s.GetUserByID(ctx, id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (storage.User, error) {
	if err := ctx.Err(); err != nil {
		return storage.User{}, err
	}
	if err := s.ready(); err != nil {
		return storage.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, username, password_hash, active FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (storage.User, error) {
	if err := ctx.Err(); err != nil {
		return storage.User{}, err
	}
	if err := s.ready(); err != nil {
		return storage.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, username, password_hash, active FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (storage.User, error) {
	var user storage.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.User{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}

// CreateAPIToken stores the digest of an issued key.
func (s *Store) CreateAPIToken(ctx context.Context, token storage.NewAPIToken) (storage.APIToken, error) {
	if err := ctx.Err(); err != nil {
		return storage.APIToken{}, err
	}
	if err := s.ready(); err != nil {
		return storage.APIToken{}, err
	}
	if token.KeyHash == "" {
		return storage.APIToken{}, fmt.Errorf("key hash is required")
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO api_tokens (user_id, key_hash, name, active) VALUES (?, ?, ?, ?)`,
		token.UserID, token.KeyHash, token.Name, token.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.APIToken{}, storage.ErrAlreadyExists
		}
		return storage.APIToken{}, fmt.Errorf("insert api token: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.APIToken{}, fmt.Errorf("api token id: %w", err)
	}
	return storage.APIToken{
		ID:      id,
		UserID:  token.UserID,
		KeyHash: token.KeyHash,
		Name:    token.Name,
		Active:  token.Active,
	}, nil
}

// UserForTokenHash resolves the active owner of an active token.
func (s *Store) UserForTokenHash(ctx context.Context, keyHash string) (storage.User, error) {
	if err := ctx.Err(); err != nil {
		return storage.User{}, err
	}
	if err := s.ready(); err != nil {
		return storage.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.password_hash, u.active
		FROM api_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.key_hash = ? AND t.active = 1 AND u.active = 1`, keyHash)
	return scanUser(row)
}

func (s *Store) GetPluginSetting(ctx context.Context, plugin, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.ready(); err != nil {
		return "", err
	}
	var value string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT value FROM plugin_settings WHERE plugin = ? AND key = ?`, plugin, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read plugin setting: %w", err)
	}
	return value, nil
}

func (s *Store) SetPluginSetting(ctx context.Context, plugin, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO plugin_settings (plugin, key, value) VALUES (?, ?, ?)
		ON CONFLICT (plugin, key) DO UPDATE SET value = excluded.value`,
		plugin, key, value)
	if err != nil {
		return fmt.Errorf("write plugin setting: %w", err)
	}
	return nil
}
