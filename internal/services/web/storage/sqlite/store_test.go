package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/louisbranch/stockroom/internal/services/web/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "web.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestOpenEnablesForeignKeys(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	var enabled int
	if err := store.sqlDB.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("read foreign key pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("foreign_keys = %d, want 1", enabled)
	}
}

func TestDeleteUserCascadesTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)
	user, err := store.CreateUser(ctx, storage.NewUser{
		Username:     "operator",
		PasswordHash: "hash",
		Active:       true,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := store.CreateAPIToken(ctx, storage.NewAPIToken{
		UserID:  user.ID,
		KeyHash: "digest",
		Name:    "cli",
		Active:  true,
	}); err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := store.sqlDB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := store.UserForTokenHash(ctx, "digest"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("token lookup after delete = %v, want ErrNotFound", err)
	}
}
