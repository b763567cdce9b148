package web

import (
	"context"
	"errors"
	"strings"

	"github.com/louisbranch/stockroom/internal/services/web/storage"
)

const (
	settingsPluginName = "stockroom-mcp"
	requireAuthKey     = "REQUIRE_AUTH"
)

// PluginSettings reads protocol adapter settings from the host settings
// store.
type PluginSettings struct {
	store storage.SettingsStore
}

func NewPluginSettings(store storage.SettingsStore) *PluginSettings {
	return &PluginSettings{store: store}
}

// RequireAuth reports whether the protocol endpoint demands authenticated
// callers. A missing row means the default of true; read failures
// propagate so callers can fail closed.
func (s *PluginSettings) RequireAuth(ctx context.Context) (bool, error) {
	value, err := s.store.GetPluginSetting(ctx, settingsPluginName, requireAuthKey)
	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "false", "0", "no", "off":
		return false, nil
	}
	return true, nil
}

// SetRequireAuth records the auth requirement setting.
func (s *PluginSettings) SetRequireAuth(ctx context.Context, required bool) error {
	value := "true"
	if !required {
		value = "false"
	}
	return s.store.SetPluginSetting(ctx, settingsPluginName, requireAuthKey, value)
}
