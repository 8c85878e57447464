package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/relay/pkg/config"
)

func writeConfigFile(t *testing.T, doc map[string]any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply without file or env", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, ":8080", cfg.Server.Address)
		require.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
		require.Equal(t, "info", cfg.Log.Level)
		require.Equal(t, "production", cfg.Sentry.Environment)
		require.Empty(t, cfg.Sentry.DSN)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		require.Equal(t, ":8080", cfg.Server.Address)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfigFile(t, map[string]any{
			"server": map[string]any{
				"address":          ":9090",
				"shutdown_timeout": "10s",
			},
			"log": map[string]any{
				"level": "debug",
			},
			"sentry": map[string]any{
				"dsn":         "https://key@sentry.example.com/1",
				"environment": "staging",
			},
		})

		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, ":9090", cfg.Server.Address)
		require.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		require.Equal(t, "debug", cfg.Log.Level)
		require.Equal(t, "https://key@sentry.example.com/1", cfg.Sentry.DSN)
		require.Equal(t, "staging", cfg.Sentry.Environment)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := writeConfigFile(t, map[string]any{
			"server": map[string]any{"address": ":9090"},
		})

		t.Setenv("RELAY_SERVER__ADDRESS", ":7070")
		t.Setenv("RELAY_LOG__LEVEL", "warn")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, ":7070", cfg.Server.Address)
		require.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("env duration values parse", func(t *testing.T) {
		t.Setenv("RELAY_SERVER__SHUTDOWN_TIMEOUT", "45s")

		cfg, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, 45*time.Second, cfg.Server.ShutdownTimeout)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

		_, err := config.Load(path)
		require.Error(t, err)
	})
}
