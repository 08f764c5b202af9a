package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tkxr/tkxr/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "tkxr", cfg.Storage.Path)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "http://localhost:8080", cfg.Notify.URL)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TKXR_STORAGE_PATH", "/tmp/tracker-data")
	t.Setenv("TKXR_SERVER_HOST", "0.0.0.0")
	t.Setenv("TKXR_SERVER_PORT", "9090")
	t.Setenv("TKXR_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/tracker-data", cfg.Storage.Path)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("TKXR_SERVER_PORT", "not-a-port")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("storage:\n  path: /data/tkxr\nserver:\n  port: 3000\nlog:\n  level: warn\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Setenv("TKXR_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/data/tkxr", cfg.Storage.Path)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "warn", cfg.Log.Level)
	// Unset fields keep defaults.
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0o644))

	t.Setenv("TKXR_CONFIG_PATH", path)
	t.Setenv("TKXR_SERVER_PORT", "4000")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 4000, cfg.Server.Port)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("TKXR_CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := config.Load()
	require.Error(t, err)
}
