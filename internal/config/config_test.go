package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.ServerURL)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.StoragePath)
}

func TestLoadReadsValuesAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte(
		"server_url: https://tracker.example.com\n" +
			"push_url: wss://tracker.example.com/ws/notifications/\n" +
			"log_level: debug\n",
	)
	require.NoError(t, os.WriteFile(path, contents, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://tracker.example.com", cfg.ServerURL)
	assert.Equal(t, "wss://tracker.example.com/ws/notifications/", cfg.PushURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset keys fall back to defaults.
	assert.Equal(t, 20, cfg.PageSize)
}

func TestSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	original := &Config{
		ServerURL:   "https://tracker.example.com",
		PageSize:    50,
		StoragePath: "/tmp/taskboard.db",
		LogLevel:    "warn",
	}
	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}
