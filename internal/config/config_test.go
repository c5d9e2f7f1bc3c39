package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"doneUI/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_OverlaysFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 4000
backend:
  url: http://127.0.0.1:9999
timer:
  tick_interval: 2s
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Len(t, cfg.Server.AllowedOrigins, 2)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Backend.URL)
	assert.Equal(t, 2*time.Second, cfg.Timer.TickInterval)
	assert.Equal(t, 300*time.Millisecond, cfg.Modules.CacheTTL)
	assert.Equal(t, 30, cfg.Shell.ReadyAttempts)
	assert.Equal(t, "localhost:4000", cfg.GetServerAddr())
	assert.Equal(t, "http://localhost:4000", cfg.GetServerURL())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "broken yaml", body: "server: [port"},
		{name: "empty backend", body: "backend:\n  url: \"\"\n"},
		{name: "port out of range", body: "server:\n  port: 70000\n"},
		{name: "zero tick", body: "timer:\n  tick_interval: 0s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
