package configs

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresAccessToken(t *testing.T) {
	t.Setenv("BEXIO_ACCESS_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsWhitespaceToken(t *testing.T) {
	t.Setenv("BEXIO_ACCESS_TOKEN", "   ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BEXIO_ACCESS_TOKEN")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BEXIO_ACCESS_TOKEN", "test-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.AccessToken)
	assert.Equal(t, "https://api.bexio.com", cfg.APIURL)
	assert.Equal(t, 120*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 200, cfg.SearchFallbackLimit)
	assert.Nil(t, cfg.Defaults.UserID)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BEXIO_ACCESS_TOKEN", "test-token")
	t.Setenv("BEXIO_API_URL", "https://sandbox.bexio.test")
	t.Setenv("BEXIO_HTTP_TIMEOUT", "30s")
	t.Setenv("BEXIO_SEARCH_FALLBACK_LIMIT", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://sandbox.bexio.test", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 500, cfg.SearchFallbackLimit)
}

func TestLoadConfigFileFillDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
defaults:
  user_id: 4
  currency_id: 2
`), 0644))

	t.Setenv("BEXIO_ACCESS_TOKEN", "test-token")
	t.Setenv("BEXIO_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.UserID)
	assert.Equal(t, 4, *cfg.Defaults.UserID)
	require.NotNil(t, cfg.Defaults.CurrencyID)
	assert.Equal(t, 2, *cfg.Defaults.CurrencyID)
	assert.Nil(t, cfg.Defaults.OwnerID)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("BEXIO_ACCESS_TOKEN", "test-token")
	t.Setenv("BEXIO_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestParsedLogLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{raw: "debug", want: slog.LevelDebug},
		{raw: "info", want: slog.LevelInfo},
		{raw: "warn", want: slog.LevelWarn},
		{raw: "warning", want: slog.LevelWarn},
		{raw: "error", want: slog.LevelError},
		{raw: "ERROR", want: slog.LevelError},
		{raw: "bogus", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg := Config{LogLevel: tt.raw}
			assert.Equal(t, tt.want, cfg.ParsedLogLevel())
		})
	}
}
