package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range []string{
		"DiscordBotToken", "COMMAND_PREFIX", "BINANCE_URL", "BITFINEX_URL",
		"HTTP_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setupEnv(t, map[string]string{"DiscordBotToken": "secret"})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, "https://api.binance.com", cfg.BinanceURL)
	assert.Equal(t, "https://api-pub.bitfinex.com", cfg.BitfinexURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		err  error
	}{
		{
			name: "missing token",
			env:  map[string]string{},
			err:  ErrMissingToken,
		},
		{
			name: "multi-character prefix",
			env:  map[string]string{"DiscordBotToken": "secret", "COMMAND_PREFIX": "!!"},
		},
		{
			name: "invalid timeout",
			env:  map[string]string{"DiscordBotToken": "secret", "HTTP_TIMEOUT": "soon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t, tt.env)

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	setupEnv(t, nil)

	path := filepath.Join(t.TempDir(), ".env")
	content := "DiscordBotToken=from-file\nCOMMAND_PREFIX=?\nHTTP_TIMEOUT=3s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Setenv("HTTP_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Token)
	assert.Equal(t, "?", cfg.Prefix)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout, "environment overrides the file")
}
