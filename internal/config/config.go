package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingToken is returned when no bot token is configured.
var ErrMissingToken = errors.New("DiscordBotToken is not set")

// Config holds everything the bot needs at startup.
type Config struct {
	Token       string
	Prefix      string
	BinanceURL  string
	BitfinexURL string
	HTTPTimeout time.Duration
	LogLevel    string
	LogFormat   string
}

const (
	keyToken       = "discordbottoken"
	keyPrefix      = "command_prefix"
	keyBinanceURL  = "binance_url"
	keyBitfinexURL = "bitfinex_url"
	keyHTTPTimeout = "http_timeout"
	keyLogLevel    = "log_level"
	keyLogFormat   = "log_format"
	keyEnvFile     = "env_file"
)

// Load reads configuration from the environment and an optional .env file.
// Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault(keyPrefix, "!")
	v.SetDefault(keyBinanceURL, "https://api.binance.com")
	v.SetDefault(keyBitfinexURL, "https://api-pub.bitfinex.com")
	v.SetDefault(keyHTTPTimeout, "10s")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "console")
	v.SetDefault(keyEnvFile, ".env")

	bindings := map[string]string{
		keyToken:       "DiscordBotToken",
		keyPrefix:      "COMMAND_PREFIX",
		keyBinanceURL:  "BINANCE_URL",
		keyBitfinexURL: "BITFINEX_URL",
		keyHTTPTimeout: "HTTP_TIMEOUT",
		keyLogLevel:    "LOG_LEVEL",
		keyLogFormat:   "LOG_FORMAT",
		keyEnvFile:     "ENV_FILE",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	v.SetConfigFile(v.GetString(keyEnvFile))
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read env file: %w", err)
	}

	timeout, err := time.ParseDuration(v.GetString(keyHTTPTimeout))
	if err != nil {
		return nil, fmt.Errorf("parse HTTP_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Token:       v.GetString(keyToken),
		Prefix:      v.GetString(keyPrefix),
		BinanceURL:  v.GetString(keyBinanceURL),
		BitfinexURL: v.GetString(keyBitfinexURL),
		HTTPTimeout: timeout,
		LogLevel:    v.GetString(keyLogLevel),
		LogFormat:   v.GetString(keyLogFormat),
	}

	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if len([]rune(cfg.Prefix)) != 1 {
		return nil, fmt.Errorf("COMMAND_PREFIX must be a single character, got %q", cfg.Prefix)
	}

	return cfg, nil
}
