// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all tunables the server reads at startup.
type Config struct {
	// Port is the HTTP/WebSocket listen port.
	Port int
	// LogLevel is the minimum log level: "debug", "info", "warn", "error".
	LogLevel string
	// LogFormat is the log output format: "json" or "console".
	LogFormat string

	// ChatHistoryLimit caps the per-room chat ledger (FIFO eviction).
	ChatHistoryLimit int
	// ChatCooldown is the minimum gap between accepted posts per connection.
	ChatCooldown time.Duration
	// ChatMaxLength truncates normalized chat text, in runes.
	ChatMaxLength int

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. A missing .env file is not
// an error; malformed values are.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             8080,
		LogLevel:         "info",
		LogFormat:        "console",
		ChatHistoryLimit: 25,
		ChatCooldown:     700 * time.Millisecond,
		ChatMaxLength:    200,
		ShutdownTimeout:  10 * time.Second,
	}

	var err error
	if cfg.Port, err = intEnv("PORT", cfg.Port); err != nil {
		return nil, err
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if cfg.ChatHistoryLimit, err = intEnv("CHAT_HISTORY_LIMIT", cfg.ChatHistoryLimit); err != nil {
		return nil, err
	}
	if cfg.ChatCooldown, err = durationEnv("CHAT_COOLDOWN", cfg.ChatCooldown); err != nil {
		return nil, err
	}
	if cfg.ChatMaxLength, err = intEnv("CHAT_MAX_LENGTH", cfg.ChatMaxLength); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges independently of where they came from.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ChatHistoryLimit <= 0 {
		return fmt.Errorf("chat history limit must be positive, got %d", c.ChatHistoryLimit)
	}
	if c.ChatCooldown < 0 {
		return fmt.Errorf("chat cooldown must not be negative, got %s", c.ChatCooldown)
	}
	if c.ChatMaxLength <= 0 {
		return fmt.Errorf("chat max length must be positive, got %d", c.ChatMaxLength)
	}
	return nil
}

// Addr returns the ":port" listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	return d, nil
}
