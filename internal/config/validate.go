package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %v)", c.Auth.TokenTTL)
	}
	if c.Auth.LoginRate <= 0 {
		return fmt.Errorf("auth.login_rate must be > 0 (got %v)", c.Auth.LoginRate)
	}
	if c.Auth.LoginBurst < 1 {
		return fmt.Errorf("auth.login_burst must be >= 1 (got %d)", c.Auth.LoginBurst)
	}
	if c.Tracker.Counters < 1 || c.Tracker.Counters > 16 {
		return fmt.Errorf("tracker.counters must be between 1 and 16 (got %d)", c.Tracker.Counters)
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown level %q", s)
	}
}
