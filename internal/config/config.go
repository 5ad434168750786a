// Package config loads the shutils configuration from a YAML file, the
// environment and built-in defaults.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	Tracker  TrackerConfig  `yaml:"tracker"`
	Species  SpeciesConfig  `yaml:"species"`
}

// DatabaseConfig holds SQLite settings. An empty path means the per-user
// default location.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"SHUTILS_DATABASE_PATH"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr              string        `yaml:"addr"                env:"SHUTILS_SERVER_ADDR"                env-default:":8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"SHUTILS_SERVER_READ_HEADER_TIMEOUT" env-default:"10s"`
	ReadTimeout       time.Duration `yaml:"read_timeout"        env:"SHUTILS_SERVER_READ_TIMEOUT"        env-default:"30s"`
	WriteTimeout      time.Duration `yaml:"write_timeout"       env:"SHUTILS_SERVER_WRITE_TIMEOUT"       env-default:"60s"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"        env:"SHUTILS_SERVER_IDLE_TIMEOUT"        env-default:"120s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SHUTILS_SERVER_SHUTDOWN_TIMEOUT"    env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"SHUTILS_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"SHUTILS_LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file"   env:"SHUTILS_LOG_FILE"`
}

// AuthConfig holds token and login throttling settings.
type AuthConfig struct {
	TokenTTL   time.Duration `yaml:"token_ttl"   env:"SHUTILS_AUTH_TOKEN_TTL"   env-default:"168h"`
	LoginRate  float64       `yaml:"login_rate"  env:"SHUTILS_AUTH_LOGIN_RATE"  env-default:"0.2"`
	LoginBurst int           `yaml:"login_burst" env:"SHUTILS_AUTH_LOGIN_BURST" env-default:"5"`
}

// TrackerConfig holds tracker settings.
type TrackerConfig struct {
	Counters int `yaml:"counters" env:"SHUTILS_TRACKER_COUNTERS" env-default:"4"`
}

// SpeciesConfig points at an optional species lookup table.
type SpeciesConfig struct {
	File string `yaml:"file" env:"SHUTILS_SPECIES_FILE"`
}
