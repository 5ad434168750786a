package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into an empty directory so no stray shutils.yaml or
// .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	t.Setenv("SHUTILS_CONFIG", "")
	t.Setenv("SHUTILS_DATABASE_PATH", "/tmp/shutils-test.sqlite3")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.Auth.LoginBurst)
	assert.Equal(t, 4, cfg.Tracker.Counters)
	assert.Equal(t, "/tmp/shutils-test.sqlite3", cfg.Database.Path)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /data/hunts.sqlite3
server:
  addr: 127.0.0.1:9000
log:
  level: debug
  format: json
tracker:
  counters: 2
`), 0o644))
	t.Setenv("SHUTILS_SERVER_ADDR", "127.0.0.1:9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/hunts.sqlite3", cfg.Database.Path)
	assert.Equal(t, "127.0.0.1:9100", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2, cfg.Tracker.Counters)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdir(t)
	t.Setenv("SHUTILS_CONFIG", "")
	t.Setenv("SHUTILS_DATABASE_PATH", filepath.Join(dir, "db.sqlite3"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SHUTILS_TRACKER_COUNTERS=3\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SHUTILS_TRACKER_COUNTERS") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Tracker.Counters)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := chdir(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{Addr: ":8080"},
			Log:     LogConfig{Level: "info", Format: "text"},
			Auth:    AuthConfig{TokenTTL: time.Hour, LoginRate: 1, LoginBurst: 1},
			Tracker: TrackerConfig{Counters: 4},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, true},
		{"zero rate", func(c *Config) { c.Auth.LoginRate = 0 }, true},
		{"zero burst", func(c *Config) { c.Auth.LoginBurst = 0 }, true},
		{"no counters", func(c *Config) { c.Tracker.Counters = 0 }, true},
		{"too many counters", func(c *Config) { c.Tracker.Counters = 17 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}
