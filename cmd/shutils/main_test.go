package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/shutils/internal/config"
)

func TestParseTime(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"now", now},
		{"2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-05-01 18:45", time.Date(2024, 5, 1, 18, 45, 0, 0, time.UTC)},
		{"2024-05-01T18:45:00+02:00", time.Date(2024, 5, 1, 16, 45, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseTime(tt.input, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseTimeNaturalLanguage(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)

	got, err := parseTime("yesterday", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-09", got.Format("2006-01-02"))
}

func TestParseTimeRejects(t *testing.T) {
	now := time.Now()

	_, err := parseTime("", now)
	assert.Error(t, err)

	_, err = parseTime("definitely not a date", now)
	assert.Error(t, err)
}

func TestLoggerRoutesByLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var stdout, stderr bytes.Buffer
	cleanup, err := setupLogger(config.LogConfig{Level: "info", Format: "text"}, &stdout, &stderr)
	require.NoError(t, err)
	defer cleanup()

	slog.Debug("hidden")
	slog.Info("hello", "hunt", 1)
	slog.Warn("careful")
	slog.Error("broken")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "msg=hello hunt=1")
	assert.Contains(t, stdout.String(), "careful")
	assert.NotContains(t, stdout.String(), "broken")
	assert.Contains(t, stderr.String(), "broken")
	assert.NotContains(t, stderr.String(), "hello")
}

func TestLoggerJSONAndFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logPath := filepath.Join(t.TempDir(), "shutils.log")
	var stdout, stderr bytes.Buffer
	cleanup, err := setupLogger(config.LogConfig{Level: "debug", Format: "json", File: logPath}, &stdout, &stderr)
	require.NoError(t, err)

	slog.Debug("counter edited", "counter", 2)
	slog.Error("save failed")
	cleanup()

	var rec map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rec))
	assert.Equal(t, "counter edited", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(logged), "\n"))
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := setupLogger(config.LogConfig{Level: "loud"}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestGeneratePassword(t *testing.T) {
	a, err := generatePassword(passwordLength)
	require.NoError(t, err)
	b, err := generatePassword(passwordLength)
	require.NoError(t, err)

	assert.Len(t, a, passwordLength)
	assert.NotEqual(t, a, b)
}
