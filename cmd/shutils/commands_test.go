package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliEnv isolates a CLI run from the working directory and the user's
// environment.
func cliEnv(t *testing.T) string {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "shutils.sqlite3")
	t.Setenv("SHUTILS_DATABASE_PATH", dbPath)
	return dbPath
}

func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	full := append([]string{"shutils", "--db", dbPath, "--log-level", "error"}, args...)
	err := newApp(&stdout, &stderr).Run(full)
	return stdout.String(), err
}

func mustRun(t *testing.T, dbPath string, args ...string) string {
	t.Helper()

	out, err := run(t, dbPath, args...)
	require.NoError(t, err, "shutils %v", args)
	return out
}

func TestInitCreatesAccountOnce(t *testing.T) {
	dbPath := cliEnv(t)

	out := mustRun(t, dbPath, "init", "--user", "ash")
	assert.Contains(t, out, "Username: ash")
	assert.Contains(t, out, "Password: ")

	_, err := run(t, dbPath, "init")
	assert.ErrorIs(t, err, errInitialized)
}

func TestMigratePrintsVersion(t *testing.T) {
	dbPath := cliEnv(t)

	out := mustRun(t, dbPath, "migrate")
	assert.Contains(t, out, "Schema version: 2")
}

func TestHuntCommands(t *testing.T) {
	dbPath := cliEnv(t)

	out := mustRun(t, dbPath, "hunts", "add",
		"--target", "25", "--place", "Route 1", "--method", "Masuda",
		"--previous", "50", "--started", "2024-05-01")
	assert.Contains(t, out, "Hunt 1 created: #25 - Route 1")

	mustRun(t, dbPath, "hunts", "add", "--target", "#133")

	out = mustRun(t, dbPath, "hunts", "list")
	assert.Contains(t, out, "#25 - Route 1")
	assert.Contains(t, out, "#133 - Inconnue")

	out = mustRun(t, dbPath, "hunts", "show", "1")
	assert.Contains(t, out, "Masuda")
	assert.Contains(t, out, "2024-05-01")

	out = mustRun(t, dbPath, "hunts", "delete", "2")
	assert.Contains(t, out, "Hunt 2 deleted")

	out = mustRun(t, dbPath, "hunts", "list")
	assert.NotContains(t, out, "#133")

	_, err := run(t, dbPath, "hunts", "show", "2")
	assert.Error(t, err)

	_, err = run(t, dbPath, "hunts", "add", "--target", "pikachu")
	assert.Error(t, err)

	_, err = run(t, dbPath, "hunts", "add", "--target", "25", "--started", "whenever")
	assert.Error(t, err)
}

func TestShinyCommands(t *testing.T) {
	dbPath := cliEnv(t)

	mustRun(t, dbPath, "hunts", "add", "--target", "25")

	out := mustRun(t, dbPath, "shinies", "add",
		"--species", "25", "--hunt", "1", "--gender", "female",
		"--name", "Sparky", "--encounters", "812", "--method", "Masuda")
	assert.Contains(t, out, "Shiny 1 recorded: #25")

	mustRun(t, dbPath, "shinies", "add", "--species", "133", "--found", "yesterday")

	out = mustRun(t, dbPath, "shinies", "list", "--hunt", "1")
	assert.Contains(t, out, "Sparky")
	assert.Contains(t, out, "female")
	assert.NotContains(t, out, "#133")

	out = mustRun(t, dbPath, "shinies", "list", "--detached")
	assert.Contains(t, out, "#133")
	assert.NotContains(t, out, "Sparky")

	_, err := run(t, dbPath, "shinies", "add", "--species", "25", "--gender", "other")
	assert.Error(t, err)

	mustRun(t, dbPath, "shinies", "delete", "2")
	_, err = run(t, dbPath, "shinies", "delete", "2")
	assert.Error(t, err)
}

func TestStatsCommand(t *testing.T) {
	dbPath := cliEnv(t)

	mustRun(t, dbPath, "shinies", "add", "--species", "25", "--encounters", "100", "--method", "Masuda")
	mustRun(t, dbPath, "shinies", "add", "--species", "25", "--encounters", "300", "--method", "Masuda")

	chart := filepath.Join(t.TempDir(), "stats.png")
	out := mustRun(t, dbPath, "stats", "--chart", chart)
	assert.Contains(t, out, "Shinies:")
	assert.Contains(t, out, "#25")
	assert.Contains(t, out, "200.0")
	assert.Contains(t, out, "Masuda")

	png, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestExportImport(t *testing.T) {
	dbPath := cliEnv(t)

	mustRun(t, dbPath, "hunts", "add", "--target", "25", "--place", "Route 1", "--previous", "40")
	mustRun(t, dbPath, "shinies", "add", "--species", "25", "--hunt", "1", "--name", "Sparky")
	mustRun(t, dbPath, "shinies", "add", "--species", "133")

	backup := filepath.Join(t.TempDir(), "backup.yaml")
	mustRun(t, dbPath, "export", "--out", backup)

	xlsx := filepath.Join(t.TempDir(), "backup.xlsx")
	mustRun(t, dbPath, "export", "--format", "xlsx", "--out", xlsx)
	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = run(t, dbPath, "export", "--format", "csv")
	assert.Error(t, err)

	other := filepath.Join(t.TempDir(), "other.sqlite3")
	out := mustRun(t, other, "import", backup)
	assert.Contains(t, out, "Imported 1 hunts and 2 shinies")

	out = mustRun(t, other, "hunts", "show", "1")
	assert.Contains(t, out, "Route 1")
	assert.Contains(t, out, "Sparky")

	out = mustRun(t, other, "shinies", "list", "--detached")
	assert.Contains(t, out, "#133")
}
