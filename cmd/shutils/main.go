// Command shutils runs the shiny-hunting tracker server and offers CLI access
// to the same database.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/erazemk/shutils/internal/config"
	"github.com/erazemk/shutils/internal/db"
	"github.com/erazemk/shutils/internal/species"
	"github.com/erazemk/shutils/internal/store"
)

// app carries the state shared by every command once Before has run.
type app struct {
	cfg      *config.Config
	closeLog func()
	stdout   io.Writer
	stderr   io.Writer
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	a := &app{stdout: stdout, stderr: stderr}

	return &cli.App{
		Name:      "shutils",
		Usage:     "track shiny hunts, counters and finds",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "db", Aliases: []string{"d"}, Usage: "SQLite database path"},
			&cli.StringFlag{Name: "log", Aliases: []string{"l"}, Usage: "also write logs to this file"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
		},
		Before: a.before,
		After: func(*cli.Context) error {
			if a.closeLog != nil {
				a.closeLog()
			}
			return nil
		},
		Commands: []*cli.Command{
			a.serveCommand(),
			a.initCommand(),
			a.migrateCommand(),
			a.huntsCommand(),
			a.shiniesCommand(),
			a.statsCommand(),
			a.exportCommand(),
			a.importCommand(),
		},
	}
}

// before loads the configuration, applies flag overrides and installs the
// logger.
func (a *app) before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if v := c.String("db"); v != "" {
		cfg.Database.Path = v
	}
	if v := c.String("log"); v != "" {
		cfg.Log.File = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := c.String("log-format"); v != "" {
		cfg.Log.Format = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := setupLogger(cfg.Log, a.stdout, a.stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.closeLog = closeLog
	return nil
}

// openStore opens and migrates the configured database.
func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	sqldb, err := db.Open(a.cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, sqldb); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	slog.Debug("database ready", "path", a.cfg.Database.Path)
	return store.New(db.NewBun(sqldb)), nil
}

// registry loads the configured species table, or an empty one.
func (a *app) registry() (*species.Registry, error) {
	if a.cfg.Species.File == "" {
		return species.Empty(), nil
	}
	reg, err := species.LoadFile(a.cfg.Species.File)
	if err != nil {
		return nil, fmt.Errorf("loading species: %w", err)
	}
	slog.Debug("species loaded", "file", a.cfg.Species.File, "count", reg.Len())
	return reg, nil
}
