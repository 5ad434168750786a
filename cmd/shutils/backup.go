package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/erazemk/shutils/internal/export"
	"github.com/erazemk/shutils/internal/store"
)

func (a *app) exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write a backup (yaml) or a spreadsheet (xlsx)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "yaml", Usage: "yaml or xlsx"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default: stdout)"},
		},
		Action: a.export,
	}
}

func (a *app) export(c *cli.Context) error {
	format := c.String("format")
	if format != "yaml" && format != "xlsx" {
		return fmt.Errorf("unknown format %q", format)
	}

	s, err := a.openStore(c.Context)
	if err != nil {
		return err
	}
	defer s.Close()

	var w io.Writer = a.stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	if format == "xlsx" {
		reg, err := a.registry()
		if err != nil {
			return err
		}
		hunts, err := s.LoadAllHunts(c.Context)
		if err != nil {
			return err
		}
		shinies, err := s.LoadAllShinies(c.Context, store.ShinyFilter{})
		if err != nil {
			return err
		}
		return export.WriteXLSX(w, hunts, shinies, reg.Name)
	}

	b, err := export.Snapshot(c.Context, s, time.Now().UTC())
	if err != nil {
		return err
	}
	return export.WriteBackup(w, b)
}

func (a *app) importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "add the hunts and shinies of a yaml backup",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected one backup file")
			}

			f, err := os.Open(c.Args().First())
			if err != nil {
				return err
			}
			defer f.Close()

			b, err := export.ReadBackup(f)
			if err != nil {
				return err
			}

			s, err := a.openStore(c.Context)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := export.Restore(c.Context, s, b)
			if err != nil {
				return err
			}
			slog.Info("backup imported", "hunts", res.Hunts, "shinies", res.Shinies)
			fmt.Fprintf(a.stdout, "Imported %d hunts and %d shinies\n", res.Hunts, res.Shinies)
			return nil
		},
	}
}
