package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/erazemk/shutils/internal/report"
)

func (a *app) statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "print hunting statistics",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "version", Usage: "only this game version"},
			&cli.StringFlag{Name: "chart", Usage: "also write a PNG bar chart to this file"},
		},
		Action: a.stats,
	}
}

func (a *app) stats(c *cli.Context) error {
	reg, err := a.registry()
	if err != nil {
		return err
	}

	s, err := a.openStore(c.Context)
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := report.New(s.DB(), reg.Name).Stats(c.Context, report.Filter{Version: c.String("version")})
	if err != nil {
		return err
	}

	tw := newTable(a.stdout)
	fmt.Fprintf(tw, "Hunts:\t%d (%d active, %d completed)\n", st.Hunts, st.ActiveHunts, st.CompletedHunts)
	fmt.Fprintf(tw, "Shinies:\t%d\n", st.Shinies)
	fmt.Fprintf(tw, "Encounters:\t%d\n", st.Encounters)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(st.Species) > 0 {
		fmt.Fprintln(a.stdout)
		tw = newTable(a.stdout)
		fmt.Fprintln(tw, "SPECIES\tSHINIES\tAVG ENCOUNTERS")
		for _, sp := range st.Species {
			fmt.Fprintf(tw, "%s\t%d\t%.1f\n", sp.Name, sp.Shinies, sp.AvgEncounters)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(st.Methods) > 0 {
		fmt.Fprintln(a.stdout)
		tw = newTable(a.stdout)
		fmt.Fprintln(tw, "METHOD\tSHINIES\tAVG ENCOUNTERS")
		for _, m := range st.Methods {
			fmt.Fprintf(tw, "%s\t%d\t%.1f\n", m.Method, m.Shinies, m.AvgEncounters)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if path := c.String("chart"); path != "" {
		png, err := report.Chart(st)
		if err != nil {
			return fmt.Errorf("rendering chart: %w", err)
		}
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return fmt.Errorf("writing chart: %w", err)
		}
		fmt.Fprintf(a.stdout, "\nChart written to %s\n", path)
	}
	return nil
}
