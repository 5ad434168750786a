package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/erazemk/shutils/internal/model"
)

func (a *app) huntsCommand() *cli.Command {
	return &cli.Command{
		Name:  "hunts",
		Usage: "list and manage hunts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list hunts",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "active", Usage: "only hunts that are not completed"},
				},
				Action: a.listHunts,
			},
			{
				Name:      "show",
				Usage:     "show one hunt and its shinies",
				ArgsUsage: "<id>",
				Action:    a.showHunt,
			},
			{
				Name:  "add",
				Usage: "start a new hunt",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Required: true, Usage: "target species (key, name or number)"},
					&cli.StringFlag{Name: "place", Usage: "where the hunt takes place"},
					&cli.StringFlag{Name: "method", Usage: "hunting method"},
					&cli.StringFlag{Name: "version", Usage: "game version"},
					&cli.StringFlag{Name: "notes", Usage: "free-form notes"},
					&cli.Int64Flag{Name: "previous", Usage: "encounters before tracking started"},
					&cli.StringFlag{Name: "started", Value: "now", Usage: `start time, e.g. "2024-05-01" or "yesterday"`},
				},
				Action: a.addHunt,
			},
			{
				Name:      "delete",
				Usage:     "delete a hunt, keeping its shinies",
				ArgsUsage: "<id>",
				Action:    a.deleteHunt,
			},
		},
	}
}

func (a *app) listHunts(c *cli.Context) error {
	s, err := a.openStore(c.Context)
	if err != nil {
		return err
	}
	defer s.Close()

	reg, err := a.registry()
	if err != nil {
		return err
	}

	hunts, err := s.LoadAllHunts(c.Context)
	if err != nil {
		return err
	}

	tw := newTable(a.stdout)
	fmt.Fprintln(tw, "ID\tHUNT\tPHASE\tTOTAL\tPHASES\tSHINIES\tSTATUS\tSTARTED")
	for _, h := range hunts {
		if c.Bool("active") && h.Completed {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			h.ID, h.Label(reg.Name), h.PhaseEncounters, h.TotalEncounters(),
			h.PhaseCount, len(h.Shinies), huntStatus(h), formatTime(h.StartTime))
	}
	return tw.Flush()
}

func (a *app) showHunt(c *cli.Context) error {
	id, err := argID(c, "hunt")
	if err != nil {
		return err
	}

	s, err := a.openStore(c.Context)
	if err != nil {
		return err
	}
	defer s.Close()

	reg, err := a.registry()
	if err != nil {
		return err
	}

	h, err := s.LoadHunt(c.Context, id)
	if err != nil {
		return err
	}

	tw := newTable(a.stdout)
	fmt.Fprintf(tw, "Hunt:\t%d\n", h.ID)
	fmt.Fprintf(tw, "Target:\t%s\n", reg.Name(h.Target))
	fmt.Fprintf(tw, "Place:\t%s\n", model.TextOrUnknown(h.Place))
	fmt.Fprintf(tw, "Method:\t%s\n", model.TextOrUnknown(h.Method))
	fmt.Fprintf(tw, "Version:\t%s\n", model.TextOrUnknown(h.Version))
	fmt.Fprintf(tw, "Phase:\t%d (%d encounters)\n", h.PhaseCount, h.PhaseEncounters)
	fmt.Fprintf(tw, "Total:\t%d\n", h.TotalEncounters())
	fmt.Fprintf(tw, "Started:\t%s\n", formatTime(h.StartTime))
	fmt.Fprintf(tw, "Ended:\t%s\n", formatTime(h.EndTime))
	fmt.Fprintf(tw, "Status:\t%s\n", huntStatus(h))
	if h.Notes != nil {
		fmt.Fprintf(tw, "Notes:\t%s\n", *h.Notes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(h.Shinies) == 0 {
		return nil
	}
	fmt.Fprintln(a.stdout)
	return writeShinies(a.stdout, h.Shinies, reg.Name)
}

func (a *app) addHunt(c *cli.Context) error {
	reg, err := a.registry()
	if err != nil {
		return err
	}
	target, err := lookupSpecies(reg, "target", c.String("target"))
	if err != nil {
		return err
	}
	started, err := parseTime(c.String("started"), time.Now())
	if err != nil {
		return err
	}

	h := model.NewHunt(target)
	h.PreviousEncounters = c.Int64("previous")
	h.StartTime = &started
	h.Place = optional(c, "place")
	h.Method = optional(c, "method")
	h.Version = optional(c, "version")
	h.Notes = optional(c, "notes")

	s, err := a.openStore(c.Context)
	if err != nil {
		return err
	}
	defer s.Close()

	saved, err := s.UpsertHunt(c.Context, h)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Hunt %d created: %s\n", saved.ID, saved.Label(reg.Name))
	return nil
}

func (a *app) deleteHunt(c *cli.Context) error {
	id, err := argID(c, "hunt")
	if err != nil {
		return err
	}

	s, err := a.openStore(c.Context)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteHunt(c.Context, id); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Hunt %d deleted\n", id)
	return nil
}

func huntStatus(h *model.Hunt) string {
	if h.Completed {
		return "completed"
	}
	return "active"
}
