package main

import (
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/erazemk/shutils/internal/model"
	"github.com/erazemk/shutils/internal/store"
)

func (a *app) shiniesCommand() *cli.Command {
	return &cli.Command{
		Name:  "shinies",
		Usage: "list and manage found shinies",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list shinies",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "species", Usage: "only this species"},
					&cli.Int64Flag{Name: "hunt", Usage: "only shinies of this hunt"},
					&cli.StringFlag{Name: "method", Usage: "only this method"},
					&cli.BoolFlag{Name: "detached", Usage: "only shinies without a hunt"},
				},
				Action: a.listShinies,
			},
			{
				Name:  "add",
				Usage: "record a shiny by hand",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "species", Aliases: []string{"s"}, Required: true, Usage: "species (key, name or number)"},
					&cli.Int64Flag{Name: "hunt", Usage: "attribute the shiny to this hunt"},
					&cli.StringFlag{Name: "gender", Usage: "male, female or genderless"},
					&cli.StringFlag{Name: "name", Usage: "nickname"},
					&cli.Int64Flag{Name: "encounters", Usage: "total encounters"},
					&cli.StringFlag{Name: "place", Usage: "where it was found"},
					&cli.StringFlag{Name: "method", Usage: "hunting method"},
					&cli.StringFlag{Name: "version", Usage: "game version"},
					&cli.StringFlag{Name: "notes", Usage: "free-form notes"},
					&cli.StringFlag{Name: "found", Value: "now", Usage: `found time, e.g. "2024-05-01" or "last friday"`},
				},
				Action: a.addShiny,
			},
			{
				Name:      "delete",
				Usage:     "delete a shiny",
				ArgsUsage: "<id>",
				Action:    a.deleteShiny,
			},
		},
	}
}

func (a *app) listShinies(c *cli.Context) error {
	reg, err := a.registry()
	if err != nil {
		return err
	}

	f := store.ShinyFilter{
		Detached: c.Bool("detached"),
		Method:   c.String("method"),
	}
	if c.IsSet("species") {
		id, err := lookupSpecies(reg, "species", c.String("species"))
		if err != nil {
			return err
		}
		f.Species = &id
	}
	if c.IsSet("hunt") {
		f.HuntID = model.Ptr(c.Int64("hunt"))
	}

	s, err := a.openStore(c.Context)
	if err != nil {
		return err
	}
	defer s.Close()

	shinies, err := s.LoadAllShinies(c.Context, f)
	if err != nil {
		return err
	}
	return writeShinies(a.stdout, shinies, reg.Name)
}

func (a *app) addShiny(c *cli.Context) error {
	reg, err := a.registry()
	if err != nil {
		return err
	}
	id, err := lookupSpecies(reg, "species", c.String("species"))
	if err != nil {
		return err
	}
	found, err := parseTime(c.String("found"), time.Now())
	if err != nil {
		return err
	}

	sh := &model.Shiny{
		Species:   id,
		FoundTime: &found,
		Name:      optional(c, "name"),
		Place:     optional(c, "place"),
		Method:    optional(c, "method"),
		Version:   optional(c, "version"),
		Notes:     optional(c, "notes"),
	}
	if c.IsSet("gender") {
		g, err := parseGender(c.String("gender"))
		if err != nil {
			return err
		}
		sh.Gender = &g
	}
	if c.IsSet("hunt") {
		sh.HuntID = model.Ptr(c.Int64("hunt"))
	}
	if c.IsSet("encounters") {
		sh.TotalEncounters = model.Ptr(c.Int64("encounters"))
	}

	s, err := a.openStore(c.Context)
	if err != nil {
		return err
	}
	defer s.Close()

	saved, err := s.UpsertShiny(c.Context, sh)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Shiny %d recorded: %s\n", saved.ID, reg.Name(saved.Species))
	return nil
}

func (a *app) deleteShiny(c *cli.Context) error {
	id, err := argID(c, "shiny")
	if err != nil {
		return err
	}

	s, err := a.openStore(c.Context)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteShiny(c.Context, id); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Shiny %d deleted\n", id)
	return nil
}

func writeShinies(w io.Writer, shinies []*model.Shiny, names func(model.SpeciesID) string) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSPECIES\tNAME\tGENDER\tENCOUNTERS\tPHASE\tHUNT\tMETHOD\tFOUND")
	for _, sh := range shinies {
		gender := "-"
		if sh.Gender != nil {
			gender = sh.Gender.String()
		}
		name := "-"
		if sh.Name != nil {
			name = *sh.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			sh.ID, names(sh.Species), name, gender,
			formatInt(sh.TotalEncounters), formatInt(sh.PhaseNumber), formatInt(sh.HuntID),
			model.TextOrUnknown(sh.Method), formatTime(sh.FoundTime))
	}
	return tw.Flush()
}

func parseGender(s string) (model.Gender, error) {
	for _, g := range []model.Gender{model.GenderMale, model.GenderFemale, model.GenderGenderless} {
		if g.String() == s {
			return g, nil
		}
	}
	return 0, &model.ValidationError{Field: "gender", Message: fmt.Sprintf("unknown gender %q", s)}
}
