package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/erazemk/shutils/internal/model"
	"github.com/erazemk/shutils/internal/species"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func formatInt(n *int64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatInt(*n, 10)
}

// optional returns a pointer to the flag value, or nil when it was not set.
func optional(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	return model.Ptr(c.String(name))
}

func lookupSpecies(reg *species.Registry, field, s string) (model.SpeciesID, error) {
	id, ok := reg.Lookup(s)
	if !ok {
		return 0, &model.ValidationError{Field: field, Message: fmt.Sprintf("unknown species %q", s)}
	}
	return id, nil
}

// argID parses the first positional argument as a row id.
func argID(c *cli.Context, what string) (int64, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("expected one %s id", what)
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, c.Args().First())
	}
	return id, nil
}
