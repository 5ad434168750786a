// Package report computes aggregate statistics over hunts and shinies.
package report

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/uptrace/bun"

	"github.com/erazemk/shutils/internal/model"
)

// builder renders SQLite placeholders.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Summary holds the headline totals.
type Summary struct {
	Hunts          int64 `json:"hunts"`
	ActiveHunts    int64 `json:"active_hunts"`
	CompletedHunts int64 `json:"completed_hunts"`
	Shinies        int64 `json:"shinies"`
	Encounters     int64 `json:"encounters"`
}

// SpeciesStats is the per-species breakdown of shinies.
type SpeciesStats struct {
	Species       model.SpeciesID `json:"species"`
	Name          string          `json:"name"`
	Shinies       int64           `json:"shinies"`
	AvgEncounters float64         `json:"avg_encounters"`
}

// MethodStats is the per-method breakdown of shinies.
type MethodStats struct {
	Method        string  `json:"method"`
	Shinies       int64   `json:"shinies"`
	AvgEncounters float64 `json:"avg_encounters"`
}

// Stats is the full report.
type Stats struct {
	Summary
	Species []SpeciesStats `json:"species"`
	Methods []MethodStats  `json:"methods"`
}

// Filter narrows a report. Zero values match everything.
type Filter struct {
	Version string
}

// Reporter runs the report queries.
type Reporter struct {
	db    bun.IDB
	names func(model.SpeciesID) string
}

// New returns a reporter over db. names resolves species ids for display.
func New(db bun.IDB, names func(model.SpeciesID) string) *Reporter {
	if names == nil {
		names = model.SpeciesID.String
	}
	return &Reporter{db: db, names: names}
}

// Stats computes the full report.
func (r *Reporter) Stats(ctx context.Context, f Filter) (*Stats, error) {
	var st Stats
	var err error

	if st.Summary, err = r.summary(ctx, f); err != nil {
		return nil, err
	}
	if st.Species, err = r.bySpecies(ctx, f); err != nil {
		return nil, err
	}
	if st.Methods, err = r.byMethod(ctx, f); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *Reporter) summary(ctx context.Context, f Filter) (Summary, error) {
	var s Summary

	hunts := f.apply(builder.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(CASE WHEN completed THEN 0 ELSE 1 END), 0)",
			"COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0)",
			"COALESCE(SUM(previous_encounters + phase_encounters), 0)",
		).
		From("hunts"))

	query, args, err := hunts.ToSql()
	if err != nil {
		return s, fmt.Errorf("building hunt summary: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.Hunts, &s.ActiveHunts, &s.CompletedHunts, &s.Encounters); err != nil {
		return s, &model.StoreError{Op: "report summary", Err: err}
	}

	shinies := f.apply(builder.Select("COUNT(*)").From("shinies"))
	query, args, err = shinies.ToSql()
	if err != nil {
		return s, fmt.Errorf("building shiny summary: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.Shinies); err != nil {
		return s, &model.StoreError{Op: "report summary", Err: err}
	}

	return s, nil
}

func (r *Reporter) bySpecies(ctx context.Context, f Filter) ([]SpeciesStats, error) {
	q := f.apply(builder.
		Select("species", "COUNT(*) AS shiny_count", "COALESCE(AVG(total_encounters), 0)").
		From("shinies").
		GroupBy("species").
		OrderBy("shiny_count DESC", "species ASC"))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building species report: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &model.StoreError{Op: "report species", Err: err}
	}
	defer rows.Close()

	out := []SpeciesStats{}
	for rows.Next() {
		var s SpeciesStats
		if err := rows.Scan(&s.Species, &s.Shinies, &s.AvgEncounters); err != nil {
			return nil, &model.StoreError{Op: "report species", Err: err}
		}
		s.Name = r.names(s.Species)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StoreError{Op: "report species", Err: err}
	}
	return out, nil
}

func (r *Reporter) byMethod(ctx context.Context, f Filter) ([]MethodStats, error) {
	q := f.apply(builder.
		Select().
		Column(squirrel.Expr("COALESCE(NULLIF(method, ''), ?) AS method_name", model.UnknownText)).
		Column("COUNT(*) AS shiny_count").
		Column("COALESCE(AVG(total_encounters), 0)").
		From("shinies").
		GroupBy("method_name").
		OrderBy("shiny_count DESC", "method_name ASC"))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building method report: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &model.StoreError{Op: "report methods", Err: err}
	}
	defer rows.Close()

	out := []MethodStats{}
	for rows.Next() {
		var m MethodStats
		if err := rows.Scan(&m.Method, &m.Shinies, &m.AvgEncounters); err != nil {
			return nil, &model.StoreError{Op: "report methods", Err: err}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StoreError{Op: "report methods", Err: err}
	}
	return out, nil
}

func (f Filter) apply(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	if f.Version != "" {
		q = q.Where(squirrel.Eq{"version": f.Version})
	}
	return q
}
