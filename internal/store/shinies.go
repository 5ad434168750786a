package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/erazemk/shutils/internal/metrics"
	"github.com/erazemk/shutils/internal/model"
)

// ShinyFilter narrows LoadAllShinies. Zero fields match everything.
type ShinyFilter struct {
	Species  *model.SpeciesID
	HuntID   *int64
	Detached bool
	Method   string
}

// LoadAllShinies returns shinies matching f, ordered by id.
func (s *Store) LoadAllShinies(ctx context.Context, f ShinyFilter) (shinies []*model.Shiny, err error) {
	defer metrics.ObserveStore("load_all_shinies", time.Now(), &err)

	q := s.db.NewSelect().Model(&shinies)
	if f.Species != nil {
		q = q.Where("s.species = ?", *f.Species)
	}
	if f.HuntID != nil {
		q = q.Where("s.hunt_id = ?", *f.HuntID)
	}
	if f.Detached {
		q = q.Where("s.hunt_id IS NULL")
	}
	if f.Method != "" {
		q = q.Where("s.method = ?", f.Method)
	}

	if err := q.OrderExpr("s.id ASC").Scan(ctx); err != nil {
		return nil, wrap("listing shinies", err)
	}
	return shinies, nil
}

// LoadShiny returns the shiny with id.
func (s *Store) LoadShiny(ctx context.Context, id int64) (shiny *model.Shiny, err error) {
	defer metrics.ObserveStore("load_shiny", time.Now(), &err)

	shiny, err = loadShiny(ctx, s.db, id)
	if err != nil {
		return nil, wrap("loading shiny", err)
	}
	return shiny, nil
}

// UpsertShiny updates the row with shiny.ID when it exists and inserts a new
// row otherwise, returning the stored row.
func (s *Store) UpsertShiny(ctx context.Context, shiny *model.Shiny) (saved *model.Shiny, err error) {
	defer metrics.ObserveStore("upsert_shiny", time.Now(), &err)

	if err := shiny.Validate(); err != nil {
		return nil, err
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := shiny.Clone()

		if row.HuntID != nil {
			ok, err := huntExists(ctx, tx, *row.HuntID)
			if err != nil {
				return err
			}
			if !ok {
				return notFound("hunt", *row.HuntID)
			}
		}

		exists, err := shinyExists(ctx, tx, row.ID)
		if err != nil {
			return err
		}

		if exists {
			_, err = tx.NewUpdate().Model(row).WherePK().Exec(ctx)
		} else {
			row.ID = 0
			_, err = tx.NewInsert().Model(row).Exec(ctx)
		}
		if err != nil {
			return err
		}

		saved, err = loadShiny(ctx, tx, row.ID)
		return err
	})
	if err != nil {
		return nil, wrap("saving shiny", err)
	}
	return saved, nil
}

// DeleteShiny removes the shiny with id together with its image.
func (s *Store) DeleteShiny(ctx context.Context, id int64) (err error) {
	defer metrics.ObserveStore("delete_shiny", time.Now(), &err)

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := shinyExists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("shiny", id)
		}

		_, err = tx.NewDelete().
			Model((*model.ShinyImage)(nil)).
			Where("shiny_id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*model.Shiny)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
	return wrap("deleting shiny", err)
}

func shinyExists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return db.NewSelect().Model((*model.Shiny)(nil)).Where("s.id = ?", id).Exists(ctx)
}

func loadShiny(ctx context.Context, db bun.IDB, id int64) (*model.Shiny, error) {
	shiny := new(model.Shiny)
	if err := db.NewSelect().Model(shiny).Where("s.id = ?", id).Scan(ctx); err != nil {
		return nil, err
	}
	return shiny, nil
}
