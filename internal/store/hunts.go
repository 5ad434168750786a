package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/erazemk/shutils/internal/metrics"
	"github.com/erazemk/shutils/internal/model"
)

// LoadAllHunts returns every hunt ordered by id, each with the shinies whose
// hunt_id points at it.
func (s *Store) LoadAllHunts(ctx context.Context) (hunts []*model.Hunt, err error) {
	defer metrics.ObserveStore("load_all_hunts", time.Now(), &err)

	if err := s.db.NewSelect().Model(&hunts).OrderExpr("h.id ASC").Scan(ctx); err != nil {
		return nil, wrap("listing hunts", err)
	}

	var shinies []*model.Shiny
	err = s.db.NewSelect().
		Model(&shinies).
		Where("s.hunt_id IS NOT NULL").
		OrderExpr("s.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, wrap("listing hunt shinies", err)
	}

	groupShinies(hunts, shinies)
	return hunts, nil
}

// LoadHunt returns the hunt with id and its shinies.
func (s *Store) LoadHunt(ctx context.Context, id int64) (h *model.Hunt, err error) {
	defer metrics.ObserveStore("load_hunt", time.Now(), &err)

	h, err = loadHunt(ctx, s.db, id)
	if err != nil {
		return nil, wrap("loading hunt", err)
	}
	return h, nil
}

// UpsertHunt updates the row with h.ID when it exists and inserts a new row
// otherwise. The returned hunt is the stored row and carries the id the
// caller must adopt.
func (s *Store) UpsertHunt(ctx context.Context, h *model.Hunt) (saved *model.Hunt, err error) {
	defer metrics.ObserveStore("upsert_hunt", time.Now(), &err)

	if err := h.Validate(); err != nil {
		return nil, err
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		id, err := upsertHunt(ctx, tx, h)
		if err != nil {
			return err
		}
		saved, err = loadHunt(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, wrap("saving hunt", err)
	}
	return saved, nil
}

// DeleteHunt removes the hunt with id. Shinies attributed to it are kept and
// detached.
func (s *Store) DeleteHunt(ctx context.Context, id int64) (err error) {
	defer metrics.ObserveStore("delete_hunt", time.Now(), &err)

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := huntExists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("hunt", id)
		}

		_, err = tx.NewUpdate().
			Model((*model.Shiny)(nil)).
			Set("hunt_id = NULL").
			Where("hunt_id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*model.Hunt)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
	return wrap("deleting hunt", err)
}

// RecordShiny stores the updated hunt and inserts shiny for it in one
// transaction. Both stored rows are returned.
func (s *Store) RecordShiny(ctx context.Context, h *model.Hunt, shiny *model.Shiny) (savedHunt *model.Hunt, savedShiny *model.Shiny, err error) {
	defer metrics.ObserveStore("record_shiny", time.Now(), &err)

	if err := h.Validate(); err != nil {
		return nil, nil, err
	}
	if err := shiny.Validate(); err != nil {
		return nil, nil, err
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := huntExists(ctx, tx, h.ID)
		if err != nil {
			return err
		}
		if !exists {
			return notFound("hunt", h.ID)
		}
		if _, err := upsertHunt(ctx, tx, h); err != nil {
			return err
		}

		row := shiny.Clone()
		row.ID = 0
		row.HuntID = model.Ptr(h.ID)
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return err
		}

		if savedShiny, err = loadShiny(ctx, tx, row.ID); err != nil {
			return err
		}
		savedHunt, err = loadHunt(ctx, tx, h.ID)
		return err
	})
	if err != nil {
		return nil, nil, wrap("recording shiny", err)
	}
	return savedHunt, savedShiny, nil
}

func upsertHunt(ctx context.Context, db bun.IDB, h *model.Hunt) (int64, error) {
	row := h.Clone()
	row.Shinies = nil

	exists, err := huntExists(ctx, db, row.ID)
	if err != nil {
		return 0, err
	}

	if exists {
		_, err = db.NewUpdate().Model(row).WherePK().Exec(ctx)
		return row.ID, err
	}

	row.ID = 0
	if _, err := db.NewInsert().Model(row).Exec(ctx); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func huntExists(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return db.NewSelect().Model((*model.Hunt)(nil)).Where("h.id = ?", id).Exists(ctx)
}

func loadHunt(ctx context.Context, db bun.IDB, id int64) (*model.Hunt, error) {
	h := new(model.Hunt)
	if err := db.NewSelect().Model(h).Where("h.id = ?", id).Scan(ctx); err != nil {
		return nil, err
	}

	var shinies []*model.Shiny
	err := db.NewSelect().
		Model(&shinies).
		Where("s.hunt_id = ?", id).
		OrderExpr("s.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	groupShinies([]*model.Hunt{h}, shinies)
	return h, nil
}

// groupShinies attaches every shiny to the hunt its hunt_id points at. Each
// hunt ends up with a non-nil slice.
func groupShinies(hunts []*model.Hunt, shinies []*model.Shiny) {
	byID := make(map[int64]*model.Hunt, len(hunts))
	for _, h := range hunts {
		h.Shinies = []*model.Shiny{}
		byID[h.ID] = h
	}
	for _, s := range shinies {
		if s.HuntID == nil {
			continue
		}
		if h, ok := byID[*s.HuntID]; ok {
			h.Shinies = append(h.Shinies, s)
		}
	}
}
