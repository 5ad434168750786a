package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/erazemk/shutils/internal/metrics"
	"github.com/erazemk/shutils/internal/model"
)

// ImportResult counts the rows an import created.
type ImportResult struct {
	Hunts   int `json:"hunts"`
	Shinies int `json:"shinies"`
}

// Import inserts hunts, their nested shinies and the detached shinies as new
// rows in one transaction. Incoming ids are ignored; nested shinies are
// attached to the id their hunt received.
func (s *Store) Import(ctx context.Context, hunts []*model.Hunt, detached []*model.Shiny) (res ImportResult, err error) {
	defer metrics.ObserveStore("import", time.Now(), &err)

	for _, h := range hunts {
		if err := h.Validate(); err != nil {
			return res, err
		}
		for _, sh := range h.Shinies {
			if err := sh.Validate(); err != nil {
				return res, err
			}
		}
	}
	for _, sh := range detached {
		if err := sh.Validate(); err != nil {
			return res, err
		}
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res = ImportResult{}

		for _, h := range hunts {
			row := h.Clone()
			row.ID = 0
			row.Shinies = nil
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return err
			}
			res.Hunts++

			for _, sh := range h.Shinies {
				if err := insertShiny(ctx, tx, sh, model.Ptr(row.ID)); err != nil {
					return err
				}
				res.Shinies++
			}
		}

		for _, sh := range detached {
			if err := insertShiny(ctx, tx, sh, nil); err != nil {
				return err
			}
			res.Shinies++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, wrap("importing", err)
	}
	return res, nil
}

func insertShiny(ctx context.Context, db bun.IDB, sh *model.Shiny, huntID *int64) error {
	row := sh.Clone()
	row.ID = 0
	row.HuntID = huntID
	_, err := db.NewInsert().Model(row).Exec(ctx)
	return err
}
