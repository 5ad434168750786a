package store

import (
	"context"
	"time"

	"github.com/erazemk/shutils/internal/metrics"
	"github.com/erazemk/shutils/internal/model"
)

// SetShinyImage stores or replaces the screenshot of a shiny.
func (s *Store) SetShinyImage(ctx context.Context, img *model.ShinyImage) (err error) {
	defer metrics.ObserveStore("set_shiny_image", time.Now(), &err)

	exists, err := shinyExists(ctx, s.db, img.ShinyID)
	if err != nil {
		return wrap("storing shiny image", err)
	}
	if !exists {
		return notFound("shiny", img.ShinyID)
	}

	row := *img
	row.UpdatedAt = time.Now().UTC()
	_, err = s.db.NewInsert().
		Model(&row).
		On("CONFLICT (shiny_id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("mime = EXCLUDED.mime").
		Set("width = EXCLUDED.width").
		Set("height = EXCLUDED.height").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return wrap("storing shiny image", err)
}

// LoadShinyImage returns the screenshot of a shiny.
func (s *Store) LoadShinyImage(ctx context.Context, shinyID int64) (img *model.ShinyImage, err error) {
	defer metrics.ObserveStore("load_shiny_image", time.Now(), &err)

	img = new(model.ShinyImage)
	if err := s.db.NewSelect().Model(img).Where("si.shiny_id = ?", shinyID).Scan(ctx); err != nil {
		return nil, wrap("loading shiny image", err)
	}
	return img, nil
}
