package model

import (
	"time"

	"github.com/uptrace/bun"
)

// ShinyImage is the stored screenshot of a shiny.
type ShinyImage struct {
	bun.BaseModel `bun:"table:shiny_images,alias:si"`

	ShinyID   int64     `bun:"shiny_id,pk"`
	Data      []byte    `bun:"data,notnull"`
	MIME      string    `bun:"mime,notnull"`
	Width     int       `bun:"width,notnull"`
	Height    int       `bun:"height,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
