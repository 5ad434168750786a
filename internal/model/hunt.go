package model

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// UnknownText is shown in place of a missing free-form field.
const UnknownText = "Inconnue"

// Hunt represents one shiny-hunting campaign for a target species.
type Hunt struct {
	bun.BaseModel `bun:"table:hunts,alias:h" json:"-"`

	ID                 int64      `bun:"id,pk,autoincrement" json:"id"`
	Target             SpeciesID  `bun:"target,notnull" json:"target"`
	PreviousEncounters int64      `bun:"previous_encounters,notnull" json:"previous_encounters"`
	PhaseEncounters    int64      `bun:"phase_encounters,notnull" json:"phase_encounters"`
	PhaseCount         int64      `bun:"phase_count,notnull" json:"phase_count"`
	StartTime          *time.Time `bun:"start_time" json:"start_time,omitempty"`
	EndTime            *time.Time `bun:"end_time" json:"end_time,omitempty"`
	Completed          bool       `bun:"completed,notnull" json:"completed"`
	Version            *string    `bun:"version" json:"version,omitempty"`
	Method             *string    `bun:"method" json:"method,omitempty"`
	Place              *string    `bun:"place" json:"place,omitempty"`
	Notes              *string    `bun:"notes" json:"notes,omitempty"`

	// Shinies is filled by the store, grouped by shinies.hunt_id.
	Shinies []*Shiny `bun:"-" json:"shinies"`
}

// NewHunt returns an unsaved hunt for target with the zero-state counters.
func NewHunt(target SpeciesID) *Hunt {
	return &Hunt{Target: target, PhaseCount: 1}
}

// TotalEncounters is the lifetime encounter count across every phase.
func (h *Hunt) TotalEncounters() int64 {
	return h.PreviousEncounters + h.PhaseEncounters
}

// Validate checks the invariants a hunt must hold before it is persisted.
func (h *Hunt) Validate() error {
	if h.PreviousEncounters < 0 {
		return &ValidationError{Field: "previous_encounters", Message: "must not be negative"}
	}
	if h.PhaseEncounters < 0 {
		return &ValidationError{Field: "phase_encounters", Message: "must not be negative"}
	}
	if h.PhaseCount < 1 {
		return &ValidationError{Field: "phase_count", Message: "must be at least 1"}
	}
	if h.Target < 0 {
		return &ValidationError{Field: "target", Message: "must not be negative"}
	}
	if h.StartTime != nil && h.EndTime != nil && h.EndTime.Before(*h.StartTime) {
		return &ValidationError{Field: "end_time", Message: "must not be before start_time"}
	}
	if _, ok := CheckedAdd(h.PreviousEncounters, h.PhaseEncounters); !ok {
		return ErrOverflow
	}
	return nil
}

// Clone returns a deep copy of the hunt, including its shinies.
func (h *Hunt) Clone() *Hunt {
	c := *h
	c.StartTime = cloneTime(h.StartTime)
	c.EndTime = cloneTime(h.EndTime)
	c.Version = cloneString(h.Version)
	c.Method = cloneString(h.Method)
	c.Place = cloneString(h.Place)
	c.Notes = cloneString(h.Notes)
	if h.Shinies != nil {
		c.Shinies = make([]*Shiny, len(h.Shinies))
		for i, s := range h.Shinies {
			c.Shinies[i] = s.Clone()
		}
	}
	return &c
}

// Label renders the short "species - place" caption for a hunt.
func (h *Hunt) Label(names func(SpeciesID) string) string {
	return fmt.Sprintf("%s - %s", names(h.Target), TextOrUnknown(h.Place))
}

// TextOrUnknown dereferences s, falling back to UnknownText.
func TextOrUnknown(s *string) string {
	if s == nil || *s == "" {
		return UnknownText
	}
	return *s
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(n *int64) *int64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
