package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Gender is the optional gender marker of a shiny.
type Gender int64

// Genders, matching the stored integer codes.
const (
	GenderMale       Gender = 0
	GenderFemale     Gender = 1
	GenderGenderless Gender = 2
)

// String returns the lowercase name of the gender.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	case GenderGenderless:
		return "genderless"
	default:
		return "unknown"
	}
}

// Valid reports whether g is one of the known gender codes.
func (g Gender) Valid() bool {
	return g >= GenderMale && g <= GenderGenderless
}

// Shiny represents one found shiny, optionally attributed to a hunt.
type Shiny struct {
	bun.BaseModel `bun:"table:shinies,alias:s" json:"-"`

	ID              int64      `bun:"id,pk,autoincrement" json:"id"`
	Species         SpeciesID  `bun:"species,notnull" json:"species"`
	Gender          *Gender    `bun:"gender" json:"gender,omitempty"`
	Name            *string    `bun:"name" json:"name,omitempty"`
	TotalEncounters *int64     `bun:"total_encounters" json:"total_encounters,omitempty"`
	PhaseEncounters *int64     `bun:"phase_encounters" json:"phase_encounters,omitempty"`
	PhaseNumber     *int64     `bun:"phase_number" json:"phase_number,omitempty"`
	FoundTime       *time.Time `bun:"found_time" json:"found_time,omitempty"`
	Version         *string    `bun:"version" json:"version,omitempty"`
	Method          *string    `bun:"method" json:"method,omitempty"`
	Place           *string    `bun:"place" json:"place,omitempty"`
	Notes           *string    `bun:"notes" json:"notes,omitempty"`
	HuntID          *int64     `bun:"hunt_id" json:"hunt_id,omitempty"`
}

// Validate checks the invariants a shiny must hold before it is persisted.
func (s *Shiny) Validate() error {
	if s.Species < 0 {
		return &ValidationError{Field: "species", Message: "must not be negative"}
	}
	if s.Gender != nil && !s.Gender.Valid() {
		return &ValidationError{Field: "gender", Message: "unknown gender code"}
	}
	for field, v := range map[string]*int64{
		"total_encounters": s.TotalEncounters,
		"phase_encounters": s.PhaseEncounters,
		"phase_number":     s.PhaseNumber,
	} {
		if v != nil && *v < 0 {
			return &ValidationError{Field: field, Message: "must not be negative"}
		}
	}
	return nil
}

// Clone returns a deep copy of the shiny.
func (s *Shiny) Clone() *Shiny {
	c := *s
	if s.Gender != nil {
		g := *s.Gender
		c.Gender = &g
	}
	c.Name = cloneString(s.Name)
	c.TotalEncounters = cloneInt(s.TotalEncounters)
	c.PhaseEncounters = cloneInt(s.PhaseEncounters)
	c.PhaseNumber = cloneInt(s.PhaseNumber)
	c.FoundTime = cloneTime(s.FoundTime)
	c.Version = cloneString(s.Version)
	c.Method = cloneString(s.Method)
	c.Place = cloneString(s.Place)
	c.Notes = cloneString(s.Notes)
	c.HuntID = cloneInt(s.HuntID)
	return &c
}

// BelongsTo reports whether the shiny is attributed to the hunt with id.
func (s *Shiny) BelongsTo(id int64) bool {
	return s.HuntID != nil && *s.HuntID == id
}
