package tracker

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/erazemk/shutils/internal/metrics"
	"github.com/erazemk/shutils/internal/model"
)

// FoundDetails carries what the user enters when a shiny shows up. Species
// defaults to the hunt target and FoundTime to now.
type FoundDetails struct {
	Species   *model.SpeciesID `json:"species,omitempty"`
	Gender    *model.Gender    `json:"gender,omitempty"`
	Name      *string          `json:"name,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
	FoundTime *time.Time       `json:"found_time,omitempty"`
}

// FoundResult is the outcome of ShinyFound.
type FoundResult struct {
	Hunt  *model.Hunt  `json:"hunt"`
	Shiny *model.Shiny `json:"shiny"`
	// Completed is set when the shiny was the hunt target.
	Completed bool `json:"completed"`
}

// SaveShiny upserts sh and moves it under its hunt in memory.
func (t *Tracker) SaveShiny(ctx context.Context, sh *model.Shiny) (*model.Shiny, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	saved, err := t.store.UpsertShiny(ctx, sh)
	if err != nil {
		return nil, err
	}

	t.detachShiny(saved.ID)
	if saved.HuntID != nil {
		if h, ok := t.byID[*saved.HuntID]; ok {
			h.Shinies = append(h.Shinies, saved.Clone())
			slices.SortFunc(h.Shinies, func(a, b *model.Shiny) int { return cmp.Compare(a.ID, b.ID) })
		}
	}

	slog.Info("shiny saved", "shiny", saved.ID, "species", saved.Species)
	return saved, nil
}

// DeleteShiny removes the shiny with id.
func (t *Tracker) DeleteShiny(ctx context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.DeleteShiny(ctx, id); err != nil {
		return err
	}
	t.detachShiny(id)

	slog.Info("shiny deleted", "shiny", id)
	return nil
}

// ShinyFound records a shiny for the hunt counter i is bound to. The shiny
// snapshots the hunt's encounters. Finding the target completes the hunt and
// unbinds the counter; any other species starts a new phase.
func (t *Tracker) ShinyFound(ctx context.Context, i int, d FoundDetails) (res *FoundResult, err error) {
	defer func() { metrics.ObserveCounter("shiny_found", err) }()

	t.mu.Lock()
	defer t.mu.Unlock()

	c, err := t.resolve(i)
	if err != nil {
		return nil, err
	}
	if !c.Bound() {
		return nil, &model.ValidationError{Field: "counter", Message: fmt.Sprintf("counter %d is not bound to a hunt", i)}
	}
	h := t.byID[c.HuntID]

	found := t.now()
	if d.FoundTime != nil {
		found = d.FoundTime.UTC()
	}
	species := h.Target
	if d.Species != nil {
		species = *d.Species
	}

	sh := &model.Shiny{
		Species:         species,
		Gender:          d.Gender,
		Name:            d.Name,
		TotalEncounters: model.Ptr(h.TotalEncounters()),
		PhaseEncounters: model.Ptr(h.PhaseEncounters),
		PhaseNumber:     model.Ptr(h.PhaseCount),
		FoundTime:       &found,
		Version:         h.Version,
		Method:          h.Method,
		Place:           h.Place,
		Notes:           d.Notes,
	}

	updated := h.Clone()
	completed := species == h.Target
	if completed {
		updated.Completed = true
		updated.EndTime = &found
	} else if err := startPhase(updated); err != nil {
		return nil, err
	}

	savedHunt, savedShiny, err := t.store.RecordShiny(ctx, updated, sh)
	if err != nil {
		return nil, err
	}

	t.replace(h.ID, savedHunt)
	t.resetCountersFor(savedHunt.ID)
	if completed {
		for j, other := range t.counters {
			if other.HuntID == savedHunt.ID {
				t.counters[j] = other.Unbind()
			}
		}
	}
	metrics.ShiniesFound.Inc()

	slog.Info("shiny found",
		"hunt", savedHunt.ID,
		"species", species,
		"encounters", h.TotalEncounters(),
		"completed", completed,
	)
	return &FoundResult{Hunt: savedHunt.Clone(), Shiny: savedShiny, Completed: completed}, nil
}

func (t *Tracker) detachShiny(id int64) {
	for _, h := range t.hunts {
		h.Shinies = slices.DeleteFunc(h.Shinies, func(s *model.Shiny) bool { return s.ID == id })
	}
}
