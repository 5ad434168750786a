// Package tracker holds the application state: the hunts loaded from the
// store and the fixed set of counters. Every change is persisted through the
// store before the in-memory state is updated.
package tracker

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/erazemk/shutils/internal/counter"
	"github.com/erazemk/shutils/internal/metrics"
	"github.com/erazemk/shutils/internal/model"
	"github.com/erazemk/shutils/internal/store"
)

// DefaultCounters is the number of counters a tracker starts with.
const DefaultCounters = 4

// Tracker owns the in-memory hunts and counters. It is safe for concurrent
// use.
type Tracker struct {
	mu       sync.Mutex
	store    *store.Store
	hunts    []*model.Hunt
	byID     map[int64]*model.Hunt
	counters []counter.Counter
	now      func() time.Time
}

// New returns a tracker with n unbound counters. Call Load before use.
func New(s *store.Store, n int) *Tracker {
	if n <= 0 {
		n = DefaultCounters
	}
	counters := make([]counter.Counter, n)
	for i := range counters {
		counters[i] = counter.New()
	}
	return &Tracker{
		store:    s,
		byID:     make(map[int64]*model.Hunt),
		counters: counters,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Load replaces the in-memory hunts with the stored ones.
func (t *Tracker) Load(ctx context.Context) error {
	hunts, err := t.store.LoadAllHunts(ctx)
	if err != nil {
		return fmt.Errorf("loading hunts: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.hunts = hunts
	t.byID = make(map[int64]*model.Hunt, len(hunts))
	for _, h := range hunts {
		t.byID[h.ID] = h
	}
	metrics.HuntsLoaded.Set(float64(len(hunts)))
	slog.Info("hunts loaded", "count", len(hunts))
	return nil
}

// Store returns the underlying store.
func (t *Tracker) Store() *store.Store {
	return t.store
}

// Hunts returns copies of every hunt, ordered by id.
func (t *Tracker) Hunts() []*model.Hunt {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*model.Hunt, len(t.hunts))
	for i, h := range t.hunts {
		out[i] = h.Clone()
	}
	return out
}

// Hunt returns a copy of the hunt with id.
func (t *Tracker) Hunt(id int64) (*model.Hunt, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.byID[id]
	if !ok {
		return nil, fmt.Errorf("hunt %d: %w", id, model.ErrNotFound)
	}
	return h.Clone(), nil
}

// SaveHunt upserts h and returns the stored row. A new hunt gets the id
// assigned by the store.
func (t *Tracker) SaveHunt(ctx context.Context, h *model.Hunt) (*model.Hunt, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	saved, err := t.store.UpsertHunt(ctx, h)
	if err != nil {
		return nil, err
	}

	oldID := h.ID
	if _, known := t.byID[oldID]; !known {
		oldID = saved.ID
	}
	t.replace(oldID, saved)

	slog.Info("hunt saved", "hunt", saved.ID, "target", saved.Target)
	return saved.Clone(), nil
}

// DeleteHunt removes the hunt with id and unbinds every counter bound to it.
// Its shinies are kept without a hunt.
func (t *Tracker) DeleteHunt(ctx context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.DeleteHunt(ctx, id); err != nil {
		return err
	}

	t.remove(id)
	for i, c := range t.counters {
		if c.HuntID == id {
			t.counters[i] = c.Unbind()
		}
	}

	slog.Info("hunt deleted", "hunt", id)
	return nil
}

// NewPhase closes the current phase of a hunt without recording a shiny.
// Counters bound to the hunt restart at zero.
func (t *Tracker) NewPhase(ctx context.Context, huntID int64) (*model.Hunt, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.byID[huntID]
	if !ok {
		return nil, fmt.Errorf("hunt %d: %w", huntID, model.ErrNotFound)
	}

	updated := h.Clone()
	if err := startPhase(updated); err != nil {
		return nil, err
	}

	saved, err := t.store.UpsertHunt(ctx, updated)
	if err != nil {
		return nil, err
	}
	t.replace(huntID, saved)
	t.resetCountersFor(saved.ID)

	slog.Info("new phase started", "hunt", saved.ID, "phase", saved.PhaseCount)
	return saved.Clone(), nil
}

// replace swaps the hunt stored under oldID for saved, or appends saved when
// oldID is unknown. Counters bound to oldID follow the new id.
func (t *Tracker) replace(oldID int64, saved *model.Hunt) {
	if i := t.indexOf(oldID); i >= 0 {
		t.hunts[i] = saved
	} else {
		t.hunts = append(t.hunts, saved)
	}

	if oldID != saved.ID {
		delete(t.byID, oldID)
		for i, c := range t.counters {
			if c.HuntID == oldID {
				t.counters[i].HuntID = saved.ID
			}
		}
	}
	slices.SortFunc(t.hunts, func(a, b *model.Hunt) int { return cmp.Compare(a.ID, b.ID) })
	t.byID[saved.ID] = saved
	metrics.HuntsLoaded.Set(float64(len(t.hunts)))
}

func (t *Tracker) remove(id int64) {
	if i := t.indexOf(id); i >= 0 {
		t.hunts = slices.Delete(t.hunts, i, i+1)
	}
	delete(t.byID, id)
	metrics.HuntsLoaded.Set(float64(len(t.hunts)))
}

func (t *Tracker) indexOf(id int64) int {
	return slices.IndexFunc(t.hunts, func(h *model.Hunt) bool { return h.ID == id })
}

func (t *Tracker) resetCountersFor(huntID int64) {
	for i, c := range t.counters {
		if c.HuntID == huntID {
			t.counters[i].Count = 0
		}
	}
}

// startPhase moves the phase encounters into the previous encounters and
// opens the next phase.
func startPhase(h *model.Hunt) error {
	prev, ok := model.CheckedAdd(h.PreviousEncounters, h.PhaseEncounters)
	if !ok {
		return model.ErrOverflow
	}
	count, ok := model.CheckedAdd(h.PhaseCount, 1)
	if !ok {
		return model.ErrOverflow
	}
	h.PreviousEncounters = prev
	h.PhaseEncounters = 0
	h.PhaseCount = count
	return nil
}
