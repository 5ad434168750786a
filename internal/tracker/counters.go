package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/erazemk/shutils/internal/counter"
	"github.com/erazemk/shutils/internal/metrics"
	"github.com/erazemk/shutils/internal/model"
)

// CounterView is a counter together with the value it displays.
type CounterView struct {
	Index int `json:"index"`
	counter.Counter
	// Value is the bound hunt's phase encounters when the binding resolves,
	// and the counter's own count otherwise.
	Value int64 `json:"value"`
}

// Counters returns a view of every counter.
func (t *Tracker) Counters() []CounterView {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]CounterView, len(t.counters))
	for i := range t.counters {
		out[i] = t.view(i)
	}
	return out
}

// Counter returns a view of counter i.
func (t *Tracker) Counter(i int) (CounterView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.checkIndex(i); err != nil {
		return CounterView{}, err
	}
	return t.view(i), nil
}

// Increment adds the step to counter i and to its bound hunt.
func (t *Tracker) Increment(ctx context.Context, i int) (view CounterView, err error) {
	defer func() { metrics.ObserveCounter("increment", err) }()

	t.mu.Lock()
	defer t.mu.Unlock()

	c, err := t.resolve(i)
	if err != nil {
		return CounterView{}, err
	}
	next, eff, err := c.Increment()
	if err != nil {
		return CounterView{}, err
	}
	next.HuntID = t.counters[i].HuntID

	if err := t.commit(ctx, i, next, eff); err != nil {
		return CounterView{}, err
	}
	return t.view(i), nil
}

// Decrement removes one encounter from counter i and from its bound hunt,
// each floored at zero.
func (t *Tracker) Decrement(ctx context.Context, i int) (view CounterView, err error) {
	defer func() { metrics.ObserveCounter("decrement", err) }()

	t.mu.Lock()
	defer t.mu.Unlock()

	c, err := t.resolve(i)
	if err != nil {
		return CounterView{}, err
	}
	next, eff := c.Decrement()
	next.HuntID = t.counters[i].HuntID

	if err := t.commit(ctx, i, next, eff); err != nil {
		return CounterView{}, err
	}
	return t.view(i), nil
}

// Perform applies an edit action to counter i. Binding requires the hunt to
// exist.
func (t *Tracker) Perform(ctx context.Context, i int, a counter.Action) (view CounterView, err error) {
	defer func() { metrics.ObserveCounter(string(a.Kind), err) }()

	t.mu.Lock()
	defer t.mu.Unlock()

	c, err := t.resolve(i)
	if err != nil {
		return CounterView{}, err
	}
	if a.Kind == counter.ActionSetHunt {
		if _, ok := t.byID[a.Value]; !ok {
			return CounterView{}, fmt.Errorf("hunt %d: %w", a.Value, model.ErrNotFound)
		}
	}

	next, eff, err := c.Perform(a)
	if err != nil {
		return CounterView{}, err
	}
	if a.Kind != counter.ActionSetHunt && a.Kind != counter.ActionUnsetHunt {
		next.HuntID = t.counters[i].HuntID
	}

	if err := t.commit(ctx, i, next, eff); err != nil {
		return CounterView{}, err
	}
	slog.Debug("counter edited", "counter", i, "action", a.Kind, "value", a.Value)
	return t.view(i), nil
}

// resolve returns counter i as it should act right now: a binding to a hunt
// that is not loaded is ignored for this operation.
func (t *Tracker) resolve(i int) (counter.Counter, error) {
	if err := t.checkIndex(i); err != nil {
		return counter.Counter{}, err
	}
	c := t.counters[i]
	if c.Bound() {
		if _, ok := t.byID[c.HuntID]; !ok {
			slog.Warn("counter bound to unknown hunt", "counter", i, "hunt", c.HuntID)
			c = c.Unbind()
		}
	}
	return c, nil
}

// commit applies eff to a copy of the bound hunt, persists it and only then
// adopts the stored hunt and the next counter state.
func (t *Tracker) commit(ctx context.Context, i int, next counter.Counter, eff counter.Effect) error {
	if eff.None() {
		t.counters[i] = next
		return nil
	}

	h, ok := t.byID[eff.HuntID]
	if !ok {
		return fmt.Errorf("hunt %d: %w", eff.HuntID, model.ErrNotFound)
	}

	updated := h.Clone()
	if err := eff.Apply(updated); err != nil {
		return err
	}

	saved, err := t.store.UpsertHunt(ctx, updated)
	if err != nil {
		return fmt.Errorf("saving hunt %d: %w", h.ID, err)
	}

	t.counters[i] = next
	t.replace(h.ID, saved)
	return nil
}

func (t *Tracker) view(i int) CounterView {
	c := t.counters[i]
	v := CounterView{Index: i, Counter: c, Value: c.Count}
	if c.Bound() {
		if h, ok := t.byID[c.HuntID]; ok {
			v.Value = h.PhaseEncounters
		}
	}
	return v
}

func (t *Tracker) checkIndex(i int) error {
	if i < 0 || i >= len(t.counters) {
		return fmt.Errorf("counter %d: %w", i, model.ErrNotFound)
	}
	return nil
}
