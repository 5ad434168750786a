// Package counter implements the encounter tally that can mirror a hunt's
// phase encounters.
//
// Counters are values. Every operation returns the next counter together with
// an Effect describing what has to happen to the bound hunt, so the caller can
// persist the hunt first and only then adopt the new counter.
package counter

import (
	"fmt"

	"github.com/erazemk/shutils/internal/model"
)

// DefaultStep is the increment step of a fresh counter.
const DefaultStep = 1

// Unbound is the HuntID of a counter that mirrors no hunt.
const Unbound int64 = 0

// Counter is an in-memory encounter tally.
type Counter struct {
	HuntID int64 `json:"hunt_id,omitempty"`
	Step   int64 `json:"step"`
	Count  int64 `json:"count"`
}

// New returns an unbound counter with the default step.
func New() Counter {
	return Counter{Step: DefaultStep}
}

// Bound reports whether the counter mirrors a hunt.
func (c Counter) Bound() bool {
	return c.HuntID != Unbound
}

// Increment adds the step to the count. A bound counter adds the same step to
// the hunt's phase encounters.
func (c Counter) Increment() (Counter, Effect, error) {
	next, ok := model.CheckedAdd(c.Count, c.Step)
	if !ok {
		return c, Effect{}, model.ErrOverflow
	}
	c.Count = max(next, 0)

	if !c.Bound() {
		return c, Effect{}, nil
	}
	return c, Effect{HuntID: c.HuntID, Op: OpAdd, Value: c.Step}, nil
}

// Decrement removes one encounter from the count unless it is already zero.
// The bound hunt gets its own floor check when the effect is applied, so a
// hunt at zero stays at zero whatever the count is.
func (c Counter) Decrement() (Counter, Effect) {
	if c.Count > 0 {
		c.Count--
	}

	if !c.Bound() {
		return c, Effect{}
	}
	return c, Effect{HuntID: c.HuntID, Op: OpAdd, Value: -1}
}

// Perform applies one edit action. Only SetCount on a bound counter produces
// an effect.
func (c Counter) Perform(a Action) (Counter, Effect, error) {
	switch a.Kind {
	case ActionSetHunt:
		if a.Value <= 0 {
			return c, Effect{}, &model.ValidationError{Field: "hunt_id", Message: "must be positive"}
		}
		c.HuntID = a.Value
		return c, Effect{}, nil
	case ActionUnsetHunt:
		c.HuntID = Unbound
		return c, Effect{}, nil
	case ActionSetIncrement:
		c.Step = a.Value
		return c, Effect{}, nil
	case ActionSetCount:
		c.Count = max(a.Value, 0)
		if !c.Bound() {
			return c, Effect{}, nil
		}
		return c, Effect{HuntID: c.HuntID, Op: OpSet, Value: c.Count}, nil
	default:
		return c, Effect{}, fmt.Errorf("unknown counter action %q", a.Kind)
	}
}

// Unbind returns the counter with its binding cleared.
func (c Counter) Unbind() Counter {
	c.HuntID = Unbound
	return c
}
