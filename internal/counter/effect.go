package counter

import (
	"fmt"

	"github.com/erazemk/shutils/internal/model"
)

// Op is the kind of change an Effect makes to a hunt.
type Op int

// Effect operations.
const (
	OpNone Op = iota
	// OpAdd adds Value to the phase encounters, flooring the result at zero.
	OpAdd
	// OpSet sets the phase encounters to exactly Value.
	OpSet
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpAdd:
		return "add"
	case OpSet:
		return "set"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Effect describes what a counter operation does to its bound hunt.
type Effect struct {
	HuntID int64
	Op     Op
	Value  int64
}

// None reports whether the effect leaves every hunt untouched.
func (e Effect) None() bool {
	return e.Op == OpNone || e.HuntID == Unbound
}

// Apply reconciles h with the effect. h is left unchanged on error.
func (e Effect) Apply(h *model.Hunt) error {
	if e.None() {
		return nil
	}
	if h.ID != e.HuntID {
		return fmt.Errorf("effect for hunt %d applied to hunt %d", e.HuntID, h.ID)
	}

	switch e.Op {
	case OpAdd:
		next, ok := model.CheckedAdd(h.PhaseEncounters, e.Value)
		if !ok {
			return model.ErrOverflow
		}
		next = max(next, 0)
		if _, ok := model.CheckedAdd(h.PreviousEncounters, next); !ok {
			return model.ErrOverflow
		}
		h.PhaseEncounters = next
	case OpSet:
		next := max(e.Value, 0)
		if _, ok := model.CheckedAdd(h.PreviousEncounters, next); !ok {
			return model.ErrOverflow
		}
		h.PhaseEncounters = next
	default:
		return fmt.Errorf("unknown effect op %v", e.Op)
	}
	return nil
}
