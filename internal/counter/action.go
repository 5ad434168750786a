package counter

import (
	"fmt"
	"strings"
)

// ActionKind names a discrete counter edit.
type ActionKind string

// Counter edits.
const (
	ActionSetHunt      ActionKind = "set_hunt"
	ActionUnsetHunt    ActionKind = "unset_hunt"
	ActionSetIncrement ActionKind = "set_increment"
	ActionSetCount     ActionKind = "set_count"
)

// Action is one edit applied through Counter.Perform.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Value int64      `json:"value,omitempty"`
}

// SetHunt binds the counter to the hunt with id.
func SetHunt(id int64) Action { return Action{Kind: ActionSetHunt, Value: id} }

// UnsetHunt clears the binding.
func UnsetHunt() Action { return Action{Kind: ActionUnsetHunt} }

// SetIncrement changes the step.
func SetIncrement(step int64) Action { return Action{Kind: ActionSetIncrement, Value: step} }

// SetCount sets the count, reconciling a bound hunt to the same value.
func SetCount(v int64) Action { return Action{Kind: ActionSetCount, Value: v} }

// ParseActionKind accepts the kind names used on the wire and in the CLI.
func ParseActionKind(s string) (ActionKind, error) {
	k := ActionKind(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	switch k {
	case ActionSetHunt, ActionUnsetHunt, ActionSetIncrement, ActionSetCount:
		return k, nil
	}
	return "", fmt.Errorf("unknown counter action %q", s)
}
