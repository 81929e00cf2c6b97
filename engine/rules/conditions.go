// Package rules evaluates event conditions and decides which events
// qualify for a turn.
package rules

import (
	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/engine/world"
	"github.com/nathoo/adventcore/types"
)

// Evaluate evaluates a single condition against the current state.
// It never mutates anything; unknown kinds evaluate to false.
func Evaluate(c types.Condition, s *types.GameState, w *world.World) bool {
	switch c.Kind {
	case types.CondCarrying:
		return itemAt(w, c.Target, types.LocationCarried)

	case types.CondNotCarrying:
		return !itemAt(w, c.Target, types.LocationCarried)

	case types.CondHere:
		return itemAt(w, c.Target, s.CurrentRoom)

	case types.CondNotHere:
		return !itemAt(w, c.Target, s.CurrentRoom)

	case types.CondInRoom:
		return s.CurrentRoom == c.Target

	case types.CondNotInRoom:
		return s.CurrentRoom != c.Target

	case types.CondFlagSet:
		return state.GetFlag(s, c.Target)

	case types.CondFlagUnset:
		return !state.GetFlag(s, c.Target)

	case types.CondCounterGE:
		return state.GetCounter(s, c.Target) >= c.Value

	case types.CondCounterLE:
		return state.GetCounter(s, c.Target) <= c.Value

	case types.CondCounterEQ:
		return state.GetCounter(s, c.Target) == c.Value

	case types.CondExists:
		it, ok := w.Item(c.Target)
		return ok && it.Location != types.LocationDestroyed

	default:
		return false
	}
}

// EvaluateAll returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvaluateAll(conditions []types.Condition, s *types.GameState, w *world.World) bool {
	for _, c := range conditions {
		if !Evaluate(c, s, w) {
			return false
		}
	}
	return true
}

// itemAt reports whether a known item sits at loc.
func itemAt(w *world.World, itemID, loc string) bool {
	it, ok := w.Item(itemID)
	return ok && it.Location == loc
}
