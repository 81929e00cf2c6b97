// Package effects applies event actions to the world and game state.
// Every action kind is one atomic operation. No action ever fails: an
// unknown target is a silent no-op.
package effects

import (
	"fmt"
	"strconv"

	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/engine/world"
	"github.com/nathoo/adventcore/types"
)

// Apply applies actions strictly in order and returns the emitted text.
func Apply(s *types.GameState, w *world.World, actions []types.Action) []string {
	var output []string

	for _, a := range actions {
		switch a.Kind {
		case types.ActMessage:
			output = append(output, toString(a.Value))

		case types.ActMoveItem:
			loc := toString(a.Value)
			if w.IsLocation(loc) {
				w.MoveItem(a.Target, loc)
			}

		case types.ActSetFlag, types.ActUnlockExit:
			// Exits are never mutated; unlocking sets the flag the exit tests.
			state.SetFlag(s, a.Target)

		case types.ActClearFlag:
			state.ClearFlag(s, a.Target)

		case types.ActIncCounter:
			state.IncCounter(s, a.Target, toInt(a.Value, 1))

		case types.ActDecCounter:
			state.DecCounter(s, a.Target, toInt(a.Value, 1))

		case types.ActSetCounter:
			state.SetCounter(s, a.Target, toInt(a.Value, 0))

		case types.ActTeleport:
			if _, ok := w.Room(a.Target); ok {
				EnterRoom(s, w, a.Target)
			}

		case types.ActAddScore:
			state.AddScore(s, toInt(a.Value, 0))

		case types.ActDestroyItem:
			w.DestroyItem(a.Target)

		case types.ActSwapItem:
			// target = old item, value = replacement item ID.
			if old, ok := w.Item(a.Target); ok {
				loc := old.Location
				w.DestroyItem(old.ID)
				w.MoveItem(toString(a.Value), loc)
			}

		case types.ActGameOver:
			s.GameOver = true
			won, _ := a.Value.(string)
			s.Won = won == "win"

		case types.ActEnableTimer:
			state.EnableTimer(s, a.Target)

		case types.ActDisableTimer:
			state.DisableTimer(s, a.Target)

		default:
			// Unknown action kind: ignored.
		}
	}

	return output
}

// EnterRoom moves the player into a room with first-visit bookkeeping:
// the room is marked visited and its visit flag, if any, is set.
// Returns true on the first visit.
func EnterRoom(s *types.GameState, w *world.World, roomID string) bool {
	first := state.EnterRoom(s, roomID)
	if room, ok := w.Room(roomID); ok && first && room.VisitFlag != "" {
		state.SetFlag(s, room.VisitFlag)
	}
	return first
}

// toString renders an action value as text. Nil becomes "".
func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int(val)) {
			return strconv.Itoa(int(val))
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// toInt converts an action value to int, using def when the value is absent
// or not numeric.
func toInt(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
		return def
	default:
		return def
	}
}
