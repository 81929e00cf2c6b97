package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/logger"
	"github.com/nathoo/adventcore/types"
)

var log = logger.For("loader")

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

var validConditionKinds = kindSet(types.ConditionKinds)

var validActionKinds = kindSet(types.ActionKinds)

func kindSet[K ~string](kinds []K) map[K]bool {
	m := make(map[K]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}

// validate checks the compiled defs for referential integrity. Errors are
// fatal; warnings are logged.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	rooms := map[string]bool{}
	for _, r := range defs.Rooms {
		if rooms[r.ID] {
			ve.errorf("duplicate room ID %q", r.ID)
		}
		rooms[r.ID] = true
	}
	items := map[string]bool{}
	for _, it := range defs.Items {
		if items[it.ID] {
			ve.errorf("duplicate item ID %q", it.ID)
		}
		items[it.ID] = true
	}
	eventIDs := map[string]bool{}
	for _, e := range defs.Events {
		if eventIDs[e.ID] {
			ve.errorf("duplicate event ID %q", e.ID)
		}
		eventIDs[e.ID] = true
	}
	timers := map[string]bool{}
	for _, t := range defs.Timers {
		if timers[t.Name] {
			ve.errorf("duplicate timer %q", t.Name)
		}
		timers[t.Name] = true
	}

	// Game metadata.
	if defs.Manifest.Title == "" {
		ve.errorf("Game.title is required")
	}
	if defs.Manifest.StartRoom == "" {
		ve.errorf("Game.start is required")
	} else if !rooms[defs.Manifest.StartRoom] {
		ve.errorf("start room %q not found in defined rooms", defs.Manifest.StartRoom)
	}

	// Exits.
	for _, r := range defs.Rooms {
		for _, ex := range r.Exits {
			if _, ok := types.ParseDirection(string(ex.Direction)); !ok {
				ve.errorf("room %q has exit with unknown direction %q", r.ID, ex.Direction)
			}
			if !rooms[ex.Destination] {
				ve.errorf("room %q exit %s points to undefined room %q", r.ID, ex.Direction, ex.Destination)
			}
		}
	}

	// Items.
	for _, it := range defs.Items {
		if !isLocation(it.Location, rooms) {
			ve.errorf("item %q has unknown location %q", it.ID, it.Location)
		}
		if it.CombineWith != "" && !items[it.CombineWith] {
			ve.warnf("item %q combines with undefined item %q", it.ID, it.CombineWith)
		}
		if it.CombineResult != "" && !items[it.CombineResult] {
			ve.warnf("item %q combine result %q is not a defined item", it.ID, it.CombineResult)
		}
	}

	// Events.
	for _, e := range defs.Events {
		if e.Room != "" && !rooms[e.Room] {
			ve.errorf("event %q references unknown room %q", e.ID, e.Room)
		}
		if e.Verb == "" && e.Noun != "" {
			ve.warnf("event %q has a noun but no verb; it runs every turn", e.ID)
		}
		for _, c := range e.Conditions {
			if !validConditionKinds[c.Kind] {
				ve.errorf("event %q has unknown condition kind %q", e.ID, c.Kind)
			}
		}
		for _, a := range e.Actions {
			if !validActionKinds[a.Kind] {
				ve.errorf("event %q has unknown action kind %q", e.ID, a.Kind)
				continue
			}
			validateAction(e.ID, a, rooms, items, timers, ve)
		}
	}

	// Timers.
	for _, t := range defs.Timers {
		if t.Counter == "" {
			ve.warnf("timer %q has no counter", t.Name)
		}
		if t.OnZeroEvent != "" && !eventIDs[t.OnZeroEvent] {
			ve.errorf("timer %q on_zero references unknown event %q", t.Name, t.OnZeroEvent)
		}
	}

	for _, w := range ve.Warnings {
		log.Warn(w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// validateAction warns about targets that would make an action a no-op.
func validateAction(eventID string, a types.Action, rooms, items, timers map[string]bool, ve *ValidationError) {
	switch a.Kind {
	case types.ActMoveItem:
		if !items[a.Target] {
			ve.warnf("event %q moves undefined item %q", eventID, a.Target)
		}
		if loc, _ := a.Value.(string); !isLocation(loc, rooms) {
			ve.warnf("event %q moves %q to unknown location %q", eventID, a.Target, loc)
		}
	case types.ActDestroyItem:
		if !items[a.Target] {
			ve.warnf("event %q destroys undefined item %q", eventID, a.Target)
		}
	case types.ActSwapItem:
		if !items[a.Target] {
			ve.warnf("event %q swaps undefined item %q", eventID, a.Target)
		}
		if repl, _ := a.Value.(string); !items[repl] {
			ve.warnf("event %q swaps in undefined item %q", eventID, repl)
		}
	case types.ActTeleport:
		if !rooms[a.Target] {
			ve.warnf("event %q teleports to undefined room %q", eventID, a.Target)
		}
	case types.ActEnableTimer, types.ActDisableTimer:
		if !timers[a.Target] {
			ve.warnf("event %q references undefined timer %q", eventID, a.Target)
		}
	}
}

func isLocation(loc string, rooms map[string]bool) bool {
	return loc == types.LocationCarried || loc == types.LocationDestroyed || rooms[loc]
}
