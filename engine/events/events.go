// Package events owns the rule set and decides, each turn, which events
// fire and in what order. Effect application is delegated to effects.Apply.
package events

import (
	"github.com/sirupsen/logrus"

	"github.com/nathoo/adventcore/engine/effects"
	"github.com/nathoo/adventcore/engine/rules"
	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/engine/world"
	"github.com/nathoo/adventcore/logger"
	"github.com/nathoo/adventcore/types"
)

// Manager holds the priority-ordered events and the timer definitions.
type Manager struct {
	events []types.Event // descending priority, ties in authoring order
	index  map[string]*types.Event
	timers []types.Timer

	// OnFire, if set, is called with the ID of every event whose actions run.
	OnFire func(eventID string)

	log *logrus.Entry
}

// NewManager ranks the events and indexes events and timers.
func NewManager(evts []types.Event, timers []types.Timer) *Manager {
	m := &Manager{
		events: rules.Rank(evts),
		index:  make(map[string]*types.Event, len(evts)),
		timers: append([]types.Timer(nil), timers...),
		log:    logger.For("events"),
	}
	for i := range m.events {
		if _, dup := m.index[m.events[i].ID]; !dup {
			m.index[m.events[i].ID] = &m.events[i]
		}
	}
	return m
}

// DoneFlag is the synthetic flag recording that a once-event has fired.
func DoneFlag(eventID string) string {
	return "event_" + eventID + "_done"
}

// Event returns an event by ID.
func (m *Manager) Event(id string) (*types.Event, bool) {
	e, ok := m.index[id]
	return e, ok
}

// Events returns the events in dispatch order.
func (m *Manager) Events() []types.Event {
	return m.events
}

// TryCommandEvents fires at most one command event matching cmd: the first,
// in priority order, whose filters and conditions hold. It reports whether
// that event claims the built-in handler, plus its emitted text.
func (m *Manager) TryCommandEvents(cmd types.Command, s *types.GameState, w *world.World) (bool, []string) {
	for i := range m.events {
		e := &m.events[i]
		if !rules.MatchesCommand(*e, cmd, s.CurrentRoom) {
			continue
		}
		if !m.qualifies(e, s, w) {
			continue
		}

		output := m.fire(e, s, w)
		return e.OverrideBuiltin, output
	}
	return false, nil
}

// RunAutoEvents fires every auto-event whose filters and conditions hold.
// Each event is checked against the state left by the ones before it.
func (m *Manager) RunAutoEvents(s *types.GameState, w *world.World) []string {
	var output []string
	for i := range m.events {
		e := &m.events[i]
		if !rules.MatchesAuto(*e, s.CurrentRoom) {
			continue
		}
		if !m.qualifies(e, s, w) {
			continue
		}
		output = append(output, m.fire(e, s, w)...)
	}
	return output
}

// TickTimers advances every active timer, then runs the on-zero event of
// each timer that reached zero and stops it. On-zero events bypass all
// filters and conditions.
func (m *Manager) TickTimers(s *types.GameState, w *world.World) []string {
	var output []string

	for _, tick := range state.TickTimers(s) {
		if tick.Message != "" {
			output = append(output, tick.Message)
		}
		if tick.Value > 0 {
			continue
		}

		live := s.Timers[tick.Name]
		m.log.WithFields(logrus.Fields{
			"timer":   tick.Name,
			"on_zero": live.OnZeroEvent,
		}).Debug("timer expired")

		if live.OnZeroEvent != "" {
			if e, ok := m.Event(live.OnZeroEvent); ok {
				output = append(output, m.run(e, s, w)...)
			}
		}
		state.DisableTimer(s, tick.Name)
	}

	return output
}

// RegisterTimers snapshots every timer definition into the game state.
func (m *Manager) RegisterTimers(s *types.GameState) {
	for _, t := range m.timers {
		state.RegisterTimer(s, t)
	}
}

// qualifies checks the once-flag and the condition list.
func (m *Manager) qualifies(e *types.Event, s *types.GameState, w *world.World) bool {
	if e.Once && state.GetFlag(s, DoneFlag(e.ID)) {
		return false
	}
	return rules.EvaluateAll(e.Conditions, s, w)
}

// fire runs an event's actions and records its once-flag.
func (m *Manager) fire(e *types.Event, s *types.GameState, w *world.World) []string {
	output := m.run(e, s, w)
	if e.Once {
		state.SetFlag(s, DoneFlag(e.ID))
	}
	return output
}

// run applies an event's actions and notifies the observer.
func (m *Manager) run(e *types.Event, s *types.GameState, w *world.World) []string {
	m.log.WithFields(logrus.Fields{
		"event": e.ID,
		"verb":  e.Verb,
		"room":  s.CurrentRoom,
	}).Debug("event fired")

	if m.OnFire != nil {
		m.OnFire(e.ID)
	}
	return effects.Apply(s, w, e.Actions)
}
