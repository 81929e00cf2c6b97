// Package state manages the mutable game state: location, flags, counters,
// score and the live timer copies.
package state

import (
	"sort"
	"strconv"
	"strings"

	"github.com/nathoo/adventcore/types"
)

// Defs holds the immutable game definitions produced by the loader.
type Defs struct {
	Manifest   types.Manifest
	Rooms      []types.Room
	Items      []types.Item
	Events     []types.Event
	Timers     []types.Timer
	Vocabulary types.Vocabulary
}

// New creates a fresh game state at the manifest's start room.
// The start room counts as visited.
func New(m types.Manifest) *types.GameState {
	s := &types.GameState{
		CurrentRoom: m.StartRoom,
		MaxScore:    m.MaxScore,
		Flags:       map[string]bool{},
		Counters:    map[string]int{},
		Visited:     map[string]bool{},
		Timers:      map[string]*types.Timer{},
	}
	if m.StartRoom != "" {
		s.Visited[m.StartRoom] = true
	}
	return s
}

// SetFlag sets a flag to true.
func SetFlag(s *types.GameState, name string) {
	s.Flags[name] = true
}

// ClearFlag sets a flag to false.
func ClearFlag(s *types.GameState, name string) {
	s.Flags[name] = false
}

// GetFlag returns the value of a flag. Unset flags return false.
func GetFlag(s *types.GameState, name string) bool {
	return s.Flags[name]
}

// GetCounter returns the value of a counter. Unset counters return 0.
func GetCounter(s *types.GameState, name string) int {
	return s.Counters[name]
}

// SetCounter overwrites a counter.
func SetCounter(s *types.GameState, name string, value int) {
	s.Counters[name] = value
}

// IncCounter adds amount to a counter.
func IncCounter(s *types.GameState, name string, amount int) {
	s.Counters[name] += amount
}

// DecCounter subtracts amount from a counter.
func DecCounter(s *types.GameState, name string, amount int) {
	s.Counters[name] -= amount
}

// AddScore adds points to the score. Exceeding MaxScore is allowed.
func AddScore(s *types.GameState, points int) {
	s.Score += points
}

// EnterRoom moves the player and returns true on the first visit.
func EnterRoom(s *types.GameState, roomID string) bool {
	s.CurrentRoom = roomID
	first := !s.Visited[roomID]
	s.Visited[roomID] = true
	return first
}

// RegisterTimer stores a live copy of a timer definition.
func RegisterTimer(s *types.GameState, t types.Timer) {
	s.Timers[t.Name] = &t
}

// EnableTimer activates a registered timer. Unknown names are ignored.
func EnableTimer(s *types.GameState, name string) {
	if t, ok := s.Timers[name]; ok {
		t.Active = true
	}
}

// DisableTimer deactivates a registered timer. Unknown names are ignored.
func DisableTimer(s *types.GameState, name string) {
	if t, ok := s.Timers[name]; ok {
		t.Active = false
	}
}

// TimerActive reports whether a registered timer is running.
func TimerActive(s *types.GameState, name string) bool {
	t, ok := s.Timers[name]
	return ok && t.Active
}

// ActiveTimers returns the names of running timers, sorted.
func ActiveTimers(s *types.GameState) []string {
	var names []string
	for name, t := range s.Timers {
		if t.Active {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// TimerTick is the outcome of one timer decrement.
type TimerTick struct {
	Name    string
	Value   int
	Message string // rendered template; empty at or below zero
}

// TickTimers decrements the counter of every active timer by one, in timer
// name order, and reports the resulting values.
func TickTimers(s *types.GameState) []TimerTick {
	var ticks []TimerTick
	for _, name := range ActiveTimers(s) {
		t := s.Timers[name]
		DecCounter(s, t.Counter, 1)
		val := GetCounter(s, t.Counter)
		var msg string
		if t.MessageTemplate != "" && val > 0 {
			msg = RenderTemplate(t.MessageTemplate, val)
		}
		ticks = append(ticks, TimerTick{Name: name, Value: val, Message: msg})
	}
	return ticks
}

// RenderTemplate substitutes {value} in a timer message.
func RenderTemplate(tmpl string, value int) string {
	return strings.ReplaceAll(tmpl, "{value}", strconv.Itoa(value))
}

// VisitedRooms returns the visited room IDs, sorted.
func VisitedRooms(s *types.GameState) []string {
	rooms := make([]string, 0, len(s.Visited))
	for id, ok := range s.Visited {
		if ok {
			rooms = append(rooms, id)
		}
	}
	sort.Strings(rooms)
	return rooms
}
