// Package save implements JSON serialization and deserialization of game state.
package save

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/engine/world"
	"github.com/nathoo/adventcore/types"
)

// Data is the JSON-serializable save format.
type Data struct {
	Version       string            `json:"version"`
	Game          string            `json:"game"`
	State         StateData         `json:"state"`
	ItemLocations map[string]string `json:"item_locations"`
}

// StateData is the persisted part of the game state.
type StateData struct {
	CurrentRoom  string          `json:"current_room"`
	Score        int             `json:"score"`
	Turns        int             `json:"turns"`
	Flags        map[string]bool `json:"flags"`
	Counters     map[string]int  `json:"counters"`
	Visited      []string        `json:"visited"`
	ActiveTimers []string        `json:"active_timers"`
	GameOver     bool            `json:"game_over"`
	Won          bool            `json:"won"`
}

const schemaURL = "https://github.com/nathoo/adventcore/save.schema.json"

const schemaJSON = `{
  "type": "object",
  "required": ["version", "game", "state", "item_locations"],
  "properties": {
    "version": {"type": "string"},
    "game": {"type": "string"},
    "state": {
      "type": "object",
      "required": ["current_room", "score", "turns", "flags", "counters",
                   "visited", "active_timers", "game_over", "won"],
      "properties": {
        "current_room": {"type": "string", "minLength": 1},
        "score": {"type": "integer"},
        "turns": {"type": "integer", "minimum": 0},
        "flags": {"type": "object", "additionalProperties": {"type": "boolean"}},
        "counters": {"type": "object", "additionalProperties": {"type": "integer"}},
        "visited": {"type": "array", "items": {"type": "string"}},
        "active_timers": {"type": "array", "items": {"type": "string"}},
        "game_over": {"type": "boolean"},
        "won": {"type": "boolean"}
      }
    },
    "item_locations": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    }
  }
}`

var schema = jsonschema.MustCompileString(schemaURL, schemaJSON)

// Snapshot captures the game state and every item location.
func Snapshot(s *types.GameState, w *world.World, m types.Manifest) *Data {
	flags := make(map[string]bool, len(s.Flags))
	for k, v := range s.Flags {
		flags[k] = v
	}
	counters := make(map[string]int, len(s.Counters))
	for k, v := range s.Counters {
		counters[k] = v
	}
	timers := state.ActiveTimers(s)
	if timers == nil {
		timers = []string{}
	}

	locations := map[string]string{}
	for _, it := range w.Items() {
		locations[it.ID] = it.Location
	}

	return &Data{
		Version: m.Version,
		Game:    m.Title,
		State: StateData{
			CurrentRoom:  s.CurrentRoom,
			Score:        s.Score,
			Turns:        s.Turns,
			Flags:        flags,
			Counters:     counters,
			Visited:      state.VisitedRooms(s),
			ActiveTimers: timers,
			GameOver:     s.GameOver,
			Won:          s.Won,
		},
		ItemLocations: locations,
	}
}

// Marshal serializes save data to indented JSON.
func Marshal(d *Data) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal validates raw JSON against the save schema and decodes it.
func Unmarshal(raw []byte) (*Data, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing save: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid save: %w", err)
	}

	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decoding save: %w", err)
	}
	// Ensure maps are never nil after load.
	if d.State.Flags == nil {
		d.State.Flags = map[string]bool{}
	}
	if d.State.Counters == nil {
		d.State.Counters = map[string]int{}
	}
	if d.ItemLocations == nil {
		d.ItemLocations = map[string]string{}
	}
	return &d, nil
}

// MismatchError reports saved data that does not fit the loaded world.
type MismatchError struct {
	Problems []string
}

func (e *MismatchError) Error() string {
	return "save does not match this game: " + strings.Join(e.Problems, "; ")
}

// Check verifies that the saved room is a known room and every saved item
// location is a room or a sentinel. Unknown item IDs are not checked.
func Check(w *world.World, d *Data) error {
	var problems []string
	if _, ok := w.Room(d.State.CurrentRoom); !ok {
		problems = append(problems, fmt.Sprintf("unknown current room %q", d.State.CurrentRoom))
	}

	ids := make([]string, 0, len(d.ItemLocations))
	for id := range d.ItemLocations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if loc := d.ItemLocations[id]; !w.IsLocation(loc) {
			problems = append(problems, fmt.Sprintf("item %q at unknown location %q", id, loc))
		}
	}

	if len(problems) > 0 {
		return &MismatchError{Problems: problems}
	}
	return nil
}

// Apply overwrites the state and item locations with saved data. Timers
// must already be registered; those named in the save become active and
// all others stop. Unknown items and timers are ignored. Nothing is
// changed when Check fails.
func Apply(s *types.GameState, w *world.World, d *Data) error {
	if err := Check(w, d); err != nil {
		return err
	}

	s.CurrentRoom = d.State.CurrentRoom
	s.Score = d.State.Score
	s.Turns = d.State.Turns
	s.GameOver = d.State.GameOver
	s.Won = d.State.Won

	s.Flags = make(map[string]bool, len(d.State.Flags))
	for k, v := range d.State.Flags {
		s.Flags[k] = v
	}
	s.Counters = make(map[string]int, len(d.State.Counters))
	for k, v := range d.State.Counters {
		s.Counters[k] = v
	}
	s.Visited = make(map[string]bool, len(d.State.Visited))
	for _, id := range d.State.Visited {
		s.Visited[id] = true
	}

	for name := range s.Timers {
		state.DisableTimer(s, name)
	}
	for _, name := range d.State.ActiveTimers {
		state.EnableTimer(s, name)
	}

	for id, loc := range d.ItemLocations {
		w.MoveItem(id, loc)
	}
	return nil
}
