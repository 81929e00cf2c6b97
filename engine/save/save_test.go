package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/engine/world"
	"github.com/nathoo/adventcore/types"
)

var testManifest = types.Manifest{Title: "Test Game", Version: "1.0", MaxScore: 100, StartRoom: "room1"}

func freshWorld() *world.World {
	return world.New(
		[]types.Room{{ID: "room1"}, {ID: "room2"}},
		[]types.Item{
			{ID: "key", Location: "room1"},
			{ID: "sword", Location: "room1"},
		},
	)
}

func freshState() *types.GameState {
	s := state.New(testManifest)
	state.RegisterTimer(s, types.Timer{Name: "fuse", Counter: "fuse_count"})
	state.RegisterTimer(s, types.Timer{Name: "alarm", Counter: "alarm_count", Active: true})
	return s
}

func playedGame() (*types.GameState, *world.World) {
	s, w := freshState(), freshWorld()
	s.CurrentRoom = "room2"
	s.Visited["room2"] = true
	s.Score = 42
	s.Turns = 10
	state.SetFlag(s, "door_open")
	state.SetCounter(s, "health", 7)
	state.EnableTimer(s, "fuse")
	state.DisableTimer(s, "alarm")
	w.MoveItem("key", types.LocationCarried)
	return s, w
}

func TestRoundTrip(t *testing.T) {
	s, w := playedGame()

	raw, err := Marshal(Snapshot(s, w, testManifest))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	d, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	s2, w2 := freshState(), freshWorld()
	if err := Apply(s2, w2, d); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if s2.CurrentRoom != "room2" || s2.Score != 42 || s2.Turns != 10 {
		t.Errorf("room=%q score=%d turns=%d", s2.CurrentRoom, s2.Score, s2.Turns)
	}
	if !state.GetFlag(s2, "door_open") {
		t.Error("flag lost")
	}
	if state.GetCounter(s2, "health") != 7 {
		t.Error("counter lost")
	}
	if !reflect.DeepEqual(state.VisitedRooms(s2), []string{"room1", "room2"}) {
		t.Errorf("visited = %v", state.VisitedRooms(s2))
	}
	if !state.TimerActive(s2, "fuse") || state.TimerActive(s2, "alarm") {
		t.Errorf("timers = %v", state.ActiveTimers(s2))
	}
	if it, _ := w2.Item("key"); it.Location != types.LocationCarried {
		t.Errorf("key at %q", it.Location)
	}
	if it, _ := w2.Item("sword"); it.Location != "room1" {
		t.Errorf("sword at %q", it.Location)
	}
}

func TestSnapshot_Format(t *testing.T) {
	s, w := playedGame()
	raw, err := Marshal(Snapshot(s, w, testManifest))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if doc["game"] != "Test Game" || doc["version"] != "1.0" {
		t.Errorf("metadata = %v / %v", doc["game"], doc["version"])
	}
	st, ok := doc["state"].(map[string]any)
	if !ok {
		t.Fatal("missing state object")
	}
	if st["score"] != float64(42) {
		t.Errorf("score = %v", st["score"])
	}
	locs, ok := doc["item_locations"].(map[string]any)
	if !ok || locs["key"] != types.LocationCarried {
		t.Errorf("item_locations = %v", doc["item_locations"])
	}
}

func TestSnapshot_EmptyCollectionsAreNotNull(t *testing.T) {
	s := state.New(testManifest)
	raw, err := Marshal(Snapshot(s, world.New(nil, nil), testManifest))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if bytes.Contains(raw, []byte("null")) {
		t.Errorf("save contains null:\n%s", raw)
	}
	if _, err := Unmarshal(raw); err != nil {
		t.Errorf("fresh save should validate: %v", err)
	}
}

func TestUnmarshal_SchemaFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"version":`},
		{"missing state", `{"version":"1","game":"g","item_locations":{}}`},
		{"missing field in state", `{"version":"1","game":"g","item_locations":{},
			"state":{"current_room":"r","score":0,"flags":{},"counters":{},
			"visited":[],"active_timers":[],"game_over":false,"won":false}}`},
		{"wrong type", `{"version":"1","game":"g","item_locations":{},
			"state":{"current_room":"r","score":"lots","turns":0,"flags":{},"counters":{},
			"visited":[],"active_timers":[],"game_over":false,"won":false}}`},
		{"fractional counter", `{"version":"1","game":"g","item_locations":{},
			"state":{"current_room":"r","score":0,"turns":0,"flags":{},"counters":{"c":1.5},
			"visited":[],"active_timers":[],"game_over":false,"won":false}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestApply_IgnoresUnknownItemsAndTimers(t *testing.T) {
	s, w := freshState(), freshWorld()
	err := Apply(s, w, &Data{
		State: StateData{
			CurrentRoom:  "room1",
			ActiveTimers: []string{"ghost_timer"},
		},
		ItemLocations: map[string]string{"ghost": "room2"},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := w.Item("ghost"); ok {
		t.Error("unknown item must not be created")
	}
	if _, ok := s.Timers["ghost_timer"]; ok {
		t.Error("unknown timer must not be created")
	}
	if state.TimerActive(s, "alarm") {
		t.Error("timers missing from the save should stop")
	}
}

func TestApply_RejectsUnknownLocations(t *testing.T) {
	raw := []byte(`{
		"version": "1.0",
		"game": "Test Game",
		"state": {
			"current_room": "moon",
			"score": 5,
			"turns": 3,
			"game_over": false,
			"won": false,
			"flags": {"door_open": true},
			"counters": {},
			"visited": ["moon"],
			"active_timers": []
		},
		"item_locations": {"key": "somewhere_else", "sword": "room2"}
	}`)
	d, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	s, w := playedGame()
	before, _ := json.Marshal(Snapshot(s, w, testManifest))

	err = Apply(s, w, d)
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Apply err = %v, want *MismatchError", err)
	}
	if len(mismatch.Problems) != 2 {
		t.Errorf("problems = %v", mismatch.Problems)
	}
	for _, want := range []string{`"moon"`, `"somewhere_else"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}

	after, _ := json.Marshal(Snapshot(s, w, testManifest))
	if !bytes.Equal(before, after) {
		t.Errorf("state changed by rejected save:\nbefore %s\nafter  %s", before, after)
	}
}

func TestCheck(t *testing.T) {
	w := freshWorld()
	tests := []struct {
		name    string
		room    string
		items   map[string]string
		wantErr bool
	}{
		{"valid", "room2", map[string]string{"key": types.LocationCarried, "sword": types.LocationDestroyed}, false},
		{"unknown item is ignored", "room1", map[string]string{"ghost": "room1"}, false},
		{"unknown room", "attic", nil, true},
		{"empty room", "", nil, true},
		{"item in unknown room", "room1", map[string]string{"key": "attic"}, true},
		{"item with empty location", "room1", map[string]string{"key": ""}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(w, &Data{State: StateData{CurrentRoom: tt.room}, ItemLocations: tt.items})
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFile_RoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		name := "plain"
		if compress {
			name = "zstd"
		}
		t.Run(name, func(t *testing.T) {
			s, w := playedGame()
			path := filepath.Join(t.TempDir(), "nested", "slot.json")

			if err := WriteFile(path, Snapshot(s, w, testManifest), compress); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if got := bytes.HasPrefix(raw, zstdMagic); got != compress {
				t.Errorf("zstd magic present = %v, want %v", got, compress)
			}

			d, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if d.State.Score != 42 || d.ItemLocations["key"] != types.LocationCarried {
				t.Errorf("data = %+v", d)
			}
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrNoSave) {
		t.Errorf("err = %v, want ErrNoSave", err)
	}
}

func TestReadFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not a save"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFile(path)
	if err == nil || errors.Is(err, ErrNoSave) {
		t.Errorf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "parsing save") {
		t.Errorf("err = %v", err)
	}
}
