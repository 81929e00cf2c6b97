package effects

import (
	"reflect"
	"testing"

	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/engine/world"
	"github.com/nathoo/adventcore/types"
)

func testSetup() (*types.GameState, *world.World) {
	w := world.New(
		[]types.Room{
			{ID: "hall", Name: "Hall"},
			{ID: "vault", Name: "Vault", VisitFlag: "found_vault"},
		},
		[]types.Item{
			{ID: "key", Location: "hall"},
			{ID: "gold_key", Location: types.LocationDestroyed},
			{ID: "lamp", Location: types.LocationCarried},
		},
	)
	s := state.New(types.Manifest{StartRoom: "hall"})
	state.RegisterTimer(s, types.Timer{Name: "fuse", Counter: "fuse_count"})
	return s, w
}

func location(w *world.World, id string) string {
	it, _ := w.Item(id)
	return it.Location
}

func TestApply_MessagesInOrder(t *testing.T) {
	s, w := testSetup()
	out := Apply(s, w, []types.Action{
		{Kind: types.ActMessage, Value: "first"},
		{Kind: types.ActSetFlag, Target: "x"},
		{Kind: types.ActMessage, Value: "second"},
	})
	if !reflect.DeepEqual(out, []string{"first", "second"}) {
		t.Errorf("output = %v", out)
	}
}

func TestApply_Flags(t *testing.T) {
	s, w := testSetup()
	Apply(s, w, []types.Action{{Kind: types.ActSetFlag, Target: "door_open"}})
	if !state.GetFlag(s, "door_open") {
		t.Error("set_flag should set")
	}
	Apply(s, w, []types.Action{{Kind: types.ActClearFlag, Target: "door_open"}})
	if state.GetFlag(s, "door_open") {
		t.Error("clear_flag should clear")
	}
}

func TestApply_UnlockExitSetsFlag(t *testing.T) {
	s, w := testSetup()
	Apply(s, w, []types.Action{{Kind: types.ActUnlockExit, Target: "vault_open"}})
	if !state.GetFlag(s, "vault_open") {
		t.Error("unlock_exit should set its flag")
	}
}

func TestApply_Counters(t *testing.T) {
	tests := []struct {
		name   string
		action types.Action
		start  int
		want   int
	}{
		{"inc default", types.Action{Kind: types.ActIncCounter, Target: "c"}, 2, 3},
		{"inc amount", types.Action{Kind: types.ActIncCounter, Target: "c", Value: 5}, 2, 7},
		{"dec default", types.Action{Kind: types.ActDecCounter, Target: "c"}, 2, 1},
		{"dec below zero", types.Action{Kind: types.ActDecCounter, Target: "c", Value: 4}, 2, -2},
		{"set", types.Action{Kind: types.ActSetCounter, Target: "c", Value: 9}, 2, 9},
		{"set nil is zero", types.Action{Kind: types.ActSetCounter, Target: "c"}, 2, 0},
		{"set explicit zero", types.Action{Kind: types.ActSetCounter, Target: "c", Value: 0}, 2, 0},
		{"numeric string", types.Action{Kind: types.ActIncCounter, Target: "c", Value: "3"}, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w := testSetup()
			state.SetCounter(s, "c", tt.start)
			Apply(s, w, []types.Action{tt.action})
			if got := state.GetCounter(s, "c"); got != tt.want {
				t.Errorf("counter = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApply_MoveItem(t *testing.T) {
	s, w := testSetup()
	Apply(s, w, []types.Action{{Kind: types.ActMoveItem, Target: "key", Value: types.LocationCarried}})
	if got := location(w, "key"); got != types.LocationCarried {
		t.Errorf("key at %q", got)
	}
	Apply(s, w, []types.Action{{Kind: types.ActMoveItem, Target: "key", Value: "nowhere_room"}})
	if got := location(w, "key"); got != types.LocationCarried {
		t.Errorf("move to an unknown room should be ignored, key at %q", got)
	}
	Apply(s, w, []types.Action{{Kind: types.ActMoveItem, Target: "ghost", Value: "hall"}})
}

func TestApply_Teleport(t *testing.T) {
	s, w := testSetup()
	Apply(s, w, []types.Action{{Kind: types.ActTeleport, Target: "vault"}})
	if s.CurrentRoom != "vault" || !s.Visited["vault"] {
		t.Errorf("teleport: room %q visited %v", s.CurrentRoom, s.Visited)
	}
	if !state.GetFlag(s, "found_vault") {
		t.Error("first entry should set the room's visit flag")
	}

	Apply(s, w, []types.Action{{Kind: types.ActTeleport, Target: "void"}})
	if s.CurrentRoom != "vault" {
		t.Errorf("teleport to unknown room should be ignored, now in %q", s.CurrentRoom)
	}
}

func TestApply_AddScore(t *testing.T) {
	s, w := testSetup()
	Apply(s, w, []types.Action{
		{Kind: types.ActAddScore, Value: 25},
		{Kind: types.ActAddScore, Value: 10.0},
	})
	if s.Score != 35 {
		t.Errorf("score = %d, want 35", s.Score)
	}
}

func TestApply_DestroyAndSwap(t *testing.T) {
	s, w := testSetup()
	Apply(s, w, []types.Action{{Kind: types.ActSwapItem, Target: "key", Value: "gold_key"}})
	if got := location(w, "key"); got != types.LocationDestroyed {
		t.Errorf("key at %q", got)
	}
	if got := location(w, "gold_key"); got != "hall" {
		t.Errorf("gold_key at %q, want hall", got)
	}

	Apply(s, w, []types.Action{{Kind: types.ActDestroyItem, Target: "lamp"}})
	if got := location(w, "lamp"); got != types.LocationDestroyed {
		t.Errorf("lamp at %q", got)
	}
}

func TestApply_SwapDestroyedItemIsPermissive(t *testing.T) {
	s, w := testSetup()
	Apply(s, w, []types.Action{{Kind: types.ActSwapItem, Target: "gold_key", Value: "key"}})
	if got := location(w, "key"); got != types.LocationDestroyed {
		t.Errorf("replacement takes the old location, key at %q", got)
	}
}

func TestApply_GameOver(t *testing.T) {
	s, w := testSetup()
	Apply(s, w, []types.Action{{Kind: types.ActGameOver, Value: "win"}})
	if !s.GameOver || !s.Won {
		t.Errorf("win: over=%v won=%v", s.GameOver, s.Won)
	}

	s, w = testSetup()
	Apply(s, w, []types.Action{{Kind: types.ActGameOver, Value: "lose"}})
	if !s.GameOver || s.Won {
		t.Errorf("lose: over=%v won=%v", s.GameOver, s.Won)
	}
}

func TestApply_Timers(t *testing.T) {
	s, w := testSetup()
	Apply(s, w, []types.Action{{Kind: types.ActEnableTimer, Target: "fuse"}})
	if !state.TimerActive(s, "fuse") {
		t.Error("enable_timer should activate")
	}
	Apply(s, w, []types.Action{{Kind: types.ActDisableTimer, Target: "fuse"}})
	if state.TimerActive(s, "fuse") {
		t.Error("disable_timer should deactivate")
	}
	Apply(s, w, []types.Action{{Kind: types.ActEnableTimer, Target: "missing"}})
}

func TestApply_UnknownKindIgnored(t *testing.T) {
	s, w := testSetup()
	out := Apply(s, w, []types.Action{{Kind: "explode", Target: "hall"}})
	if len(out) != 0 {
		t.Errorf("output = %v", out)
	}
}

func TestEnterRoom_VisitFlagOnlyOnFirstVisit(t *testing.T) {
	s, w := testSetup()
	if !EnterRoom(s, w, "vault") {
		t.Error("first visit")
	}
	state.ClearFlag(s, "found_vault")
	if EnterRoom(s, w, "vault") {
		t.Error("second visit")
	}
	if state.GetFlag(s, "found_vault") {
		t.Error("visit flag is only set on the first entry")
	}
}
