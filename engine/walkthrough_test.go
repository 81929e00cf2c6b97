package engine

import (
	"testing"

	"github.com/nathoo/adventcore/loader"
	"github.com/nathoo/adventcore/types"
)

func loadVoidStation(t *testing.T) *Engine {
	t.Helper()
	defs, err := loader.Load("../games/void_station")
	if err != nil {
		t.Fatalf("loading void_station: %v", err)
	}
	return New(defs)
}

func TestVoidStation_Walkthrough(t *testing.T) {
	e := loadVoidStation(t)
	e.Start()

	commands := []string{
		"east",
		"take bar",
		"west",
		"use bar",
		"south",
		"take card",
		"south",
		"take flashlight",
		"open locker",
		"take cell",
		"use torch",
		"north",
		"down",
		"take adapter",
		"combine cell with adapter",
		"up",
		"use card",
		"east",
		"use battery",
		"north",
	}

	var last types.Result
	for _, cmd := range commands {
		if e.State.GameOver {
			t.Fatalf("game ended early before %q", cmd)
		}
		last = e.Step(cmd)
	}

	if !last.GameOver || !last.Won {
		t.Fatalf("expected a win, got GameOver=%v Won=%v output=%v", last.GameOver, last.Won, last.Output)
	}
	if e.State.Score != 100 {
		t.Errorf("score = %d, want 100", e.State.Score)
	}
	if e.State.Turns != 20 {
		t.Errorf("turns = %d, want 20", e.State.Turns)
	}
	if e.State.CurrentRoom != "escape_pod" {
		t.Errorf("room = %q", e.State.CurrentRoom)
	}
}

func TestVoidStation_ReactorCountdown(t *testing.T) {
	e := loadVoidStation(t)
	for _, cmd := range []string{
		"east", "take bar", "west", "use bar", "south",
		"take card", "use card",
	} {
		e.Step(cmd)
	}

	r := e.Step("east")
	if !outputContains(r.Output, "Reactor breach in 5...") {
		t.Fatalf("expected countdown, got %v", r.Output)
	}

	for i := 0; i < 4; i++ {
		r = e.Step("look")
		if r.GameOver {
			t.Fatalf("game ended after %d waits", i+1)
		}
	}

	r = e.Step("look")
	if !outputContains(r.Output, "The reactor breaches.") {
		t.Errorf("expected breach, got %v", r.Output)
	}
	if !r.GameOver || r.Won {
		t.Errorf("GameOver=%v Won=%v", r.GameOver, r.Won)
	}
}

func TestVoidStation_DarkRoom(t *testing.T) {
	e := loadVoidStation(t)
	for _, cmd := range []string{"east", "take bar", "west", "use bar", "south"} {
		e.Step(cmd)
	}

	r := e.Step("d")
	if !outputContains(r.Output, "too dark to see") {
		t.Errorf("expected dark description, got %v", r.Output)
	}
	if !outputContains(r.Output, "Something drips in the dark.") {
		t.Errorf("expected dark warning, got %v", r.Output)
	}
	if outputContains(r.Output, "adapter") {
		t.Error("items should be hidden in the dark")
	}
}

func TestVoidStation_PriorityAndFallThrough(t *testing.T) {
	e := loadVoidStation(t)

	r := e.Step("kick wall")
	if !outputContains(r.Output, "Your toe disagrees") {
		t.Errorf("cryo bay kick: %v", r.Output)
	}

	for _, cmd := range []string{"east", "take bar", "west", "use bar", "south"} {
		e.Step(cmd)
	}

	// The corridor event wins on priority but does not claim the verb,
	// and there is no built-in "kick".
	r = e.Step("kick wall")
	if len(r.Output) != 2 {
		t.Fatalf("output = %v", r.Output)
	}
	if r.Output[0] != "The corridor wall rings like a bell." {
		t.Errorf("first line = %q", r.Output[0])
	}
	if r.Output[1] != "I don't know how to 'kick'." {
		t.Errorf("second line = %q", r.Output[1])
	}
}

func TestVoidStation_LockedExit(t *testing.T) {
	e := loadVoidStation(t)
	r := e.Step("s")
	if len(r.Output) != 1 || r.Output[0] != "The cryo bay door is jammed shut." {
		t.Errorf("output = %v", r.Output)
	}
	if e.State.CurrentRoom != "cryo_bay" {
		t.Errorf("room = %q", e.State.CurrentRoom)
	}
}
