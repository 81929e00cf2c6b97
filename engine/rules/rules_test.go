package rules

import (
	"testing"

	"github.com/nathoo/adventcore/types"
)

func TestRank_DescendingPriorityStable(t *testing.T) {
	events := []types.Event{
		{ID: "low_a", Priority: 0},
		{ID: "high", Priority: 10},
		{ID: "low_b", Priority: 0},
		{ID: "mid", Priority: 5},
		{ID: "negative", Priority: -1},
	}

	ranked := Rank(events)

	want := []string{"high", "mid", "low_a", "low_b", "negative"}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].ID, id)
		}
	}
	if events[0].ID != "low_a" {
		t.Error("Rank must not reorder its input")
	}
}
