// Package resolve narrows a noun's candidate items by location. The world
// index may return several items for one noun; the first one in reach wins.
package resolve

import (
	"fmt"

	"github.com/nathoo/adventcore/engine/world"
	"github.com/nathoo/adventcore/types"
)

// NotFoundError indicates no candidate is in reach.
type NotFoundError struct {
	Noun string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("You don't see any '%s' here.", e.Noun)
}

// Visible returns the first candidate lying in the current room or carried.
func Visible(s *types.GameState, w *world.World, noun string) (*types.Item, error) {
	for _, it := range w.ResolveNoun(noun) {
		if it.Location == s.CurrentRoom || it.Location == types.LocationCarried {
			return it, nil
		}
	}
	return nil, &NotFoundError{Noun: noun}
}

// Carried returns the first candidate the player is carrying.
func Carried(w *world.World, noun string) (*types.Item, error) {
	for _, it := range w.ResolveNoun(noun) {
		if it.Location == types.LocationCarried {
			return it, nil
		}
	}
	return nil, &NotFoundError{Noun: noun}
}

// CarriedCandidates returns every carried candidate, in load order.
func CarriedCandidates(w *world.World, noun string) []*types.Item {
	var out []*types.Item
	for _, it := range w.ResolveNoun(noun) {
		if it.Location == types.LocationCarried {
			out = append(out, it)
		}
	}
	return out
}
