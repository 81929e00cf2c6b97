// Package builtin provides the default verb behavior used when no command
// event claims the turn.
package builtin

import (
	"fmt"
	"strings"

	"github.com/nathoo/adventcore/engine/effects"
	"github.com/nathoo/adventcore/engine/resolve"
	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/engine/world"
	"github.com/nathoo/adventcore/types"
)

// InventoryCapacity is the number of items the player can carry.
const InventoryCapacity = 10

// LightFlag is the flag that lets the player see in dark rooms.
const LightFlag = "has_light"

// Handler runs a built-in verb and returns the emitted text.
type Handler func(cmd types.Command, s *types.GameState, w *world.World) []string

var handlers = map[string]Handler{
	"go":        Go,
	"look":      Look,
	"examine":   Examine,
	"take":      Take,
	"drop":      Drop,
	"inventory": Inventory,
	"use":       Use,
	"combine":   Combine,
	"score":     Score,
}

// Lookup returns the built-in handler for a verb.
func Lookup(verb string) (Handler, bool) {
	h, ok := handlers[verb]
	return h, ok
}

// Verbs returns the verbs that have built-in handlers.
func Verbs() []string {
	return []string{"go", "look", "examine", "take", "drop", "inventory", "use", "combine", "score"}
}

// Go moves the player through an exit and describes the new room.
func Go(cmd types.Command, s *types.GameState, w *world.World) []string {
	if cmd.Noun == "" {
		return []string{"Go where?"}
	}

	dir, ok := types.ParseDirection(cmd.Noun)
	if !ok {
		return []string{fmt.Sprintf("I don't understand the direction '%s'.", cmd.Noun)}
	}

	room, ok := w.Room(s.CurrentRoom)
	if !ok {
		return []string{"You seem to be nowhere at all."}
	}

	exit, ok := w.FindExit(room, dir)
	if !ok {
		return []string{"You can't go that way."}
	}

	if !ExitOpen(*exit, s) {
		msg := exit.LockMessage
		if msg == "" {
			msg = types.DefaultLockMessage
		}
		return []string{msg}
	}

	dest, ok := w.Room(exit.Destination)
	if !ok {
		return []string{"That way leads nowhere."}
	}

	first := effects.EnterRoom(s, w, dest.ID)
	return DescribeRoom(dest, s, w, first)
}

// ExitOpen reports whether an exit can be passed: it is unlocked, or its
// lock flag is set.
func ExitOpen(e types.Exit, s *types.GameState) bool {
	if !e.Locked {
		return true
	}
	return e.LockFlag != "" && state.GetFlag(s, e.LockFlag)
}

// Look describes the current room.
func Look(cmd types.Command, s *types.GameState, w *world.World) []string {
	room, ok := w.Room(s.CurrentRoom)
	if !ok {
		return []string{"You see nothing."}
	}
	return DescribeRoom(room, s, w, false)
}

// DescribeRoom produces the standard room description. A dark room shows
// only its dark description unless the player has light.
func DescribeRoom(room *types.Room, s *types.GameState, w *world.World, firstVisit bool) []string {
	if room.Dark && !state.GetFlag(s, LightFlag) {
		desc := room.DarkDescription
		if desc == "" {
			desc = types.DefaultDarkDescription
		}
		return []string{desc}
	}

	output := []string{
		fmt.Sprintf("--- %s ---", room.Name),
		room.Description,
	}

	if firstVisit && room.FirstVisitText != "" {
		output = append(output, room.FirstVisitText)
	}

	for _, it := range w.ItemsInRoom(room.ID) {
		if it.RoomDescription != "" {
			output = append(output, it.RoomDescription)
		}
	}

	var exits []string
	for _, e := range room.Exits {
		label := capitalize(string(e.Direction))
		if !ExitOpen(e, s) {
			label += " (locked)"
		}
		exits = append(exits, label)
	}
	if len(exits) > 0 {
		output = append(output, "Exits: "+strings.Join(exits, ", "))
	}

	return output
}

// Examine shows the description of the first candidate in reach.
func Examine(cmd types.Command, s *types.GameState, w *world.World) []string {
	if cmd.Noun == "" {
		return []string{"Examine what?"}
	}
	it, err := resolve.Visible(s, w, cmd.Noun)
	if err != nil {
		return []string{err.Error()}
	}
	return []string{it.Description}
}

// Take picks up the first candidate lying in the current room.
func Take(cmd types.Command, s *types.GameState, w *world.World) []string {
	if cmd.Noun == "" {
		return []string{"Take what?"}
	}

	for _, it := range w.ResolveNoun(cmd.Noun) {
		if it.Location == s.CurrentRoom {
			if !it.Takeable {
				return []string{fmt.Sprintf("You can't take the %s.", it.Name)}
			}
			if len(w.ItemsInInventory()) >= InventoryCapacity {
				return []string{"You're carrying too much already."}
			}
			w.MoveItem(it.ID, types.LocationCarried)
			return []string{"Taken: " + it.Name}
		}
		if it.Location == types.LocationCarried {
			return []string{"You already have that."}
		}
	}

	return []string{(&resolve.NotFoundError{Noun: cmd.Noun}).Error()}
}

// Drop puts the first carried candidate down in the current room.
func Drop(cmd types.Command, s *types.GameState, w *world.World) []string {
	if cmd.Noun == "" {
		return []string{"Drop what?"}
	}
	it, err := resolve.Carried(w, cmd.Noun)
	if err != nil {
		return []string{"You're not carrying that."}
	}
	w.MoveItem(it.ID, s.CurrentRoom)
	return []string{"Dropped: " + it.Name}
}

// Inventory lists the carried items.
func Inventory(cmd types.Command, s *types.GameState, w *world.World) []string {
	items := w.ItemsInInventory()
	if len(items) == 0 {
		return []string{"You aren't carrying anything."}
	}
	output := []string{"You are carrying:"}
	for _, it := range items {
		output = append(output, "  - "+it.Name)
	}
	return output
}

// Use is the generic fallback; real USE behavior comes from events.
func Use(cmd types.Command, s *types.GameState, w *world.World) []string {
	if cmd.Noun == "" {
		return []string{"Use what?"}
	}
	return []string{"You're not sure how to use that here."}
}

// Combine merges two carried items that declare each other as partners.
func Combine(cmd types.Command, s *types.GameState, w *world.World) []string {
	if cmd.Noun == "" {
		return []string{"Combine what with what?"}
	}

	parts := strings.Split(cmd.Noun, " with ")
	if len(parts) != 2 {
		return []string{"Try: COMBINE <item> WITH <item>"}
	}

	left := resolve.CarriedCandidates(w, strings.TrimSpace(parts[0]))
	right := resolve.CarriedCandidates(w, strings.TrimSpace(parts[1]))

	for _, a := range left {
		for _, b := range right {
			if a.CombineWith == b.ID && a.CombineResult != "" {
				return combine(w, a, b, a)
			}
			if b.CombineWith == a.ID && b.CombineResult != "" {
				return combine(w, a, b, b)
			}
		}
	}

	return []string{"Those items can't be combined."}
}

// combine destroys a and b and gives the player owner's combine result.
func combine(w *world.World, a, b, owner *types.Item) []string {
	w.DestroyItem(a.ID)
	w.DestroyItem(b.ID)
	w.MoveItem(owner.CombineResult, types.LocationCarried)

	msg := owner.CombineMessage
	if msg == "" {
		msg = fmt.Sprintf("You combine the %s and %s.", a.Name, b.Name)
	}
	if result, ok := w.Item(owner.CombineResult); ok {
		msg += " You now have: " + result.Name
	}
	return []string{msg}
}

// Score reports score and turn count.
func Score(cmd types.Command, s *types.GameState, w *world.World) []string {
	return []string{fmt.Sprintf("Score: %d / %d  (Turns: %d)", s.Score, s.MaxScore, s.Turns)}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
