package rules

import "github.com/nathoo/adventcore/types"

// MatchesCommand checks an event's verb, noun and room filters against a
// command. Auto-events never match a command.
func MatchesCommand(e types.Event, cmd types.Command, currentRoom string) bool {
	if e.IsAuto() {
		return false
	}
	if e.Verb != cmd.Verb {
		return false
	}
	if e.Noun != "" && e.Noun != cmd.Noun {
		return false
	}
	return MatchesRoom(e, currentRoom)
}

// MatchesAuto checks an auto-event's room filter.
func MatchesAuto(e types.Event, currentRoom string) bool {
	return e.IsAuto() && MatchesRoom(e, currentRoom)
}

// MatchesRoom reports whether the event's room filter admits currentRoom.
func MatchesRoom(e types.Event, currentRoom string) bool {
	return e.Room == "" || e.Room == currentRoom
}
