// Package types defines the shared data structures for the adventcore engine.
// This package contains only type definitions and trivial accessors.
package types

// Direction is one of the six compass directions an exit can face.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
	Up    Direction = "up"
	Down  Direction = "down"
)

// Directions lists every valid direction in canonical order.
var Directions = []Direction{North, South, East, West, Up, Down}

// ParseDirection maps a canonical direction word to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// Sentinel item locations. Items are never removed from the registry.
const (
	LocationCarried   = "__inventory__"
	LocationDestroyed = "__nowhere__"
)

// Defaults applied when a room or exit leaves the text unset.
const (
	DefaultLockMessage     = "The way is blocked."
	DefaultDarkDescription = "It's pitch black. You can't see a thing."
)

// Exit connects a room to a destination in one direction.
type Exit struct {
	Direction   Direction
	Destination string
	Locked      bool
	LockFlag    string // flag that, when set, bypasses the lock
	LockMessage string
}

// Room is a location in the world. Immutable after load.
type Room struct {
	ID              string
	Name            string
	Description     string
	Exits           []Exit
	Dark            bool
	DarkDescription string
	FirstVisitText  string
	VisitFlag       string // set on first entry, if non-empty
}

// Item is a world object. Only Location changes at runtime.
type Item struct {
	ID              string
	Name            string
	Description     string // shown on EXAMINE
	RoomDescription string // shown in the room listing
	Location        string // room ID, LocationCarried or LocationDestroyed
	Takeable        bool
	Weight          int
	Aliases         []string
	CombineWith     string
	CombineResult   string
	CombineMessage  string
}

// ConditionKind identifies a condition predicate.
type ConditionKind string

const (
	CondCarrying    ConditionKind = "carrying"
	CondNotCarrying ConditionKind = "not_carrying"
	CondHere        ConditionKind = "here"
	CondNotHere     ConditionKind = "not_here"
	CondInRoom      ConditionKind = "in_room"
	CondNotInRoom   ConditionKind = "not_in_room"
	CondFlagSet     ConditionKind = "flag_set"
	CondFlagUnset   ConditionKind = "flag_unset"
	CondCounterGE   ConditionKind = "counter_ge"
	CondCounterLE   ConditionKind = "counter_le"
	CondCounterEQ   ConditionKind = "counter_eq"
	CondExists      ConditionKind = "exists"
)

// ConditionKinds lists every known condition kind.
var ConditionKinds = []ConditionKind{
	CondCarrying, CondNotCarrying, CondHere, CondNotHere, CondInRoom,
	CondNotInRoom, CondFlagSet, CondFlagUnset, CondCounterGE, CondCounterLE,
	CondCounterEQ, CondExists,
}

// Condition is a predicate that must hold for an event to fire.
type Condition struct {
	Kind   ConditionKind
	Target string // item ID, flag name, room ID, or counter name
	Value  int    // counter comparisons only
}

// ActionKind identifies an action effect.
type ActionKind string

const (
	ActMessage      ActionKind = "message"
	ActMoveItem     ActionKind = "move_item"
	ActSetFlag      ActionKind = "set_flag"
	ActClearFlag    ActionKind = "clear_flag"
	ActIncCounter   ActionKind = "inc_counter"
	ActDecCounter   ActionKind = "dec_counter"
	ActSetCounter   ActionKind = "set_counter"
	ActTeleport     ActionKind = "teleport"
	ActAddScore     ActionKind = "add_score"
	ActDestroyItem  ActionKind = "destroy_item"
	ActSwapItem     ActionKind = "swap_item"
	ActUnlockExit   ActionKind = "unlock_exit"
	ActGameOver     ActionKind = "game_over"
	ActEnableTimer  ActionKind = "enable_timer"
	ActDisableTimer ActionKind = "disable_timer"
)

// ActionKinds lists every known action kind.
var ActionKinds = []ActionKind{
	ActMessage, ActMoveItem, ActSetFlag, ActClearFlag, ActIncCounter,
	ActDecCounter, ActSetCounter, ActTeleport, ActAddScore, ActDestroyItem,
	ActSwapItem, ActUnlockExit, ActGameOver, ActEnableTimer, ActDisableTimer,
}

// Action is a single effect descriptor. Value is a string, a number, or nil.
type Action struct {
	Kind   ActionKind
	Target string
	Value  any
}

// Event is a rule: optional verb/noun/room filters, conditions, and actions.
type Event struct {
	ID              string
	Verb            string // empty = auto-event
	Noun            string
	Room            string
	Conditions      []Condition
	Actions         []Action
	OverrideBuiltin bool
	Once            bool
	Priority        int
}

// IsAuto reports whether the event runs every turn regardless of input.
func (e Event) IsAuto() bool {
	return e.Verb == ""
}

// Timer is a countdown bound to a counter.
type Timer struct {
	Name            string
	Counter         string
	Interval        int // reserved; ticks always decrement by one
	OnZeroEvent     string
	MessageTemplate string // {value} is replaced with the counter value
	Active          bool
}

// Vocabulary holds the game's synonym tables (synonym → canonical word).
type Vocabulary struct {
	VerbSynonyms      map[string]string
	NounSynonyms      map[string]string
	DirectionSynonyms map[string]string
}

// Manifest holds game metadata.
type Manifest struct {
	Title     string
	Author    string
	Version   string
	MaxScore  int
	StartRoom string
	Intro     string
	Help      string
}

// Command is the parsed representation of a player command.
type Command struct {
	Raw          string
	Verb         string
	Noun         string // optional
	OriginalVerb string
	OriginalNoun string
}

// GameState is the complete mutable simulation state.
type GameState struct {
	CurrentRoom string
	Score       int
	MaxScore    int
	Turns       int
	Flags       map[string]bool
	Counters    map[string]int
	Visited     map[string]bool
	Timers      map[string]*Timer // live copies; Active here is authoritative
	GameOver    bool
	Won         bool
}

// Result is the output of a single game step.
type Result struct {
	Output   []string
	Fired    []string // IDs of events whose actions ran this turn
	Consumed bool     // a turn was spent
	GameOver bool
	Won      bool
}
