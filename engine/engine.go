// Package engine provides the turn driver that wires together parsing,
// command events, built-in handlers, auto-events and timers into a single
// turn.
package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/adventcore/engine/builtin"
	"github.com/nathoo/adventcore/engine/events"
	"github.com/nathoo/adventcore/engine/parser"
	"github.com/nathoo/adventcore/engine/save"
	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/engine/world"
	"github.com/nathoo/adventcore/logger"
	"github.com/nathoo/adventcore/types"
)

// GameOverMessage answers any input once the game has ended.
const GameOverMessage = "The game is over."

// Engine holds the game definitions and the live world and state.
type Engine struct {
	Defs   *state.Defs
	World  *world.World
	State  *types.GameState
	Events *events.Manager
	Parser *parser.Parser

	fired []string
	log   *logrus.Entry
}

// New creates an engine from definitions with a fresh world and state.
func New(defs *state.Defs) *Engine {
	e := &Engine{
		Defs:   defs,
		Events: events.NewManager(defs.Events, defs.Timers),
		Parser: parser.New(defs.Vocabulary),
		log:    logger.For("engine"),
	}
	e.Events.OnFire = func(id string) {
		e.fired = append(e.fired, id)
	}
	e.reset()
	return e
}

// reset rebuilds the world and state from the definitions.
func (e *Engine) reset() {
	e.World = world.New(e.Defs.Rooms, e.Defs.Items)
	e.State = state.New(e.Defs.Manifest)
	e.Events.RegisterTimers(e.State)
}

// Start describes the opening room and runs the opening auto-events.
// No turn is consumed.
func (e *Engine) Start() types.Result {
	e.fired = nil
	output := builtin.Look(types.Command{Raw: "look", Verb: "look"}, e.State, e.World)
	output = append(output, e.Events.RunAutoEvents(e.State, e.World)...)
	return e.result(output, false)
}

// Step parses raw input and executes it. Empty input is ignored.
func (e *Engine) Step(input string) types.Result {
	if e.State.GameOver {
		return e.result([]string{GameOverMessage}, false)
	}
	cmd, ok := e.Parser.Parse(input)
	if !ok {
		return types.Result{}
	}
	return e.Execute(cmd)
}

// Execute runs one full turn for a parsed command.
func (e *Engine) Execute(cmd types.Command) types.Result {
	e.fired = nil
	e.State.Turns++

	e.log.WithFields(logrus.Fields{
		"turn": e.State.Turns,
		"verb": cmd.Verb,
		"noun": cmd.Noun,
	}).Debug("turn")

	// 1. Command events.
	handled, output := e.Events.TryCommandEvents(cmd, e.State, e.World)

	// 2. Built-in handler, unless an event claimed the verb.
	if !handled {
		if h, ok := builtin.Lookup(cmd.Verb); ok {
			output = append(output, h(cmd, e.State, e.World)...)
		} else {
			output = append(output, fmt.Sprintf("I don't know how to '%s'.", cmd.Verb))
		}
	}

	// 3. Auto-events, then timers.
	output = append(output, e.Events.RunAutoEvents(e.State, e.World)...)
	output = append(output, e.Events.TickTimers(e.State, e.World)...)

	if e.State.GameOver {
		e.log.WithFields(logrus.Fields{
			"won":   e.State.Won,
			"score": e.State.Score,
			"turns": e.State.Turns,
		}).Info("game over")
	}

	return e.result(output, true)
}

// Look describes the current room without consuming a turn.
func (e *Engine) Look() []string {
	return builtin.Look(types.Command{Raw: "look", Verb: "look"}, e.State, e.World)
}

// Save snapshots the current game.
func (e *Engine) Save() *save.Data {
	return save.Snapshot(e.State, e.World, e.Defs.Manifest)
}

// Restore replaces the whole world and state with saved data. A save that
// does not fit this game's world is rejected and the running game is kept.
func (e *Engine) Restore(d *save.Data) error {
	if err := save.Check(e.World, d); err != nil {
		e.log.WithError(err).Warn("restore rejected")
		return err
	}

	e.reset()
	if err := save.Apply(e.State, e.World, d); err != nil {
		return err
	}
	e.log.WithFields(logrus.Fields{
		"room":  e.State.CurrentRoom,
		"turns": e.State.Turns,
	}).Info("game restored")
	return nil
}

func (e *Engine) result(output []string, consumed bool) types.Result {
	return types.Result{
		Output:   output,
		Fired:    append([]string(nil), e.fired...),
		Consumed: consumed,
		GameOver: e.State.GameOver,
		Won:      e.State.Won,
	}
}
