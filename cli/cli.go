// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the adventcore engine.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"

	"github.com/nathoo/adventcore/config"
	"github.com/nathoo/adventcore/engine"
	"github.com/nathoo/adventcore/engine/save"
	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/logger"
	"github.com/nathoo/adventcore/types"
)

// DefaultHelp is shown when the game supplies no help text.
const DefaultHelp = "Available commands: LOOK, GO <dir>, TAKE, DROP, EXAMINE, USE, " +
	"COMBINE, INVENTORY, SCORE, SAVE, LOAD, QUIT"

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Config    config.Config
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat

	log *logrus.Entry
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, cfg config.Config) *CLI {
	return &CLI{
		Engine: eng,
		Config: cfg,
		In:     os.Stdin,
		Out:    os.Stdout,
		log:    logger.For("cli"),
	}
}

// Run starts the game loop. It shows the title and intro, describes the
// starting room, then loops: prompt → input → dispatch → output. It returns
// when the game ends, the player quits, or input runs out.
func (c *CLI) Run() {
	if c.log == nil {
		c.log = logger.For("cli")
	}

	m := c.Engine.Defs.Manifest
	c.printLine("=== " + m.Title + " ===")
	if m.Intro != "" {
		c.printLine(m.Intro)
	}
	c.printLine("")

	c.printResult(c.Engine.Start())

	scanner := bufio.NewScanner(c.In)
	for !c.Engine.State.GameOver {
		c.print("> ")
		if !scanner.Scan() {
			c.printLine("")
			c.printLine("Goodbye!")
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if c.isMeta(input) {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}

	c.printEnding()
}

// metaWords maps bare words to their slash form. Meta-commands never
// consume a turn.
var metaWords = map[string]string{
	"quit": "/quit",
	"exit": "/quit",
	"q":    "/quit",
	"save": "/save",
	"load": "/load",
	"help": "/help",
	"?":    "/help",
}

func (c *CLI) isMeta(input string) bool {
	if strings.HasPrefix(input, "/") {
		return true
	}
	_, ok := metaWords[strings.ToLower(input)]
	return ok
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	if slash, ok := metaWords[cmd]; ok {
		cmd = slash
	}
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		s := c.Engine.State
		c.printLine(fmt.Sprintf("Thanks for playing! Final score: %d/%d", s.Score, s.MaxScore))
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(slot string) {
	path := c.Config.SavePath(slot)
	if err := save.WriteFile(path, c.Engine.Save(), c.Config.CompressSaves); err != nil {
		c.log.WithError(err).WithField("path", path).Error("save failed")
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.log.WithField("path", path).Info("game saved")
	c.printLine("Game saved.")
}

func (c *CLI) cmdLoad(slot string) {
	path := c.Config.SavePath(slot)
	d, err := save.ReadFile(path)
	if errors.Is(err, save.ErrNoSave) {
		c.printLine("No saved game found.")
		return
	}
	if err != nil {
		c.log.WithError(err).WithField("path", path).Error("load failed")
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	if d.Game != c.Engine.Defs.Manifest.Title {
		c.printSystem(fmt.Sprintf("Load failed: save belongs to %q", d.Game))
		return
	}

	if err := c.Engine.Restore(d); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.printLine("Game loaded.")
	c.printLines(c.Engine.Look())
}

func (c *CLI) cmdHelp() {
	if help := c.Engine.Defs.Manifest.Help; help != "" {
		c.printLine(help)
	} else {
		c.printLine(DefaultHelp)
	}
	help := []string{
		"",
		"System:",
		"  /save [name]  Save game (default: quicksave)",
		"  /load [name]  Load game (default: quicksave)",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"  again (g)     Repeat your last command",
	}
	c.printLines(help)
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Turn: %d", s.Turns))
	c.printSystem(fmt.Sprintf("Location: %s", s.CurrentRoom))
	c.printSystem(fmt.Sprintf("Score: %d/%d", s.Score, s.MaxScore))

	var carried []string
	for _, it := range c.Engine.World.ItemsInInventory() {
		carried = append(carried, it.ID)
	}
	c.printSystem(fmt.Sprintf("Inventory: %v", carried))
	if len(s.Flags) > 0 {
		c.printSystem(fmt.Sprintf("Flags: %v", s.Flags))
	}
	if len(s.Counters) > 0 {
		c.printSystem(fmt.Sprintf("Counters: %v", s.Counters))
	}
	if timers := state.ActiveTimers(s); len(timers) > 0 {
		c.printSystem(fmt.Sprintf("Timers: %v", timers))
	}
}

func (c *CLI) printEnding() {
	s := c.Engine.State
	c.printLine("")
	if s.Won {
		c.printLine("*** CONGRATULATIONS! You have won! ***")
		c.printLine(fmt.Sprintf("Final score: %d/%d", s.Score, s.MaxScore))
		c.printLine(fmt.Sprintf("Total turns: %d", s.Turns))
		return
	}
	c.printLine("*** GAME OVER ***")
	c.printLine(fmt.Sprintf("Score: %d/%d", s.Score, s.MaxScore))
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Fired) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %s", strings.Join(result.Fired, ", ")))
	}
	c.printSystem(fmt.Sprintf("[trace] Turn %d, score %d", c.Engine.State.Turns, c.Engine.State.Score))
}

func (c *CLI) printResult(result types.Result) {
	c.printLines(result.Output)
}

func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		c.printLine(line)
	}
}

// printLine writes one line, word-wrapped to the configured width.
func (c *CLI) printLine(text string) {
	if c.Config.WrapWidth > 0 {
		text = ansi.Wordwrap(text, c.Config.WrapWidth, "")
	}
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
