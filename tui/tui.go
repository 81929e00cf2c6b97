package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/sirupsen/logrus"

	"github.com/nathoo/adventcore/config"
	"github.com/nathoo/adventcore/engine"
	"github.com/nathoo/adventcore/engine/save"
	"github.com/nathoo/adventcore/engine/state"
	"github.com/nathoo/adventcore/logger"
	"github.com/nathoo/adventcore/types"
)

// rawLine stores an unstyled output line with its classification,
// so it can be re-wrapped and re-styled when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // echoed player input
	isSystem bool // meta-command output
}

// Model is the Bubble Tea model for the adventcore TUI.
type Model struct {
	engine *engine.Engine
	cfg    config.Config

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string

	log *logrus.Entry
}

// outputMsg carries opening text into the Update loop.
type outputMsg struct {
	lines []string
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, cfg config.Config) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		cfg:     cfg,
		input:   ti,
		history: NewHistory(100),
		log:     logger.For("tui"),
	}
}

// Run starts the Bubble Tea program. Logs go to cfg.LogFile while it runs.
func Run(eng *engine.Engine, cfg config.Config) error {
	restore := redirectLogs(cfg.LogFile)
	defer restore()

	p := tea.NewProgram(New(eng, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// redirectLogs moves the shared logger off stderr, which the alt screen
// owns. Logs are dropped when path is empty or cannot be opened.
func redirectLogs(path string) (restore func()) {
	if path == "" {
		return logger.Redirect(io.Discard)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return logger.Redirect(io.Discard)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logger.Redirect(io.Discard)
	}
	undo := logger.Redirect(f)
	return func() {
		undo()
		f.Close()
	}
}

// Init returns the commands that start the cursor and show the opening text.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.opening())
}

func (m Model) opening() tea.Cmd {
	return func() tea.Msg {
		mf := m.engine.Defs.Manifest
		lines := []string{fmt.Sprintf("%s v%s by %s", mf.Title, mf.Version, mf.Author), ""}
		if mf.Intro != "" {
			lines = append(lines, mf.Intro, "")
		}
		lines = append(lines, m.engine.Start().Output...)
		return outputMsg{lines: lines}
	}
}

// Update handles key presses, window resizes and opening output.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // status bar + input line
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Older(m.input.Value()); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Newer(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			}
			return m, nil

		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case outputMsg:
		m = m.appendLines("", msg.lines, false)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}
	m.history.Add(input)

	if isMeta(input) {
		output, quit := m.handleMeta(input)
		m = m.appendLines(input, output, true)
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.engine.State.GameOver {
		m = m.appendLines(input, []string{"The game is over. Type /load to restore a save or /quit to leave."}, true)
		return m, nil
	}

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendLines(input, []string{"Nothing to repeat."}, true)
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	result := m.engine.Step(input)
	output := result.Output
	if m.trace {
		output = append(output, m.formatTrace(result)...)
	}
	if result.GameOver {
		output = append(output, "", endBanner(m.engine.State))
	}
	m = m.appendLines(input, output, false)
	return m, nil
}

// appendLines adds a turn's lines to the narrative and refreshes the viewport.
func (m Model) appendLines(input string, lines []string, system bool) Model {
	if input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + input, isInput: true})
	}
	for _, line := range lines {
		rl := rawLine{text: line, isSystem: system}
		if !system {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}
	// Blank line between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if m.cfg.WrapWidth > 0 && m.cfg.WrapWidth < width {
		width = m.cfg.WrapWidth
	}
	if width < 10 {
		width = 10
	}

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		wrapped := ansi.Wordwrap(rl.text, width, "")
		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full layout: viewport, status bar, input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

func isMeta(input string) bool {
	if strings.HasPrefix(input, "/") {
		return true
	}
	switch strings.ToLower(input) {
	case "quit", "exit", "save", "load", "help":
		return true
	}
	return false
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(strings.ToLower(input))
	cmd := strings.TrimPrefix(parts[0], "/")
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "quit", "exit":
		s := m.engine.State
		return []string{fmt.Sprintf("Thanks for playing! Final score: %d/%d", s.Score, s.MaxScore)}, true
	case "save":
		return m.cmdSave(arg), false
	case "load":
		return m.cmdLoad(arg), false
	case "help":
		return m.cmdHelp(), false
	case "state":
		return m.cmdState(), false
	case "trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false
	default:
		return []string{fmt.Sprintf("Unknown command: /%s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave(slot string) []string {
	path := m.cfg.SavePath(slot)
	if err := save.WriteFile(path, m.engine.Save(), m.cfg.CompressSaves); err != nil {
		m.log.WithError(err).WithField("path", path).Error("save failed")
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	m.log.WithField("path", path).Info("game saved")
	return []string{"Game saved."}
}

func (m *Model) cmdLoad(slot string) []string {
	path := m.cfg.SavePath(slot)
	d, err := save.ReadFile(path)
	if errors.Is(err, save.ErrNoSave) {
		return []string{"No saved game found."}
	}
	if err != nil {
		m.log.WithError(err).WithField("path", path).Error("load failed")
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	if d.Game != m.engine.Defs.Manifest.Title {
		return []string{fmt.Sprintf("Load failed: save belongs to %q", d.Game)}
	}

	if err := m.engine.Restore(d); err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	return append([]string{fmt.Sprintf("Game loaded (turn %d).", m.engine.State.Turns)}, m.engine.Look()...)
}

func (m *Model) cmdHelp() []string {
	var lines []string
	if help := m.engine.Defs.Manifest.Help; help != "" {
		lines = append(lines, strings.Split(help, "\n")...)
	} else {
		lines = append(lines,
			"Game commands:",
			"  look (l), examine <thing> (x), go <dir> (n/s/e/w/u/d)",
			"  take <item>, drop <item>, use <item>, inventory (i)",
			"  combine <item> with <item>, score, again (g)",
		)
	}
	return append(lines,
		"",
		"System:",
		"  /save [name]  Save game (default: quicksave)",
		"  /load [name]  Load game (default: quicksave)",
		"  /quit         Exit game",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	)
}

func (m *Model) cmdState() []string {
	s := m.engine.State
	var carried []string
	for _, it := range m.engine.World.ItemsInInventory() {
		carried = append(carried, it.ID)
	}
	output := []string{
		fmt.Sprintf("Turn: %d", s.Turns),
		fmt.Sprintf("Location: %s", s.CurrentRoom),
		fmt.Sprintf("Inventory: %v", carried),
	}
	if len(s.Flags) > 0 {
		output = append(output, fmt.Sprintf("Flags: %v", s.Flags))
	}
	if len(s.Counters) > 0 {
		output = append(output, fmt.Sprintf("Counters: %v", s.Counters))
	}
	if timers := state.ActiveTimers(s); len(timers) > 0 {
		output = append(output, fmt.Sprintf("Timers: %v", timers))
	}
	return output
}

func (m *Model) formatTrace(result types.Result) []string {
	if len(result.Fired) == 0 {
		return []string{"[trace] no events fired"}
	}
	return []string{"[trace] Events: " + strings.Join(result.Fired, ", ")}
}

// endBanner summarizes a finished game.
func endBanner(s *types.GameState) string {
	if s.Won {
		return fmt.Sprintf("*** You have won! Final score: %d/%d in %d turns ***", s.Score, s.MaxScore, s.Turns)
	}
	return fmt.Sprintf("*** GAME OVER *** Score: %d/%d", s.Score, s.MaxScore)
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled,
// since those keys browse the input history.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
