package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/adventcore/engine/builtin"
)

// statusLeft describes where the player is: room name and the exits they
// can take right now. Locked exits are left out.
func (m Model) statusLeft() string {
	s := m.engine.State
	room, ok := m.engine.World.Room(s.CurrentRoom)
	if !ok {
		return " " + s.CurrentRoom
	}

	var dirs []string
	for _, e := range room.Exits {
		if builtin.ExitOpen(e, s) {
			dirs = append(dirs, string(e.Direction[:1]))
		}
	}
	exits := "-"
	if len(dirs) > 0 {
		exits = strings.ToUpper(strings.Join(dirs, ","))
	}
	return fmt.Sprintf(" %s | Exits: %s", room.Name, exits)
}

// statusRight shows score, carried item count and turns.
func (m Model) statusRight() string {
	s := m.engine.State
	carried := len(m.engine.World.ItemsInInventory())
	return fmt.Sprintf("Inv: %d | Score: %d/%d | T:%d ", carried, s.Score, s.MaxScore, s.Turns)
}

// renderStatusBar produces a full-width inverted status line.
func (m Model) renderStatusBar() string {
	left := styleStatusBar.Render(m.statusLeft())
	right := styleStatusScore.Render(m.statusRight())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + styleStatusBar.Render(strings.Repeat(" ", gap)) + right
}
