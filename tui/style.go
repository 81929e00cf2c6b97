package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusScore = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("220")).
				Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleRoomHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleAck = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	styleListItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Italic(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindRoomHeader
	kindExits
	kindAck
	kindListItem
	kindError
	kindTrace
	kindBanner
)

// refusals are the openings of built-in failure messages.
var refusals = []string{
	"You can't",
	"You don't see",
	"You're not",
	"You aren't",
	"I don't",
	"Those items can't",
	"That way leads nowhere",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "***"):
		return kindBanner
	case strings.HasPrefix(line, "--- ") && strings.HasSuffix(line, " ---"):
		return kindRoomHeader
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case strings.HasPrefix(line, "Taken:"), strings.HasPrefix(line, "Dropped:"):
		return kindAck
	case strings.HasPrefix(line, "  - "):
		return kindListItem
	}
	for _, prefix := range refusals {
		if strings.HasPrefix(line, prefix) {
			return kindError
		}
	}
	return kindNarrative
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindRoomHeader:
		return styleRoomHeader.Render(line)
	case kindExits:
		return styleExits.Render(line)
	case kindAck:
		return styleAck.Render(line)
	case kindListItem:
		return styleListItem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	case kindBanner:
		return styleBanner.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
