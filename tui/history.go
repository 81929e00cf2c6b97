// Package tui provides a Bubble Tea terminal UI for the adventcore engine.
package tui

// History keeps submitted commands for Up/Down recall. While the player
// browses, the unsent draft is parked and handed back past the newest entry.
type History struct {
	entries []string
	limit   int
	pos     int // len(entries) when not browsing
	draft   string
}

// NewHistory creates a history that remembers at most limit commands.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Len returns the number of remembered commands.
func (h *History) Len() int {
	return len(h.entries)
}

// Add records a submitted command and stops browsing. Blank commands and
// repeats of the newest entry are not recorded.
func (h *History) Add(cmd string) {
	if cmd != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != cmd) {
		h.entries = append(h.entries, cmd)
		if over := len(h.entries) - h.limit; h.limit > 0 && over > 0 {
			h.entries = h.entries[over:]
		}
	}
	h.pos = len(h.entries)
	h.draft = ""
}

// Older moves one entry back. current is the text in the input line; it is
// parked as the draft when browsing starts. ok is false with no history.
func (h *History) Older(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.pos >= len(h.entries) {
		h.pos = len(h.entries)
		h.draft = current
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos], true
}

// Newer moves one entry forward. Past the newest entry it returns the
// parked draft; ok is false when not browsing.
func (h *History) Newer() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}
