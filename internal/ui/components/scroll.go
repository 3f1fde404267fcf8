package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// Scroller crops tall content to a window and scrolls it with the arrow,
// page and home/end keys.
type Scroller struct {
	Offset int

	lines  int // total lines at the last render
	height int
}

// Update handles scroll keys. It reports whether the key was consumed.
func (s *Scroller) Update(msg tea.Msg) bool {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	page := max(s.height-1, 1)
	switch kmsg.String() {
	case "up", "k":
		s.Offset--
	case "down", "j":
		s.Offset++
	case "pgup", "b":
		s.Offset -= page
	case "pgdown", "f", "space":
		s.Offset += page
	case "home", "g":
		s.Offset = 0
	case "end", "G":
		s.Offset = s.lines
	default:
		return false
	}
	s.clamp()
	return true
}

func (s *Scroller) clamp() {
	limit := 0
	if s.lines > s.height {
		limit = s.lines - max(s.height-1, 1)
	}
	s.Offset = max(0, min(s.Offset, limit))
}

// View returns the visible window of content. A scroll indicator replaces
// the last line when content overflows.
func (s *Scroller) View(content string, height int) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	s.lines = len(lines)
	s.height = height
	s.clamp()
	if len(lines) <= height || height <= 1 {
		return strings.Join(lines, "\n")
	}

	end := min(s.Offset+height-1, len(lines))
	window := lines[s.Offset:end]
	more := theme.Hint.Render("  ↑↓ scroll")
	if end < len(lines) {
		more = theme.Hint.Render("  ↓ more")
	}
	return strings.Join(window, "\n") + "\n" + more
}
