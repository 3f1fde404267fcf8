package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Hint is shown dimmed after the label.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is the numbered home-screen menu. Arrows or j/k move the cursor
// over enabled items; enter or a digit key runs an item's Action.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(+1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move jumps to the next enabled item in direction dir, staying put at the ends.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	switch s := key.String(); s {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(+1)
	case "enter":
		cmd = m.run(m.Selected)
	default:
		if n, err := strconv.Atoi(s); err == nil {
			cmd = m.run(n - 1)
		}
	}
	return m, cmd
}

// run selects item i and returns its command, or nil when i is out of
// range or disabled.
func (m *Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Disabled {
		return nil
	}
	m.Selected = i
	if act := m.Items[i].Action; act != nil {
		return act()
	}
	return nil
}

func (m Menu) View() string {
	width := 0
	for _, it := range m.Items {
		width = max(width, lipgloss.Width(it.Label))
	}
	disabled := lipgloss.NewStyle().Foreground(theme.Border)

	lines := make([]string, len(m.Items))
	for i, it := range m.Items {
		cursor, style := "   ", theme.Unselected
		switch {
		case it.Disabled:
			style = disabled
		case i == m.Selected:
			cursor, style = " ▸ ", theme.Selected
		}
		line := style.Render(fmt.Sprintf(" %s%d. %-*s", cursor, i+1, width, it.Label))
		if it.Hint != "" {
			line += "  " + theme.Hint.Render(it.Hint)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n") + "\n"
}
