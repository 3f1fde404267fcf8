package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// SearchInput is a one-line filter box. It starts blurred; after a
// lookup the caller marks whether the query matched.
type SearchInput struct {
	input  textinput.Model
	marked bool
	found  bool
}

// NewSearchInput creates a blurred input showing placeholder while empty.
func NewSearchInput(placeholder string, limit int) SearchInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.CharLimit = limit
	return SearchInput{input: ti}
}

// Update forwards typing to the input while it is focused. Editing
// clears the match mark.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	if !s.input.Focused() {
		return s, nil
	}
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.marked = false
	}
	return s, cmd
}

// View renders the input with a match mark after a lookup.
func (s SearchInput) View() string {
	view := s.input.View()
	if !s.marked {
		return view
	}
	if s.found {
		return view + " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	}
	return view + " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
}

// Value is the typed query.
func (s SearchInput) Value() string { return s.input.Value() }

// Mark records whether the last lookup found a match.
func (s *SearchInput) Mark(found bool) {
	s.marked, s.found = true, found
}

// Focus starts editing and returns the cursor command.
func (s *SearchInput) Focus() tea.Cmd { return s.input.Focus() }

// Blur stops editing and keeps the value.
func (s *SearchInput) Blur() { s.input.Blur() }

// Focused reports whether the input is being edited.
func (s SearchInput) Focused() bool { return s.input.Focused() }

// Clear empties the input and drops the match mark.
func (s *SearchInput) Clear() {
	s.input.Reset()
	s.marked = false
}
