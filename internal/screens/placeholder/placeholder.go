package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/screen"
	"github.com/abhisek/dropwatch/internal/ui/layout"
	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// PlaceholderScreen shows a centered message in place of a page that
// cannot be displayed, such as a dataset that failed to load.
type PlaceholderScreen struct {
	title   string
	message string
	isError bool
}

var _ screen.Screen = (*PlaceholderScreen)(nil)
var _ screen.KeyHintProvider = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen with an informational message.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

// NewError creates a PlaceholderScreen reporting err. Any key quits when
// it is the only screen.
func NewError(title string, err error) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: err.Error(), isError: true}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && p.isError {
		switch kmsg.String() {
		case "q", "enter":
			return p, tea.Quit
		}
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	heading := "╌╌ Not available ╌╌"
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if p.isError {
		heading = "╌╌ Error ╌╌"
		style = style.Foreground(theme.Error)
	}

	body := lipgloss.NewStyle().Width(min(width-4, 70)).Align(lipgloss.Center).Render(p.message)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(style.Bold(true).Render(heading) + "\n\n" + style.Render(body))
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	if p.isError {
		return []layout.KeyHint{{Key: "q", Description: "Quit"}}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}
