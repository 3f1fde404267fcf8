package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dropwatch/internal/router"
	"github.com/abhisek/dropwatch/internal/screen"
	"github.com/abhisek/dropwatch/internal/screens/home"
	"github.com/abhisek/dropwatch/internal/screens/placeholder"
	"github.com/abhisek/dropwatch/internal/session"
	"github.com/abhisek/dropwatch/internal/ui/layout"
)

// Options configures the dashboard.
type Options struct {
	// Session is the loaded dashboard state. It is nil when LoadErr is set.
	Session *session.Session

	// LoadErr is shown in place of the dashboard, e.g. a missing data file.
	LoadErr error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen, or an error
// page when the dataset could not be loaded.
func newAppModel(opts Options) AppModel {
	if opts.LoadErr != nil || opts.Session == nil {
		err := opts.LoadErr
		if err == nil {
			err = fmt.Errorf("no dataset loaded")
		}
		return AppModel{router: router.New(placeholder.NewError("Error", err))}
	}
	return AppModel{
		router: router.New(home.New(opts.Session)),
		sess:   opts.Session,
	}
}

func (m AppModel) Init() tea.Cmd {
	if m.sess == nil {
		return nil
	}
	sess := m.sess
	return func() tea.Msg {
		res, err := sess.Train(context.Background())
		return screen.ModelReadyMsg{Result: res, Err: err}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if msg := layout.TooSmall(m.width, m.height); msg != "" {
		return msg
	}

	active := m.router.Active()
	frame := layout.Frame{Title: active.Title(), Hints: m.hints(active)}
	if m.sess != nil {
		frame.Status = layout.Status{Rows: m.sess.Data().Len(), Model: m.sess.StatusText()}
	}
	return frame.Render(m.width, m.height, m.router.View)
}

// hints are the active page's key hints plus quit.
func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	switch p, ok := active.(screen.KeyHintProvider); {
	case ok:
		hints = p.KeyHints()
	case m.router.Depth() > 1:
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	default:
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
