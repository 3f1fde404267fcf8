package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dropwatch/internal/router"
	"github.com/abhisek/dropwatch/internal/screen"
	"github.com/abhisek/dropwatch/internal/screens/charts"
	"github.com/abhisek/dropwatch/internal/screens/history"
	"github.com/abhisek/dropwatch/internal/screens/overview"
	"github.com/abhisek/dropwatch/internal/screens/placeholder"
	"github.com/abhisek/dropwatch/internal/screens/predict"
	"github.com/abhisek/dropwatch/internal/screens/recommend"
	"github.com/abhisek/dropwatch/internal/session"
	"github.com/abhisek/dropwatch/internal/ui/components"
)

// HomeScreen is the main menu of the dashboard.
type HomeScreen struct {
	sess *session.Session
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(sess *session.Session) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "Overview", Hint: "headline metrics by programme", Action: push(func() screen.Screen {
			return overview.New(sess.Data())
		})},
		{Label: "Charts", Hint: "correlations and distributions", Action: push(func() screen.Screen {
			return charts.New(sess.Data())
		})},
		{Label: "Predict", Hint: "score a hypothetical student", Action: push(func() screen.Screen {
			return predict.New(sess)
		})},
		{Label: "Recommend", Hint: "intervention programmes", Action: push(func() screen.Screen {
			return recommend.New(sess)
		})},
		{Label: "History", Hint: "recorded assessments", Action: push(func() screen.Screen {
			if sess.Events() == nil {
				return placeholder.New("History", "History needs the event store, which is not open.")
			}
			return history.New(sess.Events())
		})},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		sess: sess,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 20 || width < 90
	cw := contentWidth(width)

	ds := h.sess.Data()
	sections := []string{
		renderTitle(cw),
		renderStatsBar(ds.Overview(), ds.Report(), h.sess.StatusText(), cw, compact),
		renderMenuBox(h.menu.View(), cw),
	}
	if !compact && !h.sess.Advisor().Enabled() {
		sections = append(sections, renderLLMNote(cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
