// Package history is the page listing recorded risk assessments.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/risk"
	"github.com/abhisek/dropwatch/internal/screen"
	"github.com/abhisek/dropwatch/internal/session"
	"github.com/abhisek/dropwatch/internal/store"
	"github.com/abhisek/dropwatch/internal/ui/layout"
	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// Limit is the number of assessments loaded per query.
const Limit = 50

// sources cycles with Tab; "" shows every source.
var sources = []string{"", session.SourcePredict, session.SourceCLI}

type loadedMsg struct {
	source string
	rows   []store.AssessmentEvent
	err    error
}

// HistoryScreen lists recorded assessments newest first. Enter opens the
// inputs and programmes of the selected row.
type HistoryScreen struct {
	repo    store.EventRepo
	source  int // index into sources
	loading bool
	err     error
	rows    []store.AssessmentEvent
	cursor  int
	open    int // expanded row, -1 for none
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

func New(repo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo, loading: true, open: -1}
}

func (s *HistoryScreen) Init() tea.Cmd { return s.load() }

func (s *HistoryScreen) load() tea.Cmd {
	repo, source := s.repo, sources[s.source]
	return func() tea.Msg {
		rows, err := repo.QueryAssessments(context.Background(), store.QueryOpts{Limit: Limit, Source: source})
		return loadedMsg{source: source, rows: rows, err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Tab", Description: "Source"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.source != sources[s.source] {
			return s, nil // stale reply from an earlier filter
		}
		s.loading, s.err, s.rows = false, msg.err, msg.rows
		s.cursor, s.open = 0, -1

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = max(min(s.cursor+1, len(s.rows)-1), 0)
		case "enter":
			if s.open == s.cursor {
				s.open = -1
			} else {
				s.open = s.cursor
			}
		case "tab":
			s.source = (s.source + 1) % len(sources)
			s.loading = true
			return s, s.load()
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	notice := func(fg lipgloss.Style, text string) string {
		return fg.Width(width).Align(lipgloss.Center).Render("\n\n" + text)
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case s.err != nil:
		return notice(lipgloss.NewStyle().Foreground(theme.Error), "Error: "+s.err.Error())
	case s.loading:
		return notice(dim, "Loading history...")
	}

	filter := "all sources"
	if src := sources[s.source]; src != "" {
		filter = "source: " + src
	}
	lines := []string{dim.Render(fmt.Sprintf("%d assessments, %s", len(s.rows), filter)), ""}
	if len(s.rows) == 0 {
		lines = append(lines, dim.Italic(true).Render("No assessments yet. Record one from the Predict page."))
	}

	focus := 0
	for i, a := range s.rows {
		marker, style := "  ", lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.cursor {
			marker, style = "> ", style.Foreground(theme.Primary).Bold(true)
			focus = len(lines)
		}
		row := fmt.Sprintf("%s%s  %-9s  P=%.2f  ", marker, a.Timestamp.Format("Jan 02 15:04"), a.Source, a.Probability)
		lines = append(lines, style.Render(row)+bucket(a.Bucket))
		if i == s.open {
			lines = append(lines, detail(a, dim)...)
		}
	}

	// Scroll so the cursor row stays on screen.
	if height > 0 && len(lines) > height {
		first := max(0, min(focus-height+1, len(lines)-height))
		lines = lines[first : first+height]
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(lines, "\n"))
}

func bucket(name string) string {
	b, err := risk.ParseBucket(name)
	if err != nil {
		return name
	}
	return lipgloss.NewStyle().Foreground(theme.RiskColor(b)).Render(b.DisplayName())
}

func detail(a store.AssessmentEvent, style lipgloss.Style) []string {
	yn := map[bool]string{true: "yes", false: "no"}
	out := []string{style.Render(fmt.Sprintf(
		"      age %.0f · admission %.1f · 1st-sem %.2f · scholarship %s · tuition paid %s",
		a.Age, a.AdmissionGrade, a.FirstSemesterGrade, yn[a.ScholarshipHolder], yn[a.TuitionUpToDate]))}
	for _, p := range a.Programs {
		out = append(out, style.Render("      • "+p))
	}
	return out
}
