package charts

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/insight"
	"github.com/abhisek/dropwatch/internal/screen"
	"github.com/abhisek/dropwatch/internal/ui/components"
	"github.com/abhisek/dropwatch/internal/ui/layout"
	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// Tab indexes.
const (
	TabCorrelations = iota
	TabCourses
	TabStatus
	TabDistributions
)

var tabLabels = []string{"Correlations", "Programmes", "Status", "Distributions"}

// histogramBins is the bin count of the grade histogram.
const histogramBins = 24

// ChartsScreen shows exploratory charts on tabs.
type ChartsScreen struct {
	ds     *dataset.Dataset
	tabs   components.Tabs
	scroll components.Scroller

	corrs   []dataset.Correlation
	courses []dataset.CourseCount
	status  []dataset.StatusCount
}

var _ screen.Screen = (*ChartsScreen)(nil)
var _ screen.KeyHintProvider = (*ChartsScreen)(nil)

// New creates a ChartsScreen over ds.
func New(ds *dataset.Dataset) *ChartsScreen {
	return &ChartsScreen{
		ds:      ds,
		tabs:    components.Tabs{Labels: tabLabels},
		corrs:   ds.TargetCorrelations(),
		courses: ds.CourseCounts(),
		status:  ds.StatusCounts(),
	}
}

func (s *ChartsScreen) Init() tea.Cmd { return nil }

func (s *ChartsScreen) Title() string { return "Charts" }

func (s *ChartsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Tab"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Active returns the index of the visible tab.
func (s *ChartsScreen) Active() int { return s.tabs.Active }

func (s *ChartsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "right", "l", "tab":
			s.tabs.Next()
			s.scroll.Offset = 0
			return s, nil
		case "left", "h", "shift+tab":
			s.tabs.Prev()
			s.scroll.Offset = 0
			return s, nil
		}
	}
	s.scroll.Update(msg)
	return s, nil
}

func (s *ChartsScreen) View(width, height int) string {
	cw := max(width-4, 20)

	var body string
	switch s.tabs.Active {
	case TabCorrelations:
		body = s.correlations(cw)
	case TabCourses:
		body = s.programmes(cw)
	case TabStatus:
		body = s.statusShares(cw)
	default:
		body = s.distributions(cw)
	}

	strip := "  " + s.tabs.View()
	stripHeight := lipgloss.Height(strip) + 1
	content := lipgloss.NewStyle().Padding(0, 2).Render(body)
	return strip + "\n\n" + s.scroll.View(content, max(height-stripHeight, 1))
}

func (s *ChartsScreen) correlations(cw int) string {
	bars := make([]components.Bar, len(s.corrs))
	for i, c := range s.corrs {
		col := theme.Success
		if c.Value < 0 {
			col = theme.Error
		}
		bars[i] = components.Bar{Label: c.Column, Value: c.Value, Color: col}
	}
	return join(
		components.Heading("Correlation with Target (Dropout=0, Enrolled=1, Graduate=2)"),
		components.BarChart{Bars: bars, Width: cw, Signed: true, Format: "%+.2f"}.View(),
		components.Notes("Insight", insight.CorrelationNotes(s.corrs)),
	)
}

func (s *ChartsScreen) programmes(cw int) string {
	bars := make([]components.Bar, len(s.courses))
	for i, c := range s.courses {
		bars[i] = components.Bar{Label: c.Name, Value: float64(c.Count)}
	}
	return join(
		components.Heading("Students per programme"),
		components.BarChart{Bars: bars, Width: cw}.View(),
		components.Notes("Insight", []string{
			"The largest programmes carry the most weight in any retention policy.",
		}),
	)
}

func (s *ChartsScreen) statusShares(cw int) string {
	bars := make([]components.Bar, len(s.status))
	for i, c := range s.status {
		bars[i] = components.Bar{
			Label: fmt.Sprintf("%s (%d)", c.Outcome, c.Count),
			Value: c.Share * 100,
			Color: theme.OutcomeColor(c.Outcome),
		}
	}
	return join(
		components.Heading("Share of students by outcome"),
		components.BarChart{Bars: bars, Width: cw, Format: "%.1f%%"}.View(),
		components.Notes("Insight", insight.StatusNotes(s.status)),
	)
}

func (s *ChartsScreen) distributions(cw int) string {
	labels := make([]string, len(dataset.Outcomes))
	colors := make([]color.Color, len(dataset.Outcomes))
	for i, o := range dataset.Outcomes {
		labels[i] = o.String()
		colors[i] = theme.OutcomeColor(o)
	}
	boxes := func(value func(dataset.StudentRecord) float64) string {
		out := make([]dataset.Box, len(dataset.Outcomes))
		for i, o := range dataset.Outcomes {
			group := s.ds.Filter(func(r dataset.StudentRecord) bool { return r.Outcome == o })
			out[i] = dataset.BoxStats(group.Values(value))
		}
		return components.BoxPlots(labels, out, colors, cw)
	}

	grades := s.ds.Values(func(r dataset.StudentRecord) float64 { return r.FirstSemesterGrade })
	hist := components.Histogram{
		Bins:   dataset.Histogram(grades, min(histogramBins, max(cw-4, 8))),
		Height: 5,
	}

	return join(
		components.Heading("Age at enrollment"),
		boxes(func(r dataset.StudentRecord) float64 { return r.Age }),
		components.Heading("Admission grade"),
		boxes(func(r dataset.StudentRecord) float64 { return r.AdmissionGrade }),
		components.Heading("1st-semester grade"),
		boxes(func(r dataset.StudentRecord) float64 { return r.FirstSemesterGrade }),
		components.Heading("1st-semester grade, all students"),
		hist.View(),
	)
}

func join(sections ...string) string {
	var kept []string
	for _, s := range sections {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n")
}
