package overview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/insight"
	"github.com/abhisek/dropwatch/internal/router"
	"github.com/abhisek/dropwatch/internal/screen"
	"github.com/abhisek/dropwatch/internal/ui/components"
	"github.com/abhisek/dropwatch/internal/ui/layout"
	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// OverviewScreen shows the headline metrics, outcomes per programme and
// the mean grades and age per outcome.
type OverviewScreen struct {
	ds     *dataset.Dataset
	scroll components.Scroller

	overview dataset.Overview
	courses  []dataset.CourseCount
	means    []dataset.StatusMeans
}

var _ screen.Screen = (*OverviewScreen)(nil)
var _ screen.KeyHintProvider = (*OverviewScreen)(nil)

// New creates an OverviewScreen over ds.
func New(ds *dataset.Dataset) *OverviewScreen {
	return &OverviewScreen{
		ds:       ds,
		overview: ds.Overview(),
		courses:  ds.CourseCounts(),
		means:    ds.MeansByStatus(),
	}
}

func (s *OverviewScreen) Init() tea.Cmd { return nil }

func (s *OverviewScreen) Title() string { return "Overview" }

func (s *OverviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *OverviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.scroll.Update(msg)
	return s, nil
}

func (s *OverviewScreen) View(width, height int) string {
	cw := max(width-4, 20)
	var sections []string

	sections = append(sections, s.renderMetrics())

	sections = append(sections, components.Heading("Outcomes by programme"))
	sections = append(sections, components.GroupedBars{
		Series: outcomeSeries(),
		Groups: courseGroups(s.courses),
		Width:  cw,
	}.View())
	sections = append(sections, components.Notes("Insight", insight.CourseNotes(s.ds)))

	sections = append(sections, components.Heading("Mean age and grades by outcome"))
	sections = append(sections, meansTable(s.means).View())
	sections = append(sections, components.Notes("Insight", insight.MeansNotes(s.means)))

	content := lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(sections, "\n\n"))
	return s.scroll.View(content, height)
}

func (s *OverviewScreen) renderMetrics() string {
	card := func(label, value string) string {
		return theme.Card.Width(26).Render(theme.Subtitle.Render(label) + "\n" + theme.Metric.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total students", fmt.Sprintf("%d", s.overview.Total)),
		"  ",
		card("Dropout rate", fmt.Sprintf("%.2f%%", s.overview.DropoutRate)),
	)
}

func outcomeSeries() []components.Series {
	series := make([]components.Series, len(dataset.Outcomes))
	for i, o := range dataset.Outcomes {
		series[i] = components.Series{Name: o.String(), Color: theme.OutcomeColor(o)}
	}
	return series
}

func courseGroups(courses []dataset.CourseCount) []components.BarGroup {
	groups := make([]components.BarGroup, len(courses))
	for i, c := range courses {
		values := make([]float64, len(dataset.Outcomes))
		for j, o := range dataset.Outcomes {
			values[j] = float64(c.ByOutcome[o])
		}
		groups[i] = components.BarGroup{Label: fmt.Sprintf("%s (%d)", c.Name, c.Count), Values: values}
	}
	return groups
}

func meansTable(means []dataset.StatusMeans) components.Table {
	t := components.Table{Headers: []string{"Status", "Age at enrollment", "Admission grade", "1st-sem grade"}}
	for _, m := range means {
		t.Rows = append(t.Rows, []string{
			m.Outcome.String(),
			fmt.Sprintf("%.2f", m.Age),
			fmt.Sprintf("%.2f", m.AdmissionGrade),
			fmt.Sprintf("%.2f", m.FirstSemesterGrade),
		})
	}
	return t
}
