package recommend

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/insight"
	"github.com/abhisek/dropwatch/internal/risk"
	"github.com/abhisek/dropwatch/internal/screen"
	"github.com/abhisek/dropwatch/internal/session"
	"github.com/abhisek/dropwatch/internal/ui/components"
	"github.com/abhisek/dropwatch/internal/ui/layout"
	"github.com/abhisek/dropwatch/internal/ui/theme"
)

type cohortMsg struct {
	query  session.CohortQuery
	cohort session.Cohort
}

// RecommendScreen shows cohort panels and per-student programs for a risk
// and course filter.
type RecommendScreen struct {
	sess  *session.Session
	query session.CohortQuery

	course     components.SearchInput
	courseName string
	courseErr  string

	cohort  *session.Cohort
	loading bool

	scroll components.Scroller
}

var _ screen.Screen = (*RecommendScreen)(nil)
var _ screen.KeyHintProvider = (*RecommendScreen)(nil)
var _ screen.EscapeCapturer = (*RecommendScreen)(nil)

// New creates a RecommendScreen showing all students.
func New(sess *session.Session) *RecommendScreen {
	return &RecommendScreen{sess: sess, course: components.NewSearchInput("course code or name", 40)}
}

// Query returns the active filter.
func (s *RecommendScreen) Query() session.CohortQuery { return s.query }

// Cohort returns the last computed cohort, or nil while loading.
func (s *RecommendScreen) Cohort() *session.Cohort { return s.cohort }

func (s *RecommendScreen) Init() tea.Cmd { return s.load() }

func (s *RecommendScreen) Title() string { return "Recommendations" }

func (s *RecommendScreen) KeyHints() []layout.KeyHint {
	if s.course.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Risk"},
		{Key: "f", Description: "Next filter"},
		{Key: "/", Description: "Course"},
		{Key: "x", Description: "Clear course"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RecommendScreen) load() tea.Cmd {
	s.loading = true
	sess, q := s.sess, s.query
	return func() tea.Msg {
		return cohortMsg{query: q, cohort: sess.Cohort(context.Background(), q)}
	}
}

func (s *RecommendScreen) setRisk(f risk.Filter) tea.Cmd {
	if f == s.query.Risk && s.cohort != nil {
		return nil
	}
	s.query.Risk = f
	s.scroll.Offset = 0
	return s.load()
}

func (s *RecommendScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cohortMsg:
		// Drop results for a filter that has since changed.
		if msg.query != s.query {
			return s, nil
		}
		c := msg.cohort
		s.cohort = &c
		s.loading = false
		return s, nil

	case screen.ModelReadyMsg:
		// A model that was still training on entry can now score rows.
		if msg.Err == nil && s.cohort != nil && !s.cohort.Scored {
			return s, s.load()
		}
		return s, nil

	case tea.KeyMsg:
		if s.course.Focused() {
			return s, s.updateCourse(msg)
		}
		switch key := msg.String(); key {
		case "1", "2", "3", "4":
			return s, s.setRisk(risk.Filters[key[0]-'1'])
		case "f":
			next := risk.Filters[(int(s.query.Risk)+1)%len(risk.Filters)]
			return s, s.setRisk(next)
		case "/":
			s.courseErr = ""
			return s, s.course.Focus()
		case "x":
			if s.query.Course == session.AllCourses {
				return s, nil
			}
			s.query.Course = session.AllCourses
			s.courseName = ""
			s.course.Clear()
			s.scroll.Offset = 0
			return s, s.load()
		}
	}
	s.scroll.Update(msg)
	return s, nil
}

func (s *RecommendScreen) updateCourse(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.course.Blur()
		return nil
	case "enter":
		s.course.Blur()
		value := strings.TrimSpace(s.course.Value())
		if value == "" {
			s.courseErr = ""
			if s.query.Course == session.AllCourses {
				return nil
			}
			s.query.Course = session.AllCourses
			s.courseName = ""
			return s.load()
		}
		cc, ok := s.sess.Data().ResolveCourse(value)
		s.course.Mark(ok)
		if !ok {
			s.courseErr = fmt.Sprintf("No course matches %q.", value)
			return nil
		}
		s.courseErr = ""
		s.courseName = cc.Name
		s.query.Course = cc.Code
		s.scroll.Offset = 0
		return s.load()
	}
	var cmd tea.Cmd
	s.course, cmd = s.course.Update(msg)
	return cmd
}

// CapturesEscape reports whether esc should reach the screen instead of
// popping it.
func (s *RecommendScreen) CapturesEscape() bool { return s.course.Focused() }

func (s *RecommendScreen) View(width, height int) string {
	cw := max(min(width-4, 110), 30)
	controls := s.renderControls()
	body := s.renderBody(cw)
	content := lipgloss.NewStyle().Padding(0, 2).Render(body)
	ch := lipgloss.Height(controls) + 1
	return controls + "\n\n" + s.scroll.View(content, max(height-ch, 1))
}

func (s *RecommendScreen) renderControls() string {
	var chips []string
	for i, f := range risk.Filters {
		label := fmt.Sprintf("%d %s", i+1, f.DisplayName())
		if f == s.query.Risk {
			chips = append(chips, theme.TabActive.Render(label))
		} else {
			chips = append(chips, theme.TabInactive.Render(label))
		}
	}
	line := "  " + lipgloss.JoinHorizontal(lipgloss.Top, chips...)

	course := "All courses"
	if s.courseName != "" {
		course = fmt.Sprintf("%s (%d)", s.courseName, s.query.Course)
	}
	courseLine := "  " + theme.Subtitle.Render("Course: ")
	if s.course.Focused() {
		courseLine += s.course.View()
	} else {
		courseLine += theme.Body.Render(course)
	}
	if s.courseErr != "" {
		courseLine += "  " + theme.ErrorText.Render(s.courseErr)
	}
	return line + "\n" + courseLine
}

func (s *RecommendScreen) renderBody(cw int) string {
	if s.cohort == nil {
		return theme.Hint.Render("Scoring students...")
	}
	c := s.cohort
	var sections []string

	if !c.Scored {
		sections = append(sections, theme.Hint.Render(
			"No trained model is cached yet. Every student is shown as Medium risk and the risk filter is ignored."))
	}

	summary := fmt.Sprintf("%d students match", c.Data.Len())
	if c.Data.Len() == 0 {
		summary = "No students match this filter; showing a sample from all students."
	}
	sections = append(sections, theme.Metric.Render(summary))
	if c.Scored {
		sections = append(sections, s.renderBuckets(c, cw))
	}

	if c.Data.Len() > 0 {
		sections = append(sections, "", components.Heading("Cohort insights"))
		for _, p := range c.Summary.Panels() {
			sections = append(sections, renderPanel(p, cw))
		}
	}

	sections = append(sections, "", components.Heading("Sample students"))
	for i, st := range c.Sample {
		sections = append(sections, renderStudent(i+1, st, cw))
	}

	sections = append(sections, "", renderPanel(insight.Strategy, cw))
	return strings.Join(sections, "\n")
}

func (s *RecommendScreen) renderBuckets(c *session.Cohort, cw int) string {
	total := 0
	for _, n := range c.Buckets {
		total += n
	}
	var lines []string
	for _, b := range risk.Buckets {
		n := c.Buckets[b]
		frac := 0.0
		if total > 0 {
			frac = float64(n) / float64(total)
		}
		bar := components.Gauge{
			Label: fmt.Sprintf("%-12s %5d", b.DisplayName(), n),
			Value: frac,
			Width: min(cw, 60),
			Color: theme.RiskColor(b),
		}
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func renderPanel(p insight.Panel, cw int) string {
	body := components.Notes(p.Title, p.Insights)
	if len(p.Actions) > 0 {
		body += "\n" + theme.Subtitle.Render("Actions:") + "\n" + components.Bullets(p.Actions)
	}
	return theme.Card.Width(cw).Render(body)
}

func renderStudent(n int, st session.Student, cw int) string {
	head := fmt.Sprintf("Student %d · row %d · %s", n, st.Record.Row, dataset.CourseName(st.Record.Course))
	bucket := lipgloss.NewStyle().Foreground(theme.RiskColor(st.Risk.Bucket)).Bold(true).
		Render(fmt.Sprintf("%s (%.2f)", st.Risk.Bucket.DisplayName(), st.Risk.Probability))

	var profile []string
	for _, kv := range insight.Profile(st.Input()) {
		profile = append(profile, theme.Subtitle.Render(kv[0]+": ")+theme.Body.Render(kv[1]))
	}
	lines := []string{
		theme.Selected.Render(head) + "  " + bucket,
		strings.Join(profile, "  "),
		components.Bullets(st.Recommendations.Programs),
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}
