package predict

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/advisor"
	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/model"
	"github.com/abhisek/dropwatch/internal/risk"
	"github.com/abhisek/dropwatch/internal/screen"
	"github.com/abhisek/dropwatch/internal/session"
	"github.com/abhisek/dropwatch/internal/ui/components"
	"github.com/abhisek/dropwatch/internal/ui/layout"
	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// Slider steps per feature.
var steps = [features.Count]float64{
	features.Age:                1,
	features.AdmissionGrade:     0.5,
	features.ScholarshipHolder:  1,
	features.FirstSemesterGrade: 0.25,
	features.TuitionUpToDate:    1,
}

var labels = [features.Count]string{
	features.Age:                "Age at enrollment",
	features.AdmissionGrade:     "Admission grade",
	features.ScholarshipHolder:  "Scholarship holder",
	features.FirstSemesterGrade: "1st-sem grade",
	features.TuitionUpToDate:    "Tuition up to date",
}

// Feature descriptions shown under the focused slider.
var descriptions = [features.Count]string{
	features.Age:                "Age of the student at enrolment, in years.",
	features.AdmissionGrade:     "Entrance exam grade. Higher means stronger prior performance.",
	features.ScholarshipHolder:  "Whether the student receives a scholarship.",
	features.FirstSemesterGrade: "Average grade over the first semester's curricular units.",
	features.TuitionUpToDate:    "Whether tuition fees are paid on time.",
}

type recordedMsg struct{ err error }

// noteMsg carries a drafted note and the input it was drafted for.
type noteMsg struct {
	input features.Input
	note  advisor.Note
}

// PredictScreen scores a hypothetical student from five sliders.
type PredictScreen struct {
	sess    *session.Session
	sliders [features.Count]components.Slider
	focus   int

	ready  bool
	fitErr error

	result   session.Assessment
	note     *advisor.Note
	noting   bool
	recorded string

	scroll components.Scroller
}

var _ screen.Screen = (*PredictScreen)(nil)
var _ screen.KeyHintProvider = (*PredictScreen)(nil)

// New creates a PredictScreen with sliders at the dataset means.
func New(sess *session.Session) *PredictScreen {
	s := &PredictScreen{sess: sess}
	s.reset()
	return s
}

func (s *PredictScreen) reset() {
	ranges := s.sess.Ranges()
	def := features.DefaultInput(ranges)
	for f := range features.Count {
		r := ranges[f]
		switch f {
		case features.ScholarshipHolder:
			s.sliders[f] = components.NewToggle(labels[f], def.ScholarshipHolder)
		case features.TuitionUpToDate:
			s.sliders[f] = components.NewToggle(labels[f], def.TuitionUpToDate)
		default:
			s.sliders[f] = components.NewSlider(labels[f], r.Min, r.Max, steps[f], r.Mean)
		}
	}
	s.sliders[features.Age].Format = "%.0f"
	s.sliders[features.FirstSemesterGrade].Format = "%.2f"
}

// Input returns the applicant described by the sliders.
func (s *PredictScreen) Input() features.Input {
	return features.Input{
		Age:                s.sliders[features.Age].Value,
		AdmissionGrade:     s.sliders[features.AdmissionGrade].Value,
		ScholarshipHolder:  s.sliders[features.ScholarshipHolder].Bool(),
		FirstSemesterGrade: s.sliders[features.FirstSemesterGrade].Value,
		TuitionUpToDate:    s.sliders[features.TuitionUpToDate].Bool(),
	}
}

// Result returns the current assessment. ok is false until the model is
// ready, or when it failed to fit.
func (s *PredictScreen) Result() (session.Assessment, bool) {
	return s.result, s.ready && s.fitErr == nil
}

func (s *PredictScreen) Init() tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		res, err := sess.Train(context.Background())
		return screen.ModelReadyMsg{Result: res, Err: err}
	}
}

func (s *PredictScreen) Title() string { return "Predict" }

func (s *PredictScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Enter", Description: "Record"},
		{Key: "r", Description: "Reset"},
	}
	if s.sess.Advisor().Enabled() {
		hints = append(hints, layout.KeyHint{Key: "n", Description: "Counselor note"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *PredictScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ModelReadyMsg:
		s.ready = true
		s.fitErr = msg.Err
		s.recompute()
		return s, nil

	case recordedMsg:
		if msg.err != nil {
			s.recorded = "Could not record: " + msg.err.Error()
		} else {
			s.recorded = "Assessment recorded."
		}
		return s, nil

	case noteMsg:
		if msg.input != s.Input() {
			return s, nil // the sliders moved since the request
		}
		s.noting = false
		note := msg.note
		s.note = &note
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.focus = (s.focus - 1 + features.Count) % features.Count
			return s, nil
		case "down", "j", "tab":
			s.focus = (s.focus + 1) % features.Count
			return s, nil
		case "left", "h":
			s.adjust(-1)
			return s, nil
		case "right", "l":
			s.adjust(1)
			return s, nil
		case "shift+left", "H":
			s.adjust(-10)
			return s, nil
		case "shift+right", "L":
			s.adjust(10)
			return s, nil
		case "r":
			s.reset()
			s.recompute()
			return s, nil
		case "enter", "s":
			return s, s.record()
		case "n":
			return s, s.requestNote()
		case "pgup", "pgdown", "home", "end":
			s.scroll.Update(msg)
			return s, nil
		}
	}
	return s, nil
}

func (s *PredictScreen) adjust(n int) {
	if n > 0 {
		s.sliders[s.focus].Increment(n)
	} else {
		s.sliders[s.focus].Decrement(-n)
	}
	s.recompute()
}

func (s *PredictScreen) recompute() {
	s.note, s.noting = nil, false
	s.recorded = ""
	if !s.ready || s.fitErr != nil {
		return
	}
	a, err := s.sess.Assess(context.Background(), s.Input())
	if err != nil {
		s.fitErr = err
		return
	}
	s.result = a
}

func (s *PredictScreen) record() tea.Cmd {
	a, ok := s.Result()
	if !ok {
		return nil
	}
	sess := s.sess
	return func() tea.Msg {
		return recordedMsg{err: sess.Record(context.Background(), a, session.SourcePredict)}
	}
}

func (s *PredictScreen) requestNote() tea.Cmd {
	a, ok := s.Result()
	if !ok || !s.sess.Advisor().Enabled() || s.noting {
		return nil
	}
	s.noting = true
	sess, in := s.sess, s.Input()
	return func() tea.Msg {
		return noteMsg{input: in, note: sess.Note(context.Background(), a)}
	}
}

func (s *PredictScreen) View(width, height int) string {
	inputs := s.renderInputs(min(width-4, 64))
	result := s.renderResult(min(width-4, 72))

	var content string
	if width >= 140 {
		content = lipgloss.JoinHorizontal(lipgloss.Top, inputs, "    ", result)
	} else {
		content = inputs + "\n\n" + result
	}
	return s.scroll.View(lipgloss.NewStyle().Padding(0, 2).Render(content), height)
}

func (s *PredictScreen) renderInputs(w int) string {
	lines := []string{components.Heading("Student parameters")}
	for i := range s.sliders {
		lines = append(lines, s.sliders[i].View(w, i == s.focus))
	}
	lines = append(lines, theme.Hint.Render("  "+descriptions[s.focus]))
	return strings.Join(lines, "\n")
}

func (s *PredictScreen) renderResult(w int) string {
	switch {
	case !s.ready:
		return theme.Hint.Render("Training the risk model...")
	case s.fitErr != nil:
		msg := "No prediction available."
		var fitErr *model.ModelFitError
		if errors.As(s.fitErr, &fitErr) {
			msg += " The model could not be trained on this dataset."
		}
		return theme.ErrorText.Render(msg) + "\n" + theme.Hint.Render(s.fitErr.Error())
	}

	a := s.result
	verdict := "Not dropout"
	if a.Dropout {
		verdict = "Dropout"
	}

	gauge := components.Gauge{
		Label: "P(dropout)",
		Value: a.Risk.Probability,
		Width: w,
		Color: theme.RiskColor(a.Risk.Bucket),
		Marks: []float64{risk.LowUpper, risk.HighLower},
	}

	bucket := lipgloss.NewStyle().Foreground(theme.RiskColor(a.Risk.Bucket)).Bold(true).
		Render(a.Risk.Bucket.DisplayName())

	sections := []string{
		components.Heading("Prediction"),
		fmt.Sprintf("%s  %s  %s", theme.Metric.Render(verdict),
			theme.Subtitle.Render(fmt.Sprintf("probability %.2f", a.Risk.Probability)), bucket),
		gauge.View(),
		"",
		theme.Body.Render(a.Report.Headline),
	}
	if len(a.Report.Factors) > 0 {
		sections = append(sections, theme.Subtitle.Render(a.Report.FactorLabel+":"), components.Bullets(a.Report.Factors))
	}
	sections = append(sections,
		theme.Hint.Render(a.Report.Advice),
		"",
		components.Heading("Recommended programmes"),
		components.Bullets(a.Recommendations.Programs),
		"",
		theme.Hint.Render("Held-out evaluation: "+a.Evaluation.String()),
	)

	switch {
	case s.noting:
		sections = append(sections, "", theme.Hint.Render("Drafting counselor note..."))
	case s.note != nil:
		title := "Counselor note"
		if !s.note.Generated {
			title += " (from rules)"
		}
		sections = append(sections, "", components.Heading(title),
			lipgloss.NewStyle().Width(w).Render(theme.Body.Render(s.note.String())))
	}
	if s.recorded != "" {
		sections = append(sections, "", theme.Hint.Render(s.recorded))
	}
	return strings.Join(sections, "\n")
}
