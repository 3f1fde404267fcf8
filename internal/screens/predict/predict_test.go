package predict

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dropwatch/internal/advisor"
	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/llm"
	"github.com/abhisek/dropwatch/internal/model"
	"github.com/abhisek/dropwatch/internal/screen"
	"github.com/abhisek/dropwatch/internal/session/sessiontest"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func text(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

// ready runs the screen's Init command and delivers the result.
func ready(t *testing.T, s *PredictScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(screen.ModelReadyMsg)
	require.True(t, ok, "Init should produce ModelReadyMsg, got %T", msg)
	s.Update(msg)
}

func TestNew_DefaultsToDatasetMeans(t *testing.T) {
	sess := sessiontest.New(t, sessiontest.Options{})
	s := New(sess)

	want := features.DefaultInput(sess.Ranges())
	got := s.Input()
	assert.InDelta(t, want.Age, got.Age, 1e-9)
	assert.InDelta(t, want.AdmissionGrade, got.AdmissionGrade, 1e-9)
	assert.Equal(t, want.ScholarshipHolder, got.ScholarshipHolder)
	assert.Equal(t, want.TuitionUpToDate, got.TuitionUpToDate)

	_, ok := s.Result()
	assert.False(t, ok, "no result before the model is ready")
	assert.Contains(t, s.View(120, 40), "Training")
}

func TestModelReady_ComputesAssessment(t *testing.T) {
	s := New(sessiontest.New(t, sessiontest.Options{}))
	ready(t, s)

	a, ok := s.Result()
	require.True(t, ok)
	assert.GreaterOrEqual(t, a.Risk.Probability, 0.0)
	assert.LessOrEqual(t, a.Risk.Probability, 1.0)
	assert.NotEmpty(t, a.Recommendations.Programs)

	view := s.View(120, 60)
	assert.Contains(t, view, "P(dropout)")
	assert.Contains(t, view, a.Risk.Bucket.DisplayName())
	assert.Contains(t, view, "Recommended programmes")
}

func TestFocusAndAdjust(t *testing.T) {
	s := New(sessiontest.New(t, sessiontest.Options{}))
	ready(t, s)
	before := s.Input().AdmissionGrade

	s.Update(key(tea.KeyDown))
	assert.Equal(t, features.AdmissionGrade, s.focus)

	s.Update(key(tea.KeyRight))
	assert.InDelta(t, before+0.5, s.Input().AdmissionGrade, 1e-9)

	s.Update(key(tea.KeyUp))
	s.Update(key(tea.KeyUp))
	assert.Equal(t, features.TuitionUpToDate, s.focus, "focus wraps around")

	paid := s.Input().TuitionUpToDate
	s.Update(key(tea.KeyLeft))
	assert.Equal(t, !paid, s.Input().TuitionUpToDate, "toggles flip")
}

func TestAdjust_RecomputesProbability(t *testing.T) {
	s := New(sessiontest.New(t, sessiontest.Options{}))
	ready(t, s)

	s.focus = features.FirstSemesterGrade
	for range 80 {
		s.Update(key(tea.KeyLeft))
	}
	low, _ := s.Result()

	for range 160 {
		s.Update(key(tea.KeyRight))
	}
	high, _ := s.Result()

	assert.Greater(t, low.Risk.Probability, high.Risk.Probability,
		"a weaker first semester should raise the dropout probability")
}

func TestReset_RestoresDefaults(t *testing.T) {
	sess := sessiontest.New(t, sessiontest.Options{})
	s := New(sess)
	ready(t, s)

	s.Update(key(tea.KeyRight))
	s.Update(key(tea.KeyRight))
	s.Update(text("r"))

	assert.InDelta(t, features.DefaultInput(sess.Ranges()).Age, s.Input().Age, 1e-9)
}

func TestFitError_ShowsNoPrediction(t *testing.T) {
	s := New(sessiontest.New(t, sessiontest.Options{}))
	s.Update(screen.ModelReadyMsg{Err: &model.ModelFitError{Rows: 3, Err: model.ErrSingleClass}})

	_, ok := s.Result()
	assert.False(t, ok)
	view := s.View(120, 40)
	assert.Contains(t, view, "No prediction available")
	assert.Nil(t, s.record(), "nothing to record without a model")
}

func TestRecord_WithoutStoreSucceeds(t *testing.T) {
	s := New(sessiontest.New(t, sessiontest.Options{}))
	ready(t, s)

	_, cmd := s.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.Equal(t, "Assessment recorded.", s.recorded)
}

func TestRecordFailure_IsShown(t *testing.T) {
	s := New(sessiontest.New(t, sessiontest.Options{}))
	s.Update(recordedMsg{err: errors.New("disk full")})
	assert.True(t, strings.HasPrefix(s.recorded, "Could not record"))
}

func TestNoteKey_IgnoredWithoutAdvisor(t *testing.T) {
	s := New(sessiontest.New(t, sessiontest.Options{}))
	ready(t, s)

	_, cmd := s.Update(text("n"))
	assert.Nil(t, cmd)
	for _, h := range s.KeyHints() {
		assert.NotEqual(t, "n", h.Key)
	}
}

func TestNoteKey_DraftsCounselorNote(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"summary":"Follow up on tuition this week.","talking_points":["Offer a payment plan"]}`)})
	sess := sessiontest.New(t, sessiontest.Options{Advisor: advisor.NewService(mock, advisor.DefaultConfig())})
	s := New(sess)
	ready(t, s)

	_, cmd := s.Update(text("n"))
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(120, 80), "Drafting counselor note")

	s.Update(cmd())
	require.NotNil(t, s.note)
	assert.True(t, s.note.Generated)
	assert.Contains(t, s.View(120, 80), "Follow up on tuition")
	assert.Len(t, mock.Requests(), 1)
}

func TestNote_DroppedWhenInputChanged(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"summary":"Note for the first input.","talking_points":["a"]}`)},
		llm.MockResponse{Content: json.RawMessage(`{"summary":"Note for the older student.","talking_points":["b"]}`)},
	)
	sess := sessiontest.New(t, sessiontest.Options{Advisor: advisor.NewService(mock, advisor.DefaultConfig())})
	s := New(sess)
	ready(t, s)

	_, stale := s.Update(text("n"))
	require.NotNil(t, stale)
	for range 20 {
		s.Update(key(tea.KeyRight))
	}

	s.Update(stale())
	assert.Nil(t, s.note)
	assert.NotContains(t, s.View(120, 80), "Note for the first input")

	_, fresh := s.Update(text("n"))
	require.NotNil(t, fresh, "a moved slider allows a new request")
	s.Update(fresh())
	require.NotNil(t, s.note)
	assert.Contains(t, s.View(120, 80), "Note for the older student")
}
