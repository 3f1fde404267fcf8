package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/insight"
	"github.com/abhisek/dropwatch/internal/llm"
	"github.com/abhisek/dropwatch/internal/recommend"
	"github.com/abhisek/dropwatch/internal/risk"
)

func highRiskInput() Input {
	in := features.Input{
		Age:                30,
		AdmissionGrade:     105,
		FirstSemesterGrade: 7,
		TuitionUpToDate:    false,
	}
	a := risk.Assess(0.82)
	rec := in.Record()
	return NewInput(in, insight.Explain(a, in), recommend.Recommend(a.Bucket, rec))
}

func validNoteJSON() json.RawMessage {
	return json.RawMessage(`{
		"summary": "The student is behind on tuition and struggled in the first semester.",
		"talking_points": ["Agree a tuition payment plan", "Book weekly mentoring sessions"]
	}`)
}

func TestGenerate_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validNoteJSON()})
	svc := NewService(mock, DefaultConfig())

	note, err := svc.Generate(context.Background(), highRiskInput())
	require.NoError(t, err)

	assert.True(t, note.Generated)
	assert.Equal(t, "mock", note.Model)
	assert.Contains(t, note.Summary, "tuition")
	assert.Len(t, note.TalkingPoints, 2)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Same(t, NoteSchema, reqs[0].Schema)
	msg := reqs[0].Prompt
	assert.Contains(t, msg, "0.82")
	assert.Contains(t, msg, "Financial Aid Program")
	assert.Contains(t, msg, "Tuition fees are overdue")
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.Error{Kind: llm.KindUnavailable, Err: errors.New("down")}})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Generate(context.Background(), highRiskInput())
	require.Error(t, err)
	kind, ok := llm.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, llm.KindUnavailable, kind)
}

func TestGenerate_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Generate(context.Background(), highRiskInput())
	kind, ok := llm.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, llm.KindInvalidResponse, kind)
}

func TestGenerate_EmptySummary(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"summary":"  ","talking_points":["x"]}`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Generate(context.Background(), highRiskInput())
	assert.ErrorContains(t, err, "empty summary")
}

func TestDraft_FallsBackToReport(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig())
	in := highRiskInput()

	note, err := svc.Draft(context.Background(), in)
	require.Error(t, err)
	assert.False(t, note.Generated)
	assert.Contains(t, note.Summary, "high dropout risk")
	assert.Contains(t, note.Summary, "Main risk factors")
	assert.Len(t, note.TalkingPoints, len(in.Programs))
}

func TestService_Disabled(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	assert.False(t, svc.Enabled())

	var nilSvc *Service
	assert.False(t, nilSvc.Enabled())

	_, err := svc.Generate(context.Background(), highRiskInput())
	assert.Error(t, err)
}

func TestNewInput_UsesRecommendations(t *testing.T) {
	in := highRiskInput()
	assert.Equal(t, []string{
		"Financial Aid Program",
		"Intensive Academic Mentoring",
		"Adult-Student Support Program",
	}, in.Programs)
	assert.Len(t, in.Profile, 5)
}

func TestNote_String(t *testing.T) {
	n := Note{Summary: "Summary.", TalkingPoints: []string{"a", "b"}}
	assert.Equal(t, "Summary.\n  - a\n  - b", n.String())
}
