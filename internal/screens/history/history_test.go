package history

import (
	"context"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dropwatch/internal/store"
)

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(context.Background(), fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestEmptyHistory(t *testing.T) {
	s := New(openRepo(t))
	assert.Contains(t, s.View(100, 20), "Loading")
	load(t, s)
	assert.Contains(t, s.View(100, 20), "No assessments yet")
}

func TestListAndExpand(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.AppendAssessment(ctx, store.AssessmentEventData{
		SessionID: "s1", Source: "predict", Age: 19, AdmissionGrade: 150,
		FirstSemesterGrade: 14, TuitionUpToDate: true, Probability: 0.12, Bucket: "low",
		Programs: []string{"Career development programme"},
	}))
	require.NoError(t, repo.AppendAssessment(ctx, store.AssessmentEventData{
		SessionID: "s1", Source: "cli", Age: 31, AdmissionGrade: 104,
		FirstSemesterGrade: 6, Probability: 0.91, Bucket: "high",
		Programs: []string{"Intensive academic mentoring"},
	}))

	s := New(repo)
	load(t, s)

	view := s.View(120, 20)
	assert.Contains(t, view, "P=0.91", "newest first")
	assert.Contains(t, view, "P=0.12")
	assert.NotContains(t, view, "Intensive academic mentoring")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(120, 20)
	assert.Contains(t, view, "Intensive academic mentoring")
	assert.Contains(t, view, "admission 104.0")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.cursor, "cursor stops at the last row")
}

func TestTabFiltersBySource(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	for _, src := range []string{"predict", "cli", "predict"} {
		require.NoError(t, repo.AppendAssessment(ctx, store.AssessmentEventData{
			SessionID: "s1", Source: src, Probability: 0.5, Bucket: "medium",
		}))
	}

	s := New(repo)
	load(t, s)
	assert.Contains(t, s.View(120, 20), "3 assessments, all sources")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(120, 20), "Loading")
	s.Update(cmd())
	assert.Contains(t, s.View(120, 20), "2 assessments, source: predict")

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(cmd())
	view := s.View(120, 20)
	assert.Contains(t, view, "1 assessments, source: cli")
	assert.NotContains(t, view, "predict ")

	s.Update(loadedMsg{source: "predict"})
	assert.Contains(t, s.View(120, 20), "source: cli", "stale replies are ignored")
}

func TestLoadError(t *testing.T) {
	s := New(openRepo(t))
	s.Update(loadedMsg{err: fmt.Errorf("database is locked")})
	assert.Contains(t, s.View(100, 20), "database is locked")
}
