package charts

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/dropwatch/internal/dataset/datasettest"
)

func TestTabs_Cycle(t *testing.T) {
	s := New(datasettest.Dataset(30, 1))
	assert.Equal(t, TabCorrelations, s.Active())
	assert.Contains(t, s.View(140, 200), "Correlation with Target")

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, TabCourses, s.Active())

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, TabStatus, s.Active())

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, TabDistributions, s.Active())

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, TabStatus, s.Active())
}

func TestTabs_RenderEveryChart(t *testing.T) {
	s := New(datasettest.Dataset(60, 2))
	for i := range tabLabels {
		s.tabs.Active = i
		view := s.View(140, 300)
		assert.NotEmpty(t, view, "tab %d", i)
		assert.Contains(t, view, tabLabels[i])
	}
}
