package app

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dropwatch/internal/router"
	"github.com/abhisek/dropwatch/internal/screen"
	"github.com/abhisek/dropwatch/internal/screens/home"
	"github.com/abhisek/dropwatch/internal/screens/placeholder"
	"github.com/abhisek/dropwatch/internal/screens/recommend"
	"github.com/abhisek/dropwatch/internal/session/sessiontest"
)

func sized(m AppModel) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(AppModel)
}

func TestNewAppModel_LoadErrorShowsErrorPage(t *testing.T) {
	m := sized(newAppModel(Options{LoadErr: errors.New("open data.csv: no such file")}))
	assert.IsType(t, &placeholder.PlaceholderScreen{}, m.router.Active())
	assert.Nil(t, m.Init())
	assert.Contains(t, m.render(), "no such file")

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestInit_TrainsModel(t *testing.T) {
	m := sized(newAppModel(Options{Session: sessiontest.New(t, sessiontest.Options{})}))
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
	assert.Contains(t, ansi.Strip(m.render()), "model: training")

	cmd := m.Init()
	require.NotNil(t, cmd)
	msg, ok := cmd().(screen.ModelReadyMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	updated, _ := m.Update(msg)
	assert.Contains(t, ansi.Strip(updated.(AppModel).render()), "model: ready")
}

func TestEsc_PopsUnlessScreenCapturesIt(t *testing.T) {
	sess := sessiontest.New(t, sessiontest.Options{Rows: 30})
	m := sized(newAppModel(Options{Session: sess}))

	m.router.Push(recommend.New(sess))
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())

	// With the course input focused, esc only leaves the input.
	m.Update(tea.KeyPressMsg{Code: '/', Text: "/"})
	active := m.router.Active().(*recommend.RecommendScreen)
	require.True(t, active.CapturesEscape())
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.False(t, active.CapturesEscape())
	assert.Equal(t, 2, m.router.Depth())
}

func TestEsc_OnHomeDoesNothing(t *testing.T) {
	m := sized(newAppModel(Options{Session: sessiontest.New(t, sessiontest.Options{Rows: 30})}))
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestView_FooterUsesScreenHints(t *testing.T) {
	sess := sessiontest.New(t, sessiontest.Options{Rows: 30})
	m := sized(newAppModel(Options{Session: sess}))
	m.router.Push(recommend.New(sess))
	content := m.render()
	assert.Contains(t, content, "Clear course")
	assert.Contains(t, content, "Quit")
}
