package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dropwatch/internal/screen"
)

type pingMsg struct{}

// page records what reached it.
type page struct {
	title    string
	inits    int
	received []tea.Msg
}

func (p *page) Init() tea.Cmd {
	p.inits++
	return func() tea.Msg { return pingMsg{} }
}

func (p *page) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	p.received = append(p.received, msg)
	return p, nil
}

func (p *page) View(int, int) string { return p.title }
func (p *page) Title() string        { return p.title }

func TestPushPop(t *testing.T) {
	home := &page{title: "home"}
	r := New(home)

	predict := &page{title: "predict"}
	cmd := r.Update(PushScreenMsg{Screen: predict})
	require.NotNil(t, cmd, "push returns the Init command")
	assert.Equal(t, pingMsg{}, cmd())
	assert.Equal(t, 1, predict.inits)
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "predict", r.View(80, 24))

	assert.Nil(t, r.Update(PopScreenMsg{}))
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, home, r.Active())
	assert.Zero(t, home.inits, "popping does not re-init")
}

func TestPop_KeepsRoot(t *testing.T) {
	home := &page{title: "home"}
	r := New(home)
	r.Pop()
	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, home, r.Active())
}

func TestUpdate_OnlyActiveGetsInput(t *testing.T) {
	home, charts := &page{title: "home"}, &page{title: "charts"}
	r := New(home)
	r.Push(charts)

	r.Update(pingMsg{})
	assert.Empty(t, home.received)
	assert.Equal(t, []tea.Msg{pingMsg{}}, charts.received)
}

func TestUpdate_BroadcastReachesEveryPage(t *testing.T) {
	home, predict := &page{title: "home"}, &page{title: "predict"}
	r := New(home)
	r.Push(predict)

	msg := screen.ModelReadyMsg{}
	r.Update(msg)
	assert.Equal(t, []tea.Msg{msg}, home.received)
	assert.Equal(t, []tea.Msg{msg}, predict.received)
}
