// Package router keeps the stack of dashboard pages: home at the bottom,
// the page the user drilled into on top.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dropwatch/internal/screen"
)

// PushScreenMsg opens Screen on top of the current page.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the previous page.
type PopScreenMsg struct{}

// Router holds the page stack. It is never empty.
type Router struct {
	stack []screen.Screen
}

// New starts a stack with root at the bottom.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the top page. The root page is never popped.
func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// Active is the page on top.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth is the number of open pages.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and hands everything else to the
// active page. Broadcasts go to every open page, bottom first, so a page
// the user returns to is already up to date.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	case screen.Broadcast:
		cmds := make([]tea.Cmd, len(r.stack))
		for i, s := range r.stack {
			r.stack[i], cmds[i] = s.Update(msg)
		}
		return tea.Batch(cmds...)
	}

	top := len(r.stack) - 1
	updated, cmd := r.stack[top].Update(msg)
	r.stack[top] = updated
	return cmd
}

// View renders the active page.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
