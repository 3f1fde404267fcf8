package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dropwatch/internal/model"
	"github.com/abhisek/dropwatch/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Broadcast is implemented by messages every open screen must see, not
// only the active one.
type Broadcast interface {
	broadcast()
}

// ModelReadyMsg is broadcast when the session model has been trained or
// loaded, or has failed to fit.
type ModelReadyMsg struct {
	Result *model.TrainResult
	Err    error
}

func (ModelReadyMsg) broadcast() {}

// EscapeCapturer is an optional interface for screens that use esc
// themselves while CapturesEscape returns true, e.g. to leave a text input.
type EscapeCapturer interface {
	CapturesEscape() bool
}
