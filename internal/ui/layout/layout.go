// Package layout draws the chrome around every page: a header bar with
// the page title and dataset status, and a footer bar with key hints.
package layout

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// The charts need at least this much room.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Status is the dataset and model summary on the right of the header.
type Status struct {
	Rows int
	// Model is the session status text, e.g. "training", "ready",
	// "cached" or "unavailable". Empty hides it.
	Model string
}

func (s Status) render() string {
	out := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%d students", s.Rows))
	if s.Model == "" {
		return out
	}
	return out +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("   model: ") +
		lipgloss.NewStyle().Foreground(modelColor(s.Model)).Render(s.Model)
}

func modelColor(s string) color.Color {
	switch s {
	case "ready", "cached":
		return theme.Success
	case "unavailable":
		return theme.Error
	default:
		return theme.TextDim
	}
}

// Frame is the chrome of one page.
type Frame struct {
	Title  string
	Status Status
	Hints  []KeyHint
}

// Render draws the frame at width x height and fills the space between
// header and footer with body, which gets the remaining size.
func (f Frame) Render(width, height int, body func(width, height int) string) string {
	header := f.header(width)
	footer := f.footer(width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (f Frame) header(width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Dropwatch")
	left := brand
	if f.Title != "" {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  /  ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	}
	right := f.Status.render()

	inner := max(width-4, 0) // border and padding
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return bar(left+strings.Repeat(" ", gap)+right, width)
}

func (f Frame) footer(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar(strings.Join(parts, "   "), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// TooSmall returns the resize notice when the terminal is below the
// minimum size, or "" when it fits.
func TooSmall(width, height int) string {
	if width >= MinWidth && height >= MinHeight {
		return ""
	}
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small\n\nThe dashboard needs at least %d x %d.\nCurrent size: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}
