package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// Slider is a numeric input bounded by [Min, Max]. A Toggle slider holds
// a boolean as 0 or 1 and renders Yes/No.
type Slider struct {
	Label    string
	Min, Max float64
	Step     float64
	Value    float64
	Toggle   bool
	Format   string // default "%.1f"
}

// NewSlider creates a slider clamped to its range.
func NewSlider(label string, lo, hi, step, value float64) Slider {
	s := Slider{Label: label, Min: lo, Max: hi, Step: step}
	s.Set(value)
	return s
}

// NewToggle creates a boolean slider.
func NewToggle(label string, on bool) Slider {
	s := Slider{Label: label, Max: 1, Step: 1, Toggle: true}
	s.SetBool(on)
	return s
}

// Set assigns v, clamped to the range.
func (s *Slider) Set(v float64) {
	s.Value = math.Max(s.Min, math.Min(s.Max, v))
}

// SetBool assigns a toggle value.
func (s *Slider) SetBool(on bool) {
	if on {
		s.Value = 1
	} else {
		s.Value = 0
	}
}

// Bool reports whether a toggle is on.
func (s Slider) Bool() bool { return s.Value >= 0.5 }

// Increment moves the value up by n steps. Toggles flip.
func (s *Slider) Increment(n int) {
	if s.Toggle {
		s.SetBool(!s.Bool())
		return
	}
	s.Set(s.Value + float64(n)*s.Step)
}

// Decrement moves the value down by n steps. Toggles flip.
func (s *Slider) Decrement(n int) {
	s.Increment(-n)
}

// Fraction is the position of the value within the range, in [0, 1].
func (s Slider) Fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// View renders "label  ──────●────  value" in width cells.
func (s Slider) View(width int, focused bool) string {
	labelStyle := theme.Unselected
	marker := "  "
	if focused {
		labelStyle = theme.Selected
		marker = "▸ "
	}
	label := labelStyle.Render(marker + s.Label)

	if s.Toggle {
		yes, no := theme.Subtitle.Render("Yes"), theme.Subtitle.Render("No")
		if s.Bool() {
			yes = theme.Selected.Render("[Yes]")
		} else {
			no = theme.Selected.Render("[No]")
		}
		return label + "  " + yes + " " + no
	}

	format := s.Format
	if format == "" {
		format = "%.1f"
	}
	value := fmt.Sprintf(format, s.Value)
	track := max(width-lipgloss.Width(label)-len(value)-4, 6)
	knob := int(math.Round(s.Fraction() * float64(track-1)))

	knobStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if focused {
		knobStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	bar := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("━", knob)) +
		knobStyle.Render("●") +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", track-1-knob))

	return label + "  " + bar + "  " + theme.Metric.Render(value)
}
