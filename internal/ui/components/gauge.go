package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// Gauge draws a share in [0, 1] as a filled track followed by its
// percentage, e.g. a dropout probability or a bucket's share of a cohort.
type Gauge struct {
	Label string
	Value float64
	Width int         // total, label and percentage included
	Color color.Color // nil = theme.Secondary
	Marks []float64   // ticks on the track, e.g. bucket thresholds
}

const gaugePercentWidth = len("  100%")

func (g Gauge) View() string {
	v := max(0, min(g.Value, 1))

	var label string
	if g.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(g.Label) + "  "
	}
	track := max(4, g.Width-lipgloss.Width(label)-gaugePercentWidth)

	cells := []rune(strings.Repeat(" ", track))
	for _, m := range g.Marks {
		if i := int(float64(track) * m); i > 0 && i < track {
			cells[i] = '│'
		}
	}
	filled := int(float64(track) * v)

	fill := g.Color
	if fill == nil {
		fill = theme.Secondary
	}
	on := lipgloss.NewStyle().Background(fill).Foreground(theme.BgDark)
	off := lipgloss.NewStyle().Background(theme.Border).Foreground(theme.TextDim)
	pct := lipgloss.NewStyle().Foreground(theme.TextDim)

	return label +
		on.Render(string(cells[:filled])) +
		off.Render(string(cells[filled:])) +
		pct.Render(fmt.Sprintf("%*d%%", gaugePercentWidth-1, int(v*100+0.5)))
}
