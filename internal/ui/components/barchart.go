package components

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// Bar is one labelled value of a BarChart.
type Bar struct {
	Label string
	Value float64
	Color color.Color // nil = palette color by position
}

// BarChart renders horizontal bars, one per line. Signed charts draw
// negative values left of a zero axis.
type BarChart struct {
	Bars   []Bar
	Width  int
	Signed bool
	Format string // value format, default "%.0f"
}

// View renders the chart.
func (c BarChart) View() string {
	if len(c.Bars) == 0 {
		return theme.Hint.Render("no data")
	}
	format := c.Format
	if format == "" {
		format = "%.0f"
	}

	labelWidth, valueWidth := 0, 0
	maxAbs := 0.0
	for _, b := range c.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		valueWidth = max(valueWidth, len(fmt.Sprintf(format, b.Value)))
		maxAbs = math.Max(maxAbs, math.Abs(b.Value))
	}
	labelWidth = min(labelWidth, max(c.Width/3, 8))

	track := c.Width - labelWidth - valueWidth - 3
	if track < 4 {
		track = 4
	}
	half := track / 2

	var lines []string
	for i, b := range c.Bars {
		col := b.Color
		if col == nil {
			col = theme.SeriesColor(i)
		}
		style := lipgloss.NewStyle().Foreground(col)

		label := truncate(b.Label, labelWidth)
		label += strings.Repeat(" ", labelWidth-lipgloss.Width(label))

		var bar string
		if c.Signed {
			n := scaled(math.Abs(b.Value), maxAbs, half)
			if b.Value < 0 {
				bar = strings.Repeat(" ", half-n) + style.Render(strings.Repeat("█", n)) + "│" + strings.Repeat(" ", half)
			} else {
				bar = strings.Repeat(" ", half) + "│" + style.Render(strings.Repeat("█", n)) + strings.Repeat(" ", half-n)
			}
		} else {
			n := scaled(b.Value, maxAbs, track)
			bar = style.Render(strings.Repeat("█", n)) + strings.Repeat(" ", track-n)
		}

		value := theme.Subtitle.Render(fmt.Sprintf("%*s", valueWidth, fmt.Sprintf(format, b.Value)))
		lines = append(lines, theme.Body.Render(label)+" "+bar+" "+value)
	}
	return strings.Join(lines, "\n")
}

// scaled maps v in [0, maxV] onto [0, width] cells. Non-zero values get at
// least one cell.
func scaled(v, maxV float64, width int) int {
	if maxV <= 0 || v <= 0 {
		return 0
	}
	n := int(math.Round(v / maxV * float64(width)))
	return max(1, min(n, width))
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
