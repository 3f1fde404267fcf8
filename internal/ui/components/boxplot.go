package components

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// BoxPlot renders a five-number summary on one line against a shared axis
// [Lo, Hi], so several plots can be compared when stacked.
type BoxPlot struct {
	Label  string
	Box    dataset.Box
	Lo, Hi float64
	Width  int
	Color  color.Color
}

// View renders "label  ├──[  │  ]──┤  median".
func (p BoxPlot) View() string {
	label := theme.Body.Render(p.Label)
	if p.Box.N == 0 {
		return label + "  " + theme.Hint.Render("no data")
	}
	col := p.Color
	if col == nil {
		col = theme.Primary
	}

	track := max(p.Width-lipgloss.Width(label)-12, 10)
	pos := func(v float64) int {
		if p.Hi <= p.Lo {
			return 0
		}
		i := int(math.Round((v - p.Lo) / (p.Hi - p.Lo) * float64(track-1)))
		return max(0, min(i, track-1))
	}

	line := []rune(strings.Repeat(" ", track))
	lo, q1, med, q3, hi := pos(p.Box.Min), pos(p.Box.Q1), pos(p.Box.Median), pos(p.Box.Q3), pos(p.Box.Max)
	for i := lo; i <= hi; i++ {
		line[i] = '─'
	}
	for i := q1; i <= q3; i++ {
		line[i] = '█'
	}
	line[lo] = '├'
	line[hi] = '┤'
	line[med] = '┃'

	return label + "  " +
		lipgloss.NewStyle().Foreground(col).Render(string(line)) +
		theme.Subtitle.Render(fmt.Sprintf("  %.1f", p.Box.Median))
}

// BoxPlots stacks plots for several groups on a common axis spanning all
// of them. Labels are padded to the same width.
func BoxPlots(labels []string, boxes []dataset.Box, colors []color.Color, width int) string {
	lo, hi := math.Inf(1), math.Inf(-1)
	labelWidth := 0
	for i, b := range boxes {
		if b.N == 0 {
			continue
		}
		lo = math.Min(lo, b.Min)
		hi = math.Max(hi, b.Max)
		labelWidth = max(labelWidth, lipgloss.Width(labels[i]))
	}
	if math.IsInf(lo, 1) {
		return theme.Hint.Render("no data")
	}

	lines := make([]string, len(boxes))
	for i, b := range boxes {
		var col color.Color
		if i < len(colors) {
			col = colors[i]
		}
		label := labels[i] + strings.Repeat(" ", max(labelWidth-lipgloss.Width(labels[i]), 0))
		lines[i] = BoxPlot{Label: label, Box: b, Lo: lo, Hi: hi, Width: width, Color: col}.View()
	}
	return strings.Join(lines, "\n")
}
