package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// Series names one value position of a BarGroup.
type Series struct {
	Name  string
	Color color.Color
}

// BarGroup is one category of a GroupedBars chart, holding one value per
// series.
type BarGroup struct {
	Label  string
	Values []float64
}

// GroupedBars renders a category label followed by one thin bar per
// series, all on a shared scale.
type GroupedBars struct {
	Series []Series
	Groups []BarGroup
	Width  int
}

// View renders the legend and the groups.
func (g GroupedBars) View() string {
	if len(g.Groups) == 0 {
		return theme.Hint.Render("no data")
	}

	maxV := 0.0
	for _, grp := range g.Groups {
		for _, v := range grp.Values {
			maxV = max(maxV, v)
		}
	}
	track := max(g.Width-10, 4)

	var b strings.Builder
	b.WriteString(g.Legend())
	b.WriteString("\n")
	for _, grp := range g.Groups {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(truncate(grp.Label, g.Width)))
		for i, v := range grp.Values {
			col := theme.SeriesColor(i)
			if i < len(g.Series) && g.Series[i].Color != nil {
				col = g.Series[i].Color
			}
			n := scaled(v, maxV, track)
			b.WriteString("\n  ")
			b.WriteString(lipgloss.NewStyle().Foreground(col).Render(strings.Repeat("▆", n)))
			b.WriteString(theme.Subtitle.Render(fmt.Sprintf(" %.0f", v)))
		}
	}
	return b.String()
}

// Legend renders the series names with their colors.
func (g GroupedBars) Legend() string {
	parts := make([]string, len(g.Series))
	for i, s := range g.Series {
		col := s.Color
		if col == nil {
			col = theme.SeriesColor(i)
		}
		parts[i] = lipgloss.NewStyle().Foreground(col).Render("■") + " " + theme.Subtitle.Render(s.Name)
	}
	return strings.Join(parts, "   ")
}
