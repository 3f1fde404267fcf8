package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/ui/theme"
)

var blocks = []rune(" ▁▂▃▄▅▆▇█")

// Histogram renders bins as vertical columns of block characters, with
// the range of the first and last bin underneath.
type Histogram struct {
	Bins   []dataset.Bin
	Height int // rows, default 4
	Color  color.Color
}

// View renders the histogram.
func (h Histogram) View() string {
	if len(h.Bins) == 0 {
		return theme.Hint.Render("no data")
	}
	height := h.Height
	if height <= 0 {
		height = 4
	}
	col := h.Color
	if col == nil {
		col = theme.Primary
	}
	style := lipgloss.NewStyle().Foreground(col)

	peak := 0
	for _, b := range h.Bins {
		peak = max(peak, b.Count)
	}

	// Heights in eighths of a row.
	levels := make([]int, len(h.Bins))
	for i, b := range h.Bins {
		if peak > 0 {
			levels[i] = b.Count * height * 8 / peak
			if b.Count > 0 && levels[i] == 0 {
				levels[i] = 1
			}
		}
	}

	rows := make([]string, height)
	for r := range height {
		floor := (height - 1 - r) * 8
		var line strings.Builder
		for _, lv := range levels {
			fill := min(max(lv-floor, 0), 8)
			line.WriteRune(blocks[fill])
		}
		rows[r] = style.Render(line.String())
	}

	lo := fmt.Sprintf("%.1f", h.Bins[0].Lo)
	hi := fmt.Sprintf("%.1f", h.Bins[len(h.Bins)-1].Hi)
	gap := max(len(h.Bins)-len(lo)-len(hi), 1)
	axis := theme.Subtitle.Render(lo + strings.Repeat(" ", gap) + hi)

	return strings.Join(rows, "\n") + "\n" + axis
}
