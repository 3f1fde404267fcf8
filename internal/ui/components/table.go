package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// KeyValue renders label/value pairs with aligned values.
func KeyValue(rows [][2]string) string {
	keyWidth := 0
	for _, r := range rows {
		keyWidth = max(keyWidth, lipgloss.Width(r[0]))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		pad := strings.Repeat(" ", keyWidth-lipgloss.Width(r[0]))
		lines[i] = theme.Subtitle.Render(r[0]+pad) + "  " + theme.Body.Render(r[1])
	}
	return strings.Join(lines, "\n")
}

// Table renders a header row and data rows in aligned columns. Columns
// after the first are right-aligned.
type Table struct {
	Headers []string
	Rows    [][]string
}

// View renders the table.
func (t Table) View() string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	render := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 {
				parts[i] = cell + pad
			} else {
				parts[i] = pad + cell
			}
		}
		return style.Render(strings.Join(parts, "   "))
	}

	lines := []string{render(t.Headers, theme.Selected)}
	for _, row := range t.Rows {
		lines = append(lines, render(row, theme.Body))
	}
	return strings.Join(lines, "\n")
}
