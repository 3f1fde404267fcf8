package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/ui/theme"
)

const titleText = "D · R · O · P · W · A · T · C · H"

const taglineText = "Student dropout risk dashboard"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the centered title and tagline.
func renderTitle(cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(titleText)
	tagline := theme.Subtitle.Render(taglineText)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n" + tagline)
}

// renderStatsBar renders the headline metrics in a bordered box matching
// the content width.
func renderStatsBar(o dataset.Overview, report dataset.CleanReport, modelStatus string, cw int, compact bool) string {
	students := theme.Metric.Render(fmt.Sprintf("%d students", o.Total))
	rate := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
		Render(fmt.Sprintf("%.2f%% dropout", o.DropoutRate))
	model := theme.Subtitle.Render("model: " + modelStatus)

	stats := students + "   " + rate
	if !compact {
		stats += "   " + model
		dropped := report.NullRowsDropped + report.DuplicateRowsDropped
		if dropped > 0 {
			stats += "\n" + theme.Hint.Render(fmt.Sprintf("%d incomplete or duplicate rows removed", dropped))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMenuBox renders the menu left-aligned inside a box of the content
// width.
func renderMenuBox(menu string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Padding(0, 2).
		Render(menu)
}

// renderLLMNote renders a dim hint when no LLM provider is configured.
func renderLLMNote(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("Set an LLM API key to enable counselor notes (see dropwatch --help)")
}

// renderFrame wraps content in a rounded frame, centering vertically and
// horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width-2).   // account for border chars
		Height(height-2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
