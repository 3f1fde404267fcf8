package components

import (
	"strings"

	"github.com/abhisek/dropwatch/internal/ui/theme"
)

// Heading renders a section title.
func Heading(s string) string {
	return theme.Title.Render(s)
}

// Notes renders a titled bullet list of insights. It returns "" for no
// lines.
func Notes(title string, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.Selected.Render(title))
	for _, l := range lines {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("• " + l))
	}
	return b.String()
}

// Bullets renders lines as a plain bullet list.
func Bullets(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = theme.Body.Render("• " + l)
	}
	return strings.Join(out, "\n")
}
