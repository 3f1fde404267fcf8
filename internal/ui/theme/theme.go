package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/risk"
)

// Palette: muted analytics tones on a dark background.
var (
	Primary   = lipgloss.Color("#38BDF8") // Sky
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Series is the qualitative palette for categorical charts.
var Series = []color.Color{
	lipgloss.Color("#38BDF8"),
	lipgloss.Color("#F59E0B"),
	lipgloss.Color("#A78BFA"),
	lipgloss.Color("#34D399"),
	lipgloss.Color("#F472B6"),
	lipgloss.Color("#FB923C"),
	lipgloss.Color("#60A5FA"),
	lipgloss.Color("#FACC15"),
}

// SeriesColor returns the i-th palette color, wrapping around.
func SeriesColor(i int) color.Color {
	return Series[i%len(Series)]
}

// RiskColor maps a risk bucket to its signal color.
func RiskColor(b risk.Bucket) color.Color {
	switch b {
	case risk.High:
		return Error
	case risk.Medium:
		return Warning
	default:
		return Success
	}
}

// OutcomeColor maps a student outcome to its chart color.
func OutcomeColor(o dataset.Outcome) color.Color {
	switch o {
	case dataset.OutcomeDropout:
		return Error
	case dataset.OutcomeEnrolled:
		return Accent
	case dataset.OutcomeGraduate:
		return Success
	default:
		return TextDim
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Metric = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)
)

// Components
var (
	TabActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 2)
)
