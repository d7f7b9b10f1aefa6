package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette. The app ships a dark and a light variant; SetDark swaps
// the palette in place so styles rebuilt afterwards pick up the new
// colors.
var (
	Primary   = lipgloss.Color("#D97706") // Amber, the pour
	Secondary = lipgloss.Color("#0D9488") // Teal
	Accent    = lipgloss.Color("#DC2626") // Red, the label seal
	Success   = lipgloss.Color("#16A34A") // Green
	Error     = lipgloss.Color("#E11D48") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#1C1917") // Near black
	BgCard    = lipgloss.Color("#292524") // Warm dark
	Border    = lipgloss.Color("#44403C") // Stone
)

// SetDark switches between the dark and light palettes and rebuilds the
// derived styles.
func SetDark(dark bool) {
	if dark {
		Text = lipgloss.Color("#F8FAFC")
		TextDim = lipgloss.Color("#94A3B8")
		BgDark = lipgloss.Color("#1C1917")
		BgCard = lipgloss.Color("#292524")
		Border = lipgloss.Color("#44403C")
	} else {
		Text = lipgloss.Color("#1C1917")
		TextDim = lipgloss.Color("#57534E")
		BgDark = lipgloss.Color("#FAFAF9")
		BgCard = lipgloss.Color("#F5F5F4")
		Border = lipgloss.Color("#D6D3D1")
	}
	rebuild()
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

func rebuild() {
	Subtitle = Subtitle.Foreground(TextDim)
	Body = Body.Foreground(Text)
	Hint = Hint.Foreground(TextDim)
	Card = Card.Background(BgCard).BorderForeground(Border)
	Unselected = Unselected.Foreground(Text)
}
