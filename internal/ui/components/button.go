package components

import (
	"charm.land/lipgloss/v2"

	"github.com/baiyu/pjexam/internal/ui/theme"
)

// Button renders the single action button of a form-style screen. The
// label flips between states (confirm / next) from the outside.
type Button struct {
	Label  string
	Active bool
}

// View renders the button.
func (b Button) View() string {
	label := " " + b.Label + " "
	if b.Active {
		return lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Text).
			Bold(true).
			Padding(0, 2).
			Render(label)
	}
	return lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Render(label)
}
