package components

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/baiyu/pjexam/internal/ui/theme"
)

// OptionList renders a question's options with a movable cursor,
// single- or multi-select marks, and a post-confirmation reveal that
// colors the canonical answer green and wrong picks red.
type OptionList struct {
	Options []string
	Cursor  int

	// Chosen holds the user's current picks; for single-choice questions
	// at most one entry.
	Chosen []string

	// Multi switches the pick markers from radio to checkbox style.
	Multi bool

	// Revealed enables answer coloring against Correct.
	Revealed bool
	Correct  []string
}

// MoveCursor shifts the cursor by delta, clamped to the option range.
func (o *OptionList) MoveCursor(delta int) {
	o.Cursor += delta
	if o.Cursor < 0 {
		o.Cursor = 0
	}
	if o.Cursor > len(o.Options)-1 {
		o.Cursor = len(o.Options) - 1
	}
}

// CursorOption returns the option text under the cursor.
func (o *OptionList) CursorOption() string {
	if o.Cursor < 0 || o.Cursor >= len(o.Options) {
		return ""
	}
	return o.Options[o.Cursor]
}

// View renders the list.
func (o *OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		cursor := "  "
		if i == o.Cursor && !o.Revealed {
			cursor = "▸ "
		}

		mark := o.markFor(opt)
		line := fmt.Sprintf("%s%s %s) %s", cursor, mark, optionLabel(i), opt)

		b.WriteString(o.styleFor(opt, i).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (o *OptionList) markFor(opt string) string {
	picked := slices.Contains(o.Chosen, opt)
	if o.Multi {
		if picked {
			return "[x]"
		}
		return "[ ]"
	}
	if picked {
		return "(o)"
	}
	return "( )"
}

func (o *OptionList) styleFor(opt string, idx int) lipgloss.Style {
	if o.Revealed {
		switch {
		case slices.Contains(o.Correct, opt):
			return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case slices.Contains(o.Chosen, opt):
			return lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		default:
			return lipgloss.NewStyle().Foreground(theme.TextDim)
		}
	}
	if idx == o.Cursor {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	if slices.Contains(o.Chosen, opt) {
		return lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(theme.Text)
}

func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%d", i+1)
}
