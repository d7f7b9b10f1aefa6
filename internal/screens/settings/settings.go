// Package settings is the configuration screen: practice paper
// composition, option shuffling, rapid answer mode, dark mode, and the
// blind-tasting field toggles.
package settings

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/progress"
	"github.com/baiyu/pjexam/internal/screen"
	"github.com/baiyu/pjexam/internal/ui/components"
	"github.com/baiyu/pjexam/internal/ui/layout"
	"github.com/baiyu/pjexam/internal/ui/theme"
)

type rowKind int

const (
	rowCount rowKind = iota
	rowToggle
	rowHeading
)

// row is one line of the settings form.
type row struct {
	kind  rowKind
	label string

	// rowCount
	input components.TextInput
	get   func() int
	set   func(int)
	max   int

	// rowToggle
	on     func() bool
	toggle func()
}

// SettingsScreen implements screen.Screen for the settings form. Changes
// apply immediately and are persisted through the save callback.
type SettingsScreen struct {
	settings *config.Settings
	prog     *progress.Manager
	save     func()

	rows     []row
	selected int
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the settings screen. save is called after every change.
func New(settings *config.Settings, prog *progress.Manager, save func()) *SettingsScreen {
	s := &SettingsScreen{settings: settings, prog: prog, save: save}
	s.buildRows()
	return s
}

func (s *SettingsScreen) buildRows() {
	cfg := s.settings

	maxCounts := config.Counts{}
	if qs, err := bank.Questions(); err == nil {
		byType := bank.CountByType(qs)
		maxCounts = config.Counts{
			Boolean:  byType[bank.TypeBoolean],
			Single:   byType[bank.TypeSingle],
			Multiple: byType[bank.TypeMultiple],
		}
	}

	countRow := func(label string, get func() int, set func(int), max int) row {
		in := components.NewTextInput("", true, 3)
		in.SetValue(fmt.Sprintf("%d", get()))
		return row{kind: rowCount, label: label, input: in, get: get, set: set, max: max}
	}
	toggleRow := func(label string, on func() bool, toggle func()) row {
		return row{kind: rowToggle, label: label, on: on, toggle: toggle}
	}

	s.rows = []row{
		{kind: rowHeading, label: "练习题量"},
		countRow("判断题",
			func() int { return cfg.Counts.Boolean },
			func(v int) { cfg.Counts.Boolean = v }, maxCounts.Boolean),
		countRow("单选题",
			func() int { return cfg.Counts.Single },
			func(v int) { cfg.Counts.Single = v }, maxCounts.Single),
		countRow("多选题",
			func() int { return cfg.Counts.Multiple },
			func(v int) { cfg.Counts.Multiple = v }, maxCounts.Multiple),

		{kind: rowHeading, label: "答题"},
		toggleRow("选项乱序",
			func() bool { return cfg.ShuffleOptions },
			func() { cfg.ShuffleOptions = !cfg.ShuffleOptions }),
		toggleRow("快答模式",
			func() bool { return cfg.RapidMode },
			func() { cfg.RapidMode = !cfg.RapidMode }),
		toggleRow("深色主题",
			func() bool { return cfg.DarkMode },
			func() {
				cfg.DarkMode = !cfg.DarkMode
				theme.SetDark(cfg.DarkMode)
			}),

		{kind: rowHeading, label: "品评项目"},
		toggleRow("香型",
			func() bool { return cfg.Tasting.Aroma },
			func() { cfg.Tasting.Aroma = !cfg.Tasting.Aroma }),
		toggleRow("酒精度",
			func() bool { return cfg.Tasting.ABV },
			func() { cfg.Tasting.ABV = !cfg.Tasting.ABV }),
		toggleRow("总分",
			func() bool { return cfg.Tasting.Score },
			func() { cfg.Tasting.Score = !cfg.Tasting.Score }),
		toggleRow("发酵设备",
			func() bool { return cfg.Tasting.Equipment },
			func() { cfg.Tasting.Equipment = !cfg.Tasting.Equipment }),
		toggleRow("发酵剂",
			func() bool { return cfg.Tasting.Agents },
			func() { cfg.Tasting.Agents = !cfg.Tasting.Agents }),
	}

	s.selected = s.nextSelectable(0, 1)
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "设置"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "Space", Description: "开关"},
		{Key: "0-9", Description: "输入题量"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		s.commitCount()
		s.selected = s.nextSelectable(s.selected-1, -1)
		return s, nil
	case "down", "j":
		s.commitCount()
		s.selected = s.nextSelectable(s.selected+1, 1)
		return s, nil
	case "space", " ", "enter":
		r := &s.rows[s.selected]
		if r.kind == rowToggle {
			r.toggle()
			s.changed()
		}
		if r.kind == rowCount {
			s.commitCount()
		}
		return s, nil
	}

	// Digit editing on the selected count row.
	if r := &s.rows[s.selected]; r.kind == rowCount {
		var cmd tea.Cmd
		r.input, cmd = r.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// commitCount parses the selected count input back into the settings,
// clamped to the bank's supply.
func (s *SettingsScreen) commitCount() {
	r := &s.rows[s.selected]
	if r.kind != rowCount {
		return
	}
	v, err := r.input.NumericValue()
	if err != nil {
		v = r.get()
	}
	if v > r.max {
		v = r.max
	}
	if v < 0 {
		v = 0
	}
	if v != r.get() {
		r.set(v)
		// A changed paper composition invalidates any saved practice
		// paper.
		s.prog.Clear(config.ModePractice)
		s.changed()
	}
	r.input.SetValue(fmt.Sprintf("%d", v))
}

func (s *SettingsScreen) changed() {
	if s.save != nil {
		s.save()
	}
}

// nextSelectable skips heading rows when moving by step from idx.
func (s *SettingsScreen) nextSelectable(idx, step int) int {
	for idx >= 0 && idx < len(s.rows) {
		if s.rows[idx].kind != rowHeading {
			return idx
		}
		idx += step
	}
	return s.selected
}

func (s *SettingsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	for i, r := range s.rows {
		switch r.kind {
		case rowHeading:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + r.label))
			b.WriteString("\n")
		case rowCount:
			b.WriteString(s.renderCount(i, r))
		case rowToggle:
			b.WriteString(s.renderToggle(i, r))
		}
	}
	return b.String()
}

func (s *SettingsScreen) renderCount(i int, r row) string {
	marker := "    "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		marker = "  ▸ "
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	value := r.input.Value()
	if i != s.selected {
		value = fmt.Sprintf("%d", r.get())
	}
	line := fmt.Sprintf("%s%s  %s", marker, r.label, value)
	hint := theme.Hint.Render(fmt.Sprintf("  (题库共 %d 题)", r.max))
	return style.Render(line) + hint + "\n"
}

func (s *SettingsScreen) renderToggle(i int, r row) string {
	marker := "    "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		marker = "  ▸ "
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	state := lipgloss.NewStyle().Foreground(theme.TextDim).Render("关")
	if r.on() {
		state = lipgloss.NewStyle().Foreground(theme.Success).Render("开")
	}
	return style.Render(fmt.Sprintf("%s%s  ", marker, r.label)) + state + "\n"
}
