// Package statsview is the statistics screen: recent exam results, the
// per-question error ledger, and the clear-all action.
package statsview

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/baiyu/pjexam/internal/screen"
	"github.com/baiyu/pjexam/internal/stats"
	"github.com/baiyu/pjexam/internal/ui/layout"
	"github.com/baiyu/pjexam/internal/ui/theme"
)

// entry is one row of the error ledger.
type entry struct {
	Text  string
	Total int
	Wrong int
}

// StatsScreen implements screen.Screen for the statistics page.
type StatsScreen struct {
	stats *stats.Stats

	entries []entry
	records []stats.ExamRecord
	offset  int

	confirmClear bool
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates the statistics screen over the stored counters.
func New(st *stats.Stats) *StatsScreen {
	s := &StatsScreen{stats: st}
	s.reload()
	return s
}

func (s *StatsScreen) reload() {
	m := s.stats.Load()
	s.entries = s.entries[:0]
	for key, rec := range m {
		s.entries = append(s.entries, entry{
			Text:  displayText(key),
			Total: rec.Total,
			Wrong: rec.Wrong,
		})
	}
	// Most-missed first; stable order within equal wrong counts.
	sort.Slice(s.entries, func(a, b int) bool {
		if s.entries[a].Wrong != s.entries[b].Wrong {
			return s.entries[a].Wrong > s.entries[b].Wrong
		}
		return s.entries[a].Text < s.entries[b].Text
	})
	s.records = s.stats.Records()
	s.offset = 0
}

// displayText strips the fingerprint's option tail, leaving the question
// text or sample name.
func displayText(key string) string {
	if i := strings.Index(key, "||"); i >= 0 {
		return key[:i]
	}
	return key
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "成绩统计"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	if s.confirmClear {
		return []layout.KeyHint{
			{Key: "Y", Description: "清空"},
			{Key: "N", Description: "取消"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "滚动"},
		{Key: "C", Description: "清空统计"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.confirmClear {
		switch kmsg.String() {
		case "y", "Y":
			s.stats.Clear()
			s.confirmClear = false
			s.reload()
		case "n", "N", "esc":
			s.confirmClear = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < len(s.entries)-1 {
			s.offset++
		}
	case "c", "C":
		s.confirmClear = true
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.confirmClear {
		return s.renderClearConfirm(width)
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  考试记录"))
	b.WriteString("\n")
	if len(s.records) == 0 {
		b.WriteString(theme.Hint.Render("    暂无考试记录"))
		b.WriteString("\n")
	}
	for _, rec := range s.records {
		when := time.UnixMilli(rec.TimestampMillis).Format("2006-01-02 15:04")
		line := fmt.Sprintf("    %s   %d/%d   用时 %s",
			when, rec.Score, rec.Total,
			layout.FormatDuration(time.Duration(rec.DurationSeconds)*time.Second))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  错题统计"))
	b.WriteString("\n")

	if len(s.entries) == 0 {
		b.WriteString(theme.Hint.Render("    还没有答题数据"))
		b.WriteString("\n")
		return b.String()
	}

	visible := height - lipgloss.Height(b.String()) - 1
	if visible < 1 {
		visible = 1
	}
	end := s.offset + visible
	if end > len(s.entries) {
		end = len(s.entries)
	}

	textWidth := width - 30
	if textWidth < 10 {
		textWidth = 10
	}
	for _, e := range s.entries[s.offset:end] {
		text := truncate(e.Text, textWidth)
		counts := fmt.Sprintf("答 %d 次  错 %d 次", e.Total, e.Wrong)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if e.Wrong > 0 {
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		b.WriteString(style.Render("    "+text) + "  " + theme.Hint.Render(counts))
		b.WriteString("\n")
	}
	if end < len(s.entries) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("    … 还有 %d 条", len(s.entries)-end)))
	}

	return b.String()
}

func (s *StatsScreen) renderClearConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	center := func(t string) string {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(t)
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("清空全部答题统计？")))
	b.WriteString("\n")
	b.WriteString(center(theme.Hint.Render("考试记录不受影响")))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] 清空")))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] 取消")))
	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
