package tastingplay

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/tasting"
	"github.com/baiyu/pjexam/internal/ui/components"
	"github.com/baiyu/pjexam/internal/ui/theme"
)

var fieldLabels = map[tasting.Field]string{
	tasting.FieldAroma:     "香型",
	tasting.FieldABV:       "酒精度",
	tasting.FieldScore:     "总分",
	tasting.FieldEquipment: "发酵设备",
	tasting.FieldAgents:    "发酵剂",
}

const optionsPerRow = 4

func (s *TastingScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return centered(width, theme.Incorrect.Render("出错了: "+s.errMsg+"\n\n按任意键返回"))
	case s.askResume:
		return s.renderResumePrompt(width)
	case s.sess == nil:
		return centered(width, theme.Hint.Render("\n\n正在倒酒..."))
	case s.done:
		return s.renderDone(width)
	default:
		return s.renderSample(width)
	}
}

func (s *TastingScreen) renderSample(width int) string {
	sess := s.sess
	sample := sess.CurrentSample()
	if sample == nil {
		return centered(width, theme.Hint.Render("酒样库为空"))
	}

	var b strings.Builder

	header := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  第 %d/%d 杯  %s", sess.Current+1, len(sess.Samples), sample.Name))
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	for i, f := range s.fields {
		b.WriteString(s.renderField(f, i == s.field, width))
		b.WriteString("\n")
	}

	// Action button.
	label := "确认本杯"
	if sess.Confirmed {
		label = "下一杯"
		if sess.Current == len(sess.Samples)-1 {
			label = "完成品评"
		}
	}
	btn := components.Button{Label: label, Active: true}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, btn.View()))

	return b.String()
}

// renderField renders one judged field: its label, the user's pick, and
// after confirmation the verdict with the canonical value.
func (s *TastingScreen) renderField(f tasting.Field, focused bool, width int) string {
	sess := s.sess

	label := fieldLabels[f]
	marker := "  "
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if focused && !sess.Confirmed {
		marker = "▸ "
		labelStyle = labelStyle.Foreground(theme.Primary)
	}

	var b strings.Builder
	b.WriteString("  " + marker + labelStyle.Render(label))

	if sess.Confirmed {
		b.WriteString("  " + s.renderVerdict(f))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	if f == tasting.FieldScore {
		b.WriteString("      " + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(sess.Answer.Score))
		if focused {
			b.WriteString("  " + theme.Hint.Render("↑↓ ±0.2   +/- ±1.0"))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(s.renderOptions(f, focused))
	return b.String()
}

// renderOptions lays the vocabulary out in rows, marking picks and the
// cursor position of the focused field.
func (s *TastingScreen) renderOptions(f tasting.Field, focused bool) string {
	opts := fieldOptions(f)
	picked := s.pickedValues(f)

	var b strings.Builder
	for i, opt := range opts {
		if i%optionsPerRow == 0 {
			b.WriteString("      ")
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		text := opt
		if slices.Contains(picked, opt) {
			style = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
			text = "[" + opt + "]"
		}
		if focused && i == s.cursor {
			style = style.Foreground(theme.Primary).Bold(true)
			text = "▸" + text
		}
		b.WriteString(style.Render(text))

		if (i+1)%optionsPerRow == 0 || i == len(opts)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString("  ")
		}
	}
	return b.String()
}

// renderVerdict shows the per-field result after confirmation with the
// canonical answer on misses.
func (s *TastingScreen) renderVerdict(f tasting.Field) string {
	sess := s.sess
	sample := sess.CurrentSample()

	user := s.userText(f)
	if user == "" {
		user = "未作答"
	}

	switch sess.CheckField(f) {
	case tasting.Correct:
		return theme.Correct.Render("✓ "+user)
	case tasting.Incorrect:
		return theme.Incorrect.Render("✗ "+user) +
			theme.Hint.Render("  正确: "+canonicalText(sample, f))
	default:
		return theme.Hint.Render(user)
	}
}

func (s *TastingScreen) pickedValues(f tasting.Field) []string {
	switch f {
	case tasting.FieldAroma:
		if s.sess.Answer.Aroma == "" {
			return nil
		}
		return []string{s.sess.Answer.Aroma}
	case tasting.FieldABV:
		if s.sess.Answer.ABV == "" {
			return nil
		}
		return []string{s.sess.Answer.ABV}
	case tasting.FieldEquipment:
		return s.sess.Answer.Equipment
	case tasting.FieldAgents:
		return s.sess.Answer.Agents
	}
	return nil
}

func (s *TastingScreen) userText(f tasting.Field) string {
	switch f {
	case tasting.FieldScore:
		return s.sess.Answer.Score
	default:
		return strings.Join(s.pickedValues(f), "、")
	}
}

func canonicalText(sample *bank.Sample, f tasting.Field) string {
	switch f {
	case tasting.FieldAroma:
		return sample.Aroma
	case tasting.FieldABV:
		return bank.FormatNumber(sample.ABV)
	case tasting.FieldScore:
		return bank.FormatNumber(sample.Score)
	case tasting.FieldEquipment:
		return strings.Join(bank.SplitTokens(sample.Equipment), "、")
	case tasting.FieldAgents:
		return strings.Join(bank.SplitTokens(sample.Agents), "、")
	}
	return ""
}

func (s *TastingScreen) renderResumePrompt(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("检测到未完成的品评")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint.Render("是否继续上次进度？")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] 继续上次")))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] 重新开始")))
	return b.String()
}

func (s *TastingScreen) renderDone(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, theme.Title.Render("品评结束")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render(fmt.Sprintf("共品评 %d 杯", len(s.sess.Samples)))))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("Enter 返回主菜单")))
	return b.String()
}

func centered(width int, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}
