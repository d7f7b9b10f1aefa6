package quizplay

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/quiz"
	"github.com/baiyu/pjexam/internal/ui/components"
	"github.com/baiyu/pjexam/internal/ui/layout"
	"github.com/baiyu/pjexam/internal/ui/theme"
)

var typeLabels = map[bank.QuestionType]string{
	bank.TypeBoolean:  "判断题",
	bank.TypeSingle:   "单选题",
	bank.TypeMultiple: "多选题",
}

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return centered(width, theme.Incorrect.Render("出错了: "+s.errMsg+"\n\n按任意键返回"))
	case s.askResume:
		return s.renderResumePrompt(width)
	case s.sess == nil:
		return centered(width, theme.Hint.Render("\n\n正在组卷..."))
	case s.confirmFinish:
		return s.renderFinishConfirm(width)
	case s.sess.Phase == quiz.PhaseFinished:
		if s.sess.ReviewingWrongOnly {
			return s.renderWrongReview(width)
		}
		return s.renderResult(width)
	default:
		return s.renderQuestion(width)
	}
}

func (s *QuizScreen) renderQuestion(width int) string {
	sess := s.sess
	q := sess.CurrentQuestion()
	if q == nil {
		return centered(width, theme.Hint.Render("题库为空"))
	}

	var b strings.Builder

	// Info line: position, answered count, flags, countdown.
	answered := 0
	for _, a := range sess.Answers {
		if a.Answered() {
			answered++
		}
	}
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  第 %d/%d 题  %s", sess.Current+1, len(sess.Questions), typeLabels[q.Type]))

	rightParts := []string{fmt.Sprintf("已答 %d", answered)}
	if n := len(sess.Flagged); n > 0 {
		rightParts = append(rightParts, fmt.Sprintf("标记 %d", n))
	}
	if sess.Duration > 0 {
		rightParts = append(rightParts, "剩余 "+layout.FormatDuration(sess.Remaining(time.Now())))
	}
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(strings.Join(rightParts, "  "))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left + strings.Repeat(" ", pad) + right)
	b.WriteString("\n")

	bar := components.ProgressBar{Percent: float64(answered) / float64(len(sess.Questions)), Width: width - 8}
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	// Question text, with the flag marker when set.
	text := q.Text
	if sess.Flagged[sess.Current] {
		text = "⚑ " + text
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(text))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.optionList(q).View()))

	// Practice feedback after confirmation.
	if sess.Mode == config.ModePractice && sess.Confirmed[sess.Current] {
		b.WriteString("\n")
		if quiz.IsCorrect(q.Question, sess.Answers[sess.Current]) {
			b.WriteString(centered(width, theme.Correct.Render("回答正确")))
		} else {
			b.WriteString(centered(width, theme.Incorrect.Render("回答错误")+
				theme.Hint.Render("  正确答案: "+q.Answer.Text())))
		}
	}

	return b.String()
}

// optionList builds the option widget for the current question from the
// session state.
func (s *QuizScreen) optionList(q *quiz.Question) *components.OptionList {
	sess := s.sess
	var chosen []string
	if sel := sess.Answers[sess.Current]; sel != nil {
		if q.Type == bank.TypeMultiple {
			chosen = sel.Options
		} else if sel.Option != "" {
			chosen = []string{sel.Option}
		}
	}

	revealed := sess.Phase == quiz.PhaseFinished ||
		(sess.Mode == config.ModePractice && sess.Confirmed[sess.Current])

	var correct []string
	if revealed {
		if q.Type == bank.TypeMultiple {
			correct = q.Answer.Multi
		} else {
			correct = []string{q.Answer.Single}
		}
	}

	return &components.OptionList{
		Options:  q.Options,
		Cursor:   s.cursor,
		Chosen:   chosen,
		Multi:    q.Type == bank.TypeMultiple,
		Revealed: revealed,
		Correct:  correct,
	}
}

func (s *QuizScreen) renderResumePrompt(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("检测到未完成的答题")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint.Render("是否继续上次进度？")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] 继续上次")))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] 重新开始")))
	return b.String()
}

func (s *QuizScreen) renderFinishConfirm(width int) string {
	unanswered := 0
	for _, a := range s.sess.Answers {
		if !a.Answered() {
			unanswered++
		}
	}

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("确认交卷？")))
	if unanswered > 0 {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint.Render(fmt.Sprintf("还有 %d 题未作答", unanswered))))
	}
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] 交卷")))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] 继续答题")))
	return b.String()
}

func (s *QuizScreen) renderResult(width int) string {
	sess := s.sess

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Title.Render("答题结束")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("得分  %d / %d", sess.Score, len(sess.Questions)))))

	if s.lastRecord != nil {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint.Render(
			"用时 "+layout.FormatDuration(time.Duration(s.lastRecord.DurationSeconds)*time.Second))))
	}

	if sess.HasWrongAnswers() {
		wrong := len(sess.Questions) - sess.Score
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Incorrect.Render(fmt.Sprintf("错题 %d 道", wrong))+
			theme.Hint.Render("  按 R 回顾")))
	} else {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Correct.Render("全部答对！")))
	}

	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("Enter 返回主菜单")))
	return b.String()
}

func (s *QuizScreen) renderWrongReview(width int) string {
	sess := s.sess
	q := sess.CurrentQuestion()
	if q == nil || len(sess.WrongIndices) == 0 {
		return centered(width, theme.Hint.Render("没有错题"))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  错题 %d/%d  %s", sess.WrongCursor+1, len(sess.WrongIndices), typeLabels[q.Type])))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.optionList(q).View()))

	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint.Render("正确答案: "+q.Answer.Text()+"   按 R 返回成绩")))
	return b.String()
}

func centered(width int, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}
