// Package quizplay is the screen for the two question-paper modes: the
// fixed-composition timed exam and free-form practice.
package quizplay

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/progress"
	"github.com/baiyu/pjexam/internal/quiz"
	"github.com/baiyu/pjexam/internal/router"
	"github.com/baiyu/pjexam/internal/screen"
	"github.com/baiyu/pjexam/internal/stats"
	"github.com/baiyu/pjexam/internal/ui/layout"
)

// QuizScreen implements screen.Screen for exam and practice mode.
type QuizScreen struct {
	mode     config.Mode
	settings *config.Settings
	stats    *stats.Stats
	prog     *progress.Manager

	sess   *quiz.Session
	cursor int

	askResume     bool
	pendingSnap   *progress.QuizSnapshot
	confirmFinish bool
	errMsg        string

	// Set once the paper is handed in; holds the exam record, nil for
	// practice.
	lastRecord *stats.ExamRecord
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the screen for a mode. The session itself is built in Init,
// after the progress slot has been checked for a resumable snapshot.
func New(mode config.Mode, settings *config.Settings, st *stats.Stats, prog *progress.Manager) *QuizScreen {
	return &QuizScreen{
		mode:     mode,
		settings: settings,
		stats:    st,
		prog:     prog,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.loadOrStart()
}

func (s *QuizScreen) Title() string {
	if s.mode == config.ModeExam {
		return "理论考试"
	}
	return "刷题练习"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.askResume:
		return []layout.KeyHint{
			{Key: "Y", Description: "继续上次"},
			{Key: "N", Description: "重新开始"},
		}
	case s.confirmFinish:
		return []layout.KeyHint{
			{Key: "Y", Description: "交卷"},
			{Key: "N", Description: "继续答题"},
		}
	case s.sess != nil && s.sess.Phase == quiz.PhaseFinished:
		hints := []layout.KeyHint{{Key: "Esc", Description: "返回"}}
		if s.sess.HasWrongAnswers() {
			hints = append([]layout.KeyHint{
				{Key: "R", Description: "错题回顾"},
				{Key: "←→", Description: "上一题/下一题"},
			}, hints...)
		}
		return hints
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "选项"},
			{Key: "Space", Description: "选择"},
			{Key: "←→", Description: "切题"},
			{Key: "F", Description: "标记"},
			{Key: "S", Description: "交卷"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resumePromptMsg:
		s.askResume = true
		s.pendingSnap = msg.Snap
		return s, nil

	case sessionReadyMsg:
		return s.handleReady(msg)

	case timerTickMsg:
		return s.handleTick(time.Time(msg))

	case advanceMsg:
		if s.sess != nil && s.sess.ApplyAdvance(msg.Advance) {
			s.cursor = 0
			s.prog.SaveQuiz(s.sess)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// loadOrStart checks the mode's progress slot and either offers a resume
// or starts a fresh session.
func (s *QuizScreen) loadOrStart() tea.Cmd {
	return func() tea.Msg {
		if snap := s.prog.LoadQuiz(s.mode); snap.Resumable() {
			return resumePromptMsg{Snap: snap}
		}
		return s.startFresh()
	}
}

// startFresh draws a new paper from the bank.
func (s *QuizScreen) startFresh() tea.Msg {
	qs, err := bank.Questions()
	if err != nil {
		return sessionReadyMsg{Err: err}
	}

	counts := s.settings.Counts
	if s.mode == config.ModeExam {
		counts = config.DefaultExamCounts
	}

	selected := quiz.NewSelector().Select(qs, counts, s.stats.Load(), s.settings.ShuffleOptions)
	if len(selected) == 0 {
		return sessionReadyMsg{Err: errors.New("题库为空")}
	}

	cfg := config.Settings{
		Mode:      s.mode,
		Counts:    counts,
		RapidMode: s.settings.RapidMode,
	}
	sess := quiz.NewSession(cfg, selected, s.stats, time.Now())
	return sessionReadyMsg{Session: sess}
}

func (s *QuizScreen) handleReady(msg sessionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.sess = msg.Session
	s.cursor = 0
	s.prog.SaveQuiz(s.sess)
	if s.mode == config.ModeExam {
		return s, tickCmd()
	}
	return s, nil
}

func (s *QuizScreen) handleTick(now time.Time) (screen.Screen, tea.Cmd) {
	if s.sess == nil || s.sess.Phase != quiz.PhaseActive {
		return s, nil
	}
	if s.sess.TimerExpired(now) {
		s.finish(now)
		return s, nil
	}
	return s, tickCmd()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.askResume {
		return s.handleResumeKey(key)
	}

	if s.sess == nil {
		return s, nil
	}

	if s.confirmFinish {
		switch key {
		case "y", "Y":
			s.confirmFinish = false
			s.finish(time.Now())
		case "n", "N", "esc":
			s.confirmFinish = false
		}
		return s, nil
	}

	if s.sess.Phase == quiz.PhaseFinished {
		return s.handleFinishedKey(key)
	}

	return s.handleActiveKey(key)
}

func (s *QuizScreen) handleResumeKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		s.askResume = false
		sess := s.pendingSnap.Restore(s.stats)
		s.pendingSnap = nil
		return s, func() tea.Msg { return sessionReadyMsg{Session: sess} }
	case "n", "N":
		s.askResume = false
		s.pendingSnap = nil
		s.prog.Clear(s.mode)
		return s, func() tea.Msg { return s.startFresh() }
	}
	return s, nil
}

func (s *QuizScreen) handleFinishedKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "r", "R":
		s.sess.ToggleReviewWrong()
		s.cursor = 0
	case "left", "h":
		if s.sess.ReviewingWrongOnly {
			s.sess.WrongReviewNav(-1)
		}
	case "right", "l":
		if s.sess.ReviewingWrongOnly {
			s.sess.WrongReviewNav(1)
		}
	case "enter":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *QuizScreen) handleActiveKey(key string) (screen.Screen, tea.Cmd) {
	q := s.sess.CurrentQuestion()
	if q == nil {
		return s, nil
	}

	switch key {
	case "up", "k":
		s.moveCursor(-1, len(q.Options))
	case "down", "j":
		s.moveCursor(1, len(q.Options))
	case "left", "h":
		s.sess.GoTo(s.sess.Current - 1)
		s.cursor = 0
		s.prog.SaveQuiz(s.sess)
	case "right", "l":
		s.sess.GoTo(s.sess.Current + 1)
		s.cursor = 0
		s.prog.SaveQuiz(s.sess)
	case "space", " ":
		return s.pick(q)
	case "enter":
		if s.mode == config.ModeExam {
			s.sess.GoTo(s.sess.Current + 1)
			s.cursor = 0
		} else {
			s.sess.Confirm()
		}
		s.prog.SaveQuiz(s.sess)
	case "f", "F":
		s.sess.ToggleFlag()
		s.prog.SaveQuiz(s.sess)
	case "s", "S":
		s.confirmFinish = true
	}
	return s, nil
}

// pick records the option under the cursor and schedules a rapid-mode
// auto-advance when the session asks for one.
func (s *QuizScreen) pick(q *quiz.Question) (screen.Screen, tea.Cmd) {
	if s.cursor < 0 || s.cursor >= len(q.Options) {
		return s, nil
	}
	adv := s.sess.SelectOption(q.Options[s.cursor])
	s.prog.SaveQuiz(s.sess)
	if adv == nil {
		return s, nil
	}
	a := *adv
	return s, tea.Tick(a.Delay, func(time.Time) tea.Msg {
		return advanceMsg{Advance: a}
	})
}

// finish hands in the paper: scores it, appends the exam record, and
// drops the progress slot.
func (s *QuizScreen) finish(now time.Time) {
	rec := s.sess.Finish(now)
	s.lastRecord = rec
	if rec != nil {
		s.stats.AppendRecord(*rec)
	}
	s.prog.Clear(s.mode)
	s.cursor = 0
}

func (s *QuizScreen) moveCursor(delta, count int) {
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor > count-1 {
		s.cursor = count - 1
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
