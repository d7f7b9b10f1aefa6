package quizplay

import (
	"time"

	"github.com/baiyu/pjexam/internal/progress"
	"github.com/baiyu/pjexam/internal/quiz"
)

// resumePromptMsg is sent when a stored snapshot is worth offering.
type resumePromptMsg struct {
	Snap *progress.QuizSnapshot
}

// sessionReadyMsg is sent when a session (fresh or restored) is live.
type sessionReadyMsg struct {
	Session *quiz.Session
	Err     error
}

// timerTickMsg drives the exam countdown once per second.
type timerTickMsg time.Time

// advanceMsg delivers a scheduled rapid-mode auto-advance.
type advanceMsg struct {
	Advance quiz.Advance
}
