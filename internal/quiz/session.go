package quiz

import (
	"slices"
	"time"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/stats"
)

// Advance is a pending rapid-mode auto-advance. The owner schedules it
// after Delay and feeds it back through ApplyAdvance, which drops it when
// stale: the session was replaced, the user already navigated away, or the
// session is no longer active.
type Advance struct {
	Generation int64
	From       int
	Delay      time.Duration
}

// CurrentQuestion returns the active question, or nil for an empty session.
func (s *Session) CurrentQuestion() *Question {
	if len(s.Questions) == 0 {
		return nil
	}
	return &s.Questions[s.Current]
}

// SelectOption records an option pick for the current question: membership
// toggle for multiple-choice, replacement otherwise. In rapid mode it
// auto-confirms single/boolean answers (practice) and returns a deferred
// advance when one should be scheduled.
func (s *Session) SelectOption(option string) *Advance {
	if s.Phase != PhaseActive || len(s.Questions) == 0 {
		return nil
	}
	q := s.Questions[s.Current]

	if q.Type == bank.TypeMultiple {
		cur := s.Answers[s.Current]
		var picked []string
		if cur != nil {
			picked = cur.Options
		}
		if slices.Contains(picked, option) {
			picked = slices.DeleteFunc(picked, func(v string) bool { return v == option })
		} else {
			picked = append(picked, option)
		}
		if picked == nil {
			picked = []string{}
		}
		s.Answers[s.Current] = &Selection{Options: picked}
		return nil
	}

	s.Answers[s.Current] = &Selection{Option: option}

	if !s.RapidMode {
		return nil
	}
	isLast := s.Current == len(s.Questions)-1

	if s.Mode == config.ModePractice {
		s.Confirm()
		if IsCorrect(q.Question, s.Answers[s.Current]) && !isLast {
			return &Advance{Generation: s.Generation, From: s.Current, Delay: config.RapidAdvancePractice}
		}
		return nil
	}
	if !isLast {
		return &Advance{Generation: s.Generation, From: s.Current, Delay: config.RapidAdvanceExam}
	}
	return nil
}

// ApplyAdvance performs a previously scheduled auto-advance. Stale arrivals
// are no-ops; it never double-advances.
func (s *Session) ApplyAdvance(adv Advance) bool {
	if s.Phase != PhaseActive || adv.Generation != s.Generation || adv.From != s.Current {
		return false
	}
	s.GoTo(s.Current + 1)
	return true
}

// Confirm marks the current question confirmed and scores it against the
// statistics once. Confirming an already confirmed question is a no-op, so
// stats are never double-counted by repeated confirmation.
func (s *Session) Confirm() {
	if s.Phase != PhaseActive || len(s.Questions) == 0 {
		return
	}
	if s.Confirmed[s.Current] {
		return
	}
	s.Confirmed[s.Current] = true

	q := s.Questions[s.Current]
	if s.recorder != nil {
		s.recorder.Update(q.Key, !IsCorrect(q.Question, s.Answers[s.Current]))
	}
}

// GoTo moves to the given question index, clamped into bounds. Out-of-range
// targets are never an error.
func (s *Session) GoTo(index int) {
	if len(s.Questions) == 0 {
		s.Current = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.Questions)-1 {
		index = len(s.Questions) - 1
	}
	s.Current = index
}

// Finish scores every question in one pass, updating statistics for each
// fingerprint — including questions already scored at confirm time, whose
// counters therefore advance twice in a practice session. Returns the exam
// record to append for timed sessions, nil otherwise. Finishing twice is a
// no-op, which also guards the timer-expiry path against multiple fire.
func (s *Session) Finish(now time.Time) *stats.ExamRecord {
	if s.Phase != PhaseActive {
		return nil
	}

	score := 0
	for i, q := range s.Questions {
		correct := IsCorrect(q.Question, s.Answers[i])
		if correct {
			score++
		}
		if s.recorder != nil {
			s.recorder.Update(q.Key, !correct)
		}
	}
	s.Score = score
	s.Phase = PhaseFinished

	if s.Duration <= 0 {
		return nil
	}
	used := s.Duration - s.Remaining(now)
	return &stats.ExamRecord{
		Score:           score,
		Total:           len(s.Questions),
		DurationSeconds: int(used.Seconds()),
		TimestampMillis: now.UnixMilli(),
	}
}

// Remaining recomputes the countdown from the wall-clock anchor so that a
// stalled UI can never desynchronize the timer. Untimed sessions report 0.
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.Duration <= 0 {
		return 0
	}
	left := s.Duration - now.Sub(s.StartedAt)
	if left < 0 {
		return 0
	}
	return left
}

// TimerExpired reports whether a timed active session has run out.
func (s *Session) TimerExpired(now time.Time) bool {
	if s.Duration <= 0 || s.Phase != PhaseActive {
		return false
	}
	return now.Sub(s.StartedAt) >= s.Duration
}

// ToggleFlag toggles the advisory review flag on the current question.
// Flags never affect scoring or selection; inactive sessions ignore it.
func (s *Session) ToggleFlag() {
	if s.Phase != PhaseActive || len(s.Questions) == 0 {
		return
	}
	if s.Flagged[s.Current] {
		delete(s.Flagged, s.Current)
	} else {
		s.Flagged[s.Current] = true
	}
}

// HasWrongAnswers reports whether any question is currently answered
// incorrectly, gating the wrong-only review toggle.
func (s *Session) HasWrongAnswers() bool {
	for i, q := range s.Questions {
		if !IsCorrect(q.Question, s.Answers[i]) {
			return true
		}
	}
	return false
}

// ToggleReviewWrong enters or leaves wrong-only review. Entry snapshots the
// wrong indices at that instant — the snapshot is not recomputed while
// review is active — and jumps to the first wrong question. Exit resets the
// cursor and jumps back to the start. Only meaningful once finished.
func (s *Session) ToggleReviewWrong() {
	if s.Phase != PhaseFinished {
		return
	}
	if !s.ReviewingWrongOnly {
		s.WrongIndices = s.wrongIndices()
		s.WrongCursor = 0
		if len(s.WrongIndices) > 0 {
			s.Current = s.WrongIndices[0]
		}
	} else {
		s.WrongCursor = 0
		s.Current = 0
	}
	s.ReviewingWrongOnly = !s.ReviewingWrongOnly
}

// WrongReviewNav steps the review cursor by delta within the snapshot,
// ignoring steps that would leave it.
func (s *Session) WrongReviewNav(delta int) {
	if !s.ReviewingWrongOnly {
		return
	}
	next := s.WrongCursor + delta
	if next < 0 || next >= len(s.WrongIndices) {
		return
	}
	s.WrongCursor = next
	s.Current = s.WrongIndices[next]
}

func (s *Session) wrongIndices() []int {
	var wrongs []int
	for i, q := range s.Questions {
		if !IsCorrect(q.Question, s.Answers[i]) {
			wrongs = append(wrongs, i)
		}
	}
	return wrongs
}
