package quiz

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/baiyu/pjexam/internal/config"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseFinished
)

// Recorder receives one scoring event per evaluated question. stats.Stats
// satisfies it; tests substitute fakes.
type Recorder interface {
	Update(key string, wasWrong bool)
}

// generation hands out a unique stamp per session so that deferred
// timer-driven effects scheduled against an old session can never mutate a
// newer one.
var generation atomic.Int64

// Session owns the mutable state of one quiz run.
type Session struct {
	ID   string      `json:"id"`
	Mode config.Mode `json:"mode"`

	Questions []Question   `json:"questions"`
	Answers   []*Selection `json:"answers"`
	Current   int          `json:"current"`
	Confirmed []bool       `json:"confirmed"`
	Flagged   map[int]bool `json:"-"`

	Phase Phase `json:"phase"`
	Score int   `json:"score"`

	// Exam countdown. Duration zero means untimed; the remaining time is
	// always recomputed from the wall-clock anchor, never decremented.
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`

	// Wrong-only review, meaningful once finished. WrongIndices is a
	// snapshot taken when review mode is entered and never recomputed
	// while active.
	ReviewingWrongOnly bool  `json:"reviewingWrongOnly"`
	WrongIndices       []int `json:"wrongIndices"`
	WrongCursor        int   `json:"wrongCursor"`

	RapidMode bool `json:"rapidMode"`

	// Generation stamps scheduled auto-advances; see Advance.
	Generation int64 `json:"-"`

	recorder Recorder
}

// NewSession starts a session over the given question snapshot. Exam mode
// anchors the countdown at now; other modes are untimed.
func NewSession(cfg config.Settings, questions []Question, rec Recorder, now time.Time) *Session {
	s := &Session{
		ID:         uuid.New().String(),
		Mode:       cfg.Mode,
		Questions:  questions,
		Answers:    make([]*Selection, len(questions)),
		Confirmed:  make([]bool, len(questions)),
		Flagged:    make(map[int]bool),
		Phase:      PhaseActive,
		RapidMode:  cfg.RapidMode,
		Generation: generation.Add(1),
		recorder:   rec,
	}
	if cfg.Mode == config.ModeExam {
		s.StartedAt = now
		s.Duration = config.ExamDuration
	}
	return s
}

// SetRecorder attaches the scoring sink, used when restoring a persisted
// session whose recorder cannot be serialized.
func (s *Session) SetRecorder(rec Recorder) {
	s.recorder = rec
}

// NextGeneration stamps the session with a fresh generation, invalidating
// any auto-advance scheduled before a restore.
func (s *Session) NextGeneration() {
	s.Generation = generation.Add(1)
}
