// Package progress persists in-flight sessions so a restarted app can
// offer to pick up where the user left off. Each mode owns one snapshot
// slot; starting fresh in a mode overwrites it.
package progress

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/quiz"
	"github.com/baiyu/pjexam/internal/store"
	"github.com/baiyu/pjexam/internal/tasting"
)

// QuizSnapshot is the persisted form of a quiz session plus the pieces the
// session itself does not serialize.
type QuizSnapshot struct {
	Session *quiz.Session `json:"session"`
	Flagged []int         `json:"flagged,omitempty"`
	SavedAt time.Time     `json:"savedAt"`
}

// TastingSnapshot is the persisted form of a blind-tasting session.
type TastingSnapshot struct {
	Session *tasting.Session `json:"session"`
	SavedAt time.Time        `json:"savedAt"`
}

// Manager reads and writes per-mode progress snapshots.
type Manager struct {
	store *store.Store
}

func New(st *store.Store) *Manager {
	return &Manager{store: st}
}

// SaveQuiz persists the session under its mode's slot. Writes are
// best-effort; a failed save costs at most one resume offer.
func (m *Manager) SaveQuiz(s *quiz.Session) {
	if s == nil {
		return
	}
	snap := QuizSnapshot{
		Session: s,
		Flagged: flaggedIndices(s),
		SavedAt: time.Now(),
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	_ = m.store.Put(store.ProgressKey(string(s.Mode)), raw)
}

// LoadQuiz returns the stored snapshot for a mode, or nil when there is
// none or the stored bytes do not parse.
func (m *Manager) LoadQuiz(mode config.Mode) *QuizSnapshot {
	raw, ok, err := m.store.Get(store.ProgressKey(string(mode)))
	if err != nil || !ok {
		return nil
	}
	var snap QuizSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap.Session == nil {
		return nil
	}
	return &snap
}

// SaveTasting persists the blind-tasting session under the blind slot.
func (m *Manager) SaveTasting(s *tasting.Session) {
	if s == nil {
		return
	}
	snap := TastingSnapshot{Session: s, SavedAt: time.Now()}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	_ = m.store.Put(store.ProgressKey(string(config.ModeBlind)), raw)
}

// LoadTasting returns the stored blind-tasting snapshot, or nil.
func (m *Manager) LoadTasting() *TastingSnapshot {
	raw, ok, err := m.store.Get(store.ProgressKey(string(config.ModeBlind)))
	if err != nil || !ok {
		return nil
	}
	var snap TastingSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap.Session == nil {
		return nil
	}
	return &snap
}

// Clear drops the snapshot slot for a mode.
func (m *Manager) Clear(mode config.Mode) {
	_ = m.store.Delete(store.ProgressKey(string(mode)))
}

// Resumable reports whether the snapshot holds a session worth offering to
// resume: unfinished, with at least one answer, confirmation, or a moved
// cursor.
func (s *QuizSnapshot) Resumable() bool {
	if s == nil || s.Session == nil {
		return false
	}
	sess := s.Session
	if sess.Phase == quiz.PhaseFinished || len(sess.Questions) == 0 {
		return false
	}
	if sess.Current > 0 {
		return true
	}
	for _, a := range sess.Answers {
		if a.Answered() {
			return true
		}
	}
	for _, c := range sess.Confirmed {
		if c {
			return true
		}
	}
	return false
}

// Restore rebuilds a live session from the snapshot: reattaches the
// recorder, restores the flag set, and stamps a fresh generation so that
// auto-advances scheduled before the save cannot fire into it.
func (s *QuizSnapshot) Restore(rec quiz.Recorder) *quiz.Session {
	sess := s.Session
	sess.Flagged = make(map[int]bool, len(s.Flagged))
	for _, idx := range s.Flagged {
		sess.Flagged[idx] = true
	}
	sess.SetRecorder(rec)
	sess.NextGeneration()
	return sess
}

// Resumable reports whether the blind-tasting snapshot holds progress: a
// moved cursor or an answer that differs from the default.
func (s *TastingSnapshot) Resumable() bool {
	if s == nil || s.Session == nil || len(s.Session.Samples) == 0 {
		return false
	}
	return s.Session.Current > 0 || s.Session.Answer.Answered()
}

// Restore rebuilds a live blind-tasting session from the snapshot.
func (s *TastingSnapshot) Restore(rec tasting.Recorder) *tasting.Session {
	sess := s.Session
	sess.SetRecorder(rec)
	return sess
}

func flaggedIndices(s *quiz.Session) []int {
	if len(s.Flagged) == 0 {
		return nil
	}
	out := make([]int, 0, len(s.Flagged))
	for idx, on := range s.Flagged {
		if on {
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}
