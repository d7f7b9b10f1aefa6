// Package stats tracks cumulative per-question answer statistics and the
// recent exam record history. All reads degrade to empty data and all writes
// are best-effort: a broken store never interrupts a running session, it
// only loses history.
package stats

import (
	"encoding/json"

	"github.com/baiyu/pjexam/internal/store"
)

// Record is the cumulative counter pair for one question fingerprint.
// Wrong <= Total always holds.
type Record struct {
	Total int `json:"total"`
	Wrong int `json:"wrong"`
}

// ExamRecord is one finished exam, newest first in storage.
type ExamRecord struct {
	Score           int   `json:"score"`
	Total           int   `json:"total"`
	DurationSeconds int   `json:"duration"`
	TimestampMillis int64 `json:"timestamp"`
}

// MaxExamRecords caps the exam history ring buffer.
const MaxExamRecords = 10

// Stats reads and updates the statistics mapping in the store.
type Stats struct {
	store *store.Store
}

// New creates a Stats service over the given store.
func New(st *store.Store) *Stats {
	return &Stats{store: st}
}

// Load returns the fingerprint-to-record mapping. Missing or unreadable
// storage yields an empty map, never an error.
func (s *Stats) Load() map[string]Record {
	out := make(map[string]Record)
	raw, ok, err := s.store.Get(store.KeyStats)
	if err != nil || !ok {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return make(map[string]Record)
	}
	return out
}

// Update increments the record for key: Total always, Wrong iff wasWrong.
// The record is created on first use and the whole mapping is written back
// synchronously. Write failures are swallowed.
func (s *Stats) Update(key string, wasWrong bool) {
	m := s.Load()
	rec := m[key]
	rec.Total++
	if wasWrong {
		rec.Wrong++
	}
	m[key] = rec

	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	_ = s.store.Put(store.KeyStats, raw)
}

// Clear removes all question statistics.
func (s *Stats) Clear() {
	_ = s.store.Delete(store.KeyStats)
}

// Records returns the stored exam history, newest first. Missing or
// unreadable storage yields an empty slice.
func (s *Stats) Records() []ExamRecord {
	raw, ok, err := s.store.Get(store.KeyExamRecords)
	if err != nil || !ok {
		return nil
	}
	var recs []ExamRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil
	}
	return recs
}

// AppendRecord prepends rec to the exam history and trims it to
// MaxExamRecords entries. Best-effort.
func (s *Stats) AppendRecord(rec ExamRecord) {
	recs := append([]ExamRecord{rec}, s.Records()...)
	if len(recs) > MaxExamRecords {
		recs = recs[:MaxExamRecords]
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return
	}
	_ = s.store.Put(store.KeyExamRecords, raw)
}
