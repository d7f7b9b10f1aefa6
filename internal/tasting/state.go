// Package tasting implements the blind-tasting session: one sample at a
// time, answered through five independently scored fields instead of an
// option pick.
package tasting

import (
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/google/uuid"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/stats"
)

// Field identifies one of the five tasting answer fields.
type Field int

const (
	FieldAroma Field = iota
	FieldABV
	FieldScore
	FieldEquipment
	FieldAgents
)

// Answer is the user's record for the current sample. Score holds numeric
// text; Equipment and Agents are multi-selections with set semantics.
type Answer struct {
	Aroma     string   `json:"aroma"`
	ABV       string   `json:"abv"`
	Score     string   `json:"score"`
	Equipment []string `json:"equipment"`
	Agents    []string `json:"agents"`
}

// DefaultAnswer is the reset state between samples.
func DefaultAnswer() Answer {
	return Answer{
		Score:     config.DefaultTastingScore,
		Equipment: []string{},
		Agents:    []string{},
	}
}

// Answered reports whether the answer differs from the default, which is
// what makes a persisted blind session worth resuming.
func (a Answer) Answered() bool {
	return a.Aroma != "" ||
		a.ABV != "" ||
		a.Score != config.DefaultTastingScore ||
		len(a.Equipment) > 0 ||
		len(a.Agents) > 0
}

// Recorder receives one scoring event per confirmed attempt.
type Recorder interface {
	Update(key string, wasWrong bool)
}

// Session owns the mutable state of one blind-tasting run. There is no
// separate finished phase; completion is the last sample being confirmed.
type Session struct {
	ID        string               `json:"id"`
	Samples   []bank.Sample        `json:"samples"`
	Current   int                  `json:"current"`
	Answer    Answer               `json:"answer"`
	Confirmed bool                 `json:"confirmed"`
	Fields    config.TastingFields `json:"fields"`

	recorder Recorder
}

// NewSession starts a blind-tasting session over pre-ordered samples.
func NewSession(fields config.TastingFields, samples []bank.Sample, rec Recorder) *Session {
	return &Session{
		ID:       uuid.New().String(),
		Samples:  samples,
		Answer:   DefaultAnswer(),
		Fields:   fields,
		recorder: rec,
	}
}

// SetRecorder attaches the scoring sink after a snapshot restore.
func (s *Session) SetRecorder(rec Recorder) {
	s.recorder = rec
}

// Order arranges samples for presentation: least-shown first by historical
// total (random tie-break), then a global shuffle on top. The frequency
// bias only loosely influences an otherwise random order; that double
// randomization is intentional.
func Order(samples []bank.Sample, history map[string]stats.Record, rnd *rand.Rand) []bank.Sample {
	out := sortByHistory(samples, history, rnd)
	rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// sortByHistory returns a copy sorted by ascending times shown with uniform
// random tie-break.
func sortByHistory(samples []bank.Sample, history map[string]stats.Record, rnd *rand.Rand) []bank.Sample {
	out := make([]bank.Sample, len(samples))
	copy(out, samples)

	priority := rnd.Perm(len(out))
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ta := history[out[idx[a]].Key()].Total
		tb := history[out[idx[b]].Key()].Total
		if ta != tb {
			return ta < tb
		}
		return priority[idx[a]] < priority[idx[b]]
	})

	sorted := make([]bank.Sample, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}

// CurrentSample returns the active sample, or nil for an empty session.
func (s *Session) CurrentSample() *bank.Sample {
	if s.Current < 0 || s.Current >= len(s.Samples) {
		return nil
	}
	return &s.Samples[s.Current]
}

// Completed reports whether the last sample has been confirmed.
func (s *Session) Completed() bool {
	return len(s.Samples) > 0 && s.Current == len(s.Samples)-1 && s.Confirmed
}

// SelectField sets a single-valued field (aroma or abv). Mutation is
// blocked once the current sample is confirmed.
func (s *Session) SelectField(f Field, value string) {
	if s.Confirmed {
		return
	}
	switch f {
	case FieldAroma:
		s.Answer.Aroma = value
	case FieldABV:
		s.Answer.ABV = value
	}
}

// ToggleMulti toggles membership of value in a multi-valued field
// (equipment or fermentation agents). Blocked once confirmed.
func (s *Session) ToggleMulti(f Field, value string) {
	if s.Confirmed {
		return
	}
	toggle := func(xs []string) []string {
		if slices.Contains(xs, value) {
			return slices.DeleteFunc(xs, func(v string) bool { return v == value })
		}
		return append(xs, value)
	}
	switch f {
	case FieldEquipment:
		s.Answer.Equipment = toggle(s.Answer.Equipment)
	case FieldAgents:
		s.Answer.Agents = toggle(s.Answer.Agents)
	}
}

// AdjustScore shifts the total-score text by delta (±0.2 or ±1.0 from the
// UI), formatted to one decimal. The result is deliberately unclamped;
// scores outside [0,100] are representable. Blocked once confirmed.
func (s *Session) AdjustScore(delta float64) {
	if s.Confirmed {
		return
	}
	s.Answer.Score = adjustScoreText(s.Answer.Score, delta)
}

// ConfirmOrAdvance is the single action button of the tasting flow. An
// unconfirmed sample is confirmed and scored; a confirmed one advances to
// the next sample with a fresh default answer. Returns true when the
// session has ended (advance past the last sample).
func (s *Session) ConfirmOrAdvance() bool {
	if len(s.Samples) == 0 {
		return true
	}

	if !s.Confirmed {
		s.Confirmed = true
		if s.recorder != nil {
			s.recorder.Update(s.AttemptKey(), s.attemptWrong())
		}
		return false
	}

	if s.Current < len(s.Samples)-1 {
		s.Current++
		s.Answer = DefaultAnswer()
		s.Confirmed = false
		return false
	}
	return true
}

// AttemptKey builds the statistics fingerprint for the current attempt from
// the sample name and the user's five field values. Tracking is therefore
// per distinct answer combination, not per sample; that quirk is kept.
func (s *Session) AttemptKey() string {
	sample := s.Samples[s.Current]
	return bank.Fingerprint(sample.Name, []string{
		s.Answer.Aroma,
		s.Answer.ABV,
		s.Answer.Score,
		joinTokens(s.Answer.Equipment),
		joinTokens(s.Answer.Agents),
	})
}
