// Package config defines the resolved settings consumed by session state
// machines. There are no ambient singletons; callers pass a Settings value
// into session construction.
package config

import "time"

// Mode identifies which part of the application a session belongs to.
type Mode string

const (
	ModeExam     Mode = "exam"
	ModePractice Mode = "practice"
	ModeBlind    Mode = "blind"
	ModeStats    Mode = "stats"
)

const (
	// ExamDuration is the fixed countdown for exam-mode sessions.
	ExamDuration = 10 * time.Minute

	// RapidAdvancePractice is the auto-advance delay after a correct
	// rapid-mode answer in practice mode.
	RapidAdvancePractice = 800 * time.Millisecond

	// RapidAdvanceExam is the unconditional auto-advance delay after a
	// rapid-mode answer in exam mode.
	RapidAdvanceExam = 200 * time.Millisecond

	// DefaultTastingScore is the starting total-score text for a tasting
	// answer.
	DefaultTastingScore = "92.0"
)

// Counts is the desired number of questions per type for a session.
type Counts struct {
	Boolean  int
	Single   int
	Multiple int
}

// DefaultExamCounts is the fixed exam paper composition.
var DefaultExamCounts = Counts{Boolean: 30, Single: 30, Multiple: 40}

// TastingFields selects which of the five tasting fields are evaluated.
type TastingFields struct {
	Aroma     bool
	ABV       bool
	Score     bool
	Equipment bool
	Agents    bool
}

// AllTastingFields enables every field, the default.
func AllTastingFields() TastingFields {
	return TastingFields{Aroma: true, ABV: true, Score: true, Equipment: true, Agents: true}
}

// Any reports whether at least one field is enabled. A session with no
// active fields has nothing to evaluate and is rejected by the UI.
func (f TastingFields) Any() bool {
	return f.Aroma || f.ABV || f.Score || f.Equipment || f.Agents
}

// Settings is the full resolved configuration for a session.
type Settings struct {
	Mode           Mode
	Counts         Counts
	ShuffleOptions bool
	RapidMode      bool
	DarkMode       bool
	Tasting        TastingFields
}

// DefaultSettings returns the settings for a mode. Exam mode uses the fixed
// paper composition; every other mode defaults to the whole bank.
func DefaultSettings(mode Mode, max Counts) Settings {
	return Settings{
		Mode:           mode,
		Counts:         DefaultCounts(mode, max),
		ShuffleOptions: true,
		RapidMode:      false,
		DarkMode:       true,
		Tasting:        AllTastingFields(),
	}
}

// DefaultCounts resolves the per-type question counts for a mode.
func DefaultCounts(mode Mode, max Counts) Counts {
	if mode == ModeExam {
		return DefaultExamCounts
	}
	return max
}
