package tasting

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/baiyu/pjexam/internal/bank"
)

// FieldResult is the per-field feedback state.
type FieldResult int

const (
	Unanswered FieldResult = iota
	Correct
	Incorrect
)

// scoreToleranceTenths is the inclusive total-score tolerance, in tenths of
// a point: |user - correct| <= 0.4 passes, 0.5 fails.
const scoreToleranceTenths = 4

// CheckField evaluates one field of the current answer against the current
// sample. Every field reads Unanswered until the sample is confirmed.
func (s *Session) CheckField(f Field) FieldResult {
	if !s.Confirmed {
		return Unanswered
	}
	sample := s.CurrentSample()
	if sample == nil {
		return Unanswered
	}
	return checkField(*sample, s.Answer, f)
}

func checkField(sample bank.Sample, ans Answer, f Field) FieldResult {
	switch f {
	case FieldAroma:
		return boolResult(ans.Aroma == sample.Aroma)
	case FieldABV:
		return boolResult(ans.ABV == bank.FormatNumber(sample.ABV))
	case FieldScore:
		return checkScore(sample.Score, ans.Score)
	case FieldEquipment:
		return boolResult(tokenSetEqual(ans.Equipment, sample.Equipment))
	case FieldAgents:
		return boolResult(tokenSetEqual(ans.Agents, sample.Agents))
	}
	return Incorrect
}

// checkScore compares scores as integers scaled by ten rather than raw
// floats, so binary representation error (0.40000000000000057 instead of
// 0.4) cannot flip a boundary case. Unparseable input is incorrect, never
// an error.
func checkScore(correct float64, userText string) FieldResult {
	user, err := strconv.ParseFloat(strings.TrimSpace(userText), 64)
	if err != nil {
		return Incorrect
	}
	userTenths := int(math.Round(user * 10))
	correctTenths := int(math.Round(correct * 10))
	diff := userTenths - correctTenths
	if diff < 0 {
		diff = -diff
	}
	return boolResult(diff <= scoreToleranceTenths)
}

// attemptWrong reports whether the whole attempt counts as wrong for
// statistics: any one of the five fields incorrect, no partial credit.
func (s *Session) attemptWrong() bool {
	sample := s.CurrentSample()
	if sample == nil {
		return true
	}
	for _, f := range []Field{FieldAroma, FieldABV, FieldScore, FieldEquipment, FieldAgents} {
		if checkField(*sample, s.Answer, f) == Incorrect {
			return true
		}
	}
	return false
}

// tokenSetEqual compares a user multi-selection against a comma-joined
// canonical token list as sets.
func tokenSetEqual(user []string, canonical string) bool {
	want := make(map[string]struct{})
	for _, tok := range bank.SplitTokens(canonical) {
		want[tok] = struct{}{}
	}
	got := make(map[string]struct{})
	for _, v := range user {
		got[v] = struct{}{}
	}
	if len(got) != len(want) {
		return false
	}
	for v := range got {
		if _, ok := want[v]; !ok {
			return false
		}
	}
	return true
}

// adjustScoreText applies delta to numeric score text, one decimal place.
func adjustScoreText(text string, delta float64) string {
	cur, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		cur = 0
	}
	return fmt.Sprintf("%.1f", cur+delta)
}

func joinTokens(xs []string) string {
	return strings.Join(xs, ",")
}

func boolResult(ok bool) FieldResult {
	if ok {
		return Correct
	}
	return Incorrect
}
