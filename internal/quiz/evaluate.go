package quiz

import "github.com/baiyu/pjexam/internal/bank"

// Selection records a user's answer for one question slot. A nil *Selection
// means unanswered. Single and boolean questions set Option; multiple-choice
// questions accumulate Options with set semantics (presentation order is
// insignificant, membership is what matters).
type Selection struct {
	Option  string   `json:"option,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Answered reports whether the selection counts as an answer. An emptied
// multiple-choice selection does not.
func (s *Selection) Answered() bool {
	if s == nil {
		return false
	}
	if s.Options != nil {
		return len(s.Options) > 0
	}
	return s.Option != ""
}

// IsCorrect decides correctness under the type-specific equality rules:
// set equality for multiple, exact case-sensitive string equality for
// single and boolean. Unanswered is never correct.
func IsCorrect(q bank.Question, sel *Selection) bool {
	if sel == nil {
		return false
	}
	if q.Type == bank.TypeMultiple {
		return setEqual(sel.Options, q.Answer.Multi)
	}
	return sel.Option == q.Answer.Single
}

// setEqual compares two string slices as sets: equal cardinality and full
// membership overlap. Duplicates collapse.
func setEqual(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, v := range b {
		bs[v] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if _, ok := bs[v]; !ok {
			return false
		}
	}
	return true
}
