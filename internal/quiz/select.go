package quiz

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/stats"
)

// Question is a session-local snapshot of a bank question. Options may be
// shuffled for this session; Key is the canonical fingerprint computed
// before shuffling, so statistics stay stable across sessions.
type Question struct {
	bank.Question
	Key string `json:"key"`
}

// Selector builds ordered question lists for new sessions.
type Selector struct {
	rnd *rand.Rand
}

// NewSelector creates a selector seeded from the clock.
func NewSelector() *Selector {
	now := uint64(time.Now().UnixNano())
	return &Selector{rnd: rand.New(rand.NewPCG(now, now>>32))}
}

// NewSelectorWithRand creates a selector with a caller-supplied source,
// used by tests for deterministic orderings.
func NewSelectorWithRand(rnd *rand.Rand) *Selector {
	return &Selector{rnd: rnd}
}

// Select produces the question list for a new session. Per type it sorts
// candidates by descending historical wrong count (uniform random
// tie-break, so an exhausted wrong-question supply never freezes the
// ordering), clamps to min(requested, available), and optionally shuffles
// each selected question's options as a session-local copy. The combined
// list is ordered boolean < single < multiple. A zero-question result is
// valid and means "nothing to show".
func (s *Selector) Select(qs []bank.Question, counts config.Counts, history map[string]stats.Record, shuffleOptions bool) []Question {
	grouped := make(map[bank.QuestionType][]bank.Question)
	for _, q := range qs {
		grouped[q.Type] = append(grouped[q.Type], q)
	}

	var selected []Question
	for _, typ := range []bank.QuestionType{bank.TypeBoolean, bank.TypeSingle, bank.TypeMultiple} {
		group := grouped[typ]
		if len(group) == 0 {
			continue
		}

		count := countFor(counts, typ)
		if count > len(group) {
			count = len(group)
		}
		if count <= 0 {
			continue
		}

		// Random priorities break wrong-count ties uniformly.
		priority := s.rnd.Perm(len(group))
		idx := make([]int, len(group))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			wa := history[group[idx[a]].Fingerprint()].Wrong
			wb := history[group[idx[b]].Fingerprint()].Wrong
			if wa != wb {
				return wa > wb
			}
			return priority[idx[a]] < priority[idx[b]]
		})

		for _, i := range idx[:count] {
			q := Question{Question: group[i], Key: group[i].Fingerprint()}
			if shuffleOptions {
				q.Options = s.shuffledCopy(group[i].Options)
			}
			selected = append(selected, q)
		}
	}

	sort.SliceStable(selected, func(a, b int) bool {
		return bank.TypeOrder(selected[a].Type) < bank.TypeOrder(selected[b].Type)
	})
	return selected
}

// shuffledCopy Fisher-Yates shuffles a copy, leaving the bank order intact.
func (s *Selector) shuffledCopy(options []string) []string {
	out := make([]string, len(options))
	copy(out, options)
	s.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func countFor(counts config.Counts, typ bank.QuestionType) int {
	switch typ {
	case bank.TypeBoolean:
		return counts.Boolean
	case bank.TypeSingle:
		return counts.Single
	case bank.TypeMultiple:
		return counts.Multiple
	}
	return 0
}
