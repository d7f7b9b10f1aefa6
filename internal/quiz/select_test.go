package quiz

import (
	"math/rand/v2"
	"testing"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/stats"
)

func testSelector() *Selector {
	return NewSelectorWithRand(rand.New(rand.NewPCG(1, 2)))
}

func testBank() []bank.Question {
	mk := func(text string, typ bank.QuestionType) bank.Question {
		q := bank.Question{
			Text:    text,
			Type:    typ,
			Options: []string{"甲", "乙", "丙", "丁"},
		}
		if typ == bank.TypeMultiple {
			q.Answer = bank.Answer{Multi: []string{"甲", "乙"}}
		} else {
			q.Answer = bank.Answer{Single: "甲"}
		}
		return q
	}
	return []bank.Question{
		mk("b1", bank.TypeBoolean),
		mk("b2", bank.TypeBoolean),
		mk("b3", bank.TypeBoolean),
		mk("s1", bank.TypeSingle),
		mk("s2", bank.TypeSingle),
		mk("m1", bank.TypeMultiple),
	}
}

func TestSelect_CountsAndTypeOrder(t *testing.T) {
	// 3 boolean, 2 single, 1 multiple in the bank; ask for 2/2/1.
	got := testSelector().Select(testBank(), config.Counts{Boolean: 2, Single: 2, Multiple: 1}, nil, false)

	if len(got) != 5 {
		t.Fatalf("selected %d questions, want 5", len(got))
	}
	wantTypes := []bank.QuestionType{
		bank.TypeBoolean, bank.TypeBoolean,
		bank.TypeSingle, bank.TypeSingle,
		bank.TypeMultiple,
	}
	for i, q := range got {
		if q.Type != wantTypes[i] {
			t.Errorf("question %d has type %s, want %s", i, q.Type, wantTypes[i])
		}
	}
}

func TestSelect_ClampsToAvailable(t *testing.T) {
	got := testSelector().Select(testBank(), config.Counts{Boolean: 99, Single: 99, Multiple: 99}, nil, false)
	if len(got) != 6 {
		t.Fatalf("selected %d questions, want all 6", len(got))
	}

	counts := map[bank.QuestionType]int{}
	for _, q := range got {
		counts[q.Type]++
	}
	if counts[bank.TypeBoolean] != 3 || counts[bank.TypeSingle] != 2 || counts[bank.TypeMultiple] != 1 {
		t.Errorf("per-type counts = %v, want 3/2/1", counts)
	}
}

func TestSelect_ZeroRequestedIsValid(t *testing.T) {
	got := testSelector().Select(testBank(), config.Counts{}, nil, false)
	if len(got) != 0 {
		t.Errorf("selected %d questions, want 0", len(got))
	}
}

func TestSelect_TypeOrderNonDecreasing(t *testing.T) {
	got := testSelector().Select(testBank(), config.Counts{Boolean: 3, Single: 2, Multiple: 1}, nil, true)
	for i := 1; i < len(got); i++ {
		if bank.TypeOrder(got[i-1].Type) > bank.TypeOrder(got[i].Type) {
			t.Fatalf("type order decreases at %d: %s after %s", i, got[i].Type, got[i-1].Type)
		}
	}
}

func TestSelect_WrongCountBias(t *testing.T) {
	qs := testBank()
	history := map[string]stats.Record{
		qs[2].Fingerprint(): {Total: 5, Wrong: 4}, // b3
		qs[1].Fingerprint(): {Total: 5, Wrong: 2}, // b2
	}

	// With only one boolean slot, the most-wrong question must always win.
	for i := 0; i < 20; i++ {
		sel := NewSelectorWithRand(rand.New(rand.NewPCG(uint64(i), 7)))
		got := sel.Select(qs, config.Counts{Boolean: 1}, history, false)
		if len(got) != 1 {
			t.Fatalf("selected %d, want 1", len(got))
		}
		if got[0].Text != "b3" {
			t.Fatalf("iteration %d selected %q, want most-wrong b3", i, got[0].Text)
		}
	}
}

func TestSelect_TieBreakVaries(t *testing.T) {
	qs := testBank()

	// All-zero history: the pick should not be frozen across seeds.
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		sel := NewSelectorWithRand(rand.New(rand.NewPCG(uint64(i), uint64(i)+1)))
		got := sel.Select(qs, config.Counts{Boolean: 1}, nil, false)
		seen[got[0].Text] = true
	}
	if len(seen) < 2 {
		t.Errorf("tie-break always picked %v; want variation across seeds", seen)
	}
}

func TestSelect_ShuffleLeavesBankIntact(t *testing.T) {
	qs := testBank()
	original := append([]string(nil), qs[0].Options...)

	got := testSelector().Select(qs, config.Counts{Boolean: 3, Single: 2, Multiple: 1}, nil, true)

	for i, o := range qs[0].Options {
		if o != original[i] {
			t.Fatal("bank option order was mutated by shuffling")
		}
	}
	// The session copy keeps the same option set.
	for _, q := range got {
		if len(q.Options) != 4 {
			t.Fatalf("session question lost options: %v", q.Options)
		}
	}
}

func TestSelect_FingerprintFromCanonicalOrder(t *testing.T) {
	qs := testBank()
	want := map[string]bool{}
	for _, q := range qs {
		want[q.Fingerprint()] = true
	}

	got := testSelector().Select(qs, config.Counts{Boolean: 3, Single: 2, Multiple: 1}, nil, true)
	for _, q := range got {
		if !want[q.Key] {
			t.Errorf("session question key %q not derived from canonical bank entry", q.Key)
		}
	}
}
