package quiz

import (
	"testing"

	"github.com/baiyu/pjexam/internal/bank"
)

func singleQuestion() bank.Question {
	return bank.Question{
		Text:    "汾酒属于下列哪种香型？",
		Type:    bank.TypeSingle,
		Options: []string{"浓香型", "清香型", "酱香型", "凤香型"},
		Answer:  bank.Answer{Single: "清香型"},
	}
}

func multipleQuestion() bank.Question {
	return bank.Question{
		Text:    "下列哪些属于白酒发酵设备？",
		Type:    bank.TypeMultiple,
		Options: []string{"泥窖", "地缸", "石窖", "酒海"},
		Answer:  bank.Answer{Multi: []string{"泥窖", "地缸", "石窖"}},
	}
}

func TestIsCorrect_Unanswered(t *testing.T) {
	if IsCorrect(singleQuestion(), nil) {
		t.Error("nil answer must never be correct")
	}
	if IsCorrect(multipleQuestion(), nil) {
		t.Error("nil answer must never be correct for multiple")
	}
}

func TestIsCorrect_Single(t *testing.T) {
	q := singleQuestion()

	tests := []struct {
		option string
		want   bool
	}{
		{"清香型", true},
		{"浓香型", false},
		{"清香型 ", false}, // no trimming
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCorrect(q, &Selection{Option: tt.option}); got != tt.want {
			t.Errorf("IsCorrect(%q) = %v, want %v", tt.option, got, tt.want)
		}
	}
}

func TestIsCorrect_MultipleSetSemantics(t *testing.T) {
	q := multipleQuestion()

	tests := []struct {
		name    string
		options []string
		want    bool
	}{
		{"canonical order", []string{"泥窖", "地缸", "石窖"}, true},
		{"permuted order", []string{"石窖", "泥窖", "地缸"}, true},
		{"duplicates collapse", []string{"石窖", "泥窖", "地缸", "地缸"}, true},
		{"missing member", []string{"泥窖", "地缸"}, false},
		{"extra member", []string{"泥窖", "地缸", "石窖", "酒海"}, false},
		{"wrong member", []string{"泥窖", "地缸", "酒海"}, false},
		{"empty", []string{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCorrect(q, &Selection{Options: tt.options}); got != tt.want {
				t.Errorf("IsCorrect(%v) = %v, want %v", tt.options, got, tt.want)
			}
		})
	}
}

func TestIsCorrect_MultipleInvariantUnderCanonicalPermutation(t *testing.T) {
	q := multipleQuestion()
	q.Answer.Multi = []string{"石窖", "地缸", "泥窖"}

	if !IsCorrect(q, &Selection{Options: []string{"泥窖", "地缸", "石窖"}}) {
		t.Error("correctness must not depend on canonical answer order")
	}
}

func TestSelectionAnswered(t *testing.T) {
	var nilSel *Selection
	if nilSel.Answered() {
		t.Error("nil selection is unanswered")
	}
	if (&Selection{Options: []string{}}).Answered() {
		t.Error("emptied multi selection is unanswered")
	}
	if !(&Selection{Option: "对"}).Answered() {
		t.Error("single selection is answered")
	}
	if !(&Selection{Options: []string{"a"}}).Answered() {
		t.Error("non-empty multi selection is answered")
	}
}
