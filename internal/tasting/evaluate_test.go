package tasting

import (
	"testing"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/config"
)

func testSample() bank.Sample {
	return bank.Sample{
		Name:      "1号酒样",
		Aroma:     "浓香型",
		ABV:       52,
		Score:     90.0,
		Equipment: "泥窖,水泥窖",
		Agents:    "大曲",
	}
}

func confirmedSession(ans Answer) *Session {
	s := NewSession(config.AllTastingFields(), []bank.Sample{testSample()}, nil)
	s.Answer = ans
	s.Confirmed = true
	return s
}

func TestCheckField_UnansweredUntilConfirmed(t *testing.T) {
	s := NewSession(config.AllTastingFields(), []bank.Sample{testSample()}, nil)
	s.Answer.Aroma = "浓香型"

	for _, f := range []Field{FieldAroma, FieldABV, FieldScore, FieldEquipment, FieldAgents} {
		if got := s.CheckField(f); got != Unanswered {
			t.Errorf("field %d before confirm = %v, want Unanswered", f, got)
		}
	}
}

func TestCheckField_ScoreToleranceBoundary(t *testing.T) {
	tests := []struct {
		score string
		want  FieldResult
	}{
		{"90.0", Correct},
		{"90.4", Correct}, // boundary: 0.4 inclusive
		{"89.6", Correct},
		{"90.5", Incorrect}, // 0.5 fails
		{"89.5", Incorrect},
		{"91.0", Incorrect},
		{"abc", Incorrect}, // unparseable is incorrect, not an error
		{"", Incorrect},
	}
	for _, tt := range tests {
		s := confirmedSession(Answer{Score: tt.score})
		if got := s.CheckField(FieldScore); got != tt.want {
			t.Errorf("score %q = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestCheckField_ScoreScaledIntegers(t *testing.T) {
	// 90.0 vs 90.4: naive float subtraction yields 0.40000000000000057,
	// which would fail a raw <= 0.4 comparison. The scaled compare passes.
	s := confirmedSession(Answer{Score: "90.4"})
	if got := s.CheckField(FieldScore); got != Correct {
		t.Errorf("90.4 against 90.0 = %v, want Correct", got)
	}
}

func TestCheckField_ABVStringForm(t *testing.T) {
	s := confirmedSession(Answer{ABV: "52"})
	if got := s.CheckField(FieldABV); got != Correct {
		t.Errorf("abv 52 = %v, want Correct", got)
	}
	s = confirmedSession(Answer{ABV: "52.0"})
	if got := s.CheckField(FieldABV); got != Incorrect {
		t.Errorf("abv 52.0 = %v, want Incorrect (exact string form)", got)
	}
}

func TestCheckField_TokenSets(t *testing.T) {
	tests := []struct {
		name      string
		equipment []string
		want      FieldResult
	}{
		{"both members", []string{"泥窖", "水泥窖"}, Correct},
		{"permuted", []string{"水泥窖", "泥窖"}, Correct},
		{"missing", []string{"泥窖"}, Incorrect},
		{"extra", []string{"泥窖", "水泥窖", "陶罐"}, Incorrect},
		{"none", nil, Incorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := confirmedSession(Answer{Equipment: tt.equipment})
			if got := s.CheckField(FieldEquipment); got != tt.want {
				t.Errorf("equipment %v = %v, want %v", tt.equipment, got, tt.want)
			}
		})
	}
}

func TestAttemptWrong_NoPartialCredit(t *testing.T) {
	perfect := Answer{
		Aroma:     "浓香型",
		ABV:       "52",
		Score:     "90.2",
		Equipment: []string{"泥窖", "水泥窖"},
		Agents:    []string{"大曲"},
	}

	s := confirmedSession(perfect)
	if s.attemptWrong() {
		t.Error("all-correct attempt should not be wrong")
	}

	oneOff := perfect
	oneOff.Agents = []string{"小曲"}
	s = confirmedSession(oneOff)
	if !s.attemptWrong() {
		t.Error("one incorrect field makes the whole attempt wrong")
	}
}
