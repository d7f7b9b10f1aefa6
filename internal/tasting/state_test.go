package tasting

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/baiyu/pjexam/internal/bank"
	"github.com/baiyu/pjexam/internal/config"
	"github.com/baiyu/pjexam/internal/stats"
)

type recordedUpdate struct {
	key   string
	wrong bool
}

type fakeRecorder struct {
	updates []recordedUpdate
}

func (f *fakeRecorder) Update(key string, wasWrong bool) {
	f.updates = append(f.updates, recordedUpdate{key, wasWrong})
}

func twoSamples() []bank.Sample {
	return []bank.Sample{
		testSample(),
		{Name: "2号酒样", Aroma: "酱香型", ABV: 53, Score: 91.5, Equipment: "条石窖", Agents: "高温大曲"},
	}
}

func TestDefaultAnswer(t *testing.T) {
	a := DefaultAnswer()
	if a.Score != config.DefaultTastingScore {
		t.Errorf("default score = %q, want %q", a.Score, config.DefaultTastingScore)
	}
	if a.Answered() {
		t.Error("pristine answer should not count as answered")
	}
	a.Aroma = "清香型"
	if !a.Answered() {
		t.Error("aroma selection should count as answered")
	}
	b := DefaultAnswer()
	b.Score = "92.5"
	if !b.Answered() {
		t.Error("moved score should count as answered")
	}
}

func TestMutationBlockedAfterConfirm(t *testing.T) {
	s := NewSession(config.AllTastingFields(), twoSamples(), nil)
	s.SelectField(FieldAroma, "浓香型")
	s.Confirmed = true

	s.SelectField(FieldAroma, "酱香型")
	s.ToggleMulti(FieldEquipment, "泥窖")
	s.AdjustScore(0.5)

	if s.Answer.Aroma != "浓香型" {
		t.Errorf("aroma changed after confirm: %q", s.Answer.Aroma)
	}
	if len(s.Answer.Equipment) != 0 {
		t.Errorf("equipment changed after confirm: %v", s.Answer.Equipment)
	}
	if s.Answer.Score != config.DefaultTastingScore {
		t.Errorf("score changed after confirm: %q", s.Answer.Score)
	}
}

func TestToggleMulti(t *testing.T) {
	s := NewSession(config.AllTastingFields(), twoSamples(), nil)
	s.ToggleMulti(FieldEquipment, "泥窖")
	s.ToggleMulti(FieldEquipment, "水泥窖")
	if len(s.Answer.Equipment) != 2 {
		t.Fatalf("equipment = %v, want two entries", s.Answer.Equipment)
	}
	s.ToggleMulti(FieldEquipment, "泥窖")
	if len(s.Answer.Equipment) != 1 || s.Answer.Equipment[0] != "水泥窖" {
		t.Errorf("after toggle off: %v", s.Answer.Equipment)
	}
}

func TestAdjustScoreUnclamped(t *testing.T) {
	s := NewSession(config.AllTastingFields(), twoSamples(), nil)
	for range 20 {
		s.AdjustScore(1)
	}
	if s.Answer.Score != "112.0" {
		t.Errorf("score after +20 = %q, want 112.0", s.Answer.Score)
	}
	for range 50 {
		s.AdjustScore(-1)
	}
	if s.Answer.Score != "-38.0" {
		t.Errorf("score after -50 more = %q, want -38.0", s.Answer.Score)
	}
}

func TestConfirmOrAdvanceFlow(t *testing.T) {
	rec := &fakeRecorder{}
	s := NewSession(config.AllTastingFields(), twoSamples(), rec)

	s.SelectField(FieldAroma, "浓香型")
	if ended := s.ConfirmOrAdvance(); ended {
		t.Fatal("first confirm should not end the session")
	}
	if !s.Confirmed {
		t.Fatal("first call should confirm, not advance")
	}
	if len(rec.updates) != 1 {
		t.Fatalf("confirm should record exactly one attempt, got %d", len(rec.updates))
	}
	if !rec.updates[0].wrong {
		t.Error("partially answered attempt must be recorded wrong")
	}

	if ended := s.ConfirmOrAdvance(); ended {
		t.Fatal("advance off a non-last sample should not end the session")
	}
	if s.Current != 1 {
		t.Errorf("current = %d, want 1", s.Current)
	}
	if s.Confirmed {
		t.Error("advance must reset confirmation")
	}
	if s.Answer.Answered() {
		t.Error("advance must reset the answer to defaults")
	}

	s.ConfirmOrAdvance() // confirm last sample
	if ended := s.ConfirmOrAdvance(); !ended {
		t.Error("advancing past the last sample should end the session")
	}
	if len(rec.updates) != 2 {
		t.Errorf("two samples confirmed, %d attempts recorded", len(rec.updates))
	}
}

func TestCompleted(t *testing.T) {
	s := NewSession(config.AllTastingFields(), twoSamples(), nil)
	if s.Completed() {
		t.Error("fresh session is not completed")
	}
	s.Current = 1
	if s.Completed() {
		t.Error("unconfirmed last sample is not completed")
	}
	s.Confirmed = true
	if !s.Completed() {
		t.Error("confirmed last sample is completed")
	}
}

func TestAttemptKeyEmbedsAnswers(t *testing.T) {
	s := NewSession(config.AllTastingFields(), twoSamples(), nil)
	base := s.AttemptKey()
	if !strings.HasPrefix(base, "1号酒样||") {
		t.Errorf("key should start with the sample name: %q", base)
	}

	s.SelectField(FieldAroma, "浓香型")
	if s.AttemptKey() == base {
		t.Error("changing an answer must change the attempt key")
	}
}

func TestOrderIsPermutation(t *testing.T) {
	samples := twoSamples()
	seen := map[string]stats.Record{
		samples[0].Key(): {Total: 9},
	}

	rnd := rand.New(rand.NewPCG(7, 7))
	for range 20 {
		got := Order(samples, seen, rnd)
		if len(got) != len(samples) {
			t.Fatalf("order returned %d samples, want %d", len(got), len(samples))
		}
		names := map[string]bool{}
		for _, s := range got {
			names[s.Name] = true
		}
		for _, s := range samples {
			if !names[s.Name] {
				t.Fatalf("sample %s missing from ordering", s.Name)
			}
		}
	}
}

func TestOrderLeavesInputIntact(t *testing.T) {
	samples := twoSamples()
	rnd := rand.New(rand.NewPCG(1, 2))
	for range 10 {
		Order(samples, nil, rnd)
	}
	if samples[0].Name != "1号酒样" || samples[1].Name != "2号酒样" {
		t.Errorf("input slice reordered: %v, %v", samples[0].Name, samples[1].Name)
	}
}
