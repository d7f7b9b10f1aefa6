package config

import "testing"

func TestDefaultCounts(t *testing.T) {
	max := Counts{Boolean: 5, Single: 8, Multiple: 3}

	got := DefaultCounts(ModeExam, max)
	if got != DefaultExamCounts {
		t.Errorf("exam counts = %+v, want %+v", got, DefaultExamCounts)
	}

	got = DefaultCounts(ModePractice, max)
	if got != max {
		t.Errorf("practice counts = %+v, want %+v", got, max)
	}
}

func TestTastingFieldsAny(t *testing.T) {
	if (TastingFields{}).Any() {
		t.Error("empty field set should report Any() == false")
	}
	if !(TastingFields{Score: true}).Any() {
		t.Error("field set with score should report Any() == true")
	}
	if !AllTastingFields().Any() {
		t.Error("default field set should report Any() == true")
	}
}
