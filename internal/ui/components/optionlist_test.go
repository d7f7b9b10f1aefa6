package components

import (
	"strings"
	"testing"
)

func TestOptionListCursorClamped(t *testing.T) {
	o := OptionList{Options: []string{"甲", "乙", "丙"}}

	o.MoveCursor(-5)
	if o.Cursor != 0 {
		t.Errorf("cursor after -5 = %d, want 0", o.Cursor)
	}
	o.MoveCursor(99)
	if o.Cursor != 2 {
		t.Errorf("cursor after +99 = %d, want 2", o.Cursor)
	}
	if o.CursorOption() != "丙" {
		t.Errorf("cursor option = %q", o.CursorOption())
	}
}

func TestOptionListMarks(t *testing.T) {
	single := OptionList{Options: []string{"甲", "乙"}, Chosen: []string{"乙"}}
	view := single.View()
	if !strings.Contains(view, "(o) B) 乙") {
		t.Errorf("single pick not marked:\n%s", view)
	}
	if !strings.Contains(view, "( ) A) 甲") {
		t.Errorf("unpicked option marked:\n%s", view)
	}

	multi := OptionList{Options: []string{"甲", "乙"}, Chosen: []string{"甲"}, Multi: true}
	view = multi.View()
	if !strings.Contains(view, "[x]") || !strings.Contains(view, "[ ]") {
		t.Errorf("checkbox marks missing:\n%s", view)
	}
}
