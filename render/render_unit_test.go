// ----------------------------------------------------------------------------
// FILE: render/render_unit_test.go
// ----------------------------------------------------------------------------
// PURPOSE: Display-width counting for wide/fullwidth runes, and the
//          bordered Box layout the REPL's debug dumps rely on.
// ----------------------------------------------------------------------------

package render

import (
	"strings"
	"testing"
)

func TestDisplayWidthASCII(t *testing.T) {
	if got := DisplayWidth("hello"); got != 5 {
		t.Errorf("expected width 5, got %d", got)
	}
}

func TestDisplayWidthFullwidthRunesCountDouble(t *testing.T) {
	if got := DisplayWidth("カ"); got != 2 {
		t.Errorf("expected width 2 for a fullwidth rune, got %d", got)
	}
}

func TestBoxContainsTitleAndLines(t *testing.T) {
	box := Box("TOKENS", []string{"IDENT  foo", "NUMBER 42"})

	if !strings.Contains(box, "TOKENS") {
		t.Errorf("expected title in box, got:\n%s", box)
	}
	if !strings.Contains(box, "IDENT  foo") {
		t.Errorf("expected first line in box, got:\n%s", box)
	}
	if !strings.Contains(box, "NUMBER 42") {
		t.Errorf("expected second line in box, got:\n%s", box)
	}
}

func TestBoxRowsHaveUniformWidth(t *testing.T) {
	box := Box("X", []string{"short", "a much longer line"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")

	width := -1
	for _, l := range lines {
		w := DisplayWidth(l)
		if width == -1 {
			width = w
			continue
		}
		if w != width {
			t.Errorf("expected uniform row width %d, line %q has width %d", width, l, w)
		}
	}
}

func TestBoxWithNoLines(t *testing.T) {
	box := Box("EMPTY", nil)
	if !strings.Contains(box, "EMPTY") {
		t.Errorf("expected title even with no lines, got:\n%s", box)
	}
}
