// ----------------------------------------------------------------------------
// FILE: diag/diag_unit_test.go
// ----------------------------------------------------------------------------
package diag

import (
	"strings"
	"testing"

	"github.com/vyion-lang/vyion/token"
)

func TestFormat_IncludesSourceLineAndCaret(t *testing.T) {
	src := "(set x 1)\n(+ x y)"
	d := New(KindRuntime, "Variable not found: y", src, "", token.Position{Line: 1, Column: 6})
	out := d.Format(false)

	if !strings.Contains(out, "line 2:7") {
		t.Fatalf("expected 1-indexed position in header, got %q", out)
	}
	if !strings.Contains(out, "(+ x y)") {
		t.Fatalf("expected source line excerpt, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret, got %q", out)
	}
	if !strings.Contains(out, "Variable not found: y") {
		t.Fatalf("expected the message, got %q", out)
	}
}

func TestFormat_WithFileName(t *testing.T) {
	d := New(KindParse, "unexpected token", "x", "main.vy", token.Position{Line: 0, Column: 0})
	out := d.Format(false)
	if !strings.Contains(out, "main.vy:1:1") {
		t.Fatalf("expected file-qualified header, got %q", out)
	}
}

func TestFormat_NoSourceOmitsExcerpt(t *testing.T) {
	d := New(KindLex, "boom", "", "", token.Position{Line: 0, Column: 0})
	out := d.Format(false)
	if strings.Contains(out, "^") {
		t.Fatalf("did not expect a caret with no source, got %q", out)
	}
}

func TestFormatAll_JoinsMultiple(t *testing.T) {
	a := New(KindParse, "a", "x", "", token.Position{})
	b := New(KindParse, "b", "x", "", token.Position{})
	out := FormatAll([]*Diagnostic{a, b}, false)
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Fatalf("got %q", out)
	}
}
