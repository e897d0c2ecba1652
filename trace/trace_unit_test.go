// ----------------------------------------------------------------------------
// FILE: trace/trace_unit_test.go
// ----------------------------------------------------------------------------
// PURPOSE: Incremental JSON accumulation, length/error querying and the
//          most-recent-entry lookup (Last).
// ----------------------------------------------------------------------------

package trace

import (
	"strings"
	"testing"
)

func TestNewTraceIsEmptyArray(t *testing.T) {
	tr := New()
	if tr.JSON() != "[]" {
		t.Errorf("expected empty JSON array, got %q", tr.JSON())
	}
	if tr.Len() != 0 {
		t.Errorf("expected length 0, got %d", tr.Len())
	}
}

func TestRecordAppendsEntries(t *testing.T) {
	tr := New()
	if err := tr.Record(Entry{Form: "(+ 1 2)", HeapID: 5, Result: "3", IsError: false, DurationUS: 12}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tr.Record(Entry{Form: "(bad)", HeapID: 6, Result: "error: undefined", IsError: true, DurationUS: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", tr.Len())
	}
	if !strings.Contains(tr.JSON(), `"form":"(+ 1 2)"`) {
		t.Errorf("expected first form in JSON, got %s", tr.JSON())
	}
}

func TestErrorsReturnsOnlyFailingForms(t *testing.T) {
	tr := New()
	tr.Record(Entry{Form: "(+ 1 2)", Result: "3", IsError: false})
	tr.Record(Entry{Form: "(bad)", Result: "error: undefined", IsError: true})
	tr.Record(Entry{Form: "(also-bad)", Result: "error: nope", IsError: true})

	errs := tr.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected 2 error forms, got %d: %v", len(errs), errs)
	}
	if errs[0] != "(bad)" || errs[1] != "(also-bad)" {
		t.Errorf("unexpected error forms: %v", errs)
	}
}

func TestLastReturnsMostRecentResult(t *testing.T) {
	tr := New()
	if tr.Last() != "" {
		t.Errorf("expected empty Last() on an empty trace, got %q", tr.Last())
	}
	tr.Record(Entry{Form: "(+ 1 1)", Result: "2"})
	tr.Record(Entry{Form: "(+ 2 2)", Result: "4"})
	if tr.Last() != "4" {
		t.Errorf("expected last result \"4\", got %q", tr.Last())
	}
}
