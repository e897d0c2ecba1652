// ----------------------------------------------------------------------------
// FILE: trace/trace.go
// ----------------------------------------------------------------------------
// PACKAGE: trace
// PURPOSE: JSON evaluation trace for the `--trace` CLI flag
//          (SPEC_FULL.md §4): one JSON object per top-level form giving
//          its source text, heap-id and rendered result, and elapsed
//          time. Built incrementally with sjson.SetRaw rather than
//          marshaling a Go struct, the way the pack's gjson/sjson
//          dependency is meant to be used, and queried back out with
//          gjson by Len, Errors and Last.
// ----------------------------------------------------------------------------

package trace

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Entry is one top-level form's evaluation record.
type Entry struct {
	Form      string
	HeapID    uint64
	Result    string
	IsError   bool
	DurationUS int64
}

// Trace accumulates entries as a single JSON array document, appended to
// incrementally via sjson so the in-progress document stays valid JSON
// even if the process is interrupted mid-run.
type Trace struct {
	doc string
}

// New returns an empty trace, an empty JSON array.
func New() *Trace { return &Trace{doc: "[]"} }

// Record appends e to the trace.
func (t *Trace) Record(e Entry) error {
	idx := gjson.Get(t.doc, "#").Int()
	path := fmt.Sprintf("%d", idx)

	doc, err := sjson.Set(t.doc, path+".form", e.Form)
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, path+".heap_id", e.HeapID)
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, path+".result", e.Result)
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, path+".is_error", e.IsError)
	if err != nil {
		return err
	}
	doc, err = sjson.Set(doc, path+".duration_us", e.DurationUS)
	if err != nil {
		return err
	}
	t.doc = doc
	return nil
}

// JSON returns the accumulated trace document.
func (t *Trace) JSON() string { return t.doc }

// Len reports how many entries have been recorded.
func (t *Trace) Len() int {
	return int(gjson.Get(t.doc, "#").Int())
}

// Errors returns the "form" field of every entry whose is_error is true.
func (t *Trace) Errors() []string {
	var out []string
	gjson.Get(t.doc, "#(is_error==true)#.form").ForEach(func(_, value gjson.Result) bool {
		out = append(out, value.String())
		return true
	})
	return out
}

// Last returns the most recently recorded entry's result text, or "" if
// the trace is empty.
func (t *Trace) Last() string {
	n := t.Len()
	if n == 0 {
		return ""
	}
	return gjson.Get(t.doc, fmt.Sprintf("%d.result", n-1)).String()
}
