// ----------------------------------------------------------------------------
// FILE: scope/scope_unit_test.go
// ----------------------------------------------------------------------------
package scope

import "testing"

func TestScope_DefineGet(t *testing.T) {
	s := New()
	s.Define("x", 1)
	if id, ok := s.Get("x"); !ok || id != 1 {
		t.Fatalf("got %v, %v", id, ok)
	}
	if _, ok := s.Get("y"); ok {
		t.Fatalf("expected y to be unbound")
	}
}

func TestScope_DefineOverwritesInPlace(t *testing.T) {
	s := New()
	s.Define("x", 1)
	s.Define("x", 2)
	if names := s.Names(); len(names) != 1 || names[0] != "x" {
		t.Fatalf("expected one entry, got %v", names)
	}
	if id, _ := s.Get("x"); id != 2 {
		t.Fatalf("got %v", id)
	}
}

func TestScope_AssignRequiresExisting(t *testing.T) {
	s := New()
	if s.Assign("x", 1) {
		t.Fatalf("expected assign to fail on unbound name")
	}
	s.Define("x", 1)
	if !s.Assign("x", 9) {
		t.Fatalf("expected assign to succeed")
	}
	if id, _ := s.Get("x"); id != 9 {
		t.Fatalf("got %v", id)
	}
}

func TestScope_NamesPreservesOrder(t *testing.T) {
	s := New()
	s.Define("b", 1)
	s.Define("a", 2)
	s.Define("c", 3)
	got := s.Names()
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMerge_OverlayWins(t *testing.T) {
	base := New()
	base.Define("x", 1)
	base.Define("y", 1)
	overlay := New()
	overlay.Define("y", 2)
	overlay.Define("z", 3)

	m := Merge(base, overlay)
	if id, _ := m.Get("x"); id != 1 {
		t.Fatalf("expected x from base, got %v", id)
	}
	if id, _ := m.Get("y"); id != 2 {
		t.Fatalf("expected overlay y to win, got %v", id)
	}
	if id, _ := m.Get("z"); id != 3 {
		t.Fatalf("expected z from overlay, got %v", id)
	}
}

func TestMerge_NilArguments(t *testing.T) {
	m := Merge(nil, nil)
	if len(m.Names()) != 0 {
		t.Fatalf("expected empty merge, got %v", m.Names())
	}
}

func TestEnv_LookupOrder(t *testing.T) {
	e := NewEnv()
	e.DefineGlobal("x", 1)

	fn := New()
	fn.Define("x", 2)
	local := New()
	e.PushCall(local, fn)

	if id, ok := e.Lookup("x"); !ok || id != 2 {
		t.Fatalf("expected function scope to win, got %v", id)
	}

	local.Define("x", 3)
	if id, ok := e.Lookup("x"); !ok || id != 3 {
		t.Fatalf("expected local scope to win, got %v", id)
	}

	e.PopCall()
	if id, ok := e.Lookup("x"); !ok || id != 1 {
		t.Fatalf("expected global after pop, got %v", id)
	}
}

func TestEnv_AssignFindsExistingScope(t *testing.T) {
	e := NewEnv()
	e.DefineGlobal("g", 1)

	fn := New()
	local := New()
	e.PushCall(local, fn)
	defer e.PopCall()

	e.Assign("g", 9)
	if id, _ := e.Global.Get("g"); id != 9 {
		t.Fatalf("expected global updated in place, got %v", id)
	}

	e.Assign("new", 5)
	if id, ok := e.Local.Get("new"); !ok || id != 5 {
		t.Fatalf("expected new name defined in local, got %v, %v", id, ok)
	}
}

func TestEnv_CaptureClosure_ExcludesGlobalLocal(t *testing.T) {
	e := NewEnv()
	e.DefineGlobal("x", 1)

	closure := e.CaptureClosure()
	if len(closure.Names()) != 0 {
		t.Fatalf("expected empty closure at top level, got %v", closure.Names())
	}
}

func TestEnv_CaptureClosure_MergesFunctionAndLocal(t *testing.T) {
	e := NewEnv()
	fn := New()
	fn.Define("outer", 1)
	local := New()
	local.Define("inner", 2)
	e.PushCall(local, fn)
	defer e.PopCall()

	closure := e.CaptureClosure()
	if id, ok := closure.Get("outer"); !ok || id != 1 {
		t.Fatalf("got %v, %v", id, ok)
	}
	if id, ok := closure.Get("inner"); !ok || id != 2 {
		t.Fatalf("got %v, %v", id, ok)
	}
}
