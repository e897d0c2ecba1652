// ----------------------------------------------------------------------------
// FILE: scope/scope.go
// ----------------------------------------------------------------------------
// PACKAGE: scope
// PURPOSE: The three-scope lexical model and call stack (spec.md §3.6,
//          §4.5): an ordered name -> value-id mapping, and an Env that
//          always exposes local, current-function and global scopes with
//          local -> function -> global lookup order. Grounded on the
//          teacher's object/environment.go map+outer-pointer chain,
//          extended with insertion order (needed for closure merging) and
//          an explicit push/pop call stack instead of outer pointers.
// ----------------------------------------------------------------------------

package scope

import "github.com/vyion-lang/vyion/heap"

// ID aliases heap.ID so scope has no dependency on the value package —
// value depends on scope (for Callable.Closure), not the reverse.
type ID = heap.ID

// Scope is an ordered mapping from name to value-id. Insertion order is
// preserved because it matters when scopes are merged at closure capture
// time (spec.md §4.6.4); lookup itself is by name via an index map.
type Scope struct {
	names []string
	index map[string]int
	ids   []ID
}

// New returns an empty Scope.
func New() *Scope {
	return &Scope{index: make(map[string]int)}
}

// Define binds name to id, preserving insertion order on first definition
// and overwriting in place on redefinition.
func (s *Scope) Define(name string, id ID) {
	if i, ok := s.index[name]; ok {
		s.ids[i] = id
		return
	}
	s.index[name] = len(s.names)
	s.names = append(s.names, name)
	s.ids = append(s.ids, id)
}

// Get looks up name in this scope only (no outer chain — Env handles
// the local/function/global search order).
func (s *Scope) Get(name string) (ID, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.ids[i], true
}

// Assign updates an existing binding in place, reporting whether name was
// present.
func (s *Scope) Assign(name string, id ID) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.ids[i] = id
	return true
}

// Names returns the bound names in definition order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Merge returns a new Scope containing base's bindings followed by
// overlay's, with overlay winning on name collisions. Either argument may
// be nil.
func Merge(base, overlay *Scope) *Scope {
	m := New()
	if base != nil {
		for _, n := range base.names {
			id, _ := base.Get(n)
			m.Define(n, id)
		}
	}
	if overlay != nil {
		for _, n := range overlay.names {
			id, _ := overlay.Get(n)
			m.Define(n, id)
		}
	}
	return m
}

// callFrame preserves the caller's local and current-function scopes
// across a call, so PopCall can restore both (spec.md §4.5 step 6).
type callFrame struct {
	Local    *Scope
	Function *Scope
}

// Env threads the three always-present scopes (global, current-function,
// local) and the LIFO call stack that swaps local/function per call.
type Env struct {
	Global   *Scope
	Function *Scope
	Local    *Scope
	stack    []callFrame
}

// NewEnv returns an Env whose local and current-function scopes both
// start out equal to the global scope, so lookups collapse to a plain
// global search until the first call pushes a frame.
func NewEnv() *Env {
	g := New()
	return &Env{Global: g, Function: g, Local: g}
}

// Lookup searches local, then current-function (if distinct from
// local), then global, returning the first hit.
func (e *Env) Lookup(name string) (ID, bool) {
	if id, ok := e.Local.Get(name); ok {
		return id, true
	}
	if e.Function != e.Local {
		if id, ok := e.Function.Get(name); ok {
			return id, true
		}
	}
	if e.Global != e.Function && e.Global != e.Local {
		if id, ok := e.Global.Get(name); ok {
			return id, true
		}
	}
	return 0, false
}

// Define binds name in the local scope.
func (e *Env) Define(name string, id ID) {
	e.Local.Define(name, id)
}

// DefineGlobal binds name in the global scope unconditionally, for the
// `global` special form.
func (e *Env) DefineGlobal(name string, id ID) {
	e.Global.Define(name, id)
}

// Assign implements `set`: update the first scope (local, then function,
// then global) in which name is already bound; if none, define it in
// local (spec.md §3.6).
func (e *Env) Assign(name string, id ID) {
	if e.Local.Assign(name, id) {
		return
	}
	if e.Function != e.Local && e.Function.Assign(name, id) {
		return
	}
	if e.Global != e.Function && e.Global != e.Local && e.Global.Assign(name, id) {
		return
	}
	e.Local.Define(name, id)
}

// CaptureClosure implements spec.md §4.6.4: a merged snapshot of
// current-function ∪ local, with either one excluded if it is the global
// scope (so a capture taken outside any call is empty and global names
// stay resolved live through the global scope).
func (e *Env) CaptureClosure() *Scope {
	fn, local := e.Function, e.Local
	if fn == e.Global {
		fn = nil
	}
	if local == e.Global {
		local = nil
	}
	return Merge(fn, local)
}

// PushCall installs newLocal/newFunction as the active scopes, saving the
// caller's for PopCall to restore (spec.md §4.5 steps 1-3).
func (e *Env) PushCall(newLocal, newFunction *Scope) {
	e.stack = append(e.stack, callFrame{Local: e.Local, Function: e.Function})
	e.Local = newLocal
	e.Function = newFunction
}

// PopCall restores the scopes saved by the matching PushCall (spec.md
// §4.5 step 6).
func (e *Env) PopCall() {
	n := len(e.stack)
	f := e.stack[n-1]
	e.stack = e.stack[:n-1]
	e.Local = f.Local
	e.Function = f.Function
}

// Depth reports the current call-stack depth.
func (e *Env) Depth() int { return len(e.stack) }
