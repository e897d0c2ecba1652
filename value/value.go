// ----------------------------------------------------------------------------
// FILE: value/value.go
// ----------------------------------------------------------------------------
// PACKAGE: value
// PURPOSE: Heap-resident runtime values (spec.md §3.5): numbers, functions,
//          macros, list cells, symbols, booleans, errors and flow-control
//          signals, plus the string variant added by SPEC_FULL.md §5.2.
//          Store wraps a generic heap.Heap[Payload], adding the process-
//          wide boolean/empty-list singletons and gensym counter called
//          out in spec.md §5 and §3.5.
// ----------------------------------------------------------------------------

package value

import (
	"fmt"
	"strings"

	"github.com/vyion-lang/vyion/heap"
	"github.com/vyion-lang/vyion/number"
	"github.com/vyion-lang/vyion/parsetree"
	"github.com/vyion-lang/vyion/scope"
	"github.com/vyion-lang/vyion/token"
)

// maxErrorTrace bounds the traceback chain appended by the evaluator as an
// error propagates up through call frames (SPEC_FULL.md §10, grounded on
// the original's Error.c traceback list), so unbounded recursion doesn't
// grow an error value without bound.
const maxErrorTrace = 32

// ID is a stable value identifier, as returned by the heap.
type ID = heap.ID

// Kind tags the variant a Payload currently holds. It is a distinct type
// over heap.Kind so that it can carry its own String method.
type Kind heap.Kind

const (
	KindNumber Kind = iota
	KindFunction
	KindMacro
	KindList
	KindSymbol
	KindBoolean
	KindError
	KindFlowControl
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindFunction:
		return "function"
	case KindMacro:
		return "macro"
	case KindList:
		return "list"
	case KindSymbol:
		return "symbol"
	case KindBoolean:
		return "boolean"
	case KindError:
		return "error"
	case KindFlowControl:
		return "flow-control"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// ArgKind is one formal parameter's binding kind (spec.md §3.7).
type ArgKind int

const (
	ArgPositional ArgKind = iota
	ArgOptional
	ArgNamed
	ArgNamedOptional
	ArgRest
)

// ArgDescriptor is one entry of a callable's formal parameter list.
type ArgDescriptor struct {
	Kind    ArgKind
	Name    string
	Default ID // valid for ArgOptional/ArgNamedOptional; evaluated at definition time
}

// NativeFunc is a built-in's implementation: given the store and already
// evaluated argument ids, produce a result id. Errors are signaled by
// returning an error value id, never a Go error or panic (spec.md §4.7).
type NativeFunc func(s *Store, args []ID) ID

// Callable is the shared shape of functions and macros (spec.md §3.5).
type Callable struct {
	Args    []ArgDescriptor
	IsMacro bool

	Native NativeFunc // non-nil for built-ins
	Name   string      // built-in name, for diagnostics/predicates

	Body    []parsetree.Node // non-nil for user-defined callables
	Closure *scope.Scope     // captured current-function scope
}

// ListCell is a singly-linked cell (spec.md §3.5). Empty is the sentinel
// marking the distinguished empty-list cell; Data/Next are meaningless
// when Empty is true.
type ListCell struct {
	Data  ID
	Next  ID
	Empty bool
}

// ControlKind identifies a flow-control signal's kind. `go` is the only
// one the core defines.
type ControlKind int

const ControlGo ControlKind = iota

// FlowControl carries a non-local control-transfer signal (spec.md §3.5).
type FlowControl struct {
	Kind   ControlKind
	Target string
}

// ErrorValue carries a diagnostic message and, optionally, the parse-tree
// node whose evaluation produced it (spec.md §3.5), plus a bounded
// traceback of call-site positions the original's Error.c keeps
// (SPEC_FULL.md §10) — purely additive to diagnostics, never changes
// which value is returned.
type ErrorValue struct {
	Message string
	Node    parsetree.Node
	Trace   []token.Position
}

// Payload is the tagged union stored per heap slot. Only the field named
// by Kind is meaningful.
type Payload struct {
	Kind Kind

	Number   number.Number
	Callable *Callable
	List     ListCell
	Symbol   string
	Bool     bool
	Error    ErrorValue
	Flow     FlowControl
	Str      string
}

// Store wraps the generic heap with Vyion's payload type and the
// process-wide singletons spec.md §3.5/§5 calls for.
type Store struct {
	*heap.Heap[Payload]

	trueID, falseID       ID
	haveTrue, haveFalse    bool
	emptyListID            ID
	haveEmptyList          bool
	gensymCounter          int
}

// NewStore returns a fresh, empty Store with default heap tunables.
func NewStore() *Store {
	return &Store{Heap: heap.New[Payload]()}
}

// NewStoreWithParams returns a fresh, empty Store whose backing heap
// grows in chunks of chunkSize, scaling its arena by growFactor on each
// compaction (SPEC_FULL.md §3.4's `.vyion.yaml` heap tunables).
func NewStoreWithParams(chunkSize int, growFactor float64) *Store {
	return &Store{Heap: heap.NewWithParams[Payload](chunkSize, growFactor)}
}

// payload dereferences id's current payload. The returned pointer is only
// valid until the next Alloc* call on this store (spec.md §4.4, §5:
// "Implementers must not cache payload pointers across any call that can
// allocate").
func (s *Store) payload(id ID) *Payload { return s.Heap.Payload(id) }

// Kind returns id's type tag.
func (s *Store) Kind(id ID) Kind { return Kind(s.Heap.TypeOf(id)) }

func (s *Store) alloc(kind Kind, p Payload) ID {
	p.Kind = kind
	return s.Heap.Allocate(heap.Kind(kind), p)
}

// AllocNumber heap-allocates a number value.
func (s *Store) AllocNumber(n number.Number) ID {
	return s.alloc(KindNumber, Payload{Number: n})
}

// Number returns the number held at id.
func (s *Store) Number(id ID) number.Number { return s.payload(id).Number }

// AllocSymbol heap-allocates a symbol value.
func (s *Store) AllocSymbol(name string) ID {
	return s.alloc(KindSymbol, Payload{Symbol: name})
}

// Symbol returns the symbol name held at id.
func (s *Store) Symbol(id ID) string { return s.payload(id).Symbol }

// AllocString heap-allocates a string value (SPEC_FULL.md §5.2).
func (s *Store) AllocString(str string) ID {
	return s.alloc(KindString, Payload{Str: str})
}

// String returns the string held at id.
func (s *Store) String(id ID) string { return s.payload(id).Str }

// AllocError heap-allocates an error value.
func (s *Store) AllocError(message string, node parsetree.Node) ID {
	return s.alloc(KindError, Payload{Error: ErrorValue{Message: message, Node: node}})
}

// Error returns the error payload held at id.
func (s *Store) Error(id ID) ErrorValue { return s.payload(id).Error }

// AttachNode fills in a missing position on an error value in place
// (spec.md §4.7: "If the error has no associated parse-tree, assign the
// current node before returning").
func (s *Store) AttachNode(id ID, node parsetree.Node) {
	p := s.payload(id)
	if p.Kind == KindError && p.Error.Node == nil {
		p.Error.Node = node
	}
}

// AppendTrace records one more call-site position on an error value's
// traceback, bounded to maxErrorTrace entries (SPEC_FULL.md §10).
func (s *Store) AppendTrace(id ID, pos token.Position) {
	p := s.payload(id)
	if p.Kind != KindError || len(p.Error.Trace) >= maxErrorTrace {
		return
	}
	p.Error.Trace = append(p.Error.Trace, pos)
}

// AllocFlowControl heap-allocates a `go` flow-control signal.
func (s *Store) AllocFlowControl(target string) ID {
	return s.alloc(KindFlowControl, Payload{Flow: FlowControl{Kind: ControlGo, Target: target}})
}

// FlowControl returns the flow-control payload held at id.
func (s *Store) FlowControl(id ID) FlowControl { return s.payload(id).Flow }

// AllocFunction heap-allocates a function value.
func (s *Store) AllocFunction(c *Callable) ID {
	c.IsMacro = false
	return s.alloc(KindFunction, Payload{Callable: c})
}

// AllocMacro heap-allocates a macro value.
func (s *Store) AllocMacro(c *Callable) ID {
	c.IsMacro = true
	return s.alloc(KindMacro, Payload{Callable: c})
}

// Callable returns the callable payload held at id (valid for both
// KindFunction and KindMacro).
func (s *Store) Callable(id ID) *Callable { return s.payload(id).Callable }

// True returns the singleton true value, allocating it lazily.
func (s *Store) True() ID {
	if !s.haveTrue {
		s.trueID = s.alloc(KindBoolean, Payload{Bool: true})
		s.haveTrue = true
	}
	return s.trueID
}

// False returns the singleton false value, allocating it lazily.
func (s *Store) False() ID {
	if !s.haveFalse {
		s.falseID = s.alloc(KindBoolean, Payload{Bool: false})
		s.haveFalse = true
	}
	return s.falseID
}

// Bool returns a singleton boolean value for b.
func (s *Store) Bool(b bool) ID {
	if b {
		return s.True()
	}
	return s.False()
}

// BoolValue returns the Go bool held at id. Callers must check Kind is
// KindBoolean first.
func (s *Store) BoolValue(id ID) bool { return s.payload(id).Bool }

// EmptyList returns the singleton distinguished empty-list cell,
// allocating it lazily.
func (s *Store) EmptyList() ID {
	if !s.haveEmptyList {
		s.emptyListID = s.alloc(KindList, Payload{List: ListCell{Empty: true}})
		s.haveEmptyList = true
	}
	return s.emptyListID
}

// Cons allocates a new non-empty list cell.
func (s *Store) Cons(data, next ID) ID {
	return s.alloc(KindList, Payload{List: ListCell{Data: data, Next: next}})
}

// ListCell returns the list-cell payload held at id.
func (s *Store) ListCell(id ID) ListCell { return s.payload(id).List }

// ListFromSlice builds a list value from elements in order, terminated
// by the empty-list singleton.
func (s *Store) ListFromSlice(elements []ID) ID {
	result := s.EmptyList()
	for i := len(elements) - 1; i >= 0; i-- {
		result = s.Cons(elements[i], result)
	}
	return result
}

// ListToSlice walks a list value into a Go slice of element ids. Returns
// false if id is not a well-formed proper list.
func (s *Store) ListToSlice(id ID) ([]ID, bool) {
	var out []ID
	for {
		if s.Kind(id) != KindList {
			return nil, false
		}
		cell := s.ListCell(id)
		if cell.Empty {
			return out, true
		}
		out = append(out, cell.Data)
		id = cell.Next
	}
}

// Gensym allocates a fresh, process-uniquely-named symbol (the `unique`
// built-in, spec.md §6.3).
func (s *Store) Gensym() ID {
	s.gensymCounter++
	return s.AllocSymbol(fmt.Sprintf("#:g%d", s.gensymCounter))
}

// Inspect renders id the way print/print-line and the REPL show it.
func (s *Store) Inspect(id ID) string {
	switch s.Kind(id) {
	case KindNumber:
		return number.Inspect(s.Number(id))
	case KindSymbol:
		return s.Symbol(id)
	case KindString:
		return s.String(id)
	case KindBoolean:
		if s.BoolValue(id) {
			return "true!"
		}
		return "false!"
	case KindError:
		return "error: " + s.Error(id).Message
	case KindFlowControl:
		return "go:" + s.FlowControl(id).Target
	case KindFunction:
		return s.inspectCallable(id, "function")
	case KindMacro:
		return s.inspectCallable(id, "macro")
	case KindList:
		return s.inspectList(id)
	default:
		return "?"
	}
}

func (s *Store) inspectCallable(id ID, label string) string {
	c := s.Callable(id)
	if c.Name != "" {
		return fmt.Sprintf("<%s %s>", label, c.Name)
	}
	return fmt.Sprintf("<%s>", label)
}

func (s *Store) inspectList(id ID) string {
	elements, ok := s.ListToSlice(id)
	if !ok {
		return "<improper list>"
	}
	parts := make([]string, len(elements))
	for i, e := range elements {
		parts[i] = s.Inspect(e)
	}
	return "(" + strings.Join(parts, " ") + ")"
}
