package builtins

import (
	"strings"
	"testing"

	"github.com/vyion-lang/vyion/number"
	"github.com/vyion-lang/vyion/parsetree"
	"github.com/vyion-lang/vyion/scope"
	"github.com/vyion-lang/vyion/value"
)

func newStore(t *testing.T) (*value.Store, *scope.Env) {
	t.Helper()
	s := value.NewStore()
	env := scope.NewEnv()
	Install(s, env, func(_ parsetree.Node) value.ID { return s.EmptyList() }, func(string) (string, error) {
		return "", nil
	})
	return s, env
}

func call(t *testing.T, s *value.Store, env *scope.Env, name string, args ...value.ID) value.ID {
	t.Helper()
	id, ok := env.Lookup(name)
	if !ok {
		t.Fatalf("builtin %q not installed", name)
	}
	c := s.Callable(id)
	if c == nil || c.Native == nil {
		t.Fatalf("%q is not a native callable", name)
	}
	return c.Native(s, args)
}

func TestAddFoldsFromZero(t *testing.T) {
	s, env := newStore(t)
	result := call(t, s, env, "+")
	if got := s.Inspect(result); got != "0" {
		t.Errorf("(+) = %s, want 0", got)
	}
}

func TestMulFoldsFromOne(t *testing.T) {
	s, env := newStore(t)
	result := call(t, s, env, "*")
	if got := s.Inspect(result); got != "1" {
		t.Errorf("(*) = %s, want 1", got)
	}
}

func TestHeadTailOnList(t *testing.T) {
	s, env := newStore(t)
	list := s.ListFromSlice([]value.ID{s.AllocNumber(number.Int(1)), s.AllocNumber(number.Int(2))})
	h := call(t, s, env, "head", list)
	if got := s.Inspect(h); got != "1" {
		t.Errorf("head = %s, want 1", got)
	}
	tl := call(t, s, env, "tail", list)
	if s.Kind(tl) != value.KindList {
		t.Fatalf("tail should be a list, got %s", s.Kind(tl))
	}
}

func TestHeadOfEmptyListIsError(t *testing.T) {
	s, env := newStore(t)
	result := call(t, s, env, "head", s.EmptyList())
	if s.Kind(result) != value.KindError {
		t.Errorf("head of empty list should error, got %s", s.Kind(result))
	}
}

func TestEqStructural(t *testing.T) {
	s, env := newStore(t)
	a := s.ListFromSlice([]value.ID{s.AllocNumber(number.Int(1))})
	b := s.ListFromSlice([]value.ID{s.AllocNumber(number.Int(1))})
	result := call(t, s, env, "eq", a, b)
	if s.Kind(result) != value.KindBoolean || !s.BoolValue(result) {
		t.Errorf("structurally equal lists should be eq")
	}
}

func TestPredicates(t *testing.T) {
	s, env := newStore(t)
	n := s.AllocNumber(number.Int(1))
	result := call(t, s, env, "number?", n)
	if !s.BoolValue(result) {
		t.Errorf("number? on a number should be true")
	}
	result = call(t, s, env, "list?", n)
	if s.BoolValue(result) {
		t.Errorf("list? on a number should be false")
	}
}

func TestPrintWritesToConfiguredOutput(t *testing.T) {
	s, env := newStore(t)
	var buf strings.Builder
	SetOutput(func(str string) { buf.WriteString(str) })
	defer SetOutput(func(str string) {})

	call(t, s, env, "print-line", s.AllocNumber(number.Int(1)))
	if got := buf.String(); got != "1\n" {
		t.Errorf("print-line output = %q, want %q", got, "1\n")
	}
}

func TestUniqueProducesDistinctSymbols(t *testing.T) {
	s, env := newStore(t)
	a := call(t, s, env, "unique")
	b := call(t, s, env, "unique")
	if s.Symbol(a) == s.Symbol(b) {
		t.Errorf("unique should produce distinct names, got %q twice", s.Symbol(a))
	}
}

func TestRealAndIntCoercion(t *testing.T) {
	s, env := newStore(t)
	r := call(t, s, env, "real", s.AllocNumber(number.Int(3)))
	if got := s.Inspect(r); got != "3" {
		t.Errorf("real(3) = %s, want 3 (a real with no fractional part prints without one)", got)
	}
	i := call(t, s, env, "int", s.AllocNumber(number.MakeRatio(7, 2)))
	if got := s.Inspect(i); got != "3" {
		t.Errorf("int(7/2) = %s, want 3", got)
	}
}
