// ----------------------------------------------------------------------------
// FILE: builtins/builtins.go
// ----------------------------------------------------------------------------
// PACKAGE: builtins
// PURPOSE: The built-in global bindings (spec.md §6.3), installed as
//          native Callables in a fresh environment's global scope —
//          generalizing the teacher's evaluator-internal
//          applyFunction/evalInfixExpression switch into standalone
//          value.Callable entries any user code can shadow or pass
//          around like any other function value.
//
//          Install takes an eval callback and a source loader instead of
//          importing package eval directly, so `include` (which must
//          lex, parse and evaluate a loaded file) does not create an
//          import cycle between eval and builtins.
// ----------------------------------------------------------------------------

package builtins

import (
	"fmt"
	"unicode/utf8"

	"github.com/vyion-lang/vyion/lexer"
	"github.com/vyion-lang/vyion/number"
	"github.com/vyion-lang/vyion/parser"
	"github.com/vyion-lang/vyion/parsetree"
	"github.com/vyion-lang/vyion/scope"
	"github.com/vyion-lang/vyion/value"
)

// EvalFunc evaluates a single parse-tree node in the host evaluator's
// current top-level environment, returning a value-id (an error value on
// failure, per spec.md §4.7's in-band error convention).
type EvalFunc func(parsetree.Node) value.ID

// SourceLoader resolves a symbol name to the source text of the file it
// names, for the `include` built-in (spec.md §6.3).
type SourceLoader func(name string) (string, error)

// Install binds every built-in name in env's global scope (spec.md
// §6.3's table), backed by store. eval and load wire `include` to the
// host's own lex/parse/eval pipeline without this package importing it.
func Install(store *value.Store, env *scope.Env, eval EvalFunc, load SourceLoader) {
	for name, fn := range table(store, eval, load) {
		c := &value.Callable{Name: name, Native: fn}
		env.DefineGlobal(name, store.AllocFunction(c))
	}
}

func table(s *value.Store, eval EvalFunc, load SourceLoader) map[string]value.NativeFunc {
	return map[string]value.NativeFunc{
		"+":           arithFold(number.Int(0), number.Add),
		"*":           arithFold(number.Int(1), number.Mul),
		"-":           subtract,
		"/":           divide,
		"**":          power,
		"head":        head,
		"tail":        tail,
		"len":         length,
		"nth":         nth,
		"insert":      insert,
		"&":           boolFold(true, func(a, b bool) bool { return a && b }),
		"|":           boolFold(false, func(a, b bool) bool { return a || b }),
		"xor":         boolFold(false, func(a, b bool) bool { return a != b }),
		"not":         not,
		"<":           compareChain(func(c int) bool { return c < 0 }),
		">":           compareChain(func(c int) bool { return c > 0 }),
		"<=":          compareChain(func(c int) bool { return c <= 0 }),
		">=":          compareChain(func(c int) bool { return c >= 0 }),
		"=":           equalChain,
		"!=":          notEqualChain,
		"eq":          eqBuiltin,
		"print":       printBuiltin(false),
		"print-line":  printBuiltin(true),
		"include":     includeBuiltin(eval, load),
		"number?":     predicate(value.KindNumber),
		"function?":   predicate(value.KindFunction),
		"list?":       predicate(value.KindList),
		"symbol?":     predicate(value.KindSymbol),
		"boolean?":    predicate(value.KindBoolean),
		"macro?":      predicate(value.KindMacro),
		"error?":      predicate(value.KindError),
		"unique":      uniqueBuiltin,
		"real":        toReal,
		"int":         toInt,
	}
}

func arityError(want string, got int) string {
	return fmt.Sprintf("expected %s arguments, got %d", want, got)
}

func wrongKind(expected string, got value.Kind) string {
	return fmt.Sprintf("expected a %s, got a %s", expected, got)
}

// writeOut is where print/print-line write; tests may swap it out.
// (Replaced dynamically via SetOutput rather than exported as a bare var
// so the REPL/CLI wiring doesn't need to reach into this package's
// internals.)
var writeOut = defaultWriter

func defaultWriter(s string) { fmt.Print(s) }

// SetOutput redirects print/print-line output (used by the REPL and by
// tests that capture output).
func SetOutput(w func(string)) { writeOut = w }

func arithFold(identity number.Number, op func(a, b number.Number) number.Number) value.NativeFunc {
	return func(s *value.Store, args []value.ID) value.ID {
		acc := identity
		for _, a := range args {
			if s.Kind(a) != value.KindNumber {
				return s.AllocError(wrongKind("number", s.Kind(a)), nil)
			}
			acc = op(acc, s.Number(a))
		}
		return s.AllocNumber(acc)
	}
}

// subtract implements spec.md §6.3's `-`: one argument negates it, two or
// more subtract every remaining argument from the first (ordinary Lisp
// semantics; a literal "fold from identity 0" would make unary `-` an
// identity, not a negation).
func subtract(s *value.Store, args []value.ID) value.ID {
	if len(args) == 0 {
		return s.AllocError(arityError("at least 1", 0), nil)
	}
	for _, a := range args {
		if s.Kind(a) != value.KindNumber {
			return s.AllocError(wrongKind("number", s.Kind(a)), nil)
		}
	}
	if len(args) == 1 {
		return s.AllocNumber(number.Neg(s.Number(args[0])))
	}
	acc := s.Number(args[0])
	for _, a := range args[1:] {
		acc = number.Sub(acc, s.Number(a))
	}
	return s.AllocNumber(acc)
}

func divide(s *value.Store, args []value.ID) value.ID {
	if len(args) < 2 {
		return s.AllocError(arityError("at least 2", len(args)), nil)
	}
	for _, a := range args {
		if s.Kind(a) != value.KindNumber {
			return s.AllocError(wrongKind("number", s.Kind(a)), nil)
		}
	}
	acc := s.Number(args[0])
	for _, a := range args[1:] {
		result, err := number.Div(acc, s.Number(a))
		if err != nil {
			return s.AllocError(err.Error(), nil)
		}
		acc = result
	}
	return s.AllocNumber(acc)
}

func power(s *value.Store, args []value.ID) value.ID {
	if len(args) != 2 {
		return s.AllocError(arityError("2", len(args)), nil)
	}
	if s.Kind(args[0]) != value.KindNumber || s.Kind(args[1]) != value.KindNumber {
		return s.AllocError("** requires number arguments", nil)
	}
	result, err := number.Pow(s.Number(args[0]), s.Number(args[1]))
	if err != nil {
		return s.AllocError(err.Error(), nil)
	}
	return s.AllocNumber(result)
}

func head(s *value.Store, args []value.ID) value.ID {
	if len(args) != 1 {
		return s.AllocError(arityError("1", len(args)), nil)
	}
	if s.Kind(args[0]) != value.KindList {
		return s.AllocError(wrongKind("list", s.Kind(args[0])), nil)
	}
	cell := s.ListCell(args[0])
	if cell.Empty {
		return s.AllocError("head of an empty list", nil)
	}
	return cell.Data
}

func tail(s *value.Store, args []value.ID) value.ID {
	if len(args) != 1 {
		return s.AllocError(arityError("1", len(args)), nil)
	}
	if s.Kind(args[0]) != value.KindList {
		return s.AllocError(wrongKind("list", s.Kind(args[0])), nil)
	}
	cell := s.ListCell(args[0])
	if cell.Empty {
		return s.AllocError("tail of an empty list", nil)
	}
	return cell.Next
}

func length(s *value.Store, args []value.ID) value.ID {
	if len(args) != 1 {
		return s.AllocError(arityError("1", len(args)), nil)
	}
	switch s.Kind(args[0]) {
	case value.KindList:
		elements, ok := s.ListToSlice(args[0])
		if !ok {
			return s.AllocError("len requires a proper list", nil)
		}
		return s.AllocNumber(number.Int(int64(len(elements))))
	case value.KindString:
		return s.AllocNumber(number.Int(int64(utf8.RuneCountInString(s.String(args[0])))))
	default:
		return s.AllocError(wrongKind("list or string", s.Kind(args[0])), nil)
	}
}

func nth(s *value.Store, args []value.ID) value.ID {
	if len(args) != 2 {
		return s.AllocError(arityError("2", len(args)), nil)
	}
	if s.Kind(args[0]) != value.KindList {
		return s.AllocError(wrongKind("list", s.Kind(args[0])), nil)
	}
	if s.Kind(args[1]) != value.KindNumber || s.Number(args[1]).Kind != number.NumInteger {
		return s.AllocError("nth's index must be an integer", nil)
	}
	idx := s.Number(args[1]).Int
	elements, ok := s.ListToSlice(args[0])
	if !ok {
		return s.AllocError("nth requires a proper list", nil)
	}
	if idx < 0 || idx >= int64(len(elements)) {
		return s.AllocError("index out of range", nil)
	}
	return elements[idx]
}

// insert implements spec.md §6.3's `insert`: `(insert list index value)`
// returns a new list with value inserted before the element currently at
// index (an index equal to the list's length appends).
func insert(s *value.Store, args []value.ID) value.ID {
	if len(args) != 3 {
		return s.AllocError(arityError("3", len(args)), nil)
	}
	if s.Kind(args[0]) != value.KindList {
		return s.AllocError(wrongKind("list", s.Kind(args[0])), nil)
	}
	if s.Kind(args[1]) != value.KindNumber || s.Number(args[1]).Kind != number.NumInteger {
		return s.AllocError("insert's index must be an integer", nil)
	}
	idx := s.Number(args[1]).Int
	elements, ok := s.ListToSlice(args[0])
	if !ok {
		return s.AllocError("insert requires a proper list", nil)
	}
	if idx < 0 || idx > int64(len(elements)) {
		return s.AllocError("index out of range", nil)
	}
	out := make([]value.ID, 0, len(elements)+1)
	out = append(out, elements[:idx]...)
	out = append(out, args[2])
	out = append(out, elements[idx:]...)
	return s.ListFromSlice(out)
}

func boolFold(identity bool, op func(a, b bool) bool) value.NativeFunc {
	return func(s *value.Store, args []value.ID) value.ID {
		if len(args) == 0 {
			return s.AllocError(arityError("at least 1", 0), nil)
		}
		acc := identity
		first := true
		for _, a := range args {
			if s.Kind(a) != value.KindBoolean {
				return s.AllocError(wrongKind("boolean", s.Kind(a)), nil)
			}
			b := s.BoolValue(a)
			if first {
				acc = b
				first = false
				continue
			}
			acc = op(acc, b)
		}
		return s.Bool(acc)
	}
}

func not(s *value.Store, args []value.ID) value.ID {
	if len(args) != 1 {
		return s.AllocError(arityError("1", len(args)), nil)
	}
	if s.Kind(args[0]) != value.KindBoolean {
		return s.AllocError(wrongKind("boolean", s.Kind(args[0])), nil)
	}
	return s.Bool(!s.BoolValue(args[0]))
}

// compareChain implements spec.md §6.3's chained relational operators:
// all of `(< a b c)` must hold pairwise in sequence, matching the
// original's multi-argument relational contract.
func compareChain(ok func(cmp int) bool) value.NativeFunc {
	return func(s *value.Store, args []value.ID) value.ID {
		if len(args) < 2 {
			return s.AllocError(arityError("at least 2", len(args)), nil)
		}
		for i := 0; i < len(args)-1; i++ {
			if s.Kind(args[i]) != value.KindNumber || s.Kind(args[i+1]) != value.KindNumber {
				return s.AllocError("comparison requires number arguments", nil)
			}
			cmp, err := number.Compare(s.Number(args[i]), s.Number(args[i+1]))
			if err != nil {
				return s.AllocError(err.Error(), nil)
			}
			if !ok(cmp) {
				return s.False()
			}
		}
		return s.True()
	}
}

func equalChain(s *value.Store, args []value.ID) value.ID {
	if len(args) < 2 {
		return s.AllocError(arityError("at least 2", len(args)), nil)
	}
	for i := 0; i < len(args)-1; i++ {
		if s.Kind(args[i]) != value.KindNumber || s.Kind(args[i+1]) != value.KindNumber {
			return s.AllocError("= requires number arguments", nil)
		}
		if !number.Equal(s.Number(args[i]), s.Number(args[i+1])) {
			return s.False()
		}
	}
	return s.True()
}

func notEqualChain(s *value.Store, args []value.ID) value.ID {
	result := equalChain(s, args)
	if s.Kind(result) == value.KindError {
		return result
	}
	return s.Bool(!s.BoolValue(result))
}

// eqBuiltin implements spec.md §6.3's `eq`: deep structural equality,
// across kinds always false.
func eqBuiltin(s *value.Store, args []value.ID) value.ID {
	if len(args) != 2 {
		return s.AllocError(arityError("2", len(args)), nil)
	}
	return s.Bool(deepEqual(s, args[0], args[1]))
}

func deepEqual(s *value.Store, a, b value.ID) bool {
	if s.Kind(a) != s.Kind(b) {
		return false
	}
	switch s.Kind(a) {
	case value.KindNumber:
		return number.Equal(s.Number(a), s.Number(b))
	case value.KindSymbol:
		return s.Symbol(a) == s.Symbol(b)
	case value.KindString:
		return s.String(a) == s.String(b)
	case value.KindBoolean:
		return s.BoolValue(a) == s.BoolValue(b)
	case value.KindList:
		ea, oka := s.ListToSlice(a)
		eb, okb := s.ListToSlice(b)
		if !oka || !okb || len(ea) != len(eb) {
			return false
		}
		for i := range ea {
			if !deepEqual(s, ea[i], eb[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func printBuiltin(newline bool) value.NativeFunc {
	return func(s *value.Store, args []value.ID) value.ID {
		if len(args) == 0 {
			return s.AllocError(arityError("at least 1", 0), nil)
		}
		for i, a := range args {
			if i > 0 {
				writeOut(" ")
			}
			writeOut(s.Inspect(a))
		}
		if newline {
			writeOut("\n")
		}
		return args[len(args)-1]
	}
}

// includeBuiltin implements spec.md §6.3's `include`: loads the source
// file named by a symbol argument, lexes and parses it, and evaluates
// every top-level form in the caller's environment, returning the last
// form's result (or the empty list for an empty file).
func includeBuiltin(eval EvalFunc, load SourceLoader) value.NativeFunc {
	return func(s *value.Store, args []value.ID) value.ID {
		if len(args) != 1 {
			return s.AllocError(arityError("1", len(args)), nil)
		}
		if s.Kind(args[0]) != value.KindSymbol {
			return s.AllocError(wrongKind("symbol", s.Kind(args[0])), nil)
		}
		name := s.Symbol(args[0])
		src, err := load(name)
		if err != nil {
			return s.AllocError(fmt.Sprintf("cannot include %q: %s", name, err.Error()), nil)
		}
		p := parser.New(lexer.New(src))
		forms := p.ParseProgram()
		for _, f := range forms {
			if errs := parsetree.CollectErrors(f); len(errs) > 0 {
				return s.AllocError(fmt.Sprintf("%q: %s", name, errs[0].Message), nil)
			}
		}
		result := s.EmptyList()
		for _, f := range forms {
			result = eval(f)
			if s.Kind(result) == value.KindError {
				return result
			}
		}
		return result
	}
}

func predicate(kind value.Kind) value.NativeFunc {
	return func(s *value.Store, args []value.ID) value.ID {
		if len(args) != 1 {
			return s.AllocError(arityError("1", len(args)), nil)
		}
		return s.Bool(s.Kind(args[0]) == kind)
	}
}

func uniqueBuiltin(s *value.Store, args []value.ID) value.ID {
	if len(args) != 0 {
		return s.AllocError(arityError("0", len(args)), nil)
	}
	return s.Gensym()
}

// toReal and toInt are the SPEC_FULL.md §10 coercion builtins the core
// spec's `real`/`int` tower leaves implicit but the original's numeric
// library exposes explicitly.
func toReal(s *value.Store, args []value.ID) value.ID {
	if len(args) != 1 {
		return s.AllocError(arityError("1", len(args)), nil)
	}
	if s.Kind(args[0]) != value.KindNumber {
		return s.AllocError(wrongKind("number", s.Kind(args[0])), nil)
	}
	n := s.Number(args[0])
	switch n.Kind {
	case number.NumInteger:
		return s.AllocNumber(number.Real(float64(n.Int)))
	case number.NumRatio:
		return s.AllocNumber(number.Real(float64(n.Num) / float64(n.Den)))
	case number.NumReal:
		return args[0]
	default:
		return s.AllocError("real does not accept a complex number", nil)
	}
}

func toInt(s *value.Store, args []value.ID) value.ID {
	if len(args) != 1 {
		return s.AllocError(arityError("1", len(args)), nil)
	}
	if s.Kind(args[0]) != value.KindNumber {
		return s.AllocError(wrongKind("number", s.Kind(args[0])), nil)
	}
	n := s.Number(args[0])
	switch n.Kind {
	case number.NumInteger:
		return args[0]
	case number.NumRatio:
		return s.AllocNumber(number.Int(n.Num / n.Den))
	case number.NumReal:
		return s.AllocNumber(number.Int(int64(n.Real)))
	default:
		return s.AllocError("int does not accept a complex number", nil)
	}
}
