// ----------------------------------------------------------------------------
// FILE: callable/callable.go
// ----------------------------------------------------------------------------
// PACKAGE: callable
// PURPOSE: Argument descriptor parsing and binding (spec.md §3.7, §4.6).
//          Splits the pure, evaluation-free parts of formal-list handling
//          (structure, reordering, call-site binding) out of the
//          evaluator, which still owns evaluating default-value and
//          actual-argument expressions.
// ----------------------------------------------------------------------------

package callable

import (
	"fmt"

	"github.com/vyion-lang/vyion/parsetree"
	"github.com/vyion-lang/vyion/value"
)

// RawKind is the formal-list marker a formal was parsed under, before its
// default (if any) has been evaluated.
type RawKind int

const (
	RawPositional RawKind = iota
	RawOptional
	RawNamed
	RawNamedOptional
	RawRest
)

// RawArg is one formal read from a `lambda`/`mambda` formal list, with its
// default expression still unevaluated.
type RawArg struct {
	Kind        RawKind
	Name        string
	DefaultExpr parsetree.Node
}

// ParseFormals reads a formal list (spec.md §4.6.1):
//   - identifier                 -> positional required
//   - ? (name default-expr)      -> optional with default
//   - ~ (name)                   -> named required
//   - ~? (name default-expr)     -> named optional
//   - & (name)                   -> rest (must be last)
func ParseFormals(forms []parsetree.Node) ([]RawArg, error) {
	var args []RawArg
	i := 0
	for i < len(forms) {
		for j := range args {
			if args[j].Kind == RawRest {
				return nil, fmt.Errorf("rest argument must be last")
			}
		}
		switch node := forms[i].(type) {
		case *parsetree.Identifier:
			switch node.Name {
			case "?":
				arg, consumed, err := parseMarkedArg(forms, i, RawOptional, true)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				i += consumed
			case "~":
				arg, consumed, err := parseMarkedArg(forms, i, RawNamed, false)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				i += consumed
			case "~?":
				arg, consumed, err := parseMarkedArg(forms, i, RawNamedOptional, true)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				i += consumed
			case "&":
				arg, consumed, err := parseMarkedArg(forms, i, RawRest, false)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				i += consumed
			default:
				args = append(args, RawArg{Kind: RawPositional, Name: node.Name})
				i++
			}
		default:
			return nil, fmt.Errorf("formal list entries must be identifiers or marker forms")
		}
	}
	if err := validateOrder(args); err != nil {
		return nil, err
	}
	return args, nil
}

// parseMarkedArg reads the `(name [default-expr])` group following a
// marker identifier at forms[i].
func parseMarkedArg(forms []parsetree.Node, i int, kind RawKind, wantsDefault bool) (RawArg, int, error) {
	if i+1 >= len(forms) {
		return RawArg{}, 0, fmt.Errorf("expected a (name ...) group after marker")
	}
	group, ok := forms[i+1].(*parsetree.List)
	if !ok || len(group.Elements) == 0 {
		return RawArg{}, 0, fmt.Errorf("expected a (name ...) group after marker")
	}
	nameNode, ok := group.Elements[0].(*parsetree.Identifier)
	if !ok {
		return RawArg{}, 0, fmt.Errorf("argument name must be an identifier")
	}
	arg := RawArg{Kind: kind, Name: nameNode.Name}
	if wantsDefault {
		if len(group.Elements) < 2 {
			return RawArg{}, 0, fmt.Errorf("argument %q requires a default expression", nameNode.Name)
		}
		arg.DefaultExpr = group.Elements[1]
	}
	return arg, 2, nil
}

func validateOrder(args []RawArg) error {
	sawOptional := false
	for i, a := range args {
		switch a.Kind {
		case RawPositional, RawNamed:
			if sawOptional {
				return fmt.Errorf("required argument %q follows an optional argument", a.Name)
			}
		case RawOptional, RawNamedOptional:
			sawOptional = true
		case RawRest:
			if i != len(args)-1 {
				return fmt.Errorf("rest argument must be last")
			}
		}
	}
	return nil
}

// Reorder arranges evaluated descriptors into the required band then the
// optional band, named sorted ahead of positional peers within each band,
// with any rest descriptor last (spec.md §3.7, §4.6.1).
func Reorder(descs []value.ArgDescriptor) []value.ArgDescriptor {
	var requiredNamed, requiredPositional, optionalNamed, optionalPositional []value.ArgDescriptor
	var rest []value.ArgDescriptor

	for _, d := range descs {
		switch d.Kind {
		case value.ArgNamed:
			requiredNamed = append(requiredNamed, d)
		case value.ArgPositional:
			requiredPositional = append(requiredPositional, d)
		case value.ArgNamedOptional:
			optionalNamed = append(optionalNamed, d)
		case value.ArgOptional:
			optionalPositional = append(optionalPositional, d)
		case value.ArgRest:
			rest = append(rest, d)
		}
	}

	out := make([]value.ArgDescriptor, 0, len(descs))
	out = append(out, requiredNamed...)
	out = append(out, requiredPositional...)
	out = append(out, optionalNamed...)
	out = append(out, optionalPositional...)
	out = append(out, rest...)
	return out
}

// Actual is one call-site actual, in original left-to-right order. Name
// is empty for a plain positional actual and set for a `~ (name value)`
// actual.
type Actual struct {
	Name string
	ID   value.ID
}

// Binding is one resolved formal-name -> value-id pair ready to be
// defined in the callee's new local scope.
type Binding struct {
	Name string
	ID   value.ID
}

// Bind implements spec.md §4.6.2: positional actuals fill positional and
// unnamed-optional slots left to right; named actuals are matched by
// name against `~`/`~?` formals; unfilled optionals take their stored
// default; a trailing rest formal collects whatever positional actuals
// remain. A named actual whose name matches no `~`/`~?` formal is not
// rejected: it keeps its call-site slot and folds back into the
// positional stream (original's ProcessArgumentList only reorders named
// actuals against formals declared IsNamedArg(); everything else stays
// positional).
func Bind(s *value.Store, descs []value.ArgDescriptor, actuals []Actual) ([]Binding, error) {
	declaredNamed := make(map[string]bool)
	for _, d := range descs {
		if d.Kind == value.ArgNamed || d.Kind == value.ArgNamedOptional {
			declaredNamed[d.Name] = true
		}
	}

	namedByName := make(map[string]value.ID)
	var positionals []value.ID
	for _, a := range actuals {
		if a.Name != "" && declaredNamed[a.Name] {
			namedByName[a.Name] = a.ID
			continue
		}
		positionals = append(positionals, a.ID)
	}
	usedNames := make(map[string]bool, len(namedByName))

	var bindings []Binding
	pos := 0

	for _, d := range descs {
		switch d.Kind {
		case value.ArgPositional:
			if pos >= len(positionals) {
				return nil, fmt.Errorf("Unsatisfied arguments")
			}
			bindings = append(bindings, Binding{Name: d.Name, ID: positionals[pos]})
			pos++
		case value.ArgNamed:
			id, ok := namedByName[d.Name]
			if !ok {
				return nil, fmt.Errorf("Unsatisfied arguments")
			}
			usedNames[d.Name] = true
			bindings = append(bindings, Binding{Name: d.Name, ID: id})
		case value.ArgOptional:
			if pos < len(positionals) {
				bindings = append(bindings, Binding{Name: d.Name, ID: positionals[pos]})
				pos++
			} else {
				bindings = append(bindings, Binding{Name: d.Name, ID: d.Default})
			}
		case value.ArgNamedOptional:
			if id, ok := namedByName[d.Name]; ok {
				usedNames[d.Name] = true
				bindings = append(bindings, Binding{Name: d.Name, ID: id})
			} else {
				bindings = append(bindings, Binding{Name: d.Name, ID: d.Default})
			}
		case value.ArgRest:
			rest := append([]value.ID(nil), positionals[pos:]...)
			pos = len(positionals)
			bindings = append(bindings, Binding{Name: d.Name, ID: s.ListFromSlice(rest)})
		}
	}

	if pos < len(positionals) {
		return nil, fmt.Errorf("Too many arguments")
	}
	for name := range namedByName {
		if !usedNames[name] {
			return nil, fmt.Errorf("Too many arguments")
		}
	}
	return bindings, nil
}
