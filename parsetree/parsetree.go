// ----------------------------------------------------------------------------
// FILE: parsetree/parsetree.go
// ----------------------------------------------------------------------------
// PACKAGE: parsetree
// PURPOSE: Parse-tree node types (spec.md §3.3). Quoting, quasi-quotation
//          and curly-infix sugar are not separate node kinds: the parser
//          desugars them into ordinary Lists whose head is a reserved
//          identifier (quote, quote-substitutions, substitution,
//          splicing-substitution, infix), matching the reference grammar.
// ----------------------------------------------------------------------------

package parsetree

import (
	"strings"

	"github.com/vyion-lang/vyion/number"
	"github.com/vyion-lang/vyion/token"
)

// Reserved head identifiers produced by parser desugaring (spec.md §4.3).
const (
	HeadQuote              = "quote"
	HeadQuoteSubstitutions = "quote-substitutions"
	HeadSubstitution       = "substitution"
	HeadSplicingSub        = "splicing-substitution"
	HeadInfix              = "infix"
)

// Node is any parse-tree node. Every node carries the source position of
// its first token, for diagnostics.
type Node interface {
	Position() token.Position
	String() string
}

// Identifier names a binding.
type Identifier struct {
	Pos  token.Position
	Name string
}

func (n *Identifier) Position() token.Position { return n.Pos }
func (n *Identifier) String() string           { return n.Name }

// NumberLiteral holds a pre-parsed numeric value (spec.md §3.3, §4.2).
type NumberLiteral struct {
	Pos   token.Position
	Raw   string
	Value number.Number
}

func (n *NumberLiteral) Position() token.Position { return n.Pos }
func (n *NumberLiteral) String() string            { return n.Raw }

// StringLiteral holds literal text (spec.md §3.3; materialized as a
// runtime value per SPEC_FULL.md §5.2, unlike the reference).
type StringLiteral struct {
	Pos   token.Position
	Value string
}

func (n *StringLiteral) Position() token.Position { return n.Pos }
func (n *StringLiteral) String() string            { return `"` + n.Value + `"` }

// List is an ordered sequence of child nodes, e.g. a call or special form.
type List struct {
	Pos      token.Position
	Elements []Node
}

func (n *List) Position() token.Position { return n.Pos }
func (n *List) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Reference is the `obj:ref` binding form (spec.md §4.3).
type Reference struct {
	Pos    token.Position
	Object Node
	Member Node
}

func (n *Reference) Position() token.Position { return n.Pos }
func (n *Reference) String() string            { return n.Object.String() + ":" + n.Member.String() }

// Error is an embedded diagnostic node produced during error recovery
// (spec.md §4.3); its presence anywhere in the tree suppresses evaluation.
type Error struct {
	Pos     token.Position
	Message string
}

func (n *Error) Position() token.Position { return n.Pos }
func (n *Error) String() string            { return "<error: " + n.Message + ">" }

// IsSpecialHead reports whether name is one of the reserved heads the
// parser produces via desugaring.
func IsSpecialHead(name string) bool {
	switch name {
	case HeadQuote, HeadQuoteSubstitutions, HeadSubstitution, HeadSplicingSub, HeadInfix:
		return true
	default:
		return false
	}
}

// Walk visits node and every descendant, depth-first, calling visit on
// each. Used by the post-parse error-collection traversal (spec.md §4.3)
// and by quoted-eval.
func Walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	switch t := n.(type) {
	case *List:
		for _, e := range t.Elements {
			Walk(e, visit)
		}
	case *Reference:
		Walk(t.Object, visit)
		Walk(t.Member, visit)
	}
}

// CollectErrors walks tree and returns every embedded Error node found.
func CollectErrors(tree Node) []*Error {
	var errs []*Error
	Walk(tree, func(n Node) {
		if e, ok := n.(*Error); ok {
			errs = append(errs, e)
		}
	})
	return errs
}

// Head returns the leading identifier name of a list, and whether the
// list is non-empty and headed by an Identifier at all.
func Head(list *List) (string, bool) {
	if len(list.Elements) == 0 {
		return "", false
	}
	id, ok := list.Elements[0].(*Identifier)
	if !ok {
		return "", false
	}
	return id.Name, true
}
