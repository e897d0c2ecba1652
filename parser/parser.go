// ----------------------------------------------------------------------------
// FILE: parser/parser.go
// ----------------------------------------------------------------------------
// PACKAGE: parser
// PURPOSE: A recursive-descent parser over the lexer's token stream,
//          producing parse trees (spec.md §4.3). There is no Pratt
//          precedence climbing here — Vyion has no infix operators outside
//          the uninterpreted `{}` curly-infix sugar, which the parser
//          desugars without attempting to understand it. Error recovery
//          embeds *parsetree.Error nodes in the tree rather than failing
//          fast, in the teacher's curToken/peekToken two-token-lookahead
//          style.
// ----------------------------------------------------------------------------

package parser

import (
	"fmt"

	"github.com/vyion-lang/vyion/lexer"
	"github.com/vyion-lang/vyion/numlex"
	"github.com/vyion-lang/vyion/parsetree"
	"github.com/vyion-lang/vyion/token"
)

// Parser turns a lexer's token stream into a sequence of top-level parse
// trees.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token
}

// New initializes a Parser over l, priming the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// ParseProgram parses every top-level expression up to EOF.
func (p *Parser) ParseProgram() []parsetree.Node {
	var forms []parsetree.Node
	for p.curToken.Kind != token.EOF {
		forms = append(forms, p.parseExpr())
	}
	return forms
}

// parseExpr parses one expression, then applies the `obj:ref` lookahead
// (spec.md §4.3): if a colon follows, the parsed expression becomes the
// left operand of a Reference and parsing recurses for the right operand.
func (p *Parser) parseExpr() parsetree.Node {
	left := p.parseCompound()
	if p.curToken.Kind == token.Colon {
		pos := p.curToken.Pos
		p.nextToken()
		if p.atExprBoundary() {
			return &parsetree.Error{Pos: pos, Message: "reference operator ':' must be followed by an expression"}
		}
		right := p.parseExpr()
		return &parsetree.Reference{Pos: left.Position(), Object: left, Member: right}
	}
	return left
}

// atExprBoundary reports whether the current token cannot start an
// expression (used to detect a trailing ':').
func (p *Parser) atExprBoundary() bool {
	switch p.curToken.Kind {
	case token.EOF, token.CloseParen, token.CloseBracket, token.CloseCurly, token.Colon:
		return true
	default:
		return false
	}
}

// parseCompound dispatches on the current token without considering a
// trailing ':'.
func (p *Parser) parseCompound() parsetree.Node {
	switch p.curToken.Kind {
	case token.Identifier:
		return p.parseIdentifier()
	case token.NumberLit:
		return p.parseNumber()
	case token.StringLit:
		return p.parseString()
	case token.OpenParen:
		return p.parseDelimited(token.CloseParen, "(", ")", func(pos token.Position, elems []parsetree.Node) parsetree.Node {
			return &parsetree.List{Pos: pos, Elements: elems}
		})
	case token.OpenBracket:
		return p.parseDelimited(token.CloseBracket, "[", "]", func(pos token.Position, elems []parsetree.Node) parsetree.Node {
			return wrapHeadNested(pos, parsetree.HeadQuoteSubstitutions, elems)
		})
	case token.OpenCurly:
		return p.parseDelimited(token.CloseCurly, "{", "}", func(pos token.Position, elems []parsetree.Node) parsetree.Node {
			return wrapHeadNested(pos, parsetree.HeadInfix, elems)
		})
	case token.QuoteMark:
		return p.parsePrefixed(parsetree.HeadQuote)
	case token.Dollar:
		return p.parsePrefixed(parsetree.HeadSubstitution)
	case token.DollarAt:
		return p.parsePrefixed(parsetree.HeadSplicingSub)
	case token.Illegal:
		pos := p.curToken.Pos
		msg := p.curToken.Literal
		p.nextToken()
		return &parsetree.Error{Pos: pos, Message: msg}
	case token.CloseParen, token.CloseBracket, token.CloseCurly:
		pos := p.curToken.Pos
		msg := fmt.Sprintf("unexpected closing delimiter %q", p.curToken.Literal)
		p.nextToken()
		return &parsetree.Error{Pos: pos, Message: msg}
	case token.EOF:
		pos := p.curToken.Pos
		return &parsetree.Error{Pos: pos, Message: "unexpected end of input"}
	default:
		pos := p.curToken.Pos
		msg := fmt.Sprintf("unexpected token %q", p.curToken.Literal)
		p.nextToken()
		return &parsetree.Error{Pos: pos, Message: msg}
	}
}

func (p *Parser) parseIdentifier() parsetree.Node {
	n := &parsetree.Identifier{Pos: p.curToken.Pos, Name: p.curToken.Literal}
	p.nextToken()
	return n
}

func (p *Parser) parseNumber() parsetree.Node {
	pos := p.curToken.Pos
	raw := p.curToken.Literal
	val, err := numlex.Parse(raw)
	p.nextToken()
	if err != nil {
		return &parsetree.Error{Pos: pos, Message: err.Error()}
	}
	return &parsetree.NumberLiteral{Pos: pos, Raw: raw, Value: val}
}

func (p *Parser) parseString() parsetree.Node {
	n := &parsetree.StringLiteral{Pos: p.curToken.Pos, Value: p.curToken.Literal}
	p.nextToken()
	return n
}

// parseDelimited parses a sequence of expressions up to close, reporting
// an embedded error node (rather than failing) if the input ends first.
func (p *Parser) parseDelimited(close token.Kind, openLit, closeLit string, build func(token.Position, []parsetree.Node) parsetree.Node) parsetree.Node {
	pos := p.curToken.Pos
	p.nextToken() // consume opening delimiter

	var elems []parsetree.Node
	for p.curToken.Kind != close {
		if p.curToken.Kind == token.EOF {
			return &parsetree.Error{Pos: pos, Message: fmt.Sprintf("unclosed %q", openLit)}
		}
		elems = append(elems, p.parseExpr())
	}
	p.nextToken() // consume closing delimiter
	return build(pos, elems)
}

// parsePrefixed parses a single-character quoting prefix (`'`, `$`, `$@`)
// applied to the following expression, desugared into a reserved-head
// List (spec.md §4.3).
func (p *Parser) parsePrefixed(head string) parsetree.Node {
	pos := p.curToken.Pos
	p.nextToken()
	if p.atExprBoundary() {
		return &parsetree.Error{Pos: pos, Message: fmt.Sprintf("%q must be followed by an expression", head)}
	}
	inner := p.parseExpr()
	return wrapHead(pos, head, []parsetree.Node{inner})
}

func wrapHead(pos token.Position, head string, elems []parsetree.Node) *parsetree.List {
	elements := make([]parsetree.Node, 0, len(elems)+1)
	elements = append(elements, &parsetree.Identifier{Pos: pos, Name: head})
	elements = append(elements, elems...)
	return &parsetree.List{Pos: pos, Elements: elements}
}

// wrapHeadNested builds `(head (e1 e2 …))` — the bracketed/curly sugar
// wraps its element sequence as a single nested list argument, unlike the
// quote/substitution/splice prefixes which take their expression bare
// (spec.md §4.3 grammar).
func wrapHeadNested(pos token.Position, head string, elems []parsetree.Node) *parsetree.List {
	inner := &parsetree.List{Pos: pos, Elements: elems}
	return wrapHead(pos, head, []parsetree.Node{inner})
}
