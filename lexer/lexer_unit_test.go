// ----------------------------------------------------------------------------
// FILE: lexer/lexer_unit_test.go
// ----------------------------------------------------------------------------
package lexer

import (
	"testing"

	"github.com/vyion-lang/vyion/token"
)

func TestNextToken_Punctuation(t *testing.T) {
	input := "( ) [ ] { } : ' $ $@"
	want := []token.Kind{
		token.OpenParen, token.CloseParen,
		token.OpenBracket, token.CloseBracket,
		token.OpenCurly, token.CloseCurly,
		token.Colon, token.QuoteMark,
		token.Dollar, token.DollarAt,
		token.EOF,
	}

	l := New(input)
	for i, k := range want {
		tok := l.NextToken()
		if tok.Kind != k {
			t.Fatalf("token %d: got %s, want %s", i, tok.Kind, k)
		}
	}
}

func TestNextToken_DollarAtBeforeDollar(t *testing.T) {
	l := New("$@x")
	tok := l.NextToken()
	if tok.Kind != token.DollarAt || tok.Literal != "$@" {
		t.Fatalf("expected DOLLAR_AT, got %+v", tok)
	}
}

func TestNextToken_IdentifierAndNumber(t *testing.T) {
	l := New("foo 42 -3.5 +bar")

	tok := l.NextToken()
	if tok.Kind != token.Identifier || tok.Literal != "foo" {
		t.Fatalf("got %+v", tok)
	}
	tok = l.NextToken()
	if tok.Kind != token.NumberLit || tok.Literal != "42" {
		t.Fatalf("got %+v", tok)
	}
	tok = l.NextToken()
	if tok.Kind != token.NumberLit || tok.Literal != "-3.5" {
		t.Fatalf("got %+v", tok)
	}
	tok = l.NextToken()
	if tok.Kind != token.Identifier || tok.Literal != "+bar" {
		t.Fatalf("expected +bar to be an identifier, got %+v", tok)
	}
}

func TestNextToken_StringLiteral(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Kind != token.StringLit || tok.Literal != "hello world" {
		t.Fatalf("got %+v", tok)
	}
}

func TestNextToken_StringEscapedQuoteDoesNotClose(t *testing.T) {
	l := New(`"a\"b" rest`)
	tok := l.NextToken()
	if tok.Kind != token.StringLit {
		t.Fatalf("got %+v", tok)
	}
	if tok.Literal != `a\"b` {
		t.Fatalf("literal = %q, want %q", tok.Literal, `a\"b`)
	}
	tok = l.NextToken()
	if tok.Kind != token.Identifier || tok.Literal != "rest" {
		t.Fatalf("expected trailing identifier, got %+v", tok)
	}
}

func TestNextToken_UnterminatedStringIsFatal(t *testing.T) {
	l := New(`"never closes`)
	tok := l.NextToken()
	if tok.Kind != token.Illegal {
		t.Fatalf("expected Illegal, got %+v", tok)
	}
}

func TestNextToken_LineComment(t *testing.T) {
	l := New("foo ; this is ignored\nbar")
	tok := l.NextToken()
	if tok.Literal != "foo" {
		t.Fatalf("got %+v", tok)
	}
	tok = l.NextToken()
	if tok.Literal != "bar" {
		t.Fatalf("got %+v", tok)
	}
}

func TestNextToken_NestedBlockComment(t *testing.T) {
	l := New("a |{ outer |{ inner }| still outer }| b")
	tok := l.NextToken()
	if tok.Literal != "a" {
		t.Fatalf("got %+v", tok)
	}
	tok = l.NextToken()
	if tok.Literal != "b" {
		t.Fatalf("got %+v", tok)
	}
}

func TestNextToken_UnterminatedBlockCommentIsFatal(t *testing.T) {
	l := New("|{ never closes")
	tok := l.NextToken()
	if tok.Kind != token.Illegal {
		t.Fatalf("expected Illegal, got %+v", tok)
	}
}

func TestNextToken_ReaderDiscard(t *testing.T) {
	l := New("#ignored-thing kept")
	tok := l.NextToken()
	if tok.Kind != token.Identifier || tok.Literal != "kept" {
		t.Fatalf("got %+v", tok)
	}
}

func TestNextToken_PipeIsOrdinaryIdentifier(t *testing.T) {
	l := New("|")
	tok := l.NextToken()
	if tok.Kind != token.Identifier || tok.Literal != "|" {
		t.Fatalf("expected '|' to lex as an identifier, got %+v", tok)
	}
}

func TestNextToken_TabAdvancesIndentNotColumn(t *testing.T) {
	l := New("\tfoo")
	tok := l.NextToken()
	if tok.Pos.Column != 0 {
		t.Errorf("expected column 0 after a leading tab, got %d", tok.Pos.Column)
	}
	if tok.Pos.Indent != 1 {
		t.Errorf("expected indent 1, got %d", tok.Pos.Indent)
	}
}

func TestNextToken_LineAndColumnZeroIndexed(t *testing.T) {
	l := New("a\nb")
	first := l.NextToken()
	if first.Pos.Line != 0 || first.Pos.Column != 0 {
		t.Fatalf("got %+v", first.Pos)
	}
	second := l.NextToken()
	if second.Pos.Line != 1 || second.Pos.Column != 0 {
		t.Fatalf("got %+v", second.Pos)
	}
}
