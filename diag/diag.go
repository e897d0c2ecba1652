// ----------------------------------------------------------------------------
// FILE: diag/diag.go
// ----------------------------------------------------------------------------
// PACKAGE: diag
// PURPOSE: Formats lex, parse and runtime diagnostics with a source excerpt
//          and a caret pointing at the offending column (spec.md §7),
//          grounded on the teacher pack's internal/errors errors.go
//          CompilerError.Format caret-pointer convention.
// ----------------------------------------------------------------------------

package diag

import (
	"fmt"
	"strings"

	"github.com/vyion-lang/vyion/token"
)

// Kind classifies a diagnostic per spec.md §7's taxonomy.
type Kind int

const (
	KindLex Kind = iota
	KindParse
	KindRuntime
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex error"
	case KindParse:
		return "parse error"
	case KindRuntime:
		return "runtime error"
	default:
		return "error"
	}
}

// Diagnostic is a single reportable problem, positioned against the
// original source text.
type Diagnostic struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New builds a Diagnostic.
func New(kind Kind, message, source, file string, pos token.Position) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, Source: source, File: file, Pos: pos}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic with a 1-indexed line/column header, the
// offending source line, and a caret under the column. If color is true,
// the caret and message are wrapped in ANSI escapes.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	line := d.Pos.Line + 1
	column := d.Pos.Column + 1

	if d.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", strings.Title(d.Kind.String()), d.File, line, column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", strings.Title(d.Kind.String()), line, column)
	}

	if src := d.sourceLine(line); src != "" {
		prefix := fmt.Sprintf("%4d | ", line)
		sb.WriteString(prefix)
		sb.WriteString(src)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(prefix)+column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (d *Diagnostic) sourceLine(line int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatAll formats a batch of diagnostics, separated by blank lines —
// used for the post-parse error traversal (spec.md §4.3).
func FormatAll(diags []*Diagnostic, color bool) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = d.Format(color)
	}
	return strings.Join(parts, "\n\n")
}
