// ----------------------------------------------------------------------------
// FILE: repl/repl_unit_test.go
// ----------------------------------------------------------------------------
// PURPOSE: Unit tests for the REPL loop: arithmetic round-trips, variable
//          persistence across lines, and the .debug/.clear dot-commands,
//          grounded on the teacher's repl_unit_test.go shape (feed a
//          multi-line script through Start, assert on the captured
//          output buffer).
// ----------------------------------------------------------------------------

package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vyion-lang/vyion/builtins"
)

func runSession(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	loader := builtins.SourceLoader(func(name string) (string, error) { return "", nil })
	s := NewSession(&out, false, loader)
	s.Start(strings.NewReader(input))
	return out.String()
}

func TestArithmeticRoundTrip(t *testing.T) {
	output := runSession(t, "(+ 10 20)\nexit")
	if !strings.Contains(output, "30") {
		t.Errorf("expected 30 in output, got:\n%s", output)
	}
}

func TestVariablePersistenceAcrossLines(t *testing.T) {
	input := "(global x 50)\n(+ x 10)\nexit"
	output := runSession(t, input)
	if !strings.Contains(output, "60") {
		t.Errorf("expected 60 in output, got:\n%s", output)
	}
}

func TestDebugAndClearCommands(t *testing.T) {
	input := ".debug\n(global x 10)\n.clear\nx\nexit"
	output := runSession(t, input)

	if !strings.Contains(output, "TOKENS") {
		t.Error("debug mode did not print a token dump")
	}
	if !strings.Contains(output, "PARSE TREE") {
		t.Error("debug mode did not print a parse-tree dump")
	}
	if !strings.Contains(output, "error") {
		t.Error(".clear did not drop the prior binding of x")
	}
}

func TestExitAndQuitReturnExitQuit(t *testing.T) {
	var out bytes.Buffer
	loader := builtins.SourceLoader(func(name string) (string, error) { return "", nil })
	s := NewSession(&out, false, loader)
	code := s.Start(strings.NewReader("quit"))
	if code != ExitQuit {
		t.Errorf("expected ExitQuit, got %v", code)
	}
}

func TestEOFReturnsExitNormal(t *testing.T) {
	var out bytes.Buffer
	loader := builtins.SourceLoader(func(name string) (string, error) { return "", nil })
	s := NewSession(&out, false, loader)
	code := s.Start(strings.NewReader("(+ 1 1)\n"))
	if code != ExitNormal {
		t.Errorf("expected ExitNormal, got %v", code)
	}
}

func TestNewSessionWithConfigUsesGivenPrompt(t *testing.T) {
	var out bytes.Buffer
	loader := builtins.SourceLoader(func(name string) (string, error) { return "", nil })
	s := NewSessionWithConfig(&out, false, "lisp> ", 0, 0, loader)
	s.Start(strings.NewReader("exit"))
	if !strings.Contains(out.String(), "lisp> ") {
		t.Errorf("expected custom prompt in output, got:\n%s", out.String())
	}
}
