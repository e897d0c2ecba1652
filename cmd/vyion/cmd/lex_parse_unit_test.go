// ----------------------------------------------------------------------------
// FILE: cmd/vyion/cmd/lex_parse_unit_test.go
// ----------------------------------------------------------------------------
// PURPOSE: sourceFor's shared -e/file resolution, and the lex/parse debug
//          subcommands' output shape.
// ----------------------------------------------------------------------------

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSourceForPrefersInlineEval(t *testing.T) {
	got, err := sourceFor("(+ 1 2)", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "(+ 1 2)" {
		t.Errorf("expected inline source, got %q", got)
	}
}

func TestSourceForReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.vyion")
	if err := os.WriteFile(path, []byte("(+ 1 2)"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := sourceFor("", []string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "(+ 1 2)" {
		t.Errorf("expected file contents, got %q", got)
	}
}

func TestSourceForRequiresInputSource(t *testing.T) {
	if _, err := sourceFor("", nil); err == nil {
		t.Error("expected an error when neither -e nor a file is given")
	}
}

func TestRunLexPrintsTokenStream(t *testing.T) {
	oldExpr := lexEvalExpr
	lexEvalExpr = "(+ 1 2)"
	defer func() { lexEvalExpr = oldExpr }()

	output := withCapturedStdout(t, func() {
		if err := runLex(lexCmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if !strings.Contains(output, "OPEN_PAREN") {
		t.Errorf("expected an OPEN_PAREN token in output, got:\n%s", output)
	}
	if !strings.Contains(output, "EOF") {
		t.Errorf("expected a terminating EOF token, got:\n%s", output)
	}
}

func TestRunParsePrintsTree(t *testing.T) {
	oldExpr := parseEvalExpr
	parseEvalExpr = "(+ 1 2)"
	defer func() { parseEvalExpr = oldExpr }()

	output := withCapturedStdout(t, func() {
		if err := runParse(parseCmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if !strings.Contains(output, "+") {
		t.Errorf("expected the parsed form in output, got:\n%s", output)
	}
}

func TestRunParseReportsErrors(t *testing.T) {
	oldExpr := parseEvalExpr
	parseEvalExpr = "(+ 1"
	defer func() { parseEvalExpr = oldExpr }()

	var err error
	withCapturedStdout(t, func() {
		err = runParse(parseCmd, nil)
	})

	if err == nil {
		t.Error("expected an error for unbalanced parens")
	}
}
