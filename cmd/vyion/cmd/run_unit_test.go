// ----------------------------------------------------------------------------
// FILE: cmd/vyion/cmd/run_unit_test.go
// ----------------------------------------------------------------------------
// PURPOSE: Batch-mode execution: successful evaluation prints to stdout,
//          a runtime error returns a non-zero-exit-worthy error, and
//          `include` resolves sibling `.vyion` files — grounded on the
//          pack's cmd/dwscript/cmd/run_unit_test.go approach of invoking
//          the RunE function directly with piped stdout/stderr.
// ----------------------------------------------------------------------------

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vyion-lang/vyion/config"
)

func withCapturedStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestRunBatchEvaluatesFileAndPrints(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.vyion")
	if err := os.WriteFile(path, []byte("(print-line (+ 1 2))"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldCfg := cfg
	cfg = config.Default()
	defer func() { cfg = oldCfg }()

	var runErr error
	output := withCapturedStdout(t, func() {
		runErr = runBatch(rootCmd, []string{path})
	})

	if runErr != nil {
		t.Fatalf("unexpected error: %v", runErr)
	}
	if !strings.Contains(output, "3") {
		t.Errorf("expected \"3\" in output, got %q", output)
	}
}

func TestRunBatchReturnsErrorOnRuntimeFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.vyion")
	if err := os.WriteFile(path, []byte("(+ undefined-name 1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldCfg := cfg
	cfg = config.Default()
	defer func() { cfg = oldCfg }()

	var runErr error
	withCapturedStdout(t, func() {
		runErr = runBatch(rootCmd, []string{path})
	})

	if runErr == nil {
		t.Fatal("expected a non-nil error for an undefined reference")
	}
}

func TestRunBatchReturnsErrorOnMissingFile(t *testing.T) {
	err := runBatch(rootCmd, []string{filepath.Join(t.TempDir(), "missing.vyion")})
	if err == nil {
		t.Fatal("expected a non-nil error for a missing file")
	}
}

func TestFileLoaderResolvesSiblingFile(t *testing.T) {
	dir := t.TempDir()
	siblingPath := filepath.Join(dir, "helpers.vyion")
	if err := os.WriteFile(siblingPath, []byte("(+ 1 1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := fileLoader(dir)
	src, err := loader("helpers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != "(+ 1 1)" {
		t.Errorf("expected the sibling file's contents, got %q", src)
	}

	if _, err := loader("nonexistent"); err == nil {
		t.Error("expected an error for a nonexistent sibling file")
	}
}
