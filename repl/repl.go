// ----------------------------------------------------------------------------
// FILE: repl/repl.go
// ----------------------------------------------------------------------------
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop (spec.md §6.2). Accepts input until
//          parentheses balance, lexes/parses/evaluates it against a
//          session-persistent Context, and prints the result. Structure
//          kept from the teacher's repl.go (scanner loop, dot-commands,
//          ANSI-colored Inspect-by-kind printing) and regrounded on
//          Vyion's own lexer/parser/eval/value stack in place of
//          Eloquence's object/evaluator packages.
// ----------------------------------------------------------------------------

package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vyion-lang/vyion/builtins"
	"github.com/vyion-lang/vyion/eval"
	"github.com/vyion-lang/vyion/lexer"
	"github.com/vyion-lang/vyion/parser"
	"github.com/vyion-lang/vyion/parsetree"
	"github.com/vyion-lang/vyion/render"
	"github.com/vyion-lang/vyion/token"
	"github.com/vyion-lang/vyion/value"
)

// Prompt is the REPL's line prompt (spec.md §6.2).
const Prompt = "V >> "

// ANSI color codes for result-by-kind printing.
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Gray   = "\033[37m"
	Bold   = "\033[1m"
)

// ExitCode is returned to the caller (cmd/vyion) once the loop ends, so
// main can os.Exit with the right status (spec.md §6.2: `exit`/`quit`
// terminate with status 1; EOF on stdin ends normally with 0).
type ExitCode int

const (
	ExitNormal ExitCode = 0
	ExitQuit   ExitCode = 1
)

// Session wires a persistent evaluation Context plus the color setting
// and the debug toggle the `.debug` dot-command flips.
type Session struct {
	ctx       *eval.Context
	out       io.Writer
	loader    builtins.SourceLoader
	debugMode bool
	color     bool
	prompt    string

	heapChunkSize int     // 0 means default (value.NewStore)
	heapGrowth    float64
}

// NewSession builds a Session with the built-ins installed and
// `include` resolved against loader, using the default prompt (spec.md
// §6.2) and default heap tunables. Use NewSessionWithPrompt or
// NewSessionWithConfig to honor a config.Config's overrides.
func NewSession(out io.Writer, color bool, loader builtins.SourceLoader) *Session {
	return NewSessionWithPrompt(out, color, Prompt, loader)
}

// NewSessionWithPrompt is NewSession with an explicit prompt string
// (SPEC_FULL.md §3.4's `.vyion.yaml` prompt override).
func NewSessionWithPrompt(out io.Writer, color bool, prompt string, loader builtins.SourceLoader) *Session {
	s := &Session{out: out, color: color, prompt: prompt, loader: loader}
	s.reset()
	return s
}

// NewSessionWithConfig is NewSessionWithPrompt plus the heap chunk
// size/growth factor a `.vyion.yaml` can tune (SPEC_FULL.md §3.4). A
// chunkSize of 0 keeps value.NewStore's defaults.
func NewSessionWithConfig(out io.Writer, color bool, prompt string, chunkSize int, growth float64, loader builtins.SourceLoader) *Session {
	s := &Session{out: out, color: color, prompt: prompt, loader: loader, heapChunkSize: chunkSize, heapGrowth: growth}
	s.reset()
	return s
}

func (s *Session) reset() {
	var ctx *eval.Context
	if s.heapChunkSize > 0 {
		ctx = eval.NewContextWithStore(value.NewStoreWithParams(s.heapChunkSize, s.heapGrowth))
	} else {
		ctx = eval.NewContext()
	}
	builtins.Install(ctx.Store, ctx.Env, ctx.Eval, s.loader)
	builtins.SetOutput(func(str string) { fmt.Fprint(s.out, str) })
	s.ctx = ctx
}

// Start runs the loop against in until EOF or `exit`/`quit`, returning
// the process exit code the caller should use.
func (s *Session) Start(in io.Reader) ExitCode {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(s.out, s.colorize(Cyan, "Vyion — type 'exit' or 'quit' to leave, '.help' for commands"))

	for {
		fmt.Fprint(s.out, s.colorize(Cyan, s.prompt))
		line, ok := s.readCompleteInput(scanner)
		if !ok {
			return ExitNormal
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit" || trimmed == "quit" {
			fmt.Fprintln(s.out, s.colorize(Yellow, "Goodbye!"))
			return ExitQuit
		}

		if strings.HasPrefix(trimmed, ".") {
			s.handleCommand(trimmed)
			continue
		}

		s.evalAndPrint(line)
	}
}

// readCompleteInput reads lines until parentheses balance (spec.md
// §6.2: brackets and braces are not counted), returning false at EOF.
func (s *Session) readCompleteInput(scanner *bufio.Scanner) (string, bool) {
	var sb strings.Builder
	depth := 0
	first := true
	for {
		if !first {
			fmt.Fprint(s.out, s.colorize(Gray, "... "))
		}
		first = false
		if !scanner.Scan() {
			return "", false
		}
		text := scanner.Text()
		depth += parenDelta(text)
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
		if depth <= 0 {
			return sb.String(), true
		}
	}
}

func parenDelta(s string) int {
	delta := 0
	for _, r := range s {
		switch r {
		case '(':
			delta++
		case ')':
			delta--
		}
	}
	return delta
}

func (s *Session) handleCommand(cmd string) {
	switch cmd {
	case ".help":
		s.printHelp()
	case ".debug":
		s.debugMode = !s.debugMode
		status := "disabled"
		if s.debugMode {
			status = "enabled"
		}
		fmt.Fprintln(s.out, s.colorize(Gray, "debug mode "+status))
	case ".clear":
		s.reset()
		fmt.Fprintln(s.out, s.colorize(Green, "environment reset"))
	default:
		fmt.Fprintln(s.out, s.colorize(Red, "unknown command: "+cmd))
	}
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, s.colorize(Gray, "Commands:"))
	fmt.Fprintln(s.out, "  .help    show this message")
	fmt.Fprintln(s.out, "  .debug   toggle token/AST dump before evaluation")
	fmt.Fprintln(s.out, "  .clear   reset the session environment")
	fmt.Fprintln(s.out, "  exit     leave the REPL (exit code 1)")
	fmt.Fprintln(s.out, "  quit     leave the REPL (exit code 1)")
}

func (s *Session) evalAndPrint(src string) {
	if s.debugMode {
		s.printTokens(src)
	}

	p := parser.New(lexer.New(src))
	forms := p.ParseProgram()

	var parseErrs []*parsetree.Error
	for _, f := range forms {
		parseErrs = append(parseErrs, parsetree.CollectErrors(f)...)
	}
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintln(s.out, s.colorize(Red+Bold, "parse error: "+e.Message))
		}
		return
	}

	if s.debugMode {
		s.printAST(forms)
	}

	var last value.ID
	for _, f := range forms {
		last = s.ctx.Eval(f)
	}
	s.printResult(last)
}

func (s *Session) printTokens(src string) {
	var lines []string
	l := lexer.New(src)
	for tok := l.NextToken(); tok.Kind != token.EOF; tok = l.NextToken() {
		lines = append(lines, fmt.Sprintf("%-15s %s", tok.Kind, tok.Literal))
	}
	fmt.Fprint(s.out, s.colorize(Gray, render.Box("TOKENS", lines)))
}

func (s *Session) printAST(forms []parsetree.Node) {
	lines := make([]string, len(forms))
	for i, f := range forms {
		lines[i] = f.String()
	}
	fmt.Fprint(s.out, s.colorize(Gray, render.Box("PARSE TREE", lines)))
}

func (s *Session) printResult(id value.ID) {
	store := s.ctx.Store
	text := store.Inspect(id)
	switch store.Kind(id) {
	case value.KindError:
		fmt.Fprintln(s.out, s.colorize(Red+Bold, text))
	case value.KindNumber:
		fmt.Fprintln(s.out, s.colorize(Yellow, text))
	case value.KindBoolean:
		color := Green
		if !store.BoolValue(id) {
			color = Red
		}
		fmt.Fprintln(s.out, s.colorize(color, text))
	case value.KindString:
		fmt.Fprintln(s.out, s.colorize(Green, text))
	case value.KindFunction, value.KindMacro:
		fmt.Fprintln(s.out, s.colorize(Purple, text))
	case value.KindList:
		fmt.Fprintln(s.out, s.colorize(Blue, text))
	default:
		fmt.Fprintln(s.out, text)
	}
}

func (s *Session) colorize(code, text string) string {
	if !s.color {
		return text
	}
	return code + text + Reset
}
