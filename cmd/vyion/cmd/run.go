// ----------------------------------------------------------------------------
// FILE: cmd/vyion/cmd/run.go
// ----------------------------------------------------------------------------
// PACKAGE: cmd
// PURPOSE: Batch mode (spec.md §6.1): each argument is a source file
//          path, loaded and evaluated in order. The reference exits 0
//          even on an unhandled error; SPEC_FULL.md §3.1
//          tightens this to a non-zero exit on the first unhandled
//          error, which this command implements.
// ----------------------------------------------------------------------------

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vyion-lang/vyion/builtins"
	"github.com/vyion-lang/vyion/eval"
	"github.com/vyion-lang/vyion/lexer"
	"github.com/vyion-lang/vyion/parser"
	"github.com/vyion-lang/vyion/parsetree"
	"github.com/vyion-lang/vyion/trace"
	"github.com/vyion-lang/vyion/value"
)

var traceFlag bool

func init() {
	rootCmd.Flags().BoolVar(&traceFlag, "trace", false, "emit a JSON evaluation trace to stderr")
}

// fileLoader resolves an `include`d symbol name to "<name>.vyion" next
// to the running script, the simplest search rule that satisfies
// spec.md §6.3 without inventing a module path system the spec never
// describes.
func fileLoader(baseDir string) builtins.SourceLoader {
	return func(name string) (string, error) {
		data, err := os.ReadFile(filepath.Join(baseDir, name+".vyion"))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func runBatch(cmd *cobra.Command, files []string) error {
	wantTrace := cfg.TraceEnabled
	if flag := cmd.Flags().Lookup("trace"); flag != nil && flag.Changed {
		wantTrace = traceFlag
	}
	var tr *trace.Trace
	if wantTrace {
		tr = trace.New()
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}

		var ctx *eval.Context
		if cfg.HeapChunkSize > 0 {
			ctx = eval.NewContextWithStore(value.NewStoreWithParams(cfg.HeapChunkSize, float64(cfg.HeapGrowth)))
		} else {
			ctx = eval.NewContext()
		}
		builtins.Install(ctx.Store, ctx.Env, ctx.Eval, fileLoader(filepath.Dir(path)))

		p := parser.New(lexer.New(string(data)))
		forms := p.ParseProgram()

		var parseErrs []*parsetree.Error
		for _, f := range forms {
			parseErrs = append(parseErrs, parsetree.CollectErrors(f)...)
		}
		if len(parseErrs) > 0 {
			for _, e := range parseErrs {
				fmt.Fprintf(os.Stderr, "%s: parse error: %s\n", path, e.Message)
			}
			return fmt.Errorf("%s: parsing failed with %d error(s)", path, len(parseErrs))
		}

		for _, f := range forms {
			start := time.Now()
			result := ctx.Eval(f)
			elapsed := time.Since(start)

			if tr != nil {
				tr.Record(trace.Entry{
					Form:       f.String(),
					HeapID:     uint64(result),
					Result:     ctx.Store.Inspect(result),
					IsError:    ctx.Store.Kind(result) == value.KindError,
					DurationUS: elapsed.Microseconds(),
				})
			}

			if ctx.Store.Kind(result) == value.KindError {
				fmt.Fprintf(os.Stderr, "%s: runtime error: %s\n", path, ctx.Store.Inspect(result))
				if tr != nil {
					fmt.Fprintln(os.Stderr, tr.JSON())
				}
				return fmt.Errorf("%s: execution failed", path)
			}
		}

		if tr != nil {
			fmt.Fprintln(os.Stderr, tr.JSON())
		}
	}
	return nil
}
