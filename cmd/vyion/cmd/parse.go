// ----------------------------------------------------------------------------
// FILE: cmd/vyion/cmd/parse.go
// ----------------------------------------------------------------------------
// PACKAGE: cmd
// PURPOSE: `vyion parse [file]` — dumps the parse tree for a file or an
//          inline expression, printing any embedded parse-error nodes
//          instead of evaluating (spec.md §4.3).
// ----------------------------------------------------------------------------

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vyion-lang/vyion/lexer"
	"github.com/vyion-lang/vyion/parser"
	"github.com/vyion-lang/vyion/parsetree"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Vyion file or expression and print its tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, err := sourceFor(parseEvalExpr, args)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(input))
	forms := p.ParseProgram()

	hadErrors := false
	for _, f := range forms {
		for _, e := range parsetree.CollectErrors(f) {
			hadErrors = true
			fmt.Printf("parse error at %d:%d: %s\n", e.Pos.Line+1, e.Pos.Column+1, e.Message)
		}
	}
	if hadErrors {
		return fmt.Errorf("parsing failed")
	}

	for _, f := range forms {
		fmt.Println(f.String())
	}
	return nil
}
