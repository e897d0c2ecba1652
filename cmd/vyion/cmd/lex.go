// ----------------------------------------------------------------------------
// FILE: cmd/vyion/cmd/lex.go
// ----------------------------------------------------------------------------
// PACKAGE: cmd
// PURPOSE: `vyion lex [file]` — dumps the token stream for a file or an
//          inline expression, grounded on the pack's dwscript `lex`
//          debug subcommand shape.
// ----------------------------------------------------------------------------

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vyion-lang/vyion/lexer"
	"github.com/vyion-lang/vyion/token"
)

var lexEvalExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Vyion file or expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func runLex(_ *cobra.Command, args []string) error {
	input, err := sourceFor(lexEvalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	for tok := l.NextToken(); ; tok = l.NextToken() {
		fmt.Printf("%-12s %-20q %d:%d\n", tok.Kind, tok.Literal, tok.Pos.Line+1, tok.Pos.Column+1)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// sourceFor resolves -e/--eval or a single positional file argument into
// source text, the shared pattern lex/parse/run subcommands all need.
func sourceFor(inline string, args []string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("cannot read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("provide a file path or -e/--eval")
}
