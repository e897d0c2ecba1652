// ----------------------------------------------------------------------------
// FILE: cmd/vyion/cmd/repl.go
// ----------------------------------------------------------------------------
// PACKAGE: cmd
// PURPOSE: Explicit `vyion repl` subcommand and the shared REPL entry
//          point runRoot falls back to with no file arguments.
// ----------------------------------------------------------------------------

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vyion-lang/vyion/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive REPL",
	RunE:  runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(c *cobra.Command, _ []string) error {
	color := cfg.ColorOutput
	if flag := c.Root().PersistentFlags().Lookup("no-color"); flag != nil && flag.Changed {
		noColor, _ := c.Root().PersistentFlags().GetBool("no-color")
		color = !noColor
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	session := repl.NewSessionWithConfig(os.Stdout, color, cfg.Prompt, cfg.HeapChunkSize, float64(cfg.HeapGrowth), fileLoader(cwd))
	code := session.Start(os.Stdin)
	os.Exit(int(code))
	return nil
}
