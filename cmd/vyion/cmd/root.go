// ----------------------------------------------------------------------------
// FILE: cmd/vyion/cmd/root.go
// ----------------------------------------------------------------------------
// PACKAGE: cmd
// PURPOSE: The cobra command tree (spec.md §6.1), grounded on the pack's
//          cobra-based CLI shape (rootCmd + PersistentFlags, per-command
//          RunE, Execute()). No arguments runs the REPL; one or more
//          file arguments runs batch mode (cmd/vyion/cmd/run.go).
// ----------------------------------------------------------------------------

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vyion-lang/vyion/config"
	"github.com/vyion-lang/vyion/vlog"
)

var (
	verbose bool
	cfg     config.Config
	logger  = vlog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "vyion [file...]",
	Short: "The Vyion language interpreter",
	Long: `vyion is a tree-walking interpreter for the Vyion Lisp dialect.

With no arguments it starts an interactive REPL. Given one or more file
arguments, each is loaded and evaluated in order as a batch.`,
	Args: cobra.ArbitraryArgs,
	RunE: runRoot,
}

// Execute runs the root command, returning an error to main for exit-
// code handling (batch mode, run by the root command on file arguments,
// signals failure this way rather than calling os.Exit itself).
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable ANSI color in REPL output")
	rootCmd.PersistentFlags().String("config", "", "path to a .vyion.yaml config file (default: ./.vyion.yaml)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if verbose {
		logger.SetLevel(vlog.LevelDebug)
	}

	path, _ := rootCmd.PersistentFlags().GetString("config")
	if path == "" {
		if dir, err := os.Getwd(); err == nil {
			path = config.FindDotfile(dir)
		}
	}
	if path == "" {
		cfg = config.Default()
		return
	}

	loaded, err := config.Load(path)
	if err != nil {
		logger.Warnf("could not load config %s: %s", path, err)
		cfg = config.Default()
		return
	}
	cfg = loaded
}

// runRoot implements the no-subcommand invocation: no file arguments
// drops into the REPL, one or more starts batch mode (spec.md §6.1).
func runRoot(c *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runREPL(c, args)
	}
	return runBatch(c, args)
}
