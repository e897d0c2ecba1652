// ----------------------------------------------------------------------------
// FILE: main.go
// ----------------------------------------------------------------------------
// PURPOSE: Process entry point. Delegates entirely to the cobra command
//          tree in cmd/vyion/cmd; batch-mode failures surface as a
//          returned error here rather than an internal os.Exit, so this
//          is the single place that decides the process's exit status
//          (spec.md §6.1's tightened non-zero-on-error contract).
// ----------------------------------------------------------------------------

package main

import (
	"fmt"
	"os"

	"github.com/vyion-lang/vyion/cmd/vyion/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
