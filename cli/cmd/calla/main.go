// Calla CLI - streaming tool-call assembly debugger.
package main

import (
	"os"

	"github.com/petal-labs/calla/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
