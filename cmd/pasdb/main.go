// Command pasdb is a thin CLI over pkg/pas: create an image, inspect one,
// or run the bump fixture demo.
package main

import (
	"fmt"
	"os"

	"github.com/marmos91/pasdb/cmd/pasdb/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
