// Command superpascal is the CLI entry point for the SuperPascal compiler
// frontend: lexer, preprocessor, and parser, exposed as subcommands.
package main

import (
	"os"

	"github.com/casibbald/SuperPascal/cmd/superpascal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
