package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:     "compile <file> [output]",
	Aliases: []string{"build"},
	Short:   "Run the frontend over a source file",
	Long: `Run the lexer, preprocessor, and parser over a SuperPascal source
file and report success or the first parse error.

IR generation and Z80 code emission are separate stages outside this
frontend; compile stops once a valid AST has been produced.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]
	root, err := runFrontend(filename)
	if err != nil {
		os.Exit(1)
	}

	output := filename
	if len(args) > 1 {
		output = args[1]
	}

	kind, name := "Program", ""
	if root.Program != nil {
		name = root.Program.Name
	} else if root.Unit != nil {
		kind, name = "Unit", root.Unit.Name
	}
	fmt.Printf("Parsed %s %q (%s) -> %s\n", kind, name, filename, output)
	fmt.Println("IR generation and Z80 code emission are not part of this frontend.")
	return nil
}
