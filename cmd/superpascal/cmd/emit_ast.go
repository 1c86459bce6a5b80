package cmd

import (
	"fmt"
	"os"

	"github.com/casibbald/SuperPascal/internal/astdump"
	"github.com/spf13/cobra"
)

var emitASTCmd = &cobra.Command{
	Use:   "emit-ast <file>",
	Short: "Parse a source file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		filename := args[0]
		root, err := runFrontend(filename)
		if err != nil {
			os.Exit(1)
		}
		fmt.Print(astdump.Dump(root))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(emitASTCmd)
}
