package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var emitIRCmd = &cobra.Command{
	Use:   "emit-ir <file>",
	Short: "Lower a source file to IR (not part of this frontend)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		filename := args[0]
		if _, err := runFrontend(filename); err != nil {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "IR generation is handled by a downstream stage not implemented by this frontend.")
		os.Exit(1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(emitIRCmd)
}
