package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse a source file and report success or the first error",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		filename := args[0]
		if _, err := runFrontend(filename); err != nil {
			os.Exit(1)
		}
		fmt.Printf("%s: OK\n", filename)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
