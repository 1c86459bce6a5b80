package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// predefinedSymbols and unitSearchPaths back the -D/-I flags shared by every
// subcommand that runs the frontend.
var (
	predefinedSymbols []string
	unitSearchPaths   []string
)

var rootCmd = &cobra.Command{
	Use:   "superpascal",
	Short: "SuperPascal compiler frontend",
	Long: `superpascal is the lexer/parser/preprocessor frontend for the
SuperPascal language: an Object-Pascal dialect targeting the Z80 with
16-bit integers, nested routines, classes, operator overloading,
generics, conditional compilation, and file inclusion.

This command drives the frontend only. Semantic analysis, IR
generation, and Z80 code emission are separate stages invoked through
the emit-ir/asm subcommands, which currently report their stage as not
yet wired in.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringArrayVarP(&predefinedSymbols, "define", "D", nil, "predefine a conditional-compilation symbol")
	rootCmd.PersistentFlags().StringArrayVarP(&unitSearchPaths, "include-path", "I", nil, "add a directory to the {$INCLUDE} search path")
}
