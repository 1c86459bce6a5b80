package cmd

import (
	"fmt"
	"os"

	"github.com/casibbald/SuperPascal/internal/ast"
	"github.com/casibbald/SuperPascal/internal/errors"
	"github.com/casibbald/SuperPascal/internal/parser"
)

// runFrontend reads filename, runs it through the lexer/parser/preprocessor
// pipeline, and returns the resulting AST. Any parser error is reported to
// stderr in the §7 error-taxonomy shape via internal/errors and a non-nil
// error is returned so the caller can translate it into exit code 1.
func runFrontend(filename string) (*ast.Root, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filename, err)
	}
	source := string(content)

	var opts []parser.Option
	if len(unitSearchPaths) > 0 {
		opts = append(opts, parser.WithSearchPaths(unitSearchPaths))
	}

	root, err := parser.Parse(source, filename, predefinedSymbols, opts...)
	if err != nil {
		reportParseError(err, source, filename)
		return nil, fmt.Errorf("parsing failed")
	}
	return root, nil
}

func reportParseError(err error, source, filename string) {
	if perr, ok := err.(*parser.ParserError); ok {
		ce := errors.NewCompilerError(perr.Span.Pos(), perr.Message, source, filename)
		fmt.Fprintln(os.Stderr, ce.Format(false))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
}
