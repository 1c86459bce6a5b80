package parser

import (
	"fmt"

	"github.com/casibbald/SuperPascal/internal/lexer"
)

// Error codes for programmatic handling; message text is what a human
// reads, Code is what a caller can switch on.
const (
	ErrInvalidSyntax = "E_INVALID_SYNTAX"
	ErrUnexpectedEOF = "E_UNEXPECTED_EOF"
)

// ParserError is the single error type the frontend returns. It always
// carries the span of the offending construct. The taxonomy is two kinds
// per §4.5/§7: InvalidSyntax for mismatched tokens (including unmatched
// conditionals, include-not-found, and circular-include, which are all
// reported with descriptive messages under this kind) and UnexpectedEOF
// for premature end of input.
type ParserError struct {
	Code    string
	Message string
	Span    lexer.Span
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Span.Line, e.Span.Column)
}

func invalidSyntax(span lexer.Span, format string, args ...interface{}) *ParserError {
	return &ParserError{Code: ErrInvalidSyntax, Message: fmt.Sprintf(format, args...), Span: span}
}

func unexpectedEOF(span lexer.Span, expected string) *ParserError {
	return &ParserError{Code: ErrUnexpectedEOF, Message: fmt.Sprintf("Expected %s before end of input", expected), Span: span}
}
