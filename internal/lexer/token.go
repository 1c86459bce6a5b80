package lexer

import "fmt"

// Token is the unit produced by the Lexer: a kind tag, the literal source
// text it was scanned from, and the span it occupies. Kind-specific payload
// (integer value, hex flag, char byte) rides alongside Literal so that the
// parser never has to re-lex.
type Token struct {
	Type    TokenType
	Literal string
	Span    Span

	// IntValue and IsHex are populated for INT tokens.
	IntValue uint16
	IsHex    bool

	// CharValue is populated for CHAR tokens (#nn).
	CharValue byte
}

// Pos is a convenience accessor returning the Position at the token's span
// start, matching the shape error reporting expects.
func (t Token) Pos() Position { return t.Span.Pos() }

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Literal, t.Span.Line, t.Span.Column)
}
