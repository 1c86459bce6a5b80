package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks
}

func TestLexer_KeywordsAreCaseInsensitive(t *testing.T) {
	for _, src := range []string{"begin", "BEGIN", "Begin", "bEgIn"} {
		toks := lexAll(t, src)
		require.Len(t, toks, 2)
		assert.Equal(t, BEGIN, toks[0].Type, "source %q", src)
	}
}

func TestLexer_TrueFalseAreBooleanLiterals(t *testing.T) {
	toks := lexAll(t, "true false TRUE FALSE")
	require.Len(t, toks, 5)
	assert.Equal(t, TRUE, toks[0].Type)
	assert.Equal(t, FALSE, toks[1].Type)
	assert.Equal(t, TRUE, toks[2].Type)
	assert.Equal(t, FALSE, toks[3].Type)
}

func TestLexer_Identifier(t *testing.T) {
	toks := lexAll(t, "_foo Bar123")
	require.Len(t, toks, 3)
	assert.Equal(t, IDENT, toks[0].Type)
	assert.Equal(t, "_foo", toks[0].Literal)
	assert.Equal(t, IDENT, toks[1].Type)
	assert.Equal(t, "Bar123", toks[1].Literal)
}

func TestLexer_DecimalInteger(t *testing.T) {
	toks := lexAll(t, "65535")
	require.Len(t, toks, 2)
	assert.Equal(t, INT, toks[0].Type)
	assert.EqualValues(t, 65535, toks[0].IntValue)
	assert.False(t, toks[0].IsHex)
}

func TestLexer_HexIntegerFFFFEquals65535(t *testing.T) {
	toks := lexAll(t, "$FFFF")
	require.Len(t, toks, 2)
	assert.Equal(t, INT, toks[0].Type)
	assert.EqualValues(t, 65535, toks[0].IntValue)
	assert.True(t, toks[0].IsHex)
}

func TestLexer_HexIntegerOverflowIsLexError(t *testing.T) {
	l := New("$10000")
	_, err := l.NextToken()
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestLexer_DecimalOverflowIsLexError(t *testing.T) {
	l := New("65536")
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestLexer_CharLiteral(t *testing.T) {
	toks := lexAll(t, "#65 #255")
	require.Len(t, toks, 3)
	assert.Equal(t, CHAR, toks[0].Type)
	assert.EqualValues(t, 65, toks[0].CharValue)
	assert.EqualValues(t, 255, toks[1].CharValue)
}

func TestLexer_CharLiteralOutOfRangeIsLexError(t *testing.T) {
	l := New("#256")
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestLexer_CharLiteralNoDigitsIsLexError(t *testing.T) {
	l := New("#x")
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestLexer_StringLiteral(t *testing.T) {
	toks := lexAll(t, "'Hello, World!'")
	require.Len(t, toks, 2)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "Hello, World!", toks[0].Literal)
}

func TestLexer_EmbeddedQuoteEscapesToOneCharLiteral(t *testing.T) {
	toks := lexAll(t, "''''")
	require.Len(t, toks, 2)
	assert.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "'", toks[0].Literal)
}

func TestLexer_UnterminatedStringIsLexError(t *testing.T) {
	l := New("'abc")
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestLexer_UnterminatedStringAcrossNewlineIsLexError(t *testing.T) {
	l := New("'abc\ndef'")
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestLexer_CurlyCommentIsSkipped(t *testing.T) {
	toks := lexAll(t, "{ this is a comment } begin")
	require.Len(t, toks, 2)
	assert.Equal(t, BEGIN, toks[0].Type)
}

func TestLexer_ParenStarCommentIsSkipped(t *testing.T) {
	toks := lexAll(t, "(* comment *) begin")
	require.Len(t, toks, 2)
	assert.Equal(t, BEGIN, toks[0].Type)
}

func TestLexer_LineCommentExtendsToNewlineExclusive(t *testing.T) {
	toks := lexAll(t, "begin // trailing comment\nend")
	require.Len(t, toks, 3)
	assert.Equal(t, BEGIN, toks[0].Type)
	assert.Equal(t, END, toks[1].Type)
}

func TestLexer_UnterminatedCurlyCommentIsLexError(t *testing.T) {
	l := New("{ unterminated")
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestLexer_UnterminatedParenCommentIsLexError(t *testing.T) {
	l := New("(* unterminated")
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestLexer_CurlyDollarIsDirectiveNotComment(t *testing.T) {
	toks := lexAll(t, "{$DEFINE FOO}")
	require.Len(t, toks, 2)
	assert.Equal(t, DIRECTIVE, toks[0].Type)
	assert.Equal(t, "DEFINE FOO", toks[0].Literal)
}

func TestLexer_DirectivePending(t *testing.T) {
	l := New("{$IFDEF X}")
	assert.True(t, l.DirectivePending())
	l2 := New("{ not a directive }")
	assert.False(t, l2.DirectivePending())
}

func TestLexer_DirectiveBodyIsTrimmed(t *testing.T) {
	toks := lexAll(t, "{$   DEFINE   FOO   }")
	require.Len(t, toks, 2)
	assert.Equal(t, "DEFINE   FOO", toks[0].Literal)
}

func TestLexer_OperatorsMaximalMunch(t *testing.T) {
	cases := []struct {
		src  string
		kind TokenType
	}{
		{":=", ASSIGN},
		{"<=", LE},
		{"<>", NEQ},
		{">=", GE},
		{"..", DOTDOT},
		{"<", LT},
		{">", GT},
		{":", COLON},
		{".", DOT},
	}
	for _, c := range cases {
		toks := lexAll(t, c.src)
		require.Len(t, toks, 2, "source %q", c.src)
		assert.Equal(t, c.kind, toks[0].Type, "source %q", c.src)
	}
}

func TestLexer_DelimitersAndOperators(t *testing.T) {
	// "{ }" is an empty curly comment, so it yields no token.
	toks := lexAll(t, "+ - * / = ^ ; , ( ) [ ] { } @")
	kinds := []TokenType{PLUS, MINUS, ASTERISK, SLASH, EQ, CARET, SEMICOLON, COMMA, LPAREN, RPAREN, LBRACKET, RBRACKET, AT, EOF}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Type, "index %d", i)
	}
}

func TestLexer_InvalidCharacterYieldsLexError(t *testing.T) {
	l := New("`")
	_, err := l.NextToken()
	require.Error(t, err)
}

func TestLexer_WhitespaceSkipped(t *testing.T) {
	toks := lexAll(t, "  \t\r\n begin \n\t end ")
	require.Len(t, toks, 3)
	assert.Equal(t, BEGIN, toks[0].Type)
	assert.Equal(t, END, toks[1].Type)
}

func TestLexer_LineColumnTracking(t *testing.T) {
	toks := lexAll(t, "begin\n  end")
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Span.Line)
	assert.Equal(t, 1, toks[0].Span.Column)
	assert.Equal(t, 2, toks[1].Span.Line)
	assert.Equal(t, 3, toks[1].Span.Column)
}

func TestLexer_EofIsStableAcrossRepeatedCalls(t *testing.T) {
	l := New("")
	tok1, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, EOF, tok1.Type)
	tok2, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, EOF, tok2.Type)
}

func TestLexer_WithFilenameOption(t *testing.T) {
	l := New("begin", WithFilename("foo.pas"))
	assert.Equal(t, "foo.pas", l.Filename())
}

func TestSpan_Merge(t *testing.T) {
	a := Span{Start: 5, End: 10, Line: 2, Column: 3}
	b := Span{Start: 1, End: 4, Line: 1, Column: 1}
	m := a.Merge(b)
	assert.Equal(t, 1, m.Start)
	assert.Equal(t, 10, m.End)
	assert.Equal(t, 1, m.Line)
	assert.Equal(t, 1, m.Column)
}

func TestTokenType_Precedence(t *testing.T) {
	assert.True(t, Precedence(ASTERISK) > Precedence(PLUS))
	assert.True(t, Precedence(PLUS) > Precedence(EQ))
	assert.True(t, Precedence(EQ) > Precedence(AND))
	assert.True(t, Precedence(AND) > Precedence(OR))
	assert.Equal(t, LOWEST, Precedence(SEMICOLON))
}

func TestLookupIdent_PrimitiveTypeKeywords(t *testing.T) {
	assert.Equal(t, INTEGER, LookupIdent("Integer"))
	assert.Equal(t, BOOLEAN, LookupIdent("BOOLEAN"))
	assert.Equal(t, CHARKW, LookupIdent("char"))
	assert.Equal(t, BYTE, LookupIdent("Byte"))
	assert.Equal(t, WORD, LookupIdent("word"))
}
