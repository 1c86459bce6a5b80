// Package directive parses and evaluates SuperPascal compiler directive
// bodies: the text between '{$' and '}' that the lexer hands back as a
// single DIRECTIVE token. It owns the defined-symbol set and the
// conditional-compilation state stack; it never touches source bytes
// directly.
package directive

import "strings"

// Kind classifies a parsed directive body.
type Kind int

const (
	Unknown Kind = iota
	IfDef
	IfNDef
	If
	ElseIf
	Else
	EndIf
	Define
	Undef
	Include
)

// Directive is a parsed directive body: a kind plus whatever argument it
// carries. Name is set for IfDef/IfNDef/Define/Undef. Expr is the raw
// remainder for If/ElseIf. File is the (quote-stripped) filename for
// Include.
type Directive struct {
	Kind Kind
	Name string
	Expr string
	File string
}

// Parse splits a directive body (already trimmed by the lexer) into its
// kind and argument. The first whitespace-delimited word selects the kind,
// case-insensitively; anything it doesn't recognise is Unknown and has no
// effect when applied.
func Parse(body string) Directive {
	body = strings.TrimSpace(body)
	word, rest := splitFirst(body)
	switch strings.ToUpper(word) {
	case "IFDEF":
		return Directive{Kind: IfDef, Name: strings.TrimSpace(rest)}
	case "IFNDEF":
		return Directive{Kind: IfNDef, Name: strings.TrimSpace(rest)}
	case "IF":
		return Directive{Kind: If, Expr: strings.TrimSpace(rest)}
	case "ELSEIF":
		return Directive{Kind: ElseIf, Expr: strings.TrimSpace(rest)}
	case "ELSE":
		return Directive{Kind: Else}
	case "ENDIF", "END":
		return Directive{Kind: EndIf}
	case "DEFINE":
		return Directive{Kind: Define, Name: strings.ToUpper(strings.TrimSpace(rest))}
	case "UNDEF", "UNDEFINE":
		return Directive{Kind: Undef, Name: strings.ToUpper(strings.TrimSpace(rest))}
	case "INCLUDE":
		return Directive{Kind: Include, File: unquote(strings.TrimSpace(rest))}
	case "I":
		return Directive{Kind: Include, File: unquote(strings.TrimSpace(rest))}
	default:
		return Directive{Kind: Unknown}
	}
}

func splitFirst(s string) (word, rest string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
