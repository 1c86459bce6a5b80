package ast

import "github.com/casibbald/SuperPascal/internal/lexer"

// PropertyDecl is a class property declaration:
//
//	[CLASS] PROPERTY name [ [ index_params ] ] [: type]
//	  [READ ident] [WRITE ident] [INDEX expr] [DEFAULT [expr]] [STORED expr];
//
// A DEFAULT clause with no expression, written directly before the closing
// `;` (`... DEFAULT;`), marks the property as the class's default property,
// recorded in IsDefault. A separate `DEFAULT;` after the property's own `;`
// is not accepted.
type PropertyDecl struct {
	Name            string
	IndexParams     []*Param
	TypeExpr        TypeExpr
	ReadAccessor    string
	WriteAccessor   string
	IndexExpr       Expression
	DefaultExpr     Expression
	StoredExpr      Expression
	IsDefault       bool
	IsClassProperty bool
	SpanVal         lexer.Span
}

func (p *PropertyDecl) Span() lexer.Span { return p.SpanVal }
