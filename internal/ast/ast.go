// Package ast defines the Abstract Syntax Tree node types for a SuperPascal
// compilation unit: a single closed tagged-variant tree. Every node carries
// the Span of the source tokens it was built from; there are no back
// references and no shared children — the tree is owned top to bottom.
package ast

import "github.com/casibbald/SuperPascal/internal/lexer"

// Node is implemented by every AST node.
type Node interface {
	Span() lexer.Span
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is a Node that performs an action.
type Statement interface {
	Node
	stmtNode()
}

// TypeExpr is a Node appearing in type position (after a ':', in ARRAY OF,
// as a pointer base, and so on).
type TypeExpr interface {
	Node
	typeExprNode()
}

// Directive is a retained control or define/undef directive, kept verbatim
// for debugging per §3: "control directives are retained verbatim...
// $DEFINE/$UNDEF retained only when active". $INCLUDE is never retained
// here — its contents are spliced into the surrounding Block instead.
type Directive struct {
	Body    string
	SpanVal lexer.Span
}

func (d *Directive) Span() lexer.Span { return d.SpanVal }

// Root is the outcome of parsing one compilation unit: exactly one of
// Program or Unit is non-nil.
type Root struct {
	Program *Program
	Unit    *Unit
}

func (r *Root) Span() lexer.Span {
	if r.Program != nil {
		return r.Program.Span()
	}
	if r.Unit != nil {
		return r.Unit.Span()
	}
	return lexer.Span{}
}

// Program is a `PROGRAM name; block.` compilation unit.
type Program struct {
	Name       string
	Directives []*Directive
	Block      *Block
	SpanVal    lexer.Span
}

func (p *Program) Span() lexer.Span { return p.SpanVal }

// Unit is a `UNIT name; INTERFACE ... IMPLEMENTATION ... END.` compilation
// unit. Initialization/Finalization are nil when the corresponding section
// was absent.
type Unit struct {
	Name           string
	Interface      *Block
	Implementation *Block
	Initialization []Statement
	Finalization   []Statement
	SpanVal        lexer.Span
}

func (u *Unit) Span() lexer.Span { return u.SpanVal }

// Block is the single shape used for program bodies, unit interface/
// implementation sections, and routine bodies: zero or more declaration
// sections (order between sections is free; order within a section is
// preserved) followed by a BEGIN...END statement list. A unit's interface
// section has the declaration sections only and no statements.
type Block struct {
	Directives     []*Directive
	LabelDecls     []*LabelDecl
	ConstDecls     []*ConstDecl
	TypeDecls      []*TypeDecl
	VarDecls       []*VarDecl
	ThreadVarDecls []*VarDecl
	ProcDecls      []*ProcDecl
	FuncDecls      []*FuncDecl
	OperatorDecls  []*OperatorDecl
	Statements     []Statement
	SpanVal        lexer.Span
}

func (b *Block) Span() lexer.Span { return b.SpanVal }
