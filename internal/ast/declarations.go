package ast

import "github.com/casibbald/SuperPascal/internal/lexer"

// LabelDecl is a `LABEL l1, l2, ...;` section.
type LabelDecl struct {
	Labels  []string
	SpanVal lexer.Span
}

func (d *LabelDecl) Span() lexer.Span { return d.SpanVal }

// ConstDecl is `name = expr;`. IsResourceString marks a RESOURCESTRING
// entry, which is syntactically identical but flagged for later
// differential handling (localisable strings).
type ConstDecl struct {
	Name             string
	Value            Expression
	IsResourceString bool
	SpanVal          lexer.Span
}

func (d *ConstDecl) Span() lexer.Span { return d.SpanVal }

// GenericParam is one `Name [: Constraint]` entry in a `<...>` parameter
// list on a type, procedure, or function declaration.
type GenericParam struct {
	Name       string
	Constraint string
	SpanVal    lexer.Span
}

func (g *GenericParam) Span() lexer.Span { return g.SpanVal }

// TypeDecl is `name ['<' generic_params '>'] = type_expr;`.
type TypeDecl struct {
	Name          string
	GenericParams []*GenericParam
	TypeExpr      TypeExpr
	SpanVal       lexer.Span
}

func (d *TypeDecl) Span() lexer.Span { return d.SpanVal }

// VarDecl is `name {, name} : type [ABSOLUTE expr];`, shared by VAR and
// THREADVAR sections. AbsoluteAddr is nil unless ABSOLUTE was present.
// Class-var fields inside a class type are parsed as FieldDecl, so the
// parser never sets IsClassVar here.
type VarDecl struct {
	Names        []string
	TypeExpr     TypeExpr
	AbsoluteAddr Expression
	IsClassVar   bool
	SpanVal      lexer.Span
}

func (d *VarDecl) Span() lexer.Span { return d.SpanVal }

// ParamMode is the passing convention of a parameter.
type ParamMode int

const (
	ModeValue ParamMode = iota
	ModeVar
	ModeConst
	ModeConstRef
	ModeOut
)

// Param is one parameter group: `[mode] name {, name} : type [= default]`.
type Param struct {
	Names   []string
	Mode    ParamMode
	Type    TypeExpr
	Default Expression
	SpanVal lexer.Span
}

func (p *Param) Span() lexer.Span { return p.SpanVal }

// RoutineDecl is embedded by ProcDecl, FuncDecl, and OperatorDecl: the
// shared shape a header/body pair needs, per §3 and the nested-routine
// resolution algorithm in §4.5.
type RoutineDecl struct {
	Name          string
	ClassName     string // set for `ClassName.Method` qualified headers
	GenericParams []*GenericParam
	Params        []*Param
	Block         *Block // nil for forward/external declarations
	IsForward     bool
	IsExternal    bool
	ExternalName  string
	IsClassMethod bool
	SpanVal       lexer.Span
}

func (r *RoutineDecl) Span() lexer.Span { return r.SpanVal }

// ProcDecl is a PROCEDURE declaration (no return type).
type ProcDecl struct{ RoutineDecl }

// FuncDecl is a FUNCTION declaration (ReturnType always non-nil once fully
// parsed; nil only transiently for a forward/external header, which still
// needs a return type per grammar — so in practice this is always set).
type FuncDecl struct {
	RoutineDecl
	ReturnType TypeExpr
}

// OperatorDecl is an OPERATOR declaration: the operator name is either a
// symbol (`+ - * / = <> < <= > >= . ^`) or an identifier; otherwise it is
// parsed exactly like FuncDecl, with a mandatory return type.
type OperatorDecl struct {
	RoutineDecl
	ReturnType TypeExpr
}
