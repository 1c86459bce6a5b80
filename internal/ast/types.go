package ast

import "github.com/casibbald/SuperPascal/internal/lexer"

// NamedType is a reference to a type by name — a user-defined type, or one
// of the primitive-type keywords re-wrapped as a named type whose Name is
// the lower-case spelling ("integer", "boolean", "char", "byte", "word"),
// per the design note unifying built-in and user-defined type references.
type NamedType struct {
	Name    string
	SpanVal lexer.Span
}

func (t *NamedType) Span() lexer.Span { return t.SpanVal }
func (t *NamedType) typeExprNode()     {}

// PointerType is `^ type`.
type PointerType struct {
	Base    TypeExpr
	SpanVal lexer.Span
}

func (t *PointerType) Span() lexer.Span { return t.SpanVal }
func (t *PointerType) typeExprNode()     {}

// ArrayType is `ARRAY [ index_type ] OF element_type`.
type ArrayType struct {
	Index   TypeExpr
	Element TypeExpr
	SpanVal lexer.Span
}

func (t *ArrayType) Span() lexer.Span { return t.SpanVal }
func (t *ArrayType) typeExprNode()     {}

// FieldDecl is `name_list : type`, shared by RecordType and ClassType
// field members. IsClassVar marks a `CLASS VAR` field, associated with the
// class itself rather than each instance.
type FieldDecl struct {
	Names      []string
	TypeExpr   TypeExpr
	IsClassVar bool
	SpanVal    lexer.Span
}

func (f *FieldDecl) Span() lexer.Span { return f.SpanVal }

// RecordType is `RECORD field_decl ; ... END`.
type RecordType struct {
	Fields  []*FieldDecl
	SpanVal lexer.Span
}

func (t *RecordType) Span() lexer.Span { return t.SpanVal }
func (t *RecordType) typeExprNode()     {}

// ClassMember tags one member of a ClassType: a field, a nested routine
// (method), or a property.
type ClassMember interface {
	Node
	classMemberNode()
}

// ClassField is a field member of a class.
type ClassField struct{ *FieldDecl }

func (f ClassField) classMemberNode() {}

// ClassMethod is a method (procedure or function) member of a class.
type ClassMethod struct {
	Proc *ProcDecl
	Func *FuncDecl
}

func (m ClassMethod) Span() lexer.Span {
	if m.Func != nil {
		return m.Func.Span()
	}
	return m.Proc.Span()
}
func (m ClassMethod) classMemberNode() {}

// ClassProperty is a property member of a class.
type ClassProperty struct{ *PropertyDecl }

func (p ClassProperty) classMemberNode() {}

// ClassType is `CLASS [(parent)] member... END`.
type ClassType struct {
	Parent  string
	Members []ClassMember
	SpanVal lexer.Span
}

func (t *ClassType) Span() lexer.Span { return t.SpanVal }
func (t *ClassType) typeExprNode()     {}
