package ast

import (
	"strconv"

	"github.com/casibbald/SuperPascal/internal/lexer"
)

// LiteralKind distinguishes the payload carried by a LiteralExpr.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	CharLiteralKind
	StringLiteralKind
	BoolLiteral
	NilLiteral
)

// LiteralExpr is the single node shape for every literal value: integer,
// character, string, boolean, and nil. Only the field matching Kind is
// meaningful.
type LiteralExpr struct {
	Kind    LiteralKind
	IntVal  uint16
	IsHex   bool
	CharVal byte
	StrVal  string
	BoolVal bool
	SpanVal lexer.Span
}

func (e *LiteralExpr) Span() lexer.Span { return e.SpanVal }
func (e *LiteralExpr) exprNode()         {}

func (e *LiteralExpr) String() string {
	switch e.Kind {
	case IntLiteral:
		if e.IsHex {
			return "$" + strconv.FormatUint(uint64(e.IntVal), 16)
		}
		return strconv.FormatUint(uint64(e.IntVal), 10)
	case CharLiteralKind:
		return "#" + strconv.Itoa(int(e.CharVal))
	case StringLiteralKind:
		return "'" + e.StrVal + "'"
	case BoolLiteral:
		return strconv.FormatBool(e.BoolVal)
	default:
		return "nil"
	}
}

// IdentExpr is a bare identifier used as an expression (variable
// reference, enum constant, etc).
type IdentExpr struct {
	Name    string
	SpanVal lexer.Span
}

func (e *IdentExpr) Span() lexer.Span { return e.SpanVal }
func (e *IdentExpr) exprNode()         {}
func (e *IdentExpr) String() string    { return e.Name }

// UnaryExpr is `(+|-|NOT) expr`.
type UnaryExpr struct {
	Op      string
	Expr    Expression
	SpanVal lexer.Span
}

func (e *UnaryExpr) Span() lexer.Span { return e.SpanVal }
func (e *UnaryExpr) exprNode()         {}

// BinaryExpr is `left op right`. Op is the operator's token spelling, one of
// `+ - * / or and = <> < <= > >= div mod`, or `..` for a case-label range.
type BinaryExpr struct {
	Op      string
	Left    Expression
	Right   Expression
	SpanVal lexer.Span
}

func (e *BinaryExpr) Span() lexer.Span { return e.SpanVal }
func (e *BinaryExpr) exprNode()         {}

// CallExpr is `name ( args )` — recognised only directly after an
// identifier prefix, never after a postfix chain.
type CallExpr struct {
	Name    string
	Args    []Expression
	SpanVal lexer.Span
}

func (e *CallExpr) Span() lexer.Span { return e.SpanVal }
func (e *CallExpr) exprNode()         {}

// IndexExpr is `array [ index ]`.
type IndexExpr struct {
	Array   Expression
	Index   Expression
	SpanVal lexer.Span
}

func (e *IndexExpr) Span() lexer.Span { return e.SpanVal }
func (e *IndexExpr) exprNode()         {}

// FieldExpr is `record . field`.
type FieldExpr struct {
	Record  Expression
	Field   string
	SpanVal lexer.Span
}

func (e *FieldExpr) Span() lexer.Span { return e.SpanVal }
func (e *FieldExpr) exprNode()         {}

// DerefExpr is `pointer ^`.
type DerefExpr struct {
	Pointer Expression
	SpanVal lexer.Span
}

func (e *DerefExpr) Span() lexer.Span { return e.SpanVal }
func (e *DerefExpr) exprNode()         {}
