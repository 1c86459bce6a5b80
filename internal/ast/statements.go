package ast

import "github.com/casibbald/SuperPascal/internal/lexer"

// ExprStmt is an expression used as a statement — in practice always a
// procedure-call (`writeln(...)`), since SuperPascal has no other
// expression with side effects permitted standalone.
type ExprStmt struct {
	Expr    Expression
	SpanVal lexer.Span
}

func (s *ExprStmt) Span() lexer.Span { return s.SpanVal }
func (s *ExprStmt) stmtNode()         {}

// AssignStmt is `target := value;`.
type AssignStmt struct {
	Target  Expression
	Value   Expression
	SpanVal lexer.Span
}

func (s *AssignStmt) Span() lexer.Span { return s.SpanVal }
func (s *AssignStmt) stmtNode()         {}

// CompoundStmt is a `BEGIN ... END` statement list appearing where a
// single statement is grammatically expected (if/while/for bodies, etc).
type CompoundStmt struct {
	Statements []Statement
	SpanVal    lexer.Span
}

func (s *CompoundStmt) Span() lexer.Span { return s.SpanVal }
func (s *CompoundStmt) stmtNode()         {}

// IfStmt is `IF cond THEN then [ELSE else]`. Else is nil when absent.
type IfStmt struct {
	Cond    Expression
	Then    Statement
	Else    Statement
	SpanVal lexer.Span
}

func (s *IfStmt) Span() lexer.Span { return s.SpanVal }
func (s *IfStmt) stmtNode()         {}

// WhileStmt is `WHILE cond DO body`.
type WhileStmt struct {
	Cond    Expression
	Body    Statement
	SpanVal lexer.Span
}

func (s *WhileStmt) Span() lexer.Span { return s.SpanVal }
func (s *WhileStmt) stmtNode()         {}

// RepeatStmt is `REPEAT stmts... UNTIL cond`.
type RepeatStmt struct {
	Body    []Statement
	Cond    Expression
	SpanVal lexer.Span
}

func (s *RepeatStmt) Span() lexer.Span { return s.SpanVal }
func (s *RepeatStmt) stmtNode()         {}

// ForStmt is `FOR var := start (TO|DOWNTO) end DO body`.
type ForStmt struct {
	Var      string
	Start    Expression
	End      Expression
	DownTo   bool
	Body     Statement
	SpanVal  lexer.Span
}

func (s *ForStmt) Span() lexer.Span { return s.SpanVal }
func (s *ForStmt) stmtNode()         {}

// CaseBranch is one `values: body` arm of a CASE statement.
type CaseBranch struct {
	Values  []Expression
	Body    Statement
	SpanVal lexer.Span
}

func (b *CaseBranch) Span() lexer.Span { return b.SpanVal }

// CaseStmt is `CASE selector OF branch... [ELSE stmts] END`.
type CaseStmt struct {
	Selector Expression
	Branches []*CaseBranch
	Else     []Statement
	SpanVal  lexer.Span
}

func (s *CaseStmt) Span() lexer.Span { return s.SpanVal }
func (s *CaseStmt) stmtNode()         {}

// WithStmt is `WITH target DO body`.
type WithStmt struct {
	Target  Expression
	Body    Statement
	SpanVal lexer.Span
}

func (s *WithStmt) Span() lexer.Span { return s.SpanVal }
func (s *WithStmt) stmtNode()         {}

// GotoStmt is `GOTO label;`.
type GotoStmt struct {
	Label   string
	SpanVal lexer.Span
}

func (s *GotoStmt) Span() lexer.Span { return s.SpanVal }
func (s *GotoStmt) stmtNode()         {}

// LabelledStmt is `label: stmt`.
type LabelledStmt struct {
	Label   string
	Stmt    Statement
	SpanVal lexer.Span
}

func (s *LabelledStmt) Span() lexer.Span { return s.SpanVal }
func (s *LabelledStmt) stmtNode()         {}

// TryStmt unifies try-except and try-finally: the parser fills only the
// handler named by the keyword it met (Except or Finally); an empty handler
// leaves both nil.
type TryStmt struct {
	Body    []Statement
	Except  []Statement
	Finally []Statement
	SpanVal lexer.Span
}

func (s *TryStmt) Span() lexer.Span { return s.SpanVal }
func (s *TryStmt) stmtNode()         {}

// RaiseStmt is `RAISE [expr];` — Expr is nil for a bare re-raise inside an
// except handler.
type RaiseStmt struct {
	Expr    Expression
	SpanVal lexer.Span
}

func (s *RaiseStmt) Span() lexer.Span { return s.SpanVal }
func (s *RaiseStmt) stmtNode()         {}

// InheritedStmt is `INHERITED [name(args)];`.
type InheritedStmt struct {
	Call    *CallExpr // nil for a bare `inherited;`
	SpanVal lexer.Span
}

func (s *InheritedStmt) Span() lexer.Span { return s.SpanVal }
func (s *InheritedStmt) stmtNode()         {}
