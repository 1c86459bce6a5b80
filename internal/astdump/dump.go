// Package astdump renders an ast.Root as an indented S-expression, for the
// emit-ast CLI command and for snapshot tests that want a readable AST
// fingerprint instead of a Go struct diff.
package astdump

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/casibbald/SuperPascal/internal/ast"
)

// Dump renders root as a multi-line indented S-expression.
func Dump(root *ast.Root) string {
	var sb strings.Builder
	if root.Program != nil {
		dumpProgram(&sb, 0, root.Program)
	} else if root.Unit != nil {
		dumpUnit(&sb, 0, root.Unit)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func line(sb *strings.Builder, depth int, format string, args ...interface{}) {
	indent(sb, depth)
	fmt.Fprintf(sb, format, args...)
	sb.WriteString("\n")
}

func dumpProgram(sb *strings.Builder, depth int, p *ast.Program) {
	line(sb, depth, "(Program %q", p.Name)
	dumpDirectives(sb, depth+1, p.Directives)
	dumpBlock(sb, depth+1, p.Block)
	line(sb, depth, ")")
}

func dumpUnit(sb *strings.Builder, depth int, u *ast.Unit) {
	line(sb, depth, "(Unit %q", u.Name)
	line(sb, depth+1, "(Interface")
	dumpBlock(sb, depth+2, u.Interface)
	line(sb, depth+1, ")")
	line(sb, depth+1, "(Implementation")
	dumpBlock(sb, depth+2, u.Implementation)
	line(sb, depth+1, ")")
	if len(u.Initialization) > 0 {
		line(sb, depth+1, "(Initialization")
		dumpStatements(sb, depth+2, u.Initialization)
		line(sb, depth+1, ")")
	}
	if len(u.Finalization) > 0 {
		line(sb, depth+1, "(Finalization")
		dumpStatements(sb, depth+2, u.Finalization)
		line(sb, depth+1, ")")
	}
	line(sb, depth, ")")
}

func dumpDirectives(sb *strings.Builder, depth int, ds []*ast.Directive) {
	for _, d := range ds {
		line(sb, depth, "(Directive %q)", d.Body)
	}
}

func dumpBlock(sb *strings.Builder, depth int, b *ast.Block) {
	if b == nil {
		return
	}
	dumpDirectives(sb, depth, b.Directives)
	for _, l := range b.LabelDecls {
		line(sb, depth, "(Label %s)", strings.Join(l.Labels, ", "))
	}
	for _, c := range b.ConstDecls {
		kind := "Const"
		if c.IsResourceString {
			kind = "ResourceString"
		}
		line(sb, depth, "(%s %s =", kind, c.Name)
		dumpExpr(sb, depth+1, c.Value)
		line(sb, depth, ")")
	}
	for _, t := range b.TypeDecls {
		line(sb, depth, "(Type %s%s =", t.Name, genericsSuffix(t.GenericParams))
		dumpTypeExpr(sb, depth+1, t.TypeExpr)
		line(sb, depth, ")")
	}
	for _, v := range b.VarDecls {
		dumpVarDecl(sb, depth, "Var", v)
	}
	for _, v := range b.ThreadVarDecls {
		dumpVarDecl(sb, depth, "ThreadVar", v)
	}
	for _, r := range b.ProcDecls {
		dumpRoutine(sb, depth, "Proc", r.RoutineDecl, nil)
	}
	for _, r := range b.FuncDecls {
		dumpRoutine(sb, depth, "Func", r.RoutineDecl, r.ReturnType)
	}
	for _, r := range b.OperatorDecls {
		dumpRoutine(sb, depth, "Operator", r.RoutineDecl, r.ReturnType)
	}
	if len(b.Statements) > 0 {
		line(sb, depth, "(Statements")
		dumpStatements(sb, depth+1, b.Statements)
		line(sb, depth, ")")
	}
}

func genericsSuffix(gs []*ast.GenericParam) string {
	if len(gs) == 0 {
		return ""
	}
	parts := make([]string, len(gs))
	for i, g := range gs {
		if g.Constraint != "" {
			parts[i] = g.Name + ": " + g.Constraint
		} else {
			parts[i] = g.Name
		}
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func dumpVarDecl(sb *strings.Builder, depth int, kind string, v *ast.VarDecl) {
	suffix := ""
	if v.IsClassVar {
		suffix = " class"
	}
	line(sb, depth, "(%s%s %s :", kind, suffix, strings.Join(v.Names, ", "))
	dumpTypeExpr(sb, depth+1, v.TypeExpr)
	if v.AbsoluteAddr != nil {
		line(sb, depth+1, "(Absolute")
		dumpExpr(sb, depth+2, v.AbsoluteAddr)
		line(sb, depth+1, ")")
	}
	line(sb, depth, ")")
}

func dumpRoutine(sb *strings.Builder, depth int, kind string, r ast.RoutineDecl, ret ast.TypeExpr) {
	name := r.Name
	if r.ClassName != "" {
		name = r.ClassName + "." + name
	}
	flags := ""
	if r.IsClassMethod {
		flags += " class"
	}
	if r.IsForward {
		flags += " forward"
	}
	if r.IsExternal {
		flags += " external"
		if r.ExternalName != "" {
			flags += fmt.Sprintf(" %q", r.ExternalName)
		}
	}
	line(sb, depth, "(%s %s%s%s", kind, name, genericsSuffix(r.GenericParams), flags)
	for _, p := range r.Params {
		dumpParam(sb, depth+1, p)
	}
	if ret != nil {
		line(sb, depth+1, "(Returns")
		dumpTypeExpr(sb, depth+2, ret)
		line(sb, depth+1, ")")
	}
	if r.Block != nil {
		dumpBlock(sb, depth+1, r.Block)
	}
	line(sb, depth, ")")
}

func dumpParam(sb *strings.Builder, depth int, p *ast.Param) {
	line(sb, depth, "(Param %s %s :", paramModeString(p.Mode), strings.Join(p.Names, ", "))
	dumpTypeExpr(sb, depth+1, p.Type)
	if p.Default != nil {
		line(sb, depth+1, "(Default")
		dumpExpr(sb, depth+2, p.Default)
		line(sb, depth+1, ")")
	}
	line(sb, depth, ")")
}

func paramModeString(m ast.ParamMode) string {
	switch m {
	case ast.ModeVar:
		return "var"
	case ast.ModeConst:
		return "const"
	case ast.ModeConstRef:
		return "constref"
	case ast.ModeOut:
		return "out"
	default:
		return "value"
	}
}

func dumpTypeExpr(sb *strings.Builder, depth int, t ast.TypeExpr) {
	if t == nil {
		line(sb, depth, "(nil)")
		return
	}
	switch n := t.(type) {
	case *ast.NamedType:
		line(sb, depth, "(NamedType %s)", n.Name)
	case *ast.PointerType:
		line(sb, depth, "(PointerType")
		dumpTypeExpr(sb, depth+1, n.Base)
		line(sb, depth, ")")
	case *ast.ArrayType:
		line(sb, depth, "(ArrayType")
		dumpTypeExpr(sb, depth+1, n.Index)
		dumpTypeExpr(sb, depth+1, n.Element)
		line(sb, depth, ")")
	case *ast.RecordType:
		line(sb, depth, "(RecordType")
		for _, f := range n.Fields {
			line(sb, depth+1, "(Field %s :", strings.Join(f.Names, ", "))
			dumpTypeExpr(sb, depth+2, f.TypeExpr)
			line(sb, depth+1, ")")
		}
		line(sb, depth, ")")
	case *ast.ClassType:
		parent := ""
		if n.Parent != "" {
			parent = " (" + n.Parent + ")"
		}
		line(sb, depth, "(ClassType%s", parent)
		for _, m := range n.Members {
			dumpClassMember(sb, depth+1, m)
		}
		line(sb, depth, ")")
	default:
		line(sb, depth, "(UnknownType)")
	}
}

func dumpClassMember(sb *strings.Builder, depth int, m ast.ClassMember) {
	switch cm := m.(type) {
	case ast.ClassField:
		tag := "Field"
		if cm.IsClassVar {
			tag = "ClassField"
		}
		line(sb, depth, "(%s %s :", tag, strings.Join(cm.Names, ", "))
		dumpTypeExpr(sb, depth+1, cm.TypeExpr)
		line(sb, depth, ")")
	case ast.ClassMethod:
		if cm.Func != nil {
			dumpRoutine(sb, depth, "Func", cm.Func.RoutineDecl, cm.Func.ReturnType)
		} else if cm.Proc != nil {
			dumpRoutine(sb, depth, "Proc", cm.Proc.RoutineDecl, nil)
		}
	case ast.ClassProperty:
		dumpProperty(sb, depth, cm.PropertyDecl)
	}
}

func dumpProperty(sb *strings.Builder, depth int, p *ast.PropertyDecl) {
	suffix := ""
	if p.IsClassProperty {
		suffix = " class"
	}
	line(sb, depth, "(Property%s %s", suffix, p.Name)
	for _, ip := range p.IndexParams {
		dumpParam(sb, depth+1, ip)
	}
	if p.TypeExpr != nil {
		dumpTypeExpr(sb, depth+1, p.TypeExpr)
	}
	if p.ReadAccessor != "" {
		line(sb, depth+1, "(Read %s)", p.ReadAccessor)
	}
	if p.WriteAccessor != "" {
		line(sb, depth+1, "(Write %s)", p.WriteAccessor)
	}
	if p.IndexExpr != nil {
		line(sb, depth+1, "(Index")
		dumpExpr(sb, depth+2, p.IndexExpr)
		line(sb, depth+1, ")")
	}
	if p.DefaultExpr != nil {
		line(sb, depth+1, "(Default")
		dumpExpr(sb, depth+2, p.DefaultExpr)
		line(sb, depth+1, ")")
	} else if p.IsDefault {
		line(sb, depth+1, "(Default)")
	}
	if p.StoredExpr != nil {
		line(sb, depth+1, "(Stored")
		dumpExpr(sb, depth+2, p.StoredExpr)
		line(sb, depth+1, ")")
	}
	line(sb, depth, ")")
}

func dumpStatements(sb *strings.Builder, depth int, stmts []ast.Statement) {
	for _, s := range stmts {
		dumpStmt(sb, depth, s)
	}
}

func dumpStmt(sb *strings.Builder, depth int, s ast.Statement) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		line(sb, depth, "(ExprStmt")
		dumpExpr(sb, depth+1, n.Expr)
		line(sb, depth, ")")
	case *ast.AssignStmt:
		line(sb, depth, "(Assign")
		dumpExpr(sb, depth+1, n.Target)
		dumpExpr(sb, depth+1, n.Value)
		line(sb, depth, ")")
	case *ast.CompoundStmt:
		line(sb, depth, "(Compound")
		dumpStatements(sb, depth+1, n.Statements)
		line(sb, depth, ")")
	case *ast.IfStmt:
		line(sb, depth, "(If")
		dumpExpr(sb, depth+1, n.Cond)
		dumpStmt(sb, depth+1, n.Then)
		if n.Else != nil {
			dumpStmt(sb, depth+1, n.Else)
		}
		line(sb, depth, ")")
	case *ast.WhileStmt:
		line(sb, depth, "(While")
		dumpExpr(sb, depth+1, n.Cond)
		dumpStmt(sb, depth+1, n.Body)
		line(sb, depth, ")")
	case *ast.RepeatStmt:
		line(sb, depth, "(Repeat")
		dumpStatements(sb, depth+1, n.Body)
		dumpExpr(sb, depth+1, n.Cond)
		line(sb, depth, ")")
	case *ast.ForStmt:
		dir := "to"
		if n.DownTo {
			dir = "downto"
		}
		line(sb, depth, "(For %s %s", n.Var, dir)
		dumpExpr(sb, depth+1, n.Start)
		dumpExpr(sb, depth+1, n.End)
		dumpStmt(sb, depth+1, n.Body)
		line(sb, depth, ")")
	case *ast.CaseStmt:
		line(sb, depth, "(Case")
		dumpExpr(sb, depth+1, n.Selector)
		for _, br := range n.Branches {
			line(sb, depth+1, "(Branch")
			for _, v := range br.Values {
				dumpExpr(sb, depth+2, v)
			}
			dumpStmt(sb, depth+2, br.Body)
			line(sb, depth+1, ")")
		}
		if len(n.Else) > 0 {
			line(sb, depth+1, "(Else")
			dumpStatements(sb, depth+2, n.Else)
			line(sb, depth+1, ")")
		}
		line(sb, depth, ")")
	case *ast.WithStmt:
		line(sb, depth, "(With")
		dumpExpr(sb, depth+1, n.Target)
		dumpStmt(sb, depth+1, n.Body)
		line(sb, depth, ")")
	case *ast.GotoStmt:
		line(sb, depth, "(Goto %s)", n.Label)
	case *ast.LabelledStmt:
		line(sb, depth, "(Labelled %s", n.Label)
		dumpStmt(sb, depth+1, n.Stmt)
		line(sb, depth, ")")
	case *ast.TryStmt:
		line(sb, depth, "(Try")
		dumpStatements(sb, depth+1, n.Body)
		if len(n.Except) > 0 {
			line(sb, depth+1, "(Except")
			dumpStatements(sb, depth+2, n.Except)
			line(sb, depth+1, ")")
		}
		if len(n.Finally) > 0 {
			line(sb, depth+1, "(Finally")
			dumpStatements(sb, depth+2, n.Finally)
			line(sb, depth+1, ")")
		}
		line(sb, depth, ")")
	case *ast.RaiseStmt:
		if n.Expr == nil {
			line(sb, depth, "(Raise)")
			return
		}
		line(sb, depth, "(Raise")
		dumpExpr(sb, depth+1, n.Expr)
		line(sb, depth, ")")
	case *ast.InheritedStmt:
		if n.Call == nil {
			line(sb, depth, "(Inherited)")
			return
		}
		line(sb, depth, "(Inherited")
		dumpExpr(sb, depth+1, n.Call)
		line(sb, depth, ")")
	default:
		line(sb, depth, "(UnknownStmt)")
	}
}

func dumpExpr(sb *strings.Builder, depth int, e ast.Expression) {
	if e == nil {
		line(sb, depth, "(nil)")
		return
	}
	switch n := e.(type) {
	case *ast.LiteralExpr:
		line(sb, depth, "(Literal %s)", literalText(n))
	case *ast.IdentExpr:
		line(sb, depth, "(Ident %s)", n.Name)
	case *ast.UnaryExpr:
		line(sb, depth, "(Unary %s", n.Op)
		dumpExpr(sb, depth+1, n.Expr)
		line(sb, depth, ")")
	case *ast.BinaryExpr:
		line(sb, depth, "(Binary %s", n.Op)
		dumpExpr(sb, depth+1, n.Left)
		dumpExpr(sb, depth+1, n.Right)
		line(sb, depth, ")")
	case *ast.CallExpr:
		line(sb, depth, "(Call %s", n.Name)
		for _, a := range n.Args {
			dumpExpr(sb, depth+1, a)
		}
		line(sb, depth, ")")
	case *ast.IndexExpr:
		line(sb, depth, "(Index")
		dumpExpr(sb, depth+1, n.Array)
		dumpExpr(sb, depth+1, n.Index)
		line(sb, depth, ")")
	case *ast.FieldExpr:
		line(sb, depth, "(Field %s", n.Field)
		dumpExpr(sb, depth+1, n.Record)
		line(sb, depth, ")")
	case *ast.DerefExpr:
		line(sb, depth, "(Deref")
		dumpExpr(sb, depth+1, n.Pointer)
		line(sb, depth, ")")
	default:
		line(sb, depth, "(UnknownExpr)")
	}
}

func literalText(n *ast.LiteralExpr) string {
	switch n.Kind {
	case ast.IntLiteral:
		if n.IsHex {
			return "$" + strconv.FormatUint(uint64(n.IntVal), 16)
		}
		return strconv.FormatUint(uint64(n.IntVal), 10)
	case ast.CharLiteralKind:
		return "#" + strconv.Itoa(int(n.CharVal))
	case ast.StringLiteralKind:
		return strconv.Quote(n.StrVal)
	case ast.BoolLiteral:
		return strconv.FormatBool(n.BoolVal)
	default:
		return "nil"
	}
}
