package parser

import (
	"os"
	"testing"

	"github.com/casibbald/SuperPascal/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string, opts ...Option) *ast.Root {
	t.Helper()
	root, err := Parse(src, "", nil, opts...)
	require.NoError(t, err)
	require.NotNil(t, root)
	return root
}

// --- Seed scenario 1: hello world ---

func TestParse_HelloWorld(t *testing.T) {
	root := mustParse(t, `program Hello; begin writeln('Hello, World!'); end.`)
	require.NotNil(t, root.Program)
	assert.Equal(t, "Hello", root.Program.Name)
	require.Len(t, root.Program.Block.Statements, 1)
	stmt, ok := root.Program.Block.Statements[0].(*ast.ExprStmt)
	require.True(t, ok)
	call, ok := stmt.Expr.(*ast.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "writeln", call.Name)
	require.Len(t, call.Args, 1)
	lit, ok := call.Args[0].(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, ast.StringLiteralKind, lit.Kind)
	assert.Equal(t, "Hello, World!", lit.StrVal)
}

// --- Seed scenario 2: nested routine ---

func TestParse_NestedRoutine(t *testing.T) {
	src := `program T;
procedure Outer;
  function Inner: integer;
  begin
    Inner := 42;
  end;
begin
end;
begin
end.`
	root := mustParse(t, src)
	require.Len(t, root.Program.Block.ProcDecls, 1)
	outer := root.Program.Block.ProcDecls[0]
	assert.Equal(t, "Outer", outer.Name)
	require.NotNil(t, outer.Block)
	require.Len(t, outer.Block.FuncDecls, 1)
	inner := outer.Block.FuncDecls[0]
	assert.Equal(t, "Inner", inner.Name)
	require.NotNil(t, inner.Block)
	require.Len(t, inner.Block.Statements, 1)
	assign, ok := inner.Block.Statements[0].(*ast.AssignStmt)
	require.True(t, ok)
	ident, ok := assign.Target.(*ast.IdentExpr)
	require.True(t, ok)
	assert.Equal(t, "Inner", ident.Name)
}

// --- Seed scenario 3: method on a class ---

func TestParse_MethodOnClass(t *testing.T) {
	src := `program T;
procedure MyClass.MyMethod;
begin
end;
begin
end.`
	root := mustParse(t, src)
	require.Len(t, root.Program.Block.ProcDecls, 1)
	m := root.Program.Block.ProcDecls[0]
	assert.Equal(t, "MyClass", m.ClassName)
	assert.Equal(t, "MyMethod", m.Name)
}

// --- Seed scenario 4: conditional compilation, else branch ---

func TestParse_ConditionalElseBranch(t *testing.T) {
	src := `{$IFDEF DEBUG} program T1; begin end. {$ELSE} program T2; begin end. {$ENDIF}`
	root := mustParse(t, src) // DEBUG not predefined
	require.NotNil(t, root.Program)
	assert.Equal(t, "T2", root.Program.Name)
}

func TestParse_ConditionalIfDefTakenWhenPredefined(t *testing.T) {
	src := `{$IFDEF DEBUG} program T1; begin end. {$ELSE} program T2; begin end. {$ENDIF}`
	root, err := Parse(src, "", []string{"DEBUG"})
	require.NoError(t, err)
	assert.Equal(t, "T1", root.Program.Name)
}

// --- Seed scenario 5: include splicing ---

func TestParse_IncludeSplicesConstDecl(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/header.pas", "const K = 42;")
	src := `program P; {$INCLUDE 'header.pas'} begin end.`
	root, err := Parse(src, dir+"/main.pas", nil)
	require.NoError(t, err)
	require.Len(t, root.Program.Block.ConstDecls, 1)
	c := root.Program.Block.ConstDecls[0]
	assert.Equal(t, "K", c.Name)
	lit, ok := c.Value.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.EqualValues(t, 42, lit.IntVal)
}

// --- Seed scenario 6: circular include ---

func TestParse_CircularIncludeIsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/a.pas", "{$INCLUDE 'b.pas'}")
	writeFile(t, dir+"/b.pas", "{$INCLUDE 'a.pas'}")
	src := `program P; {$INCLUDE 'a.pas'} begin end.`
	_, err := Parse(src, dir+"/main.pas", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ircular")
}

func TestParse_IncludeNotFoundIsError(t *testing.T) {
	src := `program P; {$INCLUDE 'missing.pas'} begin end.`
	_, err := Parse(src, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// --- Include idempotence with guard ---

func TestParse_IncludeGuardIdempotent(t *testing.T) {
	dir := t.TempDir()
	guarded := "{$IFNDEF GUARD}{$DEFINE GUARD} const K = 1; {$ENDIF}"
	writeFile(t, dir+"/g.pas", guarded)

	single := `program P; {$INCLUDE 'g.pas'} begin end.`
	rootSingle, err := Parse(single, dir+"/main.pas", nil)
	require.NoError(t, err)

	twice := `program P; {$INCLUDE 'g.pas'} {$INCLUDE 'g.pas'} begin end.`
	rootTwice, err := Parse(twice, dir+"/main.pas", nil)
	require.NoError(t, err)

	assert.Equal(t, len(rootSingle.Program.Block.ConstDecls), len(rootTwice.Program.Block.ConstDecls))
	assert.Len(t, rootTwice.Program.Block.ConstDecls, 1)
}

// --- Boundary behaviours ---

func TestParse_EmptyProgram(t *testing.T) {
	root := mustParse(t, `program X; begin end.`)
	assert.Equal(t, "X", root.Program.Name)
	assert.Empty(t, root.Program.Block.Statements)
	assert.Empty(t, root.Program.Block.ConstDecls)
	assert.Empty(t, root.Program.Block.VarDecls)
	assert.Empty(t, root.Program.Block.TypeDecls)
}

func TestParse_DoubleDerefFieldThenIndex(t *testing.T) {
	root := mustParse(t, `program X; var p: ^integer; begin p^^.field[i]; end.`)
	require.Len(t, root.Program.Block.Statements, 1)
	stmt := root.Program.Block.Statements[0].(*ast.ExprStmt)
	idx, ok := stmt.Expr.(*ast.IndexExpr)
	require.True(t, ok)
	field, ok := idx.Array.(*ast.FieldExpr)
	require.True(t, ok)
	assert.Equal(t, "field", field.Field)
	deref1, ok := field.Record.(*ast.DerefExpr)
	require.True(t, ok)
	deref2, ok := deref1.Pointer.(*ast.DerefExpr)
	require.True(t, ok)
	ident, ok := deref2.Pointer.(*ast.IdentExpr)
	require.True(t, ok)
	assert.Equal(t, "p", ident.Name)
}

// --- Case-insensitivity invariant ---

func TestParse_CaseInsensitiveKeywords(t *testing.T) {
	lower := mustParse(t, `program X; begin end.`)
	upper := mustParse(t, `PROGRAM X; BEGIN END.`)
	assert.Equal(t, lower.Program.Name, upper.Program.Name)
}

// --- Operator precedence ---

func TestParse_OperatorPrecedence(t *testing.T) {
	root := mustParse(t, `program X; const K = 1 + 2 * 3; begin end.`)
	c := root.Program.Block.ConstDecls[0]
	bin, ok := c.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Op)
}

func TestParse_PrecedenceOrAndCompare(t *testing.T) {
	root := mustParse(t, `program X; const K = 1 = 1 AND 2 = 2 OR 3 = 3; begin end.`)
	c := root.Program.Block.ConstDecls[0]
	top, ok := c.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "or", top.Op)
}

// --- Unit parsing ---

func TestParse_Unit(t *testing.T) {
	src := `unit U;
interface
const A = 1;
implementation
var B: integer;
begin
end.`
	root, err := Parse(src, "", nil)
	require.NoError(t, err)
	require.NotNil(t, root.Unit)
	assert.Equal(t, "U", root.Unit.Name)
	require.Len(t, root.Unit.Interface.ConstDecls, 1)
	require.Len(t, root.Unit.Implementation.VarDecls, 1)
}

func TestParse_UnitWithInitFinal(t *testing.T) {
	src := `unit U;
interface
implementation
initialization
  writeln('init');
finalization
  writeln('final');
end.`
	root, err := Parse(src, "", nil)
	require.NoError(t, err)
	require.Len(t, root.Unit.Initialization, 1)
	require.Len(t, root.Unit.Finalization, 1)
}

// --- Declaration/statement coverage ---

func TestParse_VarDeclAbsolute(t *testing.T) {
	root := mustParse(t, `program X; var a: word absolute $4000; begin end.`)
	v := root.Program.Block.VarDecls[0]
	assert.Equal(t, []string{"a"}, v.Names)
	require.NotNil(t, v.AbsoluteAddr)
}

func TestParse_ForwardAndExternal(t *testing.T) {
	src := `program X;
procedure A; forward;
procedure B; external 'libc';
procedure A;
begin
end;
begin
end.`
	root := mustParse(t, src)
	require.Len(t, root.Program.Block.ProcDecls, 3)
	assert.True(t, root.Program.Block.ProcDecls[0].IsForward)
	assert.True(t, root.Program.Block.ProcDecls[1].IsExternal)
	assert.Equal(t, "libc", root.Program.Block.ProcDecls[1].ExternalName)
}

func TestParse_OperatorDecl(t *testing.T) {
	src := `program X;
operator + (a: integer; b: integer): integer;
begin
end;
begin
end.`
	root := mustParse(t, src)
	require.Len(t, root.Program.Block.OperatorDecls, 1)
	op := root.Program.Block.OperatorDecls[0]
	assert.Equal(t, "+", op.Name)
}

func TestParse_ClassWithFieldsMethodsProperties(t *testing.T) {
	src := `program X;
type
  TFoo = class(TObject)
    FValue: integer;
    class var Count: integer;
    function GetValue: integer;
    property Value: integer read GetValue write FValue default 0;
  end;
begin
end.`
	root := mustParse(t, src)
	td := root.Program.Block.TypeDecls[0]
	ct, ok := td.TypeExpr.(*ast.ClassType)
	require.True(t, ok)
	assert.Equal(t, "TObject", ct.Parent)

	var sawField, sawClassVar, sawMethod, sawProperty bool
	for _, m := range ct.Members {
		switch mm := m.(type) {
		case ast.ClassField:
			if mm.IsClassVar {
				sawClassVar = true
			} else {
				sawField = true
			}
		case ast.ClassMethod:
			sawMethod = true
		case ast.ClassProperty:
			sawProperty = true
			assert.Equal(t, "GetValue", mm.ReadAccessor)
			assert.Equal(t, "FValue", mm.WriteAccessor)
			assert.True(t, mm.IsDefault || mm.DefaultExpr != nil)
		}
	}
	assert.True(t, sawField)
	assert.True(t, sawClassVar)
	assert.True(t, sawMethod)
	assert.True(t, sawProperty)
}

func TestParse_GenericTypeParams(t *testing.T) {
	src := `program X;
type
  TList<T: IComparable> = record
    Item: T;
  end;
begin
end.`
	root := mustParse(t, src)
	td := root.Program.Block.TypeDecls[0]
	require.Len(t, td.GenericParams, 1)
	assert.Equal(t, "T", td.GenericParams[0].Name)
	assert.Equal(t, "IComparable", td.GenericParams[0].Constraint)
}

func TestParse_ResourceString(t *testing.T) {
	root := mustParse(t, `program X; resourcestring S = 'hi'; begin end.`)
	require.Len(t, root.Program.Block.ConstDecls, 1)
	assert.True(t, root.Program.Block.ConstDecls[0].IsResourceString)
}

func TestParse_StatementsControlFlow(t *testing.T) {
	src := `program X;
var i: integer;
begin
  if i = 1 then i := 2 else i := 3;
  while i < 10 do i := i + 1;
  repeat i := i - 1 until i = 0;
  for i := 1 to 10 do i := i;
  for i := 10 downto 1 do i := i;
  case i of
    1: i := 1;
    2, 3: i := 2;
  else
    i := 0;
  end;
  with i do i := i;
  try
    i := 1;
  except
    i := 2;
  end;
  try
    i := 1;
  finally
    i := 2;
  end;
  raise;
end.`
	root := mustParse(t, src)
	stmts := root.Program.Block.Statements
	assert.IsType(t, &ast.IfStmt{}, stmts[0])
	assert.IsType(t, &ast.WhileStmt{}, stmts[1])
	assert.IsType(t, &ast.RepeatStmt{}, stmts[2])
	assert.IsType(t, &ast.ForStmt{}, stmts[3])
	assert.IsType(t, &ast.ForStmt{}, stmts[4])
	assert.IsType(t, &ast.CaseStmt{}, stmts[5])
	assert.IsType(t, &ast.WithStmt{}, stmts[6])
	assert.IsType(t, &ast.TryStmt{}, stmts[7])
	assert.IsType(t, &ast.TryStmt{}, stmts[8])
	assert.IsType(t, &ast.RaiseStmt{}, stmts[9])
}

func TestParse_LabelAndGoto(t *testing.T) {
	src := `program X;
label 1;
begin
  goto 1;
  1: writeln('here');
end.`
	root := mustParse(t, src)
	require.Len(t, root.Program.Block.LabelDecls, 1)
	assert.IsType(t, &ast.GotoStmt{}, root.Program.Block.Statements[0])
	assert.IsType(t, &ast.LabelledStmt{}, root.Program.Block.Statements[1])
}

func TestParse_InheritedCall(t *testing.T) {
	src := `program X;
procedure TFoo.Bar;
begin
  inherited Bar();
end;
begin
end.`
	root := mustParse(t, src)
	proc := root.Program.Block.ProcDecls[0]
	inh, ok := proc.Block.Statements[0].(*ast.InheritedStmt)
	require.True(t, ok)
	require.NotNil(t, inh.Call)
	assert.Equal(t, "Bar", inh.Call.Name)
}

// --- Error taxonomy ---

func TestParse_UnmatchedIfDefIsError(t *testing.T) {
	_, err := Parse(`{$IFDEF X} program P; begin end.`, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unmatched IFDEF")
}

func TestParse_UnmatchedEndIfIsError(t *testing.T) {
	_, err := Parse(`{$ENDIF} program P; begin end.`, "", nil)
	require.Error(t, err)
}

func TestParse_UnexpectedTokenIsInvalidSyntax(t *testing.T) {
	_, err := Parse(`program P begin end.`, "", nil) // missing ';'
	require.Error(t, err)
	perr, ok := err.(*ParserError)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidSyntax, perr.Code)
}

func TestParse_UnexpectedEOFReportsCode(t *testing.T) {
	_, err := Parse(`program P;`, "", nil)
	require.Error(t, err)
	perr, ok := err.(*ParserError)
	require.True(t, ok)
	assert.Equal(t, ErrUnexpectedEOF, perr.Code)
}

func TestParse_MissingUnitStartKeywordIsError(t *testing.T) {
	_, err := Parse(`const K = 1;`, "", nil)
	require.Error(t, err)
}

// --- Span invariants ---

func TestParse_RootSpanCoversWholeProgram(t *testing.T) {
	root := mustParse(t, `program X; begin end.`)
	span := root.Span()
	assert.Equal(t, 0, span.Start)
	assert.Equal(t, len(`program X; begin end.`), span.End)
}

func TestParse_SearchPathsOption(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/inc.pas", "const Z = 7;")
	src := `program P; {$INCLUDE 'inc.pas'} begin end.`
	root, err := Parse(src, "", nil, WithSearchPaths([]string{dir}))
	require.NoError(t, err)
	require.Len(t, root.Program.Block.ConstDecls, 1)
	assert.Equal(t, "Z", root.Program.Block.ConstDecls[0].Name)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
