package parser

import (
	"github.com/casibbald/SuperPascal/internal/ast"
	"github.com/casibbald/SuperPascal/internal/lexer"
)

// parseStatement dispatches on the current token to one of the statement
// productions in §4.5. Statements are separated by an optional ';' —
// parseStatementList is what actually enforces the list shape; this only
// parses one.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Type {
	case lexer.BEGIN:
		return p.parseCompound()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.REPEAT:
		return p.parseRepeat()
	case lexer.FOR:
		return p.parseFor()
	case lexer.CASE:
		return p.parseCase()
	case lexer.WITH:
		return p.parseWith()
	case lexer.GOTO:
		return p.parseGoto()
	case lexer.TRY:
		return p.parseTry()
	case lexer.RAISE:
		return p.parseRaise()
	case lexer.INHERITED:
		return p.parseInherited()
	default:
		if (p.cur.Type == lexer.IDENT || p.cur.Type == lexer.INT) && p.peek.Type == lexer.COLON {
			return p.parseLabelled()
		}
		return p.parseSimpleStatement()
	}
}

// parseStatementList parses statements up to and including terminator,
// with a fully optional ';' between them (and before the terminator).
func (p *Parser) parseStatementList(terminator lexer.TokenType) ([]ast.Statement, lexer.Token, error) {
	var stmts []ast.Statement
	for p.cur.Type != terminator {
		if p.cur.Type == lexer.EOF {
			return nil, lexer.Token{}, unexpectedEOF(p.cur.Span, terminator.String())
		}
		if p.cur.Type == lexer.SEMICOLON {
			if err := p.advance(); err != nil {
				return nil, lexer.Token{}, err
			}
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, lexer.Token{}, err
		}
		stmts = append(stmts, stmt)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, lexer.Token{}, err
	}
	return stmts, tok, nil
}

// parseStatementsUntilAny parses statements up to (but not consuming) the
// first of several possible terminators, for constructs like TRY where
// which terminator is reached determines the following grammar (EXCEPT vs
// FINALLY).
func (p *Parser) parseStatementsUntilAny(terminators ...lexer.TokenType) ([]ast.Statement, lexer.TokenType, error) {
	var stmts []ast.Statement
	for {
		for _, t := range terminators {
			if p.cur.Type == t {
				return stmts, t, nil
			}
		}
		if p.cur.Type == lexer.EOF {
			return nil, 0, unexpectedEOF(p.cur.Span, "end of statement block")
		}
		if p.cur.Type == lexer.SEMICOLON {
			if err := p.advance(); err != nil {
				return nil, 0, err
			}
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, 0, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) parseCompound() (ast.Statement, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	stmts, endTok, err := p.parseStatementList(lexer.END)
	if err != nil {
		return nil, err
	}
	return &ast.CompoundStmt{Statements: stmts, SpanVal: start.Merge(endTok.Span)}, nil
}

func (p *Parser) parseSimpleStatement() (ast.Statement, error) {
	expr, err := p.parseExpression(lexer.LOWEST)
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.ASSIGN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(lexer.LOWEST)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Target: expr, Value: value, SpanVal: expr.Span().Merge(value.Span())}, nil
	}
	return &ast.ExprStmt{Expr: expr, SpanVal: expr.Span()}, nil
}

func (p *Parser) parseLabelled() (ast.Statement, error) {
	labelTok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON, "':'"); err != nil {
		return nil, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.LabelledStmt{Label: labelTok.Literal, Stmt: stmt, SpanVal: labelTok.Span.Merge(stmt.Span())}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(lexer.LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.THEN, "'then'"); err != nil {
		return nil, err
	}
	thenStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	span := start.Merge(thenStmt.Span())
	var elseStmt ast.Statement
	if p.cur.Type == lexer.ELSE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseStmt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
		span = start.Merge(elseStmt.Span())
	}
	return &ast.IfStmt{Cond: cond, Then: thenStmt, Else: elseStmt, SpanVal: span}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(lexer.LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DO, "'do'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, SpanVal: start.Merge(body.Span())}, nil
}

func (p *Parser) parseRepeat() (ast.Statement, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	stmts, _, err := p.parseStatementList(lexer.UNTIL)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(lexer.LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.RepeatStmt{Body: stmts, Cond: cond, SpanVal: start.Merge(cond.Span())}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	varTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN, "':='"); err != nil {
		return nil, err
	}
	startExpr, err := p.parseExpression(lexer.LOWEST)
	if err != nil {
		return nil, err
	}
	downTo := false
	switch p.cur.Type {
	case lexer.TO:
		if err := p.advance(); err != nil {
			return nil, err
		}
	case lexer.DOWNTO:
		downTo = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	case lexer.EOF:
		return nil, unexpectedEOF(p.cur.Span, "'to' or 'downto'")
	default:
		return nil, invalidSyntax(p.cur.Span, "Expected 'to' or 'downto', found %q", p.cur.Literal)
	}
	endExpr, err := p.parseExpression(lexer.LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DO, "'do'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Var: varTok.Literal, Start: startExpr, End: endExpr, DownTo: downTo, Body: body, SpanVal: start.Merge(body.Span())}, nil
}

func (p *Parser) parseCase() (ast.Statement, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	selector, err := p.parseExpression(lexer.LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.OF, "'of'"); err != nil {
		return nil, err
	}

	var branches []*ast.CaseBranch
	var elseStmts []ast.Statement
	var endSpan lexer.Span
caseLoop:
	for {
		switch p.cur.Type {
		case lexer.END:
			endSpan = p.cur.Span
			if err := p.advance(); err != nil {
				return nil, err
			}
			break caseLoop
		case lexer.ELSE:
			if err := p.advance(); err != nil {
				return nil, err
			}
			stmts, endTok, err := p.parseStatementList(lexer.END)
			if err != nil {
				return nil, err
			}
			elseStmts = stmts
			endSpan = endTok.Span
			break caseLoop
		case lexer.EOF:
			return nil, unexpectedEOF(p.cur.Span, "'end'")
		default:
			branchStart := p.cur.Span
			values, err := p.parseCaseValues()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COLON, "':'"); err != nil {
				return nil, err
			}
			body, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			branches = append(branches, &ast.CaseBranch{Values: values, Body: body, SpanVal: branchStart.Merge(body.Span())})
			if p.cur.Type == lexer.SEMICOLON {
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
		}
	}
	return &ast.CaseStmt{Selector: selector, Branches: branches, Else: elseStmts, SpanVal: start.Merge(endSpan)}, nil
}

func (p *Parser) parseCaseValues() ([]ast.Expression, error) {
	var values []ast.Expression
	for {
		v, err := p.parseCaseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return values, nil
}

func (p *Parser) parseCaseValue() (ast.Expression, error) {
	v, err := p.parseExpression(lexer.LOWEST)
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.DOTDOT {
		if err := p.advance(); err != nil {
			return nil, err
		}
		hi, err := p.parseExpression(lexer.LOWEST)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: "..", Left: v, Right: hi, SpanVal: v.Span().Merge(hi.Span())}, nil
	}
	return v, nil
}

func (p *Parser) parseWith() (ast.Statement, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	target, err := p.parseExpression(lexer.LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DO, "'do'"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WithStmt{Target: target, Body: body, SpanVal: start.Merge(body.Span())}, nil
}

func (p *Parser) parseGoto() (ast.Statement, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	labelTok, err := p.parseLabelName()
	if err != nil {
		return nil, err
	}
	endTok, err := p.expect(lexer.SEMICOLON, "';'")
	if err != nil {
		return nil, err
	}
	return &ast.GotoStmt{Label: labelTok.Literal, SpanVal: start.Merge(endTok.Span)}, nil
}

func (p *Parser) parseTry() (ast.Statement, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	body, which, err := p.parseStatementsUntilAny(lexer.EXCEPT, lexer.FINALLY)
	if err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	stmts, endTok, err := p.parseStatementList(lexer.END)
	if err != nil {
		return nil, err
	}
	if which == lexer.EXCEPT {
		return &ast.TryStmt{Body: body, Except: stmts, SpanVal: start.Merge(endTok.Span)}, nil
	}
	return &ast.TryStmt{Body: body, Finally: stmts, SpanVal: start.Merge(endTok.Span)}, nil
}

func (p *Parser) parseRaise() (ast.Statement, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.SEMICOLON || p.cur.Type == lexer.END {
		return &ast.RaiseStmt{SpanVal: start}, nil
	}
	expr, err := p.parseExpression(lexer.LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.RaiseStmt{Expr: expr, SpanVal: start.Merge(expr.Span())}, nil
}

func (p *Parser) parseInherited() (ast.Statement, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.IDENT {
		return &ast.InheritedStmt{SpanVal: start}, nil
	}
	expr, err := p.parseExpression(lexer.LOWEST)
	if err != nil {
		return nil, err
	}
	switch e := expr.(type) {
	case *ast.CallExpr:
		return &ast.InheritedStmt{Call: e, SpanVal: start.Merge(e.Span())}, nil
	case *ast.IdentExpr:
		call := &ast.CallExpr{Name: e.Name, SpanVal: e.SpanVal}
		return &ast.InheritedStmt{Call: call, SpanVal: start.Merge(e.Span())}, nil
	default:
		return nil, invalidSyntax(expr.Span(), "Expected method call after 'inherited'")
	}
}
