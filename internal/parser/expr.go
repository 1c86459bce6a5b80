package parser

import (
	"github.com/casibbald/SuperPascal/internal/ast"
	"github.com/casibbald/SuperPascal/internal/lexer"
)

// parseExpression implements precedence-climbing: OR binds loosest, then
// AND, then the comparison operators, then +/-, then */DIV/MOD, with unary
// +/-/NOT binding tighter than any binary operator (§4.7).
func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec := lexer.Precedence(p.cur.Type)
		if prec == lexer.LOWEST || prec < minPrec {
			break
		}
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Op:      opTok.Type.String(),
			Left:    left,
			Right:   right,
			SpanVal: left.Span().Merge(right.Span()),
		}
	}
	return left, nil
}

// parseUnary handles the prefix operators, then falls through to a primary
// expression and its postfix chain.
func (p *Parser) parseUnary() (ast.Expression, error) {
	switch p.cur.Type {
	case lexer.PLUS, lexer.MINUS, lexer.NOT:
		opTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: opTok.Type.String(), Expr: operand, SpanVal: opTok.Span.Merge(operand.Span())}, nil
	default:
		primary, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return p.parsePostfix(primary)
	}
}

// parsePrimary parses a literal, parenthesised expression, or identifier
// (optionally followed directly by a call's argument list).
func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.cur.Type {
	case lexer.INT:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.LiteralExpr{Kind: ast.IntLiteral, IntVal: uint16(tok.IntValue), IsHex: tok.IsHex, SpanVal: tok.Span}, nil
	case lexer.CHAR:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.LiteralExpr{Kind: ast.CharLiteralKind, CharVal: tok.CharValue, SpanVal: tok.Span}, nil
	case lexer.STRING:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.LiteralExpr{Kind: ast.StringLiteralKind, StrVal: tok.Literal, SpanVal: tok.Span}, nil
	case lexer.TRUE, lexer.FALSE:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.LiteralExpr{Kind: ast.BoolLiteral, BoolVal: tok.Type == lexer.TRUE, SpanVal: tok.Span}, nil
	case lexer.NIL:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.LiteralExpr{Kind: ast.NilLiteral, SpanVal: tok.Span}, nil
	case lexer.LPAREN:
		start := p.cur.Span
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression(lexer.LOWEST)
		if err != nil {
			return nil, err
		}
		endTok, err := p.expect(lexer.RPAREN, "')'")
		if err != nil {
			return nil, err
		}
		_ = start.Merge(endTok.Span)
		return inner, nil
	case lexer.IDENT, lexer.INTEGER, lexer.BOOLEAN, lexer.CHARKW, lexer.BYTE, lexer.WORD:
		tok := p.cur
		name := tok.Literal
		if tok.Type != lexer.IDENT {
			name = tok.Type.String()
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.LPAREN {
			return p.parseCallArgs(tok, name)
		}
		return &ast.IdentExpr{Name: name, SpanVal: tok.Span}, nil
	case lexer.EOF:
		return nil, unexpectedEOF(p.cur.Span, "expression")
	default:
		return nil, invalidSyntax(p.cur.Span, "Expected expression, found %q", p.cur.Literal)
	}
}

// parseCallArgs parses the `( args )` of a call expression whose name token
// has already been consumed.
func (p *Parser) parseCallArgs(nameTok lexer.Token, name string) (ast.Expression, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if p.cur.Type != lexer.RPAREN {
		for {
			arg, err := p.parseExpression(lexer.LOWEST)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.Type == lexer.COMMA {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	endTok, err := p.expect(lexer.RPAREN, "')'")
	if err != nil {
		return nil, err
	}
	return &ast.CallExpr{Name: name, Args: args, SpanVal: nameTok.Span.Merge(endTok.Span)}, nil
}

// parsePostfix applies zero or more trailing index/field/deref operations,
// in whatever order they appear, to expr.
func (p *Parser) parsePostfix(expr ast.Expression) (ast.Expression, error) {
	for {
		switch p.cur.Type {
		case lexer.LBRACKET:
			if err := p.advance(); err != nil {
				return nil, err
			}
			index, err := p.parseExpression(lexer.LOWEST)
			if err != nil {
				return nil, err
			}
			endTok, err := p.expect(lexer.RBRACKET, "']'")
			if err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Array: expr, Index: index, SpanVal: expr.Span().Merge(endTok.Span)}
		case lexer.DOT:
			if err := p.advance(); err != nil {
				return nil, err
			}
			fieldTok, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			expr = &ast.FieldExpr{Record: expr, Field: fieldTok.Literal, SpanVal: expr.Span().Merge(fieldTok.Span)}
		case lexer.CARET:
			tok := p.cur
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr = &ast.DerefExpr{Pointer: expr, SpanVal: expr.Span().Merge(tok.Span)}
		default:
			return expr, nil
		}
	}
}
