package parser

import (
	"github.com/casibbald/SuperPascal/internal/ast"
	"github.com/casibbald/SuperPascal/internal/lexer"
)

// parseLabelSection parses `LABEL l1, l2, ...;`. Labels may be identifiers
// or bare integer literals.
func (p *Parser) parseLabelSection(block *ast.Block) error {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return err
	}
	var labels []string
	for {
		tok, err := p.parseLabelName()
		if err != nil {
			return err
		}
		labels = append(labels, tok.Literal)
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	endTok, err := p.expect(lexer.SEMICOLON, "';'")
	if err != nil {
		return err
	}
	block.LabelDecls = append(block.LabelDecls, &ast.LabelDecl{Labels: labels, SpanVal: start.Merge(endTok.Span)})
	return nil
}

func (p *Parser) parseLabelName() (lexer.Token, error) {
	if p.cur.Type == lexer.IDENT || p.cur.Type == lexer.INT {
		t := p.cur
		if err := p.advance(); err != nil {
			return lexer.Token{}, err
		}
		return t, nil
	}
	if p.cur.Type == lexer.EOF {
		return lexer.Token{}, unexpectedEOF(p.cur.Span, "label")
	}
	return lexer.Token{}, invalidSyntax(p.cur.Span, "Expected label, found %q", p.cur.Literal)
}

// parseConstSection parses one or more `name = expr;` entries following
// CONST or RESOURCESTRING.
func (p *Parser) parseConstSection(block *ast.Block, isResourceString bool) error {
	if err := p.advance(); err != nil {
		return err
	}
	for p.cur.Type == lexer.IDENT {
		start := p.cur.Span
		nameTok := p.cur
		if err := p.advance(); err != nil {
			return err
		}
		if _, err := p.expect(lexer.EQ, "'='"); err != nil {
			return err
		}
		value, err := p.parseExpression(lexer.LOWEST)
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
			return err
		}
		block.ConstDecls = append(block.ConstDecls, &ast.ConstDecl{
			Name:             nameTok.Literal,
			Value:            value,
			IsResourceString: isResourceString,
			SpanVal:          start.Merge(value.Span()),
		})
	}
	return nil
}

// parseTypeSection parses one or more `name ['<' generics '>'] =
// type_expr;` entries following TYPE.
func (p *Parser) parseTypeSection(block *ast.Block) error {
	if err := p.advance(); err != nil {
		return err
	}
	for p.cur.Type == lexer.IDENT {
		start := p.cur.Span
		nameTok := p.cur
		if err := p.advance(); err != nil {
			return err
		}
		generics, err := p.parseGenericParamsOpt()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.EQ, "'='"); err != nil {
			return err
		}
		typeExpr, err := p.parseTypeExpr()
		if err != nil {
			return err
		}
		if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
			return err
		}
		block.TypeDecls = append(block.TypeDecls, &ast.TypeDecl{
			Name:          nameTok.Literal,
			GenericParams: generics,
			TypeExpr:      typeExpr,
			SpanVal:       start.Merge(typeExpr.Span()),
		})
	}
	return nil
}

// parseGenericParamsOpt parses an optional `<Name [: Constraint] {, ...}>`
// list, returning nil if none is present.
func (p *Parser) parseGenericParamsOpt() ([]*ast.GenericParam, error) {
	if p.cur.Type != lexer.LT {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var params []*ast.GenericParam
	for {
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		constraint := ""
		span := nameTok.Span
		if p.cur.Type == lexer.COLON {
			if err := p.advance(); err != nil {
				return nil, err
			}
			constraintTok, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			constraint = constraintTok.Literal
			span = span.Merge(constraintTok.Span)
		}
		params = append(params, &ast.GenericParam{Name: nameTok.Literal, Constraint: constraint, SpanVal: span})
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.GT, "'>'"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseVarSection parses one or more `name {, name} : type [ABSOLUTE
// expr];` entries following VAR or THREADVAR into dst.
func (p *Parser) parseVarSection(dst *[]*ast.VarDecl) error {
	if err := p.advance(); err != nil {
		return err
	}
	for p.cur.Type == lexer.IDENT {
		decl, err := p.parseVarDecl()
		if err != nil {
			return err
		}
		*dst = append(*dst, decl)
	}
	return nil
}

func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	start := p.cur.Span
	names, err := p.parseNameList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON, "':'"); err != nil {
		return nil, err
	}
	typeExpr, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	var absolute ast.Expression
	span := start.Merge(typeExpr.Span())
	if p.cur.Type == lexer.ABSOLUTE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		absolute, err = p.parseExpression(lexer.LOWEST)
		if err != nil {
			return nil, err
		}
		span = start.Merge(absolute.Span())
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Names: names, TypeExpr: typeExpr, AbsoluteAddr: absolute, SpanVal: span}, nil
}

// parseNameList parses `name {, name}`.
func (p *Parser) parseNameList() ([]string, error) {
	var names []string
	for {
		tok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, tok.Literal)
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return names, nil
}
