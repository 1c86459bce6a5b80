package parser

import (
	"strings"

	"github.com/casibbald/SuperPascal/internal/ast"
	"github.com/casibbald/SuperPascal/internal/lexer"
)

// parseTypeExpr parses one type expression: a pointer, array, record,
// class, or named type (including a primitive-type keyword, re-wrapped as
// a NamedType per the design note unifying built-in and user-defined type
// references).
func (p *Parser) parseTypeExpr() (ast.TypeExpr, error) {
	switch p.cur.Type {
	case lexer.CARET:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		base, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		return &ast.PointerType{Base: base, SpanVal: tok.Span.Merge(base.Span())}, nil
	case lexer.ARRAY:
		return p.parseArrayType()
	case lexer.RECORD:
		return p.parseRecordType()
	case lexer.CLASS:
		return p.parseClassType()
	case lexer.INTEGER, lexer.BOOLEAN, lexer.CHARKW, lexer.BYTE, lexer.WORD:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.NamedType{Name: tok.Type.String(), SpanVal: tok.Span}, nil
	case lexer.IDENT:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.NamedType{Name: tok.Literal, SpanVal: tok.Span}, nil
	case lexer.EOF:
		return nil, unexpectedEOF(p.cur.Span, "type")
	default:
		return nil, invalidSyntax(p.cur.Span, "Expected type, found %q", p.cur.Literal)
	}
}

func (p *Parser) parseArrayType() (ast.TypeExpr, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACKET, "'['"); err != nil {
		return nil, err
	}
	index, err := p.parseArrayIndexType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.OF, "'of'"); err != nil {
		return nil, err
	}
	elem, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ArrayType{Index: index, Element: elem, SpanVal: start.Merge(elem.Span())}, nil
}

// parseArrayIndexType parses an array's index clause: a type name, or an
// integer subrange (`lo..hi`). The AST has no subrange type node, so a
// subrange is retained as a NamedType whose Name is its literal text
// ("0..255") — adequate for a frontend that doesn't resolve array bounds.
func (p *Parser) parseArrayIndexType() (ast.TypeExpr, error) {
	if p.cur.Type == lexer.INT {
		start := p.cur.Span
		loTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.DOTDOT {
			if err := p.advance(); err != nil {
				return nil, err
			}
			hiTok, err := p.expect(lexer.INT, "integer")
			if err != nil {
				return nil, err
			}
			return &ast.NamedType{Name: loTok.Literal + ".." + hiTok.Literal, SpanVal: start.Merge(hiTok.Span)}, nil
		}
		return &ast.NamedType{Name: loTok.Literal, SpanVal: loTok.Span}, nil
	}
	return p.parseTypeExpr()
}

func (p *Parser) parseRecordType() (ast.TypeExpr, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	var fields []*ast.FieldDecl
	for p.cur.Type != lexer.END {
		if p.cur.Type == lexer.EOF {
			return nil, unexpectedEOF(p.cur.Span, "'end'")
		}
		fieldStart := p.cur.Span
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
		fields = append(fields, &ast.FieldDecl{Names: names, TypeExpr: typeExpr, SpanVal: fieldStart.Merge(typeExpr.Span())})
		if p.cur.Type == lexer.SEMICOLON {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	endTok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.RecordType{Fields: fields, SpanVal: start.Merge(endTok.Span)}, nil
}

// parseClassType parses `CLASS [(parent)] member... END`. Visibility
// markers (private/public/protected/published) are not reserved words in
// this grammar; they are recognised heuristically as a bare identifier
// that isn't itself a field name, and skipped, since the class-member
// model carries no visibility tag.
func (p *Parser) parseClassType() (ast.TypeExpr, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	parent := ""
	if p.cur.Type == lexer.LPAREN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		parentTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		parent = parentTok.Literal
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
	}

	var members []ast.ClassMember
	for p.cur.Type != lexer.END {
		if p.cur.Type == lexer.EOF {
			return nil, unexpectedEOF(p.cur.Span, "'end'")
		}
		if p.isVisibilityMarker() {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		more, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		members = append(members, more...)
	}
	endTok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.ClassType{Parent: parent, Members: members, SpanVal: start.Merge(endTok.Span)}, nil
}

func (p *Parser) parseClassMember() ([]ast.ClassMember, error) {
	switch p.cur.Type {
	case lexer.PROCEDURE, lexer.FUNCTION:
		node, err := p.parseProcOrFunc()
		if err != nil {
			return nil, err
		}
		return []ast.ClassMember{classMethodOf(node)}, nil
	case lexer.PROPERTY:
		prop, err := p.parsePropertyDecl(false)
		if err != nil {
			return nil, err
		}
		return []ast.ClassMember{ast.ClassProperty{PropertyDecl: prop}}, nil
	case lexer.CLASS:
		switch p.peek.Type {
		case lexer.PROCEDURE, lexer.FUNCTION:
			node, err := p.parseProcOrFunc()
			if err != nil {
				return nil, err
			}
			return []ast.ClassMember{classMethodOf(node)}, nil
		case lexer.PROPERTY:
			if err := p.advance(); err != nil {
				return nil, err
			}
			prop, err := p.parsePropertyDecl(true)
			if err != nil {
				return nil, err
			}
			return []ast.ClassMember{ast.ClassProperty{PropertyDecl: prop}}, nil
		case lexer.VAR:
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			return p.parseClassFieldGroup(true)
		default:
			return nil, invalidSyntax(p.peek.Span, "Expected procedure, function, property, or var after 'class', found %q", p.peek.Literal)
		}
	case lexer.VAR:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parseClassFieldGroup(false)
	default:
		return p.parseClassFieldGroup(false)
	}
}

func classMethodOf(node ast.Node) ast.ClassMember {
	switch n := node.(type) {
	case *ast.FuncDecl:
		return ast.ClassMethod{Func: n}
	case *ast.ProcDecl:
		return ast.ClassMethod{Proc: n}
	default:
		return nil
	}
}

// parseClassFieldGroup parses one `name_list : type;` field entry.
// isClassVar marks a field introduced by `CLASS VAR` rather than plain
// `VAR`, associating it with the class itself rather than each instance.
func (p *Parser) parseClassFieldGroup(isClassVar bool) ([]ast.ClassMember, error) {
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
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	fd := &ast.FieldDecl{Names: names, TypeExpr: typeExpr, IsClassVar: isClassVar, SpanVal: start.Merge(typeExpr.Span())}
	return []ast.ClassMember{ast.ClassField{FieldDecl: fd}}, nil
}

func (p *Parser) isVisibilityMarker() bool {
	if p.cur.Type != lexer.IDENT {
		return false
	}
	switch strings.ToUpper(p.cur.Literal) {
	case "PRIVATE", "PROTECTED", "PUBLIC", "PUBLISHED":
		return p.peek.Type != lexer.COLON && p.peek.Type != lexer.COMMA
	}
	return false
}

// parsePropertyDecl parses:
//
//	PROPERTY name [ '[' index_params ']' ] [: type]
//	  [READ ident] [WRITE ident] [INDEX expr] [DEFAULT [expr]] [STORED expr];
func (p *Parser) parsePropertyDecl(isClassProperty bool) (*ast.PropertyDecl, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var indexParams []*ast.Param
	if p.cur.Type == lexer.LBRACKET {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			param, err := p.parseParamGroup()
			if err != nil {
				return nil, err
			}
			indexParams = append(indexParams, param)
			if p.cur.Type == lexer.SEMICOLON {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
			return nil, err
		}
	}

	var typeExpr ast.TypeExpr
	if p.cur.Type == lexer.COLON {
		if err := p.advance(); err != nil {
			return nil, err
		}
		typeExpr, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}

	prop := &ast.PropertyDecl{Name: nameTok.Literal, IndexParams: indexParams, TypeExpr: typeExpr, IsClassProperty: isClassProperty}

propLoop:
	for {
		switch p.cur.Type {
		case lexer.READ:
			if err := p.advance(); err != nil {
				return nil, err
			}
			tok, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			prop.ReadAccessor = tok.Literal
		case lexer.WRITE:
			if err := p.advance(); err != nil {
				return nil, err
			}
			tok, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			prop.WriteAccessor = tok.Literal
		case lexer.INDEX:
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr, err := p.parseExpression(lexer.LOWEST)
			if err != nil {
				return nil, err
			}
			prop.IndexExpr = expr
		case lexer.DEFAULT:
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.Type == lexer.SEMICOLON {
				prop.IsDefault = true
			} else {
				expr, err := p.parseExpression(lexer.LOWEST)
				if err != nil {
					return nil, err
				}
				prop.DefaultExpr = expr
			}
		case lexer.STORED:
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr, err := p.parseExpression(lexer.LOWEST)
			if err != nil {
				return nil, err
			}
			prop.StoredExpr = expr
		default:
			break propLoop
		}
	}

	endTok, err := p.expect(lexer.SEMICOLON, "';'")
	if err != nil {
		return nil, err
	}
	prop.SpanVal = start.Merge(endTok.Span)
	return prop, nil
}
