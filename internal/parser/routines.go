package parser

import (
	"github.com/casibbald/SuperPascal/internal/ast"
	"github.com/casibbald/SuperPascal/internal/lexer"
)

// parseRoutineDecl parses one PROCEDURE, FUNCTION, or (CLASS-prefixed)
// method header and appends it to the appropriate slice of block.
func (p *Parser) parseRoutineDecl(block *ast.Block) error {
	if p.cur.Type == lexer.OPERATOR {
		op, err := p.parseOperatorDecl()
		if err != nil {
			return err
		}
		block.OperatorDecls = append(block.OperatorDecls, op)
		return nil
	}
	node, err := p.parseProcOrFunc()
	if err != nil {
		return err
	}
	switch n := node.(type) {
	case *ast.ProcDecl:
		block.ProcDecls = append(block.ProcDecls, n)
	case *ast.FuncDecl:
		block.FuncDecls = append(block.FuncDecls, n)
	}
	return nil
}

// parseProcOrFunc parses `[CLASS] (PROCEDURE|FUNCTION) [ClassName.]name
// ['<' generics '>'] ['(' params ')'] [: returnType] ;` followed by
// whatever resolves the body per the nested-routine lookahead in §4.5, and
// returns a *ast.ProcDecl or *ast.FuncDecl.
func (p *Parser) parseProcOrFunc() (ast.Node, error) {
	start := p.cur.Span
	isClassMethod := false
	if p.cur.Type == lexer.CLASS {
		isClassMethod = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	isFunc := p.cur.Type == lexer.FUNCTION
	if err := p.advance(); err != nil {
		return nil, err
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	name := nameTok.Literal
	className := ""
	if p.cur.Type == lexer.DOT {
		if err := p.advance(); err != nil {
			return nil, err
		}
		methodTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		className = name
		name = methodTok.Literal
	}

	generics, err := p.parseGenericParamsOpt()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamListOpt()
	if err != nil {
		return nil, err
	}

	var returnType ast.TypeExpr
	if isFunc {
		if _, err := p.expect(lexer.COLON, "':'"); err != nil {
			return nil, err
		}
		returnType, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}
	headerSemi, err := p.expect(lexer.SEMICOLON, "';'")
	if err != nil {
		return nil, err
	}

	routine := ast.RoutineDecl{
		Name:          name,
		ClassName:     className,
		GenericParams: generics,
		Params:        params,
		IsClassMethod: isClassMethod,
	}
	endSpan, err := p.finishRoutineBody(&routine, headerSemi.Span)
	if err != nil {
		return nil, err
	}
	routine.SpanVal = start.Merge(endSpan)

	if isFunc {
		return &ast.FuncDecl{RoutineDecl: routine, ReturnType: returnType}, nil
	}
	return &ast.ProcDecl{RoutineDecl: routine}, nil
}

// finishRoutineBody looks one token past a routine header's trailing ';'
// and resolves it per §4.5: FORWARD and EXTERNAL are explicit, BEGIN or any
// declaration-section keyword starts a body (recursing into parseBlock,
// which itself parses nested declarations before its own BEGIN...END), and
// anything else is an implicit forward — the common shape of a method
// header inside a class or interface section with the body supplied
// elsewhere. fallback is returned unchanged when no further token is
// consumed (the implicit-forward case).
func (p *Parser) finishRoutineBody(r *ast.RoutineDecl, fallback lexer.Span) (lexer.Span, error) {
	switch p.cur.Type {
	case lexer.FORWARD:
		if err := p.advance(); err != nil {
			return lexer.Span{}, err
		}
		semi, err := p.expect(lexer.SEMICOLON, "';'")
		if err != nil {
			return lexer.Span{}, err
		}
		r.IsForward = true
		return semi.Span, nil
	case lexer.EXTERNAL:
		if err := p.advance(); err != nil {
			return lexer.Span{}, err
		}
		r.IsExternal = true
		if p.cur.Type == lexer.STRING || p.cur.Type == lexer.IDENT {
			r.ExternalName = p.cur.Literal
			if err := p.advance(); err != nil {
				return lexer.Span{}, err
			}
		}
		semi, err := p.expect(lexer.SEMICOLON, "';'")
		if err != nil {
			return lexer.Span{}, err
		}
		return semi.Span, nil
	case lexer.BEGIN, lexer.LABEL, lexer.CONST, lexer.RESOURCESTRING, lexer.TYPE, lexer.VAR,
		lexer.THREADVAR, lexer.OPERATOR, lexer.PROCEDURE, lexer.FUNCTION:
		block, err := p.parseBlock()
		if err != nil {
			return lexer.Span{}, err
		}
		semi, err := p.expect(lexer.SEMICOLON, "';'")
		if err != nil {
			return lexer.Span{}, err
		}
		r.Block = block
		return semi.Span, nil
	default:
		r.IsForward = true
		return fallback, nil
	}
}

var operatorSymbolTypes = map[lexer.TokenType]bool{
	lexer.PLUS: true, lexer.MINUS: true, lexer.ASTERISK: true, lexer.SLASH: true,
	lexer.EQ: true, lexer.NEQ: true, lexer.LT: true, lexer.LE: true,
	lexer.GT: true, lexer.GE: true, lexer.DOT: true, lexer.CARET: true,
}

// parseOperatorDecl parses `OPERATOR (symbol|name) ['<' generics '>']
// ['(' params ')'] : returnType ;` followed by the same body resolution as
// a procedure or function.
func (p *Parser) parseOperatorDecl() (*ast.OperatorDecl, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok := p.cur
	if nameTok.Type != lexer.IDENT && !operatorSymbolTypes[nameTok.Type] {
		if nameTok.Type == lexer.EOF {
			return nil, unexpectedEOF(nameTok.Span, "operator symbol or identifier")
		}
		return nil, invalidSyntax(nameTok.Span, "Expected operator symbol or identifier, found %q", nameTok.Literal)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	name := nameTok.Literal
	if nameTok.Type != lexer.IDENT {
		name = nameTok.Type.String()
	}

	generics, err := p.parseGenericParamsOpt()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamListOpt()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON, "':'"); err != nil {
		return nil, err
	}
	returnType, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	headerSemi, err := p.expect(lexer.SEMICOLON, "';'")
	if err != nil {
		return nil, err
	}

	routine := ast.RoutineDecl{Name: name, GenericParams: generics, Params: params}
	endSpan, err := p.finishRoutineBody(&routine, headerSemi.Span)
	if err != nil {
		return nil, err
	}
	routine.SpanVal = start.Merge(endSpan)
	return &ast.OperatorDecl{RoutineDecl: routine, ReturnType: returnType}, nil
}

// parseParamListOpt parses an optional `(param_group {; param_group})`.
func (p *Parser) parseParamListOpt() ([]*ast.Param, error) {
	if p.cur.Type != lexer.LPAREN {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var params []*ast.Param
	if p.cur.Type != lexer.RPAREN {
		for {
			param, err := p.parseParamGroup()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if p.cur.Type == lexer.SEMICOLON {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseParamGroup parses `[VAR|CONST|CONSTREF|OUT] name {, name} : type [=
// default]`.
func (p *Parser) parseParamGroup() (*ast.Param, error) {
	start := p.cur.Span
	mode := ast.ModeValue
	switch p.cur.Type {
	case lexer.VAR:
		mode = ast.ModeVar
		if err := p.advance(); err != nil {
			return nil, err
		}
	case lexer.CONST:
		mode = ast.ModeConst
		if err := p.advance(); err != nil {
			return nil, err
		}
	case lexer.CONSTREF:
		mode = ast.ModeConstRef
		if err := p.advance(); err != nil {
			return nil, err
		}
	case lexer.OUT:
		mode = ast.ModeOut
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
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
	var def ast.Expression
	span := start.Merge(typeExpr.Span())
	if p.cur.Type == lexer.EQ {
		if err := p.advance(); err != nil {
			return nil, err
		}
		def, err = p.parseExpression(lexer.LOWEST)
		if err != nil {
			return nil, err
		}
		span = start.Merge(def.Span())
	}
	return &ast.Param{Names: names, Mode: mode, Type: typeExpr, Default: def, SpanVal: span}, nil
}
