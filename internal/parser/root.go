package parser

import (
	"github.com/casibbald/SuperPascal/internal/ast"
	"github.com/casibbald/SuperPascal/internal/lexer"
)

// ParseRoot parses one compilation unit starting at the unit-start keyword
// (PROGRAM, UNIT, or LIBRARY) per §4.5, returning a single ast.Root.
func (p *Parser) ParseRoot() (*ast.Root, error) {
	leading := p.leadingDirectives
	p.popDirectiveSink()

	switch p.cur.Type {
	case lexer.PROGRAM, lexer.LIBRARY:
		prog, err := p.parseProgram(leading)
		if err != nil {
			return nil, err
		}
		return &ast.Root{Program: prog}, nil
	case lexer.UNIT:
		unit, err := p.parseUnit()
		if err != nil {
			return nil, err
		}
		return &ast.Root{Unit: unit}, nil
	case lexer.EOF:
		return nil, unexpectedEOF(p.cur.Span, "'program', 'unit', or 'library'")
	default:
		return nil, invalidSyntax(p.cur.Span, "Expected 'program', 'unit', or 'library', found %q", p.cur.Literal)
	}
}

// parseProgram handles both PROGRAM and LIBRARY: `(PROGRAM|LIBRARY) name;
// block.`. A library has no further syntax the frontend distinguishes.
func (p *Parser) parseProgram(leading []*ast.Directive) (*ast.Program, error) {
	start := p.cur.Span
	// The parser reads one token ahead, so an {$INCLUDE} right after the
	// header is applied before parseBlock pushes its block; header collects
	// it and is placed ahead of the block's own sections.
	header := &ast.Block{}
	p.pushBlock(header)
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	p.popBlock()
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	p.pushBlock(header)
	p.spliceBlock(block)
	p.popBlock()
	header.SpanVal = block.SpanVal
	block = header
	dotTok, err := p.expect(lexer.DOT, "'.'")
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.EOF {
		return nil, invalidSyntax(p.cur.Span, "Expected end of input, found %q", p.cur.Literal)
	}
	return &ast.Program{
		Name:       nameTok.Literal,
		Directives: leading,
		Block:      block,
		SpanVal:    start.Merge(dotTok.Span),
	}, nil
}

// parseUnit handles `UNIT name; INTERFACE decls IMPLEMENTATION block
// [INITIALIZATION stmts] [FINALIZATION stmts] END.`.
func (p *Parser) parseUnit() (*ast.Unit, error) {
	start := p.cur.Span
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.INTERFACE, "'interface'"); err != nil {
		return nil, err
	}
	iface, err := p.parseInterfaceSection()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IMPLEMENTATION, "'implementation'"); err != nil {
		return nil, err
	}
	impl, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var initStmts, finalStmts []ast.Statement
	if p.cur.Type == lexer.INITIALIZATION {
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmts, _, err := p.parseStatementsUntilAny(lexer.FINALIZATION, lexer.END)
		if err != nil {
			return nil, err
		}
		initStmts = stmts
	}
	if p.cur.Type == lexer.FINALIZATION {
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmts, _, err := p.parseStatementsUntilAny(lexer.END)
		if err != nil {
			return nil, err
		}
		finalStmts = stmts
	}

	if _, err := p.expect(lexer.END, "'end'"); err != nil {
		return nil, err
	}
	dotTok, err := p.expect(lexer.DOT, "'.'")
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.EOF {
		return nil, invalidSyntax(p.cur.Span, "Expected end of input, found %q", p.cur.Literal)
	}
	return &ast.Unit{
		Name:           nameTok.Literal,
		Interface:      iface,
		Implementation: impl,
		Initialization: initStmts,
		Finalization:   finalStmts,
		SpanVal:        start.Merge(dotTok.Span),
	}, nil
}

// parseInterfaceSection parses the declaration-only section between
// INTERFACE and IMPLEMENTATION: the same section grammar as a Block, minus
// the BEGIN...END body.
func (p *Parser) parseInterfaceSection() (*ast.Block, error) {
	block := &ast.Block{}
	p.pushBlock(block)
	defer p.popBlock()
	p.pushDirectiveSink(&block.Directives)
	defer p.popDirectiveSink()

	start := p.cur.Span
	if err := p.skipUsesClauseOpt(); err != nil {
		return nil, err
	}
	if err := p.parseDeclSections(block); err != nil {
		return nil, err
	}
	block.SpanVal = start.Merge(p.cur.Span)
	return block, nil
}
