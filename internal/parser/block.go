package parser

import (
	"github.com/casibbald/SuperPascal/internal/ast"
	"github.com/casibbald/SuperPascal/internal/lexer"
)

// parseBlock parses the universal shape used for program bodies, unit
// implementation sections, and routine bodies: zero or more declaration
// sections in any order, followed by BEGIN...END (§4.5).
func (p *Parser) parseBlock() (*ast.Block, error) {
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
	if _, err := p.expect(lexer.BEGIN, "'begin'"); err != nil {
		return nil, err
	}
	stmts, endTok, err := p.parseStatementList(lexer.END)
	if err != nil {
		return nil, err
	}
	block.Statements = stmts
	block.SpanVal = start.Merge(endTok.Span)
	return block, nil
}

// parseDeclarationsOnly is used by the {$INCLUDE} sub-parser: an included
// file is any mix of declaration sections and, optionally, a trailing
// BEGIN...END whose statements are spliced into the host block too (§4.6).
func (p *Parser) parseDeclarationsOnly() (*ast.Block, error) {
	leading := p.leadingDirectives
	p.popDirectiveSink()

	block := &ast.Block{Directives: leading}
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
	if p.cur.Type == lexer.BEGIN {
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmts, endTok, err := p.parseStatementList(lexer.END)
		if err != nil {
			return nil, err
		}
		block.Statements = stmts
		block.SpanVal = start.Merge(endTok.Span)
		return block, nil
	}
	block.SpanVal = start.Merge(p.cur.Span)
	if p.cur.Type != lexer.EOF {
		return nil, invalidSyntax(p.cur.Span, "Unexpected %q in included file", p.cur.Literal)
	}
	return block, nil
}

// parseDeclSections consumes every declaration section it recognises, in
// whatever order they appear, stopping at the first token that starts
// neither a recognised section nor a class-method implementation header.
func (p *Parser) parseDeclSections(block *ast.Block) error {
	for {
		switch p.cur.Type {
		case lexer.LABEL:
			if err := p.parseLabelSection(block); err != nil {
				return err
			}
		case lexer.CONST:
			if err := p.parseConstSection(block, false); err != nil {
				return err
			}
		case lexer.RESOURCESTRING:
			if err := p.parseConstSection(block, true); err != nil {
				return err
			}
		case lexer.TYPE:
			if err := p.parseTypeSection(block); err != nil {
				return err
			}
		case lexer.VAR:
			if err := p.parseVarSection(&block.VarDecls); err != nil {
				return err
			}
		case lexer.THREADVAR:
			if err := p.parseVarSection(&block.ThreadVarDecls); err != nil {
				return err
			}
		case lexer.PROCEDURE, lexer.FUNCTION, lexer.OPERATOR:
			if err := p.parseRoutineDecl(block); err != nil {
				return err
			}
		case lexer.CLASS:
			if p.peek.Type == lexer.PROCEDURE || p.peek.Type == lexer.FUNCTION {
				if err := p.parseRoutineDecl(block); err != nil {
					return err
				}
				continue
			}
			return nil
		default:
			return nil
		}
	}
}

// skipUsesClauseOpt discards a `USES name, name, ...;` clause, which the
// data model does not retain (there is no import-graph node in the AST —
// unit resolution beyond {$INCLUDE} is out of scope here).
func (p *Parser) skipUsesClauseOpt() error {
	if p.cur.Type != lexer.USES {
		return nil
	}
	if err := p.advance(); err != nil {
		return err
	}
	for {
		if _, err := p.expectIdent(); err != nil {
			return err
		}
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	_, err := p.expect(lexer.SEMICOLON, "';'")
	return err
}
