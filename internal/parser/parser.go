// Package parser implements the SuperPascal recursive-descent parser: the
// declaration/statement/type grammar by hand-rolled descent, expressions by
// Pratt precedence climbing. It owns a Lexer, a directive.Evaluator, and
// the include machinery, and produces a single ast.Root or the first
// ParserError.
package parser

import (
	"path/filepath"

	"github.com/casibbald/SuperPascal/internal/ast"
	"github.com/casibbald/SuperPascal/internal/directive"
	"github.com/casibbald/SuperPascal/internal/lexer"
)

// Parser drives one compilation unit (and, recursively, everything it
// includes) to a single ast.Root. Per §5, a Parser is single-threaded and
// synchronous; the only reentrancy is the sub-parser it constructs for
// {$INCLUDE}.
type Parser struct {
	lex *lexer.Lexer
	dir *directive.Evaluator

	filename    string
	baseDir     string // directory of filename, for relative includes
	searchPaths []string
	includedSet map[string]struct{}

	cur  lexer.Token
	peek lexer.Token

	directiveStack    []*[]*ast.Directive
	leadingDirectives []*ast.Directive
	blockStack        []*ast.Block
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithSearchPaths registers include search paths, tried in order after the
// current file's directory and before the process working directory.
func WithSearchPaths(paths []string) Option {
	return func(p *Parser) { p.searchPaths = paths }
}

// New constructs a Parser over source. filename may be "" for an in-memory
// buffer with no include-relative directory. predefined symbols are
// upper-cased as if supplied by a command-line -D flag.
func New(source, filename string, predefined []string, opts ...Option) (*Parser, error) {
	p := &Parser{
		filename:    filename,
		dir:         directive.New(predefined),
		includedSet: make(map[string]struct{}),
	}
	if filename != "" {
		p.baseDir = filepath.Dir(filename)
	}
	for _, opt := range opts {
		opt(p)
	}
	p.lex = lexer.New(source, lexer.WithFilename(filename))
	if err := p.primeTokens(); err != nil {
		return nil, err
	}
	return p, nil
}

// primeTokens fetches the first two tokens, retaining any directive that
// precedes the first real token (the unit-start keyword, or the first
// declaration of an included file) into p.leadingDirectives. The caller
// that knows where those directives belong — ParseRoot for a top-level
// parse, parseDeclarationsOnly for an include — pops the sink and folds
// leadingDirectives into the Block or Program it is building.
func (p *Parser) primeTokens() error {
	p.pushDirectiveSink(&p.leadingDirectives)
	var err error
	if p.cur, err = p.fetch(); err != nil {
		return err
	}
	if p.peek, err = p.fetch(); err != nil {
		return err
	}
	return nil
}

// Parse parses source as a full compilation unit (PROGRAM or UNIT) and
// returns its AST, or the first error encountered.
func Parse(source, filename string, predefined []string, opts ...Option) (*ast.Root, error) {
	p, err := New(source, filename, predefined, opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseRoot()
}

// fetch pulls the next non-directive, currently-active token from the
// lexer, applying every DIRECTIVE token it passes through to the
// evaluator along the way (§4.3). Tokens inside an inactive conditional
// branch are silently discarded; directives are never discarded, since
// their nesting must still be tracked to find the matching boundary.
func (p *Parser) fetch() (lexer.Token, error) {
	for {
		tok, err := p.lex.NextToken()
		if err != nil {
			if le, ok := err.(*lexer.LexError); ok {
				return lexer.Token{}, invalidSyntax(le.Span, "%s", le.Message)
			}
			return lexer.Token{}, err
		}

		if tok.Type == lexer.DIRECTIVE {
			if err := p.handleDirective(tok); err != nil {
				return lexer.Token{}, err
			}
			continue
		}

		if tok.Type == lexer.EOF {
			if !p.dir.Balanced() {
				return lexer.Token{}, invalidSyntax(tok.Span, "%s", p.dir.UnmatchedError(tok.Span).Error())
			}
			return tok, nil
		}

		if !p.dir.Active() {
			continue
		}
		return tok, nil
	}
}

func (p *Parser) handleDirective(tok lexer.Token) error {
	d := directive.Parse(tok.Literal)
	switch d.Kind {
	case directive.Define:
		if p.dir.Active() {
			p.dir.Define(d.Name)
			p.retainDirective(tok)
		}
		return nil
	case directive.Undef:
		if p.dir.Active() {
			p.dir.Undef(d.Name)
			p.retainDirective(tok)
		}
		return nil
	case directive.Include:
		if p.dir.Active() {
			return p.handleInclude(d.File, tok.Span)
		}
		return nil
	default:
		wasErr := func() error {
			_, err := p.dir.Apply(d, tok.Span)
			return err
		}()
		if wasErr != nil {
			if de, ok := wasErr.(*directive.Error); ok {
				return invalidSyntax(de.Span, "%s", de.Message)
			}
			return wasErr
		}
		p.retainDirective(tok)
		return nil
	}
}

func (p *Parser) retainDirective(tok lexer.Token) {
	sink := p.currentSink()
	if sink == nil {
		return
	}
	*sink = append(*sink, &ast.Directive{Body: tok.Literal, SpanVal: tok.Span})
}

func (p *Parser) pushDirectiveSink(sink *[]*ast.Directive) {
	p.directiveStack = append(p.directiveStack, sink)
}

func (p *Parser) popDirectiveSink() {
	p.directiveStack = p.directiveStack[:len(p.directiveStack)-1]
}

func (p *Parser) currentSink() *[]*ast.Directive {
	if len(p.directiveStack) == 0 {
		return nil
	}
	return p.directiveStack[len(p.directiveStack)-1]
}

func (p *Parser) pushBlock(b *ast.Block) { p.blockStack = append(p.blockStack, b) }

func (p *Parser) popBlock() { p.blockStack = p.blockStack[:len(p.blockStack)-1] }

// currentBlock returns whichever Block is currently being assembled, so
// that an {$INCLUDE} encountered mid-declarations knows where to splice
// the included file's declarations (§4.6).
func (p *Parser) currentBlock() *ast.Block {
	if len(p.blockStack) == 0 {
		return nil
	}
	return p.blockStack[len(p.blockStack)-1]
}

func (p *Parser) advance() error {
	tok, err := p.fetch()
	if err != nil {
		return err
	}
	p.cur = p.peek
	p.peek = tok
	return nil
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peek.Type == tt }

// expect consumes the current token if it matches tt, otherwise returns a
// ParserError (UnexpectedEOF at end of input, InvalidSyntax otherwise).
func (p *Parser) expect(tt lexer.TokenType, label string) (lexer.Token, error) {
	if p.curIs(tt) {
		t := p.cur
		if err := p.advance(); err != nil {
			return lexer.Token{}, err
		}
		return t, nil
	}
	if p.curIs(lexer.EOF) {
		return lexer.Token{}, unexpectedEOF(p.cur.Span, label)
	}
	return lexer.Token{}, invalidSyntax(p.cur.Span, "Expected %s, found %q", label, p.cur.Literal)
}

// expectIdent consumes an IDENT token. Primitive-type keywords (INTEGER,
// CHAR, ...) are not accepted here; parseTypeExpr and parsePrimary handle
// those keywords themselves.
func (p *Parser) expectIdent() (lexer.Token, error) {
	return p.expect(lexer.IDENT, "identifier")
}
