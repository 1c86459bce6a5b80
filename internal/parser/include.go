package parser

import (
	"github.com/casibbald/SuperPascal/internal/ast"
	"github.com/casibbald/SuperPascal/internal/lexer"
	"github.com/casibbald/SuperPascal/internal/units"
)

// handleInclude resolves, reads, and splices an {$INCLUDE 'file'}
// directive per §4.6: resolve the file's path, canonicalise it, check for
// a cycle, then run a sub-parser sharing symbols and search paths, and
// splice its resulting Block into whichever block is currently being
// assembled.
func (p *Parser) handleInclude(filename string, span lexer.Span) error {
	resolved, err := units.Resolve(filename, p.baseDir, p.searchPaths)
	if err != nil {
		return invalidSyntax(span, "%s", err.Error())
	}
	canonical, err := units.Canonicalize(resolved)
	if err != nil {
		return invalidSyntax(span, "%s", err.Error())
	}
	if _, seen := p.includedSet[canonical]; seen {
		return invalidSyntax(span, "Circular include detected: '%s'", filename)
	}

	content, err := units.ReadFile(resolved)
	if err != nil {
		return invalidSyntax(span, "%s", err.Error())
	}

	includedSet := make(map[string]struct{}, len(p.includedSet)+1)
	for k := range p.includedSet {
		includedSet[k] = struct{}{}
	}
	includedSet[canonical] = struct{}{}

	sub := &Parser{
		filename:    resolved,
		dir:         p.dir.Clone(),
		includedSet: includedSet,
		searchPaths: p.searchPaths,
	}
	sub.baseDir = dirOf(resolved)
	sub.lex = lexer.New(content, lexer.WithFilename(resolved))
	if err := sub.primeTokens(); err != nil {
		return err
	}

	block, err := sub.parseDeclarationsOnly()
	if err != nil {
		return err
	}

	p.dir.MergeFrom(sub.dir)
	p.spliceBlock(block)
	return nil
}

func dirOf(path string) string {
	i := len(path) - 1
	for i >= 0 && path[i] != '/' && path[i] != '\\' {
		i--
	}
	if i < 0 {
		return ""
	}
	return path[:i]
}

// spliceBlock appends every section of an included Block onto the
// corresponding section of whichever Block the host parser is currently
// assembling, preserving relative source order within each section.
func (p *Parser) spliceBlock(b *ast.Block) {
	host := p.currentBlock()
	if host == nil {
		return
	}
	host.Directives = append(host.Directives, b.Directives...)
	host.LabelDecls = append(host.LabelDecls, b.LabelDecls...)
	host.ConstDecls = append(host.ConstDecls, b.ConstDecls...)
	host.TypeDecls = append(host.TypeDecls, b.TypeDecls...)
	host.VarDecls = append(host.VarDecls, b.VarDecls...)
	host.ThreadVarDecls = append(host.ThreadVarDecls, b.ThreadVarDecls...)
	host.ProcDecls = append(host.ProcDecls, b.ProcDecls...)
	host.FuncDecls = append(host.FuncDecls, b.FuncDecls...)
	host.OperatorDecls = append(host.OperatorDecls, b.OperatorDecls...)
	host.Statements = append(host.Statements, b.Statements...)
}
