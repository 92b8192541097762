// Package parser is the default fragment parser. It turns short pieces of
// target-language text into syntax trees; the IR never reads text itself.
//
// Every entry point parses exactly one fragment and rejects trailing input.
// Parsing stops at the first error, which is returned as a *diag.Error.
package parser

import (
	"slices"

	"irkit/internal/diag"
	"irkit/internal/lexer"
	"irkit/internal/source"
	"irkit/internal/syntax"
	"irkit/internal/token"
)

// Parser holds the state for a single fragment.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	err      *diag.Error
	lastSpan source.Span // span of the last consumed token
}

func newParser(f *source.File) *Parser {
	lx := lexer.New(f)
	return &Parser{
		lx:       lx,
		file:     f,
		lastSpan: lx.EmptySpan(),
	}
}

// ParseGenericParam parses a single parameter declaration: `T`, `T: Clone`,
// `'a: 'b`, `const N: usize`.
func ParseGenericParam(f *source.File) (syntax.GenericParam, error) {
	p := newParser(f)
	param, _ := p.parseGenericParam()
	return param, p.finish()
}

// ParseGenerics parses `<params> where predicates`. Both parts are optional.
func ParseGenerics(f *source.File) (syntax.Generics, error) {
	p := newParser(f)
	g, ok := p.parseGenericsDecl()
	if ok {
		g.Where, _ = p.parseWhereClause()
	}
	return g, p.finish()
}

// ParseWherePredicate parses one where predicate without the `where` keyword.
func ParseWherePredicate(f *source.File) (syntax.WherePredicate, error) {
	p := newParser(f)
	pred, _ := p.parseWherePredicate()
	return pred, p.finish()
}

func ParseType(f *source.File) (*syntax.Type, error) {
	p := newParser(f)
	ty, _ := p.parseType()
	return ty, p.finish()
}

func ParseBound(f *source.File) (syntax.Bound, error) {
	p := newParser(f)
	b, _ := p.parseBound()
	return b, p.finish()
}

// ParsePath parses a path with optional generic arguments: `Vec<T>`,
// `::std::fmt::Debug`, `Fn(A) -> B`.
func ParsePath(f *source.File) (*syntax.Path, error) {
	p := newParser(f)
	path, _ := p.parsePath()
	return path, p.finish()
}

// ParseDataDecl parses a struct or enum declaration with attributes.
func ParseDataDecl(f *source.File) (*syntax.DataDecl, error) {
	p := newParser(f)
	decl, _ := p.parseDataDecl()
	return decl, p.finish()
}

// finish checks for trailing input and reports the first error. Lexical
// errors win because they usually cause the syntax error that follows.
func (p *Parser) finish() error {
	if p.err == nil && !p.at(token.EOF) {
		p.fail(diag.SynTrailingInput, "unexpected "+describe(p.lx.Peek())+" after fragment")
	}
	if lexErr := p.lx.Err(); lexErr != nil {
		return lexErr
	}
	if p.err != nil {
		return p.err
	}
	return nil
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) failed() bool {
	return p.err != nil
}
