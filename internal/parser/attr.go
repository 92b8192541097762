package parser

import (
	"strings"

	"irkit/internal/diag"
	"irkit/internal/syntax"
	"irkit/internal/token"
)

func (p *Parser) parseAttributes() ([]syntax.Attribute, bool) {
	var attrs []syntax.Attribute
	for p.at(token.Hash) {
		attr, ok := p.parseAttribute()
		if !ok {
			return nil, false
		}
		attrs = append(attrs, attr)
	}
	return attrs, true
}

// parseAttribute parses `#[path tokens]` and `#![path tokens]`. Everything
// after the path is kept as raw text.
func (p *Parser) parseAttribute() (syntax.Attribute, bool) {
	start := p.advance().Span // #
	attr := syntax.Attribute{}
	if _, ok := p.eat(token.Bang); ok {
		attr.Inner = true
	}
	if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '[' after '#'"); !ok {
		return syntax.Attribute{}, false
	}
	path, ok := p.parseSimplePath()
	if !ok {
		return syntax.Attribute{}, false
	}
	attr.Path = path
	text, ok := p.rawUntil(func(k token.Kind) bool { return k == token.RBracket })
	if !ok {
		return syntax.Attribute{}, false
	}
	if !p.at(token.RBracket) {
		if p.err == nil {
			p.err = diag.Invalidf(diag.LexUnterminatedAttribute, "attribute is not closed").WithSpan(p.spanFrom(start))
		}
		return syntax.Attribute{}, false
	}
	p.advance()
	attr.Tokens = strings.TrimSpace(text)
	attr.Span = p.spanFrom(start)
	return attr, true
}

// parseSimplePath parses a path without generic arguments.
func (p *Parser) parseSimplePath() (*syntax.Path, bool) {
	start := p.lx.Peek().Span
	path := &syntax.Path{}
	if _, ok := p.eat(token.ColonColon); ok {
		path.Global = true
	}
	for {
		ident, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier in attribute path")
		if !ok {
			return nil, false
		}
		path.Segments = append(path.Segments, syntax.PathSegment{Ident: ident.Text, Span: ident.Span})
		if _, ok := p.eat(token.ColonColon); !ok {
			break
		}
	}
	path.Span = p.spanFrom(start)
	return path, true
}
