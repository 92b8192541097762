package parser

import (
	"irkit/internal/diag"
	"irkit/internal/syntax"
	"irkit/internal/token"
)

func (p *Parser) atBoundStart() bool {
	return p.atOr(token.Lifetime, token.Question, token.KwFor, token.Ident, token.ColonColon, token.LParen)
}

// parseBounds parses `A + B + 'a`. A trailing `+` is accepted.
func (p *Parser) parseBounds() ([]syntax.Bound, bool) {
	var bounds []syntax.Bound
	for {
		b, ok := p.parseBound()
		if !ok {
			return nil, false
		}
		bounds = append(bounds, b)
		if _, ok := p.eat(token.Plus); !ok || !p.atBoundStart() {
			return bounds, true
		}
	}
}

// parseBound parses one bound: `'a`, `?Sized`, `for<'a> Fn(&'a T)`, `(Trait)`.
func (p *Parser) parseBound() (syntax.Bound, bool) {
	if p.failed() {
		return syntax.Bound{}, false
	}
	peek := p.lx.Peek()
	start := peek.Span
	switch peek.Kind {
	case token.Lifetime:
		p.advance()
		return syntax.Bound{
			Kind:     syntax.BoundLifetime,
			Lifetime: &syntax.Lifetime{Name: peek.Text, Span: peek.Span},
			Span:     peek.Span,
		}, true
	case token.LParen:
		p.advance()
		b, ok := p.parseBound()
		if !ok {
			return syntax.Bound{}, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close bound"); !ok {
			return syntax.Bound{}, false
		}
		b.Span = p.spanFrom(start)
		return b, true
	case token.KwFor, token.Question, token.Ident, token.ColonColon:
	default:
		p.fail(diag.SynExpectBound, "expected bound, found "+describe(peek))
		return syntax.Bound{}, false
	}

	b := syntax.Bound{Kind: syntax.BoundTrait}
	if p.at(token.KwFor) {
		lts, ok := p.parseBinder()
		if !ok {
			return syntax.Bound{}, false
		}
		b.Lifetimes = lts
	}
	if _, ok := p.eat(token.Question); ok {
		b.Maybe = true
	}
	path, ok := p.parsePath()
	if !ok {
		return syntax.Bound{}, false
	}
	b.Path = path
	b.Span = p.spanFrom(start)
	return b, true
}

// parseBinder parses `for<'a, 'b>`.
func (p *Parser) parseBinder() ([]syntax.Lifetime, bool) {
	p.advance() // for
	if _, ok := p.expect(token.Lt, diag.SynUnexpectedToken, "expected '<' after for"); !ok {
		return nil, false
	}
	var lts []syntax.Lifetime
	for !p.at(token.Gt) {
		lt, ok := p.expect(token.Lifetime, diag.SynExpectLifetime, "expected lifetime in for<...>, found "+describe(p.lx.Peek()))
		if !ok {
			return nil, false
		}
		lts = append(lts, syntax.Lifetime{Name: lt.Text, Span: lt.Span})
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>' to close for<...>"); !ok {
		return nil, false
	}
	return lts, true
}

// parseLifetimeBounds parses `'a + 'b`.
func (p *Parser) parseLifetimeBounds() ([]syntax.Lifetime, bool) {
	var lts []syntax.Lifetime
	for p.at(token.Lifetime) {
		lt := p.advance()
		lts = append(lts, syntax.Lifetime{Name: lt.Text, Span: lt.Span})
		if _, ok := p.eat(token.Plus); !ok {
			break
		}
	}
	if len(lts) == 0 && !p.atOr(token.EOF, token.Comma, token.Gt, token.LBrace, token.Semicolon) {
		p.fail(diag.SynExpectLifetime, "expected lifetime bound, found "+describe(p.lx.Peek()))
		return nil, false
	}
	return lts, true
}
