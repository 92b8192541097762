package parser

import (
	"irkit/internal/diag"
	"irkit/internal/syntax"
	"irkit/internal/token"
)

func (p *Parser) parseGenericParam() (syntax.GenericParam, bool) {
	if p.failed() {
		return syntax.GenericParam{}, false
	}
	peek := p.lx.Peek()
	start := peek.Span
	switch peek.Kind {
	case token.Lifetime:
		p.advance()
		param := syntax.GenericParam{Kind: syntax.ParamLifetime, Name: peek.Text}
		if _, ok := p.eat(token.Colon); ok {
			lts, ok := p.parseLifetimeBounds()
			if !ok {
				return syntax.GenericParam{}, false
			}
			param.LifetimeBounds = lts
		}
		param.Span = p.spanFrom(start)
		return param, true

	case token.KwConst:
		p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected const parameter name")
		if !ok {
			return syntax.GenericParam{}, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after const parameter name"); !ok {
			return syntax.GenericParam{}, false
		}
		ty, ok := p.parseType()
		if !ok {
			return syntax.GenericParam{}, false
		}
		if _, ok := p.eat(token.Eq); ok {
			if _, ok := p.rawUntil(func(k token.Kind) bool { return k == token.Comma || k == token.Gt }); !ok {
				return syntax.GenericParam{}, false
			}
		}
		return syntax.GenericParam{
			Kind:      syntax.ParamConst,
			Name:      name.Text,
			ConstType: ty,
			Span:      p.spanFrom(start),
		}, true

	case token.Ident:
		p.advance()
		param := syntax.GenericParam{Kind: syntax.ParamType, Name: peek.Text}
		if _, ok := p.eat(token.Colon); ok && p.atBoundStart() {
			bounds, ok := p.parseBounds()
			if !ok {
				return syntax.GenericParam{}, false
			}
			param.Bounds = bounds
		}
		if _, ok := p.eat(token.Eq); ok {
			def, ok := p.parseType()
			if !ok {
				return syntax.GenericParam{}, false
			}
			param.Default = def
		}
		param.Span = p.spanFrom(start)
		return param, true
	}
	p.fail(diag.SynExpectIdentifier, "expected generic parameter, found "+describe(peek))
	return syntax.GenericParam{}, false
}

// parseGenericsDecl parses an optional `<...>` parameter list.
func (p *Parser) parseGenericsDecl() (syntax.Generics, bool) {
	start := p.lx.Peek().Span
	var g syntax.Generics
	if _, ok := p.eat(token.Lt); !ok {
		g.Span = start
		return g, true
	}
	for !p.at(token.Gt) {
		param, ok := p.parseGenericParam()
		if !ok {
			return g, false
		}
		g.Params = append(g.Params, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>' to close generic parameters"); !ok {
		return g, false
	}
	g.Span = p.spanFrom(start)
	return g, true
}

// parseWhereClause parses an optional `where` clause. Predicates end at the
// end of input, at `{` or at `;`.
func (p *Parser) parseWhereClause() ([]syntax.WherePredicate, bool) {
	if _, ok := p.eat(token.KwWhere); !ok {
		return nil, true
	}
	var preds []syntax.WherePredicate
	for !p.atOr(token.EOF, token.LBrace, token.Semicolon) {
		pred, ok := p.parseWherePredicate()
		if !ok {
			return nil, false
		}
		preds = append(preds, pred)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	return preds, true
}

func (p *Parser) parseWherePredicate() (syntax.WherePredicate, bool) {
	if p.failed() {
		return syntax.WherePredicate{}, false
	}
	start := p.lx.Peek().Span

	if lt, ok := p.eat(token.Lifetime); ok {
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after lifetime in predicate"); !ok {
			return syntax.WherePredicate{}, false
		}
		bounds, ok := p.parseLifetimeBounds()
		if !ok {
			return syntax.WherePredicate{}, false
		}
		return syntax.WherePredicate{
			Kind:           syntax.PredLifetime,
			Lifetime:       &syntax.Lifetime{Name: lt.Text, Span: lt.Span},
			LifetimeBounds: bounds,
			Span:           p.spanFrom(start),
		}, true
	}

	var binder []syntax.Lifetime
	if p.at(token.KwFor) {
		lts, ok := p.parseBinder()
		if !ok {
			return syntax.WherePredicate{}, false
		}
		binder = lts
	}
	bounded, ok := p.parseType()
	if !ok {
		return syntax.WherePredicate{}, false
	}
	switch {
	case p.at(token.Colon):
		p.advance()
		pred := syntax.WherePredicate{Kind: syntax.PredType, Lifetimes: binder, Bounded: bounded}
		if p.atBoundStart() {
			bounds, ok := p.parseBounds()
			if !ok {
				return syntax.WherePredicate{}, false
			}
			pred.Bounds = bounds
		}
		pred.Span = p.spanFrom(start)
		return pred, true
	case p.at(token.Eq):
		p.advance()
		rhs, ok := p.parseType()
		if !ok {
			return syntax.WherePredicate{}, false
		}
		return syntax.WherePredicate{
			Kind:      syntax.PredEq,
			Lifetimes: binder,
			Bounded:   bounded,
			Rhs:       rhs,
			Span:      p.spanFrom(start),
		}, true
	}
	p.fail(diag.SynExpectColon, "expected ':' or '=' after bounded type, found "+describe(p.lx.Peek()))
	return syntax.WherePredicate{}, false
}
