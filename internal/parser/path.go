package parser

import (
	"irkit/internal/diag"
	"irkit/internal/syntax"
	"irkit/internal/token"
)

// parsePath parses `::a::b<T>::C(A) -> B`, including turbofish forms.
func (p *Parser) parsePath() (*syntax.Path, bool) {
	if p.failed() {
		return nil, false
	}
	start := p.lx.Peek().Span
	path := &syntax.Path{}
	if _, ok := p.eat(token.ColonColon); ok {
		path.Global = true
	}
	segs, ok := p.parsePathSegments()
	if !ok {
		return nil, false
	}
	path.Segments = segs
	path.Span = p.spanFrom(start)
	return path, true
}

func (p *Parser) parsePathSegments() ([]syntax.PathSegment, bool) {
	var segs []syntax.PathSegment
	for {
		ident, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected path segment, found "+describe(p.lx.Peek()))
		if !ok {
			return nil, false
		}
		seg := syntax.PathSegment{Ident: ident.Text}
		switch {
		case p.at(token.Lt):
			args, ok := p.parseAngleArgs()
			if !ok {
				return nil, false
			}
			seg.Args = args
		case p.at(token.LParen):
			args, ok := p.parseParenArgs()
			if !ok {
				return nil, false
			}
			seg.Args = args
		}
		if _, ok := p.eat(token.ColonColon); !ok {
			seg.Span = p.spanFrom(ident.Span)
			segs = append(segs, seg)
			return segs, true
		}
		// turbofish: Vec::<T>
		if seg.Args == nil && p.at(token.Lt) {
			args, ok := p.parseAngleArgs()
			if !ok {
				return nil, false
			}
			seg.Args = args
			seg.Span = p.spanFrom(ident.Span)
			segs = append(segs, seg)
			if _, ok := p.eat(token.ColonColon); !ok {
				return segs, true
			}
			continue
		}
		seg.Span = p.spanFrom(ident.Span)
		segs = append(segs, seg)
	}
}

// parseAngleArgs parses `<T, 'a, Item = U, Item: Bound, 3>`.
func (p *Parser) parseAngleArgs() (*syntax.PathArgs, bool) {
	start := p.advance().Span // <
	args := &syntax.PathArgs{Kind: syntax.ArgsAngle}
	for !p.at(token.Gt) {
		arg, ok := p.parseGenericArg()
		if !ok {
			return nil, false
		}
		args.Args = append(args.Args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>' to close generic arguments"); !ok {
		return nil, false
	}
	args.Span = p.spanFrom(start)
	return args, true
}

// parseParenArgs parses the `(A, B) -> C` sugar of Fn-like traits.
func (p *Parser) parseParenArgs() (*syntax.PathArgs, bool) {
	start := p.lx.Peek().Span
	sig, ok := p.parseFnSig()
	if !ok {
		return nil, false
	}
	return &syntax.PathArgs{Kind: syntax.ArgsParen, Fn: sig, Span: p.spanFrom(start)}, true
}

func (p *Parser) parseGenericArg() (syntax.GenericArg, bool) {
	peek := p.lx.Peek()
	start := peek.Span
	switch peek.Kind {
	case token.Lifetime:
		p.advance()
		return syntax.GenericArg{
			Kind:     syntax.ArgLifetime,
			Lifetime: &syntax.Lifetime{Name: peek.Text, Span: peek.Span},
			Span:     peek.Span,
		}, true
	case token.IntLit, token.StringLit:
		p.advance()
		return syntax.GenericArg{Kind: syntax.ArgConst, Const: peek.Text, Span: peek.Span}, true
	case token.LBrace:
		p.advance()
		text, ok := p.rawUntil(func(k token.Kind) bool { return k == token.RBrace })
		if !ok {
			return syntax.GenericArg{}, false
		}
		if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close const argument"); !ok {
			return syntax.GenericArg{}, false
		}
		return syntax.GenericArg{Kind: syntax.ArgConst, Const: "{" + text + "}", Span: p.spanFrom(start)}, true
	}

	ty, ok := p.parseType()
	if !ok {
		return syntax.GenericArg{}, false
	}
	if ident, isIdent := ty.Ident(); isIdent {
		switch {
		case p.at(token.Eq):
			p.advance()
			rhs, ok := p.parseType()
			if !ok {
				return syntax.GenericArg{}, false
			}
			return syntax.GenericArg{Kind: syntax.ArgBinding, Ident: ident, Type: rhs, Span: p.spanFrom(start)}, true
		case p.at(token.Colon):
			p.advance()
			bounds, ok := p.parseBounds()
			if !ok {
				return syntax.GenericArg{}, false
			}
			return syntax.GenericArg{Kind: syntax.ArgConstraint, Ident: ident, Bounds: bounds, Span: p.spanFrom(start)}, true
		}
	}
	return syntax.GenericArg{Kind: syntax.ArgType, Type: ty, Span: ty.Span}, true
}
