package parser

import (
	"irkit/internal/diag"
	"irkit/internal/syntax"
	"irkit/internal/token"
)

// parseType parses any type expression the fragment grammar knows. Shapes
// the IR does not support (arrays, pointers, fn pointers) are still parsed
// so the translator can name them in its error.
func (p *Parser) parseType() (*syntax.Type, bool) {
	if p.failed() {
		return nil, false
	}
	peek := p.lx.Peek()
	start := peek.Span
	switch peek.Kind {
	case token.Amp:
		return p.parseReferenceType()
	case token.Star:
		return p.parsePtrType()
	case token.LParen:
		return p.parseTupleType()
	case token.LBracket:
		return p.parseArrayOrSliceType()
	case token.Underscore:
		p.advance()
		return &syntax.Type{Kind: syntax.TypeInfer, Span: start}, true
	case token.Bang:
		p.advance()
		return &syntax.Type{Kind: syntax.TypeNever, Span: start}, true
	case token.KwFn:
		return p.parseBareFnType()
	case token.KwDyn:
		p.advance()
		bounds, ok := p.parseBounds()
		if !ok {
			return nil, false
		}
		return &syntax.Type{
			Kind:   syntax.TypeTraitObject,
			Span:   p.spanFrom(start),
			Dyn:    true,
			Bounds: bounds,
		}, true
	case token.Lt:
		return p.parseQualifiedPathType()
	case token.Ident, token.ColonColon:
		path, ok := p.parsePath()
		if !ok {
			return nil, false
		}
		return &syntax.Type{Kind: syntax.TypePath, Span: path.Span, Path: path}, true
	case token.KwImpl:
		p.fail(diag.SynExpectType, "impl Trait types are not accepted in fragments")
		return nil, false
	}
	p.fail(diag.SynExpectType, "expected type, found "+describe(peek))
	return nil, false
}

// parseReferenceType parses `&'a mut T`.
func (p *Parser) parseReferenceType() (*syntax.Type, bool) {
	start := p.advance().Span // &
	ty := &syntax.Type{Kind: syntax.TypeReference}
	if lt, ok := p.eat(token.Lifetime); ok {
		ty.Lifetime = &syntax.Lifetime{Name: lt.Text, Span: lt.Span}
	}
	if _, ok := p.eat(token.KwMut); ok {
		ty.Mutable = true
	}
	elem, ok := p.parseType()
	if !ok {
		return nil, false
	}
	ty.Elem = elem
	ty.Span = p.spanFrom(start)
	return ty, true
}

// parsePtrType parses `*const T` and `*mut T`.
func (p *Parser) parsePtrType() (*syntax.Type, bool) {
	start := p.advance().Span // *
	ty := &syntax.Type{Kind: syntax.TypePtr}
	switch {
	case p.at(token.KwMut):
		p.advance()
		ty.Mutable = true
	case p.at(token.KwConst):
		p.advance()
	default:
		p.fail(diag.SynUnexpectedToken, "expected const or mut after *")
		return nil, false
	}
	elem, ok := p.parseType()
	if !ok {
		return nil, false
	}
	ty.Elem = elem
	ty.Span = p.spanFrom(start)
	return ty, true
}

// parseTupleType parses `()`, `(T)`, `(T,)` and `(A, B, ...)`. A single
// element without a trailing comma is kept as a one-element tuple with
// Trailing unset; unwrapping is left to the consumer.
func (p *Parser) parseTupleType() (*syntax.Type, bool) {
	start := p.advance().Span // (
	ty := &syntax.Type{Kind: syntax.TypeTuple}
	for !p.at(token.RParen) {
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		ty.Elems = append(ty.Elems, elem)
		if _, ok := p.eat(token.Comma); !ok {
			ty.Trailing = false
			break
		}
		ty.Trailing = true
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close tuple type"); !ok {
		return nil, false
	}
	ty.Span = p.spanFrom(start)
	return ty, true
}

// parseArrayOrSliceType parses `[T]` and `[T; N]`.
func (p *Parser) parseArrayOrSliceType() (*syntax.Type, bool) {
	start := p.advance().Span // [
	elem, ok := p.parseType()
	if !ok {
		return nil, false
	}
	ty := &syntax.Type{Kind: syntax.TypeSlice, Elem: elem}
	if _, ok := p.eat(token.Semicolon); ok {
		ty.Kind = syntax.TypeArray
		ty.Len, _ = p.rawUntil(func(k token.Kind) bool { return k == token.RBracket })
		if ty.Len == "" {
			p.fail(diag.SynUnexpectedToken, "expected array length")
			return nil, false
		}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array type"); !ok {
		return nil, false
	}
	ty.Span = p.spanFrom(start)
	return ty, true
}

// parseBareFnType parses `fn(A, B) -> C`.
func (p *Parser) parseBareFnType() (*syntax.Type, bool) {
	start := p.advance().Span // fn
	if !p.at(token.LParen) {
		p.fail(diag.SynUnexpectedToken, "expected '(' after fn")
		return nil, false
	}
	sig, ok := p.parseFnSig()
	if !ok {
		return nil, false
	}
	return &syntax.Type{Kind: syntax.TypeBareFn, Span: p.spanFrom(start), Fn: sig}, true
}

// parseFnSig parses `(A, B) -> C` starting at the opening parenthesis.
func (p *Parser) parseFnSig() (*syntax.FnSig, bool) {
	start := p.advance().Span // (
	sig := &syntax.FnSig{}
	for !p.at(token.RParen) {
		in, ok := p.parseType()
		if !ok {
			return nil, false
		}
		sig.Inputs = append(sig.Inputs, in)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list"); !ok {
		return nil, false
	}
	if _, ok := p.eat(token.Arrow); ok {
		out, ok := p.parseType()
		if !ok {
			return nil, false
		}
		sig.Output = out
	}
	sig.Span = p.spanFrom(start)
	return sig, true
}

// parseQualifiedPathType parses `<T as Trait>::Name` and `<T>::Name`.
func (p *Parser) parseQualifiedPathType() (*syntax.Type, bool) {
	start := p.advance().Span // <
	self, ok := p.parseType()
	if !ok {
		return nil, false
	}
	qself := &syntax.QSelf{Type: self}
	path := &syntax.Path{}
	if tok := p.lx.Peek(); tok.Kind == token.Ident && tok.Text == "as" {
		p.advance()
		trait, ok := p.parsePath()
		if !ok {
			return nil, false
		}
		path.Global = trait.Global
		path.Segments = append(path.Segments, trait.Segments...)
		qself.Position = len(trait.Segments)
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>' to close qualified self"); !ok {
		return nil, false
	}
	qself.Span = p.spanFrom(start)
	if _, ok := p.expect(token.ColonColon, diag.SynUnexpectedToken, "expected '::' after qualified self"); !ok {
		return nil, false
	}
	rest, ok := p.parsePathSegments()
	if !ok {
		return nil, false
	}
	path.Segments = append(path.Segments, rest...)
	path.Span = p.spanFrom(start)
	return &syntax.Type{Kind: syntax.TypePath, Span: path.Span, QSelf: qself, Path: path}, true
}

// rawUntil consumes balanced tokens until stop matches at nesting depth zero
// and returns the source text it covered. Used for const expressions and
// attribute token streams that the IR forwards without interpreting.
func (p *Parser) rawUntil(stop func(token.Kind) bool) (string, bool) {
	depth := 0
	first := true
	var startOff, endOff uint32
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
		if depth == 0 && stop(tok.Kind) {
			break
		}
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				p.fail(diag.SynUnexpectedToken, "unbalanced "+describe(tok))
				return "", false
			}
			depth--
		}
		p.advance()
		if first {
			startOff = tok.Span.Start
			first = false
		}
		endOff = tok.Span.End
	}
	if first {
		return "", true
	}
	return string(p.file.Content[startOff:endOff]), depth == 0
}
