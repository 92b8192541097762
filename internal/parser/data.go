package parser

import (
	"irkit/internal/diag"
	"irkit/internal/syntax"
	"irkit/internal/token"
)

// parseDataDecl parses
//
//	#[attr] pub struct Name<T> where T: X;
//	#[attr] pub struct Name<T>(A, B) where T: X;
//	#[attr] pub struct Name<T> where T: X { a: A }
//	#[attr] pub enum Name<T> where T: X { Unit, Tuple(A), Named { a: A } = 3 }
func (p *Parser) parseDataDecl() (*syntax.DataDecl, bool) {
	start := p.lx.Peek().Span
	decl := &syntax.DataDecl{}
	attrs, ok := p.parseAttributes()
	if !ok {
		return nil, false
	}
	decl.Attrs = attrs
	if decl.Public, ok = p.parseVisibility(); !ok {
		return nil, false
	}

	switch {
	case p.at(token.KwStruct):
		decl.Kind = syntax.DataStruct
	case p.at(token.KwEnum):
		decl.Kind = syntax.DataEnum
	default:
		p.fail(diag.SynExpectDataDecl, "expected struct or enum, found "+describe(p.lx.Peek()))
		return nil, false
	}
	p.advance()

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name")
	if !ok {
		return nil, false
	}
	decl.Name = name.Text
	if decl.Generics, ok = p.parseGenericsDecl(); !ok {
		return nil, false
	}

	if decl.Kind == syntax.DataStruct {
		if !p.parseStructBody(decl) {
			return nil, false
		}
	} else {
		if decl.Generics.Where, ok = p.parseWhereClause(); !ok {
			return nil, false
		}
		if !p.parseEnumBody(decl) {
			return nil, false
		}
	}
	decl.Span = p.spanFrom(start)
	return decl, true
}

func (p *Parser) parseStructBody(decl *syntax.DataDecl) bool {
	var ok bool
	if p.at(token.LParen) {
		if decl.Fields, ok = p.parseTupleFields(); !ok {
			return false
		}
		if decl.Generics.Where, ok = p.parseWhereClause(); !ok {
			return false
		}
		_, ok = p.expect(token.Semicolon, diag.SynUnexpectedToken, "expected ';' after tuple struct")
		return ok
	}
	if decl.Generics.Where, ok = p.parseWhereClause(); !ok {
		return false
	}
	if semi, ok := p.eat(token.Semicolon); ok {
		decl.Fields = syntax.Fields{Kind: syntax.FieldsUnit, Span: semi.Span}
		return true
	}
	if p.at(token.LBrace) {
		decl.Fields, ok = p.parseNamedFields()
		return ok
	}
	p.fail(diag.SynUnexpectedToken, "expected ';', '(' or '{' after struct name, found "+describe(p.lx.Peek()))
	return false
}

func (p *Parser) parseEnumBody(decl *syntax.DataDecl) bool {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after enum name"); !ok {
		return false
	}
	for !p.at(token.RBrace) {
		v, ok := p.parseVariant()
		if !ok {
			return false
		}
		decl.Variants = append(decl.Variants, v)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	_, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close enum body")
	return ok
}

func (p *Parser) parseVariant() (syntax.VariantDecl, bool) {
	start := p.lx.Peek().Span
	attrs, ok := p.parseAttributes()
	if !ok {
		return syntax.VariantDecl{}, false
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variant name, found "+describe(p.lx.Peek()))
	if !ok {
		return syntax.VariantDecl{}, false
	}
	v := syntax.VariantDecl{Attrs: attrs, Name: name.Text}
	switch {
	case p.at(token.LParen):
		if v.Fields, ok = p.parseTupleFields(); !ok {
			return syntax.VariantDecl{}, false
		}
	case p.at(token.LBrace):
		if v.Fields, ok = p.parseNamedFields(); !ok {
			return syntax.VariantDecl{}, false
		}
	default:
		v.Fields = syntax.Fields{Kind: syntax.FieldsUnit, Span: name.Span}
	}
	if _, ok := p.eat(token.Eq); ok {
		text, ok := p.rawUntil(func(k token.Kind) bool { return k == token.Comma || k == token.RBrace })
		if !ok {
			return syntax.VariantDecl{}, false
		}
		v.Discriminant = text
	}
	v.Span = p.spanFrom(start)
	return v, true
}

func (p *Parser) parseTupleFields() (syntax.Fields, bool) {
	start := p.advance().Span // (
	fields := syntax.Fields{Kind: syntax.FieldsTuple}
	for !p.at(token.RParen) {
		f, ok := p.parseField(false)
		if !ok {
			return syntax.Fields{}, false
		}
		fields.List = append(fields.List, f)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close tuple fields"); !ok {
		return syntax.Fields{}, false
	}
	fields.Span = p.spanFrom(start)
	return fields, true
}

func (p *Parser) parseNamedFields() (syntax.Fields, bool) {
	start := p.advance().Span // {
	fields := syntax.Fields{Kind: syntax.FieldsNamed}
	for !p.at(token.RBrace) {
		f, ok := p.parseField(true)
		if !ok {
			return syntax.Fields{}, false
		}
		fields.List = append(fields.List, f)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close struct fields"); !ok {
		return syntax.Fields{}, false
	}
	fields.Span = p.spanFrom(start)
	return fields, true
}

func (p *Parser) parseField(named bool) (syntax.FieldDecl, bool) {
	start := p.lx.Peek().Span
	attrs, ok := p.parseAttributes()
	if !ok {
		return syntax.FieldDecl{}, false
	}
	f := syntax.FieldDecl{Attrs: attrs}
	if f.Public, ok = p.parseVisibility(); !ok {
		return syntax.FieldDecl{}, false
	}
	if named {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name, found "+describe(p.lx.Peek()))
		if !ok {
			return syntax.FieldDecl{}, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
			return syntax.FieldDecl{}, false
		}
		f.Name = name.Text
	}
	ty, ok := p.parseType()
	if !ok {
		return syntax.FieldDecl{}, false
	}
	f.Type = ty
	f.Span = p.spanFrom(start)
	return f, true
}

// parseVisibility accepts `pub` and restricted forms such as `pub(crate)`.
func (p *Parser) parseVisibility() (bool, bool) {
	if _, ok := p.eat(token.KwPub); !ok {
		return false, true
	}
	if _, ok := p.eat(token.LParen); ok {
		if _, ok := p.rawUntil(func(k token.Kind) bool { return k == token.RParen }); !ok {
			return false, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close visibility"); !ok {
			return false, false
		}
	}
	return true, true
}
