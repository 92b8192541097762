package parser

import (
	"fmt"

	"irkit/internal/diag"
	"irkit/internal/source"
	"irkit/internal/token"
)

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat consumes the next token if it has kind k.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of kind k or records an error.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.fail(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagnosticSpan(), Text: p.lx.Peek().Text}, false
}

// diagnosticSpan points at the next token, or just past the last consumed
// one when the fragment has ended.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// fail records the first error only.
func (p *Parser) fail(code diag.Code, msg string) {
	if p.err != nil {
		return
	}
	p.err = diag.Invalidf(code, "%s", msg).WithSpan(p.diagnosticSpan())
}

// spanFrom covers start up to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return start
	}
	return start.Cover(p.lastSpan)
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of fragment"
	case token.Ident, token.Lifetime, token.IntLit, token.StringLit:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	default:
		return fmt.Sprintf("%q", tok.Kind.String())
	}
}
