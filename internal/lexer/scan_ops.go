package lexer

import (
	"irkit/internal/token"
)

// scanOperatorOrPunct is greedy for the two-byte forms (::, ->) and never
// produces >> or &&: nested generics and double references are split into
// single tokens so the parser does not have to.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	switch {
	case lx.try2(':', ':'):
		return emit(token.ColonColon)
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case '+':
		return emit(token.Plus)
	case '&':
		return emit(token.Amp)
	case '*':
		return emit(token.Star)
	case '=':
		return emit(token.Eq)
	case '#':
		return emit(token.Hash)
	case '!':
		return emit(token.Bang)
	case '?':
		return emit(token.Question)
	case '_':
		return emit(token.Underscore)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	}

	tok := emit(token.Invalid)
	lx.report(diagUnknownChar, tok.Span, "unknown character "+tok.Text)
	return tok
}

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}
