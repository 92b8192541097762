package lexer

import (
	"testing"

	"irkit/internal/diag"
	"irkit/internal/source"
	"irkit/internal/token"
)

func lexAll(t *testing.T, input string) ([]token.Token, *Lexer) {
	t.Helper()
	fs := source.NewFragmentSet()
	id := fs.AddVirtual("test", input)
	lx := New(fs.Get(id))
	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
		if len(toks) > 256 {
			t.Fatalf("lexer did not terminate on %q", input)
		}
	}
	return toks, lx
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) {
	t.Helper()
	toks, lx := lexAll(t, input)
	if err := lx.Err(); err != nil {
		t.Fatalf("unexpected error for %q: %v", input, err)
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
}

func TestNestedGenericsSplitAngles(t *testing.T) {
	expectKinds(t, "Vec<Vec<T>>",
		token.Ident, token.Lt, token.Ident, token.Lt, token.Ident, token.Gt, token.Gt)
}

func TestDoubleReferenceSplitsAmp(t *testing.T) {
	expectKinds(t, "&&'a mut T",
		token.Amp, token.Amp, token.Lifetime, token.KwMut, token.Ident)
}

func TestPathAndArrow(t *testing.T) {
	expectKinds(t, "std::ops::Fn(u8) -> u8",
		token.Ident, token.ColonColon, token.Ident, token.ColonColon, token.Ident,
		token.LParen, token.Ident, token.RParen, token.Arrow, token.Ident)
}

func TestWherePredicate(t *testing.T) {
	expectKinds(t, "for<'a> T: ?Sized + 'a",
		token.KwFor, token.Lt, token.Lifetime, token.Gt, token.Ident, token.Colon,
		token.Question, token.Ident, token.Plus, token.Lifetime)
}

func TestUnderscore(t *testing.T) {
	expectKinds(t, "_", token.Underscore)
	expectKinds(t, "(_, _T, __T1)", token.LParen, token.Underscore, token.Comma,
		token.Ident, token.Comma, token.Ident, token.RParen)
}

func TestConstParamAndArray(t *testing.T) {
	expectKinds(t, "const N: usize", token.KwConst, token.Ident, token.Colon, token.Ident)
	expectKinds(t, "[u8; 16]", token.LBracket, token.Ident, token.Semicolon, token.IntLit, token.RBracket)
}

func TestAttribute(t *testing.T) {
	toks, lx := lexAll(t, `#[doc = "a \"b\""] struct S;`)
	if lx.Err() != nil {
		t.Fatalf("unexpected error: %v", lx.Err())
	}
	var str token.Token
	for _, tok := range toks {
		if tok.Kind == token.StringLit {
			str = tok
		}
	}
	if str.Text != `"a \"b\""` {
		t.Fatalf("string literal text = %q", str.Text)
	}
}

func TestLifetimeText(t *testing.T) {
	toks, _ := lexAll(t, "'static")
	if len(toks) != 1 || toks[0].Kind != token.Lifetime || toks[0].Text != "'static" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	if toks[0].Span.Start != 0 || toks[0].Span.End != 7 {
		t.Fatalf("unexpected span: %v", toks[0].Span)
	}
}

func TestIdentifiersAreNFC(t *testing.T) {
	// "e" + combining acute accent composes to U+00E9.
	toks, lx := lexAll(t, "Cafe\u0301")
	if lx.Err() != nil {
		t.Fatalf("unexpected error: %v", lx.Err())
	}
	if len(toks) != 1 || toks[0].Text != "Caf\u00e9" {
		t.Fatalf("identifier not normalized: %+v", toks)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFragmentSet()
	lx := New(fs.Get(fs.AddVirtual("peek", "T: Clone")))
	if p := lx.Peek(); p.Kind != token.Ident {
		t.Fatalf("peek = %v", p.Kind)
	}
	if n := lx.Next(); n.Kind != token.Ident || n.Text != "T" {
		t.Fatalf("next = %+v", n)
	}
	if n := lx.Next(); n.Kind != token.Colon {
		t.Fatalf("next = %v", n.Kind)
	}
}

func TestErrorsKeepFirst(t *testing.T) {
	_, lx := lexAll(t, "T $ @")
	err := lx.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Code != diag.LexUnknownChar {
		t.Fatalf("code = %v", err.Code)
	}
	if err.Span.Start != 2 {
		t.Fatalf("first error should point at '$', got %v", err.Span)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, lx := lexAll(t, `"abc`)
	if lx.Err() == nil || lx.Err().Code != diag.LexUnterminatedString {
		t.Fatalf("expected unterminated string, got %v", lx.Err())
	}
}

func TestBareQuote(t *testing.T) {
	_, lx := lexAll(t, "& ' T")
	if lx.Err() == nil || lx.Err().Code != diag.LexUnterminatedLifetime {
		t.Fatalf("expected lifetime error, got %v", lx.Err())
	}
}
