package ir

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestSourcePrinterGolden(t *testing.T) {
	ctx := NewContext()
	g := mustGenerics(t, ctx, "<'a: 'static, T: Clone + 'a, U> where U: Iterator<Item = T>")
	wrapper, err := ctx.ParseDataDecl("struct Wrapper<'a, T>(&'a T);")
	if err != nil {
		t.Fatalf("wrapper: %v", err)
	}
	clone, _, err := g.CloneFresh()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}

	cases := []struct {
		name string
		text string
	}{
		{"unit", ctx.Unit().String()},
		{"one-tuple", ctx.Tuple(ctx.Str()).String()},
		{"reference", mustType(t, ctx, "&'a mut Vec<T>", g.Names).String()},
		{"dereference", mustType(t, ctx, "Box<T>", g.Names).Dereference().String()},
		{"trait-object", mustType(t, ctx, "dyn Iterator<Item = (T, &'a str)> + Send + 'a", g.Names).String()},
		{"fn-sugar", mustType(t, ctx, "Box<dyn for<'b> Fn(&'b T) -> Option<&'b T>>", g.Names).String()},
		{"global-path", mustType(t, ctx, "::std::collections::HashMap<String, Vec<T>>", g.Names).String()},
		{"data", wrapper.String()},
		{"generics", g.String()},
		{"fresh", clone.String()},
		{"unnamed", ctx.TypeParamType(100).String()},
	}
	var sb strings.Builder
	for _, c := range cases {
		sb.WriteString(c.name)
		sb.WriteString(": ")
		sb.WriteString(c.text)
		sb.WriteByte('\n')
	}

	gold := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	gold.Assert(t, "printer", []byte(sb.String()))
}

type bracketPrinter struct {
	SourcePrinter
}

func (p bracketPrinter) PrintType(t Type) string {
	return "[" + p.SourcePrinter.PrintType(t) + "]"
}

func TestCustomPrinter(t *testing.T) {
	ctx := NewContext(WithPrinter(bracketPrinter{}))
	g := mustGenerics(t, ctx, "<T: Clone>")
	if got := ctx.Tuple(ctx.Str(), ctx.Unit()).Name(); got != "([str], [()])" {
		t.Fatalf("name: %q", got)
	}
	if got := g.String(); got != "<T> where [T]: Clone" {
		t.Fatalf("generics: %q", got)
	}
	ctx.SetPrinter(nil)
	if _, ok := ctx.Printer().(SourcePrinter); !ok {
		t.Fatalf("nil resets to the source printer")
	}
}
