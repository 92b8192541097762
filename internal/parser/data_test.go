package parser

import (
	"testing"

	"irkit/internal/diag"
	"irkit/internal/syntax"
)

func mustDecl(t *testing.T, text string) *syntax.DataDecl {
	t.Helper()
	decl, err := ParseDataDecl(fragment(t, text))
	if err != nil {
		t.Fatalf("ParseDataDecl(%q): %v", text, err)
	}
	return decl
}

func TestParseStructForms(t *testing.T) {
	unit := mustDecl(t, "struct Marker;")
	if unit.Fields.Kind != syntax.FieldsUnit {
		t.Fatalf("expected unit struct, got %v", unit.Fields.Kind)
	}

	tuple := mustDecl(t, "pub struct Pair<A, B>(pub A, B) where A: Clone;")
	if !tuple.Public || tuple.Fields.Kind != syntax.FieldsTuple || len(tuple.Fields.List) != 2 {
		t.Fatalf("unexpected tuple struct: %+v", tuple)
	}
	if !tuple.Fields.List[0].Public || tuple.Fields.List[1].Public {
		t.Fatalf("field visibility lost: %+v", tuple.Fields.List)
	}
	if len(tuple.Generics.Params) != 2 || len(tuple.Generics.Where) != 1 {
		t.Fatalf("unexpected generics: %+v", tuple.Generics)
	}

	named := mustDecl(t, "struct Point<'a, T> where T: Copy { x: T, pub(crate) label: &'a str, }")
	if named.Fields.Kind != syntax.FieldsNamed || len(named.Fields.List) != 2 {
		t.Fatalf("unexpected named struct: %+v", named.Fields)
	}
	if named.Fields.List[1].Name != "label" || named.Fields.List[1].Type.Kind != syntax.TypeReference {
		t.Fatalf("unexpected field: %+v", named.Fields.List[1])
	}
}

func TestParseEnum(t *testing.T) {
	decl := mustDecl(t, `#[derive(Debug, Clone)]
#[repr(u8)]
enum Shape<T> {
    #[default]
    Empty,
    Circle(T),
    Rect { w: T, h: T },
    Code = 7,
}`)
	if decl.Kind != syntax.DataEnum || len(decl.Variants) != 4 {
		t.Fatalf("unexpected enum: %+v", decl)
	}
	if len(decl.Attrs) != 2 || decl.Attrs[0].PathString() != "derive" || decl.Attrs[0].Tokens != "(Debug, Clone)" {
		t.Fatalf("unexpected attrs: %+v", decl.Attrs)
	}
	if got := decl.Attrs[1].String(); got != "#[repr(u8)]" {
		t.Fatalf("attr rendering %q", got)
	}
	if len(decl.Variants[0].Attrs) != 1 || decl.Variants[0].Fields.Kind != syntax.FieldsUnit {
		t.Fatalf("unexpected first variant: %+v", decl.Variants[0])
	}
	if decl.Variants[1].Fields.Kind != syntax.FieldsTuple || decl.Variants[2].Fields.Kind != syntax.FieldsNamed {
		t.Fatalf("unexpected variant shapes: %+v", decl.Variants)
	}
	if decl.Variants[3].Discriminant != "7" {
		t.Fatalf("discriminant %q", decl.Variants[3].Discriminant)
	}
}

func TestParseAttributeWithString(t *testing.T) {
	decl := mustDecl(t, `#[doc = "a [bracket] inside"] struct S;`)
	if decl.Attrs[0].Tokens != `= "a [bracket] inside"` {
		t.Fatalf("tokens %q", decl.Attrs[0].Tokens)
	}
	if got := decl.Attrs[0].String(); got != `#[doc = "a [bracket] inside"]` {
		t.Fatalf("attr rendering %q", got)
	}
}

func TestParseDataDeclErrors(t *testing.T) {
	_, err := ParseDataDecl(fragment(t, "union U { a: u8 }"))
	requireCode(t, err, diag.SynExpectDataDecl)

	_, err = ParseDataDecl(fragment(t, "struct S(A, B)"))
	requireCode(t, err, diag.SynUnexpectedToken)

	_, err = ParseDataDecl(fragment(t, "#[derive(Debug) struct S;"))
	requireCode(t, err, diag.LexUnterminatedAttribute)

	_, err = ParseDataDecl(fragment(t, "enum E { A(u8 }"))
	requireCode(t, err, diag.SynUnclosedParen)
}
