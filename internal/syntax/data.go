package syntax

import (
	"irkit/internal/source"
)

type DataKind uint8

const (
	DataStruct DataKind = iota
	DataEnum
)

type FieldsKind uint8

const (
	FieldsUnit  FieldsKind = iota // struct S; / Variant
	FieldsTuple                   // struct S(A, B); / Variant(A, B)
	FieldsNamed                   // struct S { a: A } / Variant { a: A }
)

type Fields struct {
	Kind FieldsKind
	List []FieldDecl
	Span source.Span
}

type FieldDecl struct {
	Attrs  []Attribute
	Public bool
	Name   string // empty for tuple fields
	Type   *Type
	Span   source.Span
}

type VariantDecl struct {
	Attrs        []Attribute
	Name         string
	Fields       Fields
	Discriminant string // `= expr` text, empty when absent
	Span         source.Span
}

// DataDecl is a struct or enum declaration.
type DataDecl struct {
	Attrs    []Attribute
	Public   bool
	Kind     DataKind
	Name     string
	Generics Generics
	Fields   Fields        // DataStruct
	Variants []VariantDecl // DataEnum
	Span     source.Span
}
