package shape

import (
	"irkit/internal/diag"
	"irkit/internal/syntax"
)

type Kind uint8

const (
	KindUnit  Kind = iota // struct S; / Variant
	KindTuple             // struct S(A, B); / Variant(A, B)
	KindNamed             // struct S { a: A } / Variant { a: A }
)

var kindNames = [...]string{
	KindUnit:  "unit",
	KindTuple: "tuple",
	KindNamed: "named",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Field pairs an accessor with the element stored in the field.
type Field[T any] struct {
	Accessor Accessor
	Element  T
}

// Data is either a *Struct[T] or an *Enum[T]. The element type is part of
// the method set, so a Data[Type] and a Data[Value] never convert into each
// other.
type Data[T any] interface {
	Attrs() []syntax.Attribute
	fieldGroups() [][]Field[T]
}

type Struct[T any] struct {
	Kind       Kind
	Fields     []Field[T]
	Attributes []syntax.Attribute
}

type Enum[T any] struct {
	Variants   []Variant[T]
	Attributes []syntax.Attribute
}

type Variant[T any] struct {
	Name       string
	Kind       Kind
	Fields     []Field[T]
	Attributes []syntax.Attribute
}

func (s *Struct[T]) Attrs() []syntax.Attribute { return s.Attributes }
func (e *Enum[T]) Attrs() []syntax.Attribute   { return e.Attributes }

func (s *Struct[T]) fieldGroups() [][]Field[T] { return [][]Field[T]{s.Fields} }

func (e *Enum[T]) fieldGroups() [][]Field[T] {
	groups := make([][]Field[T], len(e.Variants))
	for i := range e.Variants {
		groups[i] = e.Variants[i].Fields
	}
	return groups
}

// FieldCount counts the fields of d, across all variants of an enum.
func FieldCount[T any](d Data[T]) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, g := range d.fieldGroups() {
		n += len(g)
	}
	return n
}

// Elements returns the field elements in declaration order.
func (s *Struct[T]) Elements() []T {
	return elements(s.Fields)
}

func (v *Variant[T]) Elements() []T {
	return elements(v.Fields)
}

// Variant looks a variant up by name.
func (e *Enum[T]) Variant(name string) (*Variant[T], bool) {
	for i := range e.Variants {
		if e.Variants[i].Name == name {
			return &e.Variants[i], true
		}
	}
	return nil, false
}

func elements[T any](fields []Field[T]) []T {
	out := make([]T, len(fields))
	for i, f := range fields {
		out[i] = f.Element
	}
	return out
}

// AsStruct returns d as a struct, if it is one.
func AsStruct[T any](d Data[T]) (*Struct[T], bool) {
	s, ok := d.(*Struct[T])
	return s, ok
}

// AsTupleStruct returns d as a tuple struct, if it is one.
func AsTupleStruct[T any](d Data[T]) (*Struct[T], bool) {
	s, ok := d.(*Struct[T])
	if !ok || s.Kind != KindTuple {
		return nil, false
	}
	return s, true
}

// Map produces an independent shape of equal structure whose elements are
// f applied to every field. Attributes are shared; they are never mutated.
func Map[T, U any](d Data[T], f func(Field[T]) U) Data[U] {
	switch d := d.(type) {
	case nil:
		return nil
	case *Struct[T]:
		return &Struct[U]{
			Kind:       d.Kind,
			Fields:     mapFields(d.Fields, f),
			Attributes: d.Attributes,
		}
	case *Enum[T]:
		variants := make([]Variant[U], len(d.Variants))
		for i, v := range d.Variants {
			variants[i] = Variant[U]{
				Name:       v.Name,
				Kind:       v.Kind,
				Fields:     mapFields(v.Fields, f),
				Attributes: v.Attributes,
			}
		}
		return &Enum[U]{Variants: variants, Attributes: d.Attributes}
	default:
		diag.Fail(diag.IntUnhandledKind, "shape.Map: unhandled data %T", d)
		return nil
	}
}

// MapElements is Map for functions that only look at the element.
func MapElements[T, U any](d Data[T], f func(T) U) Data[U] {
	return Map(d, func(field Field[T]) U { return f(field.Element) })
}

func mapFields[T, U any](fields []Field[T], f func(Field[T]) U) []Field[U] {
	if fields == nil {
		return nil
	}
	out := make([]Field[U], len(fields))
	for i, field := range fields {
		out[i] = Field[U]{Accessor: field.Accessor, Element: f(field)}
	}
	return out
}
