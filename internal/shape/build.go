package shape

import "irkit/internal/syntax"

func UnitStruct[T any](attrs ...syntax.Attribute) *Struct[T] {
	return &Struct[T]{Kind: KindUnit, Attributes: attrs}
}

// TupleStruct numbers its fields from zero.
func TupleStruct[T any](elems []T, attrs ...syntax.Attribute) *Struct[T] {
	return &Struct[T]{Kind: KindTuple, Fields: positional(elems), Attributes: attrs}
}

func NamedStruct[T any](fields []Field[T], attrs ...syntax.Attribute) *Struct[T] {
	return &Struct[T]{Kind: KindNamed, Fields: fields, Attributes: attrs}
}

func NewEnum[T any](variants []Variant[T], attrs ...syntax.Attribute) *Enum[T] {
	return &Enum[T]{Variants: variants, Attributes: attrs}
}

func UnitVariant[T any](name string, attrs ...syntax.Attribute) Variant[T] {
	return Variant[T]{Name: name, Kind: KindUnit, Attributes: attrs}
}

func TupleVariant[T any](name string, elems []T, attrs ...syntax.Attribute) Variant[T] {
	return Variant[T]{Name: name, Kind: KindTuple, Fields: positional(elems), Attributes: attrs}
}

func NamedVariant[T any](name string, fields []Field[T], attrs ...syntax.Attribute) Variant[T] {
	return Variant[T]{Name: name, Kind: KindNamed, Fields: fields, Attributes: attrs}
}

// NamedField builds a field reached by name.
func NamedField[T any](name string, elem T) Field[T] {
	return Field[T]{Accessor: Named(name), Element: elem}
}

func positional[T any](elems []T) []Field[T] {
	if len(elems) == 0 {
		return nil
	}
	fields := make([]Field[T], len(elems))
	for i, e := range elems {
		fields[i] = Field[T]{Accessor: Index(i), Element: e}
	}
	return fields
}
