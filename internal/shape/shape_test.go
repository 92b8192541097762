package shape

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"irkit/internal/diag"
	"irkit/internal/syntax"
)

func TestTupleStructAccessors(t *testing.T) {
	s := TupleStruct([]string{"A", "B", "C"})
	if s.Kind != KindTuple || len(s.Fields) != 3 {
		t.Fatalf("unexpected struct: %+v", s)
	}
	for i, f := range s.Fields {
		if f.Accessor != Index(i) {
			t.Fatalf("field %d accessor %v", i, f.Accessor)
		}
	}
	if got := s.Fields[2].Accessor.String(); got != "2" {
		t.Fatalf("accessor string %q", got)
	}
}

func TestEnumVariantLookup(t *testing.T) {
	e := NewEnum([]Variant[int]{
		UnitVariant[int]("None"),
		TupleVariant("Some", []int{7}),
		NamedVariant("Pair", []Field[int]{NamedField("a", 1), NamedField("b", 2)}),
	})
	v, ok := e.Variant("Pair")
	if !ok || v.Kind != KindNamed || v.Fields[1].Accessor.String() != "b" {
		t.Fatalf("unexpected variant: %+v", v)
	}
	if _, ok := e.Variant("Missing"); ok {
		t.Fatal("unexpected variant found")
	}
}

func TestMapKeepsAttributes(t *testing.T) {
	attr := syntax.Attribute{Path: &syntax.Path{Segments: []syntax.PathSegment{{Ident: "repr"}}}, Tokens: "(C)"}
	d := Data[int](NamedStruct([]Field[int]{NamedField("x", 1)}, attr))
	m := MapElements(d, strconv.Itoa)
	s, ok := AsStruct(m)
	if !ok {
		t.Fatalf("expected struct, got %T", m)
	}
	if len(s.Attrs()) != 1 || s.Attrs()[0].String() != "#[repr(C)]" {
		t.Fatalf("attributes lost: %+v", s.Attrs())
	}
	if s.Fields[0].Element != "1" {
		t.Fatalf("element %q", s.Fields[0].Element)
	}
}

func TestMapIsIndependent(t *testing.T) {
	src := TupleStruct([]int{1, 2})
	out, _ := AsStruct(MapElements(Data[int](src), func(i int) int { return i * 10 }))
	out.Fields[0].Element = 99
	if src.Fields[0].Element != 1 {
		t.Fatal("mapping shares field storage with the source")
	}
}

func TestAsTupleStruct(t *testing.T) {
	if _, ok := AsTupleStruct(Data[int](UnitStruct[int]())); ok {
		t.Fatal("unit struct reported as tuple struct")
	}
	if _, ok := AsTupleStruct(Data[int](NewEnum[int](nil))); ok {
		t.Fatal("enum reported as tuple struct")
	}
	if s, ok := AsTupleStruct(Data[int](TupleStruct([]int{4}))); !ok || s.Elements()[0] != 4 {
		t.Fatal("tuple struct not recognized")
	}
}

func TestElementTypeIsPartOfData(t *testing.T) {
	var ints Data[int] = TupleStruct([]int{1, 2})
	if _, ok := any(ints).(Data[string]); ok {
		t.Fatal("a Data[int] must not satisfy Data[string]")
	}
	// T is inferred from the Data argument alone.
	s, ok := AsTupleStruct(ints)
	if !ok || len(s.Elements()) != 2 {
		t.Fatalf("tuple struct not recognized: %+v", s)
	}
	e := NewEnum([]Variant[int]{UnitVariant[int]("A"), TupleVariant("B", []int{1, 2}), NamedVariant("C", []Field[int]{NamedField("x", 3)})})
	if got := FieldCount(Data[int](e)); got != 3 {
		t.Fatalf("enum field count %d", got)
	}
	if got := FieldCount(ints); got != 2 {
		t.Fatalf("struct field count %d", got)
	}
	if got := FieldCount[int](nil); got != 0 {
		t.Fatalf("nil field count %d", got)
	}
}

type foreignData struct{}

func (foreignData) Attrs() []syntax.Attribute   { return nil }
func (foreignData) fieldGroups() [][]Field[int] { return nil }

func TestMapPanicsOnUnknownData(t *testing.T) {
	err := func() (err error) {
		defer diag.Recover(&err)
		MapElements(Data[int](foreignData{}), func(i int) int { return i })
		return nil
	}()
	var de *diag.Error
	if !errors.As(err, &de) || de.Code != diag.IntUnhandledKind {
		t.Fatalf("expected unhandled kind, got %v", err)
	}
}

// shapeSpec drives generation of random shapes.
type shapeSpec struct {
	Enum     bool
	Kinds    []uint8
	Arity    []int
	Elements []int
}

func buildShape(spec shapeSpec) Data[int] {
	fieldsFor := func(kind Kind, n int, next *int) []Field[int] {
		if kind == KindUnit {
			return nil
		}
		fields := make([]Field[int], n)
		for i := range fields {
			var elem int
			if len(spec.Elements) > 0 {
				elem = spec.Elements[*next%len(spec.Elements)]
			}
			*next++
			if kind == KindTuple {
				fields[i] = Field[int]{Accessor: Index(i), Element: elem}
			} else {
				fields[i] = NamedField("f"+strconv.Itoa(i), elem)
			}
		}
		return fields
	}
	arity := func(i int) int {
		if i < len(spec.Arity) {
			return spec.Arity[i]
		}
		return 0
	}
	next := 0
	if !spec.Enum {
		kind := KindUnit
		n := 0
		if len(spec.Kinds) > 0 {
			kind = Kind(spec.Kinds[0] % 3)
			n = arity(0)
		}
		return &Struct[int]{Kind: kind, Fields: fieldsFor(kind, n, &next)}
	}
	variants := make([]Variant[int], len(spec.Kinds))
	for i, k := range spec.Kinds {
		kind := Kind(k % 3)
		variants[i] = Variant[int]{
			Name:   "V" + strconv.Itoa(i),
			Kind:   kind,
			Fields: fieldsFor(kind, arity(i), &next),
		}
	}
	return &Enum[int]{Variants: variants}
}

func sameStructure[T, U any](a Data[T], b Data[U]) bool {
	sameFields := func(x []Field[T], y []Field[U]) bool {
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i].Accessor != y[i].Accessor {
				return false
			}
		}
		return true
	}
	switch a := a.(type) {
	case *Struct[T]:
		b, ok := b.(*Struct[U])
		return ok && a.Kind == b.Kind && sameFields(a.Fields, b.Fields)
	case *Enum[T]:
		b, ok := b.(*Enum[U])
		if !ok || len(a.Variants) != len(b.Variants) {
			return false
		}
		for i := range a.Variants {
			va, vb := a.Variants[i], b.Variants[i]
			if va.Name != vb.Name || va.Kind != vb.Kind || !sameFields(va.Fields, vb.Fields) {
				return false
			}
		}
		return true
	}
	return false
}

func TestMapPreservesShapeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	genSpec := gen.IntRange(0, 6).FlatMap(func(v any) gopter.Gen {
		n := v.(int)
		return gopter.CombineGens(
			gen.Bool(),
			gen.SliceOfN(n, gen.UInt8()),
			gen.SliceOfN(n, gen.IntRange(0, 5)),
			gen.SliceOf(gen.Int()),
		).Map(func(vals []any) shapeSpec {
			return shapeSpec{
				Enum:     vals[0].(bool),
				Kinds:    vals[1].([]uint8),
				Arity:    vals[2].([]int),
				Elements: vals[3].([]int),
			}
		})
	}, reflect.TypeOf(shapeSpec{}))

	properties.Property("mapping keeps variant, field count and accessors", prop.ForAll(
		func(spec shapeSpec) bool {
			d := buildShape(spec)
			mapped := Map(d, func(f Field[int]) string { return f.Accessor.String() + "=" + strconv.Itoa(f.Element) })
			return sameStructure(d, mapped) && FieldCount(d) == FieldCount(mapped)
		},
		genSpec,
	))

	properties.TestingRun(t)
}
