package ir

import (
	"slices"
	"testing"

	"irkit/internal/diag"
	"irkit/internal/shape"
	"irkit/internal/trace"
)

func TestTupleStructBindingIndex(t *testing.T) {
	ctx := NewContext()
	pair, err := ctx.ParseDataDecl("struct Pair(String, &'static str);")
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	p := ctx.Binding("p", pair)
	second := p.Index(1)
	if second.Kind() != ValueDestructure {
		t.Fatalf("kind: %s", second.Kind())
	}
	if second.Type() != pair.Index(1) {
		t.Fatalf("type: got %s, want %s", second.Type(), pair.Index(1))
	}
	if got := second.Type().String(); got != "&'static str" {
		t.Fatalf("type string: %q", got)
	}
	d := second.Node().Data.(DestructureData)
	if d.Parent != p.ID || d.Accessor != shape.Index(1) {
		t.Fatalf("destructure: %+v", d)
	}
	expectFail(t, diag.IntIndexOutOfRange, func() { p.Index(2) })
}

func TestTupleStructLiteralIndex(t *testing.T) {
	ctx := NewContext()
	lit := ctx.DataValue("Pair", shape.TupleStruct([]Value{
		ctx.StrValue("a"),
		ctx.StrValue("b").Reference(),
	}))
	second := lit.Index(1)
	if second.Kind() != ValueDestructure {
		t.Fatalf("kind: %s", second.Kind())
	}
	if second.Type() != ctx.Str().Reference() {
		t.Fatalf("type: %s", second.Type())
	}
	expectFail(t, diag.IntIndexOutOfRange, func() { lit.Index(5) })
}

func TestTupleIndex(t *testing.T) {
	ctx := NewContext()
	a, b := ctx.StrValue("a"), ctx.StrValue("b")
	tuple := ctx.TupleValue(a, b)
	if tuple.Index(1) != b {
		t.Fatalf("tuple index must return the element itself")
	}
	expectFail(t, diag.IntIndexOutOfRange, func() { tuple.Index(2) })

	bound := ctx.Binding("t", ctx.Tuple(ctx.Str(), ctx.Unit()))
	elem := bound.Index(1)
	if elem.Kind() != ValueDestructure || elem.Type() != ctx.Unit() {
		t.Fatalf("binding index: %s %s", elem.Kind(), elem.Type())
	}
	expectFail(t, diag.IntIndexOutOfRange, func() { bound.Index(2) })
}

func TestIndexFallback(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := NewContext(WithTracer(ring))
	g := mustGenerics(t, ctx, "<T>")
	unknown := ctx.Binding("x", mustType(t, ctx, "T", g.Names))
	v := unknown.Index(3)
	if v.Kind() != ValueDestructure || v.Type().Kind() != KindInfer {
		t.Fatalf("fallback: %s %s", v.Kind(), v.Type())
	}
	if !slices.Contains(ring.Names(), "index-fallback") {
		t.Fatalf("fallback must be traced: %v", ring.Names())
	}

	// a literal whose field has no type also falls back
	inner := ctx.DataValue("Inner", shape.UnitStruct[Value]())
	outer := ctx.DataValue("Outer", shape.TupleStruct([]Value{inner}))
	if outer.Index(0).Type() != ctx.Infer() {
		t.Fatalf("untyped field should fall back to an inferred type")
	}
}

func TestValueReferences(t *testing.T) {
	ctx := NewContext()
	s := ctx.StrValue("x")
	if s.Reference().Dereference() != s || s.ReferenceMut().Dereference() != s {
		t.Fatalf("dereference of a reference yields the value")
	}
	if got := s.ReferenceMut().Type().String(); got != "&mut str" {
		t.Fatalf("type: %q", got)
	}
	r := ctx.Binding("r", ctx.Str().Reference())
	deref := r.Dereference()
	if deref.Kind() != ValueDereference || deref.Type() != ctx.Str() {
		t.Fatalf("deref: %s %s", deref.Kind(), deref.Type())
	}
}

func TestValueAsData(t *testing.T) {
	ctx := NewContext()
	point, err := ctx.ParseDataDecl("struct Point { x: String, y: u8 }")
	if err != nil {
		t.Fatalf("point: %v", err)
	}
	p := ctx.Binding("p", point)
	fields, ok := shape.AsStruct(p.AsData())
	if !ok || len(fields.Fields) != 2 {
		t.Fatalf("fields: %+v", p.AsData())
	}
	y := fields.Fields[1]
	if y.Accessor != shape.Named("y") || y.Element.Kind() != ValueDestructure {
		t.Fatalf("y: %+v", y)
	}
	declared, _ := shape.AsStruct(point.AsData())
	if y.Element.Type() != declared.Fields[1].Element {
		t.Fatalf("y type: %s", y.Element.Type())
	}

	refFields, _ := shape.AsStruct(p.ReferenceMut().AsData())
	if got := refFields.Fields[0].Element.Type().String(); got != "&mut String" {
		t.Fatalf("field behind &mut: %q", got)
	}

	lit := ctx.DataValue("Point", shape.NamedStruct([]shape.Field[Value]{
		shape.NamedField("x", ctx.StrValue("a")),
	}))
	litFields, _ := shape.AsStruct(lit.AsData())
	if litFields.Fields[0].Element.Kind() != ValueStr {
		t.Fatalf("literal fields are the values themselves")
	}

	expectFail(t, diag.IntNotData, func() { ctx.StrValue("s").AsData() })
}

func TestValueTypes(t *testing.T) {
	ctx := NewContext()
	str := ctx.Str()
	pair := ctx.TupleValue(ctx.StrValue("a"), ctx.StrValue("b").Reference())
	if pair.Type() != ctx.Tuple(str, str.Reference()) {
		t.Fatalf("tuple type: %s", pair.Type())
	}
	if ctx.TupleValue().Type() != ctx.Unit() {
		t.Fatalf("unit value")
	}
	lit := ctx.DataValue("Point", shape.UnitStruct[Value]())
	expectFail(t, diag.IntUntypedValue, func() { lit.Type() })
	macro := ctx.RootModule().Module("std").InvokeMacro("format", ctx.StrValue("{}"))
	expectFail(t, diag.IntUntypedValue, func() { macro.Type() })
	expectFail(t, diag.IntUntypedValue, func() { macro.TypeName() })
	expectFail(t, diag.IntUntypedValue, func() { ctx.TupleValue(lit).Type() })
}

func TestValueTypeNames(t *testing.T) {
	ctx := NewContext()
	g := mustGenerics(t, ctx, "<T>")
	lit := ctx.DataValue("Point", shape.UnitStruct[Value]())
	tests := []struct {
		v    Value
		want string
	}{
		{lit, "Point"},
		{lit.Reference(), "Point"},
		{ctx.StrValue("a"), "str"},
		{ctx.Binding("v", mustType(t, ctx, "Vec<T>", g.Names)), "Vec<T>"},
		{ctx.TupleValue(ctx.StrValue("a")), "(str)"},
		{ctx.TupleValue(lit, ctx.StrValue("x")), "(Point, str)"},
		{ctx.TupleValue(ctx.TupleValue(lit.Reference()), ctx.TupleValue()), "((Point), ())"},
	}
	for _, tt := range tests {
		if got := tt.v.TypeName(); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.v, got, tt.want)
		}
	}
	macro := ctx.RelativeModule().InvokeMacro("m")
	expectFail(t, diag.IntUntypedValue, func() { ctx.TupleValue(lit, macro).TypeName() })

	name := lit.TypeNameValue()
	if d, ok := name.Node().Data.(StrData); !ok || d.Text != "Point" {
		t.Fatalf("type name value: %+v", name.Node())
	}
}

func TestInvoke(t *testing.T) {
	ctx := NewContext()
	usize := mustType(t, ctx, "usize", nil)
	length := &Function{Sig: Signature{Name: "len", Inputs: []Type{ctx.Str().Reference()}, Output: usize}}
	arg := ctx.StrValue("abc").Reference()
	call := ctx.Invoke(length, arg)
	if call.Kind() != ValueInvoke || call.Type() != usize {
		t.Fatalf("call: %s %s", call.Kind(), call.Type())
	}
	inv := ctx.Invocation(call.Node().Data.(InvokeData).Invoke)
	if inv.Function != length || len(inv.Args) != 1 || inv.Args[0] != arg.ID {
		t.Fatalf("invocation: %+v", inv)
	}

	unit := &Function{Sig: Signature{Name: "drop"}}
	if ctx.Invoke(unit).Type() != ctx.Unit() {
		t.Fatalf("a function without output returns unit")
	}
	expectFail(t, diag.IntBadHandle, func() { ctx.InvokeValue(99) })
}

func TestEveryValueKind(t *testing.T) {
	ctx := NewContext()
	s := ctx.StrValue("s")
	byKind := map[ValueKind]Value{
		ValueTuple:       ctx.TupleValue(s),
		ValueStr:         s,
		ValueReference:   s.Reference(),
		ValueDereference: s.Dereference(),
		ValueBinding:     ctx.Binding("b", ctx.Str()),
		ValueData:        ctx.DataValue("D", shape.UnitStruct[Value]()),
		ValueInvoke:      ctx.Invoke(&Function{Sig: Signature{Name: "f"}}),
		ValueDestructure: ctx.Destructure(s, shape.Index(0), Prelude.Str),
		ValueMacro:       ctx.RelativeModule().InvokeMacro("m"),
	}
	empty := ctx.newSubst()
	for _, k := range valueKinds {
		v, ok := byKind[k]
		if !ok {
			t.Fatalf("no sample for kind %s", k)
		}
		if v.Kind() != k {
			t.Fatalf("sample for %s has kind %s", k, v.Kind())
		}
		if got := payloadKind(v.Node().Data); got != k {
			t.Fatalf("%s node carries a %s payload", k, got)
		}
		err := ctx.Run("every-kind", func() error {
			v.typeOf()
			return nil
		})
		if err != nil {
			t.Fatalf("typeOf(%s): %v", k, err)
		}
		if moved := empty.Value(v); moved.Kind() != k {
			t.Fatalf("substitution changed the kind of %s", k)
		}
	}
}

func payloadKind(p ValuePayload) ValueKind {
	switch p.(type) {
	case TupleData:
		return ValueTuple
	case StrData:
		return ValueStr
	case ReferenceData:
		return ValueReference
	case DereferenceData:
		return ValueDereference
	case BindingData:
		return ValueBinding
	case DataLitData:
		return ValueData
	case InvokeData:
		return ValueInvoke
	case DestructureData:
		return ValueDestructure
	case MacroData:
		return ValueMacro
	}
	return ValueInvalid
}
