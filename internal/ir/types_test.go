package ir

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"irkit/internal/diag"
	"irkit/internal/shape"
)

func TestTupleAndUnit(t *testing.T) {
	ctx := NewContext()
	if ctx.Tuple() != ctx.Unit() {
		t.Fatalf("empty tuple must be unit")
	}
	str := ctx.Str()
	pair := ctx.Tuple(str, str.Reference())
	if pair != ctx.Tuple(ctx.Str(), ctx.Str().Reference()) {
		t.Fatalf("tuples should be deduplicated")
	}
	if pair.Index(1) != str.Reference() {
		t.Fatalf("index 1: %s", pair.Index(1))
	}
	if got := pair.String(); got != "(str, &str)" {
		t.Fatalf("string: %q", got)
	}
	if got := ctx.Tuple(str).String(); got != "(str,)" {
		t.Fatalf("one-tuple: %q", got)
	}
	expectFail(t, diag.IntIndexOutOfRange, func() { pair.Index(2) })
	expectFail(t, diag.IntIndexOutOfRange, func() { ctx.Unit().Index(0) })
	expectFail(t, diag.IntNotATuple, func() { str.Index(0) })
}

func TestReferenceIdentity(t *testing.T) {
	ctx := NewContext()
	g := mustGenerics(t, ctx, "<'a>")
	str := ctx.Str()
	withLt, err := str.ReferenceWithLifetime("'a", g.Names)
	if err != nil {
		t.Fatalf("reference: %v", err)
	}
	mutLt, err := str.ReferenceMutWithLifetime("'a", g.Names)
	if err != nil {
		t.Fatalf("reference: %v", err)
	}
	all := []Type{str.Reference(), str.ReferenceMut(), withLt, mutLt}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if all[i] == all[j] {
				t.Fatalf("%s and %s must differ", all[i], all[j])
			}
		}
	}
	if got := mutLt.String(); got != "&'a mut str" {
		t.Fatalf("string: %q", got)
	}
	// Referencing a reference nests; dereferencing strips one layer.
	rr := str.Reference().Reference()
	if inner, ok := rr.Elem(); !ok || inner != str.Reference() {
		t.Fatalf("&&str should wrap &str, got %s", inner)
	}
	if rr.Dereference() != str.Reference() || rr.Dereference().Dereference() != str {
		t.Fatalf("dereference must strip exactly one layer")
	}
	if lt, ok := withLt.Lifetime(); !ok || lt == StaticLifetime {
		t.Fatalf("lifetime: %v %v", lt, ok)
	}
	if !mutLt.Mutable() || withLt.Mutable() {
		t.Fatalf("mutability is wrong")
	}
	if got := str.Reference().Reference().String(); got != "&&str" {
		t.Fatalf("references nest: %q", got)
	}
	_, err = str.ReferenceWithLifetime("'b", g.Names)
	requireCode(t, err, diag.IRUnknownName)
}

func TestDereference(t *testing.T) {
	ctx := NewContext()
	str := ctx.Str()
	if str.ReferenceMut().Dereference() != str {
		t.Fatalf("dereferencing a reference yields its element")
	}
	d := str.Dereference()
	if d.Kind() != KindDereference {
		t.Fatalf("kind: %s", d.Kind())
	}
	if elem, ok := d.Elem(); !ok || elem != str {
		t.Fatalf("elem: %v", elem)
	}
	if got := d.String(); got != "<str as ::core::ops::Deref>::Target" {
		t.Fatalf("string: %q", got)
	}
}

func TestTranslateType(t *testing.T) {
	ctx := NewContext()
	g := mustGenerics(t, ctx, "<'a, T>")
	tests := []struct {
		text string
		kind Kind
		want string
	}{
		{"&'a mut Vec<T>", KindReference, "&'a mut Vec<T>"},
		{"(T)", KindTypeParam, "T"},
		{"(T,)", KindTuple, "(T,)"},
		{"()", KindTuple, "()"},
		{"_", KindInfer, "_"},
		{"dyn Iterator<Item = &'a T> + 'a", KindTraitObject, "dyn Iterator<Item = &'a T> + 'a"},
		{"::std::fmt::Result", KindPath, "::std::fmt::Result"},
		{"Box<dyn Fn(T) -> U + 'static>", KindPath, "Box<dyn Fn(T) -> U + 'static>"},
		{"HashMap<String, Vec<(T, u8)>>", KindPath, "HashMap<String, Vec<(T, u8)>>"},
		{"Iterator<Item: Clone>", KindPath, "Iterator<Item: Clone>"},
		{"std::borrow::Cow<'static, str>", KindPath, "std::borrow::Cow<'static, str>"},
		{"dyn ?Sized + for<'b> Fn(&'b T)", KindTraitObject, "dyn ?Sized + for<'b> Fn(&'b T)"},
		{"str", KindPath, "str"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ty := mustType(t, ctx, tt.text, g.Names)
			if ty.Kind() != tt.kind {
				t.Fatalf("kind: got %s, want %s", ty.Kind(), tt.kind)
			}
			if got := ty.String(); got != tt.want {
				t.Fatalf("string: got %q, want %q", got, tt.want)
			}
			if again := mustType(t, ctx, tt.text, g.Names); tt.kind != KindTraitObject && again != ty {
				t.Fatalf("translation should be interned")
			}
		})
	}
	// Written `str` is an ordinary path; only Str() builds the prelude type.
	if mustType(t, ctx, "str", nil) == ctx.Str() {
		t.Fatalf("parsed str must not be the prelude str type")
	}
}

func TestTranslateTypeErrors(t *testing.T) {
	ctx := NewContext()
	g := mustGenerics(t, ctx, "<'a, T>")
	tests := []struct {
		text string
		code diag.Code
		kind diag.Kind
	}{
		{"[T; 4]", diag.UnsTypeShape, diag.KindUnsupported},
		{"[T]", diag.UnsTypeShape, diag.KindUnsupported},
		{"*const T", diag.UnsTypeShape, diag.KindUnsupported},
		{"fn(T) -> T", diag.UnsTypeShape, diag.KindUnsupported},
		{"!", diag.UnsTypeShape, diag.KindUnsupported},
		{"<T as Trait>::Item", diag.UnsQualifiedSelf, diag.KindUnsupported},
		{"Array<T, 3>", diag.UnsConstArgument, diag.KindUnsupported},
		{"&'b T", diag.IRUnknownName, diag.KindInvalid},
		{"Vec<", diag.SynExpectType, diag.KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := ctx.ParseType(tt.text, g.Names)
			de := requireCode(t, err, tt.code)
			if de.Kind != tt.kind {
				t.Fatalf("kind: got %s, want %s", de.Kind, tt.kind)
			}
		})
	}
}

func TestTypeParamFromName(t *testing.T) {
	ctx := NewContext()
	g := mustGenerics(t, ctx, "<'a, T>")
	ty, err := ctx.TypeParamFromName("T", g.Names)
	if err != nil {
		t.Fatalf("T: %v", err)
	}
	if ty != mustType(t, ctx, "T", g.Names) {
		t.Fatalf("T should resolve to the same type either way")
	}
	_, err = ctx.TypeParamFromName("'a", g.Names)
	requireCode(t, err, diag.IRNotATypeParam)
}

func TestTraitObject(t *testing.T) {
	ctx := NewContext()
	g := mustGenerics(t, ctx, "<'a, T>")
	obj, err := ctx.TraitObject(g.Names, "Iterator<Item = &'a T>", "'a")
	if err != nil {
		t.Fatalf("trait object: %v", err)
	}
	if got := obj.String(); got != "dyn Iterator<Item = &'a T> + 'a" {
		t.Fatalf("string: %q", got)
	}
	bounds, ok := obj.Bounds()
	if !ok || len(bounds) != 2 || bounds[1].Kind != BoundLifetime {
		t.Fatalf("bounds: %+v", bounds)
	}
	_, err = ctx.TraitObject(g.Names, "'x")
	requireCode(t, err, diag.IRUnknownName)
}

func TestInternedNodesAreCopiedOut(t *testing.T) {
	ctx := NewContext()
	obj, err := ctx.TraitObject(nil, "Debug", "Send")
	if err != nil {
		t.Fatalf("trait object: %v", err)
	}
	bs, _ := obj.Bounds()
	bs[0] = bs[1]
	bs[1].Path.Segments[0].Ident = "Sync"
	if got := obj.String(); got != "dyn Debug + Send" {
		t.Fatalf("trait object changed through Bounds: %q", got)
	}

	vec := mustType(t, ctx, "std::vec::Vec<str>", nil)
	p, _ := vec.Path()
	p.Segments[0].Ident = "core"
	p.Segments[2].Args.Args[0].Type = ctx.Unit()
	if got := vec.String(); got != "std::vec::Vec<str>" {
		t.Fatalf("path changed through Path: %q", got)
	}

	segs := []PathSegment{{Ident: "Rc"}}
	rc := ctx.PathType(Path{Segments: segs})
	segs[0].Ident = "Arc"
	if got := rc.String(); got != "Rc" {
		t.Fatalf("path changed through the caller's slice: %q", got)
	}
}

func TestDataStructures(t *testing.T) {
	ctx := NewContext()
	point, err := ctx.ParseDataDecl("#[derive(Debug)] struct Point { x: String, y: (u8, u8) }")
	if err != nil {
		t.Fatalf("point: %v", err)
	}
	if got := point.Name(); got != "Point" {
		t.Fatalf("name: %q", got)
	}
	str := mustType(t, ctx, "String", nil)

	data := point.AsData()
	st, ok := shape.AsStruct(data)
	if !ok || st.Kind != shape.KindNamed || len(st.Fields) != 2 {
		t.Fatalf("shape: %+v", data)
	}
	if st.Fields[0].Accessor != shape.Named("x") || st.Fields[0].Element != str {
		t.Fatalf("field x: %+v", st.Fields[0])
	}
	if attrs := data.Attrs(); len(attrs) != 1 || attrs[0].String() != "#[derive(Debug)]" {
		t.Fatalf("attrs: %v", attrs)
	}

	refData, _ := shape.AsStruct(point.ReferenceMut().AsData())
	if refData.Fields[0].Element != str.ReferenceMut() {
		t.Fatalf("mutable reference not propagated: %s", refData.Fields[0].Element)
	}
	g := mustGenerics(t, ctx, "<'a>")
	withLt, err := point.ReferenceWithLifetime("'a", g.Names)
	if err != nil {
		t.Fatalf("reference: %v", err)
	}
	wantY, _ := ctx.Tuple(mustType(t, ctx, "u8", nil), mustType(t, ctx, "u8", nil)).ReferenceWithLifetime("'a", g.Names)
	ltData, _ := shape.AsStruct(withLt.AsData())
	if ltData.Fields[1].Element != wantY {
		t.Fatalf("lifetime not propagated: %s", ltData.Fields[1].Element)
	}

	expectFail(t, diag.IntNotATuple, func() { point.Index(0) })
	expectFail(t, diag.IntNotData, func() { str.AsData() })

	again, _ := ctx.ParseDataDecl("#[derive(Debug)] struct Point { x: String, y: (u8, u8) }")
	if again == point {
		t.Fatalf("data structures are nominal")
	}
}

func TestGenericDataStructure(t *testing.T) {
	ctx := NewContext()
	wrapper, err := ctx.ParseDataDecl("struct Wrapper<'a, T: Clone>(&'a T, u32);")
	if err != nil {
		t.Fatalf("wrapper: %v", err)
	}
	if got := wrapper.String(); got != "Wrapper<'a, T>" {
		t.Fatalf("string: %q", got)
	}
	ds, _ := wrapper.DataStructure()
	if got := ds.Generics.String(); got != "<'a, T> where T: Clone" {
		t.Fatalf("generics: %q", got)
	}
	if got := wrapper.Index(0).String(); got != "&'a T" {
		t.Fatalf("field 0: %q", got)
	}
	if got := wrapper.Reference().Name(); got != "Wrapper" {
		t.Fatalf("reference name: %q", got)
	}

	enum, err := ctx.ParseDataDecl("enum Shape { Empty, Circle(u32), Rect { w: u32, h: u32 } = 3 }")
	if err != nil {
		t.Fatalf("enum: %v", err)
	}
	e, ok := enum.AsData().(*shape.Enum[Type])
	if !ok || len(e.Variants) != 3 {
		t.Fatalf("variants: %+v", enum.AsData())
	}
	rect, ok := e.Variant("Rect")
	if !ok || rect.Kind != shape.KindNamed || rect.Fields[1].Accessor != shape.Named("h") {
		t.Fatalf("rect: %+v", rect)
	}
	expectFail(t, diag.IntNotATuple, func() { enum.Index(0) })
}

func TestTypeNames(t *testing.T) {
	ctx := NewContext()
	g := mustGenerics(t, ctx, "<T>")
	str := ctx.Str()
	tests := []struct {
		ty   Type
		want string
	}{
		{ctx.Unit(), "()"},
		{ctx.Tuple(str, str.Reference()), "(str, &str)"},
		{str, "str"},
		{str.ReferenceMut(), "str"},
		{mustType(t, ctx, "Vec<T>", g.Names), "Vec<T>"},
		{mustType(t, ctx, "T", g.Names), "T"},
	}
	for _, tt := range tests {
		if got := tt.ty.Name(); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.ty, got, tt.want)
		}
	}
	expectFail(t, diag.IntUnnamedType, func() { ctx.Infer().Name() })
	expectFail(t, diag.IntUnnamedType, func() { str.Dereference().Name() })
}

// Every kind must be handled by the printer, the walker and substitution.
func TestEveryTypeKind(t *testing.T) {
	ctx := NewContext()
	obj, err := ctx.TraitObject(nil, "Debug")
	if err != nil {
		t.Fatalf("trait object: %v", err)
	}
	byKind := map[Kind]Type{
		KindInfer:       ctx.Infer(),
		KindTuple:       ctx.Unit(),
		KindStr:         ctx.Str(),
		KindReference:   ctx.Str().Reference(),
		KindDereference: ctx.Str().Dereference(),
		KindTraitObject: obj,
		KindData:        ctx.DataStructure("Unit", nil, shape.UnitStruct[Type]()),
		KindPath:        mustType(t, ctx, "Vec<u8>", nil),
		KindTypeParam:   ctx.TypeParamType(1),
	}
	for _, k := range typeKinds {
		ty, ok := byKind[k]
		if !ok {
			t.Fatalf("no sample for kind %s", k)
		}
		if ty.Kind() != k {
			t.Fatalf("sample for %s has kind %s", k, ty.Kind())
		}
		if ty.String() == "" {
			t.Fatalf("%s prints empty", k)
		}
		ctx.TypeSymbols(ty)
		if got := ctx.newSubst().Type(ty); got != ty {
			t.Fatalf("empty substitution changed %s", k)
		}
	}
}

func TestForeignHandles(t *testing.T) {
	ctx := NewContext()
	other := NewContext()
	expectFail(t, diag.IRForeignContext, func() { ctx.Tuple(other.Str()) })
	expectFail(t, diag.IntBadHandle, func() { ctx.Tuple(Type{}) })
	if (Type{}).Kind() != KindInvalid || (Type{}).String() != "<invalid>" {
		t.Fatalf("zero Type should be invalid")
	}
}

func buildType(ctx *Context, recipe []int) Type {
	stack := []Type{ctx.Str()}
	for _, op := range recipe {
		top := stack[len(stack)-1]
		switch op % 6 {
		case 0:
			stack = append(stack, ctx.Str())
		case 1:
			stack = append(stack, ctx.Unit())
		case 2:
			stack[len(stack)-1] = top.Reference()
		case 3:
			stack[len(stack)-1] = top.ReferenceMut()
		case 4:
			if len(stack) < 2 {
				stack = append(stack, ctx.Infer())
				continue
			}
			a, b := stack[len(stack)-2], top
			stack = append(stack[:len(stack)-2], ctx.Tuple(a, b))
		case 5:
			stack = append(stack, ctx.TypeParamType(1))
		}
	}
	return stack[len(stack)-1]
}

func sampleAtom(ctx *Context, i int) Type {
	switch i {
	case 0:
		return ctx.Str()
	case 1:
		return ctx.Unit()
	case 2:
		return ctx.Infer()
	case 3:
		return ctx.Str().Reference()
	default:
		return ctx.TypeParamType(1)
	}
}

func TestTypeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	ctx := NewContext()

	properties.Property("dereference undoes reference", prop.ForAll(
		func(recipe []int) bool {
			ty := buildType(ctx, recipe)
			return ty.Reference().Dereference() == ty && ty.ReferenceMut().Dereference() == ty
		},
		gen.SliceOf(gen.IntRange(0, 5)),
	))

	properties.Property("tuple index returns the element", prop.ForAll(
		func(atoms []int) bool {
			elems := make([]Type, len(atoms))
			for i, a := range atoms {
				elems[i] = sampleAtom(ctx, a)
			}
			tuple := ctx.Tuple(elems...)
			for i, e := range elems {
				if tuple.Index(i) != e {
					return false
				}
			}
			panicked := func() (failed bool) {
				defer func() { failed = recover() != nil }()
				tuple.Index(len(elems))
				return false
			}()
			return panicked
		},
		gen.SliceOf(gen.IntRange(0, 4)).SuchThat(func(v []int) bool { return len(v) > 0 }),
	))

	properties.TestingRun(t)
}
