package ir

import (
	"strings"

	"irkit/internal/diag"
	"irkit/internal/shape"
)

// Shape is the structural description of a data-structure type.
type Shape = shape.Data[Type]

// DataStructure is the payload of a KindData type.
type DataStructure struct {
	Name     string
	Generics *Generics
	Data     Shape
}

// Elems returns the element types of a tuple. It panics for other kinds.
func (t Type) Elems() []Type {
	d := t.ctx.desc(t)
	if d.Kind != KindTuple {
		diag.Fail(diag.IntNotATuple, "%s is not a tuple", d.Kind)
	}
	return t.ctx.typesOf(t.ctx.types.tuples[d.Payload])
}

// Elem returns the referenced or dereferenced type.
func (t Type) Elem() (Type, bool) {
	d := t.ctx.desc(t)
	if d.Kind != KindReference && d.Kind != KindDereference {
		return Type{}, false
	}
	return Type{ctx: t.ctx, ID: d.Elem}, true
}

// Mutable reports whether t is a `&mut` reference.
func (t Type) Mutable() bool {
	d := t.ctx.desc(t)
	return d.Kind == KindReference && d.Mutable
}

// Lifetime returns the explicit lifetime of a reference.
func (t Type) Lifetime() (Lifetime, bool) {
	d := t.ctx.desc(t)
	if d.Kind != KindReference || !d.HasLifetime {
		return 0, false
	}
	return d.Lifetime, true
}

func (t Type) Path() (Path, bool) {
	d := t.ctx.desc(t)
	if d.Kind != KindPath {
		return Path{}, false
	}
	return t.ctx.types.paths[d.Payload].clone(), true
}

// Bounds returns a copy of the bounds of a trait object.
func (t Type) Bounds() ([]Bound, bool) {
	d := t.ctx.desc(t)
	if d.Kind != KindTraitObject {
		return nil, false
	}
	return cloneBounds(t.ctx.types.objects[d.Payload]), true
}

func (t Type) TypeParam() (TypeParam, bool) {
	d := t.ctx.desc(t)
	if d.Kind != KindTypeParam {
		return 0, false
	}
	return TypeParam(d.Payload), true
}

func (t Type) DataStructure() (*DataStructure, bool) {
	d := t.ctx.desc(t)
	if d.Kind != KindData {
		return nil, false
	}
	return t.ctx.types.datas[d.Payload], true
}

// Dereference yields the inner type of a reference and an explicit
// dereference node for anything else.
func (t Type) Dereference() Type {
	d := t.ctx.desc(t)
	if d.Kind == KindReference {
		return Type{ctx: t.ctx, ID: d.Elem}
	}
	return t.ctx.dereferenceNode(t)
}

// Index projects the n-th element of a tuple or tuple struct.
func (t Type) Index(n int) Type {
	d := t.ctx.desc(t)
	switch d.Kind {
	case KindTuple:
		elems := t.ctx.types.tuples[d.Payload]
		if n < 0 || n >= len(elems) {
			diag.Fail(diag.IntIndexOutOfRange, "index %d out of range for %d-tuple", n, len(elems))
		}
		return Type{ctx: t.ctx, ID: elems[n]}
	case KindData:
		ds := t.ctx.types.datas[d.Payload]
		st, ok := shape.AsTupleStruct(ds.Data)
		if !ok {
			diag.Fail(diag.IntNotATuple, "%s is not a tuple struct", ds.Name)
		}
		if n < 0 || n >= len(st.Fields) {
			diag.Fail(diag.IntIndexOutOfRange, "index %d out of range for %s with %d fields", n, ds.Name, len(st.Fields))
		}
		return st.Fields[n].Element
	default:
		diag.Fail(diag.IntNotATuple, "cannot index a %s type", d.Kind)
		return Type{}
	}
}

// AsData returns the shape of a data structure. For a reference to a data
// structure every field type is wrapped in the same kind of reference.
func (t Type) AsData() Shape {
	d := t.ctx.desc(t)
	switch d.Kind {
	case KindData:
		return t.ctx.types.datas[d.Payload].Data
	case KindReference:
		inner := Type{ctx: t.ctx, ID: d.Elem}
		var lt *Lifetime
		if d.HasLifetime {
			lt = &d.Lifetime
		}
		return shape.MapElements(inner.AsData(), func(field Type) Type {
			return t.ctx.reference(field, d.Mutable, lt)
		})
	default:
		diag.Fail(diag.IntNotData, "%s type is not a data structure", d.Kind)
		return nil
	}
}

// Name returns the printable identifier of t.
func (t Type) Name() string {
	d := t.ctx.desc(t)
	switch d.Kind {
	case KindTuple:
		elems := t.ctx.types.tuples[d.Payload]
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = t.ctx.printer.PrintType(Type{ctx: t.ctx, ID: e})
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindStr:
		return "str"
	case KindData:
		return t.ctx.types.datas[d.Payload].Name
	case KindReference:
		return Type{ctx: t.ctx, ID: d.Elem}.Name()
	case KindPath, KindTypeParam, KindTraitObject:
		return t.ctx.printer.PrintType(t)
	case KindInfer, KindDereference:
		diag.Fail(diag.IntUnnamedType, "%s type has no name", d.Kind)
		return ""
	default:
		diag.Fail(diag.IntUnhandledKind, "Type.Name: unhandled kind %s", d.Kind)
		return ""
	}
}

func (c *Context) typesOf(ids []TypeID) []Type {
	out := make([]Type, len(ids))
	for i, id := range ids {
		out[i] = Type{ctx: c, ID: id}
	}
	return out
}

func (c *Context) typeIDs(ts []Type) []TypeID {
	out := make([]TypeID, len(ts))
	for i, t := range ts {
		c.own(t)
		out[i] = t.ID
	}
	return out
}
