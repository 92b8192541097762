package ir

import (
	"strconv"
	"strings"

	"irkit/internal/diag"
	"irkit/internal/shape"
	"irkit/internal/trace"
)

// Index projects the n-th positional element of v. Tuples and tuple-struct
// literals and bindings of tuple or tuple-struct type are projected with
// their exact element type. Any other value yields a destructure of
// inferred type.
func (v Value) Index(n int) Value {
	c := v.ctx
	switch d := v.Node().Data.(type) {
	case TupleData:
		if n < 0 || n >= len(d.Elems) {
			diag.Fail(diag.IntIndexOutOfRange, "index %d out of range for %d-tuple", n, len(d.Elems))
		}
		return c.value(d.Elems[n])

	case BindingData:
		switch d.Type.Kind() {
		case KindTuple:
			return c.destructure(v, shape.Index(n), d.Type.Index(n))
		case KindData:
			ds, _ := d.Type.DataStructure()
			if _, ok := shape.AsTupleStruct(ds.Data); ok {
				return c.destructure(v, shape.Index(n), d.Type.Index(n))
			}
		}

	case DataLitData:
		if st, ok := shape.AsTupleStruct(d.Data); ok {
			if n < 0 || n >= len(st.Fields) {
				diag.Fail(diag.IntIndexOutOfRange, "index %d out of range for %s with %d fields", n, d.Name, len(st.Fields))
			}
			if ty, ok := c.value(st.Fields[n].Element).typeOf(); ok {
				return c.destructure(v, shape.Index(n), ty)
			}
		}
	}

	c.point(trace.ScopeStep, "index-fallback", v.Kind().String(), "index", strconv.Itoa(n))
	return c.destructure(v, shape.Index(n), c.Infer())
}

// AsData exposes v as a shape of values: the fields of a data literal, the
// fields of a binding as destructures, or for a reference the referenced
// value's fields each behind the same kind of reference.
func (v Value) AsData() shape.Data[Value] {
	c := v.ctx
	switch d := v.Node().Data.(type) {
	case DataLitData:
		return shape.MapElements(d.Data, c.value)
	case ReferenceData:
		return shape.MapElements(c.value(d.Elem).AsData(), func(field Value) Value {
			if d.Mutable {
				return field.ReferenceMut()
			}
			return field.Reference()
		})
	case BindingData:
		return shape.Map(d.Type.AsData(), func(field shape.Field[Type]) Value {
			return c.destructure(v, field.Accessor, field.Element)
		})
	default:
		diag.Fail(diag.IntNotData, "%s value is not a data structure", v.Kind())
		return nil
	}
}

// Type computes the type of v. Data literals and macro invocations carry no
// type; asking for one panics.
func (v Value) Type() Type {
	t, ok := v.typeOf()
	if !ok {
		diag.Fail(diag.IntUntypedValue, "%s value has no type", v.Kind())
	}
	return t
}

// LookupType is Type without the panic.
func (v Value) LookupType() (Type, bool) { return v.typeOf() }

// ResolveType lets a Value stand wherever a type is expected.
func (v Value) ResolveType(ctx *Context) Type {
	ctx.ownValue(v)
	return v.Type()
}

func (v Value) typeOf() (Type, bool) {
	c := v.ctx
	node := v.Node()
	switch d := node.Data.(type) {
	case TupleData:
		elems := make([]Type, len(d.Elems))
		for i, id := range d.Elems {
			t, ok := c.value(id).typeOf()
			if !ok {
				return Type{}, false
			}
			elems[i] = t
		}
		return c.Tuple(elems...), true
	case StrData:
		return c.Str(), true
	case ReferenceData:
		inner, ok := c.value(d.Elem).typeOf()
		if !ok {
			return Type{}, false
		}
		return c.reference(inner, d.Mutable, nil), true
	case DereferenceData:
		inner, ok := c.value(d.Elem).typeOf()
		if !ok {
			return Type{}, false
		}
		return inner.Dereference(), true
	case BindingData:
		return d.Type, true
	case DestructureData:
		return d.Type, true
	case InvokeData:
		out := c.Invocation(d.Invoke).Function.Sig.Output
		if !out.IsValid() {
			return c.Unit(), true
		}
		return out, true
	case DataLitData, MacroData:
		return Type{}, false
	default:
		diag.Fail(diag.IntUnhandledKind, "Value.Type: unhandled kind %s", node.Kind)
		return Type{}, false
	}
}

// TypeName is the printable name of v's type. A data literal answers with
// its own name even though it carries no Type, and so does a tuple holding
// one.
func (v Value) TypeName() string {
	switch d := v.Node().Data.(type) {
	case TupleData:
		parts := make([]string, len(d.Elems))
		for i, id := range d.Elems {
			parts[i] = v.ctx.value(id).TypeName()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case DataLitData:
		return d.Name
	case ReferenceData:
		return v.ctx.value(d.Elem).TypeName()
	case MacroData:
		diag.Fail(diag.IntUntypedValue, "macro invocation has no type name")
		return ""
	default:
		return v.Type().Name()
	}
}

// TypeNameValue wraps TypeName in a string literal value.
func (v Value) TypeNameValue() Value {
	return v.ctx.StrValue(v.TypeName())
}

func (v Value) String() string {
	if !v.IsValid() {
		return "<invalid>"
	}
	return v.Kind().String() + "#" + strconv.FormatUint(uint64(v.ID), 10)
}
