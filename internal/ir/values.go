package ir

import (
	"fmt"
	"strconv"

	"irkit/internal/arena"
	"irkit/internal/diag"
	"irkit/internal/shape"
	"irkit/internal/trace"
)

type (
	// ValueID identifies a value node inside a Context.
	ValueID = arena.Ref
	// InvokeID identifies a recorded function invocation.
	InvokeID = arena.Ref
	// MacroID identifies a recorded macro invocation.
	MacroID = arena.Ref
)

type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueTuple
	ValueStr
	ValueReference
	ValueDereference
	ValueBinding
	ValueData
	ValueInvoke
	ValueDestructure
	ValueMacro
)

var valueKinds = []ValueKind{
	ValueTuple, ValueStr, ValueReference, ValueDereference, ValueBinding,
	ValueData, ValueInvoke, ValueDestructure, ValueMacro,
}

var valueKindNames = [...]string{
	ValueInvalid:     "invalid",
	ValueTuple:       "tuple",
	ValueStr:         "str",
	ValueReference:   "reference",
	ValueDereference: "dereference",
	ValueBinding:     "binding",
	ValueData:        "data",
	ValueInvoke:      "invoke",
	ValueDestructure: "destructure",
	ValueMacro:       "macro",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", k)
}

// ValueNode is the stored form of a value. Data holds the payload matching
// Kind.
type ValueNode struct {
	Kind ValueKind
	Data ValuePayload
}

// ValuePayload is implemented by the payload structs below.
type ValuePayload interface {
	valuePayload()
}

type TupleData struct {
	Elems []ValueID
}

// StrData is a string literal; Text is kept exactly as given.
type StrData struct {
	Text string
}

type ReferenceData struct {
	Mutable bool
	Elem    ValueID
}

type DereferenceData struct {
	Elem ValueID
}

// BindingData is a named variable whose type the caller vouches for.
type BindingData struct {
	Name string
	Type Type
}

type DataLitData struct {
	Name string
	Data shape.Data[ValueID]
}

type InvokeData struct {
	Invoke InvokeID
}

// DestructureData projects the field at Accessor out of Parent.
type DestructureData struct {
	Parent   ValueID
	Accessor shape.Accessor
	Type     Type
}

type MacroData struct {
	Macro MacroID
}

func (TupleData) valuePayload()       {}
func (StrData) valuePayload()         {}
func (ReferenceData) valuePayload()   {}
func (DereferenceData) valuePayload() {}
func (BindingData) valuePayload()     {}
func (DataLitData) valuePayload()     {}
func (InvokeData) valuePayload()      {}
func (DestructureData) valuePayload() {}
func (MacroData) valuePayload()       {}

// Value is a handle to a value node.
type Value struct {
	ctx *Context
	ID  ValueID
}

func (v Value) IsValid() bool { return v.ctx != nil && v.ID != arena.NoRef }

func (v Value) Context() *Context { return v.ctx }

// Node returns a copy of the stored node.
func (v Value) Node() ValueNode {
	v.ctx.ownValue(v)
	node, ok := v.ctx.values.Lookup(v.ID)
	if !ok {
		diag.Fail(diag.IntBadHandle, "unknown value %d", v.ID)
	}
	return node
}

func (v Value) Kind() ValueKind {
	if !v.IsValid() {
		return ValueInvalid
	}
	return v.Node().Kind
}

func (c *Context) value(id ValueID) Value { return Value{ctx: c, ID: id} }

func (c *Context) pushValue(kind ValueKind, data ValuePayload) Value {
	id := c.values.Push(ValueNode{Kind: kind, Data: data})
	c.point(trace.ScopeNode, "push:value", kind.String(), "id", strconv.FormatUint(uint64(id), 10))
	return c.value(id)
}

func (c *Context) valueIDs(vs []Value) []ValueID {
	out := make([]ValueID, len(vs))
	for i, v := range vs {
		c.ownValue(v)
		out[i] = v.ID
	}
	return out
}

func (c *Context) valuesOf(ids []ValueID) []Value {
	out := make([]Value, len(ids))
	for i, id := range ids {
		out[i] = c.value(id)
	}
	return out
}

// Constructors -------------------------------------------------------------

// TupleValue builds a tuple expression; TupleValue() is the unit value.
func (c *Context) TupleValue(elems ...Value) Value {
	return c.pushValue(ValueTuple, TupleData{Elems: c.valueIDs(elems)})
}

func (c *Context) StrValue(text string) Value {
	return c.pushValue(ValueStr, StrData{Text: text})
}

// Reference builds `&v`.
func (v Value) Reference() Value {
	v.ctx.ownValue(v)
	return v.ctx.pushValue(ValueReference, ReferenceData{Elem: v.ID})
}

func (v Value) ReferenceMut() Value {
	v.ctx.ownValue(v)
	return v.ctx.pushValue(ValueReference, ReferenceData{Mutable: true, Elem: v.ID})
}

// Dereference of a reference yields the referenced value itself.
func (v Value) Dereference() Value {
	if ref, ok := v.Node().Data.(ReferenceData); ok {
		return v.ctx.value(ref.Elem)
	}
	return v.ctx.pushValue(ValueDereference, DereferenceData{Elem: v.ID})
}

// Binding names a variable of type ty.
func (c *Context) Binding(name string, ty TypeResolver) Value {
	t := ty.ResolveType(c)
	return c.pushValue(ValueBinding, BindingData{Name: c.intern(name), Type: t})
}

// DataValue builds a struct or enum literal.
func (c *Context) DataValue(name string, data shape.Data[Value]) Value {
	if data == nil {
		diag.Fail(diag.IntNotData, "data literal %s has no shape", name)
	}
	ids := shape.MapElements(data, func(v Value) ValueID {
		c.ownValue(v)
		return v.ID
	})
	return c.pushValue(ValueData, DataLitData{Name: c.intern(name), Data: ids})
}

func (c *Context) destructure(parent Value, acc shape.Accessor, ty Type) Value {
	c.ownValue(parent)
	c.own(ty)
	return c.pushValue(ValueDestructure, DestructureData{Parent: parent.ID, Accessor: acc, Type: ty})
}

// Destructure projects the field at acc out of parent with a known type.
func (c *Context) Destructure(parent Value, acc shape.Accessor, ty TypeResolver) Value {
	return c.destructure(parent, acc, ty.ResolveType(c))
}
