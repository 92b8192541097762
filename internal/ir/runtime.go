package ir

import (
	"irkit/internal/diag"
)

// TypeResolver is anything that can stand in for a type: a Type, a Path,
// a Value or a prelude entry.
type TypeResolver interface {
	ResolveType(ctx *Context) Type
}

type FunctionResolver interface {
	ResolveFunction() *Function
}

type ParentResolver interface {
	ResolveParent() *Parent
}

// Trait is a parent that declares functions.
type Trait interface {
	ParentResolver
	TraitPath() Path
}

// Impl is a parent that implements functions for a self type.
type Impl interface {
	ParentResolver
	SelfType() Type
}

type ParentKind uint8

const (
	ParentTrait ParentKind = iota + 1
	ParentImpl
)

// Parent is the trait or impl block a function belongs to.
type Parent struct {
	Kind     ParentKind
	Path     Path // trait path; for impls of a trait, the implemented trait
	Generics *Generics
	Self     Type // ParentImpl
}

func (p *Parent) ResolveParent() *Parent { return p }
func (p *Parent) TraitPath() Path        { return p.Path }
func (p *Parent) SelfType() Type         { return p.Self }

// Signature is what the IR needs to know about a function to type a call.
type Signature struct {
	Name     string
	Generics *Generics
	Inputs   []Type
	Output   Type // zero Type means unit
}

type Function struct {
	Parent *Parent // nil for free functions
	Sig    Signature
}

func (f *Function) ResolveFunction() *Function { return f }

// Invocation is one recorded call.
type Invocation struct {
	Function *Function
	Args     []ValueID
}

// RecordInvocation stores inv in the invocation table.
func (c *Context) RecordInvocation(inv Invocation) InvokeID {
	if inv.Function == nil {
		diag.Fail(diag.IntBadHandle, "invocation without a function")
	}
	if out := inv.Function.Sig.Output; out.IsValid() {
		c.own(out)
	}
	return c.calls.Push(inv)
}

// InvokeValue wraps a recorded invocation in a value.
func (c *Context) InvokeValue(id InvokeID) Value {
	if !c.calls.Has(id) {
		diag.Fail(diag.IntBadHandle, "unknown invocation %d", id)
	}
	return c.pushValue(ValueInvoke, InvokeData{Invoke: id})
}

func (c *Context) Invocation(id InvokeID) Invocation {
	inv, ok := c.calls.Lookup(id)
	if !ok {
		diag.Fail(diag.IntBadHandle, "unknown invocation %d", id)
	}
	return inv
}

// Invoke records a call of fn with args and returns the call expression.
func (c *Context) Invoke(fn FunctionResolver, args ...Value) Value {
	id := c.RecordInvocation(Invocation{Function: fn.ResolveFunction(), Args: c.valueIDs(args)})
	return c.InvokeValue(id)
}

func (c *Context) ResolveType(r TypeResolver) Type {
	return r.ResolveType(c)
}

type strResolver struct{}

func (strResolver) ResolveType(ctx *Context) Type { return ctx.Str() }

// Prelude holds resolvers for types every target program has.
var Prelude = struct {
	Str TypeResolver
}{
	Str: strResolver{},
}
