package ir

import (
	"fmt"
	"strconv"

	"irkit/internal/diag"
	"irkit/internal/trace"
)

// Lifetime is a lifetime symbol. StaticLifetime is the fixed 'static symbol;
// minted lifetimes start at 1.
type Lifetime uint32

// TypeParam is a type parameter symbol, starting at 1.
type TypeParam uint32

const StaticLifetime Lifetime = 0

type ParamKind uint8

const (
	ParamLifetime ParamKind = iota + 1
	ParamType
	// ParamConst is recognized and rejected; no const symbol is ever minted.
	ParamConst
)

func (k ParamKind) String() string {
	switch k {
	case ParamLifetime:
		return "lifetime"
	case ParamType:
		return "type"
	case ParamConst:
		return "const"
	default:
		return fmt.Sprintf("ParamKind(%d)", k)
	}
}

// Param is a generic parameter symbol tagged with its kind.
type Param struct {
	Kind ParamKind
	ID   uint32
}

var StaticParam = StaticLifetime.Param()

func (l Lifetime) Param() Param  { return Param{Kind: ParamLifetime, ID: uint32(l)} }
func (t TypeParam) Param() Param { return Param{Kind: ParamType, ID: uint32(t)} }

func (p Param) Lifetime() (Lifetime, bool) {
	if p.Kind != ParamLifetime {
		return 0, false
	}
	return Lifetime(p.ID), true
}

func (p Param) TypeParam() (TypeParam, bool) {
	if p.Kind != ParamType {
		return 0, false
	}
	return TypeParam(p.ID), true
}

func (p Param) IsStatic() bool { return p == StaticParam }

func (p Param) String() string {
	switch p.Kind {
	case ParamLifetime:
		if p.ID == 0 {
			return "'static"
		}
		return "L" + strconv.FormatUint(uint64(p.ID), 10)
	case ParamType:
		return "T" + strconv.FormatUint(uint64(p.ID), 10)
	default:
		return p.Kind.String() + "#" + strconv.FormatUint(uint64(p.ID), 10)
	}
}

// mint creates a fresh symbol of kind and remembers its display name.
func (c *Context) mint(kind ParamKind, name string) Param {
	var p Param
	switch kind {
	case ParamLifetime:
		p = Lifetime(c.lifetimes.Next()).Param()
	case ParamType:
		p = TypeParam(c.typeParams.Next()).Param()
	default:
		diag.Fail(diag.IntUnhandledKind, "cannot mint a %s parameter", kind)
	}
	if name != "" {
		c.paramNames[p] = c.intern(name)
	}
	c.point(trace.ScopeNode, "mint:"+kind.String(), name, "id", strconv.FormatUint(uint64(p.ID), 10))
	return p
}

// ParamName returns the display name of p: the name it was declared with,
// or a synthesized __T<n> / '__a<n> for unnamed symbols.
func (c *Context) ParamName(p Param) string {
	if name, ok := c.paramNames[p]; ok {
		return name
	}
	switch p.Kind {
	case ParamLifetime:
		return "'__a" + strconv.FormatUint(uint64(p.ID), 10)
	case ParamType:
		return "__T" + strconv.FormatUint(uint64(p.ID), 10)
	default:
		return p.String()
	}
}

// Minted reports whether p is a symbol this context produced.
func (c *Context) Minted(p Param) bool {
	switch p.Kind {
	case ParamLifetime:
		return p.ID <= c.lifetimes.Peek()
	case ParamType:
		return p.ID != 0 && p.ID <= c.typeParams.Peek()
	default:
		return false
	}
}
