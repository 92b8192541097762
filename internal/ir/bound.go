package ir

import (
	"slices"
	"strconv"
	"strings"
)

type BoundKind uint8

const (
	BoundTrait BoundKind = iota
	BoundLifetime
)

// Bound is a trait bound (`for<'a> ?Path`) or a lifetime bound.
type Bound struct {
	Kind      BoundKind
	Lifetimes []Lifetime // BoundTrait, for<...> binder
	Maybe     bool       // BoundTrait
	Path      Path       // BoundTrait
	Lifetime  Lifetime   // BoundLifetime
}

// TraitBound bounds by the trait at p.
func TraitBound(p Path) Bound {
	return Bound{Kind: BoundTrait, Path: p}
}

func LifetimeBound(l Lifetime) Bound {
	return Bound{Kind: BoundLifetime, Lifetime: l}
}

func cloneBounds(bs []Bound) []Bound {
	out := slices.Clone(bs)
	for i := range out {
		out[i].Lifetimes = slices.Clone(out[i].Lifetimes)
		out[i].Path = out[i].Path.clone()
	}
	return out
}

func (c *Context) writeBoundKey(sb *strings.Builder, b Bound) {
	if b.Kind == BoundLifetime {
		sb.WriteString("'" + strconv.FormatUint(uint64(b.Lifetime), 10))
		return
	}
	if len(b.Lifetimes) > 0 {
		sb.WriteString("for<")
		for i, l := range b.Lifetimes {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatUint(uint64(l), 10))
		}
		sb.WriteByte('>')
	}
	if b.Maybe {
		sb.WriteByte('?')
	}
	c.writePathKey(sb, b.Path)
}

// Constraint is one where-clause entry: *TypePredicate or *LifetimePredicate.
type Constraint interface {
	isConstraint()
}

// TypePredicate is `for<Lifetimes> Bounded: Bounds`.
type TypePredicate struct {
	Lifetimes []Lifetime
	Bounded   Type
	Bounds    []Bound
}

// LifetimePredicate is `Lifetime: Bounds`.
type LifetimePredicate struct {
	Lifetime Lifetime
	Bounds   []Lifetime
}

func (*TypePredicate) isConstraint()     {}
func (*LifetimePredicate) isConstraint() {}
