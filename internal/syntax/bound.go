package syntax

import (
	"irkit/internal/source"
)

type BoundKind uint8

const (
	BoundTrait BoundKind = iota
	BoundLifetime
)

// Bound is a trait or lifetime bound: `for<'a> Fn(&'a T)`, `?Sized`, `'static`.
type Bound struct {
	Kind      BoundKind
	Lifetimes []Lifetime // BoundTrait, for<...> binder
	Maybe     bool       // BoundTrait, written as ?Trait
	Path      *Path      // BoundTrait
	Lifetime  *Lifetime  // BoundLifetime
	Span      source.Span
}
