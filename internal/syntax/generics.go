package syntax

import (
	"irkit/internal/source"
)

type GenericParamKind uint8

const (
	ParamType GenericParamKind = iota
	ParamLifetime
	ParamConst
)

var genericParamKindNames = [...]string{
	ParamType:     "type",
	ParamLifetime: "lifetime",
	ParamConst:    "const",
}

func (k GenericParamKind) String() string {
	if int(k) < len(genericParamKindNames) {
		return genericParamKindNames[k]
	}
	return "GenericParamKind(?)"
}

// GenericParam is one declared parameter of a generic list.
type GenericParam struct {
	Kind GenericParamKind
	// Name is the identifier for type and const params and the quoted name
	// for lifetimes.
	Name           string
	Bounds         []Bound    // ParamType
	LifetimeBounds []Lifetime // ParamLifetime
	ConstType      *Type      // ParamConst
	Default        *Type      // ParamType, `= T`
	Span           source.Span
}

type WherePredicateKind uint8

const (
	PredType     WherePredicateKind = iota // for<'a> T: Bound + 'a
	PredLifetime                           // 'a: 'b + 'c
	PredEq                                 // T::Item = U
)

// WherePredicate is a single clause of a where list.
type WherePredicate struct {
	Kind           WherePredicateKind
	Lifetimes      []Lifetime // PredType, for<...> binder
	Bounded        *Type      // PredType, PredEq left-hand side
	Bounds         []Bound    // PredType
	Lifetime       *Lifetime  // PredLifetime
	LifetimeBounds []Lifetime // PredLifetime
	Rhs            *Type      // PredEq
	Span           source.Span
}

// Generics is a parameter list plus an optional where clause.
type Generics struct {
	Params []GenericParam
	Where  []WherePredicate
	Span   source.Span
}

func (g *Generics) Empty() bool {
	return g == nil || (len(g.Params) == 0 && len(g.Where) == 0)
}
