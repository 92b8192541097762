package syntax

import (
	"irkit/internal/source"
)

// Path is a possibly global, `::`-separated sequence of segments.
type Path struct {
	Global   bool
	Segments []PathSegment
	Span     source.Span
}

type PathSegment struct {
	Ident string
	Args  *PathArgs // nil when the segment has no arguments
	Span  source.Span
}

type PathArgsKind uint8

const (
	ArgsAngle PathArgsKind = iota // <T, 'a, Item = U>
	ArgsParen                     // (A, B) -> C
)

// PathArgs holds the generic arguments attached to a path segment.
type PathArgs struct {
	Kind PathArgsKind
	Args []GenericArg // ArgsAngle
	Fn   *FnSig       // ArgsParen
	Span source.Span
}

type GenericArgKind uint8

const (
	ArgType       GenericArgKind = iota // T
	ArgLifetime                         // 'a
	ArgBinding                          // Item = T
	ArgConstraint                       // Item: Bound
	ArgConst                            // 3, {N + 1}
)

var genericArgKindNames = [...]string{
	ArgType:       "type",
	ArgLifetime:   "lifetime",
	ArgBinding:    "binding",
	ArgConstraint: "constraint",
	ArgConst:      "const",
}

func (k GenericArgKind) String() string {
	if int(k) < len(genericArgKindNames) {
		return genericArgKindNames[k]
	}
	return "GenericArgKind(?)"
}

type GenericArg struct {
	Kind     GenericArgKind
	Type     *Type     // ArgType, ArgBinding
	Lifetime *Lifetime // ArgLifetime
	Ident    string    // ArgBinding, ArgConstraint
	Bounds   []Bound   // ArgConstraint
	Const    string    // ArgConst, expression text
	Span     source.Span
}

// Ident reports the identifier of a single-segment, non-global path without
// generic arguments.
func (p *Path) Ident() (string, bool) {
	if p == nil || p.Global || len(p.Segments) != 1 || p.Segments[0].Args != nil {
		return "", false
	}
	return p.Segments[0].Ident, true
}
