package syntax

import (
	"irkit/internal/source"
)

type TypeKind uint8

const (
	TypeInvalid     TypeKind = iota
	TypePath                 // Vec<T>, std::io::Error, <T as Trait>::Item
	TypeReference            // &'a mut T
	TypeTraitObject          // dyn Trait + 'a
	TypeTuple                // (), (T), (T,), (A, B)
	TypeInfer                // _
	TypeArray                // [T; N]
	TypeSlice                // [T]
	TypePtr                  // *const T, *mut T
	TypeBareFn               // fn(A) -> B
	TypeNever                // !
)

var typeKindNames = [...]string{
	TypeInvalid:     "invalid",
	TypePath:        "path",
	TypeReference:   "reference",
	TypeTraitObject: "trait object",
	TypeTuple:       "tuple",
	TypeInfer:       "infer",
	TypeArray:       "array",
	TypeSlice:       "slice",
	TypePtr:         "pointer",
	TypeBareFn:      "fn pointer",
	TypeNever:       "never",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "TypeKind(?)"
}

// Type is a parsed type expression. Only the fields relevant to Kind are set.
type Type struct {
	Kind TypeKind
	Span source.Span

	QSelf *QSelf // TypePath
	Path  *Path  // TypePath

	Mutable  bool      // TypeReference, TypePtr
	Lifetime *Lifetime // TypeReference
	Elem     *Type     // TypeReference, TypeArray, TypeSlice, TypePtr

	Len string // TypeArray, length expression text

	Dyn    bool    // TypeTraitObject, written with `dyn`
	Bounds []Bound // TypeTraitObject

	Elems    []*Type // TypeTuple
	Trailing bool    // TypeTuple, trailing comma after the last element

	Fn *FnSig // TypeBareFn
}

// QSelf is the `<T as Trait>` prefix of a qualified path.
type QSelf struct {
	Type     *Type
	Position int // number of leading Path segments that belong to the trait
	Span     source.Span
}

// FnSig is the signature part of a bare fn pointer type or a parenthesized
// Fn-style generic argument list.
type FnSig struct {
	Inputs []*Type
	Output *Type // nil when there is no `-> T`
	Span   source.Span
}

// Ident reports the single identifier of a plain, non-global one-segment
// path type without arguments.
func (t *Type) Ident() (string, bool) {
	if t == nil || t.Kind != TypePath || t.QSelf != nil || t.Path == nil {
		return "", false
	}
	return t.Path.Ident()
}
