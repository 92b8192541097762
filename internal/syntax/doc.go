// Package syntax holds the parsed form of target-language fragments that the
// IR accepts at its parser boundary: generic parameter lists, where
// predicates, types, paths with generic arguments, bounds, attributes and
// struct/enum declarations.
//
// Trees are plain values. They carry spans for diagnostics and are never
// mutated after the parser returns them.
package syntax
