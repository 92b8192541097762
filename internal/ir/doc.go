// Package ir is a code-generation IR for a generic, reference-aware target
// language. Callers build types, values, data shapes and paths through a
// Context and later hand them to a Printer.
//
// All nodes live in the arenas of the Context that created them. Type and
// Value are small handles (context + ID) that compare with ==. Structural
// types are hash-consed, so two equal structures share one TypeID; data
// structure types are nominal.
//
// Translation from syntax and text returns errors. Misusing the algebra
// (indexing a non-tuple, asking the type of an untyped value) panics with an
// internal *diag.Error; Context.Run converts those panics into errors.
package ir
