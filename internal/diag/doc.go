// Package diag defines the error model shared by the parser and the IR core.
//
// Every failure carries a Kind:
//
//   - KindInvalid – malformed input (unparsable fragment, unknown name).
//   - KindUnsupported – recognised input the IR does not implement
//     (const generics, equality predicates, array or fn-pointer types).
//   - KindInternal – the calling generator broke an IR invariant
//     (indexing a non-tuple, asking the type of an untyped value).
//
// Parsing and translation return *Error values. Algebra operations whose
// misuse is a programming error panic with an internal *Error instead; a
// generation pass can convert those panics back into errors with Recover.
//
// Codes are compact numeric identifiers with a stable string form
// (LEX/SYN/IR/UNS/INT/IO prefixes), see codes.go.
package diag
