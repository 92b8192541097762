// Package fuzztests houses Go fuzz harnesses for the fragment front end
// (lexer and parser) and for IR translation. They guard against panics and
// runaway loops on arbitrary input: errors are fine, crashes are not.
package fuzztests
