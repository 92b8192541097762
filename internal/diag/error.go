package diag

import (
	"errors"
	"fmt"

	"irkit/internal/source"
)

// Kind separates the ways a generation step can fail.
type Kind uint8

const (
	// KindInvalid is malformed input: unparsable text, unknown names.
	KindInvalid Kind = iota + 1
	// KindUnsupported is input that is understood but not implemented
	// (const generics, equality predicates, exotic type syntax).
	KindUnsupported
	// KindInternal is an IR invariant violated by the calling generator.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnsupported:
		return "unsupported"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Error is the single error type produced by the IR core.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Span    source.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Code.ID(), e.Kind, e.Message)
}

// Is matches errors of the same Code so callers can use errors.Is with a
// sentinel built by New.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

func New(kind Kind, code Code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Invalidf(code Code, format string, args ...any) *Error {
	return &Error{Kind: KindInvalid, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Unsupportedf(code Code, format string, args ...any) *Error {
	return &Error{Kind: KindUnsupported, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Internalf(code Code, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithSpan returns a copy of e pointing at span.
func (e *Error) WithSpan(span source.Span) *Error {
	cpy := *e
	cpy.Span = span
	return &cpy
}

// KindOf reports the Kind of err, or 0 when err is not a diag error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// IsUnsupported reports whether err marks a recognised but unsupported shape.
func IsUnsupported(err error) bool { return KindOf(err) == KindUnsupported }

// IsInternal reports whether err is an invariant violation.
func IsInternal(err error) bool { return KindOf(err) == KindInternal }
