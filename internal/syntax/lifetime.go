package syntax

import "irkit/internal/source"

// Lifetime is a lifetime name as written, including the leading quote ('a).
type Lifetime struct {
	Name string
	Span source.Span
}

func (l Lifetime) String() string { return l.Name }
