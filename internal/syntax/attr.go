package syntax

import (
	"strings"

	"irkit/internal/source"
)

// Attribute is `#[path tokens]` or `#![path tokens]`. Tokens is the raw text
// after the path, forwarded to printers as is.
type Attribute struct {
	Inner  bool
	Path   *Path
	Tokens string
	Span   source.Span
}

func (a Attribute) String() string {
	var sb strings.Builder
	sb.WriteByte('#')
	if a.Inner {
		sb.WriteByte('!')
	}
	sb.WriteByte('[')
	sb.WriteString(a.PathString())
	if a.Tokens != "" {
		if !strings.HasPrefix(a.Tokens, "(") {
			sb.WriteByte(' ')
		}
		sb.WriteString(a.Tokens)
	}
	sb.WriteByte(']')
	return sb.String()
}

// PathString renders the attribute path; attribute paths never carry
// generic arguments.
func (a Attribute) PathString() string {
	if a.Path == nil {
		return ""
	}
	var sb strings.Builder
	if a.Path.Global {
		sb.WriteString("::")
	}
	for i, seg := range a.Path.Segments {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(seg.Ident)
	}
	return sb.String()
}
