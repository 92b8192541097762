package diagfmt

import (
	"errors"

	"irkit/internal/diag"
	"irkit/internal/source"
)

// LocationJSON places a diagnostic inside a fragment.
type LocationJSON struct {
	Fragment  string `json:"fragment" yaml:"fragment" msgpack:"fragment"`
	StartByte uint32 `json:"start_byte" yaml:"start_byte" msgpack:"start_byte"`
	EndByte   uint32 `json:"end_byte" yaml:"end_byte" msgpack:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" yaml:"start_line,omitempty" msgpack:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" yaml:"start_col,omitempty" msgpack:"start_col,omitempty"`
	Text      string `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
}

// DiagnosticJSON is the structured form of one error.
type DiagnosticJSON struct {
	Kind     string        `json:"kind" yaml:"kind" msgpack:"kind"`
	Code     string        `json:"code" yaml:"code" msgpack:"code"`
	Title    string        `json:"title,omitempty" yaml:"title,omitempty" msgpack:"title,omitempty"`
	Message  string        `json:"message" yaml:"message" msgpack:"message"`
	Location *LocationJSON `json:"location,omitempty" yaml:"location,omitempty" msgpack:"location,omitempty"`
}

// MakeDiagnostic converts err. Plain errors become internal diagnostics
// without a code.
func MakeDiagnostic(err error, fs *source.FragmentSet) DiagnosticJSON {
	var de *diag.Error
	if !errors.As(err, &de) {
		return DiagnosticJSON{Kind: diag.KindInternal.String(), Code: diag.UnknownCode.ID(), Message: err.Error()}
	}
	out := DiagnosticJSON{
		Kind:    de.Kind.String(),
		Code:    de.Code.ID(),
		Title:   de.Code.Title(),
		Message: de.Message,
	}
	if f, start, _ := locate(de.Span, fs); f != nil {
		out.Location = &LocationJSON{
			Fragment:  f.Name,
			StartByte: de.Span.Start,
			EndByte:   de.Span.End,
			StartLine: start.Line,
			StartCol:  start.Col,
			Text:      fs.Text(de.Span),
		}
	}
	return out
}
