package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"irkit/internal/diag"
	"irkit/internal/source"
)

// Pretty writes err in human-readable form:
//
//	<fragment>:<line>:<col>: <CODE> <kind>: <message>
//
// followed by the fragment line and a ^~~~ underline under the span when
// opts.Context is set. Errors that are not *diag.Error print as-is.
func Pretty(w io.Writer, err error, fs *source.FragmentSet, opts PrettyOpts) error {
	var de *diag.Error
	if !errors.As(err, &de) {
		_, werr := fmt.Fprintf(w, "%s\n", err)
		return werr
	}

	codeColor := color.New(color.FgRed, color.Bold)
	locColor := color.New(color.Bold)
	markColor := color.New(color.FgGreen, color.Bold)
	if de.Kind == diag.KindUnsupported {
		codeColor = color.New(color.FgYellow, color.Bold)
	}
	for _, c := range []*color.Color{codeColor, locColor, markColor} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var b strings.Builder
	f, start, end := locate(de.Span, fs)
	if f != nil {
		b.WriteString(locColor.Sprintf("%s:%d:%d:", f.Name, start.Line, start.Col))
		b.WriteByte(' ')
	}
	b.WriteString(codeColor.Sprintf("%s %s", de.Code.ID(), de.Kind))
	b.WriteString(": ")
	b.WriteString(de.Message)
	b.WriteByte('\n')

	if opts.Context && f != nil {
		line := lineText(f, start.Line)
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
		b.WriteString("  ")
		b.WriteString(strings.Repeat(" ", int(start.Col)-1))
		b.WriteString(markColor.Sprint(underline(start, end, line)))
		b.WriteByte('\n')
	}
	_, werr := io.WriteString(w, b.String())
	return werr
}

func locate(span source.Span, fs *source.FragmentSet) (*source.File, source.LineCol, source.LineCol) {
	if fs == nil || span.File == 0 {
		return nil, source.LineCol{}, source.LineCol{}
	}
	f := fs.Get(span.File)
	if f == nil {
		return nil, source.LineCol{}, source.LineCol{}
	}
	start, end := fs.Resolve(span)
	return f, start, end
}

// lineText returns the 1-based line of f. LineIdx holds newline offsets.
func lineText(f *source.File, line uint32) string {
	if line == 0 || int(line) > len(f.LineIdx)+1 {
		return ""
	}
	var from uint32
	if line > 1 {
		from = f.LineIdx[line-2] + 1
	}
	to := uint32(len(f.Content))
	if int(line) <= len(f.LineIdx) {
		to = f.LineIdx[line-1]
	}
	return strings.TrimRight(string(f.Content[from:to]), "\r")
}

func underline(start, end source.LineCol, line string) string {
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		width = len(line) - int(start.Col) + 1
	}
	if width < 1 {
		width = 1
	}
	return "^" + strings.Repeat("~", width-1)
}
