package source

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// FragmentSet keeps every piece of text parsed during a generation pass so that
// spans in diagnostics can be resolved back to the text they came from.
type FragmentSet struct {
	files []File
}

// NewFragmentSet creates an empty set. FileID 0 is reserved.
func NewFragmentSet() *FragmentSet {
	return &FragmentSet{files: []File{{}}}
}

// Add stores a fragment and returns its FileID.
func (fs *FragmentSet) Add(name string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len fragments overflow: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Name:    name,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	return id
}

// AddVirtual adds an in-memory fragment.
func (fs *FragmentSet) AddVirtual(name, text string) FileID {
	return fs.Add(name, []byte(text), FileVirtual)
}

// Get returns the fragment for id or nil.
func (fs *FragmentSet) Get(id FileID) *File {
	if id == 0 || int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// Len reports the number of stored fragments.
func (fs *FragmentSet) Len() int {
	return len(fs.files) - 1
}

// Resolve converts a span into line and column positions.
func (fs *FragmentSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Text returns the fragment text covered by span.
func (fs *FragmentSet) Text(span Span) string {
	f := fs.Get(span.File)
	if f == nil || int(span.End) > len(f.Content) || span.Start > span.End {
		return ""
	}
	return string(f.Content[span.Start:span.End])
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 4)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			out = append(out, off)
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line/column pair using the newline index.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	ln, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: ln, Col: off - lineStart + 1}
}
