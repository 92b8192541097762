package source

import "testing"

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Vec")
	b := in.Intern("Vec")
	if a != b {
		t.Fatalf("expected same id, got %d and %d", a, b)
	}
	if a == NoStringID {
		t.Fatalf("non-empty string must not map to NoStringID")
	}
	if got := in.MustLookup(a); got != "Vec" {
		t.Fatalf("lookup: got %q", got)
	}
	if in.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", in.Len())
	}
}

func TestInternerEmptyString(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id != NoStringID {
		t.Fatalf("empty string should intern to NoStringID, got %d", id)
	}
	if _, ok := in.Lookup(StringID(42)); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestFragmentSetResolve(t *testing.T) {
	fs := NewFragmentSet()
	id := fs.AddVirtual("frag", "T: Clone\n'a: 'b")
	start, end := fs.Resolve(Span{File: id, Start: 9, End: 11})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start: got %+v", start)
	}
	if end.Line != 2 || end.Col != 3 {
		t.Fatalf("end: got %+v", end)
	}
	if got := fs.Text(Span{File: id, Start: 3, End: 8}); got != "Clone" {
		t.Fatalf("text: got %q", got)
	}
	if fs.Len() != 1 {
		t.Fatalf("len: got %d", fs.Len())
	}
}
