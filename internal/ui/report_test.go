package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestReportAlignsColumns(t *testing.T) {
	r := &Report{Title: "context"}
	s := r.Section("stats")
	s.Row("types", "3")
	s.Row("lifetimes", "12")
	var b strings.Builder
	if err := r.Render(&b); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "context\n\nstats\n  types      3\n  lifetimes  12\n"
	if b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}
}

func TestReportWideRunes(t *testing.T) {
	r := &Report{}
	s := r.Section("names")
	s.Row("型", "a")
	s.Row("ab", "b")
	var b strings.Builder
	if err := r.Render(&b); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "names\n  型  a\n  ab  b\n"
	if b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncate: %q", got)
	}
	if got := truncate("abcdefgh", 2); got != "ab" {
		t.Fatalf("short truncate: %q", got)
	}
	if got := truncate("日本語テキスト", 7); got != "日本..." || runewidth.StringWidth(got) != 7 {
		t.Fatalf("wide truncate: %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Fatalf("no limit: %q", got)
	}
}

func TestStatusRow(t *testing.T) {
	if got := Status("ok", "a.toml", ""); len(got) != 2 {
		t.Fatalf("row: %v", got)
	}
	if got := Status("error", "b.toml", "3 failures"); got[2] != "(3 failures)" {
		t.Fatalf("row: %v", got)
	}
}
