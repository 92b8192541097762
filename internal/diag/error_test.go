package diag

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	err := Unsupportedf(UnsConstParam, "const N")
	if !IsUnsupported(err) {
		t.Fatalf("expected unsupported, got %v", KindOf(err))
	}
	wrapped := fmt.Errorf("set params: %w", err)
	if KindOf(wrapped) != KindUnsupported {
		t.Fatalf("kind must survive wrapping")
	}
	if !errors.Is(wrapped, New(KindUnsupported, UnsConstParam, "")) {
		t.Fatalf("errors.Is should match by code")
	}
	if errors.Is(wrapped, New(KindUnsupported, UnsEqPredicate, "")) {
		t.Fatalf("different codes must not match")
	}
	if got := err.Error(); got != "UNS4001 unsupported: const N" {
		t.Fatalf("message: got %q", got)
	}
}

func TestRecoverConvertsInternalPanics(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		Fail(IntNotATuple, "index of %s", "str")
		return nil
	}
	err := run()
	if !IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestRecoverRethrowsForeignPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("expected re-raised panic, got %v", r)
		}
	}()
	func() (err error) {
		defer Recover(&err)
		panic("boom")
	}()
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynExpectType:      "SYN2003",
		IRUnknownName:      "IR3001",
		UnsEqPredicate:     "UNS4003",
		IntIndexOutOfRange: "INT5002",
		IOConfigError:      "IO6002",
		UnknownCode:        "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d: got %s want %s", code, got, want)
		}
	}
	if IntNotATuple.Title() == "" {
		t.Fatalf("missing description")
	}
}
