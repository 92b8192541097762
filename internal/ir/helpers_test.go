package ir

import (
	"errors"
	"testing"

	"irkit/internal/diag"
)

// expectFail runs fn and checks that it panics with a diag error of code.
func expectFail(t *testing.T, code diag.Code, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %s", code)
		}
		de, ok := r.(*diag.Error)
		if !ok {
			t.Fatalf("unexpected panic value %T: %v", r, r)
		}
		if de.Code != code {
			t.Fatalf("expected %s, got %s (%s)", code, de.Code, de.Message)
		}
	}()
	fn()
}

func requireCode(t *testing.T, err error, code diag.Code) *diag.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got nil", code)
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected %s, got %s (%s)", code, de.Code, de.Message)
	}
	return de
}

func mustGenerics(t *testing.T, ctx *Context, text string) *Generics {
	t.Helper()
	g, err := ctx.ParseGenerics(text)
	if err != nil {
		t.Fatalf("parse generics %q: %v", text, err)
	}
	return g
}

func mustType(t *testing.T, ctx *Context, text string, names *NameMap) Type {
	t.Helper()
	ty, err := ctx.ParseType(text, names)
	if err != nil {
		t.Fatalf("parse type %q: %v", text, err)
	}
	return ty
}
