package parser

import (
	"errors"
	"testing"

	"irkit/internal/diag"
	"irkit/internal/source"
)

func fragment(t *testing.T, text string) *source.File {
	t.Helper()
	fs := source.NewFragmentSet()
	return fs.Get(fs.AddVirtual(t.Name(), text))
}

func requireCode(t *testing.T, err error, code diag.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got no error", code.ID())
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected %s, got %s (%v)", code.ID(), de.Code.ID(), err)
	}
}
