package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColoredPlain(t *testing.T) {
	if got := Colored("1.2.3-rc1", false); got != "1.2.3-rc1" {
		t.Errorf("Colored = %q", got)
	}
	if got := Colored("dev", false); got != "dev" {
		t.Errorf("Colored = %q", got)
	}
}

func TestColoredEnabled(t *testing.T) {
	got := Colored("0.1.0-dev", true)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI escapes in %q", got)
	}
	if !strings.HasSuffix(got, "-dev") {
		t.Fatalf("suffix lost: %q", got)
	}
}
