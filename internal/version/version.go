// Package version carries build metadata for the irkit CLI. The variables
// can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var componentColors = []color.Attribute{color.FgYellow, color.FgGreen, color.FgBlue}

// Colored renders v with major, minor and patch in distinct colors. Any
// pre-release suffix is left plain.
func Colored(v string, enable bool) string {
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.Split(core, ".")
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('.')
		}
		c := color.New(componentColors[min(i, len(componentColors)-1)], color.Bold)
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		b.WriteString(c.Sprint(p))
	}
	if hasSuffix {
		b.WriteByte('-')
		b.WriteString(suffix)
	}
	return b.String()
}
