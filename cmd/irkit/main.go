package main

import (
	"os"

	"golang.org/x/term"
)

func main() {
	opts := &rootOptions{}
	cmd := newRootCommand(opts)
	err := cmd.Execute()
	opts.close(cmd.ErrOrStderr(), err)
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
