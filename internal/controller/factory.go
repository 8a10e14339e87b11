package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewUI returns the Bubble Tea TUI when useTTY is set and the plain text
// SimpleUI otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// fileDescriptor is implemented by *os.File.
type fileDescriptor interface {
	Fd() uintptr
}

// IsTTY reports whether w is an interactive terminal. TERM=dumb always
// selects the plain output.
func IsTTY(w io.Writer) bool {
	f, ok := w.(fileDescriptor)
	if !ok {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
