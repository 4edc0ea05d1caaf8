// Package cliutil provides output helpers shared by the apitestgen commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Writef writes formatted output to w. Write failures are reported on
// stderr instead of being returned.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Heading writes title underlined with '=' followed by a blank line.
func Heading(w io.Writer, title string) {
	Writef(w, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))
}

// Field writes an aligned "label: value" line, or nothing when value is empty.
func Field(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	Writef(w, "%-12s %s\n", label+":", value)
}
