package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatShortDiagnostics renders diagnostics one per line as
// "path:line:col: Code message", sorted deterministically. Columns are
// printed 1-based. Multi-line messages are folded to a single line.
func FormatShortDiagnostics(diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	SortDiagnostics(sorted)

	var b strings.Builder
	for i, d := range sorted {
		fmt.Fprintf(&b, "%s:%d:%d: %s %s", normalizePath(d.Path), d.Pos.Line, d.Pos.Col+1, d.Code.ID(), sanitizeMessage(d.Message))
		if d.Fixable() {
			b.WriteString(" [fixable]")
		}
		if i < len(sorted)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
