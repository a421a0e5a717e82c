package patch

import (
	"bytes"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"
)

// UnifiedDiff renders the change from before to after as a unified diff
// with three lines of context. Identical inputs give an empty string.
func UnifiedDiff(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	return text, nil
}

// Stat summarises one or more concatenated unified diffs.
type Stat struct {
	Files   int
	Added   int
	Deleted int
}

// DiffStat parses unified diff text and counts changed lines per file.
func DiffStat(text string) (Stat, error) {
	var st Stat
	if text == "" {
		return st, nil
	}
	files, err := diff.NewMultiFileDiffReader(bytes.NewReader([]byte(text))).ReadAllFiles()
	if err != nil {
		return st, fmt.Errorf("parse diff: %w", err)
	}
	for _, fd := range files {
		s := fd.Stat()
		st.Files++
		st.Added += int(s.Added + s.Changed)
		st.Deleted += int(s.Deleted + s.Changed)
	}
	return st, nil
}
