package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fixit/internal/driver"
	"fixit/internal/patch"
)

// WriteDiff prints a unified diff, colouring added and removed lines.
func WriteDiff(w io.Writer, text string, colored bool) {
	writeDiff(w, newPalette(colored), text)
}

func writeDiff(w io.Writer, pal *palette, text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			fmt.Fprintln(w, pal.path.Sprint(body))
		case strings.HasPrefix(body, "@@"):
			fmt.Fprintln(w, pal.hunk.Sprint(body))
		case strings.HasPrefix(body, "+"):
			fmt.Fprintln(w, pal.add.Sprint(body))
		case strings.HasPrefix(body, "-"):
			fmt.Fprintln(w, pal.del.Sprint(body))
		default:
			fmt.Fprintln(w, body)
		}
	}
}

// Diffs concatenates the diffs of changed results, in order.
func Diffs(results []driver.Result) string {
	var b strings.Builder
	for i := range results {
		b.WriteString(results[i].Diff)
	}
	return b.String()
}

// DiffStat summarises the combined diff of results.
func DiffStat(results []driver.Result) (patch.Stat, error) {
	return patch.DiffStat(Diffs(results))
}
