package diagfmt

import (
	"fmt"
	"io"

	"fixit/internal/diag"
	"fixit/internal/driver"
)

// Short prints one line per diagnostic, sorted across all results, then
// one line per file that failed.
func Short(w io.Writer, results []driver.Result, opts PrettyOpts) Summary {
	var (
		sum   Summary
		diags []diag.Diagnostic
	)
	for i := range results {
		r := &results[i]
		sum.add(r)
		for _, d := range r.Diagnostics {
			d.Path = displayPath(d.Path, opts.PathMode, opts.BaseDir)
			diags = append(diags, d)
		}
	}
	if text := diag.FormatShortDiagnostics(diags); text != "" {
		fmt.Fprintln(w, text)
	}
	for i := range results {
		if err := results[i].Err; err != nil {
			fmt.Fprintf(w, "%s: error: %v\n", displayPath(results[i].Path, opts.PathMode, opts.BaseDir), err)
		}
	}
	return sum
}
