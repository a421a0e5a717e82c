package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fixit/internal/diag"
	"fixit/internal/driver"
)

type palette struct {
	path, code, warn, err, info, note, gutter, caret *color.Color
	add, del, hunk                                   *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		path:   color.New(color.Bold),
		code:   color.New(color.FgCyan),
		warn:   color.New(color.FgYellow, color.Bold),
		err:    color.New(color.FgRed, color.Bold),
		info:   color.New(color.FgBlue, color.Bold),
		note:   color.New(color.FgHiBlack),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgMagenta, color.Bold),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
		hunk:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.path, p.code, p.warn, p.err, p.info, p.note, p.gutter, p.caret, p.add, p.del, p.hunk} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty renders results for a terminal:
//
//	path:line:col: warning Code: message [fixable]
//	   3 | x == None
//	     |   ^^
//
// followed by the fix diff when asked. Results are printed in the given
// order; diagnostics inside a result are expected to be sorted already.
func Pretty(w io.Writer, results []driver.Result, lines *Lines, opts PrettyOpts) Summary {
	pal := newPalette(opts.Color)
	var sum Summary
	for i := range results {
		r := &results[i]
		sum.add(r)
		path := displayPath(r.Path, opts.PathMode, opts.BaseDir)
		if r.Err != nil {
			fmt.Fprintf(w, "%s: %s %s\n", pal.path.Sprint(path), pal.err.Sprint("error:"), r.Err)
			continue
		}
		for j := range r.Diagnostics {
			d := &r.Diagnostics[j]
			prettyDiagnostic(w, pal, path, d, lines, opts)
		}
		if opts.ShowDiff && r.Diff != "" {
			writeDiff(w, pal, r.Diff)
		}
	}
	return sum
}

func prettyDiagnostic(w io.Writer, pal *palette, path string, d *diag.Diagnostic, lines *Lines, opts PrettyOpts) {
	fmt.Fprintf(w, "%s %s %s %s",
		pal.path.Sprintf("%s:%d:%d:", path, d.Pos.Line, d.Pos.Col+1),
		pal.severity(d.Severity).Sprint(d.Severity.Label()),
		pal.code.Sprintf("%s:", d.Code.ID()),
		d.Message,
	)
	if d.Fixable() {
		fmt.Fprint(w, pal.note.Sprint(" [fixable]"))
	}
	fmt.Fprintln(w)

	if opts.Context {
		if text, ok := lines.Line(d.Path, d.Pos.Line); ok {
			writeContext(w, pal, text, d)
		}
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
	}
}

func writeContext(w io.Writer, pal *palette, text string, d *diag.Diagnostic) {
	num := fmt.Sprintf("%d", d.Pos.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), text)

	col := min(int(d.Pos.Col), len(text))
	end := min(col+int(d.Primary.Len()), len(text))
	width := runewidth.StringWidth(text[col:end])
	if width == 0 {
		width = 1
	}
	fmt.Fprintf(w, " %s %s %s%s\n", pad, pal.gutter.Sprint("|"), indentLike(text[:col]), pal.caret.Sprint(strings.Repeat("^", width)))
}

// indentLike returns blanks covering prefix on screen; tabs stay tabs.
func indentLike(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}
