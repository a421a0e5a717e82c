package insert

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const (
	continuationPrefix = "# lint: "
	continuationBlank  = "# lint:"
	ellipsis           = " [...]"
)

// wrapLine greedily fills lines of at most width display columns. The first
// output line starts with first, the others with rest. Words longer than a
// whole line are split.
func wrapLine(text string, width int, first, rest string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{strings.TrimRight(first, " ")}
	}
	var out []string
	prefix := first
	for len(words) > 0 {
		room := width - runewidth.StringWidth(prefix)
		if room < 1 {
			if prefix == rest {
				room = 1
			} else {
				// заголовок не оставил места: текст уходит на продолжения
				out = append(out, strings.TrimRight(prefix, " "))
				prefix = rest
				continue
			}
		}
		var line string
		line, words = takeLine(words, room)
		out = append(out, prefix+line)
		prefix = rest
	}
	return out
}

// takeLine cuts the first wrapped line of at most room columns off words.
func takeLine(words []string, room int) (string, []string) {
	ww := wordwrap.NewWriter(room)
	ww.Breakpoints = nil
	_, _ = ww.Write([]byte(strings.Join(words, " ")))
	_ = ww.Close()
	line, _, _ := strings.Cut(ww.String(), "\n")
	line = strings.TrimRight(line, " ")
	if runewidth.StringWidth(line) <= room {
		return line, words[len(strings.Fields(line)):]
	}

	// слово шире строки: wordwrap оставил его целиком, режем по ширине
	var pieces []string
	for _, p := range strings.Split(wrap.String(line, room), "\n") {
		if p != "" {
			pieces = append(pieces, p)
		}
	}
	left := words[1:]
	if tail := strings.Join(pieces[1:], ""); tail != "" {
		left = append([]string{tail}, left...)
	}
	return pieces[0], left
}

var wordOrSpace = regexp.MustCompile(`\s+|\S+`)

// truncate keeps at most maxLines lines and marks the cut with an ellipsis,
// dropping whole words or whitespace runs from the last kept line until the
// marker fits. protected is restored if trimming ate into it.
func truncate(lines []string, maxLines, width int, protected []string) []string {
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := lines[maxLines-1]
	prefix := protected[maxLines-1]

	parts := wordOrSpace.FindAllString(last, -1)
	for len(parts) > 0 && runewidth.StringWidth(strings.Join(parts, ""))+runewidth.StringWidth(ellipsis) > width {
		parts = parts[:len(parts)-1]
	}
	last = strings.TrimRight(strings.Join(parts, ""), " \t")
	if !strings.HasPrefix(last, prefix) {
		last = prefix
	}
	lines[maxLines-1] = last + ellipsis
	return lines
}
