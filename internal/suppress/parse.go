package suppress

import (
	"regexp"
	"strings"

	"fixit/internal/diag"
)

const codeList = `[A-Za-z0-9_-]+(?:[ \t]*,[ \t]*[A-Za-z0-9_-]+)*`

var (
	// Go regexp has no lookahead: "-file" after the keyword is rejected in parseNoqa.
	noqaRe      = regexp.MustCompile(`(?i)#\s*noqa`)
	noqaCodesRe = regexp.MustCompile(`^[ \t]*:[ \t]*(` + codeList + `)`)
	noqaFileRe  = regexp.MustCompile(`^#\s*noqa-file:[ \t]*(` + codeList + `)[ \t]*:[ \t]*(\S.*)$`)
	flake8Re    = regexp.MustCompile(`(?i)^#\s*flake8[:=]\s*noqa(?:\s|$)`)
	lintRe      = regexp.MustCompile(`^#\s*lint-(ignore|fixme):[ \t]*(` + codeList + `)[ \t]*(?::[ \t]?(.*))?$`)
	continueRe  = regexp.MustCompile(`^#\s*lint:[ \t]?(.*)$`)
)

// directive is a parsed single comment line.
type directive struct {
	kind                 Kind
	codes                []diag.Code
	start                int
	codesStart, codesEnd int
	reason               string
}

// splitCodes splits a code list on commas, trims and drops empties.
func splitCodes(s string) []diag.Code {
	var out []diag.Code
	for _, part := range strings.Split(s, ",") {
		if code := strings.TrimSpace(part); code != "" {
			out = append(out, diag.Code(code))
		}
	}
	return out
}

// parseNoqa finds an inline noqa anywhere in the comment text.
func parseNoqa(text string) (directive, bool) {
	for _, loc := range noqaRe.FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]
		if len(rest) >= 5 && strings.EqualFold(rest[:5], "-file") {
			continue
		}
		d := directive{kind: KindNoqa, start: loc[0], codesStart: loc[1], codesEnd: loc[1]}
		if m := noqaCodesRe.FindStringSubmatchIndex(rest); m != nil {
			d.codes = splitCodes(rest[m[2]:m[3]])
			d.codesStart, d.codesEnd = loc[1]+m[2], loc[1]+m[3]
		}
		return d, true
	}
	return directive{}, false
}

func parseNoqaFile(text string) (directive, bool) {
	m := noqaFileRe.FindStringSubmatchIndex(text)
	if m == nil {
		return directive{}, false
	}
	codes := splitCodes(text[m[2]:m[3]])
	reason := strings.TrimSpace(text[m[4]:m[5]])
	if len(codes) == 0 || reason == "" {
		return directive{}, false
	}
	return directive{
		kind:       KindNoqaFile,
		codes:      codes,
		codesStart: m[2],
		codesEnd:   m[3],
		reason:     reason,
	}, true
}

func isFlake8Noqa(text string) bool {
	return flake8Re.MatchString(text)
}

func parseLintIgnore(text string) (directive, bool) {
	m := lintRe.FindStringSubmatchIndex(text)
	if m == nil {
		return directive{}, false
	}
	kind := KindLintIgnore
	if text[m[2]:m[3]] == "fixme" {
		kind = KindLintFixme
	}
	d := directive{
		kind:       kind,
		codes:      splitCodes(text[m[4]:m[5]]),
		codesStart: m[4],
		codesEnd:   m[5],
	}
	if m[6] >= 0 {
		d.reason = strings.TrimRight(text[m[6]:m[7]], " \t")
	}
	return d, len(d.codes) > 0
}

// parseContinuation returns the text after "# lint:".
func parseContinuation(text string) (string, bool) {
	m := continueRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimRight(m[1], " \t"), true
}

// joinReason appends a continuation line to a reason; a blank line
// becomes a paragraph break.
func joinReason(reason, line string) string {
	switch {
	case line == "":
		if reason == "" || strings.HasSuffix(reason, "\n\n") {
			return reason
		}
		return reason + "\n\n"
	case reason == "", strings.HasSuffix(reason, "\n"):
		return reason + line
	default:
		return reason + " " + line
	}
}
