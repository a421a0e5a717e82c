package diagfmt

import (
	"fmt"
	"strings"
)

// Format selects the renderer for lint results.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatShort  Format = "short"
	FormatJSON   Format = "json"
)

// ParseFormat accepts the --format flag values.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatPretty:
		return FormatPretty, nil
	case FormatShort, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want pretty, short or json)", s)
}

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps paths as they were given.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of results.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	BaseDir  string // для PathModeRelative, пусто = рабочая директория
	Context  bool   // печатать строку исходника с подчёркиванием
	ShowDiff bool
}

// JSONOpts configures JSON output of results.
type JSONOpts struct {
	PathMode     PathMode
	BaseDir      string
	IncludeFixes bool
	IncludeDiffs bool
}
