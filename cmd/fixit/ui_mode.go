package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode decides whether batch runs show the Bubble Tea progress view.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

var uiModeNames = map[string]uiMode{
	"":       uiAuto,
	"auto":   uiAuto,
	"on":     uiOn,
	"always": uiOn,
	"off":    uiOff,
	"never":  uiOff,
}

func readUIMode(value string) (uiMode, error) {
	if m, ok := uiModeNames[strings.TrimSpace(strings.ToLower(value))]; ok {
		return m, nil
	}
	return uiAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// enabled: auto wants a terminal on stdout and stderr and no CI.
func (m uiMode) enabled() bool {
	switch m {
	case uiOn:
		return true
	case uiOff:
		return false
	}
	return isTerminal(os.Stdout) && isTerminal(os.Stderr) && os.Getenv("CI") == ""
}
