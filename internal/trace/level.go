package trace

import (
	"fmt"
	"strings"
)

// Level controls how deep into a run events are recorded.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ничего не пишется, кольцо сбрасывается при падении
	LevelPhase        // driver and file boundaries
	LevelDetail       // passes inside a file
	LevelDebug        // per-rule events
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// deepest scope each level lets through
var levelScopes = [...]Scope{0, 0, ScopeFile, ScopePass, ScopeRule}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by String, case-insensitively.
func ParseLevel(s string) (Level, error) {
	if i, ok := parseName(levelNames[:], strings.ToLower(s)); ok {
		return Level(i), nil
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(levelScopes) && scope != 0 && scope <= levelScopes[l]
}
