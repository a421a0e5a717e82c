package trace

import "time"

// Kind is what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

var kindMarks = [...]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindHeartbeat: "♡ ",
}

func (k Kind) String() string { return nameOf(kindNames[:], int(k)) }

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // весь запуск
	ScopeFile                    // один файл, одна итерация автофикса
	ScopePass                    // tokenize, parse, visit, filter, unused
	ScopeRule                    // отдельное правило
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopeFile:   "file",
	ScopePass:   "pass",
	ScopeRule:   "rule",
}

func (s Scope) String() string { return nameOf(scopeNames[:], int(s)) }

// Event is one trace record. Path is the file being linted, inherited by
// every span opened under a file span.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корня
	Path     string
	Name     string // "tokenize", "visit", "NoBareExcept"
	Detail   string
	Extra    map[string]string
}

func nameOf(names []string, i int) string {
	if i > 0 && i < len(names) && names[i] != "" {
		return names[i]
	}
	return "unknown"
}

func parseName(names []string, s string) (int, bool) {
	for i, name := range names {
		if name != "" && name == s {
			return i, true
		}
	}
	return 0, false
}
