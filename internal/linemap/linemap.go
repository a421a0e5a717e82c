package linemap

import (
	"sort"

	"fixit/internal/token"
)

// LineMap сопоставляет физические строки логическим.
// Логическая строка обозначается номером своей первой физической строки.
type LineMap struct {
	logical  []uint32 // logical[phys]; индекс 0 не используется
	nonEmpty []uint32 // отсортированные начала непустых логических строк
}

// Build scans a complete token stream. A logical line is closed by NEWLINE,
// NL or ENDMARKER; every physical line up to the closing token's end line
// resolves to the line the logical line started on.
func Build(tokens []token.Token) *LineMap {
	m := &LineMap{logical: []uint32{0}}
	var (
		start      uint32 = 1
		hasContent bool
	)
	for _, tok := range tokens {
		if !tok.Kind.EndsLogicalLine() {
			if !tok.Kind.IsStructural() {
				hasContent = true
			}
			continue
		}
		end := tok.End.Line
		for line := start; line <= end; line++ {
			m.set(line, start)
		}
		if hasContent || tok.Kind == token.EndMarker {
			m.nonEmpty = append(m.nonEmpty, start)
		}
		hasContent = false
		if end+1 > start {
			start = end + 1
		}
	}
	return m
}

func (m *LineMap) set(phys, logical uint32) {
	for uint32(len(m.logical)) <= phys {
		m.logical = append(m.logical, 0)
	}
	m.logical[phys] = logical
}

// Logical returns the logical line containing phys.
func (m *LineMap) Logical(phys uint32) (uint32, bool) {
	if phys == 0 || int(phys) >= len(m.logical) {
		return 0, false
	}
	l := m.logical[phys]
	return l, l != 0
}

// LogicalOr возвращает логическую строку или саму phys, если она не отображена.
func (m *LineMap) LogicalOr(phys uint32) uint32 {
	if l, ok := m.Logical(phys); ok {
		return l
	}
	return phys
}

// LastLine is the highest mapped physical line (the ENDMARKER line).
func (m *LineMap) LastLine() uint32 {
	return uint32(len(m.logical) - 1)
}

// NonEmpty returns the sorted starts of logical lines that carry code,
// plus the end-of-file line. The slice must not be modified.
func (m *LineMap) NonEmpty() []uint32 {
	return m.nonEmpty
}

// NextNonEmpty returns the first non-empty logical line starting at or after line.
func (m *LineMap) NextNonEmpty(line uint32) (uint32, bool) {
	i := sort.Search(len(m.nonEmpty), func(i int) bool { return m.nonEmpty[i] >= line })
	if i == len(m.nonEmpty) {
		return 0, false
	}
	return m.nonEmpty[i], true
}
