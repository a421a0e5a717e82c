package lexer

import (
	"strings"

	"fixit/internal/token"
)

// строковые префиксы без учёта регистра
var stringPrefixes = map[string]bool{
	"r": true, "u": true, "f": true, "b": true,
	"br": true, "rb": true, "fr": true, "rf": true,
}

// scanNameOrString читает идентификатор; если это допустимый строковый
// префикс, за которым сразу идёт кавычка, — читает строку целиком.
func (lx *Lexer) scanNameOrString() {
	start := lx.cursor.Mark()

	var n uint32
	for n < 3 && isIdentStartByte(lx.cursor.PeekAt(n)) {
		n++
	}
	if n > 0 && n <= 2 {
		if q := lx.cursor.PeekAt(n); q == '\'' || q == '"' {
			prefix := strings.ToLower(string(lx.file.Content[lx.cursor.Off : lx.cursor.Off+n]))
			if stringPrefixes[prefix] {
				lx.cursor.Off += n
				lx.scanString(start)
				return
			}
		}
	}

	r, _ := lx.cursor.PeekRune()
	if !isIdentStartRune(r) {
		lx.fail(lx.file.Position(lx.cursor.Off), "BadChar", "invalid character in identifier")
		return
	}
	lx.cursor.BumpRune()
	for !lx.cursor.EOF() {
		r, _ := lx.cursor.PeekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.cursor.BumpRune()
	}
	lx.emit(token.Name, start)
}
