package lexer

import (
	"fixit/internal/token"
)

// scanString читает строковый литерал; префикс (если был) уже съеден,
// start указывает на его начало. Тройные кавычки могут занимать несколько строк.
func (lx *Lexer) scanString(start Mark) {
	startPos := lx.file.Position(uint32(start))
	q := lx.cursor.Bump()
	closing := string([]byte{q, q, q})
	triple := lx.cursor.HasPrefix(closing[:2])
	if triple {
		lx.cursor.Advance(2)
	}

	for {
		if lx.cursor.EOF() {
			if triple {
				lx.fail(startPos, "UnterminatedString", "unterminated triple-quoted string literal")
			} else {
				lx.fail(startPos, "UnterminatedString", "unterminated string literal")
			}
			return
		}
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			// escape: следующий символ (в т.ч. перевод строки) принадлежит строке
			lx.cursor.Bump()
			if !lx.cursor.EatNewline() {
				lx.cursor.Bump()
			}
		case b == q:
			if !triple {
				lx.cursor.Bump()
				lx.emit(token.String, start)
				return
			}
			if lx.cursor.HasPrefix(closing) {
				lx.cursor.Advance(3)
				lx.emit(token.String, start)
				return
			}
			lx.cursor.Bump()
		case isNewlineByte(b) && !triple:
			lx.fail(startPos, "UnterminatedString", "unterminated string literal")
			return
		default:
			lx.cursor.Bump()
		}
	}
}
