package lexer

import (
	"fixit/internal/token"
)

// scanNumber читает числовой литерал без строгой валидации:
// 0x.., 0o.., 0b.., 1_000, 1.5e-3, 2j, .5
// Некорректные формы оставляем парсеру дерева.
func (lx *Lexer) scanNumber() {
	start := lx.cursor.Mark()
	hex := lx.cursor.HasPrefix("0x") || lx.cursor.HasPrefix("0X")
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !(isDec(b) || isIdentStartByte(b) || b == '.') {
			break
		}
		lx.cursor.Bump()
		if !hex && (b == 'e' || b == 'E') {
			if next := lx.cursor.Peek(); next == '+' || next == '-' {
				lx.cursor.Bump()
			}
		}
	}
	lx.emit(token.Number, start)
}
