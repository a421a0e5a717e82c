package lexer

import (
	"strings"

	"fixit/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
var (
	ops3 = []string{"**=", "//=", ">>=", "<<=", "..."}
	ops2 = []string{
		"**", "//", ">>", "<<", "<=", ">=", "==", "!=", "->", ":=",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	}
)

const ops1 = "+-*/%&|^~<>()[]{},:;.=@!"

func (lx *Lexer) scanOperator() {
	start := lx.cursor.Mark()
	if lx.tryOps(ops3, 3) || lx.tryOps(ops2, 2) {
		lx.emit(token.Op, start)
		return
	}

	ch := lx.cursor.Peek()
	if strings.IndexByte(ops1, ch) < 0 {
		lx.fail(lx.file.Position(lx.cursor.Off), "BadChar", "invalid character in source")
		return
	}
	lx.cursor.Bump()
	switch ch {
	case '(', '[', '{':
		lx.depth++
	case ')', ']', '}':
		if lx.depth > 0 {
			lx.depth--
		}
	}
	lx.emit(token.Op, start)
}

func (lx *Lexer) tryOps(ops []string, n uint32) bool {
	for _, op := range ops {
		if lx.cursor.HasPrefix(op) {
			lx.cursor.Advance(n)
			return true
		}
	}
	return false
}
