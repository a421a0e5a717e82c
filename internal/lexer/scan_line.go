package lexer

import (
	"fixit/internal/source"
	"fixit/internal/token"
)

// scanLineStart обрабатывает начало физической строки вне скобок.
// Пустые строки и строки из одного комментария дают COMMENT? + NL и
// не влияют на отступы; для строки с кодом выпускаются INDENT/DEDENT.
// Возвращает true, если строка обработана целиком.
func (lx *Lexer) scanLineStart() bool {
	begin := lx.cursor.Mark()
	var col uint32
loop:
	for {
		switch lx.cursor.Peek() {
		case ' ':
			col++
		case '\t':
			col = (col/8 + 1) * 8
		case '\f':
			col = 0
		default:
			break loop
		}
		lx.cursor.Bump()
	}
	if lx.cursor.EOF() {
		return false
	}

	switch ch := lx.cursor.Peek(); {
	case ch == '#':
		lx.scanComment()
		lx.scanNewline(token.NL)
		return true
	case isNewlineByte(ch):
		lx.scanNewline(token.NL)
		return true
	}

	top := lx.indents[len(lx.indents)-1]
	switch {
	case col > top:
		lx.indents = append(lx.indents, col)
		lx.emit(token.Indent, begin)
	case col < top:
		pos := lx.file.Position(lx.cursor.Off)
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > col {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.push(token.Token{Kind: token.Dedent, Span: lx.emptySpan(), Start: pos, End: pos})
		}
		if lx.indents[len(lx.indents)-1] != col {
			lx.fail(pos, "Indentation", "unindent does not match any outer indentation level")
			return true
		}
	}
	return false
}

// scanComment читает '#' до конца строки, не включая перевод строки.
func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && !isNewlineByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	lx.emit(token.Comment, start)
}

// scanNewline выпускает NEWLINE/NL; на EOF без перевода строки токен пустой.
func (lx *Lexer) scanNewline(kind token.Kind) {
	start := lx.cursor.Mark()
	if !lx.cursor.EatNewline() {
		pos := lx.file.Position(lx.cursor.Off)
		lx.push(token.Token{
			Kind:  kind,
			Span:  lx.emptySpan(),
			Start: pos,
			End:   source.LineCol{Line: pos.Line, Col: pos.Col + 1},
		})
		lx.lineStart = true
		return
	}
	lx.emit(kind, start)
	lx.lineStart = true
}

// scanContinuation: '\' в конце строки склеивает физические строки без токена.
func (lx *Lexer) scanContinuation() {
	pos := lx.file.Position(lx.cursor.Off)
	lx.cursor.Bump()
	if lx.cursor.EatNewline() {
		lx.continued = true
		lx.lineStart = true
		return
	}
	if lx.cursor.EOF() {
		lx.fail(pos, "EOF", "unexpected EOF after line continuation character")
		return
	}
	lx.fail(pos, "Continuation", "unexpected character after line continuation character")
}
