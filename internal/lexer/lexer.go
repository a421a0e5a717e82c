package lexer

import (
	"fixit/internal/source"
	"fixit/internal/token"
)

// Lexer turns Python source into the token stream CPython's tokenize module
// would produce: ENCODING first, INDENT/DEDENT, NEWLINE vs NL, ENDMARKER last.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	queue   []token.Token // готовые токены, ещё не отданные наружу
	indents []uint32      // стек отступов, indents[0] == 0
	depth   int           // глубина вложенности скобок

	continued  bool // предыдущая физическая строка закончилась '\'
	lineStart  bool // курсор стоит в начале физической строки
	hasContent bool // на текущей логической строке уже был значимый токен
	started    bool
	finished   bool

	last token.Token // ENDMARKER или Invalid; отдаётся после завершения
	err  *Error
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		indents:   []uint32{0},
		lineStart: true,
	}
}

// Tokenize runs the lexer to completion. On failure the tokens produced so
// far are returned together with the *Error.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4+4)
	for {
		tok := lx.Next()
		if tok.Kind == token.Invalid {
			return tokens, lx.err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EndMarker {
			return tokens, nil
		}
	}
}

// Next возвращает следующий токен.
// После ENDMARKER (или ошибки) всегда возвращает его же.
func (lx *Lexer) Next() token.Token {
	for len(lx.queue) == 0 {
		if lx.finished {
			return lx.last
		}
		lx.step()
	}
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	return tok
}

// Err returns the tokenize error, if any.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

func (lx *Lexer) step() {
	if !lx.started {
		lx.started = true
		lx.queue = append(lx.queue, token.Token{
			Kind: token.Encoding,
			Text: lx.file.Encoding,
			Span: lx.emptySpan(),
			// как в CPython: ENCODING живёт на строке 0
		})
		return
	}

	if lx.lineStart {
		if lx.cursor.EOF() {
			lx.finish()
			return
		}
		lx.lineStart = false
		if lx.depth == 0 && !lx.continued {
			if lx.scanLineStart() {
				return
			}
		}
		lx.continued = false
	}

	lx.skipSpaces()
	if lx.cursor.EOF() {
		lx.finish()
		return
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '#':
		lx.scanComment()
	case isNewlineByte(ch):
		kind := token.Newline
		if lx.depth > 0 {
			kind = token.NL
		}
		lx.scanNewline(kind)
	case ch == '\\':
		lx.scanContinuation()
	case ch == '"' || ch == '\'':
		lx.scanString(lx.cursor.Mark())
	case isIdentStartByte(ch) || ch >= 0x80:
		lx.scanNameOrString()
	case isDec(ch) || lx.isNumberAfterDot():
		lx.scanNumber()
	default:
		lx.scanOperator()
	}
}

func (lx *Lexer) skipSpaces() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\f':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

// finish закрывает поток: NEWLINE для строки без перевода строки, DEDENT-ы, ENDMARKER.
func (lx *Lexer) finish() {
	if lx.continued || lx.depth > 0 {
		lx.fail(lx.file.Position(lx.cursor.Off), "EOF", "unexpected EOF in multi-line statement")
		return
	}
	end := lx.cursor.Off
	if lx.hasContent {
		pos := lx.file.Position(end)
		lx.push(token.Token{
			Kind:  token.Newline,
			Span:  lx.emptySpan(),
			Start: pos,
			End:   source.LineCol{Line: pos.Line, Col: pos.Col + 1},
		})
	}

	eof := lx.file.Position(end)
	if content := lx.file.Content; len(content) > 0 && !isNewlineByte(content[len(content)-1]) {
		eof = source.LineCol{Line: eof.Line + 1}
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.push(token.Token{Kind: token.Dedent, Span: lx.emptySpan(), Start: eof, End: eof})
	}
	lx.last = token.Token{Kind: token.EndMarker, Span: lx.emptySpan(), Start: eof, End: eof}
	lx.queue = append(lx.queue, lx.last)
	lx.finished = true
}

func (lx *Lexer) fail(pos source.LineCol, kind, msg string) {
	sp := lx.emptySpan()
	lx.err = &Error{Path: lx.file.Path, Pos: pos, Kind: kind, Msg: msg}
	lx.report(kind, sp, msg)
	lx.last = token.Token{Kind: token.Invalid, Span: sp, Start: pos, End: pos}
	lx.queue = append(lx.queue, lx.last)
	lx.finished = true
}

// emit формирует токен от метки до курсора и кладёт его в очередь.
func (lx *Lexer) emit(kind token.Kind, m Mark) {
	sp := lx.cursor.SpanFrom(m)
	tok := token.Token{
		Kind:  kind,
		Span:  sp,
		Text:  string(lx.file.Content[sp.Start:sp.End]),
		Start: lx.file.Position(sp.Start),
	}
	if kind == token.Newline || kind == token.NL {
		// конец перевода строки остаётся на той же строке
		tok.End = source.LineCol{Line: tok.Start.Line, Col: tok.Start.Col + sp.Len()}
	} else {
		tok.End = lx.file.Position(sp.End)
	}
	lx.push(tok)
}

func (lx *Lexer) push(tok token.Token) {
	switch tok.Kind {
	case token.Newline, token.NL:
		lx.hasContent = false
	case token.Name, token.Number, token.String, token.Op:
		lx.hasContent = true
	}
	lx.queue = append(lx.queue, tok)
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
