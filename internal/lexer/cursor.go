package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"fixit/internal/source"
)

// Cursor walks File.Content byte by byte. Out-of-range reads return 0,
// which never starts a Python token.
type Cursor struct {
	File  *source.File
	Off   uint32
	limit uint32
}

func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.limit }

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt reads the byte n positions ahead.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.File.Content[c.Off:c.limit]
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

// Advance skips n bytes, stopping at the end of input.
func (c *Cursor) Advance(n uint32) {
	c.Off = min(c.Off+n, c.limit)
}

func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.Peek() == b && !c.EOF() {
		c.Off++
		return true
	}
	return false
}

// EatNewline consumes one "\n", "\r\n" or lone "\r".
func (c *Cursor) EatNewline() bool {
	if c.Eat('\r') {
		c.Eat('\n')
		return true
	}
	return c.Eat('\n')
}

// PeekRune decodes the next rune; size 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.limit])
}

// BumpRune skips the next rune; invalid UTF-8 advances one byte.
func (c *Cursor) BumpRune() {
	_, size := c.PeekRune()
	c.Off += uint32(size) // size <= utf8.UTFMax
}

// Mark is a saved offset, later turned into a Span or restored.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom covers [m, current offset).
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
