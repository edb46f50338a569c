// Package scanner provides a rune cursor over source text. It knows nothing
// about the language being scanned; the lexer in pkg/syntax is built on it.
package scanner

import "fmt"

// Cursor is a position-tracked read cursor over a rune slice.
type Cursor struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // 1-based line of src[pos]
	col  int // 1-based column of src[pos]
}

// New returns a Cursor positioned at the first rune of src.
func New(src string) *Cursor {
	return &Cursor{src: []rune(src), line: 1, col: 1}
}

// HasNext reports whether a rune remains to be read.
func (c *Cursor) HasNext() bool {
	return c.pos < len(c.src)
}

// Current returns the rune at the cursor without advancing.
// Callers must check HasNext first; Current panics on an exhausted cursor.
func (c *Cursor) Current() rune {
	if !c.HasNext() {
		panic(fmt.Sprintf("scanner: Current called at offset %d past end of input", c.pos))
	}
	return c.src[c.pos]
}

// PeekNext returns the rune one position past the current one.
// ok is false when the current rune is the last one. Like Current, it panics
// on an exhausted cursor.
func (c *Cursor) PeekNext() (r rune, ok bool) {
	if !c.HasNext() {
		panic(fmt.Sprintf("scanner: PeekNext called at offset %d past end of input", c.pos))
	}
	if c.pos+1 >= len(c.src) {
		return 0, false
	}
	return c.src[c.pos+1], true
}

// Next returns the current rune and moves past it.
// ok is false, and the cursor unchanged, when the input is exhausted.
func (c *Cursor) Next() (r rune, ok bool) {
	if !c.HasNext() {
		return 0, false
	}
	r = c.src[c.pos]
	c.pos++
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r, true
}

// ConsumeWhile consumes runes while pred holds for the current rune and
// returns them. It stops at end of input.
func (c *Cursor) ConsumeWhile(pred func(rune) bool) string {
	start := c.pos
	for c.HasNext() && pred(c.src[c.pos]) {
		c.Next()
	}
	return string(c.src[start:c.pos])
}

// ConsumeUntil consumes runes until pred holds for the current rune.
func (c *Cursor) ConsumeUntil(pred func(rune) bool) string {
	return c.ConsumeWhile(func(r rune) bool { return !pred(r) })
}

// ConsumeUntilChar consumes up to, but not including, the next occurrence of
// stop, or to end of input when stop never appears.
func (c *Cursor) ConsumeUntilChar(stop rune) string {
	return c.ConsumeWhile(func(r rune) bool { return r != stop })
}

// Pos returns the 0-based rune offset of the cursor.
func (c *Cursor) Pos() int { return c.pos }

// Line returns the 1-based line of the cursor.
func (c *Cursor) Line() int { return c.line }

// Col returns the 1-based column of the cursor.
func (c *Cursor) Col() int { return c.col }
