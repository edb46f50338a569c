package scanner

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorNext(t *testing.T) {
	c := New("ab")

	require.True(t, c.HasNext())
	assert.Equal(t, 'a', c.Current())

	r, ok := c.Next()
	assert.True(t, ok)
	assert.Equal(t, 'a', r)

	r, ok = c.Next()
	assert.True(t, ok)
	assert.Equal(t, 'b', r)

	assert.False(t, c.HasNext())
	r, ok = c.Next()
	assert.False(t, ok, "Next on an exhausted cursor must report no value")
	assert.Equal(t, rune(0), r)
	assert.Equal(t, 2, c.Pos(), "exhausted Next must not move the cursor")
}

func TestCursorPeekNext(t *testing.T) {
	c := New("xy")

	r, ok := c.PeekNext()
	assert.True(t, ok)
	assert.Equal(t, 'y', r)
	assert.Equal(t, 0, c.Pos(), "PeekNext must not consume")

	c.Next()
	_, ok = c.PeekNext()
	assert.False(t, ok, "no rune after the last one")
}

func TestCursorExhaustedAccessPanics(t *testing.T) {
	c := New("")
	assert.Panics(t, func() { c.Current() })
	assert.Panics(t, func() { c.PeekNext() })
}

func TestCursorConsumeWhile(t *testing.T) {
	c := New("123abc")

	digits := c.ConsumeWhile(unicode.IsDigit)
	assert.Equal(t, "123", digits)
	assert.Equal(t, 'a', c.Current())

	rest := c.ConsumeWhile(unicode.IsLetter)
	assert.Equal(t, "abc", rest)
	assert.False(t, c.HasNext(), "ConsumeWhile stops at end of input")

	assert.Equal(t, "", c.ConsumeWhile(unicode.IsLetter))
}

func TestCursorConsumeUntil(t *testing.T) {
	c := New("name = 1")
	assert.Equal(t, "name", c.ConsumeUntil(unicode.IsSpace))
	assert.Equal(t, ' ', c.Current())
}

func TestCursorConsumeUntilChar(t *testing.T) {
	tests := []struct {
		name string
		src  string
		stop rune
		want string
		rest bool
	}{
		{name: "stops before char", src: "comment\nnext", stop: '\n', want: "comment", rest: true},
		{name: "char never appears", src: "no newline", stop: '\n', want: "no newline", rest: false},
		{name: "char is first", src: "\nx", stop: '\n', want: "", rest: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.src)
			assert.Equal(t, tt.want, c.ConsumeUntilChar(tt.stop))
			assert.Equal(t, tt.rest, c.HasNext())
			if tt.rest {
				assert.Equal(t, tt.stop, c.Current())
			}
		})
	}
}

func TestCursorLineAndColumn(t *testing.T) {
	c := New("ab\ncd")
	assert.Equal(t, 1, c.Line())
	assert.Equal(t, 1, c.Col())

	c.ConsumeUntilChar('\n')
	assert.Equal(t, 1, c.Line())
	assert.Equal(t, 3, c.Col())

	c.Next() // newline
	assert.Equal(t, 2, c.Line())
	assert.Equal(t, 1, c.Col())

	c.Next()
	assert.Equal(t, 2, c.Col())
	assert.Equal(t, 4, c.Pos())
}

func TestCursorRunes(t *testing.T) {
	c := New("héllo")
	assert.Equal(t, "héllo", c.ConsumeWhile(unicode.IsLetter))
	assert.Equal(t, 5, c.Pos(), "offsets count runes, not bytes")
}
