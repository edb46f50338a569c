package syntax

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stripPos zeroes position fields so tests can compare token content only.
func stripPos(toks []Token) []Token {
	out := make([]Token, len(toks))
	for i, t := range toks {
		t.Pos, t.Line, t.Col = 0, 0, 0
		out[i] = t
	}
	return out
}

func ident(name string) Token { return Token{Kind: IDENTIFIER, Text: name} }
func sym(text string) Token { return Token{Kind: SYMBOL, Text: text} }
func paren(text string) Token { return Token{Kind: PAREN, Text: text} }
func kw(k Keyword) Token { return Token{Kind: KEYWORD, Text: k.String(), Keyword: k} }
func str(text string) Token { return Token{Kind: STRING, Text: text} }
func num(text string, v float64) Token {
	return Token{Kind: NUMBER, Text: text, Number: v}
}

var (
	semi = Token{Kind: SEMICOLON, Text: ";"}
	eof  = Token{Kind: EOF}
)

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "Empty",
			input:    "",
			expected: []Token{eof},
		},
		{
			name:     "Whitespace only",
			input:    " \t\r\n ",
			expected: []Token{eof},
		},
		{
			name:  "Let and compound assignment",
			input: "let x = 10; x += 100;",
			expected: []Token{
				kw(KwLet), ident("x"), sym("="), num("10", 10), semi,
				ident("x"), sym("+="), num("100", 100), semi,
				eof,
			},
		},
		{
			name:  "Keywords",
			input: "let const if else func return break continue while do in for has true false",
			expected: []Token{
				kw(KwLet), kw(KwConst), kw(KwIf), kw(KwElse), kw(KwFunc), kw(KwReturn),
				kw(KwBreak), kw(KwContinue), kw(KwWhile), kw(KwDo), kw(KwIn), kw(KwFor),
				kw(KwHas), kw(KwTrue), kw(KwFalse),
				eof,
			},
		},
		{
			name:     "Identifiers",
			input:    "variableName _under_score x1 letter lets",
			expected: []Token{ident("variableName"), ident("_under_score"), ident("x1"), ident("letter"), ident("lets"), eof},
		},
		{
			name:  "Numbers",
			input: "123 0 1.5 .25 0x1F 0Xff",
			expected: []Token{
				num("123", 123), num("0", 0), num("1.5", 1.5), num(".25", 0.25),
				num("0x1F", 31), num("0Xff", 255),
				eof,
			},
		},
		{
			name:  "Large hex literals widen to float",
			input: "0xFFFFFFFFFFFFFFFF 0x20000000000001",
			expected: []Token{
				num("0xFFFFFFFFFFFFFFFF", 1.8446744073709552e19),
				num("0x20000000000001", 9007199254740992),
				eof,
			},
		},
		{
			name:     "Decimal overflow is infinity",
			input:    "1" + strings.Repeat("0", 400),
			expected: []Token{num("1"+strings.Repeat("0", 400), math.Inf(1)), eof},
		},
		{
			name:     "Decimal followed by letters",
			input:    "10abc",
			expected: []Token{num("10", 10), ident("abc"), eof},
		},
		{
			name:     "Parens",
			input:    "( ) [ ] { }",
			expected: []Token{paren("("), paren(")"), paren("["), paren("]"), paren("{"), paren("}"), eof},
		},
		{
			name:     "Comma is its own symbol",
			input:    "a,b",
			expected: []Token{ident("a"), sym(","), ident("b"), eof},
		},
		{
			name:  "Operator maximal munch",
			input: "< <= << <<= ** **= ? : ! != && || ~",
			expected: []Token{
				sym("<"), sym("<="), sym("<<"), sym("<<="), sym("**"), sym("**="),
				sym("?"), sym(":"), sym("!"), sym("!="), sym("&&"), sym("||"), sym("~"),
				eof,
			},
		},
		{
			name:     "Adjacent operators form one run",
			input:    "a=-1",
			expected: []Token{ident("a"), sym("=-"), num("1", 1), eof},
		},
		{
			name:     "Strings and escapes",
			input:    `"a\nb" "tab\there" "q\"uote" "back\\slash" "it\'s" "cr\r"`,
			expected: []Token{str("a\nb"), str("tab\there"), str(`q"uote`), str(`back\slash`), str("it's"), str("cr\r"), eof},
		},
		{
			name:     "Non-ASCII inside strings",
			input:    `"héllo\n→"`,
			expected: []Token{str("héllo\n→"), eof},
		},
		{
			name:     "Empty string",
			input:    `""`,
			expected: []Token{str(""), eof},
		},
		{
			name:     "Comments",
			input:    "x # comment ; ignored\ny # trailing",
			expected: []Token{ident("x"), ident("y"), eof},
		},
		{
			name:     "Parens stay paren tokens",
			input:    "(1)",
			expected: []Token{paren("("), num("1", 1), paren(")"), eof},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stripPos(got))
		})
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		check   func(t *testing.T, le *LexError)
	}{
		{
			name:    "Unterminated string",
			input:   `"abc`,
			wantErr: ErrUnterminatedString,
		},
		{
			name:    "Unterminated after escape",
			input:   `"abc\`,
			wantErr: ErrUnterminatedString,
		},
		{
			name:    "Unknown escape",
			input:   `"a\qb"`,
			wantErr: ErrUnknownEscape,
			check: func(t *testing.T, le *LexError) {
				assert.Equal(t, 'q', le.Char)
			},
		},
		{
			name:    "Unexpected character",
			input:   "x @ y",
			wantErr: ErrUnexpectedCharacter,
			check: func(t *testing.T, le *LexError) {
				assert.Equal(t, '@', le.Char)
				assert.Equal(t, 2, le.Pos)
				assert.Equal(t, 1, le.Line)
				assert.Equal(t, 3, le.Col)
			},
		},
		{
			name:    "Malformed decimal",
			input:   "1.2.3",
			wantErr: ErrInvalidNumericLiteral,
			check: func(t *testing.T, le *LexError) {
				assert.Equal(t, "1.2.3", le.Text)
			},
		},
		{
			name:    "Lone dot",
			input:   ".",
			wantErr: ErrInvalidNumericLiteral,
		},
		{
			name:    "Hex prefix without digits",
			input:   "0x",
			wantErr: ErrInvalidNumericLiteral,
			check: func(t *testing.T, le *LexError) {
				assert.Equal(t, "0x", le.Text)
			},
		},
		{
			name:    "Hex wider than 64 bits",
			input:   "0x1FFFFFFFFFFFFFFFF",
			wantErr: ErrInvalidNumericLiteral,
			check: func(t *testing.T, le *LexError) {
				assert.Equal(t, "0x1FFFFFFFFFFFFFFFF", le.Text)
			},
		},
		{
			name:    "Non-ASCII identifier start",
			input:   "é = 1",
			wantErr: ErrUnexpectedCharacter,
			check: func(t *testing.T, le *LexError) {
				assert.Equal(t, 'é', le.Char)
				assert.Equal(t, 1, le.Col)
			},
		},
		{
			name:    "Non-ASCII digit after identifier",
			input:   "x٣",
			wantErr: ErrUnexpectedCharacter,
			check: func(t *testing.T, le *LexError) {
				assert.Equal(t, '٣', le.Char)
				assert.Equal(t, 1, le.Pos)
				assert.Equal(t, 2, le.Col)
			},
		},
		{
			name:    "Hex with a fraction",
			input:   "0x1.8",
			wantErr: ErrInvalidNumericLiteral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Lex(tt.input)
			require.Error(t, err)
			assert.Nil(t, toks)
			assert.ErrorIs(t, err, tt.wantErr)

			var le *LexError
			require.True(t, errors.As(err, &le))
			if tt.check != nil {
				tt.check(t, le)
			}
		})
	}
}

func TestLexPositions(t *testing.T) {
	toks, err := Lex("let a\n  = 1;")
	require.NoError(t, err)
	require.Len(t, toks, 6)

	assert.Equal(t, Token{Kind: KEYWORD, Text: "let", Keyword: KwLet, Pos: 0, Line: 1, Col: 1}, toks[0])
	assert.Equal(t, Token{Kind: IDENTIFIER, Text: "a", Pos: 4, Line: 1, Col: 5}, toks[1])
	assert.Equal(t, Token{Kind: SYMBOL, Text: "=", Pos: 8, Line: 2, Col: 3}, toks[2])
	assert.Equal(t, 2, toks[5].Line, "EOF carries the final position")
	assert.Equal(t, EOF, toks[5].Kind)
}

func TestLexIsDeterministic(t *testing.T) {
	src := `let total = 0x10 + 2 ** 3; # sum
msg = "done\n";`
	first, err := Lex(src)
	require.NoError(t, err)
	second, err := Lex(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLexEndsWithSingleEOF(t *testing.T) {
	for _, src := range []string{"", "x", "x;", "# only a comment"} {
		toks, err := Lex(src)
		require.NoError(t, err)
		require.NotEmpty(t, toks)
		assert.Equal(t, EOF, toks[len(toks)-1].Kind, src)
		for _, tok := range toks[:len(toks)-1] {
			assert.NotEqual(t, EOF, tok.Kind, src)
		}
	}
}

func TestLexErrorMessage(t *testing.T) {
	_, err := Lex(`"a\qb"`)
	require.Error(t, err)
	assert.Equal(t, `line 1:4: unknown escape sequence \q`, err.Error())

	_, err = Lex("\n  @")
	require.Error(t, err)
	assert.Equal(t, `line 2:3: unexpected character '@' at offset 3`, err.Error())
}
