package syntax

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"tinyexpr/pkg/scanner"
)

// isOperatorChar reports whether r may appear in an operator run. Runs are
// lexed with maximal munch; the parser rejects runs that are not operators.
func isOperatorChar(r rune) bool {
	return strings.ContainsRune("+-*/=^|&~:%<>?!", r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// Identifiers are ASCII only.
func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isStringStop(r rune) bool {
	return r == '"' || r == '\\'
}

// Lexer holds all mutable state for a single scanning pass.
type Lexer struct {
	cur    *scanner.Cursor
	tokens []Token
	logger *slog.Logger
}

func newLexer(src string, logger *slog.Logger) *Lexer {
	return &Lexer{cur: scanner.New(src), logger: logger}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It stops at the first illegal character or malformed literal and returns a
// *LexError.
func Lex(src string) ([]Token, error) {
	return LexWithConfig(src, DefaultConfig())
}

// LexWithConfig is Lex with the logger taken from cfg.
func LexWithConfig(src string, cfg Config) ([]Token, error) {
	l := newLexer(src, cfg.Logger())
	if err := l.run(); err != nil {
		return nil, err
	}
	l.logger.Debug("lexed source", slog.Int("tokens", len(l.tokens)))
	return l.tokens, nil
}

func (l *Lexer) run() error {
	for l.cur.HasNext() {
		c := l.cur.Current()
		switch {
		case isDigit(c) || c == '.':
			if err := l.scanNumber(); err != nil {
				return err
			}
		case isIdentStart(c):
			l.scanIdent()
		case strings.ContainsRune("()[]{}", c):
			l.emitRune(PAREN)
		case c == ',':
			l.emitRune(SYMBOL)
		case c == ';':
			l.emitRune(SEMICOLON)
		case isOperatorChar(c):
			start := l.mark()
			start.Kind = SYMBOL
			start.Text = l.cur.ConsumeWhile(isOperatorChar)
			l.tokens = append(l.tokens, start)
		case c == '"':
			if err := l.scanString(); err != nil {
				return err
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.cur.Next()
		case c == '#':
			l.cur.ConsumeUntilChar('\n')
		default:
			return &LexError{
				Err:  ErrUnexpectedCharacter,
				Char: c,
				Pos:  l.cur.Pos(),
				Line: l.cur.Line(),
				Col:  l.cur.Col(),
			}
		}
	}

	eof := l.mark()
	eof.Kind = EOF
	l.tokens = append(l.tokens, eof)
	return nil
}

// mark returns a Token positioned at the cursor.
func (l *Lexer) mark() Token {
	return Token{Pos: l.cur.Pos(), Line: l.cur.Line(), Col: l.cur.Col()}
}

// emitRune consumes the current rune as a single-character token of kind k.
func (l *Lexer) emitRune(k TokenKind) {
	tok := l.mark()
	tok.Kind = k
	r, _ := l.cur.Next()
	tok.Text = string(r)
	l.tokens = append(l.tokens, tok)
}

// scanIdent collects an identifier or keyword.
// The first character (letter or '_') must be at the cursor.
func (l *Lexer) scanIdent() {
	tok := l.mark()
	tok.Text = l.cur.ConsumeWhile(isIdentPart)
	if kw, ok := LookupKeyword(tok.Text); ok {
		tok.Kind = KEYWORD
		tok.Keyword = kw
	} else {
		tok.Kind = IDENTIFIER
	}
	l.tokens = append(l.tokens, tok)
}

// scanNumber collects a decimal or 0x-prefixed hexadecimal literal.
// Hex letters are only part of the literal after the prefix, so 10abc is the
// number 10 followed by the identifier abc.
func (l *Lexer) scanNumber() error {
	tok := l.mark()
	tok.Kind = NUMBER

	var text string
	if l.cur.Current() == '0' {
		if next, ok := l.cur.PeekNext(); ok && (next == 'x' || next == 'X') {
			l.cur.Next() // 0
			l.cur.Next() // x
			digits := l.cur.ConsumeWhile(func(r rune) bool { return isHexDigit(r) || r == '.' })
			text = "0" + string(next) + digits

			n, err := strconv.ParseUint(digits, 16, 64)
			if err != nil {
				return l.numberError(tok, text)
			}
			tok.Text = text
			tok.Number = float64(n)
			l.tokens = append(l.tokens, tok)
			return nil
		}
	}

	text = l.cur.ConsumeWhile(func(r rune) bool { return isDigit(r) || r == '.' })
	f, err := strconv.ParseFloat(text, 64)
	// Out of range literals are well formed and become +Inf.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return l.numberError(tok, text)
	}
	tok.Text = text
	tok.Number = f
	l.tokens = append(l.tokens, tok)
	return nil
}

func (l *Lexer) numberError(at Token, text string) error {
	return &LexError{Err: ErrInvalidNumericLiteral, Text: text, Pos: at.Pos, Line: at.Line, Col: at.Col}
}

// scanString collects a string literal "..." and decodes its escapes.
// The opening quote must be at the cursor.
func (l *Lexer) scanString() error {
	tok := l.mark()
	tok.Kind = STRING
	l.cur.Next() // opening "

	var val strings.Builder
	for {
		val.WriteString(l.cur.ConsumeUntil(isStringStop))
		r, ok := l.cur.Next()
		if !ok {
			return &LexError{Err: ErrUnterminatedString, Pos: tok.Pos, Line: tok.Line, Col: tok.Col}
		}
		if r == '"' {
			break
		}

		escLine, escCol, escPos := l.cur.Line(), l.cur.Col(), l.cur.Pos()
		esc, ok := l.cur.Next()
		if !ok {
			return &LexError{Err: ErrUnterminatedString, Pos: tok.Pos, Line: tok.Line, Col: tok.Col}
		}
		switch esc {
		case 'n':
			val.WriteRune('\n')
		case 't':
			val.WriteRune('\t')
		case 'r':
			val.WriteRune('\r')
		case '\'':
			val.WriteRune('\'')
		case '"':
			val.WriteRune('"')
		case '\\':
			val.WriteRune('\\')
		default:
			return &LexError{Err: ErrUnknownEscape, Char: esc, Pos: escPos, Line: escLine, Col: escCol}
		}
	}

	tok.Text = val.String()
	l.tokens = append(l.tokens, tok)
	return nil
}
