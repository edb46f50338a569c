package syntax

import (
	"errors"
	"fmt"
)

var (
	// Lex errors
	ErrInvalidNumericLiteral = errors.New("invalid numeric literal")
	ErrUnknownEscape         = errors.New("unknown escape sequence")
	ErrUnterminatedString    = errors.New("unterminated string literal")
	ErrUnexpectedCharacter   = errors.New("unexpected character")

	// Parse errors
	ErrUnexpectedToken     = errors.New("unexpected token")
	ErrExpectedIdentifier  = errors.New("expected identifier")
	ErrExpectedStatement   = errors.New("expected statement")
	ErrUnmatchedParen      = errors.New("unmatched parenthesis")
	ErrMaxNestingDepth     = errors.New("maximum nesting depth exceeded")
	ErrInvalidAssignTarget = errors.New("invalid assignment target")
)

// LexError is returned by Lex. Err is one of the Err* lex sentinels.
type LexError struct {
	Err  error
	Text string // offending literal text, when there is one
	Char rune   // offending character for escape and character errors
	Pos  int
	Line int
	Col  int
}

func (e *LexError) Error() string {
	var detail string
	switch {
	case errors.Is(e.Err, ErrInvalidNumericLiteral):
		detail = fmt.Sprintf(" %q", e.Text)
	case errors.Is(e.Err, ErrUnknownEscape):
		detail = fmt.Sprintf(` \%c`, e.Char)
	case errors.Is(e.Err, ErrUnexpectedCharacter):
		detail = fmt.Sprintf(" %q at offset %d", e.Char, e.Pos)
	}
	return fmt.Sprintf("line %d:%d: %v%s", e.Line, e.Col, e.Err, detail)
}

func (e *LexError) Unwrap() error { return e.Err }

// ParseError is returned by Parse. Err is one of the Err* parse sentinels.
type ParseError struct {
	Err      error
	Expected string // description of the construct the parser wanted
	Got      Token  // token at which parsing stopped
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d:%d: %v", e.Got.Line, e.Got.Col, e.Err)
	if e.Expected != "" {
		msg += fmt.Sprintf(": expected %s", e.Expected)
	}
	return msg + fmt.Sprintf(", got %s", e.Got.Describe())
}

func (e *ParseError) Unwrap() error { return e.Err }
