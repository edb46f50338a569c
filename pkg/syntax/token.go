package syntax

import (
	"fmt"
	"strconv"
)

// TokenKind identifies the category of a lexed token.
type TokenKind int

const (
	EOF TokenKind = iota // sentinel: end of input

	IDENTIFIER // variable / function name
	KEYWORD    // reserved word, see Keyword
	NUMBER     // numeric literal, always float64
	STRING     // string literal "...", escapes decoded
	PAREN      // one of ( ) [ ] { }
	SYMBOL     // operator run or ","
	SEMICOLON  // ;
)

var tokenKindNames = [...]string{
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	KEYWORD:    "KEYWORD",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	PAREN:      "PAREN",
	SYMBOL:     "SYMBOL",
	SEMICOLON:  "SEMICOLON",
}

func (k TokenKind) String() string {
	if int(k) >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Keyword is the closed set of reserved words.
type Keyword int

const (
	KwLet Keyword = iota
	KwConst
	KwIf
	KwElse
	KwFunc
	KwReturn
	KwBreak
	KwContinue
	KwWhile
	KwDo
	KwIn
	KwFor
	KwHas
	KwTrue
	KwFalse
)

var keywordNames = [...]string{
	KwLet:      "let",
	KwConst:    "const",
	KwIf:       "if",
	KwElse:     "else",
	KwFunc:     "func",
	KwReturn:   "return",
	KwBreak:    "break",
	KwContinue: "continue",
	KwWhile:    "while",
	KwDo:       "do",
	KwIn:       "in",
	KwFor:      "for",
	KwHas:      "has",
	KwTrue:     "true",
	KwFalse:    "false",
}

func (k Keyword) String() string {
	if int(k) >= 0 && int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return fmt.Sprintf("Keyword(%d)", int(k))
}

// keywords maps source text to its Keyword. Built once at package
// initialisation and only read afterwards.
var keywords = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordNames))
	for kw, name := range keywordNames {
		m[name] = Keyword(kw)
	}
	return m
}()

// LookupKeyword reports whether ident is a reserved word.
func LookupKeyword(ident string) (Keyword, bool) {
	kw, ok := keywords[ident]
	return kw, ok
}

// Token is a single lexical unit produced by Lex. It is a plain value and is
// copied freely.
type Token struct {
	Kind    TokenKind
	Text    string  // identifier name, operator text, paren char or decoded string
	Keyword Keyword // valid when Kind == KEYWORD
	Number  float64 // valid when Kind == NUMBER
	Pos     int     // 0-based rune offset of the first character
	Line    int     // 1-based source line
	Col     int     // 1-based source column
}

// Is reports whether t is a SYMBOL or PAREN token with exactly the given text.
func (t Token) Is(text string) bool {
	return (t.Kind == SYMBOL || t.Kind == PAREN) && t.Text == text
}

// IsKeyword reports whether t is the given keyword.
func (t Token) IsKeyword(kw Keyword) bool {
	return t.Kind == KEYWORD && t.Keyword == kw
}

// Describe renders the token for error messages, e.g. SYMBOL "+=".
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case SEMICOLON:
		return `";"`
	case KEYWORD:
		return fmt.Sprintf("keyword %q", t.Keyword.String())
	case NUMBER:
		return fmt.Sprintf("number %s", strconv.FormatFloat(t.Number, 'g', -1, 64))
	case STRING:
		return fmt.Sprintf("string %q", t.Text)
	default:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
}

func (t Token) String() string {
	lexeme := t.Text
	switch t.Kind {
	case KEYWORD:
		lexeme = t.Keyword.String()
	case NUMBER:
		lexeme = strconv.FormatFloat(t.Number, 'g', -1, 64)
	case SEMICOLON:
		lexeme = ";"
	}
	return fmt.Sprintf("%-10s %-14q  line %d", t.Kind, lexeme, t.Line)
}
