package syntax

import (
	"fmt"
	"log/slog"
	"slices"
)

// Parser consumes the flat token slice produced by Lex and builds an AST.
//
// Grammar, lowest precedence first:
//
//	program     = statement+ EOF
//	statement   = ";" | ("break" | "continue" | "return" test | let | assignment) (";" | EOF)
//	let         = "let" var ("," var)*
//	var         = IDENTIFIER ("=" test)?
//	assignment  = test (ASSIGN_OP test)?
//	test        = or_test ("?" test ":" test)?
//	or_test     = and_test ("||" and_test)*
//	and_test    = not_test ("&&" not_test)*
//	not_test    = "!" comparison | comparison
//	comparison  = bit_or (CMP_OP bit_or)?
//	bit_or      = bit_xor ("|" bit_xor)*
//	bit_xor     = bit_and ("^" bit_and)*
//	bit_and     = shift ("&" shift)*
//	shift       = arith (("<<" | ">>") arith)*
//	arith       = term (("+" | "-") term)*
//	term        = factor (("*" | "/" | "%") factor)*
//	factor      = ("-" | "~") factor | power
//	power       = atom ("**" factor)?
//	atom        = IDENTIFIER ("(" args ")")? | NUMBER | STRING | "true" | "false" | "(" test ")"
//	args        = (test ("," test)*)?
type Parser struct {
	tokens   []Token
	pos      int
	depth    int
	maxDepth int
	logger   *slog.Logger
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true, "**=": true,
}

func newParser(tokens []Token, cfg Config) *Parser {
	// The parser relies on a trailing EOF to saturate advance().
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		var eof Token
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			eof = Token{Pos: last.Pos, Line: last.Line, Col: last.Col}
		}
		eof.Kind = EOF
		tokens = append(slices.Clip(tokens), eof)
	}
	return &Parser{tokens: tokens, maxDepth: cfg.MaxDepth, logger: cfg.Logger()}
}

// Parse builds the statement list for tokens using DefaultConfig.
// It returns a *ParseError describing the first ungrammatical token.
func Parse(tokens []Token) ([]Stmt, error) {
	return ParseWithConfig(tokens, DefaultConfig())
}

// ParseWithConfig is Parse with an explicit nesting limit and logger.
func ParseWithConfig(tokens []Token, cfg Config) ([]Stmt, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newParser(tokens, cfg).parseProgram()
}

// ParseSource lexes and parses src with DefaultConfig.
func ParseSource(src string) ([]Stmt, error) {
	return ParseSourceWithConfig(src, DefaultConfig())
}

// ParseSourceWithConfig lexes and parses src.
func ParseSourceWithConfig(src string, cfg Config) ([]Stmt, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tokens, err := LexWithConfig(src, cfg)
	if err != nil {
		return nil, err
	}
	return newParser(tokens, cfg).parseProgram()
}

// current returns the token at the cursor without consuming it.
func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

// advance consumes and returns the current token. It never moves past EOF.
func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// stepBack undoes one advance. Only parseStatement uses it, to hand a token it
// inspected back to the expression grammar.
func (p *Parser) stepBack() {
	if p.pos > 0 {
		p.pos--
	}
}

// atSymbol reports whether the current token is a SYMBOL in ops.
func (p *Parser) atSymbol(ops ...string) (string, bool) {
	tok := p.current()
	if tok.Kind != SYMBOL {
		return "", false
	}
	if slices.Contains(ops, tok.Text) {
		return tok.Text, true
	}
	return "", false
}

func (p *Parser) fail(sentinel error, expected string) error {
	return &ParseError{Err: sentinel, Expected: expected, Got: p.current()}
}

// nested runs parse one nesting level deeper and fails once MaxDepth levels
// are open.
func (p *Parser) nested(parse func() (Expr, error)) (Expr, error) {
	if p.depth >= p.maxDepth {
		return nil, p.fail(ErrMaxNestingDepth, fmt.Sprintf("at most %d nested levels", p.maxDepth))
	}
	p.depth++
	defer func() { p.depth-- }()
	return parse()
}

//  Statements

func (p *Parser) parseProgram() ([]Stmt, error) {
	var stmts []Stmt
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.logger.Debug("parsed statement", slog.Int("index", len(stmts)-1), slog.Any("stmt", stmt))

		if _, empty := stmt.(*Empty); !empty {
			if err := p.parseTerminator(); err != nil {
				return nil, err
			}
		}
		if p.current().Kind == EOF {
			return stmts, nil
		}
	}
}

// parseTerminator accepts the ";" ending a statement. End of input also ends
// the final statement.
func (p *Parser) parseTerminator() error {
	switch p.current().Kind {
	case SEMICOLON:
		p.advance()
		return nil
	case EOF:
		return nil
	}
	return p.fail(ErrUnexpectedToken, `";" or end of input`)
}

func (p *Parser) parseStatement() (Stmt, error) {
	if p.current().Kind == EOF {
		return nil, p.fail(ErrExpectedStatement, "statement")
	}

	tok := p.advance()
	switch {
	case tok.Kind == SEMICOLON:
		return &Empty{}, nil
	case tok.IsKeyword(KwBreak):
		return &Break{}, nil
	case tok.IsKeyword(KwContinue):
		return &Continue{}, nil
	case tok.IsKeyword(KwReturn):
		value, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		return &Return{Value: value}, nil
	case tok.IsKeyword(KwLet):
		vars, err := p.parseVarList()
		if err != nil {
			return nil, err
		}
		return &Let{Vars: vars}, nil
	case tok.Kind == KEYWORD && !tok.IsKeyword(KwTrue) && !tok.IsKeyword(KwFalse):
		// Reserved for grammar that does not exist yet (if, while, func ...).
		p.stepBack()
		return nil, p.fail(ErrExpectedStatement, "statement")
	}

	p.stepBack()
	return p.parseAssignment()
}

// parseVarList parses one or more comma-separated declarators. The leading
// "let" has already been consumed.
func (p *Parser) parseVarList() ([]*Var, error) {
	var vars []*Var
	for {
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)

		if _, ok := p.atSymbol(","); !ok {
			return vars, nil
		}
		p.advance()
	}
}

func (p *Parser) parseVar() (*Var, error) {
	name := p.current()
	if name.Kind != IDENTIFIER {
		return nil, p.fail(ErrExpectedIdentifier, "variable name")
	}
	p.advance()

	v := &Var{Name: name.Text}
	if _, ok := p.atSymbol("="); ok {
		p.advance()
		init, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		v.Init = init
	}
	return v, nil
}

// parseAssignment parses an expression and, when an assignment operator
// follows, the value assigned to it. Only identifiers are storable, so any
// other target is rejected here rather than left to an evaluator.
func (p *Parser) parseAssignment() (Stmt, error) {
	start := p.current()
	target, err := p.parseTest()
	if err != nil {
		return nil, err
	}

	tok := p.current()
	if tok.Kind != SYMBOL || !assignOps[tok.Text] {
		return &ExprStmt{Expr: target}, nil
	}
	if _, ok := target.(*Identifier); !ok {
		return nil, &ParseError{
			Err:      ErrInvalidAssignTarget,
			Expected: fmt.Sprintf("identifier on the left of %q", tok.Text),
			Got:      start,
		}
	}
	p.advance()

	value, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	return &Assign{Target: target, Op: tok.Text, Value: value}, nil
}

//  Expressions

// parseTest handles the right-associative conditional  c ? a : b
func (p *Parser) parseTest() (Expr, error) {
	cond, err := p.parseOrTest()
	if err != nil {
		return nil, err
	}
	if _, ok := p.atSymbol("?"); !ok {
		return cond, nil
	}
	p.advance()

	then, err := p.nested(p.parseTest)
	if err != nil {
		return nil, err
	}
	if _, ok := p.atSymbol(":"); !ok {
		return nil, p.fail(ErrUnexpectedToken, `":" in conditional expression`)
	}
	p.advance()

	els, err := p.nested(p.parseTest)
	if err != nil {
		return nil, err
	}
	return &Ternary{Cond: cond, Then: then, Else: els}, nil
}

// parseOrTest handles ||
func (p *Parser) parseOrTest() (Expr, error) {
	expr, err := p.parseAndTest()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.atSymbol("||"); !ok {
			return expr, nil
		}
		p.advance()
		right, err := p.parseAndTest()
		if err != nil {
			return nil, err
		}
		expr = &LogicOr{Left: expr, Right: right}
	}
}

// parseAndTest handles &&
func (p *Parser) parseAndTest() (Expr, error) {
	expr, err := p.parseNotTest()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.atSymbol("&&"); !ok {
			return expr, nil
		}
		p.advance()
		right, err := p.parseNotTest()
		if err != nil {
			return nil, err
		}
		expr = &LogicAnd{Left: expr, Right: right}
	}
}

// parseNotTest handles a single prefix !
func (p *Parser) parseNotTest() (Expr, error) {
	if _, ok := p.atSymbol("!"); !ok {
		return p.parseComparison()
	}
	p.advance()
	operand, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	return &Not{Operand: operand}, nil
}

// parseComparison handles one of < > <= >= == !=. Comparisons do not chain:
// a < b < c is an error.
func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	tok := p.current()
	op, ok := compareOps[tok.Text]
	if tok.Kind != SYMBOL || !ok {
		return left, nil
	}
	p.advance()

	right, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	if _, chained := p.atSymbol("<", ">", "<=", ">=", "==", "!="); chained {
		return nil, p.fail(ErrUnexpectedToken, "end of comparison (chained comparisons are not supported)")
	}
	return &Comparison{Left: left, Op: op, Right: right}, nil
}

// parseBitOr handles |
func (p *Parser) parseBitOr() (Expr, error) {
	expr, err := p.parseBitXor()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.atSymbol("|"); !ok {
			return expr, nil
		}
		p.advance()
		right, err := p.parseBitXor()
		if err != nil {
			return nil, err
		}
		expr = &BitOr{Left: expr, Right: right}
	}
}

// parseBitXor handles ^
func (p *Parser) parseBitXor() (Expr, error) {
	expr, err := p.parseBitAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.atSymbol("^"); !ok {
			return expr, nil
		}
		p.advance()
		right, err := p.parseBitAnd()
		if err != nil {
			return nil, err
		}
		expr = &BitXor{Left: expr, Right: right}
	}
}

// parseBitAnd handles binary &
func (p *Parser) parseBitAnd() (Expr, error) {
	expr, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.atSymbol("&"); !ok {
			return expr, nil
		}
		p.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		expr = &BitAnd{Left: expr, Right: right}
	}
}

// parseShift handles << and >>
func (p *Parser) parseShift() (Expr, error) {
	expr, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.atSymbol("<<", ">>")
		if !ok {
			return expr, nil
		}
		p.advance()
		right, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		dir := ShiftLeft
		if op == ">>" {
			dir = ShiftRight
		}
		expr = &Shift{Left: expr, Dir: dir, Right: right}
	}
}

// parseArith handles + and -
func (p *Parser) parseArith() (Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.atSymbol("+", "-")
		if !ok {
			return expr, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr = &Arith{Left: expr, Op: rune(op[0]), Right: right}
	}
}

// parseTerm handles *, / and %
func (p *Parser) parseTerm() (Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.atSymbol("*", "/", "%")
		if !ok {
			return expr, nil
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = &Term{Left: expr, Op: rune(op[0]), Right: right}
	}
}

// parseFactor handles prefix - and ~
func (p *Parser) parseFactor() (Expr, error) {
	op, ok := p.atSymbol("-", "~")
	if !ok {
		return p.parsePower()
	}
	p.advance()
	operand, err := p.nested(p.parseFactor)
	if err != nil {
		return nil, err
	}
	return &Factor{Op: rune(op[0]), Operand: operand}, nil
}

// parsePower handles **. The exponent re-enters parseFactor, so 2 ** -1 and
// 2 ** 3 ** 2 (right-associative) both parse.
func (p *Parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if _, ok := p.atSymbol("**"); !ok {
		return base, nil
	}
	p.advance()
	exp, err := p.nested(p.parseFactor)
	if err != nil {
		return nil, err
	}
	return &Power{Base: base, Exponent: exp}, nil
}

// parseAtom handles literals, identifiers, calls and parenthesised groups.
func (p *Parser) parseAtom() (Expr, error) {
	tok := p.current()
	switch {
	case tok.Kind == IDENTIFIER:
		p.advance()
		ident := &Identifier{Name: tok.Text}
		if !p.current().Is("(") {
			return ident, nil
		}
		p.advance()
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		if !p.current().Is(")") {
			return nil, p.fail(ErrUnmatchedParen, `")" closing the argument list`)
		}
		p.advance()
		return &Call{Callee: ident, Args: args}, nil

	case tok.Kind == NUMBER:
		p.advance()
		return &Number{Value: tok.Number}, nil

	case tok.Kind == STRING:
		p.advance()
		return &String{Value: tok.Text}, nil

	case tok.IsKeyword(KwTrue), tok.IsKeyword(KwFalse):
		p.advance()
		return &Boolean{Value: tok.Keyword == KwTrue}, nil

	case tok.Kind == PAREN && tok.Text == "(":
		p.advance()
		expr, err := p.nested(p.parseTest)
		if err != nil {
			return nil, err
		}
		if !p.current().Is(")") {
			return nil, p.fail(ErrUnmatchedParen, `")"`)
		}
		p.advance()
		return expr, nil
	}

	return nil, p.fail(ErrUnexpectedToken, "expression")
}

// parseArgList parses zero or more comma-separated arguments. The opening
// "(" has already been consumed; an immediate ")" yields an empty list.
func (p *Parser) parseArgList() ([]Expr, error) {
	var args []Expr
	if p.current().Is(")") {
		return args, nil
	}
	for {
		arg, err := p.nested(p.parseTest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if _, ok := p.atSymbol(","); !ok {
			return args, nil
		}
		p.advance()
	}
}
