package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is implemented by every AST node. Nodes form a strict tree: each child
// is owned by exactly one parent and nothing is mutated after parsing.
type Node interface {
	String() string
}

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Number is a numeric literal. Hex literals are widened to float64.
//
//	let x = 0x1F;
//	        ^^^^  Number{Value: 31}
type Number struct {
	Value float64
}

func (*Number) exprNode()        {}
func (n *Number) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// Boolean is the literal true or false.
type Boolean struct {
	Value bool
}

func (*Boolean) exprNode()        {}
func (b *Boolean) String() string { return strconv.FormatBool(b.Value) }

// Identifier is a read of a named variable.
type Identifier struct {
	Name string
}

func (*Identifier) exprNode()        {}
func (i *Identifier) String() string { return i.Name }

// String is a string literal with escapes already resolved.
type String struct {
	Value string
}

func (*String) exprNode()        {}
func (s *String) String() string { return strconv.Quote(s.Value) }

// Call is name(args). Only identifiers are callable.
type Call struct {
	Callee *Identifier
	Args   []Expr
}

func (*Call) exprNode() {}
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}

// Power is Base ** Exponent. It is right-associative.
type Power struct {
	Base     Expr
	Exponent Expr
}

func (*Power) exprNode()        {}
func (p *Power) String() string { return fmt.Sprintf("(%s ** %s)", p.Base, p.Exponent) }

// Factor is a prefix sign or bitwise complement: -x or ~x.
type Factor struct {
	Op      rune // '-' or '~'
	Operand Expr
}

func (*Factor) exprNode()        {}
func (f *Factor) String() string { return fmt.Sprintf("(%c %s)", f.Op, f.Operand) }

// Term is a multiplicative expression.
type Term struct {
	Left  Expr
	Op    rune // '*', '/' or '%'
	Right Expr
}

func (*Term) exprNode()        {}
func (t *Term) String() string { return fmt.Sprintf("(%s %c %s)", t.Left, t.Op, t.Right) }

// Arith is an additive expression.
//
//	1 + 2 * 3
//	^ ^ ^^^^^
//	| | |
//	| | Right (Term)
//	| Op
//	Left
type Arith struct {
	Left  Expr
	Op    rune // '+' or '-'
	Right Expr
}

func (*Arith) exprNode()        {}
func (a *Arith) String() string { return fmt.Sprintf("(%s %c %s)", a.Left, a.Op, a.Right) }

// ShiftDir is the direction of a Shift.
type ShiftDir int

const (
	ShiftLeft ShiftDir = iota
	ShiftRight
)

func (d ShiftDir) String() string {
	if d == ShiftRight {
		return ">>"
	}
	return "<<"
}

// Shift is Left << Right or Left >> Right.
type Shift struct {
	Left  Expr
	Dir   ShiftDir
	Right Expr
}

func (*Shift) exprNode()        {}
func (s *Shift) String() string { return fmt.Sprintf("(%s %s %s)", s.Left, s.Dir, s.Right) }

// BitAnd is Left & Right.
type BitAnd struct {
	Left  Expr
	Right Expr
}

func (*BitAnd) exprNode()        {}
func (b *BitAnd) String() string { return fmt.Sprintf("(%s & %s)", b.Left, b.Right) }

// BitXor is Left ^ Right.
type BitXor struct {
	Left  Expr
	Right Expr
}

func (*BitXor) exprNode()        {}
func (b *BitXor) String() string { return fmt.Sprintf("(%s ^ %s)", b.Left, b.Right) }

// BitOr is Left | Right.
type BitOr struct {
	Left  Expr
	Right Expr
}

func (*BitOr) exprNode()        {}
func (b *BitOr) String() string { return fmt.Sprintf("(%s | %s)", b.Left, b.Right) }

// CompareOp is the operator of a Comparison.
type CompareOp int

const (
	OpLess CompareOp = iota
	OpGreater
	OpLessEq
	OpGreaterEq
	OpNotEq
	OpEq
)

var compareOps = map[string]CompareOp{
	"<":  OpLess,
	">":  OpGreater,
	"<=": OpLessEq,
	">=": OpGreaterEq,
	"!=": OpNotEq,
	"==": OpEq,
}

var compareOpNames = [...]string{
	OpLess:      "<",
	OpGreater:   ">",
	OpLessEq:    "<=",
	OpGreaterEq: ">=",
	OpNotEq:     "!=",
	OpEq:        "==",
}

func (op CompareOp) String() string {
	if int(op) >= 0 && int(op) < len(compareOpNames) {
		return compareOpNames[op]
	}
	return fmt.Sprintf("CompareOp(%d)", int(op))
}

// Comparison is a single, non-chaining relational or equality test.
type Comparison struct {
	Left  Expr
	Op    CompareOp
	Right Expr
}

func (*Comparison) exprNode() {}
func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}

// Not is the logical negation !Operand.
type Not struct {
	Operand Expr
}

func (*Not) exprNode()        {}
func (n *Not) String() string { return fmt.Sprintf("(! %s)", n.Operand) }

// LogicAnd is Left && Right. It is separate from BitAnd so that an evaluator
// can short-circuit.
type LogicAnd struct {
	Left  Expr
	Right Expr
}

func (*LogicAnd) exprNode()        {}
func (l *LogicAnd) String() string { return fmt.Sprintf("(%s && %s)", l.Left, l.Right) }

// LogicOr is Left || Right.
type LogicOr struct {
	Left  Expr
	Right Expr
}

func (*LogicOr) exprNode()        {}
func (l *LogicOr) String() string { return fmt.Sprintf("(%s || %s)", l.Left, l.Right) }

// Ternary is Cond ? Then : Else.
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*Ternary) exprNode() {}
func (t *Ternary) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", t.Cond, t.Then, t.Else)
}

//  Statement nodes

// Stmt is implemented by every top-level statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Var is one declarator of a let statement. Init is nil when absent.
type Var struct {
	Name string
	Init Expr
}

func (v *Var) String() string {
	if v.Init == nil {
		return fmt.Sprintf("Var(%s)", v.Name)
	}
	return fmt.Sprintf("Var(%s = %s)", v.Name, v.Init)
}

// Let represents  let a = 1, b;
type Let struct {
	Vars []*Var
}

func (*Let) stmtNode() {}
func (l *Let) String() string {
	vars := make([]string, len(l.Vars))
	for i, v := range l.Vars {
		vars[i] = v.String()
	}
	return fmt.Sprintf("Let(%s)", strings.Join(vars, ", "))
}

// Assign represents  Target Op Value  where Op is "=" or a compound operator
// such as "+=". Target is always an *Identifier.
type Assign struct {
	Target Expr
	Op     string
	Value  Expr
}

func (*Assign) stmtNode() {}
func (a *Assign) String() string {
	return fmt.Sprintf("Assign(%s %s %s)", a.Target, a.Op, a.Value)
}

// Return represents  return expr
type Return struct {
	Value Expr
}

func (*Return) stmtNode()        {}
func (r *Return) String() string { return fmt.Sprintf("Return(%s)", r.Value) }

// Break represents  break
type Break struct{}

func (*Break) stmtNode()       {}
func (*Break) String() string { return "Break" }

// Continue represents  continue
type Continue struct{}

func (*Continue) stmtNode()       {}
func (*Continue) String() string { return "Continue" }

// Empty is a bare semicolon.
type Empty struct{}

func (*Empty) stmtNode()       {}
func (*Empty) String() string { return "Empty" }

// ExprStmt is an expression evaluated for its side effects (e.g. a call).
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmtNode()        {}
func (e *ExprStmt) String() string { return fmt.Sprintf("ExprStmt(%s)", e.Expr) }
