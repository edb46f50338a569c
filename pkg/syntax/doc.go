// Package syntax provides the lexer, AST and recursive-descent parser for a
// small C-like expression and statement language.
//
// Pipeline: source → Lex → []Token → Parse → []Stmt
//
// The resulting statements are handed to an evaluator unchanged; this package
// does not evaluate, bind or type-check anything.
package syntax
