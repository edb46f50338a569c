package main

import (
	"fmt"
	"strings"

	"tinyexpr/pkg/syntax"
)

// treeNode is the serialisable shape of a syntax.Node used by --format yaml.
type treeNode struct {
	Kind     string      `yaml:"kind"`
	Value    any         `yaml:"value,omitempty"`
	Op       string      `yaml:"op,omitempty"`
	Children []*treeNode `yaml:"children,omitempty"`
}

func buildTree(stmts []syntax.Stmt) []*treeNode {
	out := make([]*treeNode, len(stmts))
	for i, s := range stmts {
		out[i] = toTree(s)
	}
	return out
}

func toTree(n syntax.Node) *treeNode {
	t := &treeNode{Kind: strings.TrimPrefix(fmt.Sprintf("%T", n), "*syntax.")}

	switch n := n.(type) {
	case *syntax.Number:
		t.Value = n.Value
	case *syntax.Boolean:
		t.Value = n.Value
	case *syntax.Identifier:
		t.Value = n.Name
	case *syntax.String:
		t.Value = n.Value
	case *syntax.Var:
		t.Value = n.Name
	case *syntax.Factor:
		t.Op = string(n.Op)
	case *syntax.Term:
		t.Op = string(n.Op)
	case *syntax.Arith:
		t.Op = string(n.Op)
	case *syntax.Shift:
		t.Op = n.Dir.String()
	case *syntax.Comparison:
		t.Op = n.Op.String()
	case *syntax.Assign:
		t.Op = n.Op
	case *syntax.Power:
		t.Op = "**"
	case *syntax.BitAnd:
		t.Op = "&"
	case *syntax.BitXor:
		t.Op = "^"
	case *syntax.BitOr:
		t.Op = "|"
	case *syntax.Not:
		t.Op = "!"
	case *syntax.LogicAnd:
		t.Op = "&&"
	case *syntax.LogicOr:
		t.Op = "||"
	}

	for _, c := range syntax.Children(n) {
		t.Children = append(t.Children, toTree(c))
	}
	return t
}
