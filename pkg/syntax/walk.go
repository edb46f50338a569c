package syntax

// Children returns the direct children of n in source order. Nil optional
// children (a Var without initializer) are omitted.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Call:
		out := []Node{n.Callee}
		for _, a := range n.Args {
			out = append(out, a)
		}
		return out
	case *Power:
		return []Node{n.Base, n.Exponent}
	case *Factor:
		return []Node{n.Operand}
	case *Term:
		return []Node{n.Left, n.Right}
	case *Arith:
		return []Node{n.Left, n.Right}
	case *Shift:
		return []Node{n.Left, n.Right}
	case *BitAnd:
		return []Node{n.Left, n.Right}
	case *BitXor:
		return []Node{n.Left, n.Right}
	case *BitOr:
		return []Node{n.Left, n.Right}
	case *Comparison:
		return []Node{n.Left, n.Right}
	case *Not:
		return []Node{n.Operand}
	case *LogicAnd:
		return []Node{n.Left, n.Right}
	case *LogicOr:
		return []Node{n.Left, n.Right}
	case *Ternary:
		return []Node{n.Cond, n.Then, n.Else}
	case *Var:
		if n.Init == nil {
			return nil
		}
		return []Node{n.Init}
	case *Let:
		out := make([]Node, len(n.Vars))
		for i, v := range n.Vars {
			out[i] = v
		}
		return out
	case *Assign:
		return []Node{n.Target, n.Value}
	case *Return:
		return []Node{n.Value}
	case *ExprStmt:
		return []Node{n.Expr}
	}
	return nil
}

// Walk visits n and its descendants in pre-order. When fn returns false the
// children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}
