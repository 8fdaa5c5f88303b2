package expr

func (c *ConstNode) NodeCount() int { return 1 }
func (p *ParamNode) NodeCount() int { return 1 }
func (u *UnaryNode) NodeCount() int { return 1 + u.Child.NodeCount() }
func (b *BinaryNode) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}

func (c *ConstNode) Depth() int { return 1 }
func (p *ParamNode) Depth() int { return 1 }
func (u *UnaryNode) Depth() int { return 1 + u.Child.Depth() }
func (b *BinaryNode) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}

// ContainsParam reports whether the expression tree reads any parameter.
func ContainsParam(node ExprNode) bool {
	return MaxParamIndex(node) >= 0
}

// MaxParamIndex returns the highest parameter index in the tree, or -1 when
// the tree is constant. A context needs MaxParamIndex+1 values to evaluate it.
func MaxParamIndex(node ExprNode) int {
	switch n := node.(type) {
	case *ParamNode:
		return n.Index
	case *UnaryNode:
		return MaxParamIndex(n.Child)
	case *BinaryNode:
		l := MaxParamIndex(n.Left)
		r := MaxParamIndex(n.Right)
		if l > r {
			return l
		}
		return r
	default:
		return -1
	}
}

// CountKinds returns how many nodes of each kind the tree holds.
func CountKinds(node ExprNode) map[Kind]int {
	counts := make(map[Kind]int)
	countKinds(node, counts)
	return counts
}

func countKinds(node ExprNode, counts map[Kind]int) {
	counts[node.Kind()]++
	switch n := node.(type) {
	case *UnaryNode:
		countKinds(n.Child, counts)
	case *BinaryNode:
		countKinds(n.Left, counts)
		countKinds(n.Right, counts)
	}
}
