package verify

import (
	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
)

// Shrink reduces a tree whose simplification fails under bindings to a
// smaller tree that still fails. Candidates come from hoisting a subtree to
// the root or replacing an operator node with one of its operands; the first
// smaller failing candidate is kept until none is left. A tree that does not
// fail is returned unchanged.
func Shrink(tree expr.ExprNode, passes int, bindings [][]float64, tol float64) expr.ExprNode {
	if !fails(tree, passes, bindings, tol) {
		return tree
	}

	cur := tree.Clone()
	for improved := true; improved; {
		improved = false
		size := cur.NodeCount()
		for _, cand := range candidates(cur) {
			if cand.NodeCount() < size && fails(cand, passes, bindings, tol) {
				cur = cand
				improved = true
				break
			}
		}
	}
	return cur
}

func fails(tree expr.ExprNode, passes int, bindings [][]float64, tol float64) bool {
	r := Compare(NewCase(tree, passes), bindings, tol)
	return r.Err != nil || r.Mismatched > 0
}

// candidates returns every one-step reduction of root. Each candidate is an
// independent copy.
func candidates(root expr.ExprNode) []expr.ExprNode {
	var out []expr.ExprNode
	n := len(collectSlots(&root))
	for i := 0; i < n; i++ {
		// hoist
		if i > 0 {
			out = append(out, (*collectSlots(&root)[i]).Clone())
		}
		// replace with each operand
		for j := 0; j < 2; j++ {
			if cand, ok := replaceWithOperand(root, i, j); ok {
				out = append(out, cand)
			}
		}
	}
	return out
}

// replaceWithOperand clones root and replaces its i-th node (pre-order) with
// that node's j-th operand.
func replaceWithOperand(root expr.ExprNode, i, j int) (expr.ExprNode, bool) {
	cp := root.Clone()
	slot := collectSlots(&cp)[i]
	switch n := (*slot).(type) {
	case *expr.UnaryNode:
		if j > 0 {
			return nil, false
		}
		*slot = n.Child
	case *expr.BinaryNode:
		if j == 0 {
			*slot = n.Left
		} else {
			*slot = n.Right
		}
	default:
		return nil, false
	}
	return cp, true
}

// collectSlots returns pointers to every child slot in pre-order, starting
// with root itself.
func collectSlots(root *expr.ExprNode) []*expr.ExprNode {
	var result []*expr.ExprNode
	collectSlotsHelper(root, &result)
	return result
}

func collectSlotsHelper(slot *expr.ExprNode, result *[]*expr.ExprNode) {
	*result = append(*result, slot)
	switch n := (*slot).(type) {
	case *expr.UnaryNode:
		collectSlotsHelper(&n.Child, result)
	case *expr.BinaryNode:
		collectSlotsHelper(&n.Left, result)
		collectSlotsHelper(&n.Right, result)
	}
}
