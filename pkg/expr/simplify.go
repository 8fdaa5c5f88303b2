package expr

import "math"

// DefaultMaxPasses caps Reduce when the caller passes no limit.
const DefaultMaxPasses = 20

// Simplify rewrites the tree held in *slot in place.
//
// Children are simplified first through their own slots, then the node
// inspects its simplified children and may replace itself by assigning a
// different subtree to *slot. Rules fire in a fixed order, first match wins,
// and a freshly built replacement is not simplified again in the same call.
// Recursion depth equals tree depth; there is no guard against very deep
// trees.
func Simplify(slot *ExprNode) {
	switch n := (*slot).(type) {
	case *ConstNode, *ParamNode:
		return

	case *UnaryNode:
		Simplify(&n.Child)
		switch n.Op {
		case OpPlus:
			simplifyPlus(slot, n)
		case OpNeg:
			simplifyNeg(slot, n)
		}

	case *BinaryNode:
		Simplify(&n.Left)
		Simplify(&n.Right)
		switch n.Op {
		case OpAdd:
			simplifyAdd(slot, n)
		case OpSub:
			simplifySub(slot, n)
		case OpMul:
			simplifyMul(slot, n)
		case OpDiv:
			simplifyDiv(slot, n)
		case OpPow:
			simplifyPow(slot, n)
		}
	}
}

// Reduce runs Simplify repeatedly until the printed form stops changing or
// maxPasses is reached, and returns the resulting root.
func Reduce(node ExprNode, maxPasses int) ExprNode {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	prev := node.String()
	for i := 0; i < maxPasses; i++ {
		Simplify(&node)
		next := node.String()
		if next == prev {
			break
		}
		prev = next
	}
	return node
}

func simplifyPlus(slot *ExprNode, n *UnaryNode) {
	switch n.Child.Kind() {
	case KindUnaryPlus, KindConstant, KindParameter:
		*slot = n.Child
	}
}

func simplifyNeg(slot *ExprNode, n *UnaryNode) {
	// -k
	if v, ok := constVal(n.Child); ok {
		*slot = NewConstant(-v)
		return
	}

	// -(-x) = x
	if inner, ok := negated(n.Child); ok {
		*slot = inner
		return
	}

	if sub, ok := n.Child.(*BinaryNode); ok && sub.Op == OpSub {
		// -((-a) - b) = b + a
		if a, ok := negated(sub.Left); ok {
			*slot = NewAdd(sub.Right, a)
			return
		}
		// -(a - b) = b - a
		*slot = NewSub(sub.Right, sub.Left)
	}
}

func simplifyAdd(slot *ExprNode, n *BinaryNode) {
	lv, lok := constVal(n.Left)
	rv, rok := constVal(n.Right)

	if lok && rok {
		*slot = NewConstant(lv + rv)
		return
	}
	// x + 0 = x
	if rok && rv == 0 {
		*slot = n.Left
		return
	}
	// 0 + x = x
	if lok && lv == 0 {
		*slot = n.Right
		return
	}
	// x + (-y) = x - y
	if y, ok := negated(n.Right); ok {
		*slot = NewSub(n.Left, y)
		return
	}
	// (-y) + x = x - y
	if y, ok := negated(n.Left); ok {
		*slot = NewSub(n.Right, y)
	}
}

func simplifySub(slot *ExprNode, n *BinaryNode) {
	lv, lok := constVal(n.Left)
	rv, rok := constVal(n.Right)

	if lok && rok {
		*slot = NewConstant(lv - rv)
		return
	}
	// 0 - x = -x
	if lok && lv == 0 {
		*slot = NewUnaryMinus(n.Right)
		return
	}
	// x - 0 = x
	if rok && rv == 0 {
		*slot = n.Left
		return
	}
	// x - (-y) = x + y
	if y, ok := negated(n.Right); ok {
		*slot = NewAdd(n.Left, y)
	}
}

func simplifyMul(slot *ExprNode, n *BinaryNode) {
	lv, lok := constVal(n.Left)
	rv, rok := constVal(n.Right)

	if lok && rok {
		*slot = NewConstant(lv * rv)
		return
	}
	// 0 * x = x * 0 = 0
	if (lok && lv == 0) || (rok && rv == 0) {
		*slot = NewConstant(0)
		return
	}
	// 1 * x = x
	if lok && lv == 1 {
		*slot = n.Right
		return
	}
	// x * 1 = x
	if rok && rv == 1 {
		*slot = n.Left
		return
	}
	// (-a) * (-b) = a * b
	a, lneg := negated(n.Left)
	b, rneg := negated(n.Right)
	if lneg && rneg {
		*slot = NewMul(a, b)
	}
}

func simplifyDiv(slot *ExprNode, n *BinaryNode) {
	lv, lok := constVal(n.Left)
	rv, rok := constVal(n.Right)

	// 0 / x = 0, whatever x is
	if lok && lv == 0 {
		*slot = NewConstant(0)
		return
	}
	if lok && rok {
		*slot = NewConstant(divOrZero(lv, rv))
		return
	}
	// x / 1 = x
	if rok && rv == 1 {
		*slot = n.Left
		return
	}
	// (-a) / (-b) = a / b
	a, lneg := negated(n.Left)
	b, rneg := negated(n.Right)
	if lneg && rneg {
		*slot = NewDiv(a, b)
		return
	}

	// a / c = a * (1/c)
	var inv ExprNode
	if rok {
		inv = NewConstant(divOrZero(1, rv))
	} else {
		inv = NewDiv(NewConstant(1), n.Right)
	}
	*slot = NewMul(n.Left, inv)
}

func simplifyPow(slot *ExprNode, n *BinaryNode) {
	bv, bok := constVal(n.Left)
	ev, eok := constVal(n.Right)

	if bok && eok {
		*slot = NewConstant(math.Pow(bv, ev))
		return
	}
	if eok {
		switch ev {
		case 0:
			*slot = NewConstant(1)
			return
		case 1:
			*slot = n.Left
			return
		case -1:
			*slot = NewDiv(NewConstant(1), n.Left)
			return
		}
	}
	if bok {
		switch bv {
		case 0:
			*slot = NewConstant(0)
		case 1:
			*slot = NewConstant(1)
		}
	}
}

func constVal(node ExprNode) (float64, bool) {
	if c, ok := node.(*ConstNode); ok {
		return c.Val, true
	}
	return 0, false
}

// negated returns x when node is -(x).
func negated(node ExprNode) (ExprNode, bool) {
	if u, ok := node.(*UnaryNode); ok && u.Op == OpNeg {
		return u.Child, true
	}
	return nil, false
}
