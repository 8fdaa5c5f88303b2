package expr

import "fmt"

// ExprNode is the interface for all expression tree nodes.
//
// Every node is owned by exactly one slot: a parent's child field or the
// caller's root variable. Simplify rewrites a tree by assigning a new
// subtree to that slot, never by changing a live node's kind.
type ExprNode interface {
	Kind() Kind
	Eval(ctx *Context) (float64, error)
	Accept(v Visitor)
	String() string
	LaTeX() string
	Clone() ExprNode
	NodeCount() int
	Depth() int
}

// Kind discriminates the nine node variants.
type Kind int

const (
	KindConstant Kind = iota
	KindParameter
	KindUnaryPlus
	KindUnaryMinus
	KindAdd
	KindSubtract
	KindMultiply
	KindDivide
	KindPower
)

var kindNames = [...]string{
	KindConstant:   "const",
	KindParameter:  "param",
	KindUnaryPlus:  "plus",
	KindUnaryMinus: "neg",
	KindAdd:        "add",
	KindSubtract:   "sub",
	KindMultiply:   "mul",
	KindDivide:     "div",
	KindPower:      "pow",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind returns the kind named by s, as produced by Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpPlus UnaryOp = iota
	OpNeg
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow // Left is the base, Right the exponent
)

// ConstNode represents a floating-point constant.
type ConstNode struct {
	Val float64
}

// ParamNode reads the parameter at Index from the evaluation context.
type ParamNode struct {
	Index int
}

// UnaryNode applies a unary operation to a child expression.
type UnaryNode struct {
	Op    UnaryOp
	Child ExprNode
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right ExprNode
}

func (c *ConstNode) Kind() Kind { return KindConstant }
func (p *ParamNode) Kind() Kind { return KindParameter }

// Kind panics on an Op outside the declared constants. Eval and Accept
// dispatch through Kind, so all three agree on such a node.
func (u *UnaryNode) Kind() Kind {
	switch u.Op {
	case OpPlus:
		return KindUnaryPlus
	case OpNeg:
		return KindUnaryMinus
	default:
		panic(fmt.Sprintf("expr: invalid unary op %d", u.Op))
	}
}

// Kind panics on an Op outside the declared constants.
func (b *BinaryNode) Kind() Kind {
	switch b.Op {
	case OpAdd:
		return KindAdd
	case OpSub:
		return KindSubtract
	case OpMul:
		return KindMultiply
	case OpDiv:
		return KindDivide
	case OpPow:
		return KindPower
	default:
		panic(fmt.Sprintf("expr: invalid binary op %d", b.Op))
	}
}

// Constructors take ownership of already-built children. A nil child is a
// programming error and panics.

func NewConstant(v float64) *ConstNode { return &ConstNode{Val: v} }

func NewParameter(index int) *ParamNode {
	if index < 0 {
		panic("expr: negative parameter index")
	}
	return &ParamNode{Index: index}
}

func NewUnaryPlus(child ExprNode) *UnaryNode  { return NewUnary(OpPlus, child) }
func NewUnaryMinus(child ExprNode) *UnaryNode { return NewUnary(OpNeg, child) }

func NewAdd(l, r ExprNode) *BinaryNode      { return NewBinary(OpAdd, l, r) }
func NewSub(l, r ExprNode) *BinaryNode      { return NewBinary(OpSub, l, r) }
func NewMul(l, r ExprNode) *BinaryNode      { return NewBinary(OpMul, l, r) }
func NewDiv(l, r ExprNode) *BinaryNode      { return NewBinary(OpDiv, l, r) }
func NewPow(base, exp ExprNode) *BinaryNode { return NewBinary(OpPow, base, exp) }

// NewUnary builds a unary node for op. It panics on a nil child or an op
// outside OpPlus and OpNeg.
func NewUnary(op UnaryOp, child ExprNode) *UnaryNode {
	if child == nil {
		panic("expr: nil child")
	}
	if op != OpPlus && op != OpNeg {
		panic(fmt.Sprintf("expr: invalid unary op %d", op))
	}
	return &UnaryNode{Op: op, Child: child}
}

// NewBinary builds a binary node for op. It panics on a nil child or an op
// outside OpAdd..OpPow.
func NewBinary(op BinaryOp, l, r ExprNode) *BinaryNode {
	if l == nil || r == nil {
		panic("expr: nil child")
	}
	if op < OpAdd || op > OpPow {
		panic(fmt.Sprintf("expr: invalid binary op %d", op))
	}
	return &BinaryNode{Op: op, Left: l, Right: r}
}
