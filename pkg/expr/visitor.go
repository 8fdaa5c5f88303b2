package expr

// Visitor receives one call per node kind. Accept visits only the node it is
// called on; a visitor that needs the children recurses through them itself.
type Visitor interface {
	VisitConstant(n *ConstNode)
	VisitParameter(n *ParamNode)
	VisitUnaryPlus(n *UnaryNode)
	VisitUnaryMinus(n *UnaryNode)
	VisitAdd(n *BinaryNode)
	VisitSubtract(n *BinaryNode)
	VisitMultiply(n *BinaryNode)
	VisitDivide(n *BinaryNode)
	VisitPower(n *BinaryNode)
}

func (c *ConstNode) Accept(v Visitor) { v.VisitConstant(c) }
func (p *ParamNode) Accept(v Visitor) { v.VisitParameter(p) }

func (u *UnaryNode) Accept(v Visitor) {
	if u.Kind() == KindUnaryMinus {
		v.VisitUnaryMinus(u)
		return
	}
	v.VisitUnaryPlus(u)
}

func (b *BinaryNode) Accept(v Visitor) {
	switch b.Kind() {
	case KindAdd:
		v.VisitAdd(b)
	case KindSubtract:
		v.VisitSubtract(b)
	case KindMultiply:
		v.VisitMultiply(b)
	case KindDivide:
		v.VisitDivide(b)
	case KindPower:
		v.VisitPower(b)
	}
}
