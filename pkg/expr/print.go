package expr

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
}

// FormatConst renders a constant the way both printers do: the shortest
// decimal that round-trips.
func FormatConst(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// PrintVisitor writes a fully parenthesized infix rendering to W, e.g.
// "(-((P0 + P1) ^ (P2 * P3)))".
type PrintVisitor struct {
	W io.Writer
}

func (p *PrintVisitor) VisitConstant(n *ConstNode) {
	io.WriteString(p.W, FormatConst(n.Val))
}

func (p *PrintVisitor) VisitParameter(n *ParamNode) {
	fmt.Fprintf(p.W, "P%d", n.Index)
}

func (p *PrintVisitor) VisitUnaryPlus(n *UnaryNode)  { p.unary("+", n) }
func (p *PrintVisitor) VisitUnaryMinus(n *UnaryNode) { p.unary("-", n) }

func (p *PrintVisitor) VisitAdd(n *BinaryNode)      { p.binary(n) }
func (p *PrintVisitor) VisitSubtract(n *BinaryNode) { p.binary(n) }
func (p *PrintVisitor) VisitMultiply(n *BinaryNode) { p.binary(n) }
func (p *PrintVisitor) VisitDivide(n *BinaryNode)   { p.binary(n) }
func (p *PrintVisitor) VisitPower(n *BinaryNode)    { p.binary(n) }

func (p *PrintVisitor) unary(sym string, n *UnaryNode) {
	io.WriteString(p.W, "("+sym)
	n.Child.Accept(p)
	io.WriteString(p.W, ")")
}

func (p *PrintVisitor) binary(n *BinaryNode) {
	io.WriteString(p.W, "(")
	n.Left.Accept(p)
	fmt.Fprintf(p.W, " %s ", binaryOpSymbols[n.Op])
	n.Right.Accept(p)
	io.WriteString(p.W, ")")
}

// LatexVisitor writes a LaTeX rendering to W.
type LatexVisitor struct {
	W io.Writer
}

func (l *LatexVisitor) VisitConstant(n *ConstNode) {
	io.WriteString(l.W, FormatConst(n.Val))
}

func (l *LatexVisitor) VisitParameter(n *ParamNode) {
	fmt.Fprintf(l.W, "p_{%d}", n.Index)
}

func (l *LatexVisitor) VisitUnaryPlus(n *UnaryNode) {
	l.wrap("+{", n.Child, "}")
}

func (l *LatexVisitor) VisitUnaryMinus(n *UnaryNode) {
	l.wrap("-{", n.Child, "}")
}

func (l *LatexVisitor) VisitAdd(n *BinaryNode) {
	l.infix(n, " + ")
}

func (l *LatexVisitor) VisitSubtract(n *BinaryNode) {
	l.infix(n, " - ")
}

func (l *LatexVisitor) VisitMultiply(n *BinaryNode) {
	l.infix(n, ` \cdot `)
}

func (l *LatexVisitor) VisitDivide(n *BinaryNode) {
	l.wrap(`\frac{`, n.Left, "}")
	l.wrap("{", n.Right, "}")
}

func (l *LatexVisitor) VisitPower(n *BinaryNode) {
	l.infix(n, "^")
}

func (l *LatexVisitor) infix(n *BinaryNode, op string) {
	l.wrap("{", n.Left, "}"+op)
	l.wrap("{", n.Right, "}")
}

func (l *LatexVisitor) wrap(open string, child ExprNode, close string) {
	io.WriteString(l.W, open)
	child.Accept(l)
	io.WriteString(l.W, close)
}

// String methods

func (c *ConstNode) String() string  { return render(c) }
func (p *ParamNode) String() string  { return render(p) }
func (u *UnaryNode) String() string  { return render(u) }
func (b *BinaryNode) String() string { return render(b) }

func render(n ExprNode) string {
	var sb strings.Builder
	n.Accept(&PrintVisitor{W: &sb})
	return sb.String()
}

// LaTeX methods

func (c *ConstNode) LaTeX() string  { return renderLaTeX(c) }
func (p *ParamNode) LaTeX() string  { return renderLaTeX(p) }
func (u *UnaryNode) LaTeX() string  { return renderLaTeX(u) }
func (b *BinaryNode) LaTeX() string { return renderLaTeX(b) }

func renderLaTeX(n ExprNode) string {
	var sb strings.Builder
	n.Accept(&LatexVisitor{W: &sb})
	return sb.String()
}
