package verify

import (
	"fmt"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
)

// Case pairs an expression tree with its simplified form.
type Case struct {
	Original   expr.ExprNode
	Simplified expr.ExprNode
}

// NewCase simplifies a deep copy of tree, running at most passes rewrite
// passes (passes <= 0 uses expr.DefaultMaxPasses). The tree itself is left
// untouched.
func NewCase(tree expr.ExprNode, passes int) *Case {
	return &Case{
		Original:   tree,
		Simplified: expr.Reduce(tree.Clone(), passes),
	}
}

// String returns a human-readable representation.
func (c *Case) String() string {
	return fmt.Sprintf("%s => %s", c.Original.String(), c.Simplified.String())
}

// LaTeX returns a LaTeX representation.
func (c *Case) LaTeX() string {
	return fmt.Sprintf(`%s \;\Rightarrow\; %s`, c.Original.LaTeX(), c.Simplified.LaTeX())
}

// NodesSaved returns how many nodes simplification removed. It is negative
// when the division rewrite grew the tree.
func (c *Case) NodesSaved() int {
	return c.Original.NodeCount() - c.Simplified.NodeCount()
}
