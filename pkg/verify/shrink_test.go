package verify

import (
	"testing"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
)

func TestShrinkRoundingMismatch(t *testing.T) {
	// 49 * (1/49) is the smallest integer case where the reciprocal rewrite
	// rounds away from the quotient.
	tree := expr.NewUnaryMinus(expr.NewUnaryPlus(expr.NewDiv(expr.NewParameter(0), expr.NewConstant(49))))
	bindings := [][]float64{{49}}

	got := Shrink(tree, 1, bindings, 0)
	if got.String() != "(P0 / 49)" {
		t.Errorf("Shrink = %s, want (P0 / 49)", got)
	}
	if tree.String() != "(-(+(P0 / 49)))" {
		t.Errorf("Shrink modified its input: %s", tree)
	}
}

func TestShrinkEvalError(t *testing.T) {
	tree := expr.NewAdd(expr.NewParameter(0), expr.NewMul(expr.NewParameter(5), expr.NewConstant(2)))
	got := Shrink(tree, 1, [][]float64{{1, 2}}, DefaultTolerance)
	if got.String() != "P5" {
		t.Errorf("Shrink = %s, want P5", got)
	}
}

func TestShrinkPassingTree(t *testing.T) {
	tree := expr.NewAdd(expr.NewParameter(0), expr.NewConstant(0))
	if got := Shrink(tree, 1, [][]float64{{3}}, DefaultTolerance); got != tree {
		t.Errorf("Shrink of a passing tree returned %s", got)
	}
}

func TestCandidates(t *testing.T) {
	// (-P0) + P1: hoists of -P0, P0, P1; root -> either operand; -P0 -> P0.
	root := expr.NewAdd(expr.NewUnaryMinus(expr.NewParameter(0)), expr.NewParameter(1))
	got := candidates(root)

	want := map[string]bool{
		"(-P0)":     true,
		"P0":        true,
		"P1":        true,
		"(P0 + P1)": true,
	}
	if len(got) != 6 {
		t.Errorf("got %d candidates, want 6", len(got))
	}
	for _, c := range got {
		if !want[c.String()] {
			t.Errorf("unexpected candidate %s", c)
		}
	}
	if root.String() != "((-P0) + P1)" {
		t.Errorf("candidates modified root: %s", root)
	}
}
