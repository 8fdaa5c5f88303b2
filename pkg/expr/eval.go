package expr

import "math"

// Eval for ConstNode returns the constant value.
func (c *ConstNode) Eval(ctx *Context) (float64, error) {
	return c.Val, nil
}

// Eval for ParamNode looks its index up in ctx.
func (p *ParamNode) Eval(ctx *Context) (float64, error) {
	return ctx.Param(p.Index)
}

// Eval for UnaryNode dispatches on kind.
func (u *UnaryNode) Eval(ctx *Context) (float64, error) {
	kind := u.Kind()
	child, err := u.Child.Eval(ctx)
	if err != nil {
		return 0, err
	}
	if kind == KindUnaryMinus {
		return -child, nil
	}
	return child, nil
}

// Eval for BinaryNode dispatches on kind.
//
// Division evaluates the divisor first and yields 0 for exactly zero without
// evaluating the dividend. Power follows math.Pow for every edge case.
func (b *BinaryNode) Eval(ctx *Context) (float64, error) {
	kind := b.Kind()
	if kind == KindDivide {
		right, err := b.Right.Eval(ctx)
		if err != nil || right == 0 {
			return 0, err
		}
		left, err := b.Left.Eval(ctx)
		if err != nil {
			return 0, err
		}
		return left / right, nil
	}

	left, err := b.Left.Eval(ctx)
	if err != nil {
		return 0, err
	}
	right, err := b.Right.Eval(ctx)
	if err != nil {
		return 0, err
	}

	switch kind {
	case KindAdd:
		return left + right, nil
	case KindSubtract:
		return left - right, nil
	case KindMultiply:
		return left * right, nil
	default:
		return math.Pow(left, right), nil
	}
}

func divOrZero(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
