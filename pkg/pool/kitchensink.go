package pool

import (
	"math/rand"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
)

func init() {
	Register("kitchensink", func() Pool { return &KitchenSinkPool{} })
}

// KitchenSinkPool extends moderate with power and exponent-shaped
// constants (-1, 0, 1, 2). Its trees can evaluate to Inf or NaN.
type KitchenSinkPool struct{}

func (p *KitchenSinkPool) Name() string { return "kitchensink" }

func (p *KitchenSinkPool) RandomLeaf(rng *rand.Rand, params int) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.35:
		if leaf := randomParam(rng, params); leaf != nil {
			return leaf
		}
		return identityConst(rng)
	case r < 0.6:
		return identityConst(rng)
	case r < 0.75:
		vals := []float64{-1, 0, 1, 2}
		return expr.NewConstant(vals[rng.Intn(len(vals))])
	case r < 0.9:
		return expr.NewConstant(float64(rng.Intn(10) + 1))
	default:
		return expr.NewConstant(float64(rng.Intn(3)) + 0.5)
	}
}

var kitchenSinkUnary = []expr.UnaryOp{
	expr.OpNeg,
	expr.OpPlus,
}

func (p *KitchenSinkPool) RandomUnary(rng *rand.Rand) expr.UnaryOp {
	return kitchenSinkUnary[rng.Intn(len(kitchenSinkUnary))]
}

var kitchenSinkBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
	expr.OpPow,
}

func (p *KitchenSinkPool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return kitchenSinkBinary[rng.Intn(len(kitchenSinkBinary))]
}

func (p *KitchenSinkPool) RandomTree(rng *rand.Rand, maxDepth, params int) expr.ExprNode {
	return randomTree(p, rng, maxDepth, params)
}
