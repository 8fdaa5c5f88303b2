package pool

import (
	"math/rand"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
)

func init() {
	Register("moderate", func() Pool { return &ModeratePool{} })
}

// ModeratePool extends conservative with unary plus, division and
// half-integer constants.
type ModeratePool struct{}

func (p *ModeratePool) Name() string { return "moderate" }

func (p *ModeratePool) RandomLeaf(rng *rand.Rand, params int) expr.ExprNode {
	r := rng.Float64()
	switch {
	case r < 0.4:
		if leaf := randomParam(rng, params); leaf != nil {
			return leaf
		}
		return identityConst(rng)
	case r < 0.65:
		return identityConst(rng)
	case r < 0.9:
		return expr.NewConstant(float64(rng.Intn(9) + 2))
	default:
		// 0.5, 1.5, 2.5
		return expr.NewConstant(float64(rng.Intn(3)) + 0.5)
	}
}

var moderateUnary = []expr.UnaryOp{
	expr.OpNeg,
	expr.OpNeg,
	expr.OpPlus,
}

func (p *ModeratePool) RandomUnary(rng *rand.Rand) expr.UnaryOp {
	return moderateUnary[rng.Intn(len(moderateUnary))]
}

var moderateBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
	expr.OpDiv,
}

func (p *ModeratePool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return moderateBinary[rng.Intn(len(moderateBinary))]
}

func (p *ModeratePool) RandomTree(rng *rand.Rand, maxDepth, params int) expr.ExprNode {
	return randomTree(p, rng, maxDepth, params)
}
