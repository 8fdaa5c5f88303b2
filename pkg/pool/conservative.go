package pool

import (
	"math/rand"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
)

func init() {
	Register("conservative", func() Pool { return &ConservativePool{} })
}

// ConservativePool provides parameters, small integer constants, negation,
// and add/sub/mul. Every tree it builds evaluates to a finite value.
type ConservativePool struct{}

func (p *ConservativePool) Name() string { return "conservative" }

func (p *ConservativePool) RandomLeaf(rng *rand.Rand, params int) expr.ExprNode {
	r := rng.Float64()
	if r < 0.45 {
		if leaf := randomParam(rng, params); leaf != nil {
			return leaf
		}
	}
	if r < 0.7 {
		return identityConst(rng)
	}
	return expr.NewConstant(float64(rng.Intn(5) + 2))
}

func (p *ConservativePool) RandomUnary(rng *rand.Rand) expr.UnaryOp {
	return expr.OpNeg
}

var conservativeBinary = []expr.BinaryOp{
	expr.OpAdd,
	expr.OpSub,
	expr.OpMul,
}

func (p *ConservativePool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return conservativeBinary[rng.Intn(len(conservativeBinary))]
}

func (p *ConservativePool) RandomTree(rng *rand.Rand, maxDepth, params int) expr.ExprNode {
	return randomTree(p, rng, maxDepth, params)
}
