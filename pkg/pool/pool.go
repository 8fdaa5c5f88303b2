package pool

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
)

// Pool provides random building blocks for constructing expression trees.
// Parameter leaves always index below the params argument.
type Pool interface {
	Name() string
	RandomLeaf(rng *rand.Rand, params int) expr.ExprNode
	RandomUnary(rng *rand.Rand) expr.UnaryOp
	RandomBinary(rng *rand.Rand) expr.BinaryOp
	RandomTree(rng *rand.Rand, maxDepth, params int) expr.ExprNode
}

var registry = map[string]func() Pool{}

// Register adds a pool constructor to the registry.
func Register(name string, constructor func() Pool) {
	registry[name] = constructor
}

// Get returns a pool by name.
func Get(name string) (Pool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pool: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered pool names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// randomTree is a shared helper for building random trees.
func randomTree(p Pool, rng *rand.Rand, maxDepth, params int) expr.ExprNode {
	if maxDepth <= 1 {
		return p.RandomLeaf(rng, params)
	}
	// Bias toward leaves at shallow depths to keep trees small
	r := rng.Float64()
	switch {
	case r < 0.3:
		return p.RandomLeaf(rng, params)
	case r < 0.5:
		child := randomTree(p, rng, maxDepth-1, params)
		if p.RandomUnary(rng) == expr.OpNeg {
			return expr.NewUnaryMinus(child)
		}
		return expr.NewUnaryPlus(child)
	default:
		op := p.RandomBinary(rng)
		left := randomTree(p, rng, maxDepth-1, params)
		right := randomTree(p, rng, maxDepth-1, params)
		return expr.NewBinary(op, left, right)
	}
}

// randomParam returns a parameter leaf, or nil when there are no parameters
// to reference.
func randomParam(rng *rand.Rand, params int) expr.ExprNode {
	if params <= 0 {
		return nil
	}
	return expr.NewParameter(rng.Intn(params))
}

// identityConst favors 0 and 1 so that identity rules get exercised.
func identityConst(rng *rand.Rand) expr.ExprNode {
	return expr.NewConstant(float64(rng.Intn(2)))
}
