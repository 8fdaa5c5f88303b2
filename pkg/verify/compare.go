package verify

import (
	"math"
	"math/rand"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
)

// DefaultTolerance is the relative tolerance used by Close when callers have
// no better figure. Rewriting a/c as a*(1/c) changes rounding.
const DefaultTolerance = 1e-9

// Result holds the outcome of comparing a case under a set of bindings.
type Result struct {
	NodesBefore int     `json:"nodes_before"`
	NodesAfter  int     `json:"nodes_after"`
	DepthBefore int     `json:"depth_before"`
	DepthAfter  int     `json:"depth_after"`
	Samples     int     `json:"samples"`
	Matched     int     `json:"matched"`
	Mismatched  int     `json:"mismatched"`
	Skipped     int     `json:"skipped"` // original evaluated to Inf or NaN
	MaxError    float64 `json:"max_error"`
	Err         error   `json:"-"`
	OK          bool    `json:"ok"`
}

// Compare evaluates the original and simplified trees under every binding.
// Bindings where the original is not finite are skipped: the rewrite rules
// fold x*0 and 0^x without regard to Inf or NaN operands.
func Compare(c *Case, bindings [][]float64, tol float64) Result {
	r := Result{
		NodesBefore: c.Original.NodeCount(),
		NodesAfter:  c.Simplified.NodeCount(),
		DepthBefore: c.Original.Depth(),
		DepthAfter:  c.Simplified.Depth(),
	}

	for _, b := range bindings {
		ctx := expr.NewContext(b...)
		want, err := c.Original.Eval(ctx)
		if err != nil {
			r.Err = err
			return r
		}
		got, err := c.Simplified.Eval(ctx)
		if err != nil {
			r.Err = err
			return r
		}

		r.Samples++
		if math.IsInf(want, 0) || math.IsNaN(want) {
			r.Skipped++
			continue
		}
		if e := relError(want, got); e > r.MaxError && !math.IsInf(e, 0) {
			r.MaxError = e
		}
		if Close(want, got, tol) {
			r.Matched++
		} else {
			r.Mismatched++
		}
	}

	r.OK = r.Mismatched == 0
	return r
}

// Close reports whether a and b agree within tol relative to the larger
// magnitude, floored at 1 so values near zero compare absolutely. Two NaNs
// or two equal infinities are close.
func Close(a, b, tol float64) bool {
	if a == b || (math.IsNaN(a) && math.IsNaN(b)) {
		return true
	}
	return relError(a, b) <= tol
}

func relError(a, b float64) float64 {
	if a == b {
		return 0
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	d := math.Abs(a - b)
	if math.IsInf(d, 0) && !math.IsInf(scale, 0) {
		// a and b are finite with opposite signs near the float64 limit.
		return math.Abs(a/scale - b/scale)
	}
	return d / scale
}

// RandomBindings returns count parameter vectors of length params. Values
// are multiples of 0.25 in [-5, 5], so exact zeros and exactly representable
// fractions both occur.
func RandomBindings(rng *rand.Rand, count, params int) [][]float64 {
	out := make([][]float64, count)
	for i := range out {
		vals := make([]float64, params)
		for j := range vals {
			vals[j] = float64(rng.Intn(41)-20) / 4
		}
		out[i] = vals
	}
	return out
}
