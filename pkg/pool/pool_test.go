package pool

import (
	"math"
	"math/rand"
	"testing"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
)

const testParams = 3

var testCtx = expr.NewContext(1.5, -2, 3)

// finiteRate builds total random trees and returns the fraction that
// evaluate to a finite value. Any evaluation error fails the test.
func finiteRate(t *testing.T, name string, total int) float64 {
	t.Helper()
	p, err := Get(name)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(42))

	finite := 0
	for i := 0; i < total; i++ {
		tree := p.RandomTree(rng, 4, testParams)
		if idx := expr.MaxParamIndex(tree); idx >= testParams {
			t.Fatalf("%s references P%d with %d params", tree, idx, testParams)
		}
		v, err := tree.Eval(testCtx)
		if err != nil {
			t.Fatalf("%s: %v", tree, err)
		}
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			finite++
		}
	}
	return float64(finite) / float64(total)
}

func TestConservativePool(t *testing.T) {
	rate := finiteRate(t, "conservative", 1000)
	if rate != 1 {
		t.Errorf("conservative pool produced non-finite values (rate %.3f)", rate)
	}
}

func TestModeratePool(t *testing.T) {
	rate := finiteRate(t, "moderate", 1000)
	if rate < 0.9 {
		t.Errorf("Only %.1f%% of trees evaluated to finite values", rate*100)
	}
	t.Logf("Moderate pool: %.1f%% finite", rate*100)
}

func TestKitchenSinkPool(t *testing.T) {
	rate := finiteRate(t, "kitchensink", 1000)
	if rate < 0.3 {
		t.Errorf("Only %.1f%% of trees evaluated to finite values", rate*100)
	}
	t.Logf("Kitchen sink pool: %.1f%% finite", rate*100)
}

func TestPoolsWithoutParams(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, name := range Names() {
		p, _ := Get(name)
		for i := 0; i < 200; i++ {
			tree := p.RandomTree(rng, 4, 0)
			if expr.ContainsParam(tree) {
				t.Fatalf("%s: tree %s references a parameter with params=0", name, tree)
			}
		}
	}
}

func TestDepthLimit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, name := range Names() {
		p, _ := Get(name)
		for i := 0; i < 200; i++ {
			tree := p.RandomTree(rng, 3, testParams)
			if tree.Depth() > 3 {
				t.Fatalf("%s: tree %s has depth %d > 3", name, tree, tree.Depth())
			}
		}
	}
}

func TestPoolRegistry(t *testing.T) {
	names := Names()
	if len(names) < 3 {
		t.Errorf("Expected at least 3 registered pools, got %d", len(names))
	}

	for _, name := range names {
		p, err := Get(name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if p.Name() != name {
			t.Errorf("Pool name mismatch: %q vs %q", p.Name(), name)
		}
	}
}

func TestUnknownPool(t *testing.T) {
	_, err := Get("nonexistent")
	if err == nil {
		t.Error("Expected error for unknown pool")
	}
}
