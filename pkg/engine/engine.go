package engine

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
	"github.com/wildfunctions/arithmetic_ast/pkg/exprjson"
	"github.com/wildfunctions/arithmetic_ast/pkg/pool"
	"github.com/wildfunctions/arithmetic_ast/pkg/verify"
)

// maxTopReductions bounds the LaTeX report.
const maxTopReductions = 10

// Engine simplifies a batch of trees and checks every rewrite numerically.
type Engine struct {
	cfg   Config
	pool  pool.Pool
	input []expr.ExprNode
	rng   *rand.Rand
	log   io.Writer
}

// New creates a new engine from the given config. When cfg.Input is set the
// trees are read from that file and cfg.Pool is ignored.
func New(cfg Config) (*Engine, error) {
	switch {
	case cfg.Trees < 0:
		return nil, fmt.Errorf("invalid tree count: %d", cfg.Trees)
	case cfg.Params < 0:
		return nil, fmt.Errorf("invalid parameter count: %d", cfg.Params)
	case cfg.Bindings < 0:
		return nil, fmt.Errorf("invalid binding count: %d", cfg.Bindings)
	}

	e := &Engine{cfg: cfg, log: cfg.Log}
	if e.log == nil {
		e.log = os.Stderr
	}

	if cfg.Input != "" {
		trees, err := loadTrees(cfg.Input)
		if err != nil {
			return nil, err
		}
		e.input = trees
		for _, t := range trees {
			if need := expr.MaxParamIndex(t) + 1; need > e.cfg.Params {
				e.cfg.Params = need
			}
		}
	} else {
		p, err := pool.Get(cfg.Pool)
		if err != nil {
			return nil, err
		}
		e.pool = p
	}

	if e.cfg.Seed == 0 {
		e.cfg.Seed = rand.Int63()
	}
	e.rng = rand.New(rand.NewSource(e.cfg.Seed))
	return e, nil
}

func loadTrees(path string) ([]expr.ExprNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trees, err := exprjson.UnmarshalList(data)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("reading %s: no trees", path)
	}
	return trees, nil
}

type job struct {
	idx      int
	tree     expr.ExprNode
	bindings [][]float64
}

// Run simplifies every tree and returns the final report.
func (e *Engine) Run() FinalReport {
	start := time.Now()

	source := "pool " + e.cfg.Pool
	if e.input != nil {
		source = "input " + e.cfg.Input
	}
	fmt.Fprintf(e.log, "Starting %s, %d trees, depth %d, params %d, bindings %d, passes %d, workers %d, seed %d\n",
		source, e.treeCount(), e.cfg.MaxDepth, e.cfg.Params, e.cfg.Bindings, e.cfg.Passes, e.cfg.Workers, e.cfg.Seed)

	// Trees and bindings are drawn up front on one goroutine so a seed
	// reproduces the same run regardless of worker count.
	jobs := make([]job, e.treeCount())
	for i := range jobs {
		jobs[i] = job{
			idx:      i,
			tree:     e.tree(i),
			bindings: verify.RandomBindings(e.rng, e.cfg.Bindings, e.cfg.Params),
		}
	}

	cases := e.evaluateAll(jobs)

	report := FinalReport{
		Config:      e.cfg,
		KindsBefore: map[string]int{},
		KindsAfter:  map[string]int{},
	}
	for i := range cases {
		cr := &cases[i]
		if cr.Error == "" && cr.Result.Mismatched > 0 {
			cr.Shrunk = verify.Shrink(jobs[i].tree, e.cfg.Passes, jobs[i].bindings, e.cfg.Tolerance).String()
		}
		report.add(*cr)
		addKinds(report.KindsBefore, jobs[i].tree)
		addKinds(report.KindsAfter, cr.simplified)

		if cr.Error != "" {
			fmt.Fprintf(e.log, "[tree %d] ERROR %s: %s\n", cr.Index, cr.Original, cr.Error)
		} else if cr.Result.Mismatched > 0 {
			fmt.Fprintf(e.log, "[tree %d] MISMATCH %d/%d samples, max error %.3g\n  %s\n  %s\n  shrunk: %s\n",
				cr.Index, cr.Result.Mismatched, cr.Result.Samples, cr.Result.MaxError, cr.Original, cr.Simplified, cr.Shrunk)
		} else if e.cfg.Verbose {
			WriteTextCase(e.log, *cr)
		}
	}

	report.TopReductions = topReductions(cases, maxTopReductions)
	if e.cfg.Verbose {
		report.Cases = cases
	}
	report.Elapsed = time.Since(start).Round(time.Millisecond).String()

	fmt.Fprintf(e.log, "Done: %d trees, %d changed, %d -> %d nodes, %d mismatched samples in %s\n",
		report.Trees, report.Changed, report.NodesBefore, report.NodesAfter, report.Mismatched, report.Elapsed)
	return report
}

func (e *Engine) treeCount() int {
	if e.input != nil {
		return len(e.input)
	}
	return e.cfg.Trees
}

func (e *Engine) tree(i int) expr.ExprNode {
	if e.input != nil {
		return e.input[i]
	}
	return e.pool.RandomTree(e.rng, e.cfg.MaxDepth, e.cfg.Params)
}

// evaluateAll simplifies and verifies all jobs in parallel. Each tree is
// owned by exactly one worker.
func (e *Engine) evaluateAll(all []job) []CaseReport {
	n := len(all)
	out := make([]CaseReport, n)

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan job, n)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				c := verify.NewCase(j.tree, e.cfg.Passes)
				out[j.idx] = newCaseReport(j.idx, c, verify.Compare(c, j.bindings, e.cfg.Tolerance))
			}
		}()
	}

	for _, j := range all {
		jobs <- j
	}
	close(jobs)
	wg.Wait()

	return out
}

func addKinds(into map[string]int, tree expr.ExprNode) {
	for k, n := range expr.CountKinds(tree) {
		into[k.String()] += n
	}
}
