package engine

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
	"github.com/wildfunctions/arithmetic_ast/pkg/exprjson"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Trees = 200
	cfg.MaxDepth = 5
	cfg.Params = 3
	cfg.Bindings = 8
	cfg.Seed = 42
	cfg.Workers = 4
	cfg.Log = io.Discard
	return cfg
}

func TestEngine_SmallRun(t *testing.T) {
	cfg := testConfig()
	cfg.Pool = "conservative"

	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	report := e.Run()

	if report.Trees != cfg.Trees {
		t.Errorf("Trees = %d, want %d", report.Trees, cfg.Trees)
	}
	if report.Samples != cfg.Trees*cfg.Bindings {
		t.Errorf("Samples = %d, want %d", report.Samples, cfg.Trees*cfg.Bindings)
	}
	if report.Mismatched != 0 || !report.OK() {
		t.Errorf("conservative pool: %d mismatched samples, %d failures", report.Mismatched, report.Failures)
	}
	if report.Changed == 0 {
		t.Error("Expected at least one tree to change")
	}
	if report.NodesAfter > report.NodesBefore {
		t.Errorf("conservative pool grew trees: %d -> %d nodes", report.NodesBefore, report.NodesAfter)
	}
	if len(report.TopReductions) == 0 || len(report.TopReductions) > maxTopReductions {
		t.Errorf("TopReductions has %d entries", len(report.TopReductions))
	}
	for i := 1; i < len(report.TopReductions); i++ {
		if report.TopReductions[i].NodesSaved > report.TopReductions[i-1].NodesSaved {
			t.Errorf("TopReductions not sorted at %d", i)
		}
	}
	if report.Cases != nil {
		t.Error("Cases should only be kept in verbose mode")
	}

	t.Logf("%d trees, %d changed, %d -> %d nodes", report.Trees, report.Changed, report.NodesBefore, report.NodesAfter)
}

func TestEngine_ModeratePool(t *testing.T) {
	cfg := testConfig()
	cfg.Pool = "moderate"
	cfg.Passes = 0

	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	report := e.Run()

	checked := report.Matched + report.Mismatched
	if checked == 0 {
		t.Fatal("no samples were checked")
	}
	if rate := float64(report.Mismatched) / float64(checked); rate > 0.01 {
		t.Errorf("mismatch rate %.4f exceeds 1%%", rate)
	}
	if len(report.Mismatches) != report.Failures {
		t.Errorf("Mismatches has %d entries, Failures = %d", len(report.Mismatches), report.Failures)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	run := func(workers int) FinalReport {
		cfg := testConfig()
		cfg.Workers = workers
		cfg.Verbose = true
		e, err := New(cfg)
		if err != nil {
			t.Fatal(err)
		}
		return e.Run()
	}

	a, b := run(1), run(8)
	if len(a.Cases) != len(b.Cases) {
		t.Fatalf("case counts differ: %d vs %d", len(a.Cases), len(b.Cases))
	}
	for i := range a.Cases {
		if a.Cases[i].Original != b.Cases[i].Original || a.Cases[i].Simplified != b.Cases[i].Simplified {
			t.Fatalf("case %d differs between worker counts:\n  %s\n  %s", i, a.Cases[i].Original, b.Cases[i].Original)
		}
		if a.Cases[i].Index != i {
			t.Errorf("case %d has index %d", i, a.Cases[i].Index)
		}
	}
	if a.Matched != b.Matched || a.Mismatched != b.Mismatched {
		t.Errorf("totals differ: %d/%d vs %d/%d", a.Matched, a.Mismatched, b.Matched, b.Mismatched)
	}
}

func TestEngine_RandomSeedRecorded(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 0
	cfg.Trees = 5

	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if report := e.Run(); report.Config.Seed == 0 {
		t.Error("Expected the chosen seed to be recorded in the report")
	}
}

func TestEngine_KindCounts(t *testing.T) {
	cfg := testConfig()
	cfg.Trees = 50
	cfg.Verbose = true

	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	report := e.Run()

	total := func(m map[string]int) int {
		n := 0
		for _, v := range m {
			n += v
		}
		return n
	}
	if got := total(report.KindsBefore); got != report.NodesBefore {
		t.Errorf("KindsBefore sums to %d, NodesBefore = %d", got, report.NodesBefore)
	}
	if got := total(report.KindsAfter); got != report.NodesAfter {
		t.Errorf("KindsAfter sums to %d, NodesAfter = %d", got, report.NodesAfter)
	}
}

func TestEngine_InvalidPool(t *testing.T) {
	cfg := testConfig()
	cfg.Pool = "nonexistent"

	_, err := New(cfg)
	if err == nil {
		t.Error("Expected error for invalid pool")
	}
}

func TestEngine_NegativeCounts(t *testing.T) {
	tests := map[string]func(*Config){
		"trees":    func(c *Config) { c.Trees = -1 },
		"params":   func(c *Config) { c.Params = -1 },
		"bindings": func(c *Config) { c.Bindings = -1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Errorf("Expected error for negative %s", name)
			}
		})
	}
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trees.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEngine_InputFile(t *testing.T) {
	trees := []expr.ExprNode{
		expr.NewUnaryMinus(expr.NewUnaryMinus(expr.NewParameter(0))),
		expr.NewAdd(expr.NewConstant(2), expr.NewConstant(3)),
		expr.NewMul(expr.NewParameter(4), expr.NewConstant(1)),
	}
	var parts []string
	for _, tree := range trees {
		data, err := exprjson.Marshal(tree)
		if err != nil {
			t.Fatal(err)
		}
		parts = append(parts, string(data))
	}

	cfg := testConfig()
	cfg.Params = 1
	cfg.Pool = "nonexistent" // ignored when reading input
	cfg.Input = writeInput(t, "["+strings.Join(parts, ",")+"]")
	cfg.Verbose = true

	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	report := e.Run()

	if report.Config.Params != 5 {
		t.Errorf("Params = %d, want 5 to cover P4", report.Config.Params)
	}
	if report.Trees != len(trees) || report.Failures != 0 {
		t.Fatalf("Trees = %d, Failures = %d", report.Trees, report.Failures)
	}
	want := []string{"P0", "5", "P4"}
	for i, c := range report.Cases {
		if c.Simplified != want[i] {
			t.Errorf("case %d: %s => %s, want %s", i, c.Original, c.Simplified, want[i])
		}
		if !c.Changed {
			t.Errorf("case %d should be marked changed", i)
		}
	}
}

func TestEngine_BadInput(t *testing.T) {
	tests := map[string]string{
		"malformed": `[{"kind": "sqrt"}]`,
		"empty":     `[]`,
		"not json":  `P0 + P1`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Input = writeInput(t, content)
			if _, err := New(cfg); err == nil {
				t.Error("Expected error")
			}
		})
	}

	cfg := testConfig()
	cfg.Input = filepath.Join(t.TempDir(), "missing.json")
	if _, err := New(cfg); err == nil {
		t.Error("Expected error for missing input file")
	}
}

func TestEngine_Logging(t *testing.T) {
	var log bytes.Buffer
	cfg := testConfig()
	cfg.Trees = 10
	cfg.Verbose = true
	cfg.Log = &log

	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.Run()

	out := log.String()
	if !strings.HasPrefix(out, "Starting pool moderate, 10 trees") {
		t.Errorf("unexpected start line: %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "[tree 0]") {
		t.Error("verbose log should list each tree")
	}
	if !strings.Contains(out, "Done: 10 trees") {
		t.Error("missing summary line")
	}
}

func TestEngine_Writers(t *testing.T) {
	cfg := testConfig()
	cfg.Trees = 30

	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	report := e.Run()

	var text bytes.Buffer
	WriteTextFinal(&text, report)
	for _, want := range []string{"FINAL RESULT", "Pool:       moderate", "Seed:       42", "Trees:      30"} {
		if !strings.Contains(text.String(), want) {
			t.Errorf("text report missing %q", want)
		}
	}

	var js bytes.Buffer
	if err := WriteJSONFinal(&js, report); err != nil {
		t.Fatal(err)
	}
	var decoded FinalReport
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("report JSON does not decode: %v", err)
	}
	if decoded.Trees != report.Trees || decoded.NodesAfter != report.NodesAfter {
		t.Errorf("decoded report = %d trees, %d nodes", decoded.Trees, decoded.NodesAfter)
	}

	var tex bytes.Buffer
	WriteLatexReport(&tex, report)
	s := tex.String()
	if !strings.HasPrefix(s, `\documentclass{article}`) || !strings.HasSuffix(s, "\\end{document}\n") {
		t.Error("LaTeX report is not a complete document")
	}
	if len(report.TopReductions) > 0 && !strings.Contains(s, `\Rightarrow`) {
		t.Error("LaTeX report should render reductions")
	}
}

func TestLatexEscape(t *testing.T) {
	if got := latexEscape(`trees_1.json`); got != `trees\_1.json` {
		t.Errorf("latexEscape = %q", got)
	}
	if got := latexEscape(`50% & #1`); got != `50\% \& \#1` {
		t.Errorf("latexEscape = %q", got)
	}
}

func TestKindSummary(t *testing.T) {
	got := kindSummary(map[string]int{"add": 3, "param": 4}, map[string]int{"param": 4, "sub": 1})
	if got != "param 4->4, add 3->0, sub 0->1" {
		t.Errorf("kindSummary = %q", got)
	}
}
