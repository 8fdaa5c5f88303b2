package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wildfunctions/arithmetic_ast/pkg/engine"
	"github.com/wildfunctions/arithmetic_ast/pkg/pool"
)

func main() {
	cfg := engine.DefaultConfig()

	flag.StringVar(&cfg.Pool, "pool", cfg.Pool, "node pool ("+strings.Join(pool.Names(), ", ")+")")
	flag.IntVar(&cfg.Trees, "trees", cfg.Trees, "number of random trees")
	flag.IntVar(&cfg.MaxDepth, "maxdepth", cfg.MaxDepth, "max tree depth")
	flag.IntVar(&cfg.Params, "params", cfg.Params, "number of parameters P0..Pn-1")
	flag.IntVar(&cfg.Bindings, "bindings", cfg.Bindings, "parameter vectors sampled per tree")
	flag.IntVar(&cfg.Passes, "passes", cfg.Passes, "simplify passes per tree (0 = until settled)")
	flag.Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "relative tolerance when comparing values")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json)")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log every tree")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	flag.StringVar(&cfg.Input, "input", cfg.Input, "JSON file of trees to simplify instead of random ones")
	flag.StringVar(&cfg.OutDir, "outdir", cfg.OutDir, "directory for report.tex (empty = none)")
	flag.Parse()

	e, err := engine.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	report := e.Run()

	switch cfg.Format {
	case "json":
		if err := engine.WriteJSONFinal(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "error writing JSON: %v\n", err)
			os.Exit(1)
		}
	default:
		engine.WriteTextFinal(os.Stdout, report)
	}

	if cfg.OutDir != "" {
		if err := writeLatex(cfg.OutDir, report); err != nil {
			fmt.Fprintf(os.Stderr, "error writing LaTeX report: %v\n", err)
			os.Exit(1)
		}
	}

	if !report.OK() {
		os.Exit(1)
	}
}

func writeLatex(dir string, report engine.FinalReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, "report.tex")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	engine.WriteLatexReport(f, report)
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "LaTeX report written to %s\n", path)
	return nil
}
