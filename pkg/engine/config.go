package engine

import (
	"io"
	"os"
	"runtime"

	"github.com/wildfunctions/arithmetic_ast/pkg/verify"
)

// Config holds all parameters for a simplification run.
type Config struct {
	Pool      string
	Trees     int
	MaxDepth  int
	Params    int
	Bindings  int // parameter vectors sampled per tree
	Passes    int // rewrite passes per tree; <= 0 repeats until settled, capped at expr.DefaultMaxPasses
	Tolerance float64
	Seed      int64
	Format    string // "text" or "json"
	Verbose   bool
	Workers   int
	Input     string    // JSON file of trees; replaces random generation
	OutDir    string    // where report.tex is written, if set
	Log       io.Writer `json:"-"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Pool:      "moderate",
		Trees:     1000,
		MaxDepth:  5,
		Params:    3,
		Bindings:  16,
		Passes:    1,
		Tolerance: verify.DefaultTolerance,
		Seed:      0, // 0 = random
		Format:    "text",
		Verbose:   false,
		Workers:   runtime.NumCPU(),
		Log:       os.Stderr,
	}
}
