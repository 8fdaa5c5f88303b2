package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/wildfunctions/arithmetic_ast/pkg/expr"
	"github.com/wildfunctions/arithmetic_ast/pkg/verify"
)

// CaseReport summarizes one simplified tree.
type CaseReport struct {
	Index           int           `json:"index"`
	Original        string        `json:"original"`
	Simplified      string        `json:"simplified"`
	OriginalLaTeX   string        `json:"original_latex,omitempty"`
	SimplifiedLaTeX string        `json:"simplified_latex,omitempty"`
	Changed         bool          `json:"changed"`
	NodesSaved      int           `json:"nodes_saved"`
	Result          verify.Result `json:"result"`
	Error           string        `json:"error,omitempty"`
	Shrunk          string        `json:"shrunk,omitempty"` // smallest failing subtree found

	simplified expr.ExprNode
}

func newCaseReport(idx int, c *verify.Case, r verify.Result) CaseReport {
	cr := CaseReport{
		Index:           idx,
		Original:        c.Original.String(),
		Simplified:      c.Simplified.String(),
		OriginalLaTeX:   c.Original.LaTeX(),
		SimplifiedLaTeX: c.Simplified.LaTeX(),
		NodesSaved:      c.NodesSaved(),
		Result:          r,
		simplified:      c.Simplified,
	}
	cr.Changed = cr.Original != cr.Simplified
	if r.Err != nil {
		cr.Error = r.Err.Error()
	}
	return cr
}

// FinalReport summarizes the entire run.
type FinalReport struct {
	Config        Config         `json:"config"`
	Trees         int            `json:"trees"`
	Changed       int            `json:"changed"`
	NodesBefore   int            `json:"nodes_before"`
	NodesAfter    int            `json:"nodes_after"`
	Samples       int            `json:"samples"`
	Matched       int            `json:"matched"`
	Mismatched    int            `json:"mismatched"`
	Skipped       int            `json:"skipped"`
	Failures      int            `json:"failures"`
	MaxError      float64        `json:"max_error"`
	KindsBefore   map[string]int `json:"kinds_before"`
	KindsAfter    map[string]int `json:"kinds_after"`
	Mismatches    []CaseReport   `json:"mismatches,omitempty"`
	TopReductions []CaseReport   `json:"top_reductions,omitempty"`
	Cases         []CaseReport   `json:"cases,omitempty"`
	Elapsed       string         `json:"elapsed"`
}

func (r *FinalReport) add(cr CaseReport) {
	r.Trees++
	if cr.Changed {
		r.Changed++
	}
	r.NodesBefore += cr.Result.NodesBefore
	r.NodesAfter += cr.Result.NodesAfter
	r.Samples += cr.Result.Samples
	r.Matched += cr.Result.Matched
	r.Mismatched += cr.Result.Mismatched
	r.Skipped += cr.Result.Skipped
	if cr.Result.MaxError > r.MaxError {
		r.MaxError = cr.Result.MaxError
	}
	if cr.Error != "" || cr.Result.Mismatched > 0 {
		r.Failures++
		r.Mismatches = append(r.Mismatches, cr)
	}
}

// OK reports whether every tree evaluated and every simplification matched.
func (r FinalReport) OK() bool {
	return r.Failures == 0
}

// topReductions returns up to n changed cases sorted by nodes saved
// descending, then by original size descending.
func topReductions(cases []CaseReport, n int) []CaseReport {
	var sorted []CaseReport
	for _, c := range cases {
		if c.Changed && c.Error == "" && c.Result.Mismatched == 0 {
			sorted = append(sorted, c)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].NodesSaved != sorted[j].NodesSaved {
			return sorted[i].NodesSaved > sorted[j].NodesSaved
		}
		return sorted[i].Result.NodesBefore > sorted[j].Result.NodesBefore
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// WriteTextCase writes a single case in human-readable format.
func WriteTextCase(w io.Writer, c CaseReport) {
	fmt.Fprintf(w, "[tree %d] %3d -> %3d nodes | %s => %s\n",
		c.Index, c.Result.NodesBefore, c.Result.NodesAfter, c.Original, c.Simplified)
}

// WriteTextFinal writes the final report in human-readable format.
func WriteTextFinal(w io.Writer, r FinalReport) {
	if len(r.TopReductions) > 0 {
		fmt.Fprintln(w, "\n--- Top Reductions ---")
		for i, c := range r.TopReductions {
			fmt.Fprintf(w, "  #%d: [tree %d] %d nodes saved | %s => %s\n",
				i+1, c.Index, c.NodesSaved, c.Original, c.Simplified)
		}
	}
	fmt.Fprintln(w, "\n========== FINAL RESULT ==========")
	if r.Config.Input != "" {
		fmt.Fprintf(w, "Input:      %s\n", r.Config.Input)
	} else {
		fmt.Fprintf(w, "Pool:       %s\n", r.Config.Pool)
	}
	fmt.Fprintf(w, "Seed:       %d\n", r.Config.Seed)
	fmt.Fprintf(w, "Trees:      %d (%d changed)\n", r.Trees, r.Changed)
	fmt.Fprintf(w, "Nodes:      %d -> %d\n", r.NodesBefore, r.NodesAfter)
	fmt.Fprintf(w, "Samples:    %d (%d matched, %d mismatched, %d skipped)\n",
		r.Samples, r.Matched, r.Mismatched, r.Skipped)
	fmt.Fprintf(w, "Max error:  %.3g\n", r.MaxError)
	fmt.Fprintf(w, "Failures:   %d\n", r.Failures)
	fmt.Fprintf(w, "Elapsed:    %s\n", r.Elapsed)
	fmt.Fprintf(w, "Kinds:      %s\n", kindSummary(r.KindsBefore, r.KindsAfter))
	fmt.Fprintln(w, "==================================")
}

// kindSummary renders per-kind counts as "add 12->9, mul 4->5" in the
// declaration order of expr.Kind.
func kindSummary(before, after map[string]int) string {
	var parts []string
	for k := expr.KindConstant; k <= expr.KindPower; k++ {
		name := k.String()
		b, a := before[name], after[name]
		if b == 0 && a == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d->%d", name, b, a))
	}
	return strings.Join(parts, ", ")
}

// WriteJSONFinal writes the final report as JSON.
func WriteJSONFinal(w io.Writer, r FinalReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// latexEscape escapes underscores and other special chars for LaTeX text mode.
func latexEscape(s string) string {
	r := strings.NewReplacer(`\`, `\textbackslash{}`, "_", `\_`, "%", `\%`, "&", `\&`, "#", `\#`)
	return r.Replace(s)
}

// WriteLatexReport writes a compilable LaTeX document listing the top
// reductions and any mismatches.
func WriteLatexReport(w io.Writer, r FinalReport) {
	source := `Pool: \texttt{` + latexEscape(r.Config.Pool) + `}`
	if r.Config.Input != "" {
		source = `Input: \texttt{` + latexEscape(r.Config.Input) + `}`
	}

	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	fmt.Fprintln(w, `\title{Simplification Report}`)
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\\noindent %s, Trees: %d, Depth: %d, Params: %d, Passes: %d, Seed: %d\\\\\n",
		source, r.Trees, r.Config.MaxDepth, r.Config.Params, r.Config.Passes, r.Config.Seed)
	fmt.Fprintf(w, "Nodes: %d $\\to$ %d, Samples: %d, Mismatched: %d, Skipped: %d\n\n",
		r.NodesBefore, r.NodesAfter, r.Samples, r.Mismatched, r.Skipped)

	writeLatexCases(w, "Top Reductions", r.TopReductions)
	writeLatexCases(w, "Mismatches", r.Mismatches)

	fmt.Fprintln(w, `\end{document}`)
}

func writeLatexCases(w io.Writer, title string, cases []CaseReport) {
	if len(cases) == 0 {
		return
	}
	fmt.Fprintf(w, "\\section*{%s}\n", title)
	for _, c := range cases {
		fmt.Fprintf(w, "\\subsection*{Tree %d --- %d $\\to$ %d nodes}\n",
			c.Index, c.Result.NodesBefore, c.Result.NodesAfter)
		fmt.Fprintln(w, `\[`)
		fmt.Fprintf(w, "  %s \\;\\Rightarrow\\; %s\n", c.OriginalLaTeX, c.SimplifiedLaTeX)
		fmt.Fprintln(w, `\]`)
		if c.Error != "" {
			fmt.Fprintf(w, "\\noindent Error: \\verb|%s|\n\n", c.Error)
		} else if c.Result.Mismatched > 0 {
			fmt.Fprintf(w, "\\noindent Mismatched %d of %d samples, max error %.3g, shrunk to \\verb|%s|\n\n",
				c.Result.Mismatched, c.Result.Samples, c.Result.MaxError, c.Shrunk)
		}
	}
}
