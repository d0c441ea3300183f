// Package crosscheck inspects the full per-clause result set together and
// appends findings no single-clause rule could discover: governing law vs.
// forum, termination vs. notice/cure, survival completeness, confidentiality
// vs. data protection, force majeure vs. payment, and IP ownership vs.
// license breadth. The pass only ever appends findings; derived fields are
// recomputed afterwards by the dispatcher's rollup.
package crosscheck

import (
	"fmt"
	"log/slog"

	"clausecheck/internal/dispatch"
	"clausecheck/internal/rules"
)

// Pass runs the cross-clause heuristics.
type Pass struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Pass {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pass{logger: logger}
}

type heuristic struct {
	name string
	run  func(results []dispatch.ClauseResult, touched map[int]struct{})
}

// Run applies every heuristic to the result set in place and returns it with
// the same length and order. A panicking heuristic is skipped and logged;
// the pass as a whole never fails. Touched clauses get their spans
// re-normalized and their derived fields recomputed.
func (p *Pass) Run(docLen int, results []dispatch.ClauseResult) []dispatch.ClauseResult {
	if len(results) == 0 {
		return results
	}

	touched := make(map[int]struct{})
	heuristics := []heuristic{
		{"governing_law_vs_jurisdiction", p.lawForumMismatch},
		{"termination_vs_notice", p.terminationNotice},
		{"survival_completeness", p.survivalCompleteness},
		{"confidentiality_vs_data_protection", p.confidentialityDataProtection},
		{"force_majeure_vs_payment", p.forceMajeurePayment},
		{"ip_vs_license", p.ipLicenseBreadth},
	}

	for _, h := range heuristics {
		p.runSafely(h, results, touched)
	}

	for idx := range touched {
		res := &results[idx]
		dispatch.NormalizeFindings(docLen, res.Span, res.Findings)
		res.Status, res.Risk, res.Score = dispatch.Recompute(res.Findings)
	}
	return results
}

func (p *Pass) runSafely(h heuristic, results []dispatch.ClauseResult, touched map[int]struct{}) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("cross-check heuristic skipped", "heuristic", h.name, "panic", fmt.Sprint(r))
		}
	}()
	h.run(results, touched)
}

// firstOfType returns the index of the first clause whose normalized type
// matches, or -1.
func firstOfType(results []dispatch.ClauseResult, want string) int {
	for i := range results {
		if rules.Normalize(results[i].ClauseType) == want {
			return i
		}
	}
	return -1
}

// appendFinding adds a cross-check finding to a clause and marks it touched.
// Findings carry a zero relative span so normalization pins them to the
// clause. A code already present on the clause is not appended again, which
// makes re-running the pass on its own output a no-op.
func appendFinding(results []dispatch.ClauseResult, touched map[int]struct{}, idx int, code, message string, sev rules.Severity) {
	for _, f := range results[idx].Findings {
		if f.Code == code {
			return
		}
	}
	results[idx].Findings = append(results[idx].Findings, rules.Finding{
		Code:     code,
		Message:  message,
		Severity: sev,
		SpanKind: rules.SpanRelative,
	})
	touched[idx] = struct{}{}
}
