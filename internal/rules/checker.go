package rules

import "clausecheck/internal/segment"

// SpanKind tags whether a finding span is clause-relative or already in
// absolute document coordinates. Checkers emit relative spans; the executor
// converts them exactly once, so the tag removes any ambiguity about what a
// span means at a given point in the pipeline.
type SpanKind int

const (
	SpanRelative SpanKind = iota
	SpanAbsolute
)

// Citation points at the policy or statute a finding rests on.
type Citation struct {
	Source    string `json:"source"`
	Reference string `json:"reference,omitempty"`
}

// Finding is one diagnostic emitted by a checker or cross-check heuristic.
type Finding struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Severity  Severity     `json:"severity"`
	Span      segment.Span `json:"span"`
	SpanKind  SpanKind     `json:"-"`
	Citations []Citation   `json:"citations,omitempty"`
}

// Input is everything a checker may inspect: the clause, its immediate
// neighbors for context-dependent rules, the jurisdiction code, and an opaque
// policy-pack map. Checkers must treat all of it as read-only.
type Input struct {
	Clause       segment.Clause
	PrevText     string
	NextText     string
	Jurisdiction string
	Policy       map[string]string
}

// Checker is a pure function mapping a clause (plus context) to findings.
// Checkers must be deterministic and must not touch shared state; the
// executor provides failure isolation, not the checker.
type Checker func(in Input) []Finding

// relFinding builds a clause-relative finding located at the first occurrence
// of needle in the clause text. An unlocatable needle leaves a zero span,
// which the executor pins to the whole clause.
func relFinding(code, message string, sev Severity, clauseText, needle string) Finding {
	f := Finding{Code: code, Message: message, Severity: sev, SpanKind: SpanRelative}
	if needle != "" {
		if idx := indexFold(clauseText, needle); idx >= 0 {
			f.Span = segment.Span{Start: uint32(idx), Length: uint32(len(needle))}
		}
	}
	return f
}
