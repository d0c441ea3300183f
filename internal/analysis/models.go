package analysis

import (
	"clausecheck/internal/coverage"
	"clausecheck/internal/dispatch"
	"clausecheck/internal/segment"
)

// Request is one document analysis request: UTF-8 contract text plus an
// optional jurisdiction code and policy-pack map.
type Request struct {
	Text         string            `json:"text"`
	Jurisdiction string            `json:"jurisdiction,omitempty"`
	Policy       map[string]string `json:"policy,omitempty"`
}

// Summary is the document-level rollup across all clause results.
type Summary struct {
	Status dispatch.Status `json:"status"`
	Risk   dispatch.Risk   `json:"risk"`
	Score  int32           `json:"score"`
}

// Report is the full analysis output for one document. Coverage is nil when
// the zone specification failed to load; callers treat that as "coverage
// tracking disabled", not as an error.
type Report struct {
	ID       string                  `json:"id"`
	Clauses  []segment.Clause        `json:"clauses"`
	Results  []dispatch.ClauseResult `json:"results"`
	Coverage *coverage.Report        `json:"coverage,omitempty"`
	Summary  Summary                 `json:"summary"`
}
