package dispatch

import (
	"clausecheck/internal/rules"
	"clausecheck/internal/segment"
)

// NormalizeFindings converts clause-relative finding spans to absolute
// document coordinates. A zero-length relative span carries no position and
// is pinned to the whole clause. Already-absolute findings are only
// re-clamped, so the function is idempotent and safe to run after both
// dispatch and the cross-check pass.
func NormalizeFindings(docLen int, clause segment.Span, findings []rules.Finding) {
	for i := range findings {
		f := &findings[i]
		if f.SpanKind == rules.SpanAbsolute {
			f.Span = f.Span.Clamp(docLen)
			continue
		}
		if f.Span.Length == 0 {
			f.Span = clause
		} else {
			f.Span = segment.NewSpan(
				int(clause.Start)+int(f.Span.Start),
				int(f.Span.Length),
				docLen,
			)
		}
		f.SpanKind = rules.SpanAbsolute
	}
}
