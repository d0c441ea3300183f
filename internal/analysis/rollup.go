package analysis

import "clausecheck/internal/dispatch"

// Summarize aggregates per-clause results into the document rollup: worst
// risk wins, FAIL if any clause fails, else WARN if any warns, and the score
// is the rounded mean of per-clause scores. An empty result set yields the
// defined default {OK, medium, 0}.
func Summarize(results []dispatch.ClauseResult) Summary {
	if len(results) == 0 {
		return Summary{Status: dispatch.StatusOK, Risk: dispatch.RiskMedium, Score: 0}
	}

	summary := Summary{Status: dispatch.StatusOK, Risk: dispatch.RiskLow}
	var total int64
	for _, res := range results {
		if res.Risk > summary.Risk {
			summary.Risk = res.Risk
		}
		switch {
		case res.Status == dispatch.StatusFail:
			summary.Status = dispatch.StatusFail
		case res.Status == dispatch.StatusWarn && summary.Status != dispatch.StatusFail:
			summary.Status = dispatch.StatusWarn
		}
		total += int64(res.Score)
	}

	n := int64(len(results))
	summary.Score = int32((total + n/2) / n)
	return summary
}
