package dispatch

import "clausecheck/internal/rules"

// severityWeight feeds the score deduction per finding.
var severityWeight = map[rules.Severity]int32{
	rules.SeverityInfo:     1,
	rules.SeverityMinor:    10,
	rules.SeverityMajor:    25,
	rules.SeverityCritical: 50,
}

// RiskFromSeverity maps a finding severity onto the risk scale.
func RiskFromSeverity(s rules.Severity) Risk {
	switch s {
	case rules.SeverityCritical:
		return RiskCritical
	case rules.SeverityMajor:
		return RiskHigh
	case rules.SeverityMinor:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Recompute derives (status, risk, score) from a findings list. It is a
// total, pure function of the findings: recomputing on an unchanged list
// yields identical values, which is what lets the cross-check pass re-derive
// these fields after appending.
//
// A CodeRuleNotImplemented marker holds the clause at WARN even though the
// marker itself is info-severity, so unimplemented rules stay visible in the
// rollup rather than reading as a clean OK.
func Recompute(findings []rules.Finding) (Status, Risk, int32) {
	if len(findings) == 0 {
		return StatusOK, RiskMedium, 100
	}

	risk := RiskLow
	status := StatusOK
	var deduction int32
	for _, f := range findings {
		if r := RiskFromSeverity(f.Severity); r > risk {
			risk = r
		}
		deduction += severityWeight[f.Severity]
		switch {
		case f.Severity == rules.SeverityCritical:
			status = StatusFail
		case f.Severity == rules.SeverityMajor && status != StatusFail:
			status = StatusWarn
		case f.Code == CodeRuleNotImplemented && status == StatusOK:
			status = StatusWarn
		}
	}

	score := int32(100) - deduction
	if score < 0 {
		score = 0
	}
	return status, risk, score
}

// apply rewrites a result's derived fields from its current findings.
func apply(res *ClauseResult) {
	res.Status, res.Risk, res.Score = Recompute(res.Findings)
}
