package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clausecheck/internal/rules"
)

func sev(s rules.Severity) rules.Finding {
	return rules.Finding{Code: "X", Severity: s}
}

func TestRecomputeEmpty(t *testing.T) {
	status, risk, score := Recompute(nil)
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, RiskMedium, risk)
	assert.Equal(t, int32(100), score)
}

func TestRecomputeWeights(t *testing.T) {
	tests := []struct {
		name     string
		findings []rules.Finding
		status   Status
		risk     Risk
		score    int32
	}{
		{"single info", []rules.Finding{sev(rules.SeverityInfo)}, StatusOK, RiskLow, 99},
		{"single minor", []rules.Finding{sev(rules.SeverityMinor)}, StatusOK, RiskMedium, 90},
		{"single major", []rules.Finding{sev(rules.SeverityMajor)}, StatusWarn, RiskHigh, 75},
		{"single critical", []rules.Finding{sev(rules.SeverityCritical)}, StatusFail, RiskCritical, 50},
		{"mixed", []rules.Finding{sev(rules.SeverityInfo), sev(rules.SeverityMinor), sev(rules.SeverityMajor)}, StatusWarn, RiskHigh, 64},
		{"critical beats major", []rules.Finding{sev(rules.SeverityMajor), sev(rules.SeverityCritical)}, StatusFail, RiskCritical, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, risk, score := Recompute(tt.findings)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.risk, risk)
			assert.Equal(t, tt.score, score)
		})
	}
}

func TestRecomputeScoreFloor(t *testing.T) {
	findings := make([]rules.Finding, 5)
	for i := range findings {
		findings[i] = sev(rules.SeverityCritical)
	}
	_, _, score := Recompute(findings)
	assert.Equal(t, int32(0), score)
}

func TestRecomputeFallbackHoldsWarn(t *testing.T) {
	findings := []rules.Finding{{Code: CodeRuleNotImplemented, Severity: rules.SeverityInfo}}
	status, risk, score := Recompute(findings)
	assert.Equal(t, StatusWarn, status)
	assert.Equal(t, RiskLow, risk)
	assert.Equal(t, int32(99), score)
}

func TestRecomputeIdempotent(t *testing.T) {
	findings := []rules.Finding{sev(rules.SeverityMajor), sev(rules.SeverityMinor)}
	s1, r1, sc1 := Recompute(findings)
	s2, r2, sc2 := Recompute(findings)
	assert.Equal(t, s1, s2)
	assert.Equal(t, r1, r2)
	assert.Equal(t, sc1, sc2)
}

func TestRiskFromSeverity(t *testing.T) {
	assert.Equal(t, RiskLow, RiskFromSeverity(rules.SeverityInfo))
	assert.Equal(t, RiskMedium, RiskFromSeverity(rules.SeverityMinor))
	assert.Equal(t, RiskHigh, RiskFromSeverity(rules.SeverityMajor))
	assert.Equal(t, RiskCritical, RiskFromSeverity(rules.SeverityCritical))
}
