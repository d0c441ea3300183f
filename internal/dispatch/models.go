package dispatch

import (
	"clausecheck/internal/rules"
	"clausecheck/internal/segment"
)

// Status is the per-clause verdict.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Risk orders clause risk low < medium < high < critical.
type Risk int

const (
	RiskLow Risk = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

func (r Risk) String() string {
	switch r {
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	default:
		return "low"
	}
}

// MarshalText serializes the canonical spelling.
func (r Risk) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses the canonical spelling; unknown input reads as low.
func (r *Risk) UnmarshalText(b []byte) error {
	switch string(b) {
	case "medium":
		*r = RiskMedium
	case "high":
		*r = RiskHigh
	case "critical":
		*r = RiskCritical
	default:
		*r = RiskLow
	}
	return nil
}

// ClauseResult is the dispatcher's output for one clause. Status, Risk and
// Score are derived from Findings by Recompute and are never hand-set;
// Findings, Diagnostics and Trace are append-only.
type ClauseResult struct {
	ClauseID    string          `json:"clause_id"`
	ClauseType  string          `json:"clause_type"`
	Text        string          `json:"text"`
	Span        segment.Span    `json:"span"`
	Status      Status          `json:"status"`
	Score       int32           `json:"score"`
	Risk        Risk            `json:"risk"`
	Findings    []rules.Finding `json:"findings"`
	Diagnostics []string        `json:"diagnostics,omitempty"`
	Trace       []string        `json:"trace,omitempty"`
}
