package audit

import "time"

// Event records one completed analysis run. Keep it transport-agnostic so
// stores and sinks can fan out.
type Event struct {
	Timestamp    time.Time     `json:"timestamp"`
	RequestID    string        `json:"request_id,omitempty"`
	ReportID     string        `json:"report_id"`
	DocumentHash string        `json:"document_hash"`
	Jurisdiction string        `json:"jurisdiction,omitempty"`
	Status       string        `json:"status"`
	Risk         string        `json:"risk"`
	Score        int32         `json:"score"`
	Clauses      int           `json:"clauses"`
	Duration     time.Duration `json:"duration"`
}
