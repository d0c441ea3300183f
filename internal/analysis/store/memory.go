package store

import (
	"context"
	"sync"
	"time"

	"clausecheck/internal/analysis"
)

type cachedReport struct {
	report   analysis.Report
	storedAt time.Time
}

// Memory keeps reports in memory with TTL expiration.
type Memory struct {
	mu      sync.RWMutex
	reports map[string]cachedReport
	ttl     time.Duration
	clock   func() time.Time
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) MemoryOption {
	return func(m *Memory) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// NewMemory creates an in-memory report store. A non-positive ttl keeps
// reports forever.
func NewMemory(ttl time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		reports: make(map[string]cachedReport),
		ttl:     ttl,
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Save stores a report keyed by its id. A nil report is a no-op.
func (m *Memory) Save(_ context.Context, report *analysis.Report) error {
	if report == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.ID] = cachedReport{report: *report, storedAt: m.clock()}
	return nil
}

// Find retrieves a report by id. Returns ErrNotFound if the report does not
// exist or has expired past the TTL.
func (m *Memory) Find(_ context.Context, id string) (*analysis.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cached, ok := m.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	if m.ttl > 0 && m.clock().Sub(cached.storedAt) >= m.ttl {
		return nil, ErrNotFound
	}
	report := cached.report
	return &report, nil
}
