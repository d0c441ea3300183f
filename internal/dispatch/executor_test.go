package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clausecheck/internal/rules"
	"clausecheck/internal/segment"
)

func testClause(clauseType, text string) segment.Clause {
	return segment.Clause{
		ID:   "clause-" + clauseType,
		Type: clauseType,
		Span: segment.Span{Start: 0, Length: uint32(len(text))},
		Text: text,
	}
}

func TestAnalyzeUnknownClauseTypeFallsBack(t *testing.T) {
	e := NewExecutor(rules.NewRegistry(), 0, nil)
	clauses := []segment.Clause{testClause("exotic_clause", "something nobody checks")}

	results, tel := e.Analyze(context.Background(), 100, clauses, "", nil)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, StatusWarn, res.Status)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, CodeRuleNotImplemented, res.Findings[0].Code)
	assert.Equal(t, rules.SeverityInfo, res.Findings[0].Severity)
	// The fallback is pinned to the whole clause.
	assert.Equal(t, res.Span, res.Findings[0].Span)
	assert.NotEmpty(t, res.Diagnostics)

	assert.Empty(t, tel.Candidates[0])
	assert.Empty(t, tel.Fired)
}

func TestAnalyzeTelemetry(t *testing.T) {
	e := NewExecutor(rules.NewRegistry(), 0, nil)
	clauses := []segment.Clause{
		testClause("termination", "Either party may terminate for convenience."),
		testClause("governing_law", "Governed by the laws of France, excluding conflict of laws."),
	}

	results, tel := e.Analyze(context.Background(), 200, clauses, "", nil)
	require.Len(t, results, 2)

	assert.Equal(t, []string{"termination"}, tel.Candidates[0])
	assert.Equal(t, []string{"governing_law"}, tel.Candidates[1])
	// Termination produced a finding; the clean governing-law clause did not.
	assert.Contains(t, tel.Fired, "termination")
	assert.NotContains(t, tel.Fired, "governing_law")
}

func TestAnalyzePanicIsolated(t *testing.T) {
	registry := rules.NewRegistry()
	registry.Register("exploding", func(rules.Input) []rules.Finding {
		panic("boom")
	})
	e := NewExecutor(registry, 0, nil)
	clauses := []segment.Clause{
		testClause("exploding", "this clause blows up its checker"),
		testClause("termination", "Either party may terminate for convenience."),
	}

	results, _ := e.Analyze(context.Background(), 200, clauses, "", nil)
	require.Len(t, results, 2)

	assert.Equal(t, StatusWarn, results[0].Status)
	require.Len(t, results[0].Findings, 1)
	assert.Equal(t, CodeRuleNotImplemented, results[0].Findings[0].Code)

	// The panic did not poison the following clause.
	assert.Equal(t, "TERMINATION_NO_NOTICE", results[1].Findings[0].Code)
}

func TestAnalyzeTimeoutDegrades(t *testing.T) {
	registry := rules.NewRegistry()
	registry.Register("slow", func(rules.Input) []rules.Finding {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	e := NewExecutor(registry, 5*time.Millisecond, nil)
	clauses := []segment.Clause{testClause("slow", "this clause takes too long")}

	results, tel := e.Analyze(context.Background(), 100, clauses, "", nil)
	require.Len(t, results, 1)
	require.Len(t, results[0].Findings, 1)
	assert.Equal(t, CodeRuleNotImplemented, results[0].Findings[0].Code)
	assert.NotContains(t, tel.Fired, "slow")
}

func TestAnalyzeCircuitOpensAfterConsecutiveFailures(t *testing.T) {
	registry := rules.NewRegistry()
	calls := 0
	registry.Register("flaky", func(rules.Input) []rules.Finding {
		calls++
		panic("boom")
	})
	e := NewExecutor(registry, 0, nil)

	clauses := make([]segment.Clause, 8)
	for i := range clauses {
		clauses[i] = testClause("flaky", "same failing clause type repeated")
	}
	results, _ := e.Analyze(context.Background(), 400, clauses, "", nil)
	require.Len(t, results, 8)

	// Five consecutive failures trip the breaker; later clauses short-circuit.
	assert.Equal(t, 5, calls)
	for _, res := range results {
		assert.Equal(t, CodeRuleNotImplemented, res.Findings[0].Code)
	}
	assert.Contains(t, results[7].Diagnostics[0], "circuit open")
}

func TestAnalyzeBreakerReclosesAfterRecovery(t *testing.T) {
	registry := rules.NewRegistry()
	calls := 0
	registry.Register("flaky", func(rules.Input) []rules.Finding {
		calls++
		if calls <= 5 {
			panic("boom")
		}
		return []rules.Finding{{
			Code:     "NOTICE_ADDRESS_MISSING",
			Message:  "no notice address given",
			Severity: rules.SeverityMinor,
			SpanKind: rules.SpanRelative,
		}}
	})
	e := NewExecutor(registry, 0, nil)
	clause := testClause("flaky", "clause type that recovers after a bad patch")

	var last ClauseResult
	for i := 0; i < 45; i++ {
		results, _ := e.Analyze(context.Background(), 100, []segment.Clause{clause}, "", nil)
		require.Len(t, results, 1)
		last = results[0]
	}

	// Five failures open the circuit; while open, one trial invocation runs
	// every ten skipped dispatches, and three trial successes reclose it.
	// The last ten dispatches all reach the now-healthy checker.
	assert.Equal(t, 18, calls)
	require.Len(t, last.Findings, 1)
	assert.Equal(t, "NOTICE_ADDRESS_MISSING", last.Findings[0].Code)
	assert.Empty(t, last.Diagnostics)
}

func TestAnalyzeCancelledBetweenClauses(t *testing.T) {
	e := NewExecutor(rules.NewRegistry(), 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clauses := []segment.Clause{
		testClause("termination", "Either party may terminate for convenience."),
	}
	results, _ := e.Analyze(ctx, 100, clauses, "", nil)
	assert.Empty(t, results)
}

func TestBreakerRecloses(t *testing.T) {
	b := newBreaker()
	for i := 0; i < 5; i++ {
		b.recordFailure()
	}
	require.True(t, b.isOpen())

	b.recordSuccess()
	b.recordSuccess()
	require.True(t, b.isOpen())
	b.recordSuccess()
	assert.False(t, b.isOpen())
}

func TestBreakerAllowsTrialWhileOpen(t *testing.T) {
	b := newBreaker()
	assert.True(t, b.allow())

	for i := 0; i < 5; i++ {
		b.recordFailure()
	}
	require.True(t, b.isOpen())

	for i := 0; i < 9; i++ {
		assert.False(t, b.allow())
	}
	assert.True(t, b.allow())

	// A failed trial starts a fresh interval.
	b.recordFailure()
	for i := 0; i < 9; i++ {
		assert.False(t, b.allow())
	}
	assert.True(t, b.allow())
}
