// Package dispatch maps clauses to rule-checkers and runs them under failure
// isolation: a bounded per-rule time budget, panic recovery, and a per-rule
// circuit breaker. One failing rule never aborts the batch.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"clausecheck/internal/rules"
	"clausecheck/internal/segment"
)

// CodeRuleNotImplemented marks the no-op fallback finding. Unknown clause
// types, timeouts, panics and open circuits all degrade to it; diagnostics
// carry the actual cause.
const CodeRuleNotImplemented = "RULE_NOT_IMPLEMENTED"

// DefaultRuleBudget bounds a single checker invocation.
const DefaultRuleBudget = 20 * time.Millisecond

// Telemetry reports which rules were candidates and which fired, for the
// coverage tracker. Fired means the checker ran to completion and returned at
// least one finding.
type Telemetry struct {
	Candidates [][]string
	Fired      map[string]struct{}
}

// Executor runs the registry's checkers over segmented clauses.
type Executor struct {
	registry *rules.Registry
	budget   time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	breakers map[string]*breaker
}

// NewExecutor builds an executor. A non-positive budget falls back to
// DefaultRuleBudget.
func NewExecutor(registry *rules.Registry, budget time.Duration, logger *slog.Logger) *Executor {
	if budget <= 0 {
		budget = DefaultRuleBudget
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		registry: registry,
		budget:   budget,
		logger:   logger,
		breakers: make(map[string]*breaker),
	}
}

// Analyze dispatches every clause in document order. Caller cancellation is
// honored between clause boundaries only: results already computed are
// returned, never discarded.
func (e *Executor) Analyze(ctx context.Context, docLen int, clauses []segment.Clause, jurisdiction string, policy map[string]string) ([]ClauseResult, Telemetry) {
	results := make([]ClauseResult, 0, len(clauses))
	tel := Telemetry{
		Candidates: make([][]string, len(clauses)),
		Fired:      make(map[string]struct{}),
	}

	for i, clause := range clauses {
		if ctx.Err() != nil {
			e.logger.Warn("analysis cancelled between clauses",
				"completed", len(results), "total", len(clauses))
			break
		}

		in := rules.Input{
			Clause:       clause,
			Jurisdiction: jurisdiction,
			Policy:       policy,
		}
		if i > 0 {
			in.PrevText = clauses[i-1].Text
		}
		if i+1 < len(clauses) {
			in.NextText = clauses[i+1].Text
		}

		res, candidate, fired := e.dispatch(ctx, docLen, in)
		if candidate != "" {
			tel.Candidates[i] = []string{candidate}
		}
		if fired != "" {
			tel.Fired[fired] = struct{}{}
		}
		results = append(results, res)
	}
	return results, tel
}

// dispatch runs one clause through its checker and derives the rollup.
func (e *Executor) dispatch(ctx context.Context, docLen int, in rules.Input) (res ClauseResult, candidate, fired string) {
	clause := in.Clause
	ruleID := rules.Normalize(clause.Type)
	res = ClauseResult{
		ClauseID:   clause.ID,
		ClauseType: clause.Type,
		Text:       clause.Text,
		Span:       clause.Span,
	}

	checker, ok := e.registry.Resolve(clause.Type)
	if !ok {
		res.Findings = append(res.Findings, fallbackFinding(
			fmt.Sprintf("no checker registered for clause type %q", clause.Type)))
		res.Trace = append(res.Trace, "rule:"+ruleID)
		res.Diagnostics = append(res.Diagnostics, "rule "+ruleID+" not implemented")
		e.finish(docLen, &res)
		return res, "", ""
	}
	candidate = ruleID

	br := e.breakerFor(ruleID)
	if !br.allow() {
		res.Findings = append(res.Findings, fallbackFinding("rule circuit open"))
		res.Trace = append(res.Trace, "rule:"+ruleID)
		res.Diagnostics = append(res.Diagnostics, "rule "+ruleID+" skipped: circuit open")
		e.finish(docLen, &res)
		return res, candidate, ""
	}

	start := time.Now()
	findings, err := e.invoke(ctx, checker, in)
	elapsed := time.Since(start)

	res.Trace = append(res.Trace, "rule:"+ruleID)
	if err != nil {
		br.recordFailure()
		res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("rule %s failed: %v", ruleID, err))
		res.Findings = append(res.Findings, fallbackFinding(err.Error()))
		e.logger.Warn("rule execution failed",
			"rule", ruleID, "clause_id", clause.ID, "elapsed", elapsed, "error", err)
		e.finish(docLen, &res)
		return res, candidate, ""
	}

	br.recordSuccess()
	res.Findings = append(res.Findings, findings...)
	if len(findings) > 0 {
		fired = ruleID
	}
	e.logger.Debug("rule executed",
		"rule", ruleID, "clause_id", clause.ID, "findings", len(findings), "elapsed", elapsed)
	e.finish(docLen, &res)
	return res, candidate, fired
}

// finish applies span normalization and the derived-field rollup.
func (e *Executor) finish(docLen int, res *ClauseResult) {
	NormalizeFindings(docLen, res.Span, res.Findings)
	apply(res)
}

// invoke runs a checker with panic recovery under the per-rule budget. On
// timeout the goroutine is abandoned; the buffered channel lets it finish
// without blocking.
func (e *Executor) invoke(ctx context.Context, checker rules.Checker, in rules.Input) ([]rules.Finding, error) {
	ctx, cancel := context.WithTimeout(ctx, e.budget)
	defer cancel()

	type outcome struct {
		findings []rules.Finding
		err      error
	}
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("checker panic: %v", r)}
			}
		}()
		ch <- outcome{findings: checker(in)}
	}()

	select {
	case out := <-ch:
		return out.findings, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("checker exceeded budget %s: %w", e.budget, ctx.Err())
	}
}

func (e *Executor) breakerFor(ruleID string) *breaker {
	e.mu.Lock()
	defer e.mu.Unlock()
	br, ok := e.breakers[ruleID]
	if !ok {
		br = newBreaker()
		e.breakers[ruleID] = br
	}
	return br
}

func fallbackFinding(detail string) rules.Finding {
	return rules.Finding{
		Code:     CodeRuleNotImplemented,
		Message:  "clause was not analyzed: " + detail,
		Severity: rules.SeverityInfo,
		SpanKind: rules.SpanRelative,
	}
}
