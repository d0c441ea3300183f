// Package analysis orchestrates a document run: segmentation, rule dispatch,
// the cross-check pass, coverage accounting, and the document rollup.
package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"clausecheck/internal/analysis/metrics"
	"clausecheck/internal/audit"
	"clausecheck/internal/coverage"
	"clausecheck/internal/crosscheck"
	"clausecheck/internal/dispatch"
	"clausecheck/internal/rules"
	"clausecheck/internal/segment"
)

// ReportStore persists analysis reports. Implementations live in
// analysis/store; a nil store disables persistence.
type ReportStore interface {
	Save(ctx context.Context, report *Report) error
	Find(ctx context.Context, id string) (*Report, error)
}

// Service wires the analysis pipeline. All pipeline state is per-call; the
// service itself is safe for concurrent use across documents.
type Service struct {
	registry *rules.Registry
	executor *dispatch.Executor
	checks   *crosscheck.Pass
	zones    *coverage.SpecCache
	store    ReportStore
	audit    *audit.Publisher
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New constructs the analysis service. store, auditPub and m may be nil.
func New(
	registry *rules.Registry,
	executor *dispatch.Executor,
	checks *crosscheck.Pass,
	zones *coverage.SpecCache,
	store ReportStore,
	auditPub *audit.Publisher,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry: registry,
		executor: executor,
		checks:   checks,
		zones:    zones,
		store:    store,
		audit:    auditPub,
		logger:   logger,
		metrics:  m,
	}
}

// Evaluate runs the full pipeline over one document. It never fails on
// document content; a caller-supplied timeout aborts between clause
// boundaries and already-computed clause results are returned.
func (s *Service) Evaluate(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()

	clauses := segment.Segment(req.Text)
	results, tel := s.executor.Analyze(ctx, len(req.Text), clauses, req.Jurisdiction, req.Policy)
	results = s.checks.Run(len(req.Text), results)

	var cov *coverage.Report
	if s.zones != nil {
		spec, err := s.zones.Load()
		if err != nil {
			s.logger.Warn("coverage tracking disabled for this run", "error", err)
		} else {
			cov = coverage.Build(spec, clauses, tel.Candidates, tel.Fired, s.registry.Known)
		}
	}

	report := &Report{
		ID:       uuid.NewString(),
		Clauses:  clauses,
		Results:  results,
		Coverage: cov,
		Summary:  Summarize(results),
	}
	if report.Clauses == nil {
		report.Clauses = []segment.Clause{}
	}
	if report.Results == nil {
		report.Results = []dispatch.ClauseResult{}
	}

	elapsed := time.Since(start)
	s.metrics.ObserveAnalysis(elapsed, len(report.Clauses))
	for _, res := range report.Results {
		for _, f := range res.Findings {
			s.metrics.CountFinding(f.Severity.String())
		}
	}

	if s.store != nil {
		if err := s.store.Save(ctx, report); err != nil {
			s.logger.Warn("report save failed", "report_id", report.ID, "error", err)
		}
	}
	if s.audit != nil {
		event := audit.Event{
			ReportID:     report.ID,
			DocumentHash: segment.Digest(req.Text),
			Jurisdiction: req.Jurisdiction,
			Status:       string(report.Summary.Status),
			Risk:         report.Summary.Risk.String(),
			Score:        report.Summary.Score,
			Clauses:      len(report.Clauses),
			Duration:     elapsed,
		}
		if err := s.audit.Emit(ctx, event); err != nil {
			s.logger.Warn("audit emit failed", "report_id", report.ID, "error", err)
		}
	}

	s.logger.Info("document analyzed",
		"report_id", report.ID,
		"clauses", len(report.Clauses),
		"status", report.Summary.Status,
		"risk", report.Summary.Risk,
		"elapsed", elapsed,
	)
	return report, nil
}

// FindReport loads a previously stored report.
func (s *Service) FindReport(ctx context.Context, id string) (*Report, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	return s.store.Find(ctx, id)
}

// ReloadCoverage drops the cached zone specification so the next run
// re-reads it. Returns the load error, if any, so operators get immediate
// feedback on a broken spec.
func (s *Service) ReloadCoverage() error {
	if s.zones == nil {
		return nil
	}
	s.zones.Invalidate()
	_, err := s.zones.Load()
	return err
}
