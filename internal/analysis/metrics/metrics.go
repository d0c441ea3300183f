package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the analysis pipeline. All
// observe methods are nil-safe so tests can pass a nil *Metrics.
type Metrics struct {
	DocumentsAnalyzed  prometheus.Counter
	AnalysisDurationMs prometheus.Histogram
	ClausesPerDocument prometheus.Histogram
	FindingsBySeverity *prometheus.CounterVec
}

// New creates and registers the analysis metrics.
func New() *Metrics {
	return &Metrics{
		DocumentsAnalyzed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clausecheck_documents_analyzed_total",
			Help: "Total number of documents run through the analysis pipeline",
		}),
		AnalysisDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "clausecheck_analysis_duration_ms",
			Help:    "End-to-end analysis latency per document in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		ClausesPerDocument: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "clausecheck_clauses_per_document",
			Help:    "Number of clauses segmented per document",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		FindingsBySeverity: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clausecheck_findings_total",
			Help: "Findings emitted, partitioned by severity",
		}, []string{"severity"}),
	}
}

// ObserveAnalysis records one completed document run.
func (m *Metrics) ObserveAnalysis(elapsed time.Duration, clauses int) {
	if m == nil {
		return
	}
	m.DocumentsAnalyzed.Inc()
	m.AnalysisDurationMs.Observe(float64(elapsed.Microseconds()) / 1000.0)
	m.ClausesPerDocument.Observe(float64(clauses))
}

// CountFinding records one finding by severity.
func (m *Metrics) CountFinding(severity string) {
	if m == nil {
		return
	}
	m.FindingsBySeverity.WithLabelValues(severity).Inc()
}
