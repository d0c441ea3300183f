package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clausecheck/internal/analysis"
)

// Postgres persists reports in PostgreSQL as JSON payloads.
//
// Expected schema:
//
//	CREATE TABLE analysis_reports (
//	    id         TEXT PRIMARY KEY,
//	    payload    JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type Postgres struct {
	db    *sql.DB
	clock func() time.Time
}

// PostgresOption configures a Postgres store.
type PostgresOption func(*Postgres)

// WithPostgresClock sets the clock function for testability.
func WithPostgresClock(clock func() time.Time) PostgresOption {
	return func(p *Postgres) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// NewPostgres constructs a PostgreSQL-backed report store.
func NewPostgres(db *sql.DB, opts ...PostgresOption) *Postgres {
	p := &Postgres{db: db, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Save upserts the report by id.
func (p *Postgres) Save(ctx context.Context, report *analysis.Report) error {
	if report == nil {
		return nil
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	query := `
		INSERT INTO analysis_reports (id, payload, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			payload = EXCLUDED.payload,
			created_at = EXCLUDED.created_at
	`
	if _, err := p.db.ExecContext(ctx, query, report.ID, payload, p.clock()); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// Find loads a report by id.
func (p *Postgres) Find(ctx context.Context, id string) (*analysis.Report, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT payload FROM analysis_reports WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	var report analysis.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}
