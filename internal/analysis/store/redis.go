package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clausecheck/internal/analysis"
)

// reportKeyPrefix namespaces report keys in a shared Redis.
const reportKeyPrefix = "clausecheck:report:"

// Redis is a Redis-backed report store for deployments where multiple
// instances serve report lookups.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed report store.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Save serializes the report as JSON under its id with the store TTL.
func (r *Redis) Save(ctx context.Context, report *analysis.Report) error {
	if report == nil {
		return nil
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return r.client.Set(ctx, reportKeyPrefix+report.ID, payload, r.ttl).Err()
}

// Find loads a report by id. Missing or expired keys map to ErrNotFound.
func (r *Redis) Find(ctx context.Context, id string) (*analysis.Report, error) {
	payload, err := r.client.Get(ctx, reportKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	var report analysis.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}
