package analysis

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrStoreDisabled is returned when report persistence is not configured.
var ErrStoreDisabled = errors.New("report store disabled")

// defaultBatchParallelism bounds concurrent documents when the caller does
// not choose a limit.
const defaultBatchParallelism = 4

// EvaluateBatch analyzes independent documents in parallel with a bounded
// fan-out. Each document run stays single-threaded internally, so the only
// shared state is the read-only registry and zone spec. Results come back in
// request order regardless of completion order.
func (s *Service) EvaluateBatch(ctx context.Context, reqs []Request, parallelism int) ([]*Report, error) {
	if parallelism <= 0 {
		parallelism = defaultBatchParallelism
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	reports := make([]*Report, len(reqs))
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			report, err := s.Evaluate(ctx, req)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}
