//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"clausecheck/internal/analysis"
	"clausecheck/internal/analysis/store"
	"clausecheck/internal/dispatch"
	"clausecheck/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.Redis
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = store.NewRedis(s.redis.Client, time.Hour)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) sampleReport(id string) *analysis.Report {
	return &analysis.Report{
		ID: id,
		Results: []dispatch.ClauseResult{{
			ClauseID:   "c1",
			ClauseType: "termination",
			Status:     dispatch.StatusWarn,
			Risk:       dispatch.RiskHigh,
			Score:      65,
		}},
		Summary: analysis.Summary{
			Status: dispatch.StatusWarn,
			Risk:   dispatch.RiskHigh,
			Score:  65,
		},
	}
}

func (s *RedisStoreSuite) TestSaveFindRoundTrip() {
	ctx := context.Background()
	report := s.sampleReport("report-1")

	s.Require().NoError(s.store.Save(ctx, report))

	found, err := s.store.Find(ctx, "report-1")
	s.Require().NoError(err)
	s.Equal(report.ID, found.ID)
	s.Equal(report.Summary, found.Summary)
	s.Require().Len(found.Results, 1)
	s.Equal(dispatch.RiskHigh, found.Results[0].Risk)
}

func (s *RedisStoreSuite) TestFindMissing() {
	_, err := s.store.Find(context.Background(), "absent")
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *RedisStoreSuite) TestSaveRespectsTTL() {
	ctx := context.Background()
	short := store.NewRedis(s.redis.Client, 50*time.Millisecond)

	s.Require().NoError(short.Save(ctx, s.sampleReport("ephemeral")))
	time.Sleep(100 * time.Millisecond)

	_, err := short.Find(ctx, "ephemeral")
	s.ErrorIs(err, store.ErrNotFound)
}
