package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clausecheck/internal/analysis"
	"clausecheck/internal/analysis/handler"
	analysismetrics "clausecheck/internal/analysis/metrics"
	"clausecheck/internal/analysis/store"
	"clausecheck/internal/audit"
	"clausecheck/internal/coverage"
	"clausecheck/internal/crosscheck"
	"clausecheck/internal/dispatch"
	"clausecheck/internal/platform/config"
	"clausecheck/internal/platform/httpserver"
	"clausecheck/internal/platform/logger"
	"clausecheck/internal/platform/middleware"
	platformredis "clausecheck/internal/platform/redis"
	"clausecheck/internal/rules"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reportStore, cleanup, err := buildReportStore(cfg)
	if err != nil {
		log.Error("report store init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	inbox := make(chan audit.Event, 256)
	auditStore := audit.NewMemoryStore()
	auditWorker := audit.NewWorker(auditStore, inbox)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()
	publisher := audit.NewPublisher(audit.NewChannelStore(inbox, auditStore))

	registry := rules.NewRegistry()
	executor := dispatch.NewExecutor(registry, cfg.RuleBudget, log)
	checks := crosscheck.New(log)

	zones := buildCoverage(cfg.CoverageSpecPath, log)

	svc := analysis.New(registry, executor, checks, zones, reportStore, publisher, log, analysismetrics.New())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	handler.New(svc, log, handler.WithBatchParallelism(cfg.BatchParallelism)).Register(r)

	srv := httpserver.New(cfg.Addr, r)

	go func() {
		log.Info("starting clausecheck", "addr", cfg.Addr, "rule_budget", cfg.RuleBudget.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// buildCoverage prepares the zone spec cache. An invalid spec disables
// coverage rather than aborting startup: every analysis retries Load, so
// fixing the file (or POST /coverage/reload) restores coverage without a
// restart.
func buildCoverage(path string, log *slog.Logger) *coverage.SpecCache {
	if path == "" {
		return nil
	}
	zones := coverage.NewSpecCache(path)
	if _, err := zones.Load(); err != nil {
		log.Warn("coverage spec invalid, starting with coverage disabled",
			"path", path, "error", err)
	}
	return zones
}

// buildReportStore picks the persistence backend: postgres when configured,
// then redis, then in-process memory.
func buildReportStore(cfg config.Server) (analysis.ReportStore, func(), error) {
	noop := func() {}

	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return nil, noop, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, noop, err
		}
		return store.NewPostgres(db), func() { db.Close() }, nil
	}

	if cfg.RedisURL != "" {
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return store.NewRedis(client.Client, cfg.ReportTTL), func() { client.Close() }, nil
	}

	return store.NewMemory(cfg.ReportTTL), noop, nil
}
