package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr             string
	RuleBudget       time.Duration
	CoverageSpecPath string
	BatchParallelism int
	ReportTTL        time.Duration
	RedisURL         string
	PostgresURL      string
	Redis            RedisConfig
}

// RedisConfig tunes the go-redis client pool.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CLAUSECHECK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	budget := 20 * time.Millisecond
	if ms := envInt("RULE_BUDGET_MS", 0); ms > 0 {
		budget = time.Duration(ms) * time.Millisecond
	}

	ttl := 24 * time.Hour
	if hours := envInt("REPORT_TTL_HOURS", 0); hours > 0 {
		ttl = time.Duration(hours) * time.Hour
	}

	redisURL := os.Getenv("REDIS_URL")

	return Server{
		Addr:             addr,
		RuleBudget:       budget,
		CoverageSpecPath: os.Getenv("COVERAGE_SPEC_PATH"),
		BatchParallelism: envInt("BATCH_PARALLELISM", 4),
		ReportTTL:        ttl,
		RedisURL:         redisURL,
		PostgresURL:      os.Getenv("POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          redisURL,
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
