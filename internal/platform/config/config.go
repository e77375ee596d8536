package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	dErrors "scanhub/pkg/domain-errors"
)

// Config is assembled once at process start and passed into the components
// that need it. Business code never reads the environment directly.
type Config struct {
	Addr string

	// PostgresURL backs the lifecycle event store. Required.
	PostgresURL string

	// RedisURL backs the reference-data cache. Optional; empty disables caching.
	RedisURL string

	// RefDataBaseURL is the reference-data service consulted for organisation
	// codes and prosecutor short names. Required.
	RefDataBaseURL string
	// RefDataTimeout bounds each reference-data lookup. Lookups that exceed it
	// are treated as absent, not as failures.
	RefDataTimeout time.Duration
	// RefDataCacheTTL enforces retention for cached reference data.
	RefDataCacheTTL time.Duration

	// CaseServiceBaseURL is the case-management service queried by the
	// reconcilers. Required.
	CaseServiceBaseURL string
	CaseServiceTimeout time.Duration

	// KafkaBrokers receives outbound lifecycle events. Optional; empty falls
	// back to a log-only publisher.
	KafkaBrokers []string
	KafkaTopic   string

	// IngestConcurrency bounds parallel document normalization per envelope.
	IngestConcurrency int
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:               getenv("SCANHUB_ADDR", ":8080"),
		PostgresURL:        os.Getenv("SCANHUB_POSTGRES_URL"),
		RedisURL:           os.Getenv("SCANHUB_REDIS_URL"),
		RefDataBaseURL:     os.Getenv("SCANHUB_REFDATA_URL"),
		RefDataTimeout:     getduration("SCANHUB_REFDATA_TIMEOUT", 5*time.Second),
		RefDataCacheTTL:    getduration("SCANHUB_REFDATA_CACHE_TTL", 12*time.Hour),
		CaseServiceBaseURL: os.Getenv("SCANHUB_CASE_SERVICE_URL"),
		CaseServiceTimeout: getduration("SCANHUB_CASE_SERVICE_TIMEOUT", 10*time.Second),
		KafkaBrokers:       getlist("SCANHUB_KAFKA_BROKERS"),
		KafkaTopic:         getenv("SCANHUB_KAFKA_TOPIC", "scanhub.lifecycle.events"),
		IngestConcurrency:  getint("SCANHUB_INGEST_CONCURRENCY", 4),
	}
}

// Validate fails fast on missing required endpoints. Configuration problems
// are fatal at startup and never retried.
func (c Config) Validate() error {
	if c.PostgresURL == "" {
		return dErrors.New(dErrors.CodeConfig, "SCANHUB_POSTGRES_URL is required")
	}
	if c.RefDataBaseURL == "" {
		return dErrors.New(dErrors.CodeConfig, "SCANHUB_REFDATA_URL is required")
	}
	if c.CaseServiceBaseURL == "" {
		return dErrors.New(dErrors.CodeConfig, "SCANHUB_CASE_SERVICE_URL is required")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getlist(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
