// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers file and environment sources over the defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/DetroitRed03/chatnil-engine/internal/domain/compliance"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxTopLimit caps GET /v1/matches/top?limit.
	MaxTopLimit int `koanf:"max_top_limit"`

	// DedupeSize sets the size of the idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// BatchMaxItems caps how many items one batch request may carry.
	BatchMaxItems int `koanf:"batch_max_items"`

	// BatchSubBatchSize sets the per-wave concurrency of batch runs.
	BatchSubBatchSize int `koanf:"batch_sub_batch_size"`

	// Weights tunes the compliance scoring dimensions. Must sum to 1.
	Weights compliance.Weights `koanf:"weights"`

	// PostgresDSN enables the PostgreSQL store when set. An empty DSN
	// keeps match and score storage in memory.
	PostgresDSN string `koanf:"postgres_dsn"`

	// KafkaBrokers enables event publishing when non-empty.
	KafkaBrokers []string `koanf:"kafka_brokers"`

	// DealTopic and MatchTopic override the event topic names.
	DealTopic  string `koanf:"deal_topic"`
	MatchTopic string `koanf:"match_topic"`

	// ShutdownTimeoutMS bounds graceful shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		MaxTopLimit:       100,
		DedupeSize:        50_000,
		BatchMaxItems:     2000,
		BatchSubBatchSize: 50,
		Weights:           compliance.DefaultWeights(),
		ShutdownTimeoutMS: 10_000,
	}
}
