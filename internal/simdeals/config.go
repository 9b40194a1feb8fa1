package simdeals

import (
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
)

// Config holds configuration for the simulated load run.
type Config struct {
	BaseURL  string        // Base URL of the service
	NumDeals int           // Number of deal score requests to generate
	NumJobs  int           // Number of match jobs to generate
	PoolSize int           // Candidate pool size per match job
	TopN     int           // Number of top matches to fetch per agency
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for run output
	Verbose  bool          // Enable verbose logging
}

// matchListResponse mirrors the match endpoints' list shape.
type matchListResponse struct {
	Matches []model.MatchResult `json:"matches"`
	Count   int                 `json:"count"`
}

// Stats holds run statistics.
type Stats struct {
	DealsGenerated int
	DealsSubmitted int
	DealsApproved  int
	DealsFlagged   int
	DealsRejected  int
	DealsFailed    int

	JobsGenerated    int
	JobsSubmitted    int
	MatchesGenerated int
	JobsFailed       int

	TopMatchesFetched int

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
