package simdeals

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/DetroitRed03/chatnil-engine/pkg/logger"
)

// Run executes the complete simulated load: score deals, generate matches,
// then read back the top matches per agency.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting simulated deal run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("deals", config.NumDeals),
		logger.Int("jobs", config.NumJobs),
		logger.Int("poolSize", config.PoolSize),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate and submit deal score requests
	deals, err := generateDeals(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("deal generation failed: %w", err)
	}
	if err := submitDeals(ctx, config, deals, stats); err != nil {
		return fmt.Errorf("deal submission failed: %w", err)
	}

	// Step 3: Generate and submit match jobs
	jobs, err := generateMatchJobs(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("match job generation failed: %w", err)
	}
	if err := submitMatchJobs(ctx, config, jobs, stats); err != nil {
		return fmt.Errorf("match job submission failed: %w", err)
	}

	// Step 4: Read back the top matches per agency
	if err := fetchTopMatches(ctx, config, jobs, stats); err != nil {
		return fmt.Errorf("top match retrieval failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	healthURL := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, healthURL)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != 200 {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// fetchTopMatches reads back the persisted top matches for every agency
// that submitted a job, exercising the read path after the writes.
func fetchTopMatches(ctx context.Context, config *Config, jobs []model.MatchJob, stats *Stats) error {
	logger.Get().Info(ctx, "fetching top matches per agency", logger.Int("agencies", len(jobs)))

	client := newHTTPClient(config.Timeout)

	fetched := 0
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		query := url.Values{}
		query.Set("agency_id", job.Criteria.AgencyID)
		query.Set("limit", strconv.Itoa(config.TopN))
		topURL := config.BaseURL + "/v1/matches/top?" + query.Encode()

		resp, err := client.Get(ctx, topURL)
		if err != nil {
			log.Printf("top matches fetch failed for %s: %v", job.Criteria.AgencyID, err)
			continue
		}

		body, err := readResponseBody(resp)
		if err != nil || resp.StatusCode != 200 {
			log.Printf("top matches fetch failed for %s: status %d", job.Criteria.AgencyID, resp.StatusCode)
			continue
		}

		var result matchListResponse
		if err := json.Unmarshal(body, &result); err != nil {
			log.Printf("top matches decode failed for %s: %v", job.Criteria.AgencyID, err)
			continue
		}

		fetched += result.Count
		if !isSortedByScore(result.Matches) {
			log.Printf("ORDERING VIOLATION: top matches for %s not sorted by score", job.Criteria.AgencyID)
		}
		if config.Verbose && result.Count > 0 {
			log.Printf("top matches for %s:\n%s", job.Criteria.AgencyID, marshalIndent(result.Matches))
		}
	}

	stats.TopMatchesFetched = fetched
	logger.Get().Info(ctx, "fetched top matches", logger.Int("count", fetched))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var dealsPerSecond float64
	if stats.Duration > 0 {
		dealsPerSecond = float64(stats.DealsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("dealsGenerated", stats.DealsGenerated),
		logger.Int("dealsSubmitted", stats.DealsSubmitted),
		logger.Int("dealsApproved", stats.DealsApproved),
		logger.Int("dealsFlagged", stats.DealsFlagged),
		logger.Int("dealsRejected", stats.DealsRejected),
		logger.Int("dealsFailed", stats.DealsFailed),
		logger.Int("jobsSubmitted", stats.JobsSubmitted),
		logger.Int("matchesGenerated", stats.MatchesGenerated),
		logger.Int("jobsFailed", stats.JobsFailed),
		logger.Int("topMatchesFetched", stats.TopMatchesFetched),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("dealsPerSecond", dealsPerSecond))
}

// isSortedByScore verifies the ranked-read invariant: scores descending,
// ties broken by follower count descending, then athlete id ascending.
func isSortedByScore(matches []model.MatchResult) bool {
	for i := 1; i < len(matches); i++ {
		prev, cur := matches[i-1], matches[i]
		if cur.MatchScore > prev.MatchScore {
			return false
		}
		if cur.MatchScore == prev.MatchScore {
			if cur.FollowerCount > prev.FollowerCount {
				return false
			}
			if cur.FollowerCount == prev.FollowerCount && cur.AthleteID < prev.AthleteID {
				return false
			}
		}
	}
	return true
}

// marshalIndent renders verbose dumps of fetched matches.
func marshalIndent(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
