package simdeals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
)

// HTTPClient wraps http.Client with a shared timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitDeals posts deal score requests concurrently using a worker pool.
func submitDeals(ctx context.Context, config *Config, deals []model.DealScoreRequest, stats *Stats) error {
	log.Printf("submitting %d deals with %d workers", len(deals), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/v1/deals/score"

	var (
		submitted int64
		approved  int64
		flagged   int64
		rejected  int64
		failed    int64
	)

	dealChan := make(chan model.DealScoreRequest, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for deal := range dealChan {
				select {
				case <-ctx.Done():
					return
				default:
					status := submitSingleDeal(ctx, client, url, deal)

					atomic.AddInt64(&submitted, 1)
					switch status {
					case model.StatusApproved:
						atomic.AddInt64(&approved, 1)
					case model.StatusFlagged:
						atomic.AddInt64(&flagged, 1)
					case model.StatusRejected:
						atomic.AddInt64(&rejected, 1)
					default:
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						log.Printf("deal %s scored %s", deal.Deal.ID, status)
					}
				}
			}
		}()
	}

	go func() {
		defer close(dealChan)
		for _, deal := range deals {
			select {
			case <-ctx.Done():
				return
			case dealChan <- deal:
			}
		}
	}()

	wg.Wait()

	stats.DealsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.DealsApproved = int(atomic.LoadInt64(&approved))
	stats.DealsFlagged = int(atomic.LoadInt64(&flagged))
	stats.DealsRejected = int(atomic.LoadInt64(&rejected))
	stats.DealsFailed = int(atomic.LoadInt64(&failed))

	log.Printf("deal submission completed: approved=%d flagged=%d rejected=%d failed=%d",
		stats.DealsApproved, stats.DealsFlagged, stats.DealsRejected, stats.DealsFailed)

	return nil
}

// submitSingleDeal posts one deal and returns the resulting compliance
// status, or empty string on failure.
func submitSingleDeal(ctx context.Context, client *HTTPClient, url string, deal model.DealScoreRequest) model.ComplianceStatus {
	resp, err := client.Post(ctx, url, deal)
	if err != nil {
		return ""
	}

	body, err := readResponseBody(resp)
	if err != nil || resp.StatusCode != http.StatusOK {
		return ""
	}

	var result model.ComplianceScoreResult
	if err := json.Unmarshal(body, &result); err != nil {
		return ""
	}
	return result.Status
}

// submitMatchJobs posts match jobs concurrently and counts generated matches.
func submitMatchJobs(ctx context.Context, config *Config, jobs []model.MatchJob, stats *Stats) error {
	log.Printf("submitting %d match jobs with %d workers", len(jobs), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/v1/matches/generate"

	var (
		submitted int64
		matches   int64
		failed    int64
	)

	jobChan := make(chan model.MatchJob, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for job := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
					count, ok := submitSingleJob(ctx, client, url, job)

					atomic.AddInt64(&submitted, 1)
					if ok {
						atomic.AddInt64(&matches, int64(count))
					} else {
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						log.Printf("job %s generated %d matches", job.Criteria.AgencyID, count)
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobChan <- job:
			}
		}
	}()

	wg.Wait()

	stats.JobsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.MatchesGenerated = int(atomic.LoadInt64(&matches))
	stats.JobsFailed = int(atomic.LoadInt64(&failed))

	log.Printf("match jobs completed: submitted=%d matches=%d failed=%d",
		stats.JobsSubmitted, stats.MatchesGenerated, stats.JobsFailed)

	return nil
}

// submitSingleJob posts one match job and returns the match count.
func submitSingleJob(ctx context.Context, client *HTTPClient, url string, job model.MatchJob) (int, bool) {
	resp, err := client.Post(ctx, url, job)
	if err != nil {
		return 0, false
	}

	body, err := readResponseBody(resp)
	if err != nil || resp.StatusCode != http.StatusOK {
		return 0, false
	}

	var result matchListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, false
	}
	return result.Count, true
}
