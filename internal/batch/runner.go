// Package batch runs bounded collections of work items through a
// processor with sub-batch fan-out, per-item outcomes and an
// aggregate summary.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/dedupe"
	"github.com/DetroitRed03/chatnil-engine/pkg/logger"
	"github.com/DetroitRed03/chatnil-engine/pkg/metrics"
)

// Default runner configuration constants.
const (
	defaultMaxItems     = 2000
	defaultSubBatchSize = 50
	maxSummaryResults   = 100
)

// Outcome classifies what happened to a single batch item.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// ItemResult is the per-item record of a batch run.
type ItemResult struct {
	Key     string  `json:"key"`
	Index   int     `json:"index"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
}

// Summary aggregates a completed batch run. Results holds at most the
// first maxSummaryResults item results; Errors always holds every
// failure message.
type Summary struct {
	RunID      string       `json:"run_id"`
	Total      int          `json:"total"`
	Created    int          `json:"created"`
	Updated    int          `json:"updated"`
	Skipped    int          `json:"skipped"`
	Failed     int          `json:"failed"`
	Results    []ItemResult `json:"results"`
	Errors     []string     `json:"errors,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
}

// Duration reports how long the run took.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// ProcessFunc handles one item. The returned outcome should be
// OutcomeCreated, OutcomeUpdated or OutcomeSkipped; a non-nil error
// forces OutcomeFailed regardless of the returned outcome.
type ProcessFunc[T any] func(ctx context.Context, item T) (Outcome, error)

// KeyFunc derives the idempotency key for an item.
type KeyFunc[T any] func(item T) string

// Runner fans items out to a processor in fixed-size sub-batches.
type Runner[T any] struct {
	process ProcessFunc[T]
	key     KeyFunc[T]

	maxItems           int
	subBatchSize       int
	stopOnFirstFailure bool
	deduper            dedupe.Deduper
	clock              func() time.Time
	logger             logger.Logger
}

// NewRunner creates a batch runner for the given processor.
func NewRunner[T any](process ProcessFunc[T], key KeyFunc[T], opts ...Option[T]) (*Runner[T], error) {
	if process == nil {
		return nil, ErrNilProcessor
	}

	r := &Runner[T]{
		process:      process,
		key:          key,
		maxItems:     defaultMaxItems,
		subBatchSize: defaultSubBatchSize,
		clock:        time.Now,
		logger:       logger.Get().Named("batch"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes the batch and returns its summary. Item order in the
// summary follows input order regardless of fan-out scheduling.
func (r *Runner[T]) Run(ctx context.Context, items []T) (*Summary, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(items) > r.maxItems {
		return nil, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(items), r.maxItems)
	}

	runID := uuid.NewString()
	started := r.clock()
	results := make([]ItemResult, len(items))

	r.logger.Info(ctx, "batch run started",
		logger.String("run_id", runID),
		logger.Int("items", len(items)),
	)
	metrics.RecordBatchRun()

	aborted := false
	for lo := 0; lo < len(items); lo += r.subBatchSize {
		if aborted || ctx.Err() != nil {
			for i := lo; i < len(items); i++ {
				results[i] = ItemResult{
					Key:     r.keyFor(items[i]),
					Index:   i,
					Outcome: OutcomeSkipped,
					Error:   "batch aborted before item was processed",
				}
			}
			break
		}

		hi := lo + r.subBatchSize
		if hi > len(items) {
			hi = len(items)
		}

		var wg sync.WaitGroup
		for i := lo; i < hi; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = r.runItem(ctx, idx, items[idx])
			}(i)
		}
		wg.Wait()

		if r.stopOnFirstFailure {
			for i := lo; i < hi; i++ {
				if results[i].Outcome == OutcomeFailed {
					aborted = true
					break
				}
			}
		}
	}

	summary := r.summarize(runID, started, results)

	metrics.RecordBatchDuration(float64(summary.Duration().Milliseconds()))
	r.logger.Info(ctx, "batch run finished",
		logger.String("run_id", runID),
		logger.Int("created", summary.Created),
		logger.Int("updated", summary.Updated),
		logger.Int("skipped", summary.Skipped),
		logger.Int("failed", summary.Failed),
	)
	return summary, nil
}

// runItem processes one item, honoring deduplication when configured.
func (r *Runner[T]) runItem(ctx context.Context, idx int, item T) ItemResult {
	key := r.keyFor(item)
	res := ItemResult{Key: key, Index: idx}

	if ctx.Err() != nil {
		res.Outcome = OutcomeSkipped
		res.Error = ctx.Err().Error()
		return res
	}

	recorded := false
	if r.deduper != nil && key != "" {
		if r.deduper.SeenAndRecord(ctx, key) {
			res.Outcome = OutcomeSkipped
			return res
		}
		recorded = true
	}

	outcome, err := r.process(ctx, item)
	if err != nil {
		if recorded {
			// Let the item be retried on a later run.
			r.deduper.Unrecord(ctx, key)
		}
		res.Outcome = OutcomeFailed
		res.Error = err.Error()
		metrics.RecordBatchItem(string(OutcomeFailed))
		metrics.RecordError("batch", "item_failed")
		r.logger.Warn(ctx, "batch item failed",
			logger.String("key", key),
			logger.Error(err),
		)
		return res
	}

	if outcome == "" || outcome == OutcomeFailed {
		outcome = OutcomeUpdated
	}
	res.Outcome = outcome
	metrics.RecordBatchItem(string(outcome))
	return res
}

func (r *Runner[T]) keyFor(item T) string {
	if r.key == nil {
		return ""
	}
	return r.key(item)
}

func (r *Runner[T]) summarize(runID string, started time.Time, results []ItemResult) *Summary {
	s := &Summary{
		RunID:     runID,
		Total:     len(results),
		StartedAt: started,
	}
	for _, res := range results {
		switch res.Outcome {
		case OutcomeCreated:
			s.Created++
		case OutcomeUpdated:
			s.Updated++
		case OutcomeSkipped:
			s.Skipped++
		case OutcomeFailed:
			s.Failed++
			s.Errors = append(s.Errors, fmt.Sprintf("%s: %s", res.Key, res.Error))
		}
	}

	kept := len(results)
	if kept > maxSummaryResults {
		kept = maxSummaryResults
	}
	s.Results = append([]ItemResult(nil), results[:kept]...)
	s.FinishedAt = r.clock()
	return s
}
