package batch

import (
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/dedupe"
	"github.com/DetroitRed03/chatnil-engine/pkg/logger"
)

// Option applies a configuration option to the Runner.
type Option[T any] func(*Runner[T])

// WithMaxItems caps how many items a single run may carry.
func WithMaxItems[T any](n int) Option[T] {
	return func(r *Runner[T]) {
		if n > 0 {
			r.maxItems = n
		}
	}
}

// WithSubBatchSize sets how many items are processed concurrently
// per fan-out wave.
func WithSubBatchSize[T any](n int) Option[T] {
	return func(r *Runner[T]) {
		if n > 0 {
			r.subBatchSize = n
		}
	}
}

// WithStopOnFirstFailure aborts the run after the first sub-batch
// that contains a failed item. Remaining items are marked skipped.
func WithStopOnFirstFailure[T any](stop bool) Option[T] {
	return func(r *Runner[T]) {
		r.stopOnFirstFailure = stop
	}
}

// WithDeduper enables idempotency tracking across runs.
func WithDeduper[T any](d dedupe.Deduper) Option[T] {
	return func(r *Runner[T]) {
		r.deduper = d
	}
}

// WithClock overrides the time source, for tests.
func WithClock[T any](clock func() time.Time) Option[T] {
	return func(r *Runner[T]) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger[T any](l logger.Logger) Option[T] {
	return func(r *Runner[T]) {
		if l != nil {
			r.logger = l
		}
	}
}
