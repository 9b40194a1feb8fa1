package app

import (
	"github.com/DetroitRed03/chatnil-engine/internal/adapters/events"
	"github.com/DetroitRed03/chatnil-engine/internal/adapters/repository"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/compliance"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/dedupe"
)

// settings collects construction-time knobs for the Service.
type settings struct {
	store             repository.Store
	publisher         events.Publisher
	deduper           dedupe.Deduper
	weights           compliance.Weights
	batchMaxItems     int
	batchSubBatchSize int
}

func defaultSettings() settings {
	return settings{
		weights:           compliance.DefaultWeights(),
		batchMaxItems:     2000,
		batchSubBatchSize: 50,
	}
}

// Option applies a configuration option to the Service.
type Option func(*settings)

// WithStore sets the persistence backend.
func WithStore(store repository.Store) Option {
	return func(s *settings) {
		s.store = store
	}
}

// WithPublisher sets the event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(s *settings) {
		s.publisher = p
	}
}

// WithDeduper sets the idempotency cache shared by batch runs.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *settings) {
		s.deduper = d
	}
}

// WithWeights tunes the compliance scoring dimensions.
func WithWeights(w compliance.Weights) Option {
	return func(s *settings) {
		s.weights = w
	}
}

// WithBatchLimits caps batch size and per-wave concurrency.
func WithBatchLimits(maxItems, subBatchSize int) Option {
	return func(s *settings) {
		if maxItems > 0 {
			s.batchMaxItems = maxItems
		}
		if subBatchSize > 0 {
			s.batchSubBatchSize = subBatchSize
		}
	}
}
