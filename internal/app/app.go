// Package app wires the domain engines, stores and publishers into the
// service surface the HTTP layer depends on.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/adapters/events"
	"github.com/DetroitRed03/chatnil-engine/internal/adapters/repository"
	"github.com/DetroitRed03/chatnil-engine/internal/batch"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/compliance"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/dedupe"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/matching"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/staterules"
	"github.com/DetroitRed03/chatnil-engine/pkg/logger"
	"github.com/DetroitRed03/chatnil-engine/pkg/metrics"
)

// Service bundles the engines behind the API surface.
type Service struct {
	scorer  *compliance.Scorer
	checker *compliance.CheckEngine
	matcher *matching.Engine

	store     repository.Store
	publisher events.Publisher
	deduper   dedupe.Deduper

	scoreRunner *batch.Runner[model.DealScoreRequest]
	matchRunner *batch.Runner[model.MatchJob]

	logger logger.Logger
}

// NewService builds the service around a state rules registry.
func NewService(registry staterules.Registry, opts ...Option) (*Service, error) {
	s := &Service{
		checker: compliance.NewCheckEngine(registry),
		matcher: matching.NewEngine(),
		logger:  logger.Get().Named("app"),
	}

	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}

	scorer, err := compliance.NewScorer(registry, compliance.WithWeights(cfg.weights))
	if err != nil {
		return nil, fmt.Errorf("build scorer: %w", err)
	}
	s.scorer = scorer

	s.store = cfg.store
	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	s.publisher = cfg.publisher
	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	s.deduper = cfg.deduper
	if s.deduper == nil {
		s.deduper = dedupe.NewInMemoryDeduper()
	}

	s.scoreRunner, err = batch.NewRunner(
		s.scoreOne,
		func(item model.DealScoreRequest) string { return dedupe.DealKey(item.Deal.ID) },
		batch.WithMaxItems[model.DealScoreRequest](cfg.batchMaxItems),
		batch.WithSubBatchSize[model.DealScoreRequest](cfg.batchSubBatchSize),
		batch.WithDeduper[model.DealScoreRequest](s.deduper),
	)
	if err != nil {
		return nil, fmt.Errorf("build score runner: %w", err)
	}

	// Match jobs are not deduplicated: the same agency may legitimately
	// rerun matching against a fresh candidate pool.
	s.matchRunner, err = batch.NewRunner(
		s.matchOne,
		func(job model.MatchJob) string { return "matchjob:" + job.Criteria.AgencyID },
		batch.WithMaxItems[model.MatchJob](cfg.batchMaxItems),
		batch.WithSubBatchSize[model.MatchJob](cfg.batchSubBatchSize),
	)
	if err != nil {
		return nil, fmt.Errorf("build match runner: %w", err)
	}

	return s, nil
}

// ScoreDeal scores a deal, persists the result and emits an event.
func (s *Service) ScoreDeal(ctx context.Context, req model.DealScoreRequest) (model.ComplianceScoreResult, error) {
	start := time.Now()
	result, err := s.scorer.Score(ctx, req.Deal, req.Athlete)
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordError("app", "scoring_failed")
		return model.ComplianceScoreResult{}, err
	}

	if _, err := s.store.SaveScore(ctx, result); err != nil {
		metrics.RecordError("app", "score_persist_failed")
		return model.ComplianceScoreResult{}, fmt.Errorf("persist score: %w", err)
	}
	metrics.RecordDealScored(string(result.Status))

	// Event delivery is best effort; the scoring outcome stands either way.
	if err := s.publisher.PublishDealScored(ctx, result); err != nil {
		s.logger.Warn(ctx, "deal scored event not delivered",
			logger.String("deal_id", result.DealID),
			logger.Error(err),
		)
	}
	return result, nil
}

// CheckCompliance runs the binary pre-deal check.
func (s *Service) CheckCompliance(ctx context.Context, params model.ComplianceCheckParams) (model.ComplianceCheckResult, error) {
	result := s.checker.Check(ctx, params)
	metrics.RecordComplianceCheck(result.Compliant)
	return result, nil
}

// GenerateMatches ranks a candidate pool and persists the suggestions.
func (s *Service) GenerateMatches(ctx context.Context, job model.MatchJob) ([]model.MatchResult, error) {
	results, _, err := s.generateAndPersist(ctx, job)
	return results, err
}

func (s *Service) generateAndPersist(ctx context.Context, job model.MatchJob) ([]model.MatchResult, int, error) {
	start := time.Now()
	results, err := s.matcher.Match(ctx, job.Criteria, job.Candidates, job.MinScore, job.Limit)
	metrics.RecordMatchingLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordError("app", "matching_failed")
		return nil, 0, err
	}

	created := 0
	for _, m := range results {
		wasCreated, err := s.store.UpsertSuggested(ctx, m)
		if err != nil {
			metrics.RecordError("app", "match_persist_failed")
			return nil, created, fmt.Errorf("persist match %s/%s: %w", m.AgencyID, m.AthleteID, err)
		}
		if wasCreated {
			created++
		}
		metrics.RecordMatchGenerated(m.MatchScore)

		if err := s.publisher.PublishMatchGenerated(ctx, m); err != nil {
			s.logger.Warn(ctx, "match generated event not delivered",
				logger.String("agency_id", m.AgencyID),
				logger.String("athlete_id", m.AthleteID),
				logger.Error(err),
			)
		}
	}
	return results, created, nil
}

// TopMatches returns stored matches for an agency, best first.
func (s *Service) TopMatches(ctx context.Context, agencyID string, limit int) ([]model.MatchResult, error) {
	return s.store.TopMatches(ctx, agencyID, limit)
}

// ScoreDealBatch scores many deals in one run.
func (s *Service) ScoreDealBatch(ctx context.Context, items []model.DealScoreRequest) (*batch.Summary, error) {
	return s.scoreRunner.Run(ctx, items)
}

// GenerateMatchBatch runs many match jobs in one run.
func (s *Service) GenerateMatchBatch(ctx context.Context, jobs []model.MatchJob) (*batch.Summary, error) {
	return s.matchRunner.Run(ctx, jobs)
}

// GetStats exposes service statistics for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	stats := map[string]interface{}{
		"matches_stored": s.store.Count(ctx),
		"deals_scored":   s.store.ScoreCount(ctx),
		"dedupe_size":    s.deduper.Size(),
	}
	return stats
}

// scoreOne is the batch processor for deal scoring.
func (s *Service) scoreOne(ctx context.Context, item model.DealScoreRequest) (batch.Outcome, error) {
	start := time.Now()
	result, err := s.scorer.Score(ctx, item.Deal, item.Athlete)
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return "", err
	}

	created, err := s.store.SaveScore(ctx, result)
	if err != nil {
		return "", fmt.Errorf("persist score: %w", err)
	}
	metrics.RecordDealScored(string(result.Status))

	if err := s.publisher.PublishDealScored(ctx, result); err != nil {
		s.logger.Warn(ctx, "deal scored event not delivered",
			logger.String("deal_id", result.DealID),
			logger.Error(err),
		)
	}

	if created {
		return batch.OutcomeCreated, nil
	}
	return batch.OutcomeUpdated, nil
}

// matchOne is the batch processor for match jobs.
func (s *Service) matchOne(ctx context.Context, job model.MatchJob) (batch.Outcome, error) {
	results, created, err := s.generateAndPersist(ctx, job)
	if err != nil {
		return "", err
	}
	switch {
	case len(results) == 0:
		return batch.OutcomeSkipped, nil
	case created > 0:
		return batch.OutcomeCreated, nil
	default:
		return batch.OutcomeUpdated, nil
	}
}
