package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/DetroitRed03/chatnil-engine/pkg/metrics"
)

const defaultMetricsUpdateInterval = 15 * time.Second

var _ Store = (*MemStore)(nil)

// MemStore is an in-memory Store implementation.
//
// Matches are kept per agency, keyed by athlete id. Ordering for
// TopMatches: score DESC, then athlete id ASC (deterministic).
type MemStore struct {
	mu      sync.RWMutex
	matches map[string]map[string]model.MatchResult // agencyID -> athleteID -> match
	scores  map[string]model.ComplianceScoreResult  // dealID -> score

	metricsUpdateInterval time.Duration
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{
		matches:               make(map[string]map[string]model.MatchResult),
		scores:                make(map[string]model.ComplianceScoreResult),
		metricsUpdateInterval: defaultMetricsUpdateInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the background metrics updater until ctx is canceled.
func (s *MemStore) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.UpdateStoreRecordsTotal(s.Count(ctx) + s.ScoreCount(ctx))
			}
		}
	}()
}

func (s *MemStore) UpsertSuggested(ctx context.Context, m model.MatchResult) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	byAthlete, ok := s.matches[m.AgencyID]
	if !ok {
		byAthlete = make(map[string]model.MatchResult)
		s.matches[m.AgencyID] = byAthlete
	}

	existing, exists := byAthlete[m.AthleteID]
	if exists && existing.Status != model.MatchSuggested {
		// Keep the workflow state an agency user has set.
		m.Status = existing.Status
	}
	byAthlete[m.AthleteID] = m

	if exists {
		metrics.RecordStoreUpsert("updated")
		return false, nil
	}
	metrics.RecordStoreUpsert("created")
	return true, nil
}

func (s *MemStore) SetStatus(ctx context.Context, agencyID, athleteID string, status model.MatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byAthlete, ok := s.matches[agencyID]
	if !ok {
		return ErrNotFound
	}
	m, ok := byAthlete[athleteID]
	if !ok {
		return ErrNotFound
	}
	m.Status = status
	byAthlete[athleteID] = m
	return nil
}

func (s *MemStore) Get(ctx context.Context, agencyID, athleteID string) (model.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if byAthlete, ok := s.matches[agencyID]; ok {
		if m, ok := byAthlete[athleteID]; ok {
			return m, nil
		}
	}
	return model.MatchResult{}, ErrNotFound
}

func (s *MemStore) TopMatches(ctx context.Context, agencyID string, limit int) ([]model.MatchResult, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}

	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	byAthlete := s.matches[agencyID]
	out := make([]model.MatchResult, 0, len(byAthlete))
	for _, m := range byAthlete {
		out = append(out, m)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		if out[i].FollowerCount != out[j].FollowerCount {
			return out[i].FollowerCount > out[j].FollowerCount
		}
		return out[i].AthleteID < out[j].AthleteID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, byAthlete := range s.matches {
		total += len(byAthlete)
	}
	return total
}

func (s *MemStore) SaveScore(ctx context.Context, result model.ComplianceScoreResult) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.scores[result.DealID]
	s.scores[result.DealID] = result
	if exists {
		metrics.RecordStoreUpsert("updated")
		return false, nil
	}
	metrics.RecordStoreUpsert("created")
	return true, nil
}

func (s *MemStore) GetScore(ctx context.Context, dealID string) (model.ComplianceScoreResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.scores[dealID]; ok {
		return r, nil
	}
	return model.ComplianceScoreResult{}, ErrNotFound
}

func (s *MemStore) ScoreCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scores)
}
