package matching

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
)

// Tier bands on the 0-100 match score.
const (
	tierExcellentAt = 80
	tierStrongAt    = 60
	tierPotentialAt = 40

	defaultReasonFloor = 8 // factors at or above this become match reasons
	defaultMaxReasons  = 5
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithReasonFloor sets the minimum factor score that yields a match reason.
func WithReasonFloor(floor int) Option {
	return func(e *Engine) {
		if floor > 0 && floor <= maxFactorScore {
			e.reasonFloor = floor
		}
	}
}

// WithMaxReasons caps the number of reasons per match.
func WithMaxReasons(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxReasons = n
		}
	}
}

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine computes an 11-factor fit score between one agency campaign and
// one athlete. It is pure: identical inputs produce identical breakdowns.
type Engine struct {
	reasonFloor int
	maxReasons  int
	now         func() time.Time
}

// NewEngine creates a matchmaking engine with default configuration.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		reasonFloor: defaultReasonFloor,
		maxReasons:  defaultMaxReasons,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScoreOne scores a single agency-athlete pairing.
func (e *Engine) ScoreOne(criteria model.AgencyCriteria, candidate model.AthleteMatchCandidate) model.MatchResult {
	breakdown := map[string]int{
		FactorSport:          scoreSport(criteria, candidate),
		FactorFollowers:      scoreFollowers(criteria, candidate),
		FactorEngagement:     scoreEngagement(criteria, candidate),
		FactorState:          scoreState(criteria, candidate),
		FactorSchoolLevel:    scoreSchoolLevel(criteria, candidate),
		FactorGraduationYear: scoreGraduationYear(criteria, candidate),
		FactorContentQuality: scoreContentQuality(candidate),
		FactorFMVTier:        scoreFMVTier(criteria, candidate),
		FactorBudget:         scoreBudget(criteria, candidate),
		FactorPlatform:       scorePlatforms(criteria, candidate),
		FactorResponse:       scoreResponse(candidate),
	}

	sum := 0
	for _, v := range breakdown {
		sum += v
	}
	score := int(math.Round(float64(sum) / float64(factorCount*maxFactorScore) * 100))

	return model.MatchResult{
		AgencyID:       criteria.AgencyID,
		AthleteID:      candidate.AthleteID,
		FollowerCount:  candidate.FollowerCount,
		MatchScore:     score,
		MatchTier:      tierFor(score),
		MatchReasons:   e.reasonsFor(breakdown),
		ScoreBreakdown: breakdown,
		Status:         model.MatchSuggested,
		GeneratedAt:    e.now().UTC(),
	}
}

// Match scores every candidate, filters by minScore, sorts descending by
// match score with deterministic tie-breaking (followers desc, athlete id
// asc), and truncates to limit. A limit <= 0 means no truncation.
func (e *Engine) Match(ctx context.Context, criteria model.AgencyCriteria, candidates []model.AthleteMatchCandidate, minScore, limit int) ([]model.MatchResult, error) {
	results := make([]model.MatchResult, 0, len(candidates))

	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := e.ScoreOne(criteria, candidates[i])
		if r.MatchScore < minScore {
			continue
		}
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if a.FollowerCount != b.FollowerCount {
			return a.FollowerCount > b.FollowerCount
		}
		return a.AthleteID < b.AthleteID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// tierFor buckets a score into its match tier.
func tierFor(score int) model.MatchTier {
	switch {
	case score >= tierExcellentAt:
		return model.TierExcellent
	case score >= tierStrongAt:
		return model.TierStrong
	case score >= tierPotentialAt:
		return model.TierPotential
	default:
		return model.TierLow
	}
}

// reasonsFor lists the top factors scoring at or above the reason floor,
// in descending factor-score order, ties broken by canonical factor order.
func (e *Engine) reasonsFor(breakdown map[string]int) []string {
	type ranked struct {
		name  string
		score int
		order int
	}
	var qualifying []ranked
	for i, name := range factorOrder {
		if s := breakdown[name]; s >= e.reasonFloor {
			qualifying = append(qualifying, ranked{name: name, score: s, order: i})
		}
	}
	sort.Slice(qualifying, func(i, j int) bool {
		if qualifying[i].score != qualifying[j].score {
			return qualifying[i].score > qualifying[j].score
		}
		return qualifying[i].order < qualifying[j].order
	})
	if len(qualifying) > e.maxReasons {
		qualifying = qualifying[:e.maxReasons]
	}
	reasons := make([]string, len(qualifying))
	for i, q := range qualifying {
		reasons[i] = factorReasons[q.name]
	}
	return reasons
}
