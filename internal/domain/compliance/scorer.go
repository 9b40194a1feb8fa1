package compliance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/staterules"
)

// Status thresholds on the aggregate score.
const (
	defaultApproveAt   = 80
	defaultRejectBelow = 50

	recommendationFloor = 70 // dimensions below this get a remediation
)

// recommendations maps a low-scoring dimension to one actionable remediation.
var recommendations = map[string]string{
	"policy_fit":       "Restructure the deal to remove prohibited or conflicted elements before resubmission.",
	"fmv_verification": "Obtain an independent fair-market-value assessment for the proposed compensation.",
	"document_hygiene": "Attach a complete contract with specific deliverables, dates, and payment terms.",
	"tax_readiness":    "Review and acknowledge tax reporting obligations for NIL income.",
	"brand_safety":     "Verify the third party and deal category against brand-safety guidelines.",
	"guardian_consent": "Obtain documented guardian consent before activating this deal.",
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights replaces the default dimension weights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// WithStatusThresholds overrides the approve/reject score thresholds.
func WithStatusThresholds(approveAt, rejectBelow int) Option {
	return func(s *Scorer) {
		if approveAt > rejectBelow && approveAt <= 100 && rejectBelow >= 0 {
			s.approveAt = approveAt
			s.rejectBelow = rejectBelow
		}
	}
}

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}

// Scorer computes the weighted multi-dimension compliance score for one
// deal. It is pure and side-effect free: same input, same output.
type Scorer struct {
	registry    staterules.Registry
	weights     Weights
	approveAt   int
	rejectBelow int
	now         func() time.Time
}

// NewScorer creates a Scorer. The weight-sum invariant is validated at
// construction so a misconfigured scorer can never be built.
func NewScorer(registry staterules.Registry, opts ...Option) (*Scorer, error) {
	s := &Scorer{
		registry:    registry,
		weights:     DefaultWeights(),
		approveAt:   defaultApproveAt,
		rejectBelow: defaultRejectBelow,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.weights.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Score computes a ComplianceScoreResult for one deal and athlete context.
// Missing reference data degrades to lower scores with explicit reason
// codes; invariant violations on the input return an error.
func (s *Scorer) Score(ctx context.Context, deal model.DealInput, athlete model.AthleteContext) (model.ComplianceScoreResult, error) {
	if err := deal.Validate(); err != nil {
		return model.ComplianceScoreResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	rules, err := s.registry.Lookup(ctx, deal.State)
	haveRules := err == nil

	policy, hard := scorePolicyFit(deal, athlete, rules, haveRules)

	dims := model.ComplianceDimensions{
		PolicyFit:       withWeight(policy, s.weights.PolicyFit),
		FMVVerification: withWeight(scoreFMVVerification(deal, athlete), s.weights.FMVVerification),
		DocumentHygiene: withWeight(scoreDocumentHygiene(deal), s.weights.DocumentHygiene),
		TaxReadiness:    withWeight(scoreTaxReadiness(deal, athlete), s.weights.TaxReadiness),
		BrandSafety:     withWeight(scoreBrandSafety(deal), s.weights.BrandSafety),
		GuardianConsent: withWeight(scoreGuardianConsent(athlete), s.weights.GuardianConsent),
	}

	total := 0.0
	for _, d := range dims.All() {
		total += d.Score * d.Weight
	}
	totalScore := clampTotal(int(math.Round(total)))

	status := s.statusFor(totalScore, hard)

	result := model.ComplianceScoreResult{
		DealID:          deal.ID,
		AthleteID:       deal.AthleteID,
		Dimensions:      dims,
		TotalScore:      totalScore,
		Status:          status,
		ReasonCodes:     collectReasonCodes(dims),
		Recommendations: collectRecommendations(dims),
		ScoredAt:        s.now().UTC(),
	}

	// A rejection or flag must always carry at least one reason.
	if status != model.StatusApproved && len(result.ReasonCodes) == 0 {
		result.ReasonCodes = append(result.ReasonCodes, CodeReviewRequired)
	}

	return result, nil
}

// statusFor derives the review status. A hard policy violation forces
// rejection regardless of the numeric score; a legal violation must never
// be averaged away.
func (s *Scorer) statusFor(totalScore int, hardViolations []string) model.ComplianceStatus {
	if len(hardViolations) > 0 {
		return model.StatusRejected
	}
	switch {
	case totalScore >= s.approveAt:
		return model.StatusApproved
	case totalScore >= s.rejectBelow:
		return model.StatusFlagged
	default:
		return model.StatusRejected
	}
}

func withWeight(d model.DimensionScore, weight float64) model.DimensionScore {
	d.Weight = weight
	return d
}

// collectReasonCodes aggregates dimension notes in canonical order,
// deduplicated.
func collectReasonCodes(dims model.ComplianceDimensions) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, d := range dims.All() {
		for _, note := range d.Notes {
			if _, dup := seen[note]; dup {
				continue
			}
			seen[note] = struct{}{}
			codes = append(codes, note)
		}
	}
	return codes
}

// collectRecommendations emits one remediation per dimension scoring below
// the recommendation floor.
func collectRecommendations(dims model.ComplianceDimensions) []string {
	names := []string{
		"policy_fit", "fmv_verification", "document_hygiene",
		"tax_readiness", "brand_safety", "guardian_consent",
	}
	var recs []string
	for i, d := range dims.All() {
		if d.Score < recommendationFloor {
			recs = append(recs, recommendations[names[i]])
		}
	}
	return recs
}

func clampTotal(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
