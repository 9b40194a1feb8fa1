package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchTier buckets a numeric match score for UI grouping and filtering.
type MatchTier string

// Match tiers, highest first.
const (
	TierExcellent MatchTier = "excellent"
	TierStrong    MatchTier = "strong"
	TierPotential MatchTier = "potential"
	TierLow       MatchTier = "low"
)

// MatchStatus is the partnership lifecycle. The engine only ever emits
// Suggested; every later transition is a human action.
type MatchStatus string

// Match lifecycle statuses.
const (
	MatchSuggested    MatchStatus = "suggested"
	MatchSaved        MatchStatus = "saved"
	MatchContacted    MatchStatus = "contacted"
	MatchInterested   MatchStatus = "interested"
	MatchInDiscussion MatchStatus = "in_discussion"
	MatchPartnered    MatchStatus = "partnered"
	MatchRejected     MatchStatus = "rejected"
	MatchExpired      MatchStatus = "expired"
)

// AgencyCriteria describes what an agency campaign is looking for.
type AgencyCriteria struct {
	AgencyID           string        `json:"agency_id"`
	TargetSports       []string      `json:"target_sports"`
	MinFollowers       int           `json:"min_followers"`
	MaxFollowers       int           `json:"max_followers"` // 0 = no cap
	TargetStates       []string      `json:"target_states"` // empty = nationwide
	TargetSchoolLevels []SchoolLevel `json:"target_school_levels"`
	MinEngagementRate  float64       `json:"min_engagement_rate"` // percent

	GraduationYearMin int `json:"graduation_year_min"` // 0 = no filter
	GraduationYearMax int `json:"graduation_year_max"`

	BudgetMin          decimal.Decimal `json:"budget_min"`
	BudgetMax          decimal.Decimal `json:"budget_max"` // zero = no budget set
	PreferredPlatforms []string        `json:"preferred_platforms"`
}

// AthleteMatchCandidate is one athlete considered for a pairing. FMV
// fields are externally computed and consumed as signals.
type AthleteMatchCandidate struct {
	AthleteID      string      `json:"athlete_id"`
	Sport          string      `json:"sport"`
	FollowerCount  int         `json:"follower_count"`
	EngagementRate float64     `json:"engagement_rate"` // percent
	State          string      `json:"state"`
	SchoolLevel    SchoolLevel `json:"school_level"`
	GraduationYear int         `json:"graduation_year"`

	FMVScore           int             `json:"fmv_score"` // 0-100
	EstimatedDealValue decimal.Decimal `json:"estimated_deal_value"`

	Platforms           []string `json:"platforms"`
	ContentQualityScore int      `json:"content_quality_score"` // 0-100
	ResponseRate        float64  `json:"response_rate"`         // 0-1 historical response signal
}

// MatchResult is one scored agency-athlete pairing. FollowerCount is
// carried from the candidate so ranked reads can reproduce the engine's
// tie-breaking after persistence.
type MatchResult struct {
	AgencyID       string         `json:"agency_id"`
	AthleteID      string         `json:"athlete_id"`
	FollowerCount  int            `json:"follower_count"`
	MatchScore     int            `json:"match_score"` // 0-100
	MatchTier      MatchTier      `json:"match_tier"`
	MatchReasons   []string       `json:"match_reasons"`
	ScoreBreakdown map[string]int `json:"score_breakdown"` // factor name -> 0-10
	Status         MatchStatus    `json:"status"`
	GeneratedAt    time.Time      `json:"generated_at"`
}
