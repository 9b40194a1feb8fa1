// Package matching computes multi-factor fit scores between agency
// campaign criteria and athlete candidates.
package matching

import (
	"math"
	"strings"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
)

// Factor names, in canonical order. Each factor scores 0-10.
const (
	FactorSport          = "sport_alignment"
	FactorFollowers      = "follower_threshold"
	FactorEngagement     = "engagement_threshold"
	FactorState          = "state_alignment"
	FactorSchoolLevel    = "school_level_alignment"
	FactorGraduationYear = "graduation_year_fit"
	FactorContentQuality = "content_quality"
	FactorFMVTier        = "fmv_tier_alignment"
	FactorBudget         = "budget_fit"
	FactorPlatform       = "platform_preference"
	FactorResponse       = "historical_response"
)

// factorOrder fixes the canonical iteration order for deterministic output.
var factorOrder = []string{
	FactorSport, FactorFollowers, FactorEngagement, FactorState,
	FactorSchoolLevel, FactorGraduationYear, FactorContentQuality,
	FactorFMVTier, FactorBudget, FactorPlatform, FactorResponse,
}

// factorReasons maps high-scoring factors to human-readable match reasons.
var factorReasons = map[string]string{
	FactorSport:          "Strong sport alignment",
	FactorFollowers:      "Exceeds follower threshold",
	FactorEngagement:     "High engagement rate",
	FactorState:          "In a targeted state",
	FactorSchoolLevel:    "School level match",
	FactorGraduationYear: "Graduation timeline fits",
	FactorContentQuality: "High content quality",
	FactorFMVTier:        "FMV tier aligned with budget",
	FactorBudget:         "Fits campaign budget",
	FactorPlatform:       "Active on preferred platforms",
	FactorResponse:       "Responsive to outreach",
}

const (
	maxFactorScore   = 10
	factorCount      = 11
	neutralScore     = 5
	noPreferenceHigh = 7 // score when the agency expressed no preference
	nationwideScore  = 8 // state factor when targeting is nationwide
)

// relatedSports pairs sports treated as adjacent for partial credit.
var relatedSports = map[string]string{
	"track":         "cross_country",
	"cross_country": "track",
	"baseball":      "softball",
	"softball":      "baseball",
	"basketball":    "volleyball",
	"volleyball":    "basketball",
	"football":      "rugby",
	"rugby":         "football",
	"soccer":        "lacrosse",
	"lacrosse":      "soccer",
}

func scoreSport(c model.AgencyCriteria, a model.AthleteMatchCandidate) int {
	if len(c.TargetSports) == 0 {
		return noPreferenceHigh
	}
	sport := strings.ToLower(strings.TrimSpace(a.Sport))
	for _, target := range c.TargetSports {
		if strings.EqualFold(strings.TrimSpace(target), sport) {
			return maxFactorScore
		}
	}
	if related, ok := relatedSports[sport]; ok {
		for _, target := range c.TargetSports {
			if strings.EqualFold(strings.TrimSpace(target), related) {
				return neutralScore
			}
		}
	}
	return 0
}

func scoreFollowers(c model.AgencyCriteria, a model.AthleteMatchCandidate) int {
	if c.MinFollowers <= 0 {
		return maxFactorScore
	}
	if a.FollowerCount >= c.MinFollowers {
		if c.MaxFollowers > 0 && a.FollowerCount > c.MaxFollowers {
			// Above the agency's ceiling, likely priced out of budget.
			return 6
		}
		return maxFactorScore
	}
	// Scale down linearly below the minimum to a floor of 0.
	return int(math.Round(float64(maxFactorScore) * float64(a.FollowerCount) / float64(c.MinFollowers)))
}

func scoreEngagement(c model.AgencyCriteria, a model.AthleteMatchCandidate) int {
	if c.MinEngagementRate <= 0 {
		return maxFactorScore
	}
	if a.EngagementRate >= c.MinEngagementRate {
		return maxFactorScore
	}
	return clampFactor(int(math.Round(float64(maxFactorScore) * a.EngagementRate / c.MinEngagementRate)))
}

func scoreState(c model.AgencyCriteria, a model.AthleteMatchCandidate) int {
	if len(c.TargetStates) == 0 {
		return nationwideScore
	}
	for _, target := range c.TargetStates {
		if strings.EqualFold(strings.TrimSpace(target), strings.TrimSpace(a.State)) {
			return maxFactorScore
		}
	}
	return 2
}

func scoreSchoolLevel(c model.AgencyCriteria, a model.AthleteMatchCandidate) int {
	if len(c.TargetSchoolLevels) == 0 {
		return noPreferenceHigh
	}
	for _, level := range c.TargetSchoolLevels {
		if level == a.SchoolLevel {
			return maxFactorScore
		}
	}
	return 0
}

func scoreGraduationYear(c model.AgencyCriteria, a model.AthleteMatchCandidate) int {
	if c.GraduationYearMin == 0 && c.GraduationYearMax == 0 {
		return noPreferenceHigh
	}
	minYear, maxYear := c.GraduationYearMin, c.GraduationYearMax
	if minYear == 0 {
		minYear = maxYear
	}
	if maxYear == 0 {
		maxYear = minYear
	}
	switch {
	case a.GraduationYear >= minYear && a.GraduationYear <= maxYear:
		return maxFactorScore
	case a.GraduationYear == minYear-1 || a.GraduationYear == maxYear+1:
		return neutralScore
	default:
		return 2
	}
}

func scoreContentQuality(a model.AthleteMatchCandidate) int {
	return clampFactor(int(math.Round(float64(a.ContentQualityScore) / 10.0)))
}

// fmvTier buckets an FMV score into a coarse tier index (0=bronze..3=platinum).
func fmvTier(score int) int {
	switch {
	case score >= 85:
		return 3
	case score >= 70:
		return 2
	case score >= 50:
		return 1
	default:
		return 0
	}
}

// budgetTier infers the tier an agency budget can afford. Returns -1 when
// no budget is set.
func budgetTier(c model.AgencyCriteria) int {
	if c.BudgetMax.IsZero() {
		return -1
	}
	max := c.BudgetMax.InexactFloat64()
	switch {
	case max >= 25_000:
		return 3
	case max >= 10_000:
		return 2
	case max >= 2_500:
		return 1
	default:
		return 0
	}
}

func scoreFMVTier(c model.AgencyCriteria, a model.AthleteMatchCandidate) int {
	want := budgetTier(c)
	if want < 0 {
		return neutralScore
	}
	switch diff := abs(fmvTier(a.FMVScore) - want); diff {
	case 0:
		return maxFactorScore
	case 1:
		return 6
	case 2:
		return 3
	default:
		return 1
	}
}

func scoreBudget(c model.AgencyCriteria, a model.AthleteMatchCandidate) int {
	if c.BudgetMax.IsZero() || a.EstimatedDealValue.IsZero() {
		return neutralScore
	}
	est := a.EstimatedDealValue
	if est.GreaterThanOrEqual(c.BudgetMin) && est.LessThanOrEqual(c.BudgetMax) {
		return maxFactorScore
	}
	if est.LessThan(c.BudgetMin) {
		// Affordable, just below the planned spend.
		return 7
	}
	overshoot := est.InexactFloat64() / c.BudgetMax.InexactFloat64()
	switch {
	case overshoot <= 1.5:
		return neutralScore
	case overshoot <= 2.0:
		return 3
	default:
		return 0
	}
}

func scorePlatforms(c model.AgencyCriteria, a model.AthleteMatchCandidate) int {
	if len(c.PreferredPlatforms) == 0 {
		return noPreferenceHigh
	}
	overlap := 0
	for _, pref := range c.PreferredPlatforms {
		for _, have := range a.Platforms {
			if strings.EqualFold(strings.TrimSpace(pref), strings.TrimSpace(have)) {
				overlap++
				break
			}
		}
	}
	return clampFactor(int(math.Round(float64(maxFactorScore) * float64(overlap) / float64(len(c.PreferredPlatforms)))))
}

func scoreResponse(a model.AthleteMatchCandidate) int {
	return clampFactor(int(math.Round(a.ResponseRate * maxFactorScore)))
}

func clampFactor(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxFactorScore {
		return maxFactorScore
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
