package compliance

import (
	"fmt"
	"strings"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/staterules"
)

// Scoring constants for the individual dimensions.
const (
	maxDimensionScore = 100

	// policyFit penalties
	noRulesPolicyScore      = 35 // conservative score when state rules are unavailable
	prohibitedCategoryScore = 5
	boosterPenalty          = 30
	schoolApprovalPenalty   = 20
	performancePayPenalty   = 15

	// fmv band scores
	fmvInBandScore      = 95
	fmvReviewScore      = 70
	fmvOutOfBandScore   = 40
	fmvFarOutScore      = 15
	fmvMinExpectedValue = 50.0
	perEngagedFollower  = 0.05 // dollars per engaged follower per deal

	// document hygiene points
	contractFullPoints      = 45
	contractBriefPoints     = 25
	deliverablesPoints      = 30
	deliverableDetailPoints = 10
	thirdPartyPoints        = 15
	ambiguityPenalty        = 15
	minContractLength       = 200

	// tax readiness
	taxReportingThreshold = 600.0 // IRS 1099 reporting floor
	taxFullScore          = 100
	taxAcknowledgedScore  = 90
	taxSmallDealScore     = 65
	taxUnreadyScore       = 30

	// brand safety
	brandCleanScore = 95
	brandWatchScore = 60
	brandRiskScore  = 15

	// guardian consent
	consentAdultScore   = 100
	consentPresentScore = 85
	consentMissingScore = 20
)

// sportMultipliers adjust expected deal value by sport market size.
var sportMultipliers = map[string]float64{
	"football":   1.5,
	"basketball": 1.4,
	"gymnastics": 1.2,
	"baseball":   1.1,
	"softball":   1.05,
	"volleyball": 1.0,
	"soccer":     1.0,
}

// brandDenylist terms force a low brand-safety score.
var brandDenylist = []string{
	"gambling", "casino", "betting", "sportsbook", "alcohol", "liquor",
	"tobacco", "vape", "vaping", "cannabis", "cbd", "adult", "firearm",
	"weapon", "payday loan",
}

// brandWatchlist terms warrant review without forcing a low score.
var brandWatchlist = []string{
	"crypto", "nft", "energy drink", "supplement", "diet",
}

// ambiguousTerms in contract or deliverables text reduce document hygiene.
var ambiguousTerms = []string{
	"tbd", "to be determined", "as needed", "to be discussed", "etc.",
}

// scorePolicyFit penalizes prohibited categories, booster and school
// conflicts, and non-NIL jurisdictions. The second return value lists hard
// violations that force rejection regardless of the aggregate score.
func scorePolicyFit(deal model.DealInput, athlete model.AthleteContext, rules staterules.StateNILRules, haveRules bool) (model.DimensionScore, []string) {
	dim := model.DimensionScore{Score: maxDimensionScore}

	if !haveRules {
		dim.Score = noRulesPolicyScore
		dim.Notes = append(dim.Notes, CodeStateRulesUnavailable)
		return dim, nil
	}

	var hard []string

	if !rules.AllowsNIL {
		hard = append(hard, CodeNILNotPermitted)
		dim.Score = 0
	} else {
		levelAllowed := true
		if athlete.Role == model.RoleHighSchool && !rules.HighSchoolAllowed {
			levelAllowed = false
		}
		if athlete.Role == model.RoleCollege && !rules.CollegeAllowed {
			levelAllowed = false
		}
		if !levelAllowed {
			hard = append(hard, CodeNILNotPermittedForLevel)
			dim.Score = 0
		}
	}

	category := deal.NormalizedCategory()
	for _, prohibited := range rules.ProhibitedCategories {
		if categoryMatches(category, prohibited) {
			hard = append(hard, fmt.Sprintf("%s:%s", CodeProhibitedCategory, prohibited))
			if dim.Score > prohibitedCategoryScore {
				dim.Score = prohibitedCategoryScore
			}
			break
		}
	}

	if deal.IsBoosterConnected {
		dim.Score -= boosterPenalty
		dim.Notes = append(dim.Notes, CodeBoosterConnected)
	}
	if deal.IsSchoolAffiliated && rules.SchoolApprovalRequired {
		dim.Score -= schoolApprovalPenalty
		dim.Notes = append(dim.Notes, CodeSchoolApprovalRequired)
	}
	if deal.PerformanceBased {
		dim.Score -= performancePayPenalty
		dim.Notes = append(dim.Notes, CodePerformanceBasedPay)
	}

	dim.Score = clampScore(dim.Score)
	dim.Notes = append(dim.Notes, hard...)
	return dim, hard
}

// categoryMatches reports whether a deal category falls under a prohibited
// category. Matching is substring-based in both directions so that
// "sports gambling" matches "gambling".
func categoryMatches(category, prohibited string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	prohibited = strings.ToLower(strings.TrimSpace(prohibited))
	if category == "" || prohibited == "" {
		return false
	}
	return strings.Contains(category, prohibited) || strings.Contains(prohibited, category)
}

// expectedDealValue estimates a plausible fair-market value from audience
// size, engagement, and sport.
func expectedDealValue(athlete model.AthleteContext) float64 {
	mult, ok := sportMultipliers[strings.ToLower(strings.TrimSpace(athlete.Sport))]
	if !ok {
		mult = 1.0
	}
	engaged := float64(athlete.FollowerCount) * athlete.EngagementRate / 100.0
	expected := engaged * perEngagedFollower * mult
	if expected < fmvMinExpectedValue {
		expected = fmvMinExpectedValue
	}
	return expected
}

// scoreFMVVerification flags compensation far outside the plausible
// fair-market-value band implied by the athlete's audience.
func scoreFMVVerification(deal model.DealInput, athlete model.AthleteContext) model.DimensionScore {
	comp := deal.Compensation.InexactFloat64()
	expected := expectedDealValue(athlete)

	ratio := comp / expected
	switch {
	case ratio >= 0.5 && ratio <= 2.0:
		return model.DimensionScore{Score: fmvInBandScore}
	case (ratio >= 0.2 && ratio < 0.5) || (ratio > 2.0 && ratio <= 5.0):
		return model.DimensionScore{Score: fmvReviewScore, Notes: []string{CodeFMVReviewSuggested}}
	case (ratio >= 0.1 && ratio < 0.2) || (ratio > 5.0 && ratio <= 10.0):
		return model.DimensionScore{Score: fmvOutOfBandScore, Notes: []string{CodeFMVOutOfBand}}
	default:
		return model.DimensionScore{Score: fmvFarOutScore, Notes: []string{CodeFMVFarOutOfBand}}
	}
}

// scoreDocumentHygiene rewards the presence and completeness of contract
// text and deliverables.
func scoreDocumentHygiene(deal model.DealInput) model.DimensionScore {
	var dim model.DimensionScore

	contract := strings.TrimSpace(deal.ContractText)
	switch {
	case contract == "":
		dim.Notes = append(dim.Notes, CodeContractMissing)
	case len(contract) < minContractLength:
		dim.Score += contractBriefPoints
		dim.Notes = append(dim.Notes, CodeContractTooBrief)
	default:
		dim.Score += contractFullPoints
	}

	deliverables := strings.TrimSpace(deal.Deliverables)
	if deliverables == "" {
		dim.Notes = append(dim.Notes, CodeDeliverablesMissing)
	} else {
		dim.Score += deliverablesPoints
		if strings.ContainsAny(deliverables, "0123456789") {
			// Quantities or dates are a specificity signal.
			dim.Score += deliverableDetailPoints
		}
	}

	if strings.TrimSpace(deal.ThirdPartyName) != "" {
		dim.Score += thirdPartyPoints
	}

	combined := strings.ToLower(contract + " " + deliverables)
	for _, term := range ambiguousTerms {
		if strings.Contains(combined, term) {
			dim.Score -= ambiguityPenalty
			dim.Notes = append(dim.Notes, CodeAmbiguousTerms)
			break
		}
	}

	dim.Score = clampScore(dim.Score)
	return dim
}

// scoreTaxReadiness checks tax acknowledgement against the compensation
// magnitude and the 1099 reporting threshold.
func scoreTaxReadiness(deal model.DealInput, athlete model.AthleteContext) model.DimensionScore {
	comp := deal.Compensation.InexactFloat64()

	if athlete.HasAcknowledgedTaxObligations {
		if comp < taxReportingThreshold {
			return model.DimensionScore{Score: taxFullScore}
		}
		return model.DimensionScore{Score: taxAcknowledgedScore}
	}

	if comp < taxReportingThreshold {
		return model.DimensionScore{Score: taxSmallDealScore, Notes: []string{CodeTaxNotAcknowledged}}
	}
	return model.DimensionScore{
		Score: taxUnreadyScore,
		Notes: []string{CodeTaxNotAcknowledged, CodeTaxReportingThreshold},
	}
}

// scoreBrandSafety flags deal categories and third-party names against a
// denylist/keyword heuristic.
func scoreBrandSafety(deal model.DealInput) model.DimensionScore {
	text := strings.ToLower(strings.Join([]string{
		deal.NormalizedCategory(), deal.ThirdPartyName, deal.Deliverables,
	}, " "))

	for _, term := range brandDenylist {
		if strings.Contains(text, term) {
			return model.DimensionScore{
				Score: brandRiskScore,
				Notes: []string{fmt.Sprintf("%s:%s", CodeBrandSafetyRisk, term)},
			}
		}
	}
	for _, term := range brandWatchlist {
		if strings.Contains(text, term) {
			return model.DimensionScore{
				Score: brandWatchScore,
				Notes: []string{fmt.Sprintf("%s:%s", CodeBrandSafetyWatch, term)},
			}
		}
	}
	return model.DimensionScore{Score: brandCleanScore}
}

// scoreGuardianConsent scores low when the athlete is a minor and no
// consent signal is present.
func scoreGuardianConsent(athlete model.AthleteContext) model.DimensionScore {
	if !athlete.IsMinor {
		return model.DimensionScore{Score: consentAdultScore}
	}
	if athlete.HasGuardianConsent {
		return model.DimensionScore{Score: consentPresentScore}
	}
	return model.DimensionScore{
		Score: consentMissingScore,
		Notes: []string{CodeGuardianConsentMissing},
	}
}

// clampScore bounds a dimension score to [0,100].
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > maxDimensionScore {
		return maxDimensionScore
	}
	return s
}
