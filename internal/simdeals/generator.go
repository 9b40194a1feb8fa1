package simdeals

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/DetroitRed03/chatnil-engine/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	dealProfileDivisor = 8
)

// Constants for compensation generation ranges, in whole dollars.
const (
	smallDealMin    = 50
	smallDealRange  = 450
	midDealMin      = 500
	midDealRange    = 4_500
	largeDealMin    = 5_000
	largeDealRange  = 45_000
	outlierDealMin  = 50_000
	outlierDealSpan = 450_000
)

// Constants for deal profile cases.
const (
	caseCleanCollegeDeal = 0
	caseCleanSocialDeal  = 1
	caseMinorWithConsent = 2
	caseMinorNoConsent   = 3
	caseGamblingDeal     = 4
	caseBoosterDeal      = 5
	casePerformanceBonus = 6
	caseOutlierValueDeal = 7
)

var (
	simStates = []string{"CA", "TX", "FL", "KY", "OH", "AL", "NY", "GA"}
	simSports = []string{"basketball", "football", "soccer", "volleyball", "track", "swimming"}

	simPlatforms = []string{"instagram", "tiktok", "youtube", "x"}

	simBrands = []string{
		"Summit Apparel", "Hydrate Labs", "Campus Eats", "Nova Fitness",
		"Stateline Motors", "TrueNorth Bank", "Crown Audio",
	}
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// pick returns a random element of the given slice.
func pick(options []string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(options))))
	return options[n.Int64()]
}

// generateDeals creates the configured number of deal score requests with
// unique deal and athlete IDs, spread across risk profiles so the scorer
// exercises all three statuses.
func generateDeals(ctx context.Context, config *Config, stats *Stats) ([]model.DealScoreRequest, error) {
	logger.Get().Info(ctx, "generating deal score requests", logger.Int("numDeals", config.NumDeals))

	deals := make([]model.DealScoreRequest, config.NumDeals)
	for i := 0; i < config.NumDeals; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			deals[i] = generateSingleDeal(i)
		}
	}

	stats.DealsGenerated = len(deals)
	logger.Get().Info(ctx, "generated deal score requests", logger.Int("count", len(deals)))
	return deals, nil
}

// generateSingleDeal creates one deal request following a random risk profile.
func generateSingleDeal(index int) model.DealScoreRequest {
	state := pick(simStates)
	athleteID := uuid.New().String()
	dealID := "deal_" + strconv.Itoa(index) + "_" + uuid.New().String()[:8]

	deal := model.DealInput{
		ID:             dealID,
		AthleteID:      athleteID,
		DealType:       model.DealSocialMedia,
		Category:       "apparel",
		ThirdPartyName: pick(simBrands),
		Compensation:   randomCompensation(midDealMin, midDealRange),
		Deliverables:   "3 instagram posts, 1 story per week",
		State:          state,
	}

	athlete := model.AthleteContext{
		AthleteID:                     athleteID,
		Role:                          model.RoleCollege,
		State:                         state,
		Sport:                         pick(simSports),
		FollowerCount:                 int(5_000 + getRandomFloat()*95_000),
		EngagementRate:                1.0 + getRandomFloat()*5.0,
		HasAcknowledgedTaxObligations: true,
	}

	profile, _ := rand.Int(rand.Reader, big.NewInt(dealProfileDivisor))
	switch profile.Int64() {
	case caseCleanCollegeDeal:
		deal.DealType = model.DealEndorsement
		deal.ContractText = cleanContractText(deal.ThirdPartyName)
	case caseCleanSocialDeal:
		deal.Compensation = randomCompensation(smallDealMin, smallDealRange)
	case caseMinorWithConsent:
		athlete.Role = model.RoleHighSchool
		athlete.IsMinor = true
		athlete.HasGuardianConsent = true
		deal.Compensation = randomCompensation(smallDealMin, smallDealRange)
	case caseMinorNoConsent:
		athlete.Role = model.RoleHighSchool
		athlete.IsMinor = true
		athlete.HasGuardianConsent = false
	case caseGamblingDeal:
		deal.Category = "gambling"
		deal.ThirdPartyName = "BetLine Sportsbook"
		deal.Compensation = randomCompensation(largeDealMin, largeDealRange)
	case caseBoosterDeal:
		deal.IsBoosterConnected = true
		deal.Compensation = randomCompensation(largeDealMin, largeDealRange)
	case casePerformanceBonus:
		deal.PerformanceBased = true
		athlete.HasAcknowledgedTaxObligations = false
	case caseOutlierValueDeal:
		deal.Compensation = randomCompensation(outlierDealMin, outlierDealSpan)
		athlete.FollowerCount = int(500 + getRandomFloat()*2_000)
	}

	return model.DealScoreRequest{Deal: deal, Athlete: athlete}
}

// randomCompensation returns a dollar amount in [min, min+span), two decimals.
func randomCompensation(min, span int) decimal.Decimal {
	amount := float64(min) + getRandomFloat()*float64(span)
	return decimal.NewFromFloat(amount).Round(2)
}

// cleanContractText produces contract text long enough to pass the
// document hygiene length heuristic, with the standard clauses present.
func cleanContractText(brand string) string {
	return "This agreement between " + brand + " and the athlete covers the scope of services, " +
		"compensation schedule, and term of the engagement. Either party may terminate this " +
		"agreement with thirty days written notice. The athlete grants a limited, non-exclusive " +
		"right to use their name, image, and likeness solely for the deliverables described " +
		"herein. Payment terms: net 30 from invoice. This agreement is governed by the laws of " +
		"the state in which the athlete resides."
}

// generateMatchJobs creates match jobs, each with its own candidate pool.
func generateMatchJobs(ctx context.Context, config *Config, stats *Stats) ([]model.MatchJob, error) {
	logger.Get().Info(ctx, "generating match jobs",
		logger.Int("numJobs", config.NumJobs),
		logger.Int("poolSize", config.PoolSize))

	jobs := make([]model.MatchJob, config.NumJobs)
	for i := 0; i < config.NumJobs; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			jobs[i] = generateSingleJob(i, config.PoolSize)
		}
	}

	stats.JobsGenerated = len(jobs)
	logger.Get().Info(ctx, "generated match jobs", logger.Int("count", len(jobs)))
	return jobs, nil
}

// generateSingleJob creates one agency criteria plus a candidate pool.
func generateSingleJob(index, poolSize int) model.MatchJob {
	sport := pick(simSports)

	criteria := model.AgencyCriteria{
		AgencyID:           "agency_" + strconv.Itoa(index),
		TargetSports:       []string{sport},
		MinFollowers:       10_000,
		MinEngagementRate:  1.5,
		TargetStates:       []string{pick(simStates), pick(simStates)},
		TargetSchoolLevels: []model.SchoolLevel{model.LevelCollege},
		BudgetMin:          decimal.NewFromInt(500),
		BudgetMax:          decimal.NewFromInt(20_000),
		PreferredPlatforms: []string{pick(simPlatforms)},
	}

	candidates := make([]model.AthleteMatchCandidate, poolSize)
	for i := range candidates {
		candidates[i] = model.AthleteMatchCandidate{
			AthleteID:           uuid.New().String(),
			Sport:               pick(simSports),
			FollowerCount:       int(1_000 + getRandomFloat()*200_000),
			EngagementRate:      0.5 + getRandomFloat()*6.0,
			State:               pick(simStates),
			SchoolLevel:         model.LevelCollege,
			GraduationYear:      2026 + int(getRandomFloat()*4),
			FMVScore:            int(getRandomFloat() * 100),
			EstimatedDealValue:  decimal.NewFromInt(int64(200 + getRandomFloat()*30_000)).Round(2),
			Platforms:           []string{pick(simPlatforms), pick(simPlatforms)},
			ContentQualityScore: int(getRandomFloat() * 100),
			ResponseRate:        getRandomFloat(),
		}
	}

	return model.MatchJob{
		Criteria:   criteria,
		Candidates: candidates,
		MinScore:   40,
		Limit:      25,
	}
}
