package matching_test

import (
	"context"
	"testing"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/matching"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

func baseCriteria() model.AgencyCriteria {
	return model.AgencyCriteria{
		AgencyID:           "agency-1",
		TargetSports:       []string{"basketball"},
		MinFollowers:       50_000,
		TargetStates:       []string{"KY", "TN"},
		TargetSchoolLevels: []model.SchoolLevel{model.LevelCollege},
		MinEngagementRate:  2.0,
		BudgetMin:          decimal.NewFromInt(1000),
		BudgetMax:          decimal.NewFromInt(15_000),
		PreferredPlatforms: []string{"instagram", "tiktok"},
	}
}

func strongCandidate() model.AthleteMatchCandidate {
	return model.AthleteMatchCandidate{
		AthleteID:           "athlete-1",
		Sport:               "basketball",
		FollowerCount:       120_000,
		EngagementRate:      4.5,
		State:               "KY",
		SchoolLevel:         model.LevelCollege,
		GraduationYear:      2027,
		FMVScore:            78,
		EstimatedDealValue:  decimal.NewFromInt(8000),
		Platforms:           []string{"instagram", "tiktok", "youtube"},
		ContentQualityScore: 88,
		ResponseRate:        0.9,
	}
}

func TestScoreOne(t *testing.T) {
	engine := matching.NewEngine(matching.WithClock(fixedClock))

	Convey("Given a strong candidate for the criteria", t, func() {
		result := engine.ScoreOne(baseCriteria(), strongCandidate())

		Convey("Then the score should land in a high tier", func() {
			So(result.MatchScore, ShouldBeBetweenOrEqual, 0, 100)
			So(result.MatchScore, ShouldBeGreaterThanOrEqualTo, 80)
			So(result.MatchTier, ShouldEqual, model.TierExcellent)
			So(result.Status, ShouldEqual, model.MatchSuggested)
			So(result.FollowerCount, ShouldEqual, 120_000)
		})

		Convey("And the breakdown should have all eleven factors in 0-10", func() {
			So(len(result.ScoreBreakdown), ShouldEqual, 11)
			for name, score := range result.ScoreBreakdown {
				So(score, ShouldBeBetweenOrEqual, 0, 10)
				So(name, ShouldNotBeEmpty)
			}
		})

		Convey("And reasons should list the top factors as readable strings", func() {
			So(len(result.MatchReasons), ShouldBeGreaterThan, 0)
			So(len(result.MatchReasons), ShouldBeLessThanOrEqualTo, 5)
			So(result.MatchReasons, ShouldContain, "Strong sport alignment")
		})

		Convey("And scoring is deterministic", func() {
			again := engine.ScoreOne(baseCriteria(), strongCandidate())
			So(again, ShouldResemble, result)
		})
	})
}

func TestFollowerThresholdFactor(t *testing.T) {
	engine := matching.NewEngine(matching.WithClock(fixedClock))

	Convey("Given two candidates differing only in follower count", t, func() {
		criteria := baseCriteria() // min_followers = 50000

		// A moderate candidate whose score sits near the excellent/strong
		// boundary, so the follower factor decides the band.
		moderate := strongCandidate()
		moderate.ContentQualityScore = 80
		moderate.FMVScore = 55
		moderate.EstimatedDealValue = decimal.NewFromInt(500)
		moderate.Platforms = []string{"instagram"}
		moderate.ResponseRate = 0.7

		under := moderate
		under.FollowerCount = 10_000

		over := moderate
		over.FollowerCount = 60_000

		underResult := engine.ScoreOne(criteria, under)
		overResult := engine.ScoreOne(criteria, over)

		Convey("Then the under-threshold follower factor should be near 0", func() {
			So(underResult.ScoreBreakdown["follower_threshold"], ShouldBeLessThanOrEqualTo, 2)
			So(overResult.ScoreBreakdown["follower_threshold"], ShouldEqual, 10)
		})

		Convey("And the tier should drop at least one band", func() {
			So(underResult.MatchScore, ShouldBeLessThan, overResult.MatchScore)
			So(underResult.MatchTier, ShouldNotEqual, overResult.MatchTier)
		})
	})
}

func TestMatchOrdering(t *testing.T) {
	engine := matching.NewEngine(matching.WithClock(fixedClock))
	ctx := context.Background()

	Convey("Given candidates with equal scores but different follower counts", t, func() {
		a := strongCandidate()
		a.AthleteID = "athlete-a"
		a.FollowerCount = 60_000

		b := strongCandidate()
		b.AthleteID = "athlete-b"
		b.FollowerCount = 120_000

		// Same factor inputs except followers, both at or above the
		// minimum with no ceiling, so scores are equal.
		results, err := engine.Match(ctx, baseCriteria(), []model.AthleteMatchCandidate{a, b}, 0, 0)
		So(err, ShouldBeNil)
		So(len(results), ShouldEqual, 2)
		So(results[0].MatchScore, ShouldEqual, results[1].MatchScore)

		Convey("Then higher follower count wins the tie", func() {
			So(results[0].AthleteID, ShouldEqual, "athlete-b")
		})

		Convey("And equal followers fall back to athlete id ascending", func() {
			b.FollowerCount = a.FollowerCount
			results, err := engine.Match(ctx, baseCriteria(), []model.AthleteMatchCandidate{b, a}, 0, 0)
			So(err, ShouldBeNil)
			So(results[0].AthleteID, ShouldEqual, "athlete-a")
		})
	})

	Convey("Given a min score and limit", t, func() {
		weak := strongCandidate()
		weak.AthleteID = "athlete-weak"
		weak.Sport = "chess"
		weak.State = "OR"
		weak.SchoolLevel = model.LevelHighSchool
		weak.FollowerCount = 100
		weak.EngagementRate = 0.1
		weak.ContentQualityScore = 5
		weak.ResponseRate = 0
		weak.Platforms = nil
		weak.FMVScore = 10
		weak.EstimatedDealValue = decimal.NewFromInt(100_000)

		strong := strongCandidate()

		results, err := engine.Match(context.Background(), baseCriteria(),
			[]model.AthleteMatchCandidate{weak, strong}, 35, 10)
		So(err, ShouldBeNil)

		Convey("Then weak candidates are filtered out", func() {
			So(len(results), ShouldEqual, 1)
			So(results[0].AthleteID, ShouldEqual, "athlete-1")
		})

		Convey("And results are sorted descending by score", func() {
			all, err := engine.Match(context.Background(), baseCriteria(),
				[]model.AthleteMatchCandidate{weak, strong}, 0, 0)
			So(err, ShouldBeNil)
			So(len(all), ShouldEqual, 2)
			So(all[0].MatchScore, ShouldBeGreaterThanOrEqualTo, all[1].MatchScore)
		})
	})
}
