package app_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/DetroitRed03/chatnil-engine/internal/adapters/repository"
	"github.com/DetroitRed03/chatnil-engine/internal/app"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/staterules"
	"github.com/DetroitRed03/chatnil-engine/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("text"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu          sync.Mutex
	dealEvents  []model.ComplianceScoreResult
	matchEvents []model.MatchResult
}

func (p *recordingPublisher) PublishDealScored(ctx context.Context, result model.ComplianceScoreResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dealEvents = append(p.dealEvents, result)
	return nil
}

func (p *recordingPublisher) PublishMatchGenerated(ctx context.Context, match model.MatchResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.matchEvents = append(p.matchEvents, match)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func contract() string {
	text := "The athlete agrees to the deliverables and compensation terms. "
	for len(text) < 300 {
		text += "Payment is due within thirty days of each completed deliverable. "
	}
	return text
}

func scoreRequest(dealID string) model.DealScoreRequest {
	return model.DealScoreRequest{
		Deal: model.DealInput{
			ID:             dealID,
			AthleteID:      "athlete-1",
			DealType:       model.DealSponsorship,
			Category:       "apparel",
			ThirdPartyName: "Local Outfitters",
			Compensation:   decimal.NewFromInt(400),
			Deliverables:   "2 instagram posts by March 15",
			ContractText:   contract(),
			State:          "KY",
		},
		Athlete: model.AthleteContext{
			AthleteID:                     "athlete-1",
			Role:                          model.RoleCollege,
			State:                         "KY",
			Sport:                         "basketball",
			FollowerCount:                 80_000,
			EngagementRate:                3.5,
			HasAcknowledgedTaxObligations: true,
		},
	}
}

func matchJob() model.MatchJob {
	return model.MatchJob{
		Criteria: model.AgencyCriteria{
			AgencyID:          "agency-1",
			TargetSports:      []string{"basketball"},
			TargetStates:      []string{"KY"},
			MinFollowers:      10_000,
			MinEngagementRate: 2.0,
		},
		Candidates: []model.AthleteMatchCandidate{
			{
				AthleteID:           "athlete-1",
				Sport:               "basketball",
				State:               "KY",
				SchoolLevel:         model.LevelCollege,
				FollowerCount:       80_000,
				EngagementRate:      3.5,
				ContentQualityScore: 70,
				ResponseRate:        0.8,
			},
			{
				AthleteID:     "athlete-2",
				Sport:         "rowing",
				State:         "OR",
				SchoolLevel:   model.LevelHighSchool,
				FollowerCount: 200,
			},
		},
		MinScore: 40,
	}
}

func newService(t *testing.T, opts ...app.Option) (*app.Service, *repository.MemStore, *recordingPublisher) {
	t.Helper()
	store := repository.NewMemStore()
	pub := &recordingPublisher{}
	svc, err := app.NewService(staterules.NewInMemoryRegistry(),
		append([]app.Option{app.WithStore(store), app.WithPublisher(pub)}, opts...)...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store, pub
}

func TestScoreDealFlow(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with in-memory adapters", t, func() {
		svc, store, pub := newService(t)

		Convey("When a clean deal is scored", func() {
			result, err := svc.ScoreDeal(ctx, scoreRequest("deal-1"))
			So(err, ShouldBeNil)

			Convey("Then the result is persisted and published", func() {
				So(result.TotalScore, ShouldBeGreaterThan, 0)

				stored, err := store.GetScore(ctx, "deal-1")
				So(err, ShouldBeNil)
				So(stored.TotalScore, ShouldEqual, result.TotalScore)

				So(len(pub.dealEvents), ShouldEqual, 1)
				So(pub.dealEvents[0].DealID, ShouldEqual, "deal-1")
			})
		})

		Convey("When the deal input is invalid", func() {
			req := scoreRequest("deal-bad")
			req.Deal.Compensation = decimal.NewFromInt(-5)

			_, err := svc.ScoreDeal(ctx, req)
			So(err, ShouldWrap, model.ErrNegativeCompensation)
			So(store.ScoreCount(ctx), ShouldEqual, 0)
		})
	})
}

func TestComplianceCheckFlow(t *testing.T) {
	Convey("Given a service", t, func() {
		svc, _, _ := newService(t)

		result, err := svc.CheckCompliance(context.Background(), model.ComplianceCheckParams{
			State: "KY",
			Level: model.RoleCollege,
		})

		So(err, ShouldBeNil)
		So(result.Compliant, ShouldBeTrue)
		So(result.StateName, ShouldEqual, "Kentucky")
	})
}

func TestGenerateMatchesFlow(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service and a match job", t, func() {
		svc, store, pub := newService(t)

		results, err := svc.GenerateMatches(ctx, matchJob())
		So(err, ShouldBeNil)

		Convey("Then strong candidates pass the floor and are persisted", func() {
			So(len(results), ShouldEqual, 1)
			So(results[0].AthleteID, ShouldEqual, "athlete-1")

			top, err := svc.TopMatches(ctx, "agency-1", 10)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 1)
			So(store.Count(ctx), ShouldEqual, 1)
			So(len(pub.matchEvents), ShouldEqual, 1)
		})
	})
}

func TestBatchFlows(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service", t, func() {
		svc, _, _ := newService(t)

		items := make([]model.DealScoreRequest, 5)
		for i := range items {
			items[i] = scoreRequest(fmt.Sprintf("deal-%d", i))
		}

		Convey("When a score batch runs", func() {
			summary, err := svc.ScoreDealBatch(ctx, items)
			So(err, ShouldBeNil)
			So(summary.Created, ShouldEqual, 5)
			So(summary.Failed, ShouldEqual, 0)

			Convey("Then a rerun is fully deduplicated", func() {
				again, err := svc.ScoreDealBatch(ctx, items)
				So(err, ShouldBeNil)
				So(again.Skipped, ShouldEqual, 5)
				So(again.Created, ShouldEqual, 0)
			})
		})

		Convey("When a match batch runs twice", func() {
			summary, err := svc.GenerateMatchBatch(ctx, []model.MatchJob{matchJob()})
			So(err, ShouldBeNil)
			So(summary.Created, ShouldEqual, 1)

			again, err := svc.GenerateMatchBatch(ctx, []model.MatchJob{matchJob()})
			So(err, ShouldBeNil)

			Convey("Then reruns refresh instead of duplicating", func() {
				So(again.Updated, ShouldEqual, 1)
				So(again.Skipped, ShouldEqual, 0)
			})
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("Given a service with some activity", t, func() {
		svc, _, _ := newService(t)

		_, err := svc.ScoreDeal(context.Background(), scoreRequest("deal-1"))
		So(err, ShouldBeNil)

		stats := svc.GetStats()
		So(stats["deals_scored"], ShouldEqual, 1)
		So(stats["matches_stored"], ShouldEqual, 0)
		So(stats, ShouldContainKey, "dedupe_size")
	})
}
