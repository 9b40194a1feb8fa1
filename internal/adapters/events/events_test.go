package events

import (
	"context"
	"testing"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEventShapes(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given a scored deal", t, func() {
		result := model.ComplianceScoreResult{
			DealID:      "deal-1",
			AthleteID:   "athlete-1",
			TotalScore:  84,
			Status:      model.StatusApproved,
			ReasonCodes: []string{"FMV_REVIEW_SUGGESTED"},
		}

		event := newDealScoredEvent(result, now)

		So(event.Type, ShouldEqual, TypeDealScored)
		So(event.DealID, ShouldEqual, "deal-1")
		So(event.TotalScore, ShouldEqual, 84)
		So(event.Status, ShouldEqual, "approved")
		So(event.OccurredAt, ShouldResemble, now)
	})

	Convey("Given a generated match", t, func() {
		match := model.MatchResult{
			AgencyID:   "agency-1",
			AthleteID:  "athlete-1",
			MatchScore: 91,
			MatchTier:  model.TierExcellent,
		}

		event := newMatchGeneratedEvent(match, now)

		So(event.Type, ShouldEqual, TypeMatchGenerated)
		So(event.AgencyID, ShouldEqual, "agency-1")
		So(event.MatchTier, ShouldEqual, "excellent")
	})
}

func TestNopPublisher(t *testing.T) {
	Convey("Given a nop publisher", t, func() {
		var p Publisher = NopPublisher{}
		ctx := context.Background()

		So(p.PublishDealScored(ctx, model.ComplianceScoreResult{}), ShouldBeNil)
		So(p.PublishMatchGenerated(ctx, model.MatchResult{}), ShouldBeNil)
		So(p.Close(), ShouldBeNil)
	})
}
