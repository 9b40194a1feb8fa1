package batch_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/batch"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/dedupe"
	"github.com/DetroitRed03/chatnil-engine/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init("text"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeDeal struct {
	ID   string
	Fail bool
}

func dealKey(d fakeDeal) string { return dedupe.DealKey(d.ID) }

func makeDeals(n int) []fakeDeal {
	deals := make([]fakeDeal, n)
	for i := range deals {
		deals[i] = fakeDeal{ID: fmt.Sprintf("deal-%02d", i)}
	}
	return deals
}

func creatingProcessor(ctx context.Context, d fakeDeal) (batch.Outcome, error) {
	if d.Fail {
		return "", fmt.Errorf("conflict on %s", d.ID)
	}
	return batch.OutcomeCreated, nil
}

func TestRunnerOutcomes(t *testing.T) {
	Convey("Given a batch of ten deals where one conflicts", t, func() {
		deals := makeDeals(10)
		deals[5].Fail = true

		runner, err := batch.NewRunner(creatingProcessor, dealKey)
		So(err, ShouldBeNil)

		summary, err := runner.Run(context.Background(), deals)
		So(err, ShouldBeNil)

		Convey("Then the failure is isolated and the rest succeed", func() {
			So(summary.Total, ShouldEqual, 10)
			So(summary.Created, ShouldEqual, 9)
			So(summary.Failed, ShouldEqual, 1)
			So(summary.Skipped, ShouldEqual, 0)
			So(len(summary.Errors), ShouldEqual, 1)
			So(summary.Errors[0], ShouldContainSubstring, "conflict on deal-05")
		})

		Convey("And results preserve input order", func() {
			So(len(summary.Results), ShouldEqual, 10)
			for i, res := range summary.Results {
				So(res.Index, ShouldEqual, i)
				So(res.Key, ShouldEqual, dedupe.DealKey(deals[i].ID))
			}
			So(summary.Results[5].Outcome, ShouldEqual, batch.OutcomeFailed)
		})

		Convey("And the run carries an id and timestamps", func() {
			So(summary.RunID, ShouldNotBeEmpty)
			So(summary.FinishedAt, ShouldHappenOnOrAfter, summary.StartedAt)
		})
	})
}

func TestRunnerLimits(t *testing.T) {
	Convey("Given a runner capped at five items", t, func() {
		runner, err := batch.NewRunner(creatingProcessor, dealKey,
			batch.WithMaxItems[fakeDeal](5))
		So(err, ShouldBeNil)

		Convey("When six items are submitted", func() {
			_, err := runner.Run(context.Background(), makeDeals(6))
			So(err, ShouldWrap, batch.ErrBatchTooLarge)
		})

		Convey("When no items are submitted", func() {
			_, err := runner.Run(context.Background(), nil)
			So(err, ShouldEqual, batch.ErrEmptyBatch)
		})
	})

	Convey("Given no process function", t, func() {
		_, err := batch.NewRunner[fakeDeal](nil, dealKey)
		So(err, ShouldEqual, batch.ErrNilProcessor)
	})
}

func TestRunnerDeduplication(t *testing.T) {
	Convey("Given a runner with a deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		runner, err := batch.NewRunner(creatingProcessor, dealKey,
			batch.WithDeduper[fakeDeal](d))
		So(err, ShouldBeNil)

		deals := makeDeals(4)
		deals[2].Fail = true

		first, err := runner.Run(context.Background(), deals)
		So(err, ShouldBeNil)
		So(first.Created, ShouldEqual, 3)
		So(first.Failed, ShouldEqual, 1)

		Convey("When the same batch runs again", func() {
			deals[2].Fail = false
			second, err := runner.Run(context.Background(), deals)
			So(err, ShouldBeNil)

			Convey("Then succeeded items are skipped and the failed one retries", func() {
				So(second.Skipped, ShouldEqual, 3)
				So(second.Created, ShouldEqual, 1)
				So(second.Results[2].Outcome, ShouldEqual, batch.OutcomeCreated)
			})
		})
	})
}

func TestRunnerStopOnFirstFailure(t *testing.T) {
	Convey("Given a runner that stops on first failure", t, func() {
		deals := makeDeals(9)
		deals[1].Fail = true

		runner, err := batch.NewRunner(creatingProcessor, dealKey,
			batch.WithSubBatchSize[fakeDeal](3),
			batch.WithStopOnFirstFailure[fakeDeal](true))
		So(err, ShouldBeNil)

		summary, err := runner.Run(context.Background(), deals)
		So(err, ShouldBeNil)

		Convey("Then the first wave completes and the rest are skipped", func() {
			So(summary.Failed, ShouldEqual, 1)
			So(summary.Created, ShouldEqual, 2)
			So(summary.Skipped, ShouldEqual, 6)
			for _, res := range summary.Results[3:] {
				So(res.Outcome, ShouldEqual, batch.OutcomeSkipped)
				So(res.Error, ShouldContainSubstring, "aborted")
			}
		})
	})
}

func TestRunnerSummaryTruncation(t *testing.T) {
	Convey("Given a batch larger than the summary window", t, func() {
		runner, err := batch.NewRunner(creatingProcessor, dealKey)
		So(err, ShouldBeNil)

		summary, err := runner.Run(context.Background(), makeDeals(150))
		So(err, ShouldBeNil)

		Convey("Then counts cover everything but results are capped", func() {
			So(summary.Total, ShouldEqual, 150)
			So(summary.Created, ShouldEqual, 150)
			So(len(summary.Results), ShouldEqual, 100)
		})
	})
}

func TestRunnerContextCancel(t *testing.T) {
	Convey("Given a canceled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		slow := func(ctx context.Context, d fakeDeal) (batch.Outcome, error) {
			time.Sleep(time.Millisecond)
			return batch.OutcomeCreated, nil
		}
		runner, err := batch.NewRunner(slow, dealKey)
		So(err, ShouldBeNil)

		summary, err := runner.Run(ctx, makeDeals(10))
		So(err, ShouldBeNil)

		Convey("Then nothing is processed", func() {
			So(summary.Created, ShouldEqual, 0)
			So(summary.Skipped, ShouldEqual, 10)
		})
	})
}
