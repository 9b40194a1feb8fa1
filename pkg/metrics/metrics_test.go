package metrics_test

import (
	"testing"

	"github.com/DetroitRed03/chatnil-engine/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording business metrics", func() {
			Convey("Then none of the helpers should panic", func() {
				So(func() {
					metrics.RecordDealScored("approved")
					metrics.RecordDealScored("rejected")
					metrics.RecordComplianceCheck(true)
					metrics.RecordComplianceCheck(false)
					metrics.RecordMatchGenerated(87)
					metrics.RecordScoringLatency(1.2)
					metrics.RecordMatchingLatency(0.4)
					metrics.RecordBatchRun()
					metrics.RecordBatchItem("created")
					metrics.RecordBatchItem("failed")
					metrics.RecordBatchDuration(120)
					metrics.RecordStoreUpsert("created")
					metrics.RecordStoreQueryLatency(0.3)
					metrics.UpdateStoreRecordsTotal(42)
					metrics.RecordHTTPRequest("score", "POST", "200")
					metrics.RecordHTTPRequestDuration("score", "POST", "200", 3.5)
					metrics.RecordError("scorer", "invalid_input")
					metrics.UpdateSystemMemoryUsage(1 << 20)
					metrics.UpdateSystemGoroutineCount(10)
				}, ShouldNotPanic)
			})
		})

		Convey("When fetching the registry", func() {
			reg := metrics.GetRegistry()

			Convey("Then it should not be nil and should gather metrics", func() {
				So(reg, ShouldNotBeNil)
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
