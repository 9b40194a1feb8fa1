package compliance_test

import (
	"context"
	"testing"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/compliance"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/staterules"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCheckEngine(t *testing.T) {
	engine := compliance.NewCheckEngine(staterules.NewInMemoryRegistry())
	ctx := context.Background()

	Convey("Given a college athlete in Kentucky with no approvals", t, func() {
		result := engine.Check(ctx, model.ComplianceCheckParams{
			State: "KY",
			Level: model.RoleCollege,
		})

		Convey("Then disclosure is a warning, not a violation", func() {
			So(result.Compliant, ShouldBeTrue)
			So(result.Violations, ShouldBeEmpty)
			So(len(result.Warnings), ShouldBeGreaterThan, 0)
			So(result.StateName, ShouldEqual, "Kentucky")
		})
	})

	Convey("Given a state that requires school approval", t, func() {
		Convey("When approval is missing", func() {
			result := engine.Check(ctx, model.ComplianceCheckParams{
				State: "FL",
				Level: model.RoleCollege,
			})

			Convey("Then it is a violation with a required action", func() {
				So(result.Compliant, ShouldBeFalse)
				So(len(result.Violations), ShouldEqual, 1)
				So(result.Requirements, ShouldContain, "Obtain written school approval")
			})
		})

		Convey("When approval is present", func() {
			result := engine.Check(ctx, model.ComplianceCheckParams{
				State:             "FL",
				Level:             model.RoleCollege,
				HasSchoolApproval: true,
			})

			Convey("Then the check passes, warnings notwithstanding", func() {
				So(result.Compliant, ShouldBeTrue)
				So(len(result.Warnings), ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given a high school athlete where HS NIL is not allowed", t, func() {
		result := engine.Check(ctx, model.ComplianceCheckParams{
			State: "TX",
			Level: model.RoleHighSchool,
		})

		Convey("Then it is a violation", func() {
			So(result.Compliant, ShouldBeFalse)
			So(result.Violations[0], ShouldContainSubstring, "High school")
		})
	})

	Convey("Given a prohibited deal category", t, func() {
		result := engine.Check(ctx, model.ComplianceCheckParams{
			State:        "KY",
			Level:        model.RoleCollege,
			DealCategory: "sports gambling",
		})

		Convey("Then it is a violation naming the category", func() {
			So(result.Compliant, ShouldBeFalse)
			So(result.Violations[0], ShouldContainSubstring, "prohibited")
		})
	})

	Convey("Given an unknown state", t, func() {
		result := engine.Check(ctx, model.ComplianceCheckParams{
			State: "Atlantis",
			Level: model.RoleCollege,
		})

		Convey("Then the check fails closed with one explanatory violation", func() {
			So(result.Compliant, ShouldBeFalse)
			So(len(result.Violations), ShouldEqual, 1)
			So(result.Violations[0], ShouldContainSubstring, "not available")
		})
	})
}
