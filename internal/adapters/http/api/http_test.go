package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/DetroitRed03/chatnil-engine/internal/adapters/http/api"
	"github.com/DetroitRed03/chatnil-engine/internal/batch"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
)

// fakeDeps provides canned responses and captures inputs.
type fakeDeps struct {
	scoreResult  model.ComplianceScoreResult
	scoreErr     error
	checkResult  model.ComplianceCheckResult
	matchResults []model.MatchResult
	summary      *batch.Summary
	batchErr     error

	lastTopAgency string
	lastTopLimit  int
}

func (f *fakeDeps) ScoreDeal(ctx context.Context, req model.DealScoreRequest) (model.ComplianceScoreResult, error) {
	if f.scoreErr != nil {
		return model.ComplianceScoreResult{}, f.scoreErr
	}
	return f.scoreResult, nil
}

func (f *fakeDeps) CheckCompliance(ctx context.Context, params model.ComplianceCheckParams) (model.ComplianceCheckResult, error) {
	return f.checkResult, nil
}

func (f *fakeDeps) GenerateMatches(ctx context.Context, job model.MatchJob) ([]model.MatchResult, error) {
	return f.matchResults, nil
}

func (f *fakeDeps) TopMatches(ctx context.Context, agencyID string, limit int) ([]model.MatchResult, error) {
	f.lastTopAgency = agencyID
	f.lastTopLimit = limit
	return f.matchResults, nil
}

func (f *fakeDeps) ScoreDealBatch(ctx context.Context, items []model.DealScoreRequest) (*batch.Summary, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	return f.summary, nil
}

func (f *fakeDeps) GenerateMatchBatch(ctx context.Context, jobs []model.MatchJob) (*batch.Summary, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	return f.summary, nil
}

type fakeStats struct{}

func (fakeStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"matches_stored": 3}
}

func newTestMux(deps *fakeDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, fakeStats{}).Register(context.Background(), mux)
	return mux
}

func postJSON(mux *http.ServeMux, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func scoreRequest() model.DealScoreRequest {
	return model.DealScoreRequest{
		Deal: model.DealInput{
			ID:           "deal-1",
			AthleteID:    "athlete-1",
			DealType:     model.DealSponsorship,
			Compensation: decimal.NewFromInt(500),
			State:        "KY",
		},
		Athlete: model.AthleteContext{
			AthleteID: "athlete-1",
			Role:      model.RoleCollege,
			State:     "KY",
			Sport:     "basketball",
		},
	}
}

func TestScoreDealEndpoint(t *testing.T) {
	Convey("Given the deal scoring endpoint", t, func() {
		deps := &fakeDeps{
			scoreResult: model.ComplianceScoreResult{
				DealID:     "deal-1",
				AthleteID:  "athlete-1",
				TotalScore: 84,
				Status:     model.StatusApproved,
			},
		}
		mux := newTestMux(deps)

		Convey("When a valid request is posted", func() {
			rec := postJSON(mux, "/v1/deals/score", scoreRequest())

			So(rec.Code, ShouldEqual, http.StatusOK)
			var result model.ComplianceScoreResult
			So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
			So(result.TotalScore, ShouldEqual, 84)
			So(result.Status, ShouldEqual, model.StatusApproved)
		})

		Convey("When the body is not JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/v1/deals/score", strings.NewReader("{nope"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the deal id is missing", func() {
			req := scoreRequest()
			req.Deal.ID = ""
			rec := postJSON(mux, "/v1/deals/score", req)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(rec.Body.String(), ShouldContainSubstring, "deal.id")
		})

		Convey("When deal and athlete ids disagree", func() {
			req := scoreRequest()
			req.Athlete.AthleteID = "athlete-2"
			rec := postJSON(mux, "/v1/deals/score", req)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the domain rejects the input", func() {
			deps.scoreErr = model.ErrNegativeCompensation
			rec := postJSON(mux, "/v1/deals/score", scoreRequest())
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the method is GET", func() {
			rec := get(mux, "/v1/deals/score")
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestComplianceCheckEndpoint(t *testing.T) {
	Convey("Given the compliance check endpoint", t, func() {
		deps := &fakeDeps{
			checkResult: model.ComplianceCheckResult{
				Compliant: true,
				StateName: "Kentucky",
				Warnings:  []string{"Disclosure to school required"},
			},
		}
		mux := newTestMux(deps)

		Convey("When a valid check is posted", func() {
			rec := postJSON(mux, "/v1/compliance/check", model.ComplianceCheckParams{
				State: "KY",
				Level: model.RoleCollege,
			})

			So(rec.Code, ShouldEqual, http.StatusOK)
			var result model.ComplianceCheckResult
			So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
			So(result.Compliant, ShouldBeTrue)
			So(result.StateName, ShouldEqual, "Kentucky")
		})

		Convey("When the state is missing", func() {
			rec := postJSON(mux, "/v1/compliance/check", model.ComplianceCheckParams{})
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(rec.Body.String(), ShouldContainSubstring, "state")
		})
	})
}

func TestMatchEndpoints(t *testing.T) {
	Convey("Given the matchmaking endpoints", t, func() {
		deps := &fakeDeps{
			matchResults: []model.MatchResult{
				{AgencyID: "agency-1", AthleteID: "athlete-1", MatchScore: 91, MatchTier: model.TierExcellent},
			},
		}
		mux := newTestMux(deps)

		job := model.MatchJob{
			Criteria:   model.AgencyCriteria{AgencyID: "agency-1"},
			Candidates: []model.AthleteMatchCandidate{{AthleteID: "athlete-1"}},
		}

		Convey("When matches are generated", func() {
			rec := postJSON(mux, "/v1/matches/generate", job)

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"count":1`)
		})

		Convey("When the candidate pool is empty", func() {
			job.Candidates = nil
			rec := postJSON(mux, "/v1/matches/generate", job)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When min_score is out of range", func() {
			job.MinScore = 150
			rec := postJSON(mux, "/v1/matches/generate", job)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When top matches are fetched with defaults", func() {
			rec := get(mux, "/v1/matches/top?agency_id=agency-1")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.lastTopAgency, ShouldEqual, "agency-1")
			So(deps.lastTopLimit, ShouldEqual, 10)
		})

		Convey("When the agency id is missing", func() {
			rec := get(mux, "/v1/matches/top")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit is not a number", func() {
			rec := get(mux, "/v1/matches/top?agency_id=agency-1&limit=abc")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit exceeds the maximum", func() {
			rec := get(mux, "/v1/matches/top?agency_id=agency-1&limit=500")
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(rec.Body.String(), ShouldContainSubstring, "limit_exceeded")
		})
	})
}

func TestBatchEndpoints(t *testing.T) {
	Convey("Given the batch endpoints", t, func() {
		deps := &fakeDeps{
			summary: &batch.Summary{
				RunID:   "run-1",
				Total:   2,
				Created: 2,
			},
		}
		mux := newTestMux(deps)

		Convey("When a score batch is posted", func() {
			rec := postJSON(mux, "/v1/batch/score", map[string]any{
				"items": []model.DealScoreRequest{scoreRequest()},
			})

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"run_id":"run-1"`)
		})

		Convey("When a match batch is posted", func() {
			rec := postJSON(mux, "/v1/batch/match", map[string]any{
				"jobs": []model.MatchJob{},
			})
			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When the batch is too large", func() {
			deps.batchErr = batch.ErrBatchTooLarge
			rec := postJSON(mux, "/v1/batch/score", map[string]any{"items": []any{}})
			So(rec.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
		})

		Convey("When the batch is empty", func() {
			deps.batchErr = batch.ErrEmptyBatch
			rec := postJSON(mux, "/v1/batch/score", map[string]any{"items": []any{}})
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given the operational endpoints", t, func() {
		mux := newTestMux(&fakeDeps{})

		Convey("When stats are fetched", func() {
			rec := get(mux, "/stats")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "matches_stored")
		})

		Convey("When health is probed", func() {
			rec := get(mux, "/healthz")
			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}
