// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DetroitRed03/chatnil-engine/internal/adapters/repository"
	"github.com/DetroitRed03/chatnil-engine/internal/batch"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ScoreDeal runs compliance scoring for one deal and persists the result.
	ScoreDeal(ctx context.Context, req model.DealScoreRequest) (model.ComplianceScoreResult, error)

	// CheckCompliance runs the binary pre-deal check.
	CheckCompliance(ctx context.Context, params model.ComplianceCheckParams) (model.ComplianceCheckResult, error)

	// GenerateMatches ranks a candidate pool for an agency and persists
	// the suggestions.
	GenerateMatches(ctx context.Context, job model.MatchJob) ([]model.MatchResult, error)

	// TopMatches returns stored matches for an agency, best first.
	TopMatches(ctx context.Context, agencyID string, limit int) ([]model.MatchResult, error)

	// ScoreDealBatch scores many deals in one run.
	ScoreDealBatch(ctx context.Context, items []model.DealScoreRequest) (*batch.Summary, error)

	// GenerateMatchBatch runs many match jobs in one run.
	GenerateMatchBatch(ctx context.Context, jobs []model.MatchJob) (*batch.Summary, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	dealsHandler      *DealsHandler
	complianceHandler *ComplianceHandler
	matchesHandler    *MatchesHandler
	batchHandler      *BatchHandler
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*serverSettings)

type serverSettings struct {
	maxTopLimit int
}

// WithMaxTopLimit caps the limit accepted by GET /v1/matches/top.
func WithMaxTopLimit(n int) ServerOption {
	return func(s *serverSettings) {
		if n > 0 {
			s.maxTopLimit = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	settings := serverSettings{maxTopLimit: defaultMaxTopLimit}
	for _, opt := range opts {
		opt(&settings)
	}

	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		dealsHandler:      NewDealsHandler(deps),
		complianceHandler: NewComplianceHandler(deps),
		matchesHandler:    NewMatchesHandler(deps, settings.maxTopLimit),
		batchHandler:      NewBatchHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/v1/deals/score", MetricsMiddleware(s.dealsHandler.HandleScoreDeal, "deals_score"))
	mux.HandleFunc("/v1/compliance/check", MetricsMiddleware(s.complianceHandler.HandleCheck, "compliance_check"))
	mux.HandleFunc("/v1/matches/generate", MetricsMiddleware(s.matchesHandler.HandleGenerate, "matches_generate"))
	mux.HandleFunc("/v1/matches/top", MetricsMiddleware(s.matchesHandler.HandleTop, "matches_top"))
	mux.HandleFunc("/v1/batch/score", MetricsMiddleware(s.batchHandler.HandleScoreBatch, "batch_score"))
	mux.HandleFunc("/v1/batch/match", MetricsMiddleware(s.batchHandler.HandleMatchBatch, "batch_match"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates known domain failures to HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrMissingAthleteID),
		errors.Is(err, model.ErrNegativeCompensation):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, batch.ErrEmptyBatch):
		writeError(w, http.StatusBadRequest, "empty_batch", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, batch.ErrBatchTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "batch_too_large", Wrap(op, err))
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
