// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
)

// Limits for the top matches endpoint.
const (
	defaultMaxTopLimit = 100
	defaultTopLimit    = 10
)

// MatchDependencies defines the interface for matchmaking operations.
type MatchDependencies interface {
	GenerateMatches(ctx context.Context, job model.MatchJob) ([]model.MatchResult, error)
	TopMatches(ctx context.Context, agencyID string, limit int) ([]model.MatchResult, error)
}

// MatchesHandler handles matchmaking requests.
type MatchesHandler struct {
	deps     MatchDependencies
	maxLimit int
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies, maxLimit int) *MatchesHandler {
	return &MatchesHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// matchListResponse is the shared list shape for match endpoints.
type matchListResponse struct {
	Matches []model.MatchResult `json:"matches"`
	Count   int                 `json:"count"`
}

// HandleGenerate handles POST /v1/matches/generate requests.
func (h *MatchesHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	const op = "api.generate_matches"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var job model.MatchJob
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateMatchJob(job); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	matches, err := h.deps.GenerateMatches(r.Context(), job)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, matchListResponse{Matches: matches, Count: len(matches)})
}

// HandleTop handles GET /v1/matches/top?agency_id=X&limit=N requests.
func (h *MatchesHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	const op = "api.top_matches"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	agencyID := strings.TrimSpace(r.URL.Query().Get("agency_id"))
	if agencyID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	limit := defaultTopLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}
	if limit > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}

	matches, err := h.deps.TopMatches(r.Context(), agencyID, limit)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, matchListResponse{Matches: matches, Count: len(matches)})
}

func validateMatchJob(job model.MatchJob) error {
	switch {
	case strings.TrimSpace(job.Criteria.AgencyID) == "":
		return errors.New("missing criteria.agency_id")
	case len(job.Candidates) == 0:
		return errors.New("missing candidates")
	case job.MinScore < 0 || job.MinScore > 100:
		return errors.New("min_score must be within 0-100")
	}
	return nil
}
