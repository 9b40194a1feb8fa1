// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/DetroitRed03/chatnil-engine/internal/batch"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
)

// BatchDependencies defines the interface for batch operations.
type BatchDependencies interface {
	ScoreDealBatch(ctx context.Context, items []model.DealScoreRequest) (*batch.Summary, error)
	GenerateMatchBatch(ctx context.Context, jobs []model.MatchJob) (*batch.Summary, error)
}

// BatchHandler handles batch scoring and matching requests.
type BatchHandler struct {
	deps BatchDependencies
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(deps BatchDependencies) *BatchHandler {
	return &BatchHandler{deps: deps}
}

// scoreBatchRequest mirrors the request schema for POST /v1/batch/score.
type scoreBatchRequest struct {
	Items []model.DealScoreRequest `json:"items"`
}

// matchBatchRequest mirrors the request schema for POST /v1/batch/match.
type matchBatchRequest struct {
	Jobs []model.MatchJob `json:"jobs"`
}

// HandleScoreBatch handles POST /v1/batch/score requests.
func (h *BatchHandler) HandleScoreBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.batch_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req scoreBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	summary, err := h.deps.ScoreDealBatch(r.Context(), req.Items)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleMatchBatch handles POST /v1/batch/match requests.
func (h *BatchHandler) HandleMatchBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.batch_match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req matchBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	summary, err := h.deps.GenerateMatchBatch(r.Context(), req.Jobs)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
