// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
)

// DealDependencies defines the interface for deal scoring operations.
type DealDependencies interface {
	ScoreDeal(ctx context.Context, req model.DealScoreRequest) (model.ComplianceScoreResult, error)
}

// DealsHandler handles deal scoring requests.
type DealsHandler struct {
	deps DealDependencies
}

// NewDealsHandler creates a new deals handler.
func NewDealsHandler(deps DealDependencies) *DealsHandler {
	return &DealsHandler{deps: deps}
}

// HandleScoreDeal handles POST /v1/deals/score requests.
func (h *DealsHandler) HandleScoreDeal(w http.ResponseWriter, r *http.Request) {
	const op = "api.score_deal"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req model.DealScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateScoreRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.ScoreDeal(r.Context(), req)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func validateScoreRequest(req model.DealScoreRequest) error {
	switch {
	case strings.TrimSpace(req.Deal.ID) == "":
		return errors.New("missing deal.id")
	case strings.TrimSpace(req.Deal.AthleteID) == "":
		return errors.New("missing deal.athlete_id")
	case strings.TrimSpace(req.Athlete.AthleteID) == "":
		return errors.New("missing athlete.athlete_id")
	case req.Deal.AthleteID != req.Athlete.AthleteID:
		return errors.New("deal.athlete_id does not match athlete.athlete_id")
	}
	return nil
}
