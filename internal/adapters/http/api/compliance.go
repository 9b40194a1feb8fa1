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

// ComplianceDependencies defines the interface for binary compliance checks.
type ComplianceDependencies interface {
	CheckCompliance(ctx context.Context, params model.ComplianceCheckParams) (model.ComplianceCheckResult, error)
}

// ComplianceHandler handles pre-deal compliance check requests.
type ComplianceHandler struct {
	deps ComplianceDependencies
}

// NewComplianceHandler creates a new compliance handler.
func NewComplianceHandler(deps ComplianceDependencies) *ComplianceHandler {
	return &ComplianceHandler{deps: deps}
}

// HandleCheck handles POST /v1/compliance/check requests.
func (h *ComplianceHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	const op = "api.compliance_check"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var params model.ComplianceCheckParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(params.State) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing state")))
		return
	}

	result, err := h.deps.CheckCompliance(r.Context(), params)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
