package model

import "time"

// ComplianceStatus is the graded review status derived from a total score.
type ComplianceStatus string

// Compliance statuses. Pending is the caller-side pre-scoring state; the
// scorer itself only ever emits approved, flagged, or rejected.
const (
	StatusApproved ComplianceStatus = "approved"
	StatusFlagged  ComplianceStatus = "flagged"
	StatusRejected ComplianceStatus = "rejected"
	StatusPending  ComplianceStatus = "pending"
)

// DimensionScore is one independently scored compliance axis.
type DimensionScore struct {
	Score  float64  `json:"score"`  // 0-100
	Weight float64  `json:"weight"` // 0-1
	Notes  []string `json:"notes"`  // reason codes contributed by this axis
}

// ComplianceDimensions holds exactly the six scored axes. A missing
// dimension is a compile-time error, not a runtime fallback.
type ComplianceDimensions struct {
	PolicyFit       DimensionScore `json:"policy_fit"`
	FMVVerification DimensionScore `json:"fmv_verification"`
	DocumentHygiene DimensionScore `json:"document_hygiene"`
	TaxReadiness    DimensionScore `json:"tax_readiness"`
	BrandSafety     DimensionScore `json:"brand_safety"`
	GuardianConsent DimensionScore `json:"guardian_consent"`
}

// All returns the six dimensions in canonical order.
func (d ComplianceDimensions) All() []DimensionScore {
	return []DimensionScore{
		d.PolicyFit,
		d.FMVVerification,
		d.DocumentHygiene,
		d.TaxReadiness,
		d.BrandSafety,
		d.GuardianConsent,
	}
}

// ComplianceScoreResult is the graded risk view of one deal submission.
// It is immutable once persisted; resubmission produces a new result.
type ComplianceScoreResult struct {
	DealID          string               `json:"deal_id"`
	AthleteID       string               `json:"athlete_id"`
	Dimensions      ComplianceDimensions `json:"dimensions"`
	TotalScore      int                  `json:"total_score"` // weighted sum, rounded, clamped 0-100
	Status          ComplianceStatus     `json:"status"`
	ReasonCodes     []string             `json:"overall_reason_codes"`
	Recommendations []string             `json:"overall_recommendations"`
	ScoredAt        time.Time            `json:"scored_at"`
}

// ComplianceCheckParams feed the binary legal-gate check.
type ComplianceCheckParams struct {
	State        string      `json:"state"`
	Level        AthleteRole `json:"level"`
	DealCategory string      `json:"deal_category,omitempty"`

	HasSchoolApproval    bool `json:"has_school_approval"`
	HasAgentRegistration bool `json:"has_agent_registration"`
	HasDisclosure        bool `json:"has_disclosure"`
	HasFinancialLiteracy bool `json:"has_financial_literacy"`
}

// ComplianceCheckResult is the binary legal view, distinct from the graded
// risk view: warnings never affect Compliant.
type ComplianceCheckResult struct {
	Compliant    bool     `json:"compliant"`
	Violations   []string `json:"violations"`
	Warnings     []string `json:"warnings"`
	Requirements []string `json:"requirements"`
	StateName    string   `json:"state_name"`
}
