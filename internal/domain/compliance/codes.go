// Package compliance implements the graded risk scorer and the binary
// legal-gate check engine for proposed NIL deals.
package compliance

// Reason codes surfaced on scoring results. Codes with a variable part are
// rendered as CODE:detail.
const (
	CodeStateRulesUnavailable   = "STATE_RULES_UNAVAILABLE"
	CodeNILNotPermitted         = "NIL_NOT_PERMITTED"
	CodeNILNotPermittedForLevel = "NIL_NOT_PERMITTED_FOR_LEVEL"
	CodeProhibitedCategory      = "PROHIBITED_CATEGORY"
	CodeBoosterConnected        = "BOOSTER_CONNECTED"
	CodeSchoolApprovalRequired  = "SCHOOL_APPROVAL_REQUIRED"
	CodePerformanceBasedPay     = "PERFORMANCE_BASED_PAY"

	CodeFMVReviewSuggested = "FMV_REVIEW_SUGGESTED"
	CodeFMVOutOfBand       = "FMV_OUT_OF_BAND"
	CodeFMVFarOutOfBand    = "FMV_FAR_OUT_OF_BAND"

	CodeContractMissing     = "CONTRACT_MISSING"
	CodeContractTooBrief    = "CONTRACT_TOO_BRIEF"
	CodeDeliverablesMissing = "DELIVERABLES_MISSING"
	CodeAmbiguousTerms      = "AMBIGUOUS_TERMS"

	CodeTaxNotAcknowledged    = "TAX_NOT_ACKNOWLEDGED"
	CodeTaxReportingThreshold = "TAX_REPORTING_THRESHOLD"

	CodeBrandSafetyRisk  = "BRAND_SAFETY_RISK"
	CodeBrandSafetyWatch = "BRAND_SAFETY_WATCH"

	CodeGuardianConsentMissing = "GUARDIAN_CONSENT_MISSING"

	CodeReviewRequired = "REVIEW_REQUIRED"
)
