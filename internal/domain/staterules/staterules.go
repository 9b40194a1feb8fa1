// Package staterules provides the per-jurisdiction NIL rule registry
// consumed by the compliance scorer and check engine.
package staterules

import "context"

// StateNILRules is the read-only reference record for one jurisdiction.
// Lifecycle is external; the engine never writes rules.
type StateNILRules struct {
	StateCode string `json:"state_code"`
	StateName string `json:"state_name"`

	AllowsNIL         bool `json:"allows_nil"`
	HighSchoolAllowed bool `json:"high_school_allowed"`
	CollegeAllowed    bool `json:"college_allowed"`

	ProhibitedCategories []string `json:"prohibited_categories"`

	SchoolApprovalRequired    bool `json:"school_approval_required"`
	AgentRegistrationRequired bool `json:"agent_registration_required"`
	DisclosureRequired        bool `json:"disclosure_required"`
	FinancialLiteracyRequired bool `json:"financial_literacy_required"`

	Restrictions []string `json:"restrictions,omitempty"`
}

// Registry looks up NIL rules by state code. Unknown codes return
// ErrNotFound; callers decide fallback policy, never the registry.
type Registry interface {
	Lookup(ctx context.Context, stateCode string) (StateNILRules, error)
}
