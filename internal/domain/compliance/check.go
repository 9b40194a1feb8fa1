package compliance

import (
	"context"
	"fmt"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/DetroitRed03/chatnil-engine/internal/domain/staterules"
)

// CheckEngine answers "is this legal/compliant" for a state and athlete
// level. It is distinct from the Scorer, which answers "how risky".
type CheckEngine struct {
	registry staterules.Registry
}

// NewCheckEngine creates a CheckEngine backed by the given registry.
func NewCheckEngine(registry staterules.Registry) *CheckEngine {
	return &CheckEngine{registry: registry}
}

// Check runs seven independent rule checks. An unknown state fails closed:
// the result is non-compliant with a single explanatory violation.
// Warnings never affect Compliant.
func (e *CheckEngine) Check(ctx context.Context, p model.ComplianceCheckParams) model.ComplianceCheckResult {
	rules, err := e.registry.Lookup(ctx, p.State)
	if err != nil {
		return model.ComplianceCheckResult{
			Compliant: false,
			Violations: []string{
				fmt.Sprintf("NIL rules for state %q are not available; compliance cannot be verified", p.State),
			},
			Warnings:     []string{},
			Requirements: []string{},
		}
	}

	result := model.ComplianceCheckResult{
		Compliant:    true,
		Violations:   []string{},
		Warnings:     []string{},
		Requirements: []string{},
		StateName:    rules.StateName,
	}

	// 1. NIL allowed for this athlete level.
	switch {
	case !rules.AllowsNIL:
		result.Violations = append(result.Violations,
			fmt.Sprintf("NIL activity is not permitted in %s", rules.StateName))
	case p.Level == model.RoleHighSchool && !rules.HighSchoolAllowed:
		result.Violations = append(result.Violations,
			fmt.Sprintf("High school athletes may not engage in NIL activity in %s", rules.StateName))
	case p.Level == model.RoleCollege && !rules.CollegeAllowed:
		result.Violations = append(result.Violations,
			fmt.Sprintf("College athletes may not engage in NIL activity in %s", rules.StateName))
	}

	// 2. Deal category not prohibited.
	if p.DealCategory != "" {
		for _, prohibited := range rules.ProhibitedCategories {
			if categoryMatches(p.DealCategory, prohibited) {
				result.Violations = append(result.Violations,
					fmt.Sprintf("Deal category %q is prohibited in %s", p.DealCategory, rules.StateName))
				break
			}
		}
	}

	// 3. School approval present if required.
	if rules.SchoolApprovalRequired && !p.HasSchoolApproval {
		result.Violations = append(result.Violations,
			fmt.Sprintf("%s requires school approval before NIL activity", rules.StateName))
		result.Requirements = append(result.Requirements, "Obtain written school approval")
	}

	// 4. Agent registration present if required.
	if rules.AgentRegistrationRequired && !p.HasAgentRegistration {
		result.Violations = append(result.Violations,
			fmt.Sprintf("%s requires NIL agents to be registered", rules.StateName))
		result.Requirements = append(result.Requirements, "Register the representing agent with the state")
	}

	// 5. Disclosure present if required. Warning, not violation.
	if rules.DisclosureRequired && !p.HasDisclosure {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s requires the deal to be disclosed", rules.StateName))
		result.Requirements = append(result.Requirements, "Disclose the deal to the institution")
	}

	// 6. Financial literacy present if required. Warning, not violation.
	if rules.FinancialLiteracyRequired && !p.HasFinancialLiteracy {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s requires completion of a financial literacy course", rules.StateName))
		result.Requirements = append(result.Requirements, "Complete the required financial literacy course")
	}

	// 7. Free-text restrictions surfaced as warnings.
	result.Warnings = append(result.Warnings, rules.Restrictions...)

	result.Compliant = len(result.Violations) == 0
	return result
}
