package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/staterules"
)

// stateRuleRow is the relational shape of one jurisdiction's NIL rules.
// Rules are reference data maintained out of band; the service only reads.
type stateRuleRow struct {
	StateCode string `gorm:"primaryKey;size:2"`
	StateName string `gorm:"size:64"`

	AllowsNIL         bool
	HighSchoolAllowed bool
	CollegeAllowed    bool

	ProhibitedCategories string `gorm:"type:jsonb"`

	SchoolApprovalRequired    bool
	AgentRegistrationRequired bool
	DisclosureRequired        bool
	FinancialLiteracyRequired bool

	Restrictions string `gorm:"type:jsonb"`
	UpdatedAt    time.Time
}

func (stateRuleRow) TableName() string { return "state_nil_rules" }

// LoadStateRules reads every jurisdiction row. An empty table is not an
// error; the caller falls back to the built-in seed in that case.
func (s *GormStore) LoadStateRules(ctx context.Context) ([]staterules.StateNILRules, error) {
	var rows []stateRuleRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load state rules: %w", err)
	}

	out := make([]staterules.StateNILRules, 0, len(rows))
	for _, row := range rows {
		rec, err := fromStateRuleRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func fromStateRuleRow(row stateRuleRow) (staterules.StateNILRules, error) {
	rec := staterules.StateNILRules{
		StateCode:                 row.StateCode,
		StateName:                 row.StateName,
		AllowsNIL:                 row.AllowsNIL,
		HighSchoolAllowed:         row.HighSchoolAllowed,
		CollegeAllowed:            row.CollegeAllowed,
		SchoolApprovalRequired:    row.SchoolApprovalRequired,
		AgentRegistrationRequired: row.AgentRegistrationRequired,
		DisclosureRequired:        row.DisclosureRequired,
		FinancialLiteracyRequired: row.FinancialLiteracyRequired,
	}
	if row.ProhibitedCategories != "" {
		if err := json.Unmarshal([]byte(row.ProhibitedCategories), &rec.ProhibitedCategories); err != nil {
			return staterules.StateNILRules{}, fmt.Errorf("decode prohibited categories for %s: %w", row.StateCode, err)
		}
	}
	if row.Restrictions != "" {
		if err := json.Unmarshal([]byte(row.Restrictions), &rec.Restrictions); err != nil {
			return staterules.StateNILRules{}, fmt.Errorf("decode restrictions for %s: %w", row.StateCode, err)
		}
	}
	return rec, nil
}
