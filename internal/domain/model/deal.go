// Package model contains domain models passed between layers.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DealType categorizes the kind of NIL activity a deal covers.
type DealType string

// Supported deal types.
const (
	DealSponsorship     DealType = "sponsorship"
	DealEndorsement     DealType = "endorsement"
	DealAppearance      DealType = "appearance"
	DealContentCreation DealType = "content_creation"
	DealSocialMedia     DealType = "social_media"
	DealMerchandise     DealType = "merchandise"
	DealLicensing       DealType = "licensing"
	DealEvent           DealType = "event"
	DealOther           DealType = "other"
)

// DealInput is a proposed NIL deal as submitted for scoring.
type DealInput struct {
	ID             string          `json:"id"`
	AthleteID      string          `json:"athlete_id"`
	DealType       DealType        `json:"deal_type"`
	Category       string          `json:"category"` // brand/industry category, e.g. "apparel", "gambling"
	ThirdPartyName string          `json:"third_party_name"`
	Compensation   decimal.Decimal `json:"compensation"`
	Deliverables   string          `json:"deliverables"`
	ContractText   string          `json:"contract_text,omitempty"`
	State          string          `json:"state"`

	IsSchoolAffiliated bool `json:"is_school_affiliated"`
	IsBoosterConnected bool `json:"is_booster_connected"`
	PerformanceBased   bool `json:"performance_based"`
}

// Validate enforces caller-side invariants. Compensation must be a
// non-negative amount; it is normalized to two decimal places.
func (d *DealInput) Validate() error {
	if strings.TrimSpace(d.AthleteID) == "" {
		return ErrMissingAthleteID
	}
	if d.Compensation.IsNegative() {
		return ErrNegativeCompensation
	}
	d.Compensation = d.Compensation.Round(2)
	return nil
}

// NormalizedCategory returns the lower-cased category, falling back to the
// deal type when no explicit brand category was given.
func (d DealInput) NormalizedCategory() string {
	c := strings.ToLower(strings.TrimSpace(d.Category))
	if c == "" {
		c = string(d.DealType)
	}
	return c
}
