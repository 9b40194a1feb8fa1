// Package events publishes engine outcomes to downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
)

// Event type names carried on the wire.
const (
	TypeDealScored     = "deal.scored"
	TypeMatchGenerated = "match.generated"
)

// Publisher emits engine outcome events. Implementations must be safe
// for concurrent use.
type Publisher interface {
	PublishDealScored(ctx context.Context, result model.ComplianceScoreResult) error
	PublishMatchGenerated(ctx context.Context, match model.MatchResult) error
	Close() error
}

// DealScoredEvent is the wire shape of a scored deal.
type DealScoredEvent struct {
	Type        string    `json:"type"`
	DealID      string    `json:"deal_id"`
	AthleteID   string    `json:"athlete_id"`
	TotalScore  int       `json:"total_score"`
	Status      string    `json:"status"`
	ReasonCodes []string  `json:"reason_codes,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// MatchGeneratedEvent is the wire shape of a generated match.
type MatchGeneratedEvent struct {
	Type       string    `json:"type"`
	AgencyID   string    `json:"agency_id"`
	AthleteID  string    `json:"athlete_id"`
	MatchScore int       `json:"match_score"`
	MatchTier  string    `json:"match_tier"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newDealScoredEvent(result model.ComplianceScoreResult, now time.Time) DealScoredEvent {
	return DealScoredEvent{
		Type:        TypeDealScored,
		DealID:      result.DealID,
		AthleteID:   result.AthleteID,
		TotalScore:  result.TotalScore,
		Status:      string(result.Status),
		ReasonCodes: result.ReasonCodes,
		OccurredAt:  now,
	}
}

func newMatchGeneratedEvent(match model.MatchResult, now time.Time) MatchGeneratedEvent {
	return MatchGeneratedEvent{
		Type:       TypeMatchGenerated,
		AgencyID:   match.AgencyID,
		AthleteID:  match.AthleteID,
		MatchScore: match.MatchScore,
		MatchTier:  string(match.MatchTier),
		OccurredAt: now,
	}
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishDealScored(ctx context.Context, result model.ComplianceScoreResult) error {
	return nil
}

func (NopPublisher) PublishMatchGenerated(ctx context.Context, match model.MatchResult) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
