// Package repository defines persistence for match results and deal
// compliance scores.
package repository

import (
	"context"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
)

// MatchStore provides read/write access to generated matches.
type MatchStore interface {
	// UpsertSuggested inserts a freshly generated match or refreshes the
	// scoring fields of an existing one. A status that an agency user
	// has moved past "suggested" is preserved on refresh.
	// Returns true if the match was newly created.
	UpsertSuggested(ctx context.Context, m model.MatchResult) (bool, error)

	// SetStatus records a workflow transition for a match.
	// Returns ErrNotFound if the pairing is unknown.
	SetStatus(ctx context.Context, agencyID, athleteID string, status model.MatchStatus) error

	// Get returns the stored match for an agency/athlete pairing.
	// Returns ErrNotFound if the pairing is unknown.
	Get(ctx context.Context, agencyID, athleteID string) (model.MatchResult, error)

	// TopMatches returns up to limit matches for an agency ordered by
	// score desc, follower count desc, athlete id asc, matching the
	// engine's generation order.
	TopMatches(ctx context.Context, agencyID string, limit int) ([]model.MatchResult, error)

	// Count returns the number of matches tracked across all agencies.
	Count(ctx context.Context) int
}

// ScoreStore provides read/write access to deal compliance scores.
type ScoreStore interface {
	// SaveScore upserts a score result keyed by deal id.
	// Returns true if a score for the deal was newly created.
	SaveScore(ctx context.Context, result model.ComplianceScoreResult) (bool, error)

	// GetScore returns the stored score for a deal.
	// Returns ErrNotFound if the deal has not been scored.
	GetScore(ctx context.Context, dealID string) (model.ComplianceScoreResult, error)

	// ScoreCount returns the number of scored deals.
	ScoreCount(ctx context.Context) int
}

// Store combines both persistence surfaces.
type Store interface {
	MatchStore
	ScoreStore
}
