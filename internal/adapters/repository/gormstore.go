package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DetroitRed03/chatnil-engine/internal/domain/model"
	"github.com/DetroitRed03/chatnil-engine/pkg/metrics"
)

// matchRow is the relational shape of a stored match.
type matchRow struct {
	AgencyID       string `gorm:"primaryKey;size:64"`
	AthleteID      string `gorm:"primaryKey;size:64"`
	FollowerCount  int
	MatchScore     int
	MatchTier      string `gorm:"size:16"`
	MatchReasons   string `gorm:"type:jsonb"`
	ScoreBreakdown string `gorm:"type:jsonb"`
	Status         string `gorm:"size:24;index"`
	GeneratedAt    time.Time
	UpdatedAt      time.Time
}

func (matchRow) TableName() string { return "match_results" }

// scoreRow is the relational shape of a stored deal score.
type scoreRow struct {
	DealID          string `gorm:"primaryKey;size:64"`
	AthleteID       string `gorm:"size:64;index"`
	TotalScore      int
	Status          string `gorm:"size:16;index"`
	Dimensions      string `gorm:"type:jsonb"`
	ReasonCodes     string `gorm:"type:jsonb"`
	Recommendations string `gorm:"type:jsonb"`
	ScoredAt        time.Time
	UpdatedAt       time.Time
}

func (scoreRow) TableName() string { return "deal_scores" }

// GormStore is a PostgreSQL-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore opens a PostgreSQL connection and migrates the schema.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&matchRow{}, &scoreRow{}, &stateRuleRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) UpsertSuggested(ctx context.Context, m model.MatchResult) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	row, err := toMatchRow(m)
	if err != nil {
		return false, err
	}

	created := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing matchRow
		findErr := tx.Where("agency_id = ? AND athlete_id = ?", m.AgencyID, m.AthleteID).
			First(&existing).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			created = true
			return tx.Create(&row).Error
		}
		if findErr != nil {
			return findErr
		}
		if existing.Status != string(model.MatchSuggested) {
			row.Status = existing.Status
		}
		return tx.Model(&matchRow{}).
			Where("agency_id = ? AND athlete_id = ?", m.AgencyID, m.AthleteID).
			Updates(map[string]any{
				"follower_count":  row.FollowerCount,
				"match_score":     row.MatchScore,
				"match_tier":      row.MatchTier,
				"match_reasons":   row.MatchReasons,
				"score_breakdown": row.ScoreBreakdown,
				"status":          row.Status,
				"generated_at":    row.GeneratedAt,
			}).Error
	})
	if err != nil {
		metrics.RecordStoreUpsert("error")
		return false, fmt.Errorf("upsert match: %w", err)
	}

	if created {
		metrics.RecordStoreUpsert("created")
	} else {
		metrics.RecordStoreUpsert("updated")
	}
	return created, nil
}

func (s *GormStore) SetStatus(ctx context.Context, agencyID, athleteID string, status model.MatchStatus) error {
	res := s.db.WithContext(ctx).Model(&matchRow{}).
		Where("agency_id = ? AND athlete_id = ?", agencyID, athleteID).
		Update("status", string(status))
	if res.Error != nil {
		return fmt.Errorf("set match status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, agencyID, athleteID string) (model.MatchResult, error) {
	var row matchRow
	err := s.db.WithContext(ctx).
		Where("agency_id = ? AND athlete_id = ?", agencyID, athleteID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MatchResult{}, ErrNotFound
	}
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("get match: %w", err)
	}
	return fromMatchRow(row)
}

func (s *GormStore) TopMatches(ctx context.Context, agencyID string, limit int) ([]model.MatchResult, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}

	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	var rows []matchRow
	err := s.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("match_score DESC, follower_count DESC, athlete_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top matches: %w", err)
	}

	out := make([]model.MatchResult, 0, len(rows))
	for _, row := range rows {
		m, convErr := fromMatchRow(row)
		if convErr != nil {
			return nil, convErr
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *GormStore) Count(ctx context.Context) int {
	var n int64
	s.db.WithContext(ctx).Model(&matchRow{}).Count(&n)
	return int(n)
}

func (s *GormStore) SaveScore(ctx context.Context, result model.ComplianceScoreResult) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	row, err := toScoreRow(result)
	if err != nil {
		return false, err
	}

	created := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing scoreRow
		findErr := tx.Where("deal_id = ?", result.DealID).First(&existing).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			created = true
			return tx.Create(&row).Error
		}
		if findErr != nil {
			return findErr
		}
		return tx.Model(&scoreRow{}).
			Where("deal_id = ?", result.DealID).
			Updates(&row).Error
	})
	if err != nil {
		metrics.RecordStoreUpsert("error")
		return false, fmt.Errorf("save score: %w", err)
	}

	if created {
		metrics.RecordStoreUpsert("created")
	} else {
		metrics.RecordStoreUpsert("updated")
	}
	return created, nil
}

func (s *GormStore) GetScore(ctx context.Context, dealID string) (model.ComplianceScoreResult, error) {
	var row scoreRow
	err := s.db.WithContext(ctx).Where("deal_id = ?", dealID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ComplianceScoreResult{}, ErrNotFound
	}
	if err != nil {
		return model.ComplianceScoreResult{}, fmt.Errorf("get score: %w", err)
	}
	return fromScoreRow(row)
}

func (s *GormStore) ScoreCount(ctx context.Context) int {
	var n int64
	s.db.WithContext(ctx).Model(&scoreRow{}).Count(&n)
	return int(n)
}

func toMatchRow(m model.MatchResult) (matchRow, error) {
	reasons, err := json.Marshal(m.MatchReasons)
	if err != nil {
		return matchRow{}, fmt.Errorf("encode match reasons: %w", err)
	}
	breakdown, err := json.Marshal(m.ScoreBreakdown)
	if err != nil {
		return matchRow{}, fmt.Errorf("encode score breakdown: %w", err)
	}
	return matchRow{
		AgencyID:       m.AgencyID,
		AthleteID:      m.AthleteID,
		FollowerCount:  m.FollowerCount,
		MatchScore:     m.MatchScore,
		MatchTier:      string(m.MatchTier),
		MatchReasons:   string(reasons),
		ScoreBreakdown: string(breakdown),
		Status:         string(m.Status),
		GeneratedAt:    m.GeneratedAt,
	}, nil
}

func fromMatchRow(row matchRow) (model.MatchResult, error) {
	m := model.MatchResult{
		AgencyID:      row.AgencyID,
		AthleteID:     row.AthleteID,
		FollowerCount: row.FollowerCount,
		MatchScore:    row.MatchScore,
		MatchTier:     model.MatchTier(row.MatchTier),
		Status:        model.MatchStatus(row.Status),
		GeneratedAt:   row.GeneratedAt,
	}
	if row.MatchReasons != "" {
		if err := json.Unmarshal([]byte(row.MatchReasons), &m.MatchReasons); err != nil {
			return model.MatchResult{}, fmt.Errorf("decode match reasons: %w", err)
		}
	}
	if row.ScoreBreakdown != "" {
		if err := json.Unmarshal([]byte(row.ScoreBreakdown), &m.ScoreBreakdown); err != nil {
			return model.MatchResult{}, fmt.Errorf("decode score breakdown: %w", err)
		}
	}
	return m, nil
}

func toScoreRow(r model.ComplianceScoreResult) (scoreRow, error) {
	dims, err := json.Marshal(r.Dimensions)
	if err != nil {
		return scoreRow{}, fmt.Errorf("encode dimensions: %w", err)
	}
	codes, err := json.Marshal(r.ReasonCodes)
	if err != nil {
		return scoreRow{}, fmt.Errorf("encode reason codes: %w", err)
	}
	recs, err := json.Marshal(r.Recommendations)
	if err != nil {
		return scoreRow{}, fmt.Errorf("encode recommendations: %w", err)
	}
	return scoreRow{
		DealID:          r.DealID,
		AthleteID:       r.AthleteID,
		TotalScore:      r.TotalScore,
		Status:          string(r.Status),
		Dimensions:      string(dims),
		ReasonCodes:     string(codes),
		Recommendations: string(recs),
		ScoredAt:        r.ScoredAt,
	}, nil
}

func fromScoreRow(row scoreRow) (model.ComplianceScoreResult, error) {
	r := model.ComplianceScoreResult{
		DealID:     row.DealID,
		AthleteID:  row.AthleteID,
		TotalScore: row.TotalScore,
		Status:     model.ComplianceStatus(row.Status),
		ScoredAt:   row.ScoredAt,
	}
	if row.Dimensions != "" {
		if err := json.Unmarshal([]byte(row.Dimensions), &r.Dimensions); err != nil {
			return model.ComplianceScoreResult{}, fmt.Errorf("decode dimensions: %w", err)
		}
	}
	if row.ReasonCodes != "" {
		if err := json.Unmarshal([]byte(row.ReasonCodes), &r.ReasonCodes); err != nil {
			return model.ComplianceScoreResult{}, fmt.Errorf("decode reason codes: %w", err)
		}
	}
	if row.Recommendations != "" {
		if err := json.Unmarshal([]byte(row.Recommendations), &r.Recommendations); err != nil {
			return model.ComplianceScoreResult{}, fmt.Errorf("decode recommendations: %w", err)
		}
	}
	return r, nil
}
