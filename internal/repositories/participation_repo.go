package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"competition-leaderboard-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParticipationRepository owns the participation log together with the cached
// aggregates on profiles: every insert or delete updates the owning member's
// total_participation_count and last_activity_at in the same transaction, so
// the cache can be trusted by the unfiltered leaderboard.
type ParticipationRepository interface {
	CreateLog(db *gorm.DB, log *models.ParticipationLog) error
	DeleteLog(db *gorm.DB, id string) error
	HasLog(profileID, competitionID string) (bool, error)
	ListLogs(offset, limit int) ([]models.ParticipationLog, int64, error)
	GetLogsByProfile(profileID string) ([]models.ParticipationLog, error)
	CategoryCounts(category string) (map[uuid.UUID]int, error)
	RecountProfile(db *gorm.DB, profileID string) error
	CountLogs() (int64, error)
	Transaction(txFunc func(*gorm.DB) error) error
}

type participationRepo struct {
	db *gorm.DB
}

func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepo{db: db}
}

// CreateLog inserts a participation log entry and bumps the owner's cached
// counters. Returns ErrDuplicateParticipation when the (profile, competition)
// pair already exists; the unique index backs the pre-check against races.
func (r *participationRepo) CreateLog(db *gorm.DB, log *models.ParticipationLog) error {
	if db == nil {
		db = r.db
	}

	exists, err := hasLog(db, log.ProfileID.String(), log.CompetitionID.String())
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateParticipation
	}

	if err := db.Create(log).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateParticipation
		}
		return fmt.Errorf("failed to create participation log: %w", err)
	}

	if err := db.Model(&models.Profile{}).
		Where("id = ?", log.ProfileID).
		Updates(map[string]interface{}{
			"total_participation_count": gorm.Expr("total_participation_count + 1"),
			"last_activity_at":          log.CreatedAt,
		}).Error; err != nil {
		return fmt.Errorf("failed to update participation counter: %w", err)
	}

	return nil
}

// DeleteLog removes a participation log entry and re-derives the owner's
// cached counters from the remaining rows.
func (r *participationRepo) DeleteLog(db *gorm.DB, id string) error {
	if db == nil {
		db = r.db
	}

	var log models.ParticipationLog
	if err := db.Where("id = ?", id).First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("participation log not found with ID: %s", id)
		}
		return fmt.Errorf("failed to get participation log: %w", err)
	}

	if err := db.Delete(&log).Error; err != nil {
		return fmt.Errorf("failed to delete participation log: %w", err)
	}

	return r.RecountProfile(db, log.ProfileID.String())
}

func (r *participationRepo) HasLog(profileID, competitionID string) (bool, error) {
	return hasLog(r.db, profileID, competitionID)
}

func hasLog(db *gorm.DB, profileID, competitionID string) (bool, error) {
	var count int64
	if err := db.Model(&models.ParticipationLog{}).
		Where("profile_id = ? AND competition_id = ?", profileID, competitionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *participationRepo) ListLogs(offset, limit int) ([]models.ParticipationLog, int64, error) {
	var logs []models.ParticipationLog
	var total int64

	if err := r.db.Model(&models.ParticipationLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.
		Preload("Profile").
		Preload("Competition").
		Preload("Admin").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func (r *participationRepo) GetLogsByProfile(profileID string) ([]models.ParticipationLog, error) {
	var logs []models.ParticipationLog
	if err := r.db.
		Preload("Competition").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// CategoryCounts returns the effective participation count per profile for
// one competition category, recomputed from the log instead of the cache.
func (r *participationRepo) CategoryCounts(category string) (map[uuid.UUID]int, error) {
	var rows []struct {
		ProfileID uuid.UUID
		Total     int
	}

	if err := r.db.Model(&models.ParticipationLog{}).
		Select("participation_logs.profile_id AS profile_id, COUNT(*) AS total").
		Joins("JOIN competitions ON competitions.id = participation_logs.competition_id").
		Where("competitions.category = ?", category).
		Group("participation_logs.profile_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count category participations: %w", err)
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.ProfileID] = row.Total
	}
	return counts, nil
}

// RecountProfile re-derives a profile's cached counters from the log:
// count(*) and max(created_at), or zero/null when no rows remain.
func (r *participationRepo) RecountProfile(db *gorm.DB, profileID string) error {
	if db == nil {
		db = r.db
	}

	var count int64
	if err := db.Model(&models.ParticipationLog{}).
		Where("profile_id = ?", profileID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count participation logs: %w", err)
	}

	var lastActivity sql.NullTime
	if err := db.Model(&models.ParticipationLog{}).
		Where("profile_id = ?", profileID).
		Select("MAX(created_at)").
		Scan(&lastActivity).Error; err != nil {
		return fmt.Errorf("failed to compute last activity: %w", err)
	}

	updates := map[string]interface{}{
		"total_participation_count": count,
		"last_activity_at":          nil,
	}
	if lastActivity.Valid {
		updates["last_activity_at"] = lastActivity.Time
	}

	if err := db.Model(&models.Profile{}).
		Where("id = ?", profileID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update profile counters: %w", err)
	}

	return nil
}

func (r *participationRepo) CountLogs() (int64, error) {
	var count int64
	if err := r.db.Model(&models.ParticipationLog{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *participationRepo) Transaction(txFunc func(*gorm.DB) error) error {
	return r.db.Transaction(txFunc)
}
