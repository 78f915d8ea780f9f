package repositories

import (
	"errors"
	"fmt"

	"competition-leaderboard-backend/internal/models"

	"gorm.io/gorm"
)

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) CreateProfile(db *gorm.DB, profile *models.Profile) error {
	if db == nil {
		db = r.db
	}
	return db.Create(profile).Error
}

func (r *profileRepo) GetProfileByID(id string) (*models.Profile, error) {
	if id == "" {
		return nil, errors.New("profile ID cannot be empty")
	}

	var profile models.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

func (r *profileRepo) GetProfileByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListProfiles returns every profile. Final leaderboard order is decided by
// the ranking comparator in the service layer; the DB order is only a
// pre-sort on the cached counter.
func (r *profileRepo) ListProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.
		Order("total_participation_count DESC").
		Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepo) UpdateProfile(profile *models.Profile) error {
	if profile == nil {
		return errors.New("profile cannot be nil")
	}
	return r.db.Save(profile).Error
}

// DeleteProfile removes a profile together with its owned verification
// requests and participation logs.
func (r *profileRepo) DeleteProfile(id string) error {
	if id == "" {
		return errors.New("profile ID cannot be empty")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", id).Delete(&models.VerificationRequest{}).Error; err != nil {
			return fmt.Errorf("failed to delete verification requests: %w", err)
		}
		if err := tx.Where("profile_id = ?", id).Delete(&models.ParticipationLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete participation logs: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Profile{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete profile: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("profile not found with ID: %s", id)
		}
		return nil
	})
}

func (r *profileRepo) CountProfiles() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Profile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *profileRepo) Transaction(txFunc func(*gorm.DB) error) error {
	return r.db.Transaction(txFunc)
}
