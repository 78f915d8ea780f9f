package repositories

import (
	"competition-leaderboard-backend/internal/models"

	"gorm.io/gorm"
)

type requestRepo struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) CreateRequest(db *gorm.DB, req *models.VerificationRequest) error {
	if db == nil {
		db = r.db
	}
	return db.Create(req).Error
}

func (r *requestRepo) GetRequestByID(id string) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := r.db.
		Preload("Profile").
		Preload("Competition").
		Where("id = ?", id).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepo) ListRequests(status string) ([]models.VerificationRequest, error) {
	var requests []models.VerificationRequest

	query := r.db.
		Preload("Profile").
		Preload("Competition")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepo) ListRequestsByProfile(profileID string) ([]models.VerificationRequest, error) {
	var requests []models.VerificationRequest
	if err := r.db.
		Preload("Competition").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepo) UpdateRequestStatus(db *gorm.DB, id, status string) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.VerificationRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *requestRepo) CountPendingRequests() (int64, error) {
	var count int64
	if err := r.db.Model(&models.VerificationRequest{}).
		Where("status = ?", models.StatusPending).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
