package repositories

import (
	"errors"

	"competition-leaderboard-backend/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateParticipation is returned when a (profile, competition) pair
// already has a participation log entry. Duplicates are rejected, never
// silently merged.
var ErrDuplicateParticipation = errors.New("participation already recorded for this member and competition")

type Repository struct {
	DB               *gorm.DB
	UserRepo         UserRepository
	ProfileRepo      ProfileRepository
	CompetitionRepo  CompetitionRepository
	RequestRepo      RequestRepository
	ParticipationRepo ParticipationRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:                db,
		UserRepo:          NewUserRepository(db),
		ProfileRepo:       NewProfileRepository(db),
		CompetitionRepo:   NewCompetitionRepository(db),
		RequestRepo:       NewRequestRepository(db),
		ParticipationRepo: NewParticipationRepository(db),
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Competition{},
		&models.VerificationRequest{},
		&models.ParticipationLog{},
	)
}

// Interface definitions
type UserRepository interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	CreateUser(db *gorm.DB, user *models.User) error
	CountUsers() (int64, error)
}

type ProfileRepository interface {
	CreateProfile(db *gorm.DB, profile *models.Profile) error
	GetProfileByID(id string) (*models.Profile, error)
	GetProfileByUserID(userID string) (*models.Profile, error)
	ListProfiles() ([]models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	DeleteProfile(id string) error
	CountProfiles() (int64, error)
	Transaction(txFunc func(*gorm.DB) error) error
}

type RequestRepository interface {
	CreateRequest(db *gorm.DB, req *models.VerificationRequest) error
	GetRequestByID(id string) (*models.VerificationRequest, error)
	ListRequests(status string) ([]models.VerificationRequest, error)
	ListRequestsByProfile(profileID string) ([]models.VerificationRequest, error)
	UpdateRequestStatus(db *gorm.DB, id, status string) error
	CountPendingRequests() (int64, error)
}
