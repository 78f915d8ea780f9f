package services

import (
	"errors"
	"strings"
	"time"

	"competition-leaderboard-backend/internal/config"
	"competition-leaderboard-backend/internal/models"
	"competition-leaderboard-backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParticipationService covers the administrator bypass path: direct log
// entries for backfilling historical participation, and deletion. Both share
// the approval path's uniqueness constraint and counter side effects.
type ParticipationService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewParticipationService(repo *repositories.Repository, cfg *config.Config) *ParticipationService {
	return &ParticipationService{repo: repo, cfg: cfg}
}

type AddParticipationInput struct {
	ProfileID           string
	CompetitionTitle    string
	CompetitionCategory string
	Notes               string
	ParticipationDate   *time.Time
}

func (s *ParticipationService) AddParticipation(adminID string, input AddParticipationInput) (*models.ParticipationLog, error) {
	if strings.TrimSpace(input.CompetitionTitle) == "" {
		return nil, errors.New("competition title is required")
	}

	profile, err := s.repo.ProfileRepo.GetProfileByID(input.ProfileID)
	if err != nil {
		return nil, errors.New("profile not found")
	}

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, errors.New("invalid admin ID")
	}

	var log *models.ParticipationLog
	err = s.repo.ParticipationRepo.Transaction(func(tx *gorm.DB) error {
		competition, err := s.repo.CompetitionRepo.FindOrCreateByTitle(
			tx, input.CompetitionTitle, input.CompetitionCategory, time.Time{},
		)
		if err != nil {
			return err
		}

		log = &models.ParticipationLog{
			ID:                uuid.New(),
			ProfileID:         profile.ID,
			CompetitionID:     competition.ID,
			AdminID:           &adminUUID,
			Notes:             strings.TrimSpace(input.Notes),
			ParticipationDate: input.ParticipationDate,
			CreatedAt:         time.Now(),
		}
		return s.repo.ParticipationRepo.CreateLog(tx, log)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateParticipation) {
			return nil, errors.New("member is already registered for this competition")
		}
		return nil, err
	}

	return log, nil
}

// DeleteParticipation removes a log entry; the owner's cached counter and
// last-activity timestamp are re-derived in the same transaction. There is
// no undo.
func (s *ParticipationService) DeleteParticipation(logID string) error {
	return s.repo.ParticipationRepo.Transaction(func(tx *gorm.DB) error {
		return s.repo.ParticipationRepo.DeleteLog(tx, logID)
	})
}

func (s *ParticipationService) ListParticipations(page, pageSize int) ([]models.ParticipationLog, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	logs, total, err := s.repo.ParticipationRepo.ListLogs(offset, pageSize)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return logs, total, totalPages, nil
}

func (s *ParticipationService) GetParticipationsByProfile(profileID string) ([]models.ParticipationLog, error) {
	if _, err := s.repo.ProfileRepo.GetProfileByID(profileID); err != nil {
		return nil, errors.New("profile not found")
	}
	return s.repo.ParticipationRepo.GetLogsByProfile(profileID)
}
