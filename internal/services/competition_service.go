package services

import (
	"errors"
	"time"

	"competition-leaderboard-backend/internal/config"
	"competition-leaderboard-backend/internal/models"
	"competition-leaderboard-backend/internal/repositories"

	"github.com/google/uuid"
)

type CompetitionService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewCompetitionService(repo *repositories.Repository, cfg *config.Config) *CompetitionService {
	return &CompetitionService{repo: repo, cfg: cfg}
}

type CreateCompetitionRequest struct {
	Title       string
	Date        time.Time
	Description string
	Category    string
}

func (s *CompetitionService) CreateCompetition(req CreateCompetitionRequest) (*models.Competition, error) {
	if req.Category == "" {
		req.Category = "Other"
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	competition := &models.Competition{
		ID:          uuid.New(),
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		Category:    req.Category,
	}

	if err := s.repo.CompetitionRepo.CreateCompetition(competition); err != nil {
		return nil, err
	}

	return competition, nil
}

func (s *CompetitionService) ListCompetitions() ([]models.Competition, error) {
	return s.repo.CompetitionRepo.ListCompetitions()
}

func (s *CompetitionService) ListCategories() ([]string, error) {
	return s.repo.CompetitionRepo.ListCategories()
}

func (s *CompetitionService) GetCompetition(id string) (*models.Competition, error) {
	if id == "" {
		return nil, errors.New("competition ID is required")
	}
	return s.repo.CompetitionRepo.GetCompetitionByID(id)
}
