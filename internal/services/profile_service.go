package services

import (
	"errors"
	"strings"

	"competition-leaderboard-backend/internal/config"
	"competition-leaderboard-backend/internal/models"
	"competition-leaderboard-backend/internal/repositories"

	"github.com/google/uuid"
)

type ProfileService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewProfileService(repo *repositories.Repository, cfg *config.Config) *ProfileService {
	return &ProfileService{repo: repo, cfg: cfg}
}

type CreateProfileRequest struct {
	FullName  string
	Division  string
	AvatarURL string
}

// CreateProfile adds a member record without an auth identity, used by
// administrators to register people who never log in themselves.
func (s *ProfileService) CreateProfile(req CreateProfileRequest) (*models.Profile, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, errors.New("full name is required")
	}

	profile := &models.Profile{
		ID:        uuid.New(),
		FullName:  fullName,
		Division:  req.Division,
		AvatarURL: req.AvatarURL,
	}

	if err := s.repo.ProfileRepo.CreateProfile(nil, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *ProfileService) ListProfiles() ([]models.Profile, error) {
	return s.repo.ProfileRepo.ListProfiles()
}

func (s *ProfileService) GetProfile(id string) (*models.Profile, error) {
	return s.repo.ProfileRepo.GetProfileByID(id)
}

func (s *ProfileService) UpdateAvatar(profileID, avatarURL string) (*models.Profile, error) {
	profile, err := s.repo.ProfileRepo.GetProfileByID(profileID)
	if err != nil {
		return nil, err
	}

	profile.AvatarURL = avatarURL
	if err := s.repo.ProfileRepo.UpdateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteProfile removes a member and everything they own: requests and
// participation logs go with the profile.
func (s *ProfileService) DeleteProfile(id string) error {
	return s.repo.ProfileRepo.DeleteProfile(id)
}

type Stats struct {
	TotalProfiles      int64 `json:"total_profiles"`
	TotalCompetitions  int64 `json:"total_competitions"`
	TotalParticipation int64 `json:"total_participations"`
	PendingRequests    int64 `json:"pending_requests"`
}

func (s *ProfileService) GetStats() (*Stats, error) {
	profiles, err := s.repo.ProfileRepo.CountProfiles()
	if err != nil {
		return nil, err
	}
	competitions, err := s.repo.CompetitionRepo.CountCompetitions()
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.ParticipationRepo.CountLogs()
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.RequestRepo.CountPendingRequests()
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalProfiles:      profiles,
		TotalCompetitions:  competitions,
		TotalParticipation: logs,
		PendingRequests:    pending,
	}, nil
}
