package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"competition-leaderboard-backend/internal/config"
	"competition-leaderboard-backend/internal/models"
	"competition-leaderboard-backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationService governs the request lifecycle: a member's claim enters
// as pending and is moved exactly once by an administrator to approved or
// rejected. Approval writes the participation log entry and the cached
// counters in one transaction with the status update, so a duplicate
// participation rolls the whole transition back and the request stays
// pending.
type VerificationService interface {
	SubmitRequest(userID string, req SubmitRequestInput) (*models.VerificationRequest, error)
	ApproveRequest(requestID, adminID string) (*models.VerificationRequest, error)
	RejectRequest(requestID, adminID string) (*models.VerificationRequest, error)
	ListRequests(status string) ([]models.VerificationRequest, error)
	GetRequestsForUser(userID string) ([]models.VerificationRequest, error)
}

type SubmitRequestInput struct {
	CompetitionTitle    string
	CompetitionCategory string
	Message             string
	ParticipationDate   *time.Time
}

type verificationService struct {
	profileRepo       repositories.ProfileRepository
	competitionRepo   repositories.CompetitionRepository
	requestRepo       repositories.RequestRepository
	participationRepo repositories.ParticipationRepository
	cfg               *config.Config
}

func NewVerificationService(
	profileRepo repositories.ProfileRepository,
	competitionRepo repositories.CompetitionRepository,
	requestRepo repositories.RequestRepository,
	participationRepo repositories.ParticipationRepository,
	cfg *config.Config,
) VerificationService {
	return &verificationService{
		profileRepo:       profileRepo,
		competitionRepo:   competitionRepo,
		requestRepo:       requestRepo,
		participationRepo: participationRepo,
		cfg:               cfg,
	}
}

// SubmitRequest files a pending claim for the calling member. The named
// competition is resolved case-insensitively and created lazily when missing;
// a competition-creation failure aborts the whole submission so no orphaned
// request is left behind.
func (s *verificationService) SubmitRequest(userID string, req SubmitRequestInput) (*models.VerificationRequest, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, NewVerificationError("message is required", ErrInvalidInput, nil)
	}
	if strings.TrimSpace(req.CompetitionTitle) == "" {
		return nil, NewVerificationError("competition title is required", ErrInvalidInput, nil)
	}
	if strings.TrimSpace(req.CompetitionCategory) == "" {
		return nil, NewVerificationError("competition category is required", ErrInvalidInput, nil)
	}

	profile, err := s.profileRepo.GetProfileByUserID(userID)
	if err != nil {
		return nil, NewVerificationError("no member profile found for this account", ErrProfileNotFound, err)
	}

	var request *models.VerificationRequest
	err = s.profileRepo.Transaction(func(tx *gorm.DB) error {
		competition, err := s.competitionRepo.FindOrCreateByTitle(
			tx, req.CompetitionTitle, req.CompetitionCategory, time.Time{},
		)
		if err != nil {
			return NewVerificationError("failed to resolve competition", ErrDatabaseError, err)
		}

		request = &models.VerificationRequest{
			ID:                uuid.New(),
			ProfileID:         profile.ID,
			CompetitionID:     &competition.ID,
			Message:           strings.TrimSpace(req.Message),
			ParticipationDate: req.ParticipationDate,
			Status:            models.StatusPending,
		}
		if err := s.requestRepo.CreateRequest(tx, request); err != nil {
			return NewVerificationError("failed to create verification request", ErrDatabaseError, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// ApproveRequest moves a pending request to approved. The log insert happens
// before the status flip inside one transaction: when the member already has
// an entry for the competition the insert fails, everything rolls back, the
// request remains pending and the counter is untouched.
func (s *verificationService) ApproveRequest(requestID, adminID string) (*models.VerificationRequest, error) {
	request, err := s.loadPendingRequest(requestID)
	if err != nil {
		return nil, err
	}

	if request.CompetitionID == nil {
		return nil, NewVerificationError("request has no competition attached", ErrCompetitionMissing, nil)
	}

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, NewVerificationError("invalid admin ID", ErrInvalidInput, err)
	}

	err = s.participationRepo.Transaction(func(tx *gorm.DB) error {
		log := &models.ParticipationLog{
			ID:                uuid.New(),
			ProfileID:         request.ProfileID,
			CompetitionID:     *request.CompetitionID,
			AdminID:           &adminUUID,
			Notes:             fmt.Sprintf("Approved via verification request: %s", request.Message),
			ParticipationDate: request.ParticipationDate,
			CreatedAt:         time.Now(),
		}

		if err := s.participationRepo.CreateLog(tx, log); err != nil {
			if errors.Is(err, repositories.ErrDuplicateParticipation) {
				return NewVerificationError(
					"member is already registered for this competition",
					ErrAlreadyRegistered, err,
				)
			}
			return NewVerificationError("failed to create participation log", ErrDatabaseError, err)
		}

		return s.requestRepo.UpdateRequestStatus(tx, requestID, models.StatusApproved)
	})
	if err != nil {
		var verr *VerificationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		return nil, NewVerificationError("failed to approve request", ErrDatabaseError, err)
	}

	request.Status = models.StatusApproved
	return request, nil
}

// RejectRequest moves a pending request to rejected. No participation log
// side effect.
func (s *verificationService) RejectRequest(requestID, adminID string) (*models.VerificationRequest, error) {
	request, err := s.loadPendingRequest(requestID)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.UpdateRequestStatus(nil, requestID, models.StatusRejected); err != nil {
		return nil, NewVerificationError("failed to reject request", ErrDatabaseError, err)
	}

	request.Status = models.StatusRejected
	return request, nil
}

func (s *verificationService) ListRequests(status string) ([]models.VerificationRequest, error) {
	return s.requestRepo.ListRequests(status)
}

func (s *verificationService) GetRequestsForUser(userID string) ([]models.VerificationRequest, error) {
	profile, err := s.profileRepo.GetProfileByUserID(userID)
	if err != nil {
		return nil, NewVerificationError("no member profile found for this account", ErrProfileNotFound, err)
	}
	return s.requestRepo.ListRequestsByProfile(profile.ID.String())
}

// loadPendingRequest fetches a request and enforces that it is still open.
// Approved and rejected are terminal; no transition leaves them.
func (s *verificationService) loadPendingRequest(requestID string) (*models.VerificationRequest, error) {
	request, err := s.requestRepo.GetRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewVerificationError("verification request not found", ErrRequestNotFound, err)
		}
		return nil, NewVerificationError("failed to get verification request", ErrDatabaseError, err)
	}

	if request.Status != models.StatusPending {
		return nil, NewVerificationError(
			fmt.Sprintf("request is already %s", request.Status),
			ErrRequestClosed, nil,
		)
	}

	return request, nil
}

// Error handling types and constants
type VerificationErrorType string

const (
	ErrInvalidInput       VerificationErrorType = "INVALID_INPUT"
	ErrProfileNotFound    VerificationErrorType = "PROFILE_NOT_FOUND"
	ErrRequestNotFound    VerificationErrorType = "REQUEST_NOT_FOUND"
	ErrRequestClosed      VerificationErrorType = "REQUEST_CLOSED"
	ErrCompetitionMissing VerificationErrorType = "COMPETITION_MISSING"
	ErrAlreadyRegistered  VerificationErrorType = "ALREADY_REGISTERED"
	ErrDatabaseError      VerificationErrorType = "DATABASE_ERROR"
)

type VerificationError struct {
	Message string                `json:"message"`
	Code    VerificationErrorType `json:"code"`
	Details error                 `json:"details,omitempty"`
}

func (e *VerificationError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Message, e.Code, e.Details)
	}
	return fmt.Sprintf("%s [%s]", e.Message, e.Code)
}

func NewVerificationError(message string, code VerificationErrorType, details error) *VerificationError {
	return &VerificationError{
		Message: message,
		Code:    code,
		Details: details,
	}
}

func GetVerificationErrorCode(err error) VerificationErrorType {
	var verr *VerificationError
	if errors.As(err, &verr) {
		return verr.Code
	}
	return ""
}
