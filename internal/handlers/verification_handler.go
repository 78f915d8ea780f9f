package handlers

import (
	"time"

	"competition-leaderboard-backend/internal/middleware"
	"competition-leaderboard-backend/internal/models"
	"competition-leaderboard-backend/internal/services"
	"competition-leaderboard-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SubmitRequestRequest struct {
	CompetitionTitle    string `json:"competition_title" validate:"required"`
	CompetitionCategory string `json:"competition_category" validate:"required"`
	Message             string `json:"message" validate:"required"`
	ParticipationDate   string `json:"participation_date"`
}

// SubmitRequest files a participation claim for review
// @Summary Submit verification request
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitRequestRequest true "Claim data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /requests [post]
func (h *Handler) SubmitRequest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	var req SubmitRequestRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	var participationDate *time.Time
	if req.ParticipationDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.ParticipationDate)
		if err != nil {
			return utils.Error(c, "Invalid participation_date format", fiber.StatusBadRequest)
		}
		participationDate = &parsed
	}

	request, err := h.verificationSvc.SubmitRequest(userID, services.SubmitRequestInput{
		CompetitionTitle:    req.CompetitionTitle,
		CompetitionCategory: req.CompetitionCategory,
		Message:             req.Message,
		ParticipationDate:   participationDate,
	})
	if err != nil {
		return utils.Error(c, err.Error(), verificationStatus(err))
	}

	return utils.Success(c, request, "Request submitted for review", fiber.StatusCreated)
}

// GetOwnRequests returns the calling member's requests
func (h *Handler) GetOwnRequests(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	requests, err := h.verificationSvc.GetRequestsForUser(userID)
	if err != nil {
		return utils.Error(c, err.Error(), verificationStatus(err))
	}

	return utils.Success(c, requests, "Requests retrieved successfully")
}

// ListRequests returns all requests, optionally filtered by status
// @Summary List verification requests
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (pending|approved|rejected)"
// @Success 200 {object} utils.Response
// @Router /admin/requests [get]
func (h *Handler) ListRequests(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" &&
		status != models.StatusPending &&
		status != models.StatusApproved &&
		status != models.StatusRejected {
		return utils.Error(c, "Invalid status filter", fiber.StatusBadRequest)
	}

	requests, err := h.verificationSvc.ListRequests(status)
	if err != nil {
		return utils.Error(c, "Failed to fetch requests", fiber.StatusInternalServerError)
	}

	return utils.Success(c, requests, "Requests retrieved successfully")
}

// ApproveRequest approves a pending request
func (h *Handler) ApproveRequest(c *fiber.Ctx) error {
	requestID := c.Params("id")
	if _, err := uuid.Parse(requestID); err != nil {
		return utils.Error(c, "Invalid request ID", fiber.StatusBadRequest)
	}

	adminID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	request, err := h.verificationSvc.ApproveRequest(requestID, adminID)
	if err != nil {
		return utils.Error(c, err.Error(), verificationStatus(err))
	}

	return utils.Success(c, request, "Request approved successfully")
}

// RejectRequest rejects a pending request
func (h *Handler) RejectRequest(c *fiber.Ctx) error {
	requestID := c.Params("id")
	if _, err := uuid.Parse(requestID); err != nil {
		return utils.Error(c, "Invalid request ID", fiber.StatusBadRequest)
	}

	adminID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	request, err := h.verificationSvc.RejectRequest(requestID, adminID)
	if err != nil {
		return utils.Error(c, err.Error(), verificationStatus(err))
	}

	return utils.Success(c, request, "Request rejected successfully")
}
