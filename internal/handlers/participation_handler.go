package handlers

import (
	"strconv"
	"strings"
	"time"

	"competition-leaderboard-backend/internal/middleware"
	"competition-leaderboard-backend/internal/services"
	"competition-leaderboard-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AddParticipationRequest struct {
	ProfileID           string `json:"profile_id" validate:"required,uuid"`
	CompetitionTitle    string `json:"competition_title" validate:"required"`
	CompetitionCategory string `json:"competition_category"`
	Notes               string `json:"notes"`
	ParticipationDate   string `json:"participation_date"`
}

// AddParticipation records a participation directly, bypassing the request
// flow (backfill path)
// @Summary Add participation log entry
// @Tags Participations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddParticipationRequest true "Participation data"
// @Success 201 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/participations [post]
func (h *Handler) AddParticipation(c *fiber.Ctx) error {
	adminID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusUnauthorized)
	}

	var req AddParticipationRequest
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

	log, err := h.participationSvc.AddParticipation(adminID, services.AddParticipationInput{
		ProfileID:           req.ProfileID,
		CompetitionTitle:    req.CompetitionTitle,
		CompetitionCategory: req.CompetitionCategory,
		Notes:               req.Notes,
		ParticipationDate:   participationDate,
	})
	if err != nil {
		if strings.Contains(err.Error(), "already registered") {
			return utils.Error(c, err.Error(), fiber.StatusConflict)
		}
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, log, "Participation added successfully", fiber.StatusCreated)
}

// ListParticipations returns the paginated participation log
// @Summary List participation log entries
// @Tags Participations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.Response
// @Router /admin/participations [get]
func (h *Handler) ListParticipations(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	logs, total, totalPages, err := h.participationSvc.ListParticipations(page, pageSize)
	if err != nil {
		return utils.Error(c, "Failed to fetch participations", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, logs, meta, "Participations retrieved successfully")
}

// DeleteParticipation removes a log entry and updates the owner's counters
func (h *Handler) DeleteParticipation(c *fiber.Ctx) error {
	logID := c.Params("id")
	if _, err := uuid.Parse(logID); err != nil {
		return utils.Error(c, "Invalid participation ID", fiber.StatusBadRequest)
	}

	if err := h.participationSvc.DeleteParticipation(logID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return utils.Error(c, err.Error(), fiber.StatusNotFound)
		}
		return utils.Error(c, err.Error(), fiber.StatusInternalServerError)
	}

	return utils.Success(c, nil, "Participation deleted successfully")
}

// GetProfileParticipations returns a member's participation history
// @Summary Get member participation history
// @Tags Participations
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /profiles/{id}/participations [get]
func (h *Handler) GetProfileParticipations(c *fiber.Ctx) error {
	profileID := c.Params("id")
	if _, err := uuid.Parse(profileID); err != nil {
		return utils.Error(c, "Invalid profile ID", fiber.StatusBadRequest)
	}

	logs, err := h.participationSvc.GetParticipationsByProfile(profileID)
	if err != nil {
		return utils.Error(c, "Profile not found", fiber.StatusNotFound)
	}

	return utils.Success(c, logs, "Participations retrieved successfully")
}
