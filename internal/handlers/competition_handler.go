package handlers

import (
	"time"

	"competition-leaderboard-backend/internal/middleware"
	"competition-leaderboard-backend/internal/services"
	"competition-leaderboard-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateCompetitionRequest struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CreateCompetition creates a competition explicitly
// @Summary Create competition
// @Tags Competitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCompetitionRequest true "Competition data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /admin/competitions [post]
func (h *Handler) CreateCompetition(c *fiber.Ctx) error {
	var req CreateCompetitionRequest
	if err := middleware.ValidateBody(&req)(c); err != nil {
		return err
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return utils.Error(c, "Invalid date format, use YYYY-MM-DD", fiber.StatusBadRequest)
		}
		date = parsed
	}

	competition, err := h.competitionSvc.CreateCompetition(services.CreateCompetitionRequest{
		Title:       req.Title,
		Date:        date,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, competition, "Competition created successfully", fiber.StatusCreated)
}

// ListCompetitions returns all competitions
// @Summary List competitions
// @Tags Competitions
// @Produce json
// @Success 200 {object} utils.Response
// @Router /competitions [get]
func (h *Handler) ListCompetitions(c *fiber.Ctx) error {
	competitions, err := h.competitionSvc.ListCompetitions()
	if err != nil {
		return utils.Error(c, "Failed to fetch competitions", fiber.StatusInternalServerError)
	}

	return utils.Success(c, competitions, "Competitions retrieved successfully")
}

// ListCategories returns the distinct category labels in use
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.competitionSvc.ListCategories()
	if err != nil {
		return utils.Error(c, "Failed to fetch categories", fiber.StatusInternalServerError)
	}

	return utils.Success(c, categories, "Categories retrieved successfully")
}

// GetCompetition returns a competition by ID
func (h *Handler) GetCompetition(c *fiber.Ctx) error {
	competitionID := c.Params("id")
	if _, err := uuid.Parse(competitionID); err != nil {
		return utils.Error(c, "Invalid competition ID", fiber.StatusBadRequest)
	}

	competition, err := h.competitionSvc.GetCompetition(competitionID)
	if err != nil {
		return utils.Error(c, "Competition not found", fiber.StatusNotFound)
	}

	return utils.Success(c, competition, "Competition retrieved successfully")
}
