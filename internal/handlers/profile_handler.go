package handlers

import (
	"competition-leaderboard-backend/internal/services"
	"competition-leaderboard-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateProfile registers a member profile without an auth account. Avatar
// images come in as multipart uploads and are served statically.
// @Summary Create member profile
// @Tags Profiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param full_name formData string true "Member name"
// @Param division formData string false "Organizational unit"
// @Param avatar formData file false "Avatar image"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /admin/profiles [post]
func (h *Handler) CreateProfile(c *fiber.Ctx) error {
	fullName := c.FormValue("full_name")
	if fullName == "" {
		return utils.Error(c, "full_name is required", fiber.StatusBadRequest)
	}
	division := c.FormValue("division")

	avatarURL := ""
	file, err := c.FormFile("avatar")
	if err == nil && file != nil {
		if err := utils.ValidateImageFile(file); err != nil {
			return utils.Error(c, err.Error(), fiber.StatusBadRequest)
		}

		filename := utils.GenerateUniqueFilename(file.Filename)
		if err := utils.SaveUploadedFile(file, h.cfg.AvatarDir, filename); err != nil {
			return utils.Error(c, "Failed to save avatar", fiber.StatusInternalServerError)
		}
		avatarURL = "/avatars/" + filename
	}

	profile, err := h.profileSvc.CreateProfile(services.CreateProfileRequest{
		FullName:  fullName,
		Division:  division,
		AvatarURL: avatarURL,
	})
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, profile, "Profile created successfully", fiber.StatusCreated)
}

// ListProfiles returns all member profiles
// @Summary List profiles
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /admin/profiles [get]
func (h *Handler) ListProfiles(c *fiber.Ctx) error {
	profiles, err := h.profileSvc.ListProfiles()
	if err != nil {
		return utils.Error(c, "Failed to fetch profiles", fiber.StatusInternalServerError)
	}

	return utils.Success(c, profiles, "Profiles retrieved successfully")
}

// DeleteProfile removes a member and all owned requests and logs
func (h *Handler) DeleteProfile(c *fiber.Ctx) error {
	profileID := c.Params("id")
	if _, err := uuid.Parse(profileID); err != nil {
		return utils.Error(c, "Invalid profile ID", fiber.StatusBadRequest)
	}

	if err := h.profileSvc.DeleteProfile(profileID); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, nil, "Profile deleted successfully")
}

// GetStats returns aggregate counts for the admin dashboard
// @Summary Get system statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /admin/stats [get]
func (h *Handler) GetStats(c *fiber.Ctx) error {
	stats, err := h.profileSvc.GetStats()
	if err != nil {
		return utils.Error(c, "Failed to fetch statistics", fiber.StatusInternalServerError)
	}

	return utils.Success(c, stats, "Statistics retrieved successfully")
}
