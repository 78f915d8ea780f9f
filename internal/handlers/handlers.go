package handlers

import (
	"competition-leaderboard-backend/internal/config"
	"competition-leaderboard-backend/internal/middleware"
	"competition-leaderboard-backend/internal/services"
	"competition-leaderboard-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	authSvc          *services.AuthService
	leaderboardSvc   *services.LeaderboardService
	verificationSvc  services.VerificationService
	participationSvc *services.ParticipationService
	competitionSvc   *services.CompetitionService
	profileSvc       *services.ProfileService
	cfg              *config.Config
}

func NewHandler(
	authSvc *services.AuthService,
	leaderboardSvc *services.LeaderboardService,
	verificationSvc services.VerificationService,
	participationSvc *services.ParticipationService,
	competitionSvc *services.CompetitionService,
	profileSvc *services.ProfileService,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authSvc:          authSvc,
		leaderboardSvc:   leaderboardSvc,
		verificationSvc:  verificationSvc,
		participationSvc: participationSvc,
		competitionSvc:   competitionSvc,
		profileSvc:       profileSvc,
		cfg:              cfg,
	}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	// Public routes
	auth := router.Group("/auth")
	{
		auth.Post("/login", h.Login)
		auth.Post("/register", h.RegisterMember)
	}

	leaderboard := router.Group("/leaderboard")
	{
		leaderboard.Get("/", h.GetLeaderboard)
		leaderboard.Get("/stream", h.StreamLeaderboard)
	}

	competitions := router.Group("/competitions")
	{
		competitions.Get("/", h.ListCompetitions)
		competitions.Get("/categories", h.ListCategories)
		competitions.Get("/:id", h.GetCompetition)
	}

	router.Get("/profiles/:id/participations", h.GetProfileParticipations)

	// Protected routes (JWT required)
	protected := router.Group("", middleware.JWTMiddleware(h.cfg), middleware.Authenticated)
	{
		protected.Get("/profile", h.GetProfile)

		requests := protected.Group("/requests")
		{
			requests.Post("/", h.SubmitRequest)
			requests.Get("/", h.GetOwnRequests)
		}

		// Admin only routes
		admin := protected.Group("/admin", middleware.AdminOnly)
		{
			admin.Get("/requests", h.ListRequests)
			admin.Post("/requests/:id/approve", h.ApproveRequest)
			admin.Post("/requests/:id/reject", h.RejectRequest)

			admin.Get("/participations", h.ListParticipations)
			admin.Post("/participations", h.AddParticipation)
			admin.Delete("/participations/:id", h.DeleteParticipation)

			admin.Get("/profiles", h.ListProfiles)
			admin.Post("/profiles", h.CreateProfile)
			admin.Delete("/profiles/:id", h.DeleteProfile)

			admin.Post("/competitions", h.CreateCompetition)
			admin.Post("/users", h.CreateAdminUser)
			admin.Get("/stats", h.GetStats)
		}
	}
}

// ErrorHandler handles global errors
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		logrus.WithError(err).Error("internal server error")
	}

	return utils.Error(c, message, code)
}

// verificationStatus maps the verification service's typed error codes to
// HTTP statuses, keeping conflicts distinct from generic failures.
func verificationStatus(err error) int {
	switch services.GetVerificationErrorCode(err) {
	case services.ErrAlreadyRegistered, services.ErrRequestClosed:
		return fiber.StatusConflict
	case services.ErrRequestNotFound, services.ErrProfileNotFound:
		return fiber.StatusNotFound
	case services.ErrInvalidInput, services.ErrCompetitionMissing:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
