package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"competition-leaderboard-backend/internal/config"
	"competition-leaderboard-backend/internal/handlers"
	"competition-leaderboard-backend/internal/repositories"
	"competition-leaderboard-backend/internal/services"
	"competition-leaderboard-backend/internal/workers"
	"competition-leaderboard-backend/pkg/database"
	"competition-leaderboard-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Run migrations
	if err := repositories.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	// Initialize repositories
	repo := repositories.NewRepository(db)

	// Initialize services
	authSvc := services.NewAuthService(repo, cfg)
	leaderboardSvc := services.NewLeaderboardService(repo, cfg)
	verificationSvc := services.NewVerificationService(
		repo.ProfileRepo,
		repo.CompetitionRepo,
		repo.RequestRepo,
		repo.ParticipationRepo,
		cfg,
	)
	participationSvc := services.NewParticipationService(repo, cfg)
	competitionSvc := services.NewCompetitionService(repo, cfg)
	profileSvc := services.NewProfileService(repo, cfg)

	// Initialize handlers
	handler := handlers.NewHandler(
		authSvc, leaderboardSvc, verificationSvc,
		participationSvc, competitionSvc, profileSvc, cfg,
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Competition Leaderboard API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Create upload directories
	if err := os.MkdirAll(cfg.AvatarDir, 0755); err != nil {
		log.Fatalf("Failed to create avatar directory: %v", err)
	}

	// Static file serving
	app.Static("/avatars", cfg.AvatarDir)

	// Register routes
	api := app.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Background counter reconciliation
	reconciler := workers.NewReconcileWorker(repo, cfg.ReconcileInterval)
	if err := reconciler.Start(); err != nil {
		log.Fatalf("Failed to start reconcile worker: %v", err)
	}

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("🚀 Server starting on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	reconciler.Stop()
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped gracefully")
}
