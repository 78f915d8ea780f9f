package services

import (
	"testing"
	"time"

	"competition-leaderboard-backend/internal/config"
	"competition-leaderboard-backend/internal/models"
	"competition-leaderboard-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestRepo(t *testing.T) *repositories.Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrate(db))

	return repositories.NewRepository(db)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		Port:              "8080",
		Env:               "test",
		ReconcileInterval: time.Hour,
		StreamPollEvery:   time.Second,
	}
}

func createTestProfile(t *testing.T, repo *repositories.Repository, name string, count int, lastActivity *time.Time, createdAt time.Time) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		ID:                      uuid.New(),
		FullName:                name,
		TotalParticipationCount: count,
		LastActivityAt:          lastActivity,
		CreatedAt:               createdAt,
	}
	require.NoError(t, repo.ProfileRepo.CreateProfile(nil, profile))
	return profile
}

func createTestMember(t *testing.T, repo *repositories.Repository, email, name string) (*models.User, *models.Profile) {
	t.Helper()

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "hashed",
		Role:     models.RoleMember,
	}
	require.NoError(t, repo.UserRepo.CreateUser(nil, user))

	profile := &models.Profile{
		ID:       uuid.New(),
		UserID:   &user.ID,
		FullName: name,
	}
	require.NoError(t, repo.ProfileRepo.CreateProfile(nil, profile))
	return user, profile
}

func createTestCompetition(t *testing.T, repo *repositories.Repository, title, category string) *models.Competition {
	t.Helper()

	competition := &models.Competition{
		ID:       uuid.New(),
		Title:    title,
		Category: category,
		Date:     time.Now(),
	}
	require.NoError(t, repo.CompetitionRepo.CreateCompetition(competition))
	return competition
}

func createTestLog(t *testing.T, repo *repositories.Repository, profileID, competitionID uuid.UUID, createdAt time.Time) *models.ParticipationLog {
	t.Helper()

	log := &models.ParticipationLog{
		ID:            uuid.New(),
		ProfileID:     profileID,
		CompetitionID: competitionID,
		CreatedAt:     createdAt,
	}
	require.NoError(t, repo.ParticipationRepo.CreateLog(nil, log))
	return log
}

func timePtr(t time.Time) *time.Time {
	return &t
}
