package workers

import (
	"testing"
	"time"

	"competition-leaderboard-backend/internal/models"
	"competition-leaderboard-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
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

func TestReconcile_RepairsDriftedCounter(t *testing.T) {
	repo := setupTestRepo(t)
	worker := NewReconcileWorker(repo, time.Hour)

	profile := &models.Profile{ID: uuid.New(), FullName: "Ana"}
	require.NoError(t, repo.ProfileRepo.CreateProfile(nil, profile))

	competition := &models.Competition{
		ID:    uuid.New(),
		Title: "Math Olympiad",
		Date:  time.Now(),
	}
	require.NoError(t, repo.CompetitionRepo.CreateCompetition(competition))

	logged := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	log := &models.ParticipationLog{
		ID:            uuid.New(),
		ProfileID:     profile.ID,
		CompetitionID: competition.ID,
		CreatedAt:     logged,
	}
	require.NoError(t, repo.ParticipationRepo.CreateLog(nil, log))

	// Corrupt the cache behind the repository's back.
	require.NoError(t, repo.DB.Model(&models.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"total_participation_count": 42,
			"last_activity_at":          nil,
		}).Error)

	worker.reconcile()

	fresh, err := repo.ProfileRepo.GetProfileByID(profile.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.TotalParticipationCount)
	require.NotNil(t, fresh.LastActivityAt)
	assert.True(t, fresh.LastActivityAt.Equal(logged))
}

func TestReconcile_LeavesConsistentCountersAlone(t *testing.T) {
	repo := setupTestRepo(t)
	worker := NewReconcileWorker(repo, time.Hour)

	profile := &models.Profile{ID: uuid.New(), FullName: "Budi"}
	require.NoError(t, repo.ProfileRepo.CreateProfile(nil, profile))

	worker.reconcile()

	fresh, err := repo.ProfileRepo.GetProfileByID(profile.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.TotalParticipationCount)
	assert.Nil(t, fresh.LastActivityAt)
}
