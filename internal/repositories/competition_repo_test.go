package repositories

import (
	"testing"
	"time"

	"competition-leaderboard-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestTitleKey(t *testing.T) {
	assert.Equal(t, TitleKey("Math Olympiad"), TitleKey("math olympiad"))
	assert.Equal(t, TitleKey("Math Olympiad"), TitleKey("  Math Olympiad  "))
	assert.Equal(t, TitleKey("MATH OLYMPIAD"), TitleKey("Math Olympiad"))
	assert.NotEqual(t, TitleKey("Math Olympiad"), TitleKey("Math Olympiad 2025"))
	assert.Empty(t, TitleKey("   "))
}

func TestFindOrCreateByTitle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCompetitionRepository(db)

	created, err := repo.FindOrCreateByTitle(nil, "Math Olympiad", "Math", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "Math Olympiad", created.Title)
	assert.Equal(t, "Math", created.Category)
	assert.False(t, created.Date.IsZero())

	// A differently cased title resolves to the same row; the original
	// spelling and category win.
	found, err := repo.FindOrCreateByTitle(nil, "  MATH OLYMPIAD ", "Science", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Math Olympiad", found.Title)
	assert.Equal(t, "Math", found.Category)

	var count int64
	require.NoError(t, db.Model(&models.Competition{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindOrCreateByTitle_DefaultsCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCompetitionRepository(db)

	created, err := repo.FindOrCreateByTitle(nil, "Untagged Cup", "", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "Other", created.Category)
}

func TestFindOrCreateByTitle_RejectsBlankTitle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCompetitionRepository(db)

	_, err := repo.FindOrCreateByTitle(nil, "   ", "Math", time.Time{})
	require.Error(t, err)
}

func TestCreateCompetition_DuplicateTitleRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCompetitionRepository(db)

	first := &models.Competition{Title: "Chess Open", Date: time.Now()}
	require.NoError(t, repo.CreateCompetition(first))

	dup := &models.Competition{Title: "chess open", Date: time.Now()}
	err := repo.CreateCompetition(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateLog_DuplicatePairRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	profile := &models.Profile{ID: uuid.New(), FullName: "Ana"}
	require.NoError(t, repo.ProfileRepo.CreateProfile(nil, profile))

	competition := &models.Competition{ID: uuid.New(), Title: "Chess Open", Date: time.Now()}
	require.NoError(t, repo.CompetitionRepo.CreateCompetition(competition))

	first := &models.ParticipationLog{
		ID:            uuid.New(),
		ProfileID:     profile.ID,
		CompetitionID: competition.ID,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, repo.ParticipationRepo.CreateLog(nil, first))

	second := &models.ParticipationLog{
		ID:            uuid.New(),
		ProfileID:     profile.ID,
		CompetitionID: competition.ID,
		CreatedAt:     time.Now(),
	}
	err := repo.ParticipationRepo.CreateLog(nil, second)
	require.ErrorIs(t, err, ErrDuplicateParticipation)

	// The failed insert did not move the counter.
	fresh, err := repo.ProfileRepo.GetProfileByID(profile.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.TotalParticipationCount)
}
