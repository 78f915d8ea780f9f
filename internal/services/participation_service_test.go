package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddParticipation_CreatesLogAndBumpsCounter(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewParticipationService(repo, testConfig())

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := createTestProfile(t, repo, "Ana", 0, nil, created)
	adminID := uuid.New().String()

	log, err := svc.AddParticipation(adminID, AddParticipationInput{
		ProfileID:           profile.ID.String(),
		CompetitionTitle:    "Chess Open",
		CompetitionCategory: "Games",
		Notes:               "backfilled from paper records",
	})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, log.ProfileID)
	require.NotNil(t, log.AdminID)
	assert.Equal(t, adminID, log.AdminID.String())

	fresh, err := repo.ProfileRepo.GetProfileByID(profile.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.TotalParticipationCount)
	require.NotNil(t, fresh.LastActivityAt)
}

func TestAddParticipation_LazilyCreatesCompetition(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewParticipationService(repo, testConfig())

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := createTestProfile(t, repo, "Ana", 0, nil, created)

	log, err := svc.AddParticipation(uuid.New().String(), AddParticipationInput{
		ProfileID:           profile.ID.String(),
		CompetitionTitle:    "Brand New Cup",
		CompetitionCategory: "",
	})
	require.NoError(t, err)

	competition, err := repo.CompetitionRepo.GetCompetitionByID(log.CompetitionID.String())
	require.NoError(t, err)
	assert.Equal(t, "Brand New Cup", competition.Title)
	assert.Equal(t, "Other", competition.Category)
}

func TestAddParticipation_DuplicateRejected(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewParticipationService(repo, testConfig())

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := createTestProfile(t, repo, "Ana", 0, nil, created)
	adminID := uuid.New().String()

	_, err := svc.AddParticipation(adminID, AddParticipationInput{
		ProfileID:        profile.ID.String(),
		CompetitionTitle: "Chess Open",
	})
	require.NoError(t, err)

	// Same pair again, with a differently cased title.
	_, err = svc.AddParticipation(adminID, AddParticipationInput{
		ProfileID:        profile.ID.String(),
		CompetitionTitle: "chess open",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	fresh, err := repo.ProfileRepo.GetProfileByID(profile.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.TotalParticipationCount)
}

func TestAddParticipation_UnknownProfileFails(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewParticipationService(repo, testConfig())

	_, err := svc.AddParticipation(uuid.New().String(), AddParticipationInput{
		ProfileID:        uuid.New().String(),
		CompetitionTitle: "Chess Open",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")
}

func TestDeleteParticipation_RecomputesCounters(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewParticipationService(repo, testConfig())

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := createTestProfile(t, repo, "Ana", 0, nil, created)

	first := createTestCompetition(t, repo, "Math Olympiad", "Math")
	second := createTestCompetition(t, repo, "Science Fair", "Science")

	earlier := created.Add(time.Hour)
	later := created.Add(2 * time.Hour)
	createTestLog(t, repo, profile.ID, first.ID, earlier)
	latest := createTestLog(t, repo, profile.ID, second.ID, later)

	fresh, err := repo.ProfileRepo.GetProfileByID(profile.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.TotalParticipationCount)

	// Deleting the most recent entry rolls last_activity_at back to the
	// remaining maximum.
	require.NoError(t, svc.DeleteParticipation(latest.ID.String()))

	fresh, err = repo.ProfileRepo.GetProfileByID(profile.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.TotalParticipationCount)
	require.NotNil(t, fresh.LastActivityAt)
	assert.True(t, fresh.LastActivityAt.Equal(earlier))
}

func TestDeleteParticipation_LastEntryClearsActivity(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewParticipationService(repo, testConfig())

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := createTestProfile(t, repo, "Ana", 0, nil, created)
	competition := createTestCompetition(t, repo, "Math Olympiad", "Math")
	log := createTestLog(t, repo, profile.ID, competition.ID, created.Add(time.Hour))

	require.NoError(t, svc.DeleteParticipation(log.ID.String()))

	fresh, err := repo.ProfileRepo.GetProfileByID(profile.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.TotalParticipationCount)
	assert.Nil(t, fresh.LastActivityAt)
}

func TestDeleteParticipation_UnknownLogFails(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewParticipationService(repo, testConfig())

	err := svc.DeleteParticipation(uuid.New().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListParticipations_Paginates(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewParticipationService(repo, testConfig())

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := createTestProfile(t, repo, "Ana", 0, nil, created)

	for i := 0; i < 5; i++ {
		competition := createTestCompetition(t, repo, "Competition "+uuid.NewString(), "Other")
		createTestLog(t, repo, profile.ID, competition.ID, created.Add(time.Duration(i)*time.Hour))
	}

	logs, total, totalPages, err := svc.ListParticipations(1, 2)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, 3, totalPages)

	logs, _, _, err = svc.ListParticipations(3, 2)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestGetParticipationsByProfile(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewParticipationService(repo, testConfig())

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ana := createTestProfile(t, repo, "Ana", 0, nil, created)
	budi := createTestProfile(t, repo, "Budi", 0, nil, created)
	competition := createTestCompetition(t, repo, "Math Olympiad", "Math")

	createTestLog(t, repo, ana.ID, competition.ID, created.Add(time.Hour))
	createTestLog(t, repo, budi.ID, competition.ID, created.Add(2*time.Hour))

	logs, err := svc.GetParticipationsByProfile(ana.ID.String())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, ana.ID, logs[0].ProfileID)

	_, err = svc.GetParticipationsByProfile(uuid.New().String())
	require.Error(t, err)
}
