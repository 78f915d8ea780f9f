package services

import (
	"testing"

	"competition-leaderboard-backend/internal/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMember_CreatesUserWithProfile(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewAuthService(repo, testConfig())

	user, err := svc.RegisterMember("Ana@Example.com", "secret123", "Ana Pratiwi", "Engineering")
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, models.RoleMember, user.Role)
	assert.Empty(t, user.Password)

	profile, err := repo.ProfileRepo.GetProfileByUserID(user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ana Pratiwi", profile.FullName)
	assert.Equal(t, "Engineering", profile.Division)
	assert.Equal(t, 0, profile.TotalParticipationCount)
	assert.Nil(t, profile.LastActivityAt)
}

func TestRegisterMember_DuplicateEmailRejected(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewAuthService(repo, testConfig())

	_, err := svc.RegisterMember("ana@example.com", "secret123", "Ana", "")
	require.NoError(t, err)

	_, err = svc.RegisterMember("ana@example.com", "another123", "Imposter", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestAuthenticate(t *testing.T) {
	repo := setupTestRepo(t)
	cfg := testConfig()
	svc := NewAuthService(repo, cfg)

	_, err := svc.RegisterMember("ana@example.com", "secret123", "Ana", "")
	require.NoError(t, err)

	resp, err := svc.Authenticate("ana@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, resp.User.ID.String(), claims["user_id"])
	assert.Equal(t, models.RoleMember, claims["role"])

	// Wrong password and unknown email fail with the same opaque error.
	_, err = svc.Authenticate("ana@example.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())

	_, err = svc.Authenticate("nobody@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestCreateAdmin_HasNoProfile(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewAuthService(repo, testConfig())

	admin, err := svc.CreateAdmin("admin@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, err = repo.ProfileRepo.GetProfileByUserID(admin.ID.String())
	require.Error(t, err)
}

func TestGetUserProfile(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewAuthService(repo, testConfig())

	user, err := svc.RegisterMember("ana@example.com", "secret123", "Ana", "")
	require.NoError(t, err)

	result, err := svc.GetUserProfile(user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Empty(t, result.User.Password)
	require.NotNil(t, result.Profile)
	assert.Equal(t, "Ana", result.Profile.FullName)
}
